package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/minishop-tech/go-backend/internal/usecase"
	"github.com/minishop-tech/go-backend/pkg/e"
	"github.com/minishop-tech/go-backend/pkg/logger"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

// listProducts
//
//	@Summary		Список продуктов витрины
//	@Description	Возвращает активные продукты каталога, новые первыми
//	@Tags			products
//	@Produce		json
//	@Success		200	{array}		ProductResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := p.productUsecase.ListProducts(r.Context(), false)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewArrProductResponse(products))
}

// getProduct
//
//	@Summary		Продукт по идентификатору
//	@Tags			products
//	@Produce		json
//	@Param			id	path		int	true	"Идентификатор продукта"
//	@Success		200	{object}	ProductResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.GetProduct(r.Context(), id)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewProductResponse(product))
}

// listAllProducts
//
//	@Summary		Все продукты, включая скрытые
//	@Tags			admin
//	@Produce		json
//	@Security		AdminToken
//	@Success		200	{array}		ProductResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/admin/products [get]
func (p *ProductHandler) listAllProducts(w http.ResponseWriter, r *http.Request) {
	products, err := p.productUsecase.ListProducts(r.Context(), true)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewArrProductResponse(products))
}

// createProduct
//
//	@Summary		Создание продукта
//	@Description	Принимает JSON или multipart/form-data с файлом изображения
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Security		AdminToken
//	@Param			request	body		SaveProductRequest	true	"Данные продукта"
//	@Success		201		{object}	ProductResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/admin/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	req, err := p.parseSaveRequest(w, r)
	if err != nil {
		p.logger.Warnf("%d invalid product payload: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.CreateProduct(r.Context(), req)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, NewProductResponse(product))
}

// updateProduct
//
//	@Summary		Обновление продукта
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Security		AdminToken
//	@Param			id		path		int					true	"Идентификатор продукта"
//	@Param			request	body		SaveProductRequest	true	"Данные продукта"
//	@Success		200		{object}	ProductResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/admin/products/{id} [put]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	req, err := p.parseSaveRequest(w, r)
	if err != nil {
		p.logger.Warnf("%d invalid product payload: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.UpdateProduct(r.Context(), id, req)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewProductResponse(product))
}

// deleteProduct
//
//	@Summary		Скрытие продукта с витрины
//	@Tags			admin
//	@Produce		json
//	@Security		AdminToken
//	@Param			id	path		int	true	"Идентификатор продукта"
//	@Success		200	{object}	map[string]bool
//	@Failure		404	{object}	ErrorResponse
//	@Router			/admin/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := p.productUsecase.DeleteProduct(r.Context(), id); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]bool{"deleted": true})
}

// parseSaveRequest разбирает тело запроса на создание/обновление продукта.
// Поддерживаются application/json и multipart/form-data с файлом image.
func (p *ProductHandler) parseSaveRequest(w http.ResponseWriter, r *http.Request) (*usecase.SaveProductReq, error) {
	const (
		maxTotalRequestSize = 20 << 20
		maxMemory           = 16 << 20
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, e.ErrMissingFields
		}

		var body SaveProductRequest
		body.Name = r.FormValue("name")
		body.Description = r.FormValue("description")
		body.Price = r.FormValue("price")
		body.Status = r.FormValue("status")
		body.ImageURL = r.FormValue("imageUrl")
		if stockStr := r.FormValue("stock"); stockStr != "" {
			stock, err := strconv.ParseInt(stockStr, 10, 32)
			if err != nil {
				return nil, e.ErrMissingFields
			}
			body.Stock = int32(stock)
		}

		req, err := body.ToUseCase()
		if err != nil {
			return nil, err
		}

		if files := r.MultipartForm.File["image"]; len(files) > 0 {
			image, err := readImage(files[0])
			if err != nil {
				return nil, err
			}
			req.Image = image
		}

		return req, nil
	}

	var body SaveProductRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, e.ErrMissingFields
	}

	return body.ToUseCase()
}
