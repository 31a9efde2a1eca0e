package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/minishop-tech/go-backend/internal/usecase"
	"github.com/minishop-tech/go-backend/pkg/e"
	"github.com/minishop-tech/go-backend/pkg/logger"
)

type OrderHandler struct {
	orderUsecase  usecase.OrderUC
	reportUsecase usecase.ReportUC
	logger        logger.Logger
}

func NewOrderHandler(orderUsecase usecase.OrderUC, reportUsecase usecase.ReportUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{
		orderUsecase:  orderUsecase,
		reportUsecase: reportUsecase,
		logger:        logger,
	}
}

// checkout
//
//	@Summary		Оформление заказа
//	@Description	Создаёт заказ из клиентской корзины. Цены и остатки перечитываются из каталога.
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CheckoutRequest	true	"Данные заказа"
//	@Success		201		{object}	OrderResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse	"Недостаточно остатков"
//	@Router			/orders [post]
func (o *OrderHandler) checkout(w http.ResponseWriter, r *http.Request) {
	var body CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, e.ErrMissingFields)
		return
	}

	order, err := o.orderUsecase.Checkout(r.Context(), body.ToUseCase())
	if err != nil {
		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, NewOrderResponse(order))
}

// getOrder
//
//	@Summary		Заказ по идентификатору
//	@Tags			orders
//	@Produce		json
//	@Param			id	path		int	true	"Идентификатор заказа"
//	@Success		200	{object}	OrderResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/orders/{id} [get]
func (o *OrderHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, e.ErrInvalidOrderID)
		return
	}

	order, err := o.orderUsecase.GetOrder(r.Context(), id)
	if err != nil {
		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewOrderResponse(order))
}

// listRecentOrders
//
//	@Summary		Последние заказы
//	@Tags			admin
//	@Produce		json
//	@Security		AdminToken
//	@Param			limit	query		int	false	"Количество заказов"
//	@Success		200		{array}		OrderResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/admin/orders [get]
func (o *OrderHandler) listRecentOrders(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	orders, err := o.reportUsecase.RecentOrders(r.Context(), limit)
	if err != nil {
		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	result := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		result = append(result, *NewOrderResponse(&orders[i]))
	}

	WriteSuccess(w, http.StatusOK, result)
}

// getStats
//
//	@Summary		Статистика продаж
//	@Tags			admin
//	@Produce		json
//	@Security		AdminToken
//	@Success		200	{object}	StatsResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/admin/stats [get]
func (o *OrderHandler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := o.reportUsecase.Stats(r.Context())
	if err != nil {
		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &StatsResponse{
		TotalOrders:  stats.TotalOrders,
		TotalRevenue: formatCents(stats.TotalRevenue),
		AverageValue: formatCents(stats.AverageValue),
	})
}
