package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/minishop-tech/go-backend/internal/domain"
	"github.com/minishop-tech/go-backend/pkg/e"
	"github.com/minishop-tech/go-backend/pkg/logger"
)

// ProductUseCase реализует бизнес-логику управления каталогом.
type ProductUseCase struct {
	productRepo ProductRepository
	cacheRepo   CacheRepository
	imageStore  ImageStorage // nil, если объектное хранилище не сконфигурировано
	dbPool      transaction.Transactional
	logger      logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	cacheRepo CacheRepository,
	imageStore ImageStorage,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		cacheRepo:   cacheRepo,
		imageStore:  imageStore,
		dbPool:      dbPool,
		logger:      logger,
	}
}

// ListProducts возвращает продукты витрины, новые первыми.
// includeInactive добавляет скрытые продукты (административный просмотр).
func (p *ProductUseCase) ListProducts(ctx context.Context, includeInactive bool) ([]domain.Product, error) {
	const op = "ProductUseCase.ListProducts"

	products, err := p.productRepo.List(ctx, includeInactive)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// GetProduct возвращает продукт по идентификатору, используя кэш для чтения.
// Кэш никогда не участвует в проверках остатков при оформлении заказа.
func (p *ProductUseCase) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	const op = "ProductUseCase.GetProduct"

	if id <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidProductID)
	}

	if cached, err := p.cacheRepo.GetProduct(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Фоновое добавление продукта в кэш; скрытые продукты не кэшируются
	if product.IsActive() {
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			if err := p.cacheRepo.SetProduct(bgCtx, product); err != nil {
				p.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
			}
		}()
	}

	return product, nil
}

// CreateProduct валидирует данные и создаёт продукт; изображение,
// если передано, сохраняется в объектное хранилище до записи в каталог.
func (p *ProductUseCase) CreateProduct(ctx context.Context, req *SaveProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.CreateProduct"

	if err := p.validateProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	imageURL, err := p.storeImage(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if imageURL != "" {
		req.ImageURL = imageURL
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	var product *domain.Product
	product, err = p.productRepo.Create(ctx, domain.NewProduct(
		strings.TrimSpace(req.Name), req.Description, req.Price, req.Stock, req.ImageURL, req.Status,
	))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return product, nil
}

// UpdateProduct обновляет существующий продукт и инвалидирует кэш.
func (p *ProductUseCase) UpdateProduct(ctx context.Context, id int64, req *SaveProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.UpdateProduct"

	if id <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidProductID)
	}

	if err := p.validateProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	existing, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	imageURL, err := p.storeImage(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if imageURL == "" {
		imageURL = req.ImageURL
	}
	if imageURL == "" {
		imageURL = existing.ImageURL
	}

	updated := &domain.Product{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    imageURL,
		Status:      req.Status,
	}
	if updated.Status == "" {
		updated.Status = existing.Status
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	var product *domain.Product
	product, err = p.productRepo.Update(ctx, updated)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	p.invalidate(ctx, id)
	return product, nil
}

// DeleteProduct безвозвратно удаляет продукт из каталога.
// Позиции существующих заказов сохраняют снимки имени и цены.
func (p *ProductUseCase) DeleteProduct(ctx context.Context, id int64) error {
	const op = "ProductUseCase.DeleteProduct"

	if id <= 0 {
		return e.Wrap(op, e.ErrInvalidProductID)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if err = p.productRepo.Delete(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	p.invalidate(ctx, id)
	return nil
}

// storeImage сохраняет изображение продукта и возвращает ключ объекта.
// Возвращает пустую строку, если изображение не передано.
func (p *ProductUseCase) storeImage(ctx context.Context, req *SaveProductReq) (string, error) {
	if req.Image == nil {
		return "", nil
	}

	if p.imageStore == nil {
		p.logger.Warnf("image upload skipped: object storage is not configured")
		return "", nil
	}

	ext, err := extensionFromMIME(req.Image.MimeType)
	if err != nil {
		return "", err
	}

	objectKey := fmt.Sprintf("products/%s.%s", uuid.NewString(), ext)
	return p.imageStore.Upload(ctx, objectKey, req.Image.Data, req.Image.MimeType)
}

func (p *ProductUseCase) invalidate(ctx context.Context, id int64) {
	const op = "ProductUseCase.invalidate"

	if err := p.cacheRepo.DeleteProducts(ctx, []int64{id}); err != nil {
		p.logger.Warnf("Failed to delete product from cache: %v", e.Wrap(op, err))
	}
}

// validateProduct проверяет корректность входных данных продукта.
func (p *ProductUseCase) validateProduct(req *SaveProductReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrProductNameRequired
	}

	if req.Price <= 0 {
		return e.ErrPriceMustBePositive
	}

	if req.Stock < 0 {
		return e.ErrStockMustBeNonNeg
	}

	return nil
}

func extensionFromMIME(mimeType string) (string, error) {
	switch mimeType {
	case "image/jpeg":
		return "jpg", nil
	case "image/png":
		return "png", nil
	case "image/webp":
		return "webp", nil
	case "image/gif":
		return "gif", nil
	default:
		return "", e.ErrUnsupportedMedia
	}
}
