package usecase

import (
	"context"
	"math"
	"strings"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/minishop-tech/go-backend/internal/domain"
	"github.com/minishop-tech/go-backend/pkg/e"
	"github.com/minishop-tech/go-backend/pkg/logger"
)

// OrderUseCase реализует оформление и чтение заказов.
type OrderUseCase struct {
	orderRepo   OrderRepository
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	cacheRepo   CacheRepository
	dbPool      transaction.Transactional
	notifier    Notifier
	logger      logger.Logger
}

func NewOrderUC(
	orderRepo OrderRepository,
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	dbPool transaction.Transactional,
	notifier Notifier,
	logger logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		cacheRepo:   cacheRepo,
		dbPool:      dbPool,
		notifier:    notifier,
		logger:      logger,
	}
}

// Checkout оформляет заказ из клиентской корзины в одной транзакции:
// резервирование остатков условным списанием, снимок цен,
// запись заказа с позициями и outbox-события. Данные корзины
// перечитываются из каталога, клиентские цены не используются.
func (o *OrderUseCase) Checkout(ctx context.Context, req *CheckoutReq) (*domain.Order, error) {
	const op = "OrderUseCase.Checkout"

	var err error
	if err = o.validateCheckout(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	cartItems, err := mergeCartItems(req.Items)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, o.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	// Резервирование остатков и снимок цен
	items := make([]domain.OrderItem, 0, len(cartItems))
	productIDs := make([]int64, 0, len(cartItems))
	for _, cartItem := range cartItems {
		var product *domain.Product
		product, err = o.productRepo.ReserveStock(ctx, cartItem.ProductID, cartItem.Quantity)
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		items = append(items, domain.NewOrderItem(product.ID, product.Name, cartItem.Quantity, product.Price))
		productIDs = append(productIDs, product.ID)
	}

	var order *domain.Order
	order, err = o.orderRepo.Create(ctx, domain.NewOrder(
		strings.TrimSpace(req.CustomerName),
		strings.TrimSpace(req.CustomerEmail),
		strings.TrimSpace(req.CustomerPhone),
		strings.TrimSpace(req.ShippingAddress),
		items,
	))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var event *OutboxEvent
	event, err = newOrderOutboxEvent(OutboxEventOrderCreated, order, "")
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if _, err = o.outboxRepo.Create(ctx, event); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	// Удаление из кэша продуктов с изменившимися остатками
	if cacheErr := o.cacheRepo.DeleteProducts(ctx, productIDs); cacheErr != nil {
		o.logger.Warnf("Failed to invalidate product cache: %v", e.Wrap(op, cacheErr))
	}

	if notifyErr := o.notifier.NotifyNewOrder(ctx, order); notifyErr != nil {
		o.logger.Warnf("Failed to send new order notification: %v", e.Wrap(op, notifyErr))
	}

	return order, nil
}

// GetOrder возвращает заказ с позициями.
func (o *OrderUseCase) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	const op = "OrderUseCase.GetOrder"

	if id <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidOrderID)
	}

	order, err := o.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return order, nil
}

// validateCheckout проверяет контактные данные и состав корзины.
func (o *OrderUseCase) validateCheckout(req *CheckoutReq) error {
	if strings.TrimSpace(req.CustomerName) == "" ||
		strings.TrimSpace(req.CustomerEmail) == "" ||
		strings.TrimSpace(req.ShippingAddress) == "" {
		return e.ErrMissingFields
	}

	if !strings.Contains(req.CustomerEmail, "@") {
		return e.ErrMissingFields
	}

	if len(req.Items) == 0 {
		return e.ErrEmptyOrder
	}

	for _, item := range req.Items {
		if item.ProductID <= 0 {
			return e.ErrInvalidProductID
		}
		if item.Quantity <= 0 {
			return e.ErrInvalidQuantity
		}
	}

	return nil
}

// mergeCartItems складывает количества повторяющихся productId,
// сохраняя порядок первого появления. Суммы накапливаются в int64:
// слагаемые проверяются по отдельности, но их сумма не должна
// переполнить int32.
func mergeCartItems(items []CartItem) ([]CartItem, error) {
	merged := make([]CartItem, 0, len(items))
	index := make(map[int64]int, len(items))
	totals := make(map[int64]int64, len(items))

	for _, item := range items {
		totals[item.ProductID] += int64(item.Quantity)
		if totals[item.ProductID] > math.MaxInt32 {
			return nil, e.ErrInvalidQuantity
		}

		if i, ok := index[item.ProductID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}

		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}

	return merged, nil
}
