package usecase

import (
	"context"

	"github.com/minishop-tech/go-backend/internal/domain"
)

type ProductRepository interface {
	List(ctx context.Context, includeInactive bool) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	// ReserveStock атомарно списывает qty со склада условным UPDATE
	// (decrement-if-sufficient) и возвращает снимок продукта после списания.
	ReserveStock(ctx context.Context, id int64, qty int32) (*domain.Product, error)
	ReleaseStock(ctx context.Context, id int64, qty int32) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// UpdateStatus выполняет условный переход статуса (compare-and-set).
	// Возвращает false, если заказ не находится в статусе from.
	UpdateStatus(ctx context.Context, id int64, from, to domain.OrderStatus) (bool, error)
	Recent(ctx context.Context, limit int) ([]domain.Order, error)
	Stats(ctx context.Context) (*OrderStats, error)
}

// PaymentEventRepository — журнал входящих событий платёжного процессора
// для дедупликации повторных доставок вебхуков.
type PaymentEventRepository interface {
	// Register регистрирует событие по его идентификатору.
	// Возвращает false, если событие уже было обработано ранее.
	Register(ctx context.Context, eventID string, eventType string, orderID int64) (bool, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	SetProduct(ctx context.Context, product *domain.Product) error
	DeleteProducts(ctx context.Context, ids []int64) error
}
