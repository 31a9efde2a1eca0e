package usecase

import (
	"context"

	"github.com/minishop-tech/go-backend/internal/domain"
)

type ProductUC interface {
	ListProducts(ctx context.Context, includeInactive bool) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, req *SaveProductReq) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, req *SaveProductReq) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type OrderUC interface {
	Checkout(ctx context.Context, req *CheckoutReq) (*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
}

type PaymentUC interface {
	CreateIntent(ctx context.Context, orderID int64) (*CreateIntentRes, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	SimulatePayment(ctx context.Context, orderID int64) (*SimulatePaymentRes, error)
}

type ReportUC interface {
	RecentOrders(ctx context.Context, limit int) ([]domain.Order, error)
	OrderDetails(ctx context.Context, id int64) (*domain.Order, error)
	Stats(ctx context.Context) (*OrderStats, error)
}
