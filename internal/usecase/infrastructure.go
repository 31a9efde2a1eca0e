package usecase

import (
	"context"

	"github.com/minishop-tech/go-backend/internal/domain"
)

// PaymentGateway — мост к платёжному процессору.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, orderID int64, amount int64) (*PaymentIntent, error)
	// ParseWebhookEvent проверяет криптографическую подпись вебхука
	// и разбирает полезную нагрузку. При неверной подписи возвращает
	// e.ErrInvalidSignature без каких-либо побочных эффектов.
	ParseWebhookEvent(payload []byte, signature string) (*PaymentEvent, error)
}

// Notifier отправляет события заказов во внешний чат.
type Notifier interface {
	Enabled() bool
	NotifyNewOrder(ctx context.Context, order *domain.Order) error
	NotifyPaymentSuccess(ctx context.Context, order *domain.Order, paymentID string) error
	NotifyPaymentFailed(ctx context.Context, order *domain.Order, paymentID, reason string) error
	SendTest(ctx context.Context) error
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// ImageStorage — объектное хранилище изображений продуктов.
type ImageStorage interface {
	Upload(ctx context.Context, objectKey string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, objectKey string) error
}
