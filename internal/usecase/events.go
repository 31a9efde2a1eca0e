package usecase

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/minishop-tech/go-backend/internal/domain"
)

// OrderEventPayload — JSON-схема события заказа, публикуемого в Kafka.
// Потребители дедуплицируют по event_id (доставка at-least-once).
type OrderEventPayload struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OrderID    int64     `json:"order_id"`
	Amount     int64     `json:"amount"`
	Status     string    `json:"status"`
	PaymentID  string    `json:"payment_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// newOrderOutboxEvent собирает outbox-запись для события жизненного цикла заказа.
func newOrderOutboxEvent(eventType OutboxEventType, order *domain.Order, paymentID string) (*OutboxEvent, error) {
	eventID := uuid.NewString()

	payload, err := json.Marshal(OrderEventPayload{
		EventID:    eventID,
		EventType:  string(eventType),
		OrderID:    order.ID,
		Amount:     order.TotalAmount,
		Status:     string(order.Status),
		PaymentID:  paymentID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	return NewOutboxEvent(eventID, eventType, order.ID, payload), nil
}
