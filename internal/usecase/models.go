package usecase

import (
	"time"

	"github.com/minishop-tech/go-backend/internal/domain"
)

// PRODUCT USECASE

// SaveProductReq — запрос на создание или обновление продукта.
type SaveProductReq struct {
	Name        string
	Description string
	Price       int64 // в центах
	Stock       int32
	ImageURL    string
	Status      domain.ProductStatus
	Image       *ProductImage // опционально, multipart
}

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte
	MimeType string
	Size     int64
	Name     string
}

// ORDER USECASE

// CartItem — одна позиция клиентской корзины. Данные клиента не заслуживают
// доверия: цена и остаток перечитываются из каталога при оформлении заказа.
type CartItem struct {
	ProductID int64
	Quantity  int32
}

// CheckoutReq — запрос на оформление заказа.
type CheckoutReq struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	Items           []CartItem
}

// PAYMENT USECASE

// PaymentIntent — объект попытки списания на стороне процессора.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

type CreateIntentRes struct {
	IntentID       string
	ClientSecret   string
	PublishableKey string
	Amount         int64
}

type PaymentEventType string

const (
	PaymentEventSucceeded PaymentEventType = "payment_intent.succeeded"
	PaymentEventFailed    PaymentEventType = "payment_intent.payment_failed"
	PaymentEventUnknown   PaymentEventType = "unknown"
)

// PaymentEvent — разобранное событие вебхука платёжного процессора.
type PaymentEvent struct {
	ID            string // идентификатор события у процессора
	Type          PaymentEventType
	OrderID       int64
	PaymentID     string // идентификатор платёжного интента
	Amount        int64  // в центах
	FailureReason string
}

type SimulatePaymentRes struct {
	OrderID   int64
	PaymentID string
}

// REPORT USECASE

// OrderStats — агрегаты по заказам для отчётного бота.
type OrderStats struct {
	TotalOrders  int64
	TotalRevenue int64 // в центах
	AverageValue int64 // в центах
}

// OUTBOX

type OutboxStatus string

const (
	OutboxStatusPending    OutboxStatus = "PENDING"
	OutboxStatusProcessing OutboxStatus = "PROCESSING"
	OutboxStatusProcessed  OutboxStatus = "PROCESSED"
)

type OutboxEventType string

const (
	OutboxEventOrderCreated     OutboxEventType = "order_created"
	OutboxEventPaymentSucceeded OutboxEventType = "payment_succeeded"
	OutboxEventPaymentFailed    OutboxEventType = "payment_failed"
)

// OutboxEvent — запись транзакционного outbox для публикации в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	OrderID     int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// INFRASTRUCTURE

type WriteRawMessageReq struct {
	OrderID int64
	Payload []byte
}

// MAPPERS

func NewSaveProductReq(name, description string, price int64, stock int32, imageURL string, status domain.ProductStatus) *SaveProductReq {
	return &SaveProductReq{
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		ImageURL:    imageURL,
		Status:      status,
	}
}

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewCheckoutReq(name, email, phone, address string, items []CartItem) *CheckoutReq {
	return &CheckoutReq{
		CustomerName:    name,
		CustomerEmail:   email,
		CustomerPhone:   phone,
		ShippingAddress: address,
		Items:           items,
	}
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, orderID int64, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		OrderID:   orderID,
		Payload:   payload,
		Status:    OutboxStatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

func NewWriteRawMessageReq(orderID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		OrderID: orderID,
		Payload: payload,
	}
}

func NewSimulatePaymentRes(orderID int64, paymentID string) *SimulatePaymentRes {
	return &SimulatePaymentRes{
		OrderID:   orderID,
		PaymentID: paymentID,
	}
}
