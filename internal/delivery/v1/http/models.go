package http

import (
	"time"

	"github.com/minishop-tech/go-backend/internal/domain"
	"github.com/minishop-tech/go-backend/internal/usecase"
)

// ProductResponse — представление продукта в API. Цена отдаётся
// строкой в долларах, хранение ведётся в центах.
type ProductResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       string     `json:"price" example:"19.99"`
	Stock       int32      `json:"stock"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type OrderItemResponse struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int32  `json:"quantity"`
	UnitPrice   string `json:"unitPrice" example:"19.99"`
	Subtotal    string `json:"subtotal" example:"39.98"`
}

type OrderResponse struct {
	ID              int64               `json:"id"`
	CustomerName    string              `json:"customerName"`
	CustomerEmail   string              `json:"customerEmail"`
	CustomerPhone   string              `json:"customerPhone,omitempty"`
	ShippingAddress string              `json:"shippingAddress"`
	TotalAmount     string              `json:"totalAmount" example:"39.98"`
	Status          string              `json:"status"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"createdAt"`
}

type CartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int32 `json:"quantity"`
}

type CheckoutRequest struct {
	CustomerName    string            `json:"customerName"`
	CustomerEmail   string            `json:"customerEmail"`
	CustomerPhone   string            `json:"customerPhone"`
	ShippingAddress string            `json:"shippingAddress"`
	Items           []CartItemRequest `json:"items"`
}

type SaveProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price" example:"19.99"`
	Stock       int32  `json:"stock"`
	ImageURL    string `json:"imageUrl"`
	Status      string `json:"status" example:"ACTIVE"`
}

type CreateIntentRequest struct {
	OrderID int64 `json:"orderId"`
}

type CreateIntentResponse struct {
	IntentID       string `json:"intentId"`
	ClientSecret   string `json:"clientSecret"`
	PublishableKey string `json:"publishableKey"`
	Amount         string `json:"amount" example:"39.98"`
}

type SimulatePaymentRequest struct {
	OrderID int64 `json:"orderId"`
}

type SimulatePaymentResponse struct {
	OrderID   int64  `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Status    string `json:"status"`
}

type StatsResponse struct {
	TotalOrders  int64  `json:"totalOrders"`
	TotalRevenue string `json:"totalRevenue" example:"1024.50"`
	AverageValue string `json:"averageValue" example:"56.91"`
}

// SettingsResponse отражает сконфигурированные интеграции.
type SettingsResponse struct {
	PaymentsConfigured bool `json:"paymentsConfigured"`
	TelegramConfigured bool `json:"telegramConfigured"`
	StorageConfigured  bool `json:"storageConfigured"`
	EventsConfigured   bool `json:"eventsConfigured"`
}

type SettingsActionRequest struct {
	Action string `json:"action" example:"testTelegram"`
}

func NewProductResponse(product *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       formatCents(product.Price),
		Stock:       product.Stock,
		ImageURL:    product.ImageURL,
		Status:      string(product.Status),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func NewArrProductResponse(products []domain.Product) []ProductResponse {
	result := make([]ProductResponse, 0, len(products))
	for i := range products {
		result = append(result, *NewProductResponse(&products[i]))
	}

	return result
}

func NewOrderResponse(order *domain.Order) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   formatCents(item.UnitPrice),
			Subtotal:    formatCents(item.Subtotal),
		})
	}

	return &OrderResponse{
		ID:              order.ID,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		CustomerPhone:   order.CustomerPhone,
		ShippingAddress: order.ShippingAddress,
		TotalAmount:     formatCents(order.TotalAmount),
		Status:          string(order.Status),
		Items:           items,
		CreatedAt:       order.CreatedAt,
	}
}

func (r *CheckoutRequest) ToUseCase() *usecase.CheckoutReq {
	items := make([]usecase.CartItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, usecase.CartItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	return usecase.NewCheckoutReq(r.CustomerName, r.CustomerEmail, r.CustomerPhone, r.ShippingAddress, items)
}

func (r *SaveProductRequest) ToUseCase() (*usecase.SaveProductReq, error) {
	price, err := parsePriceToCents(r.Price)
	if err != nil {
		return nil, err
	}

	return usecase.NewSaveProductReq(
		r.Name, r.Description, price, r.Stock, r.ImageURL, domain.ProductStatus(r.Status),
	), nil
}
