package domain

import "time"

// OrderStatus — статус оплаты заказа. Переходы между статусами
// выполняет только платёжный мост.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusFailed    OrderStatus = "FAILED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// CanTransitionTo проверяет допустимость перехода статуса.
// FAILED -> PENDING разрешён для повторной попытки оплаты того же заказа.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusPaid || next == OrderStatusFailed || next == OrderStatusCancelled
	case OrderStatusFailed:
		return next == OrderStatusPending
	default:
		return false
	}
}

// Order описывает заказ. После создания заказ неизменяем,
// кроме поля статуса.
type Order struct {
	ID              int64
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	TotalAmount     int64 // Сумма хранится в центах
	Status          OrderStatus
	CreatedAt       time.Time
	UpdatedAt       *time.Time
	Items           []OrderItem
}

// OrderItem — позиция заказа. Цена фиксируется в момент создания заказа
// и не отслеживает последующие изменения каталога.
type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	Quantity    int32
	UnitPrice   int64 // Снимок цены продукта в центах
	Subtotal    int64 // Quantity * UnitPrice
}

func NewOrderItem(productID int64, productName string, quantity int32, unitPrice int64) OrderItem {
	return OrderItem{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Subtotal:    int64(quantity) * unitPrice,
	}
}

func NewOrder(customerName, customerEmail, customerPhone, shippingAddress string, items []OrderItem) *Order {
	var total int64
	for _, item := range items {
		total += item.Subtotal
	}

	return &Order{
		CustomerName:    customerName,
		CustomerEmail:   customerEmail,
		CustomerPhone:   customerPhone,
		ShippingAddress: shippingAddress,
		TotalAmount:     total,
		Status:          OrderStatusPending,
		Items:           items,
	}
}
