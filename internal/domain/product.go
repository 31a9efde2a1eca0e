package domain

import "time"

// ProductStatus определяет видимость продукта в витрине.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
)

// Product описывает продукт каталога
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       int64 // Цена хранится в центах
	Stock       int32
	ImageURL    string
	Status      ProductStatus
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func NewProduct(name, description string, price int64, stock int32, imageURL string, status ProductStatus) *Product {
	if status == "" {
		status = ProductStatusActive
	}

	return &Product{
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		ImageURL:    imageURL,
		Status:      status,
	}
}

// IsActive сообщает, доступен ли продукт для покупки.
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}
