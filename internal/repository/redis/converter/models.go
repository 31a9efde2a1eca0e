package converter

import "time"

// ProductRedisModel — представление продукта в кэше (JSON).
type ProductRedisModel struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       int64      `json:"price"`
	Stock       int32      `json:"stock"`
	ImageURL    string     `json:"image_url"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
