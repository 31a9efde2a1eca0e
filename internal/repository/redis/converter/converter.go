//go:generate goverter gen github.com/minishop-tech/go-backend/internal/repository/redis/converter

package converter

import (
	"time"

	"github.com/minishop-tech/go-backend/internal/domain"
)

// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertProductStatus
// goverter:extend ConvertProductStatusToString
type ProductConverter interface {
	ToRedisModel(entity *domain.Product) *ProductRedisModel
	ToEntity(model *ProductRedisModel) *domain.Product
}

func ConvertPointerTime(t *time.Time) *time.Time {
	return t
}

func ConvertTime(t time.Time) time.Time {
	return t
}

func ConvertProductStatus(s string) domain.ProductStatus {
	return domain.ProductStatus(s)
}

func ConvertProductStatusToString(s domain.ProductStatus) string {
	return string(s)
}
