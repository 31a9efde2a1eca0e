package usecase

import (
	"context"

	"github.com/minishop-tech/go-backend/internal/domain"
	"github.com/minishop-tech/go-backend/pkg/e"
)

// ReportUseCase — отчётный интерфейс поверх хранилища заказов,
// используется командами чат-бота. Только чтение.
type ReportUseCase struct {
	orderRepo OrderRepository
}

func NewReportUC(orderRepo OrderRepository) *ReportUseCase {
	return &ReportUseCase{orderRepo: orderRepo}
}

// RecentOrders возвращает последние заказы, новые первыми.
func (r *ReportUseCase) RecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	const (
		op           = "ReportUseCase.RecentOrders"
		defaultLimit = 10
	)

	if limit <= 0 {
		limit = defaultLimit
	}

	orders, err := r.orderRepo.Recent(ctx, limit)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return orders, nil
}

// OrderDetails возвращает один заказ с позициями.
func (r *ReportUseCase) OrderDetails(ctx context.Context, id int64) (*domain.Order, error) {
	const op = "ReportUseCase.OrderDetails"

	if id <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidOrderID)
	}

	order, err := r.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return order, nil
}

// Stats возвращает агрегаты по заказам: количество, выручку и средний чек.
func (r *ReportUseCase) Stats(ctx context.Context) (*OrderStats, error) {
	const op = "ReportUseCase.Stats"

	stats, err := r.orderRepo.Stats(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return stats, nil
}
