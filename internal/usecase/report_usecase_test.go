package usecase

import (
	"context"
	"testing"

	"github.com/minishop-tech/go-backend/internal/domain"
	"github.com/minishop-tech/go-backend/pkg/e"
	"github.com/stretchr/testify/require"
)

func TestReportUseCase_RecentOrders_DefaultLimit(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	for i := 0; i < 15; i++ {
		_, err := orderRepo.Create(context.Background(), &domain.Order{Status: domain.OrderStatusPending})
		require.NoError(t, err)
	}

	uc := NewReportUC(orderRepo)

	orders, err := uc.RecentOrders(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, orders, 10)

	// Новые первыми
	require.Equal(t, int64(15), orders[0].ID)
}

func TestReportUseCase_Stats_CountsOnlyPaid(t *testing.T) {
	paid := &domain.Order{ID: 1, Status: domain.OrderStatusPaid, TotalAmount: 1000}
	paid2 := &domain.Order{ID: 2, Status: domain.OrderStatusPaid, TotalAmount: 3000}
	pending := &domain.Order{ID: 3, Status: domain.OrderStatusPending, TotalAmount: 9999}

	uc := NewReportUC(newFakeOrderRepo(paid, paid2, pending))

	stats, err := uc.Stats(context.Background())
	require.NoError(t, err)

	require.Equal(t, int64(2), stats.TotalOrders)
	require.Equal(t, int64(4000), stats.TotalRevenue)
	require.Equal(t, int64(2000), stats.AverageValue)
}

func TestReportUseCase_OrderDetails(t *testing.T) {
	uc := NewReportUC(newFakeOrderRepo(&domain.Order{ID: 5, Status: domain.OrderStatusPaid}))

	order, err := uc.OrderDetails(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, int64(5), order.ID)

	_, err = uc.OrderDetails(context.Background(), -1)
	require.ErrorIs(t, err, e.ErrInvalidOrderID)
}
