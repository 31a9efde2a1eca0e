package usecase

import (
	"context"
	"testing"

	"github.com/minishop-tech/go-backend/internal/domain"
	"github.com/minishop-tech/go-backend/pkg/e"
	"github.com/stretchr/testify/require"
)

func newOrderUC(productRepo *fakeProductRepo, orderRepo *fakeOrderRepo, outboxRepo *fakeOutboxRepo, notifier *fakeNotifier) *OrderUseCase {
	return NewOrderUC(orderRepo, productRepo, outboxRepo, newFakeCacheRepo(), fakeDB{}, notifier, nopLogger{})
}

func activeProduct(id int64, price int64, stock int32) *domain.Product {
	return &domain.Product{
		ID:     id,
		Name:   "Widget",
		Price:  price,
		Stock:  stock,
		Status: domain.ProductStatusActive,
	}
}

func TestOrderUseCase_Checkout(t *testing.T) {
	productRepo := newFakeProductRepo(activeProduct(1, 1000, 5))
	orderRepo := newFakeOrderRepo()
	outboxRepo := &fakeOutboxRepo{}
	notifier := &fakeNotifier{}
	uc := newOrderUC(productRepo, orderRepo, outboxRepo, notifier)

	order, err := uc.Checkout(context.Background(), &CheckoutReq{
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		ShippingAddress: "1 Main St",
		Items:           []CartItem{{ProductID: 1, Quantity: 2}},
	})
	require.NoError(t, err)

	require.Equal(t, domain.OrderStatusPending, order.Status)
	require.Equal(t, int64(2000), order.TotalAmount)
	require.Len(t, order.Items, 1)
	require.Equal(t, int64(1000), order.Items[0].UnitPrice)

	require.Equal(t, int32(3), productRepo.stock(1))
	require.Equal(t, []OutboxEventType{OutboxEventOrderCreated}, outboxRepo.types())
	require.Equal(t, 1, notifier.newOrders)
}

func TestOrderUseCase_Checkout_MergesDuplicateItems(t *testing.T) {
	productRepo := newFakeProductRepo(activeProduct(1, 500, 10))
	orderRepo := newFakeOrderRepo()
	uc := newOrderUC(productRepo, orderRepo, &fakeOutboxRepo{}, &fakeNotifier{})

	order, err := uc.Checkout(context.Background(), &CheckoutReq{
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		ShippingAddress: "1 Main St",
		Items: []CartItem{
			{ProductID: 1, Quantity: 1},
			{ProductID: 1, Quantity: 2},
		},
	})
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	require.Equal(t, int32(3), order.Items[0].Quantity)
	require.Equal(t, int32(7), productRepo.stock(1))
}

func TestOrderUseCase_Checkout_InsufficientStock(t *testing.T) {
	productRepo := newFakeProductRepo(activeProduct(1, 1000, 1))
	orderRepo := newFakeOrderRepo()
	outboxRepo := &fakeOutboxRepo{}
	uc := newOrderUC(productRepo, orderRepo, outboxRepo, &fakeNotifier{})

	_, err := uc.Checkout(context.Background(), &CheckoutReq{
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		ShippingAddress: "1 Main St",
		Items:           []CartItem{{ProductID: 1, Quantity: 2}},
	})
	require.ErrorIs(t, err, e.ErrInsufficientStock)

	require.Empty(t, orderRepo.orders)
	require.Empty(t, outboxRepo.types())
}

func TestOrderUseCase_Checkout_MergedQuantityOverflow(t *testing.T) {
	productRepo := newFakeProductRepo(activeProduct(1, 1000, 5))
	orderRepo := newFakeOrderRepo()
	outboxRepo := &fakeOutboxRepo{}
	uc := newOrderUC(productRepo, orderRepo, outboxRepo, &fakeNotifier{})

	// Каждое слагаемое валидно, сумма переполняет int32
	_, err := uc.Checkout(context.Background(), &CheckoutReq{
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		ShippingAddress: "1 Main St",
		Items: []CartItem{
			{ProductID: 1, Quantity: 1 << 30},
			{ProductID: 1, Quantity: 1 << 30},
		},
	})
	require.ErrorIs(t, err, e.ErrInvalidQuantity)

	require.Empty(t, orderRepo.orders)
	require.Empty(t, outboxRepo.types())
	require.Equal(t, int32(5), productRepo.stock(1))
}

func TestMergeCartItems_OverflowRejected(t *testing.T) {
	merged, err := mergeCartItems([]CartItem{
		{ProductID: 1, Quantity: 2147483647},
		{ProductID: 1, Quantity: 1},
	})
	require.ErrorIs(t, err, e.ErrInvalidQuantity)
	require.Nil(t, merged)

	merged, err = mergeCartItems([]CartItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
		{ProductID: 1, Quantity: 3},
	})
	require.NoError(t, err)
	require.Equal(t, []CartItem{{ProductID: 1, Quantity: 5}, {ProductID: 2, Quantity: 1}}, merged)
}

func TestOrderUseCase_Checkout_InactiveProduct(t *testing.T) {
	hidden := activeProduct(1, 1000, 5)
	hidden.Status = domain.ProductStatusInactive
	uc := newOrderUC(newFakeProductRepo(hidden), newFakeOrderRepo(), &fakeOutboxRepo{}, &fakeNotifier{})

	_, err := uc.Checkout(context.Background(), &CheckoutReq{
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		ShippingAddress: "1 Main St",
		Items:           []CartItem{{ProductID: 1, Quantity: 1}},
	})
	require.ErrorIs(t, err, e.ErrProductUnavailable)
}

func TestOrderUseCase_Checkout_Validation(t *testing.T) {
	cases := []struct {
		name string
		req  *CheckoutReq
		want error
	}{
		{
			name: "missing name",
			req: &CheckoutReq{
				CustomerEmail:   "jane@example.com",
				ShippingAddress: "1 Main St",
				Items:           []CartItem{{ProductID: 1, Quantity: 1}},
			},
			want: e.ErrMissingFields,
		},
		{
			name: "email without at sign",
			req: &CheckoutReq{
				CustomerName:    "Jane Doe",
				CustomerEmail:   "jane.example.com",
				ShippingAddress: "1 Main St",
				Items:           []CartItem{{ProductID: 1, Quantity: 1}},
			},
			want: e.ErrMissingFields,
		},
		{
			name: "empty cart",
			req: &CheckoutReq{
				CustomerName:    "Jane Doe",
				CustomerEmail:   "jane@example.com",
				ShippingAddress: "1 Main St",
			},
			want: e.ErrEmptyOrder,
		},
		{
			name: "zero quantity",
			req: &CheckoutReq{
				CustomerName:    "Jane Doe",
				CustomerEmail:   "jane@example.com",
				ShippingAddress: "1 Main St",
				Items:           []CartItem{{ProductID: 1, Quantity: 0}},
			},
			want: e.ErrInvalidQuantity,
		},
		{
			name: "invalid product id",
			req: &CheckoutReq{
				CustomerName:    "Jane Doe",
				CustomerEmail:   "jane@example.com",
				ShippingAddress: "1 Main St",
				Items:           []CartItem{{ProductID: 0, Quantity: 1}},
			},
			want: e.ErrInvalidProductID,
		},
	}

	uc := newOrderUC(newFakeProductRepo(activeProduct(1, 1000, 5)), newFakeOrderRepo(), &fakeOutboxRepo{}, &fakeNotifier{})

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Checkout(context.Background(), tc.req)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestOrderUseCase_GetOrder(t *testing.T) {
	orderRepo := newFakeOrderRepo(&domain.Order{ID: 7, Status: domain.OrderStatusPending, TotalAmount: 1500})
	uc := newOrderUC(newFakeProductRepo(), orderRepo, &fakeOutboxRepo{}, &fakeNotifier{})

	order, err := uc.GetOrder(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, int64(7), order.ID)

	_, err = uc.GetOrder(context.Background(), 0)
	require.ErrorIs(t, err, e.ErrInvalidOrderID)

	_, err = uc.GetOrder(context.Background(), 99)
	require.ErrorIs(t, err, e.ErrOrderNotFound)
}
