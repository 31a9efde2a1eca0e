package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/minishop-tech/go-backend/internal/domain"
	"github.com/minishop-tech/go-backend/pkg/e"
	"github.com/stretchr/testify/require"
)

func pendingOrder(id int64, amount int64, items ...domain.OrderItem) *domain.Order {
	return &domain.Order{
		ID:          id,
		Status:      domain.OrderStatusPending,
		TotalAmount: amount,
		Items:       items,
	}
}

func newPaymentUC(
	orderRepo *fakeOrderRepo,
	productRepo *fakeProductRepo,
	outboxRepo *fakeOutboxRepo,
	gateway *fakeGateway,
	notifier *fakeNotifier,
) *PaymentUseCase {
	return NewPaymentUC(
		orderRepo,
		productRepo,
		newFakePaymentEventRepo(),
		outboxRepo,
		fakeDB{},
		gateway,
		notifier,
		"pk_test_123",
		nopLogger{},
	)
}

func TestPaymentUseCase_CreateIntent(t *testing.T) {
	orderRepo := newFakeOrderRepo(pendingOrder(1, 2500))
	gateway := &fakeGateway{intent: &PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret"}}
	uc := newPaymentUC(orderRepo, newFakeProductRepo(), &fakeOutboxRepo{}, gateway, &fakeNotifier{})

	res, err := uc.CreateIntent(context.Background(), 1)
	require.NoError(t, err)

	require.Equal(t, "pi_1", res.IntentID)
	require.Equal(t, "pi_1_secret", res.ClientSecret)
	require.Equal(t, "pk_test_123", res.PublishableKey)
	require.Equal(t, int64(2500), res.Amount)
}

func TestPaymentUseCase_CreateIntent_RetriesFailedOrder(t *testing.T) {
	failed := pendingOrder(1, 2500)
	failed.Status = domain.OrderStatusFailed
	orderRepo := newFakeOrderRepo(failed)
	gateway := &fakeGateway{intent: &PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret"}}
	uc := newPaymentUC(orderRepo, newFakeProductRepo(), &fakeOutboxRepo{}, gateway, &fakeNotifier{})

	_, err := uc.CreateIntent(context.Background(), 1)
	require.NoError(t, err)

	require.Equal(t, domain.OrderStatusPending, orderRepo.status(1))
}

func TestPaymentUseCase_CreateIntent_PaidOrder(t *testing.T) {
	paid := pendingOrder(1, 2500)
	paid.Status = domain.OrderStatusPaid
	uc := newPaymentUC(newFakeOrderRepo(paid), newFakeProductRepo(), &fakeOutboxRepo{}, &fakeGateway{}, &fakeNotifier{})

	_, err := uc.CreateIntent(context.Background(), 1)
	require.ErrorIs(t, err, e.ErrOrderNotPayable)
}

func TestPaymentUseCase_HandleWebhook_InvalidSignature(t *testing.T) {
	orderRepo := newFakeOrderRepo(pendingOrder(1, 2500))
	outboxRepo := &fakeOutboxRepo{}
	notifier := &fakeNotifier{}
	gateway := &fakeGateway{parseErr: e.ErrInvalidSignature}
	uc := newPaymentUC(orderRepo, newFakeProductRepo(), outboxRepo, gateway, notifier)

	err := uc.HandleWebhook(context.Background(), []byte("{}"), "bad")
	require.ErrorIs(t, err, e.ErrInvalidSignature)

	require.Equal(t, domain.OrderStatusPending, orderRepo.status(1))
	require.Empty(t, outboxRepo.types())
	require.Zero(t, notifier.successes)
}

func TestPaymentUseCase_HandleWebhook_Succeeded(t *testing.T) {
	orderRepo := newFakeOrderRepo(pendingOrder(1, 2500))
	outboxRepo := &fakeOutboxRepo{}
	notifier := &fakeNotifier{}
	gateway := &fakeGateway{event: &PaymentEvent{
		ID:        "evt_1",
		Type:      PaymentEventSucceeded,
		OrderID:   1,
		PaymentID: "pi_1",
		Amount:    2500,
	}}
	uc := newPaymentUC(orderRepo, newFakeProductRepo(), outboxRepo, gateway, notifier)

	err := uc.HandleWebhook(context.Background(), []byte("{}"), "sig")
	require.NoError(t, err)

	require.Equal(t, domain.OrderStatusPaid, orderRepo.status(1))
	require.Equal(t, []OutboxEventType{OutboxEventPaymentSucceeded}, outboxRepo.types())
	require.Equal(t, 1, notifier.successes)
}

func TestPaymentUseCase_HandleWebhook_DuplicateEvent(t *testing.T) {
	orderRepo := newFakeOrderRepo(pendingOrder(1, 2500))
	outboxRepo := &fakeOutboxRepo{}
	notifier := &fakeNotifier{}
	gateway := &fakeGateway{event: &PaymentEvent{
		ID:        "evt_1",
		Type:      PaymentEventSucceeded,
		OrderID:   1,
		PaymentID: "pi_1",
	}}
	uc := newPaymentUC(orderRepo, newFakeProductRepo(), outboxRepo, gateway, notifier)

	require.NoError(t, uc.HandleWebhook(context.Background(), []byte("{}"), "sig"))
	require.NoError(t, uc.HandleWebhook(context.Background(), []byte("{}"), "sig"))

	require.Equal(t, 1, notifier.successes)
	require.Len(t, outboxRepo.types(), 1)
}

func TestPaymentUseCase_HandleWebhook_Failed_ReleasesStock(t *testing.T) {
	productRepo := newFakeProductRepo(activeProduct(1, 1000, 3))
	order := pendingOrder(1, 2000, domain.NewOrderItem(1, "Widget", 2, 1000))
	orderRepo := newFakeOrderRepo(order)
	outboxRepo := &fakeOutboxRepo{}
	notifier := &fakeNotifier{}
	gateway := &fakeGateway{event: &PaymentEvent{
		ID:            "evt_2",
		Type:          PaymentEventFailed,
		OrderID:       1,
		PaymentID:     "pi_1",
		FailureReason: "card_declined",
	}}
	uc := newPaymentUC(orderRepo, productRepo, outboxRepo, gateway, notifier)

	err := uc.HandleWebhook(context.Background(), []byte("{}"), "sig")
	require.NoError(t, err)

	require.Equal(t, domain.OrderStatusFailed, orderRepo.status(1))
	require.Equal(t, int32(5), productRepo.stock(1))
	require.Equal(t, []OutboxEventType{OutboxEventPaymentFailed}, outboxRepo.types())
	require.Equal(t, 1, notifier.failures)
}

func TestPaymentUseCase_HandleWebhook_FailureAfterPaidRejected(t *testing.T) {
	productRepo := newFakeProductRepo(activeProduct(1, 1000, 3))
	paid := pendingOrder(1, 2000, domain.NewOrderItem(1, "Widget", 2, 1000))
	paid.Status = domain.OrderStatusPaid
	orderRepo := newFakeOrderRepo(paid)
	outboxRepo := &fakeOutboxRepo{}
	notifier := &fakeNotifier{}
	gateway := &fakeGateway{event: &PaymentEvent{
		ID:        "evt_late",
		Type:      PaymentEventFailed,
		OrderID:   1,
		PaymentID: "pi_1",
	}}
	uc := newPaymentUC(orderRepo, productRepo, outboxRepo, gateway, notifier)

	// Машина статусов не допускает PAID -> FAILED: событие подтверждается
	// без каких-либо побочных эффектов
	err := uc.HandleWebhook(context.Background(), []byte("{}"), "sig")
	require.NoError(t, err)

	require.Equal(t, domain.OrderStatusPaid, orderRepo.status(1))
	require.Equal(t, int32(3), productRepo.stock(1))
	require.Empty(t, outboxRepo.types())
	require.Zero(t, notifier.failures)
}

func TestPaymentUseCase_Transition_RejectsForbiddenPair(t *testing.T) {
	paid := pendingOrder(1, 2500)
	paid.Status = domain.OrderStatusPaid
	orderRepo := newFakeOrderRepo(paid)
	uc := newPaymentUC(orderRepo, newFakeProductRepo(), &fakeOutboxRepo{}, &fakeGateway{}, &fakeNotifier{})

	err := uc.transition(context.Background(), 1, domain.OrderStatusPaid, domain.OrderStatusFailed, nil)
	require.ErrorIs(t, err, e.ErrStatusTransition)
	require.Equal(t, domain.OrderStatusPaid, orderRepo.status(1))
}

func TestPaymentUseCase_HandleWebhook_UnknownType(t *testing.T) {
	orderRepo := newFakeOrderRepo(pendingOrder(1, 2500))
	outboxRepo := &fakeOutboxRepo{}
	gateway := &fakeGateway{event: &PaymentEvent{ID: "evt_3", Type: PaymentEventUnknown, OrderID: 1}}
	uc := newPaymentUC(orderRepo, newFakeProductRepo(), outboxRepo, gateway, &fakeNotifier{})

	err := uc.HandleWebhook(context.Background(), []byte("{}"), "sig")
	require.NoError(t, err)

	require.Equal(t, domain.OrderStatusPending, orderRepo.status(1))
	require.Empty(t, outboxRepo.types())
}

func TestPaymentUseCase_SimulatePayment(t *testing.T) {
	orderRepo := newFakeOrderRepo(pendingOrder(1, 2500))
	outboxRepo := &fakeOutboxRepo{}
	notifier := &fakeNotifier{}
	uc := newPaymentUC(orderRepo, newFakeProductRepo(), outboxRepo, &fakeGateway{}, notifier)

	res, err := uc.SimulatePayment(context.Background(), 1)
	require.NoError(t, err)

	require.Equal(t, int64(1), res.OrderID)
	require.True(t, strings.HasPrefix(res.PaymentID, "SIMULATED-"))
	require.Equal(t, domain.OrderStatusPaid, orderRepo.status(1))
	require.Equal(t, []OutboxEventType{OutboxEventPaymentSucceeded}, outboxRepo.types())
	require.Equal(t, 1, notifier.successes)

	// Повторная симуляция уже оплаченного заказа
	_, err = uc.SimulatePayment(context.Background(), 1)
	require.ErrorIs(t, err, e.ErrOrderNotPayable)
	require.Equal(t, 1, notifier.successes)
}
