package usecase

import (
	"context"
	"fmt"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/minishop-tech/go-backend/internal/domain"
	"github.com/minishop-tech/go-backend/pkg/e"
	"github.com/minishop-tech/go-backend/pkg/logger"
)

// PaymentUseCase — платёжный мост: создание интентов, обработка вебхуков
// процессора и симуляция оплаты для проверки пути уведомлений.
type PaymentUseCase struct {
	orderRepo        OrderRepository
	productRepo      ProductRepository
	paymentEventRepo PaymentEventRepository
	outboxRepo       OutboxRepository
	dbPool           transaction.Transactional
	gateway          PaymentGateway
	notifier         Notifier
	publishableKey   string
	logger           logger.Logger
}

func NewPaymentUC(
	orderRepo OrderRepository,
	productRepo ProductRepository,
	paymentEventRepo PaymentEventRepository,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	gateway PaymentGateway,
	notifier Notifier,
	publishableKey string,
	logger logger.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		paymentEventRepo: paymentEventRepo,
		outboxRepo:       outboxRepo,
		dbPool:           dbPool,
		gateway:          gateway,
		notifier:         notifier,
		publishableKey:   publishableKey,
		logger:           logger,
	}
}

// CreateIntent создаёт платёжный интент у процессора на полную сумму заказа.
// Заказ в статусе FAILED переводится обратно в PENDING для повторной оплаты.
func (p *PaymentUseCase) CreateIntent(ctx context.Context, orderID int64) (*CreateIntentRes, error) {
	const op = "PaymentUseCase.CreateIntent"

	order, err := p.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if order.Status == domain.OrderStatusFailed {
		if err := p.transition(ctx, order.ID, domain.OrderStatusFailed, domain.OrderStatusPending, nil); err != nil {
			return nil, e.Wrap(op, err)
		}
		order.Status = domain.OrderStatusPending
	}

	if order.Status != domain.OrderStatusPending {
		return nil, e.Wrap(op, e.ErrOrderNotPayable)
	}

	intent, err := p.gateway.CreateIntent(ctx, order.ID, order.TotalAmount)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &CreateIntentRes{
		IntentID:       intent.ID,
		ClientSecret:   intent.ClientSecret,
		PublishableKey: p.publishableKey,
		Amount:         order.TotalAmount,
	}, nil
}

// HandleWebhook обрабатывает подписанное событие процессора.
// Неверная подпись отклоняется до любых побочных эффектов; повторная
// доставка события дедуплицируется по идентификатору события процессора.
func (p *PaymentUseCase) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	const op = "PaymentUseCase.HandleWebhook"

	event, err := p.gateway.ParseWebhookEvent(payload, signature)
	if err != nil {
		return e.Wrap(op, err)
	}

	switch event.Type {
	case PaymentEventSucceeded:
		return p.handlePaymentSuccess(ctx, event)
	case PaymentEventFailed:
		return p.handlePaymentFailure(ctx, event)
	default:
		// Неизвестные типы событий подтверждаются без обработки
		p.logger.Infof("Unhandled payment event type, event_id: %s", event.ID)
		return nil
	}
}

// SimulatePayment помечает заказ оплаченным без обращения к процессору
// и отправляет ровно одно уведомление об успешной оплате. Тестовый путь.
func (p *PaymentUseCase) SimulatePayment(ctx context.Context, orderID int64) (*SimulatePaymentRes, error) {
	const op = "PaymentUseCase.SimulatePayment"

	order, err := p.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	paymentID := fmt.Sprintf("SIMULATED-%d", time.Now().UnixNano())

	order.Status = domain.OrderStatusPaid
	outboxEvent, err := newOrderOutboxEvent(OutboxEventPaymentSucceeded, order, paymentID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := p.transition(ctx, order.ID, domain.OrderStatusPending, domain.OrderStatusPaid, outboxEvent); err != nil {
		return nil, e.Wrap(op, err)
	}

	if notifyErr := p.notifier.NotifyPaymentSuccess(ctx, order, paymentID); notifyErr != nil {
		p.logger.Warnf("Failed to send payment notification: %v", e.Wrap(op, notifyErr))
	}

	return NewSimulatePaymentRes(order.ID, paymentID), nil
}

// handlePaymentSuccess переводит заказ PENDING -> PAID и уведомляет об оплате.
func (p *PaymentUseCase) handlePaymentSuccess(ctx context.Context, event *PaymentEvent) error {
	const op = "PaymentUseCase.handlePaymentSuccess"

	order, applied, err := p.applyTransition(ctx, event, domain.OrderStatusPaid, OutboxEventPaymentSucceeded)
	if err != nil {
		return e.Wrap(op, err)
	}
	if !applied {
		return nil
	}

	if notifyErr := p.notifier.NotifyPaymentSuccess(ctx, order, event.PaymentID); notifyErr != nil {
		p.logger.Warnf("Failed to send payment notification: %v", e.Wrap(op, notifyErr))
	}

	return nil
}

// handlePaymentFailure переводит заказ PENDING -> FAILED, возвращает
// зарезервированные остатки на склад и уведомляет об отказе.
func (p *PaymentUseCase) handlePaymentFailure(ctx context.Context, event *PaymentEvent) error {
	const op = "PaymentUseCase.handlePaymentFailure"

	order, applied, err := p.applyTransition(ctx, event, domain.OrderStatusFailed, OutboxEventPaymentFailed)
	if err != nil {
		return e.Wrap(op, err)
	}
	if !applied {
		return nil
	}

	if notifyErr := p.notifier.NotifyPaymentFailed(ctx, order, event.PaymentID, event.FailureReason); notifyErr != nil {
		p.logger.Warnf("Failed to send payment notification: %v", e.Wrap(op, notifyErr))
	}

	return nil
}

// applyTransition в одной транзакции регистрирует событие процессора,
// выполняет переход статуса и записывает outbox-событие. Возвращает
// applied=false для повторных доставок и недопустимых переходов.
func (p *PaymentUseCase) applyTransition(ctx context.Context, event *PaymentEvent, to domain.OrderStatus, outboxType OutboxEventType) (*domain.Order, bool, error) {
	const op = "PaymentUseCase.applyTransition"

	order, err := p.orderRepo.GetByID(ctx, event.OrderID)
	if err != nil {
		return nil, false, e.Wrap(op, err)
	}

	if !order.Status.CanTransitionTo(to) {
		p.logger.Warnf("Order %d is %s, transition to %s rejected, event_id: %s", order.ID, order.Status, to, event.ID)
		return nil, false, nil
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, false, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	var first bool
	first, err = p.paymentEventRepo.Register(ctx, event.ID, string(event.Type), event.OrderID)
	if err != nil {
		return nil, false, e.Wrap(op, err)
	}
	if !first {
		p.logger.Infof("Duplicate payment event ignored, event_id: %s", event.ID)
		err = tx.Commit(ctx)
		return nil, false, err
	}

	var updated bool
	updated, err = p.orderRepo.UpdateStatus(ctx, order.ID, domain.OrderStatusPending, to)
	if err != nil {
		return nil, false, e.Wrap(op, err)
	}
	if !updated {
		p.logger.Warnf("Order %d is not PENDING, transition to %s skipped, event_id: %s", order.ID, to, event.ID)
		err = tx.Commit(ctx)
		return nil, false, err
	}

	// Возврат остатков при неуспешной оплате
	if to == domain.OrderStatusFailed {
		for _, item := range order.Items {
			if err = p.productRepo.ReleaseStock(ctx, item.ProductID, item.Quantity); err != nil {
				return nil, false, e.Wrap(op, err)
			}
		}
	}

	order.Status = to
	var outboxEvent *OutboxEvent
	outboxEvent, err = newOrderOutboxEvent(outboxType, order, event.PaymentID)
	if err != nil {
		return nil, false, e.Wrap(op, err)
	}
	if _, err = p.outboxRepo.Create(ctx, outboxEvent); err != nil {
		return nil, false, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, false, e.Wrap(op, err)
	}

	return order, true, nil
}

// transition выполняет одиночный переход статуса в собственной транзакции.
// Допустимость перехода определяет машина статусов заказа.
func (p *PaymentUseCase) transition(ctx context.Context, orderID int64, from, to domain.OrderStatus, outboxEvent *OutboxEvent) error {
	const op = "PaymentUseCase.transition"

	if !from.CanTransitionTo(to) {
		return e.Wrap(op, e.ErrStatusTransition)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	var updated bool
	updated, err = p.orderRepo.UpdateStatus(ctx, orderID, from, to)
	if err != nil {
		return e.Wrap(op, err)
	}
	if !updated {
		err = e.ErrOrderNotPayable
		return err
	}

	if outboxEvent != nil {
		if _, err = p.outboxRepo.Create(ctx, outboxEvent); err != nil {
			return e.Wrap(op, err)
		}
	}

	return tx.Commit(ctx)
}
