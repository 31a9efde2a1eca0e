package stripe

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/jimlawless/whereami"
	"github.com/minishop-tech/go-backend/internal/cfg"
	"github.com/minishop-tech/go-backend/internal/usecase"
	"github.com/minishop-tech/go-backend/pkg/e"
	"github.com/minishop-tech/go-backend/pkg/logger"
	stripego "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

// metadataOrderID — ключ метаданных интента, связывающий платёж с заказом.
const metadataOrderID = "orderId"

// Gateway — мост к платёжному процессору Stripe.
type Gateway struct {
	api    *client.API
	cfg    *cfg.StripeCfg
	logger logger.Logger
}

func NewGateway(cfg *cfg.StripeCfg, logger logger.Logger) *Gateway {
	var api *client.API
	if cfg.Configured() {
		api = &client.API{}
		api.Init(cfg.SecretKey, nil)
	}

	return &Gateway{
		api:    api,
		cfg:    cfg,
		logger: logger,
	}
}

// CreateIntent создаёт платёжный интент на сумму заказа в центах.
// Идентификатор заказа записывается в метаданные интента и возвращается
// процессором в вебхуках.
func (g *Gateway) CreateIntent(ctx context.Context, orderID int64, amount int64) (*usecase.PaymentIntent, error) {
	if g.api == nil {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrPaymentsNotConfigured)
	}

	params := &stripego.PaymentIntentParams{
		Params: stripego.Params{
			Context: ctx,
		},
		Amount:   stripego.Int64(amount),
		Currency: stripego.String(string(stripego.CurrencyUSD)),
		AutomaticPaymentMethods: &stripego.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripego.Bool(true),
		},
	}
	params.AddMetadata(metadataOrderID, strconv.FormatInt(orderID, 10))

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &usecase.PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// ParseWebhookEvent проверяет подпись вебхука и разбирает событие.
// Любая ошибка проверки возвращается до каких-либо побочных эффектов.
func (g *Gateway) ParseWebhookEvent(payload []byte, signature string) (*usecase.PaymentEvent, error) {
	if signature == "" {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrMissingSignature)
	}

	event, err := webhook.ConstructEvent(payload, signature, g.cfg.WebhookSecret)
	if err != nil {
		g.logger.Warnf("Webhook signature verification failed: %v", err)
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrInvalidSignature)
	}

	result := &usecase.PaymentEvent{
		ID:   event.ID,
		Type: paymentEventType(event.Type),
	}

	if result.Type == usecase.PaymentEventUnknown {
		return result, nil
	}

	var intent stripego.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	orderID, err := strconv.ParseInt(intent.Metadata[metadataOrderID], 10, 64)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrInvalidOrderID)
	}

	result.OrderID = orderID
	result.PaymentID = intent.ID
	result.Amount = intent.Amount
	if intent.LastPaymentError != nil {
		result.FailureReason = intent.LastPaymentError.Msg
	}

	return result, nil
}

func paymentEventType(t stripego.EventType) usecase.PaymentEventType {
	switch t {
	case stripego.EventTypePaymentIntentSucceeded:
		return usecase.PaymentEventSucceeded
	case stripego.EventTypePaymentIntentPaymentFailed:
		return usecase.PaymentEventFailed
	default:
		return usecase.PaymentEventUnknown
	}
}
