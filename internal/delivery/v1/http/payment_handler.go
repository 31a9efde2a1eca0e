package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/minishop-tech/go-backend/internal/usecase"
	"github.com/minishop-tech/go-backend/pkg/e"
	"github.com/minishop-tech/go-backend/pkg/logger"
)

const maxWebhookBodySize = 64 << 10

type PaymentHandler struct {
	paymentUsecase usecase.PaymentUC
	logger         logger.Logger
}

func NewPaymentHandler(paymentUsecase usecase.PaymentUC, logger logger.Logger) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase, logger: logger}
}

// createIntent
//
//	@Summary		Создание платёжного интента
//	@Description	Создаёт интент у процессора на полную сумму заказа
//	@Tags			payments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateIntentRequest	true	"Идентификатор заказа"
//	@Success		200		{object}	CreateIntentResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse	"Заказ не ожидает оплаты"
//	@Router			/payments/create-intent [post]
func (p *PaymentHandler) createIntent(w http.ResponseWriter, r *http.Request) {
	var body CreateIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, e.ErrInvalidOrderID)
		return
	}
	if body.OrderID <= 0 {
		WriteError(w, e.ErrInvalidOrderID)
		return
	}

	res, err := p.paymentUsecase.CreateIntent(r.Context(), body.OrderID)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &CreateIntentResponse{
		IntentID:       res.IntentID,
		ClientSecret:   res.ClientSecret,
		PublishableKey: res.PublishableKey,
		Amount:         formatCents(res.Amount),
	})
}

// handleWebhook
//
//	@Summary		Вебхук платёжного процессора
//	@Description	Принимает подписанные события об исходе оплаты. Тело читается как есть для проверки подписи.
//	@Tags			payments
//	@Accept			json
//	@Produce		json
//	@Param			Stripe-Signature	header		string	true	"Подпись вебхука"
//	@Success		200					{object}	map[string]bool
//	@Failure		400					{object}	ErrorResponse	"Неверная подпись"
//	@Router			/payments/webhook [post]
func (p *PaymentHandler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodySize))
	if err != nil {
		WriteError(w, e.ErrInternalServerError)
		return
	}

	signature := r.Header.Get("Stripe-Signature")
	if signature == "" {
		WriteError(w, e.ErrMissingSignature)
		return
	}

	if err := p.paymentUsecase.HandleWebhook(r.Context(), payload, signature); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]bool{"received": true})
}

// simulatePayment
//
//	@Summary		Симуляция успешной оплаты
//	@Description	Помечает заказ оплаченным без обращения к процессору. Тестовый путь.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Security		AdminToken
//	@Param			request	body		SimulatePaymentRequest	true	"Идентификатор заказа"
//	@Success		200		{object}	SimulatePaymentResponse
//	@Failure		409		{object}	ErrorResponse	"Заказ не ожидает оплаты"
//	@Router			/admin/payments/simulate [post]
func (p *PaymentHandler) simulatePayment(w http.ResponseWriter, r *http.Request) {
	var body SimulatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, e.ErrInvalidOrderID)
		return
	}
	if body.OrderID <= 0 {
		WriteError(w, e.ErrInvalidOrderID)
		return
	}

	res, err := p.paymentUsecase.SimulatePayment(r.Context(), body.OrderID)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &SimulatePaymentResponse{
		OrderID:   res.OrderID,
		PaymentID: res.PaymentID,
		Status:    "PAID",
	})
}
