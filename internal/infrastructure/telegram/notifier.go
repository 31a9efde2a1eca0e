package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jimlawless/whereami"
	"github.com/minishop-tech/go-backend/internal/cfg"
	"github.com/minishop-tech/go-backend/internal/domain"
	"github.com/minishop-tech/go-backend/pkg/e"
	"github.com/minishop-tech/go-backend/pkg/jitter"
	"github.com/minishop-tech/go-backend/pkg/logger"
)

const (
	maxSendAttempts = 3
	baseBackoff     = 500 * time.Millisecond
	maxBackoff      = 5 * time.Second
)

// Notifier отправляет уведомления о заказах в чат магазина.
// При пустом токене или chat id уведомления отключены: все методы
// отправки становятся no-op без ошибок.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	cfg    *cfg.TelegramCfg
	logger logger.Logger
}

func NewNotifier(bot *tgbotapi.BotAPI, cfg *cfg.TelegramCfg, logger logger.Logger) *Notifier {
	return &Notifier{
		bot:    bot,
		cfg:    cfg,
		logger: logger,
	}
}

func (n *Notifier) Enabled() bool {
	return n.bot != nil && n.cfg.Configured()
}

// NotifyNewOrder отправляет сводку нового заказа с позициями.
func (n *Notifier) NotifyNewOrder(ctx context.Context, order *domain.Order) error {
	if !n.Enabled() {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("🛒 *New Order*\n\n")
	sb.WriteString(fmt.Sprintf("*Order #%d*\n", order.ID))
	sb.WriteString(fmt.Sprintf("Customer: %s\n", order.CustomerName))
	sb.WriteString(fmt.Sprintf("Email: %s\n", order.CustomerEmail))
	if order.CustomerPhone != "" {
		sb.WriteString(fmt.Sprintf("Phone: %s\n", order.CustomerPhone))
	}
	sb.WriteString(fmt.Sprintf("Address: %s\n\n", order.ShippingAddress))
	writeOrderItems(&sb, order)
	sb.WriteString(fmt.Sprintf("\n*Total: $%s*\n", FormatAmount(order.TotalAmount)))
	sb.WriteString("Status: PENDING")

	return n.send(ctx, sb.String())
}

// NotifyPaymentSuccess отправляет уведомление об успешной оплате заказа.
func (n *Notifier) NotifyPaymentSuccess(ctx context.Context, order *domain.Order, paymentID string) error {
	if !n.Enabled() {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("✅ *Payment Received*\n\n")
	sb.WriteString(fmt.Sprintf("*Order #%d* has been paid.\n", order.ID))
	sb.WriteString(fmt.Sprintf("Customer: %s\n", order.CustomerName))
	sb.WriteString(fmt.Sprintf("Amount: $%s\n", FormatAmount(order.TotalAmount)))
	sb.WriteString(fmt.Sprintf("Payment ID: `%s`", paymentID))

	return n.send(ctx, sb.String())
}

// NotifyPaymentFailed отправляет уведомление об отказе в оплате.
func (n *Notifier) NotifyPaymentFailed(ctx context.Context, order *domain.Order, paymentID, reason string) error {
	if !n.Enabled() {
		return nil
	}

	if reason == "" {
		reason = "unknown"
	}

	var sb strings.Builder
	sb.WriteString("❌ *Payment Failed*\n\n")
	sb.WriteString(fmt.Sprintf("*Order #%d* payment was declined.\n", order.ID))
	sb.WriteString(fmt.Sprintf("Customer: %s\n", order.CustomerName))
	sb.WriteString(fmt.Sprintf("Amount: $%s\n", FormatAmount(order.TotalAmount)))
	sb.WriteString(fmt.Sprintf("Reason: %s\n", reason))
	if paymentID != "" {
		sb.WriteString(fmt.Sprintf("Payment ID: `%s`", paymentID))
	}

	return n.send(ctx, sb.String())
}

// SendTest отправляет проверочное сообщение в сконфигурированный чат.
func (n *Notifier) SendTest(ctx context.Context) error {
	if !n.Enabled() {
		return e.Wrap(whereami.WhereAmI(), e.ErrBotNotConfigured)
	}

	return n.send(ctx, "✅ Test notification: the bot is configured correctly.")
}

// send доставляет сообщение с повторами и экспоненциальным отступлением.
func (n *Notifier) send(ctx context.Context, text string) error {
	msg := tgbotapi.NewMessage(n.cfg.ChatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	var lastErr error
	for attempt := 0; attempt < maxSendAttempts; attempt++ {
		if attempt > 0 {
			backoff := jitter.ExponentialBackoff(baseBackoff, maxBackoff, attempt-1, jitter.DefaultJitter)
			select {
			case <-ctx.Done():
				return e.Wrap(whereami.WhereAmI(), ctx.Err())
			case <-time.After(backoff):
			}
		}

		if _, err := n.bot.Send(msg); err != nil {
			lastErr = err
			n.logger.Warnf("Telegram send failed (attempt %d/%d): %v", attempt+1, maxSendAttempts, err)
			continue
		}

		return nil
	}

	return e.Wrap(whereami.WhereAmI(), lastErr)
}

func writeOrderItems(sb *strings.Builder, order *domain.Order) {
	for _, item := range order.Items {
		sb.WriteString(fmt.Sprintf("• %s x%d = $%s\n", item.ProductName, item.Quantity, FormatAmount(item.Subtotal)))
	}
}
