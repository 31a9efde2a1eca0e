package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jimlawless/whereami"
	"github.com/minishop-tech/go-backend/internal/cfg"
	"github.com/minishop-tech/go-backend/internal/usecase"
	"github.com/minishop-tech/go-backend/pkg/e"
	"github.com/minishop-tech/go-backend/pkg/logger"
)

const webhookPath = "/api/v1/telegram/webhook"

const helpText = `Available commands:
/orders - list recent orders
/order <id> - show order details
/stats - show sales statistics
/help - show this message`

// Bot обрабатывает команды администратора магазина в Telegram.
// Команды принимаются только из сконфигурированного чата.
type Bot struct {
	api      *tgbotapi.BotAPI
	reportUC usecase.ReportUC
	cfg      *cfg.TelegramCfg
	logger   logger.Logger
}

func NewBot(api *tgbotapi.BotAPI, reportUC usecase.ReportUC, cfg *cfg.TelegramCfg, logger logger.Logger) *Bot {
	return &Bot{
		api:      api,
		reportUC: reportUC,
		cfg:      cfg,
		logger:   logger,
	}
}

func (b *Bot) Enabled() bool {
	return b.api != nil && b.cfg.Configured()
}

// RegisterWebhook регистрирует вебхук бота на публичном адресе сервиса.
func (b *Bot) RegisterWebhook() (string, error) {
	if !b.Enabled() {
		return "", e.Wrap(whereami.WhereAmI(), e.ErrBotNotConfigured)
	}
	if b.cfg.PublicBaseURL == "" {
		return "", e.Wrap(whereami.WhereAmI(), fmt.Errorf("PUBLIC_BASE_URL is not set"))
	}

	url := b.cfg.PublicBaseURL + webhookPath
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := b.api.Request(wh); err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return url, nil
}

// HandleUpdate разбирает входящее обновление и выполняет команду.
// Сообщения из посторонних чатов игнорируются.
func (b *Bot) HandleUpdate(ctx context.Context, update *tgbotapi.Update) {
	if update.Message == nil || !update.Message.IsCommand() {
		return
	}

	if update.Message.Chat.ID != b.cfg.ChatID {
		b.logger.Warnf("Ignoring command from unauthorized chat: %d", update.Message.Chat.ID)
		return
	}

	var reply string
	switch update.Message.Command() {
	case "start":
		reply = "👋 Storefront bot is online.\n\n" + helpText
	case "help":
		reply = helpText
	case "orders":
		reply = b.recentOrders(ctx)
	case "order":
		reply = b.orderDetails(ctx, update.Message.CommandArguments())
	case "stats":
		reply = b.stats(ctx)
	default:
		reply = "Unknown command. Try /help."
	}

	b.reply(update.Message.Chat.ID, reply)
}

func (b *Bot) recentOrders(ctx context.Context) string {
	orders, err := b.reportUC.RecentOrders(ctx, 0)
	if err != nil {
		b.logger.Errorf(err, "failed to load recent orders")
		return "Failed to load orders."
	}

	if len(orders) == 0 {
		return "No orders yet."
	}

	var sb strings.Builder
	sb.WriteString("📋 *Recent Orders*\n\n")
	for _, order := range orders {
		sb.WriteString(fmt.Sprintf("#%d — %s — $%s — %s\n",
			order.ID, order.CustomerName, FormatAmount(order.TotalAmount), order.Status))
	}

	return sb.String()
}

func (b *Bot) orderDetails(ctx context.Context, args string) string {
	id, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		return "Usage: /order <id>"
	}

	order, err := b.reportUC.OrderDetails(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrOrderNotFound) {
			return fmt.Sprintf("Order #%d not found.", id)
		}
		b.logger.Errorf(err, "failed to load order details")
		return "Failed to load order."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*Order #%d*\n", order.ID))
	sb.WriteString(fmt.Sprintf("Status: %s\n", order.Status))
	sb.WriteString(fmt.Sprintf("Customer: %s\n", order.CustomerName))
	sb.WriteString(fmt.Sprintf("Email: %s\n", order.CustomerEmail))
	sb.WriteString(fmt.Sprintf("Address: %s\n\n", order.ShippingAddress))
	writeOrderItems(&sb, order)
	sb.WriteString(fmt.Sprintf("\n*Total: $%s*", FormatAmount(order.TotalAmount)))

	return sb.String()
}

func (b *Bot) stats(ctx context.Context) string {
	stats, err := b.reportUC.Stats(ctx)
	if err != nil {
		b.logger.Errorf(err, "failed to load order stats")
		return "Failed to load statistics."
	}

	return fmt.Sprintf("📊 *Sales Statistics*\n\nPaid orders: %d\nRevenue: $%s\nAverage order: $%s",
		stats.TotalOrders, FormatAmount(stats.TotalRevenue), FormatAmount(stats.AverageValue))
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warnf("Telegram reply failed: %v", err)
	}
}
