package http

import (
	"encoding/json"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/minishop-tech/go-backend/internal/infrastructure/telegram"
	"github.com/minishop-tech/go-backend/pkg/logger"
)

type TelegramHandler struct {
	bot    *telegram.Bot
	logger logger.Logger
}

func NewTelegramHandler(bot *telegram.Bot, logger logger.Logger) *TelegramHandler {
	return &TelegramHandler{bot: bot, logger: logger}
}

// handleUpdate
//
//	@Summary		Вебхук Telegram-бота
//	@Description	Принимает обновления от Telegram и выполняет команды бота
//	@Tags			telegram
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	map[string]bool
//	@Router			/telegram/webhook [post]
func (t *TelegramHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		t.logger.Warnf("Malformed telegram update: %v", err)
		// Telegram повторяет доставку при не-2xx, мусор подтверждаем
		WriteSuccess(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}

	t.bot.HandleUpdate(r.Context(), &update)
	WriteSuccess(w, http.StatusOK, map[string]bool{"ok": true})
}

// registerWebhook
//
//	@Summary		Регистрация вебхука бота
//	@Description	Регистрирует адрес вебхука бота на публичном адресе сервиса
//	@Tags			admin
//	@Produce		json
//	@Security		AdminToken
//	@Success		200	{object}	map[string]string
//	@Failure		503	{object}	ErrorResponse	"Бот не сконфигурирован"
//	@Router			/admin/telegram/webhook [post]
func (t *TelegramHandler) registerWebhook(w http.ResponseWriter, r *http.Request) {
	url, err := t.bot.RegisterWebhook()
	if err != nil {
		t.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]string{"url": url})
}
