package http

import (
	"encoding/json"
	"net/http"

	"github.com/minishop-tech/go-backend/internal/cfg"
	"github.com/minishop-tech/go-backend/internal/usecase"
	"github.com/minishop-tech/go-backend/pkg/e"
	"github.com/minishop-tech/go-backend/pkg/logger"
)

type SettingsHandler struct {
	config   *cfg.Config
	notifier usecase.Notifier
	logger   logger.Logger
}

func NewSettingsHandler(config *cfg.Config, notifier usecase.Notifier, logger logger.Logger) *SettingsHandler {
	return &SettingsHandler{
		config:   config,
		notifier: notifier,
		logger:   logger,
	}
}

// getSettings
//
//	@Summary		Состояние интеграций
//	@Description	Возвращает, какие внешние интеграции сконфигурированы. Секреты не раскрываются.
//	@Tags			admin
//	@Produce		json
//	@Security		AdminToken
//	@Success		200	{object}	SettingsResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/admin/settings [get]
func (s *SettingsHandler) getSettings(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, &SettingsResponse{
		PaymentsConfigured: s.config.Stripe.Configured(),
		TelegramConfigured: s.notifier.Enabled(),
		StorageConfigured:  s.config.Minio != nil,
		EventsConfigured:   s.config.Kafka != nil,
	})
}

// runSettingsAction
//
//	@Summary		Служебные действия
//	@Description	Выполняет служебное действие. Поддерживается testTelegram — отправка проверочного сообщения.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Security		AdminToken
//	@Param			request	body		SettingsActionRequest	true	"Действие"
//	@Success		200		{object}	map[string]bool
//	@Failure		400		{object}	ErrorResponse
//	@Router			/admin/settings/actions [post]
func (s *SettingsHandler) runSettingsAction(w http.ResponseWriter, r *http.Request) {
	var body SettingsActionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, e.ErrUnknownAction)
		return
	}

	switch body.Action {
	case "testTelegram":
		if err := s.notifier.SendTest(r.Context()); err != nil {
			s.logger.Warnf("%s", err.Error())
			WriteError(w, err)
			return
		}
		WriteSuccess(w, http.StatusOK, map[string]bool{"sent": true})
	default:
		WriteError(w, e.ErrUnknownAction)
	}
}
