package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/minishop-tech/go-backend/internal/cfg"
	"github.com/minishop-tech/go-backend/pkg/e"
	"github.com/minishop-tech/go-backend/pkg/logger"
)

// RequireAdmin проверяет bearer-токен административного доступа.
// Если токен не задан в конфигурации, административные операции
// заблокированы целиком.
func RequireAdmin(adminCfg *cfg.AdminCfg, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !adminCfg.Configured() {
				log.Warnf("Admin endpoint requested, but ADMIN_TOKEN is not set")
				WriteError(w, e.ErrForbidden)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				WriteError(w, e.ErrUnauthorized)
				return
			}

			if subtle.ConstantTimeCompare([]byte(token), []byte(adminCfg.Token)) != 1 {
				WriteError(w, e.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
