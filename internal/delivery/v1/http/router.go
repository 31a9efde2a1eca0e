package http

import (
	"github.com/go-chi/chi/v5"
	_ "github.com/minishop-tech/go-backend/docs" // Импорт сгенерированных файлов
	"github.com/minishop-tech/go-backend/internal/cfg"
	"github.com/minishop-tech/go-backend/internal/infrastructure/telegram"
	"github.com/minishop-tech/go-backend/internal/usecase"
	"github.com/minishop-tech/go-backend/pkg/logger"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	config *cfg.Config
	logger logger.Logger
}

func NewRouter(router *chi.Mux, config *cfg.Config, logger logger.Logger) *Router {
	return &Router{router: router, config: config, logger: logger}
}

func (r *Router) Init(
	productUC usecase.ProductUC,
	orderUC usecase.OrderUC,
	paymentUC usecase.PaymentUC,
	reportUC usecase.ReportUC,
	notifier usecase.Notifier,
	bot *telegram.Bot,
) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	productHandler := NewProductHandler(productUC, r.logger)
	orderHandler := NewOrderHandler(orderUC, reportUC, r.logger)
	paymentHandler := NewPaymentHandler(paymentUC, r.logger)
	settingsHandler := NewSettingsHandler(r.config, notifier, r.logger)
	telegramHandler := NewTelegramHandler(bot, r.logger)

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerStorefrontRoutes(v1, productHandler, orderHandler, paymentHandler, telegramHandler)
		registerAdminRoutes(v1, r.config.Admin, r.logger,
			productHandler, orderHandler, paymentHandler, settingsHandler, telegramHandler)
	})
}

func registerStorefrontRoutes(router chi.Router,
	productHandler *ProductHandler,
	orderHandler *OrderHandler,
	paymentHandler *PaymentHandler,
	telegramHandler *TelegramHandler,
) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", productHandler.listProducts)
		pr.Get("/{id}", productHandler.getProduct)
	})

	router.Route("/orders", func(or chi.Router) {
		or.Post("/", orderHandler.checkout)
		or.Get("/{id}", orderHandler.getOrder)
	})

	router.Route("/payments", func(pm chi.Router) {
		pm.Post("/create-intent", paymentHandler.createIntent)
		pm.Post("/webhook", paymentHandler.handleWebhook)
	})

	router.Post("/telegram/webhook", telegramHandler.handleUpdate)
}

func registerAdminRoutes(router chi.Router, adminCfg *cfg.AdminCfg, log logger.Logger,
	productHandler *ProductHandler,
	orderHandler *OrderHandler,
	paymentHandler *PaymentHandler,
	settingsHandler *SettingsHandler,
	telegramHandler *TelegramHandler,
) {
	router.Route("/admin", func(admin chi.Router) {
		admin.Use(RequireAdmin(adminCfg, log))

		admin.Route("/products", func(pr chi.Router) {
			pr.Get("/", productHandler.listAllProducts)
			pr.Post("/", productHandler.createProduct)
			pr.Put("/{id}", productHandler.updateProduct)
			pr.Delete("/{id}", productHandler.deleteProduct)
		})

		admin.Get("/orders", orderHandler.listRecentOrders)
		admin.Get("/stats", orderHandler.getStats)

		admin.Post("/payments/simulate", paymentHandler.simulatePayment)

		admin.Get("/settings", settingsHandler.getSettings)
		admin.Post("/settings/actions", settingsHandler.runSettingsAction)

		admin.Post("/telegram/webhook", telegramHandler.registerWebhook)
	})
}
