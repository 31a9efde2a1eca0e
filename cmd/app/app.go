package main

import (
	"os"

	"github.com/minishop-tech/go-backend/internal/app"
	config "github.com/minishop-tech/go-backend/internal/cfg"
	"github.com/minishop-tech/go-backend/pkg/logger"
)

//	@title			Storefront API
//	@version		1.0
//	@description	Магазин с каталогом, корзиной, оплатой и уведомлениями в Telegram

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	AdminToken
//	@in							header
//	@name						Authorization

func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
