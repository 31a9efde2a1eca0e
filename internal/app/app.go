package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jimlawless/whereami"
	config "github.com/minishop-tech/go-backend/internal/cfg"
	v1Http "github.com/minishop-tech/go-backend/internal/delivery/v1/http"
	"github.com/minishop-tech/go-backend/internal/infrastructure/kafka"
	"github.com/minishop-tech/go-backend/internal/infrastructure/stripe"
	"github.com/minishop-tech/go-backend/internal/infrastructure/telegram"
	s3Repo "github.com/minishop-tech/go-backend/internal/repository/minio"
	"github.com/minishop-tech/go-backend/internal/repository/pgdb"
	pgdbConv "github.com/minishop-tech/go-backend/internal/repository/pgdb/converter/generated"
	"github.com/minishop-tech/go-backend/internal/repository/redis"
	redisConv "github.com/minishop-tech/go-backend/internal/repository/redis/converter/generated"
	"github.com/minishop-tech/go-backend/internal/usecase"
	"github.com/minishop-tech/go-backend/pkg/clients"
	"github.com/minishop-tech/go-backend/pkg/closer"
	"github.com/minishop-tech/go-backend/pkg/e"
	"github.com/minishop-tech/go-backend/pkg/logger"
	"github.com/minishop-tech/go-backend/pkg/postgres"
)

const shutdownTimeout = 10 * time.Second

// App собирает все зависимости сервиса и управляет их жизненным циклом.
type App struct {
	cfg       *config.Config
	logger    logger.Logger
	closer    *closer.Closer
	httpSrv   *v1Http.Server
	workerCtx context.Context
	stopWork  context.CancelFunc
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	cl := closer.NewCloser(0)
	workerCtx, stopWork := context.WithCancel(context.Background())

	app := &App{
		cfg:       cfg,
		logger:    log,
		closer:    cl,
		workerCtx: workerCtx,
		stopWork:  stopWork,
	}

	db, err := initPGDB(log, cfg)
	if err != nil {
		stopWork()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		db.Close()
		log.Infof("Database pool closed")
		return nil
	})

	productConv := pgdbConv.NewProductConverterImpl()
	orderConv := pgdbConv.NewOrderConverterImpl()
	outboxConv := pgdbConv.NewOutboxEventConverterImpl()
	cacheConv := redisConv.NewProductConverterImpl()

	productRepo := pgdb.NewProductRepo(db.Pool, productConv)
	orderRepo := pgdb.NewOrderRepo(db.Pool, orderConv)
	paymentEventRepo := pgdb.NewPaymentEventRepo(db.Pool)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		stopWork()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})
	cacheRepo := redis.NewCacheRepo(redisClient, cacheConv, cfg.Redis, log)

	var imageStore usecase.ImageStorage
	if cfg.Minio != nil {
		minioClient, err := clients.NewMinIOClient(cfg.Minio)
		if err != nil {
			stopWork()
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName)
		minioCancel()
		if err != nil {
			stopWork()
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		imageStore = s3Repo.NewImageRepo(minioClient, cfg.Minio)
	}

	var botAPI *tgbotapi.BotAPI
	if cfg.Telegram.Configured() {
		botAPI, err = tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
		if err != nil {
			stopWork()
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}
	notifier := telegram.NewNotifier(botAPI, cfg.Telegram, log)

	gateway := stripe.NewGateway(cfg.Stripe, log)

	productUC := usecase.NewProductUC(productRepo, cacheRepo, imageStore, db.Pool, log)
	orderUC := usecase.NewOrderUC(orderRepo, productRepo, outboxRepo, cacheRepo, db.Pool, notifier, log)
	paymentUC := usecase.NewPaymentUC(
		orderRepo, productRepo, paymentEventRepo, outboxRepo,
		db.Pool, gateway, notifier, cfg.Stripe.PublishableKey, log,
	)
	reportUC := usecase.NewReportUC(orderRepo)

	if cfg.Kafka != nil {
		producer, err := kafka.NewProducer(log, cfg.Kafka)
		if err != nil {
			stopWork()
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		if err := producer.EnsureTopic(10 * time.Second); err != nil {
			stopWork()
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		cl.Add(func(ctx context.Context) error {
			return producer.Close()
		})

		worker := kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn)
		worker.Start(workerCtx)
		cl.Add(func(ctx context.Context) error {
			worker.Stop()
			log.Infof("Outbox worker stopped")
			return nil
		})
	}

	bot := telegram.NewBot(botAPI, reportUC, cfg.Telegram, log)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, cfg, log)
	router.Init(productUC, orderUC, paymentUC, reportUC, notifier, bot)

	app.httpSrv = v1Http.NewServer(r, cfg.Http)

	return app, nil
}

// Run запускает HTTP-сервер и блокируется до сигнала завершения.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	a.stopWork()
	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("Shutdown finished with errors: %v", err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
