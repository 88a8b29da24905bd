package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/rental_bot/internal/api"
	"github.com/Freeeeeet/rental_bot/internal/app"
	"github.com/Freeeeeet/rental_bot/internal/config"
	"github.com/Freeeeeet/rental_bot/internal/controller"
	"github.com/Freeeeeet/rental_bot/internal/inflight"
	"github.com/Freeeeeet/rental_bot/internal/repository"
	"github.com/Freeeeeet/rental_bot/internal/scheduling"
	"github.com/Freeeeeet/rental_bot/internal/service"
	"github.com/Freeeeeet/rental_bot/internal/session"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogLevel)
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	logger.Info("Starting rental bot",
		zap.String("environment", cfg.Environment),
		zap.String("api", cfg.APIBaseURL),
		zap.String("timezone", loc.String()))

	// Postgres: сессии и снимки заявок
	pgCtx, cancelPg := context.WithTimeout(ctx, 10*time.Second)
	pool, err := pgxpool.New(pgCtx, cfg.DBDSN)
	if err == nil {
		err = pool.Ping(pgCtx)
	}
	cancelPg()
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info("✅ Connected to Postgres")

	migrator, err := app.NewMigrator(pool, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		return err
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	sessionRepo := repository.NewSessionRepository(pool)
	snapshotRepo := repository.NewSnapshotRepository(pool)

	sessions := session.NewManager(sessionRepo, logger)
	if err := sessions.Init(ctx); err != nil {
		return err
	}

	// Redis необязателен: без него отправки защищены только внутри процесса
	var guard inflight.Guard = inflight.NewMemoryGuard()
	if cfg.RedisAddr != "" {
		rdb, err := inflight.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return err
		}
		defer rdb.Close()
		guard = inflight.NewRedisGuard(rdb, cfg.InFlightTTL, logger)
		logger.Info("✅ Connected to Redis", zap.String("addr", cfg.RedisAddr))
	}

	client := api.NewClient(api.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
		Retries: uint64(cfg.APIRetries),
	}, sessions, logger)

	board := scheduling.NewBoard(loc, scheduling.WithGuard(guard))

	services := controller.Services{
		Auth:     service.NewAuthService(client, sessions, logger),
		Interest: service.NewInterestService(client, board, logger),
		Room:     service.NewRoomService(client, logger),
		Post:     service.NewPostService(client, logger),
		Payment:  service.NewPaymentService(client, logger),
	}

	var ctrl *controller.BotController
	b, err := bot.New(cfg.TelegramToken,
		bot.WithMiddlewares(
			controller.Identity,
			controller.RateLimit(cfg.UserRateLimit, cfg.UserRateBurst, logger),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			ctrl.DefaultHandler(ctx, b, update)
		}),
	)
	if err != nil {
		return err
	}

	ctrl = controller.NewBotController(b, services, loc, logger)
	if err := ctrl.RegisterHandlers(ctx); err != nil {
		logger.Warn("Bot commands menu not set", zap.Error(err))
	}

	watch := service.NewWatchService(services.Interest, sessions, snapshotRepo, controller.NewNotifier(b), logger)
	watcher := app.NewWatcher(watch, cfg.WatchInterval, logger)
	watcher.Start(ctx)
	defer watcher.Stop()

	return ctrl.Start(ctx)
}
