package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gcharles/autoshop-inventory/internal/application/alert"
	"github.com/gcharles/autoshop-inventory/internal/application/auth"
	"github.com/gcharles/autoshop-inventory/internal/application/inventory"
	"github.com/gcharles/autoshop-inventory/internal/application/reporting"
	"github.com/gcharles/autoshop-inventory/internal/infrastructure/mail"
	"github.com/gcharles/autoshop-inventory/internal/infrastructure/postgres"
	infraredis "github.com/gcharles/autoshop-inventory/internal/infrastructure/redis"
	httpRouter "github.com/gcharles/autoshop-inventory/internal/interfaces/http"
	"github.com/gcharles/autoshop-inventory/pkg/config"
	"github.com/gcharles/autoshop-inventory/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	logRepo := postgres.NewTransactionLogRepository(pool)
	vendorRepo := postgres.NewVendorMetricRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	mailSender := mail.NewGomailSender(cfg.SMTP)
	notifier := alert.NewLowStockNotifier(itemRepo, mailSender, cfg.Alert.Recipient, log)

	inventoryUC := inventory.NewUseCase(txRunner, notifier, log, cfg.DB.OpTimeout)

	// Cache de reportes: opcional, Addr vacío lo desactiva; si redis no
	// responde se arranca sin cache.
	var reportCache reporting.Cache = reporting.NopCache{}
	if cfg.Redis.Addr != "" {
		cache, err := infraredis.NewReportCache(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, reportes sin cache")
		} else {
			defer cache.Close()
			reportCache = cache
		}
	}

	reportingUC := reporting.NewUseCase(itemRepo, logRepo, vendorRepo, reportCache, log, reporting.Options{
		HistoryLimit: cfg.Report.HistoryLimit,
		AgedDays:     cfg.Report.AgedDays,
		AnnualCOGS:   cfg.Report.AnnualCOGS,
		CacheTTL:     cfg.Report.CacheTTL,
	})

	authUC := auth.NewUseCase(userRepo, log, auth.Options{
		JWTSecret:     cfg.JWT.Secret,
		JWTIssuer:     cfg.JWT.Issuer,
		JWTExpMinutes: cfg.JWT.Expiration,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AutoShop Inventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		InventoryUC: inventoryUC,
		ReportingUC: reportingUC,
		ItemRepo:    itemRepo,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
