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
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/auth"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/lifecycle"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/sales"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/usecase"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/thejohnjohn/SmoothPDV-sub000/internal/interfaces/http"
	"github.com/thejohnjohn/SmoothPDV-sub000/pkg/config"
	"github.com/thejohnjohn/SmoothPDV-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
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

	storeRepo := postgres.NewStoreRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	merchRepo := postgres.NewMerchandiseRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	storeUC := usecase.NewStoreUseCase(storeRepo)
	userUC := usecase.NewUserUseCase(userRepo, storeRepo)
	merchUC := usecase.NewMerchandiseUseCase(merchRepo, storeRepo)
	recordSaleUC := sales.NewRecordSaleUseCase(txRunner, saleRepo)
	saleQueryUC := sales.NewQueryUseCase(saleRepo, reportRepo)
	lifecycleUC := lifecycle.NewUseCase(storeRepo, userRepo, merchRepo, saleRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
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
		Title:    "SmoothPDV API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StoreUC:     storeUC,
		UserUC:      userUC,
		MerchUC:     merchUC,
		RecordSale:  recordSaleUC,
		SaleQuery:   saleQueryUC,
		LifecycleUC: lifecycleUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
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
