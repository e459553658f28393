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

	_ "github.com/tu-usuario/almacen-stock/docs"
	"github.com/tu-usuario/almacen-stock/internal/application/auth"
	"github.com/tu-usuario/almacen-stock/internal/application/report"
	"github.com/tu-usuario/almacen-stock/internal/application/stock"
	"github.com/tu-usuario/almacen-stock/internal/application/usecase"
	infrapdf "github.com/tu-usuario/almacen-stock/internal/infrastructure/pdf"
	"github.com/tu-usuario/almacen-stock/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/almacen-stock/internal/interfaces/http"
	"github.com/tu-usuario/almacen-stock/pkg/config"
	"github.com/tu-usuario/almacen-stock/pkg/logger"
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

	itemStore := postgres.NewItemStore(pool)
	ledgerStore := postgres.NewLedgerStore(pool, log)
	userRepo := postgres.NewUserRepository(pool)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	itemUC := usecase.NewItemUseCase(itemStore)
	userUC := usecase.NewUserUseCase(userRepo)
	movementsUC := stock.NewUseCase(itemStore, ledgerStore, log)
	reportUC := report.NewUseCase(itemStore, ledgerStore, infrapdf.NewMarotoStockReport(), cfg.Stock.LedgerViewLimit)

	// Vista de actividad reciente: se suscribe al ledger y se mantiene
	// actualizada con cada movimiento confirmado.
	ledgerView := stock.NewLedgerView(ledgerStore, cfg.Stock.LedgerViewLimit)
	if err := ledgerView.Start(); err != nil {
		log.Fatal().Err(err).Msg("suscripción al ledger")
	}
	defer ledgerView.Stop()

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
		Title:    "Almacén Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		ItemUC:          itemUC,
		UserUC:          userUC,
		Movements:       movementsUC,
		LedgerView:      ledgerView,
		ReportUC:        reportUC,
		JWTSecret:       cfg.JWT.Secret,
		LoginRatePerMin: cfg.Stock.LoginRatePerMin,
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
