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

	"github.com/jhoicas/Ganaderia-api/internal/application/allocation"
	"github.com/jhoicas/Ganaderia-api/internal/application/catalog"
	"github.com/jhoicas/Ganaderia-api/internal/application/cattle"
	"github.com/jhoicas/Ganaderia-api/internal/application/ledger"
	"github.com/jhoicas/Ganaderia-api/internal/application/movement"
	"github.com/jhoicas/Ganaderia-api/internal/application/report"
	infrapdf "github.com/jhoicas/Ganaderia-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Ganaderia-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Ganaderia-api/internal/interfaces/http"
	"github.com/jhoicas/Ganaderia-api/pkg/config"
	"github.com/jhoicas/Ganaderia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
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

	cattleRepo := postgres.NewCattleRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	weightRepo := postgres.NewWeightEntryRepository(pool)
	healthRepo := postgres.NewHealthEventRepository(pool)
	costRepo := postgres.NewCostHistoryRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	allocationRepo := postgres.NewAllocationRepository(pool)
	invoiceLineRepo := postgres.NewInvoiceLineRepository(pool)
	seqRepo := postgres.NewSequenceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	catalogUC := catalog.NewCatalogUseCase(catalogRepo)
	registryUC := cattle.NewRegistryUseCase(cattleRepo, seqRepo)
	ledgerUC := ledger.NewLedgerUseCase(cattleRepo, weightRepo, healthRepo, costRepo)
	movementUC := movement.NewMovementUseCase(txRunner, movementRepo, seqRepo)
	allocationUC := allocation.NewAllocationUseCase(txRunner, allocationRepo, invoiceLineRepo, costRepo, seqRepo)

	// PDF: ficha de ganado imprimible
	reportGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := report.NewReportUseCase(cattleRepo, weightRepo, costRepo, reportGenerator)

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
		Title:    "Ganadería API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:    catalogUC,
		RegistryUC:   registryUC,
		LedgerUC:     ledgerUC,
		MovementUC:   movementUC,
		AllocationUC: allocationUC,
		ReportUC:     reportUC,
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
