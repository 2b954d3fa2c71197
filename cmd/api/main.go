package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Inventario-core/internal/application/alerts"
	appbundle "github.com/jhoicas/Inventario-core/internal/application/bundle"
	"github.com/jhoicas/Inventario-core/internal/application/catalog"
	"github.com/jhoicas/Inventario-core/internal/application/inventory"
	"github.com/jhoicas/Inventario-core/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Inventario-core/internal/interfaces/http"
	"github.com/jhoicas/Inventario-core/pkg/config"
	"github.com/jhoicas/Inventario-core/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	// Repos atados al pool para lecturas; las escrituras del motor pasan por
	// el TxRunner, que construye repos atados a cada transacción.
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	componentRepo := postgres.NewBundleComponentRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	movementUC := inventory.NewRecordMovementUseCase(txRunner, productRepo, warehouseRepo)
	stockQueryUC := inventory.NewStockQueryUseCase(stockRepo)
	historyUC := inventory.NewHistoryUseCase(movementRepo, cfg.Engine.HistoryBatchSize)
	reconcileUC := inventory.NewReconcileUseCase(txRunner)
	buildableUC := appbundle.NewMaxBuildableUseCase(txRunner, productRepo, warehouseRepo)
	catalogUC := catalog.NewProductUseCase(productRepo, warehouseRepo, componentRepo, movementUC)
	lowStockUC := alerts.NewLowStockUseCase(alertRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MovementUC:    movementUC,
		StockQueryUC:  stockQueryUC,
		HistoryUC:     historyUC,
		ReconcileUC:   reconcileUC,
		BuildableUC:   buildableUC,
		CatalogUC:     catalogUC,
		LowStockUC:    lowStockUC,
		ProductRepo:   productRepo,
		WarehouseRepo: warehouseRepo,
		Log:           log,
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
