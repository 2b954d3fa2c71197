package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-core/internal/application/alerts"
	"github.com/jhoicas/Inventario-core/internal/application/bundle"
	"github.com/jhoicas/Inventario-core/internal/application/catalog"
	"github.com/jhoicas/Inventario-core/internal/application/inventory"
	"github.com/jhoicas/Inventario-core/internal/domain/repository"
	"github.com/jhoicas/Inventario-core/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MovementUC    *inventory.RecordMovementUseCase
	StockQueryUC  *inventory.StockQueryUseCase
	HistoryUC     *inventory.HistoryUseCase
	ReconcileUC   *inventory.ReconcileUseCase
	BuildableUC   *bundle.MaxBuildableUseCase
	CatalogUC     *catalog.ProductUseCase
	LowStockUC    *alerts.LowStockUseCase
	ProductRepo   repository.ProductRepository
	WarehouseRepo repository.WarehouseRepository
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Movimientos y stock (el corazón del motor)
	inventoryHandler := NewInventoryHandler(deps.MovementUC, deps.StockQueryUC, deps.HistoryUC, deps.ReconcileUC, deps.Log)
	api.Post("/movements", inventoryHandler.RegisterMovement)
	api.Post("/transfers", inventoryHandler.RegisterTransfer)
	api.Get("/stock/:warehouseID/:productID", inventoryHandler.GetStock)
	api.Get("/stock/:warehouseID/:productID/history", inventoryHandler.GetHistory)
	api.Get("/stock/:warehouseID/:productID/verify", inventoryHandler.Verify)

	// Bundles
	bundleHandler := NewBundleHandler(deps.BuildableUC)
	api.Get("/bundles/:productID/buildable/:warehouseID", bundleHandler.GetBuildable)

	// Catálogo
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC, deps.ProductRepo)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/:id/components", productHandler.AddComponent)
	products.Delete("/:id/components/:componentID", productHandler.RemoveComponent)

	// Bodegas
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseRepo)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	// Alertas
	alertsHandler := NewAlertsHandler(deps.LowStockUC)
	api.Get("/alerts/low-stock", alertsHandler.LowStock)
}
