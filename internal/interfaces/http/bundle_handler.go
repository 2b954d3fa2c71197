package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-core/internal/application/bundle"
	"github.com/jhoicas/Inventario-core/internal/application/dto"
)

// BundleHandler maneja las consultas de bundles.
type BundleHandler struct {
	buildableUC *bundle.MaxBuildableUseCase
}

// NewBundleHandler construye el handler.
func NewBundleHandler(buildableUC *bundle.MaxBuildableUseCase) *BundleHandler {
	return &BundleHandler{buildableUC: buildableUC}
}

// GetBuildable devuelve cuántas unidades del bundle pueden armarse en la bodega.
func (h *BundleHandler) GetBuildable(c *fiber.Ctx) error {
	bundleID := c.Params("productID")
	warehouseID := c.Params("warehouseID")

	buildable, err := h.buildableUC.MaxBuildable(c.Context(), bundleID, warehouseID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.BuildableResponse{
		BundleID:    bundleID,
		WarehouseID: warehouseID,
		Buildable:   buildable,
	})
}
