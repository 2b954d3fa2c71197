package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-core/internal/application/alerts"
)

// AlertsHandler maneja las consultas de alertas de inventario.
type AlertsHandler struct {
	lowStockUC *alerts.LowStockUseCase
}

// NewAlertsHandler construye el handler.
func NewAlertsHandler(lowStockUC *alerts.LowStockUseCase) *AlertsHandler {
	return &AlertsHandler{lowStockUC: lowStockUC}
}

// LowStock devuelve las alertas de stock bajo, de más a menos urgente.
func (h *AlertsHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.lowStockUC.ListAlerts(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"total_alerts": len(list), "alerts": list})
}
