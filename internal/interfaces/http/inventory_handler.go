package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-core/internal/application/dto"
	"github.com/jhoicas/Inventario-core/internal/application/inventory"
	"github.com/jhoicas/Inventario-core/pkg/logger"
)

// InventoryHandler maneja las peticiones HTTP de movimientos y stock.
type InventoryHandler struct {
	movementUC  *inventory.RecordMovementUseCase
	queryUC     *inventory.StockQueryUseCase
	historyUC   *inventory.HistoryUseCase
	reconcileUC *inventory.ReconcileUseCase
	log         *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	movementUC *inventory.RecordMovementUseCase,
	queryUC *inventory.StockQueryUseCase,
	historyUC *inventory.HistoryUseCase,
	reconcileUC *inventory.ReconcileUseCase,
	log *logger.Logger,
) *InventoryHandler {
	return &InventoryHandler{
		movementUC:  movementUC,
		queryUC:     queryUC,
		historyUC:   historyUC,
		reconcileUC: reconcileUC,
		log:         log,
	}
}

// RegisterMovement registra un movimiento simple (in, out, adjustment).
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.movementUC.RecordMovement(c.Context(), inventory.MovementInput{
		WarehouseID: in.WarehouseID,
		ProductID:   in.ProductID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		PerformedBy: in.PerformedBy,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	h.log.Info().
		Str("warehouse_id", in.WarehouseID).
		Str("product_id", in.ProductID).
		Str("type", in.Type).
		Str("event_id", result.EventID).
		Msg("movimiento registrado")
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		EventID:     result.EventID,
		NewQuantity: result.NewQuantity,
	})
}

// RegisterTransfer registra un traslado entre bodegas (dos patas enlazadas).
func (h *InventoryHandler) RegisterTransfer(c *fiber.Ctx) error {
	var in dto.RegisterTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.movementUC.RecordTransfer(c.Context(), inventory.TransferInput{
		ProductID:       in.ProductID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Quantity:        in.Quantity,
		Reason:          in.Reason,
		PerformedBy:     in.PerformedBy,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	h.log.Info().
		Str("product_id", in.ProductID).
		Str("from", in.FromWarehouseID).
		Str("to", in.ToWarehouseID).
		Str("transfer_id", result.TransferID).
		Msg("traslado registrado")
	return c.Status(fiber.StatusCreated).JSON(dto.TransferResponse{
		TransferID:   result.TransferID,
		OutEventID:   result.OutEventID,
		InEventID:    result.InEventID,
		FromQuantity: result.FromQuantity,
		ToQuantity:   result.ToQuantity,
	})
}

// GetStock devuelve la cantidad actual de la llave (cero si nunca se movió).
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	warehouseID := c.Params("warehouseID")
	productID := c.Params("productID")
	qty, err := h.queryUC.GetQuantity(c.Context(), warehouseID, productID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.StockResponse{
		WarehouseID: warehouseID,
		ProductID:   productID,
		Quantity:    qty,
	})
}

// GetHistory devuelve el historial de movimientos de la llave en orden de
// secuencia, acotado por from/to (RFC 3339).
func (h *InventoryHandler) GetHistory(c *fiber.Ctx) error {
	warehouseID := c.Params("warehouseID")
	productID := c.Params("productID")

	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC 3339)"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC 3339)"})
	}

	cursor := h.historyUC.Stream(warehouseID, productID, from, to)
	movements, err := cursor.Collect()
	if err != nil {
		return errorResponse(c, err)
	}

	items := make([]dto.MovementHistoryItem, 0, len(movements))
	for _, m := range movements {
		items = append(items, dto.MovementHistoryItem{
			EventID:     m.ID,
			TransferID:  m.TransferID,
			Type:        m.Type,
			Quantity:    m.Quantity,
			Seq:         m.Seq,
			Reason:      m.Reason,
			PerformedBy: m.PerformedBy,
			CreatedAt:   m.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(items), "movements": items})
}

// Verify compara el replay del ledger contra el stock materializado.
func (h *InventoryHandler) Verify(c *fiber.Ctx) error {
	warehouseID := c.Params("warehouseID")
	productID := c.Params("productID")

	result, err := h.reconcileUC.Verify(c.Context(), warehouseID, productID)
	if result != nil {
		resp := dto.VerifyResponse{
			WarehouseID: warehouseID,
			ProductID:   productID,
			Ledger:      result.Ledger,
			Aggregate:   result.Aggregate,
			Consistent:  err == nil,
		}
		if err != nil {
			h.log.Error().
				Str("warehouse_id", warehouseID).
				Str("product_id", productID).
				Str("ledger", result.Ledger.String()).
				Str("aggregate", result.Aggregate.String()).
				Msg("divergencia ledger/stock detectada")
			return c.Status(fiber.StatusConflict).JSON(resp)
		}
		return c.JSON(resp)
	}
	return errorResponse(c, err)
}

func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
