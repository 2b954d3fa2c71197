package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-core/internal/application/dto"
	"github.com/jhoicas/Inventario-core/internal/domain/entity"
	"github.com/jhoicas/Inventario-core/internal/domain/repository"
)

// WarehouseHandler CRUD mínimo de bodegas (colaborador externo del motor).
type WarehouseHandler struct {
	warehouseRepo repository.WarehouseRepository
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(warehouseRepo repository.WarehouseRepository) *WarehouseHandler {
	return &WarehouseHandler{warehouseRepo: warehouseRepo}
}

type createWarehouseRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Create da de alta una bodega.
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in createWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es obligatorio"})
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.warehouseRepo.Create(warehouse); err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"warehouse_id": warehouse.ID})
}

// GetByID obtiene una bodega por ID.
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	warehouse, err := h.warehouseRepo.GetByID(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	if warehouse == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bodega no encontrada"})
	}
	return c.JSON(warehouse)
}

// List lista bodegas paginadas.
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	warehouses, err := h.warehouseRepo.List(page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"total": len(warehouses), "warehouses": warehouses})
}
