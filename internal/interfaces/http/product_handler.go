package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-core/internal/application/catalog"
	"github.com/jhoicas/Inventario-core/internal/application/dto"
	"github.com/jhoicas/Inventario-core/internal/domain/repository"
)

// ProductHandler maneja el catálogo de productos y la composición de bundles.
type ProductHandler struct {
	catalogUC   *catalog.ProductUseCase
	productRepo repository.ProductRepository
}

// NewProductHandler construye el handler.
func NewProductHandler(catalogUC *catalog.ProductUseCase, productRepo repository.ProductRepository) *ProductHandler {
	return &ProductHandler{catalogUC: catalogUC, productRepo: productRepo}
}

// Create da de alta un producto, con stock inicial opcional.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.catalogUC.CreateProduct(c.Context(), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"product_id": product.ID, "sku": product.SKU})
}

// GetByID obtiene un producto por ID.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.productRepo.GetByID(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	if product == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(product)
}

// List lista productos paginados.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	products, err := h.productRepo.List(page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"total": len(products), "products": products})
}

// AddComponent agrega una arista bundle → componente.
func (h *ProductHandler) AddComponent(c *fiber.Ctx) error {
	bundleID := c.Params("id")
	var in dto.AddComponentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.catalogUC.AddBundleComponent(c.Context(), bundleID, in.ComponentID, in.Quantity); err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "componente agregado"})
}

// RemoveComponent elimina una arista bundle → componente.
func (h *ProductHandler) RemoveComponent(c *fiber.Ctx) error {
	bundleID := c.Params("id")
	componentID := c.Params("componentID")
	if err := h.catalogUC.RemoveBundleComponent(c.Context(), bundleID, componentID); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "componente eliminado"})
}
