package dto

import "github.com/shopspring/decimal"

// CreateProductRequest alta de producto en el catálogo. Si InitialQuantity > 0
// se registra un movimiento de apertura en WarehouseID a nombre de PerformedBy.
type CreateProductRequest struct {
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	IsBundle        bool            `json:"is_bundle"`
	ReorderLevel    decimal.Decimal `json:"reorder_level"`
	WarehouseID     string          `json:"warehouse_id"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
	PerformedBy     string          `json:"performed_by"`
}

// AddComponentRequest agrega una arista bundle → componente con su cantidad requerida.
type AddComponentRequest struct {
	ComponentID string          `json:"component_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// BuildableResponse resultado de la resolución de un bundle en una bodega.
type BuildableResponse struct {
	BundleID    string `json:"bundle_id"`
	WarehouseID string `json:"warehouse_id"`
	Buildable   int64  `json:"buildable"`
}
