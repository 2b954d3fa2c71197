package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// LowStockRow fila cruda de la consulta de stock bajo: producto bajo su umbral
// de reorden con ventas recientes (últimos 30 días) en esa bodega.
type LowStockRow struct {
	ProductID      string
	ProductName    string
	SKU            string
	WarehouseID    string
	WarehouseName  string
	CurrentStock   decimal.Decimal
	Threshold      decimal.Decimal
	DailySalesRate decimal.Decimal // unidades vendidas por día activo
	UnitsSold30d   decimal.Decimal
}

// AlertRepository define el puerto de consultas de alertas de inventario.
type AlertRepository interface {
	// ListLowStock devuelve los productos activos cuyo stock está en o bajo su
	// umbral de reorden y que registraron salidas en los últimos 30 días.
	ListLowStock(ctx context.Context) ([]LowStockRow, error)
}
