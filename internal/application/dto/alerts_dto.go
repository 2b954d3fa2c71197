package dto

import "github.com/shopspring/decimal"

// LowStockAlertDTO alerta de stock bajo con proyección de agotamiento,
// ordenada de más a menos urgente.
type LowStockAlertDTO struct {
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name"`
	SKU               string          `json:"sku"`
	WarehouseID       string          `json:"warehouse_id"`
	WarehouseName     string          `json:"warehouse_name"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	Threshold         decimal.Decimal `json:"threshold"`
	DaysUntilStockout int64           `json:"days_until_stockout"`
	UnitsSold30d      decimal.Decimal `json:"units_sold_30_days"`
}
