package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la cantidad actual materializada de un producto en una bodega.
// Es una proyección del ledger de movimientos: en todo momento debe ser igual a
// la suma con signo de los movimientos de esa llave (bodega, producto).
// Nunca se escribe directamente; solo a través del coordinador de movimientos.
type Stock struct {
	WarehouseID string
	ProductID   string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
