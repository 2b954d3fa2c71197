package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BundleComponent es una arista del grafo de composición: el bundle requiere
// Quantity unidades del componente por cada unidad armada. El grafo debe ser
// acíclico; un producto nunca puede ser componente de sí mismo.
type BundleComponent struct {
	BundleID    string
	ComponentID string
	Quantity    decimal.Decimal // >= 1
	CreatedAt   time.Time
}
