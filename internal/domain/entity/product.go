package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo global (multi-bodega).
// La identidad (SKU) es inmutable; el stock se maneja por bodega en Stock.
// Si IsBundle es true, su stock es virtual y se calcula desde sus componentes.
type Product struct {
	ID           string
	SKU          string // código único en toda la plataforma
	Name         string
	Description  string
	IsBundle     bool
	ReorderLevel decimal.Decimal // umbral de alerta de stock bajo (0 = usar default)
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
