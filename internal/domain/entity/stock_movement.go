package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIn         = "in"         // entrada
	MovementTypeOut        = "out"        // salida
	MovementTypeTransfer   = "transfer"   // traslado entre bodegas (dos patas enlazadas)
	MovementTypeAdjustment = "adjustment" // ajuste (con signo)
)

// ValidMovementType indica si el tipo pertenece al conjunto permitido.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeTransfer, MovementTypeAdjustment:
		return true
	}
	return false
}

// StockMovement es un evento inmutable del ledger de inventario (append-only).
// Seq es una secuencia estrictamente creciente por (bodega, producto) y define,
// junto con CreatedAt, el orden canónico de replay aunque los timestamps coincidan.
type StockMovement struct {
	ID          string
	TransferID  string // enlaza las dos patas de un traslado; vacío si no aplica
	WarehouseID string
	ProductID   string
	Type        string
	Quantity    decimal.Decimal // cambio con signo, nunca cero
	Seq         int64
	Reason      string
	PerformedBy string
	CreatedAt   time.Time
}
