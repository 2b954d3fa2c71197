package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest request HTTP para registrar un movimiento simple
// (in, out o adjustment). La cantidad lleva signo: negativa para salidas.
type RegisterMovementRequest struct {
	WarehouseID string          `json:"warehouse_id"`
	ProductID   string          `json:"product_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason"`
	PerformedBy string          `json:"performed_by"`
}

// RegisterTransferRequest request HTTP para un traslado entre bodegas.
// La cantidad es la magnitud a mover (positiva).
type RegisterTransferRequest struct {
	ProductID       string          `json:"product_id"`
	FromWarehouseID string          `json:"from_warehouse_id"`
	ToWarehouseID   string          `json:"to_warehouse_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Reason          string          `json:"reason"`
	PerformedBy     string          `json:"performed_by"`
}

// MovementResponse resultado de registrar un movimiento simple.
type MovementResponse struct {
	EventID     string          `json:"event_id"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
}

// TransferResponse resultado de un traslado: las dos patas enlazadas.
type TransferResponse struct {
	TransferID   string          `json:"transfer_id"`
	OutEventID   string          `json:"out_event_id"`
	InEventID    string          `json:"in_event_id"`
	FromQuantity decimal.Decimal `json:"from_quantity"`
	ToQuantity   decimal.Decimal `json:"to_quantity"`
}

// StockResponse cantidad actual de una llave (bodega, producto).
type StockResponse struct {
	WarehouseID string          `json:"warehouse_id"`
	ProductID   string          `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MovementHistoryItem un evento del historial, en orden de secuencia.
type MovementHistoryItem struct {
	EventID     string          `json:"event_id"`
	TransferID  string          `json:"transfer_id,omitempty"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Seq         int64           `json:"seq"`
	Reason      string          `json:"reason,omitempty"`
	PerformedBy string          `json:"performed_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// VerifyResponse resultado de la verificación replay vs stock materializado.
type VerifyResponse struct {
	WarehouseID string          `json:"warehouse_id"`
	ProductID   string          `json:"product_id"`
	Ledger      decimal.Decimal `json:"ledger"`
	Aggregate   decimal.Decimal `json:"aggregate"`
	Consistent  bool            `json:"consistent"`
}
