package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Inventario-core/internal/domain/entity"
)

// StockMovementRepository define el puerto del ledger de movimientos.
// El ledger es append-only: el puerto no expone update ni delete a propósito
// (la inmutabilidad del historial es contrato, no convención).
type StockMovementRepository interface {
	// Append persiste el evento y asigna ID y Seq (secuencia creciente por
	// bodega+producto). Rechaza cantidad cero o performed_by vacío con
	// domain.ErrInvalidInput antes de tocar la base.
	Append(movement *entity.StockMovement) error
	// Replay recalcula el saldo puramente desde los eventos de la llave.
	// Debe coincidir con el stock materializado; si no, hay corrupción.
	Replay(warehouseID, productID string) (decimal.Decimal, error)
	// ListByKey devuelve movimientos de la llave con seq > afterSeq, en orden
	// de seq ascendente, acotados por rango de fechas y limit. Es la base del
	// cursor de historial.
	ListByKey(warehouseID, productID string, from, to *time.Time, afterSeq int64, limit int) ([]*entity.StockMovement, error)
}
