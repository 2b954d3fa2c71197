package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Inventario-core/internal/domain"
	"github.com/jhoicas/Inventario-core/internal/domain/entity"
	"github.com/jhoicas/Inventario-core/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo adaptador del ledger sobre PostgreSQL (usable con pool o tx).
// La tabla stock_movements es append-only: este repo no emite UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Append persiste el evento y le asigna ID y Seq. La secuencia por llave se
// calcula con MAX(seq)+1 dentro de la misma transacción: es seguro porque el
// coordinador ya tiene bloqueada la fila de stock de la llave, lo que
// serializa a los escritores concurrentes de esa llave.
func (r *StockMovementRepo) Append(movement *entity.StockMovement) error {
	if movement.Quantity.IsZero() || movement.PerformedBy == "" {
		return domain.ErrInvalidInput
	}
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	var transferID *string
	if movement.TransferID != "" {
		transferID = &movement.TransferID
	}
	query := `
		INSERT INTO stock_movements (id, transfer_id, warehouse_id, product_id, type, quantity, seq, reason, performed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6,
			COALESCE((SELECT MAX(seq) FROM stock_movements WHERE warehouse_id = $3 AND product_id = $4), 0) + 1,
			$7, $8, $9)
		RETURNING seq`
	err := r.q.QueryRow(context.Background(), query,
		movement.ID, transferID, movement.WarehouseID, movement.ProductID,
		movement.Type, movement.Quantity, movement.Reason, movement.PerformedBy, movement.CreatedAt,
	).Scan(&movement.Seq)
	if err != nil {
		return fmt.Errorf("append stock movement: %w", err)
	}
	return nil
}

// Replay recalcula el saldo de la llave puramente desde los eventos.
func (r *StockMovementRepo) Replay(warehouseID, productID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock_movements WHERE warehouse_id = $1 AND product_id = $2`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, warehouseID, productID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("replay stock movements: %w", err)
	}
	return sum, nil
}

// ListByKey lista movimientos de la llave con seq > afterSeq en orden de seq
// ascendente (el orden canónico de replay), acotados por fechas y limit.
func (r *StockMovementRepo) ListByKey(warehouseID, productID string, from, to *time.Time, afterSeq int64, limit int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, transfer_id, warehouse_id, product_id, type, quantity, seq, reason, performed_by, created_at
		FROM stock_movements WHERE warehouse_id = $1 AND product_id = $2 AND seq > $3`
	args := []any{warehouseID, productID, afterSeq}
	pos := 4
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY seq ASC LIMIT $%d", pos)
	args = append(args, limit)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements by key: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var transferID *string
		if err := rows.Scan(&m.ID, &transferID, &m.WarehouseID, &m.ProductID, &m.Type,
			&m.Quantity, &m.Seq, &m.Reason, &m.PerformedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if transferID != nil {
			m.TransferID = *transferID
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
