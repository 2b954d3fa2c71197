package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Inventario-core/internal/domain/entity"
	"github.com/jhoicas/Inventario-core/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de la llave. Si la llave nunca ha tenido
// movimientos devuelve una fila en cero (ausencia no es error).
func (r *StockRepo) Get(warehouseID, productID string) (*entity.Stock, error) {
	query := `
		SELECT warehouse_id, product_id, quantity, updated_at
		FROM stock WHERE warehouse_id = $1 AND product_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, warehouseID, productID).Scan(
		&s.WarehouseID, &s.ProductID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{WarehouseID: warehouseID, ProductID: productID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el stock bloqueando la fila (SELECT FOR UPDATE).
// Una llave que nunca se ha movido no tiene fila que bloquear, así que
// primero se materializa en cero; el ON CONFLICT hace la creación idempotente.
func (r *StockRepo) GetForUpdate(warehouseID, productID string) (*entity.Stock, error) {
	ctx := context.Background()
	insert := `
		INSERT INTO stock (warehouse_id, product_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (warehouse_id, product_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, warehouseID, productID); err != nil {
		return nil, fmt.Errorf("ensure stock row: %w", err)
	}

	query := `
		SELECT warehouse_id, product_id, quantity, updated_at
		FROM stock WHERE warehouse_id = $1 AND product_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, warehouseID, productID).Scan(
		&s.WarehouseID, &s.ProductID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad de la llave (a lo sumo una fila por llave).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (warehouse_id, product_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (warehouse_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.WarehouseID, stock.ProductID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}
