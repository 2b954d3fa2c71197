package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	appbundle "github.com/jhoicas/Inventario-core/internal/application/bundle"
	"github.com/jhoicas/Inventario-core/internal/application/inventory"
	"github.com/jhoicas/Inventario-core/internal/domain/repository"
)

// El mismo runner sirve al coordinador (escrituras), a la verificación por
// replay (snapshot) y al resolver de bundles (snapshot con catálogo).
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ inventory.SnapshotRunner = (*TxRunner)(nil)
var _ appbundle.ResolveTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos del motor atados a la
// tx y hace Commit o Rollback. El Commit solo retorna con el ledger durable.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockMovementRepository(tx), NewStockRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSnapshot inicia una transacción REPEATABLE READ de solo lectura: todas
// las lecturas de fn ven el mismo instante, sin bloquear escritores.
func (r *TxRunner) RunSnapshot(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	return r.runReadOnly(ctx, func(tx pgx.Tx) error {
		return fn(NewStockMovementRepository(tx), NewStockRepository(tx))
	})
}

// RunResolve igual que RunSnapshot pero con los repos que necesita la
// resolución de bundles (stock + grafo de composición + catálogo).
func (r *TxRunner) RunResolve(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	componentRepo repository.BundleComponentRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.runReadOnly(ctx, func(tx pgx.Tx) error {
		return fn(NewStockRepository(tx), NewBundleComponentRepository(tx), NewProductRepository(tx))
	})
}

func (r *TxRunner) runReadOnly(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}
