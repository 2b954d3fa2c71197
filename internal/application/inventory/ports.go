package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-core/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el append al ledger y la
// actualización del stock materializado sean una sola unidad atómica:
// o ambos quedan, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
	) error) error
}

// SnapshotRunner ejecuta lecturas sobre una transacción de solo lectura con
// snapshot consistente (REPEATABLE READ): ninguna lectura ve un movimiento
// concurrente aplicado a medias, y no bloquea a los escritores.
type SnapshotRunner interface {
	RunSnapshot(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
	) error) error
}
