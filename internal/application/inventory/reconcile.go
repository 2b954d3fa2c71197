package inventory

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Inventario-core/internal/domain"
	"github.com/jhoicas/Inventario-core/internal/domain/repository"
)

// ReconcileUseCase verifica que el stock materializado de una llave coincida
// con el replay del ledger. Corre sobre un snapshot de solo lectura para que
// un movimiento concurrente no produzca un falso positivo de divergencia.
type ReconcileUseCase struct {
	snapshot SnapshotRunner
}

// NewReconcileUseCase construye el caso de uso de verificación.
func NewReconcileUseCase(snapshot SnapshotRunner) *ReconcileUseCase {
	return &ReconcileUseCase{snapshot: snapshot}
}

// VerifyResult saldos de ambas fuentes para la llave verificada.
type VerifyResult struct {
	Ledger    decimal.Decimal
	Aggregate decimal.Decimal
}

// Verify recalcula el saldo desde el ledger y lo compara con el stock vivo.
// Si difieren devuelve domain.ErrLedgerDiverged junto con ambos valores:
// es una condición de corrupción detectable, nunca se silencia.
func (uc *ReconcileUseCase) Verify(ctx context.Context, warehouseID, productID string) (*VerifyResult, error) {
	var result *VerifyResult
	err := uc.snapshot.RunSnapshot(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
	) error {
		replayed, err := movRepo.Replay(warehouseID, productID)
		if err != nil {
			return err
		}
		stock, err := stockRepo.Get(warehouseID, productID)
		if err != nil {
			return err
		}
		result = &VerifyResult{Ledger: replayed, Aggregate: stock.Quantity}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !result.Ledger.Equal(result.Aggregate) {
		return result, domain.ErrLedgerDiverged
	}
	return result, nil
}
