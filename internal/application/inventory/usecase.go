package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Inventario-core/internal/domain"
	"github.com/jhoicas/Inventario-core/internal/domain/entity"
	"github.com/jhoicas/Inventario-core/internal/domain/repository"
)

// RecordMovementUseCase es el coordinador de movimientos: único camino de
// escritura al stock. Valida la entrada, bloquea la fila de la llave
// (SELECT FOR UPDATE), verifica no-negatividad contra el saldo vivo y aplica
// ledger + stock materializado en una sola transacción con Commit/Rollback.
type RecordMovementUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewRecordMovementUseCase construye el coordinador.
func NewRecordMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *RecordMovementUseCase {
	return &RecordMovementUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// MovementInput entrada para un movimiento simple (in, out, adjustment).
// Quantity lleva signo y nunca puede ser cero.
type MovementInput struct {
	WarehouseID string
	ProductID   string
	Type        string
	Quantity    decimal.Decimal
	Reason      string
	PerformedBy string
}

// MovementResult identifica el evento creado y el saldo resultante.
type MovementResult struct {
	EventID     string
	NewQuantity decimal.Decimal
}

// TransferInput entrada para un traslado entre bodegas. Quantity es la
// magnitud a mover (estrictamente positiva).
type TransferInput struct {
	ProductID       string
	FromWarehouseID string
	ToWarehouseID   string
	Quantity        decimal.Decimal
	Reason          string
	PerformedBy     string
}

// TransferResult las dos patas enlazadas y los saldos resultantes.
type TransferResult struct {
	TransferID   string
	OutEventID   string
	InEventID    string
	FromQuantity decimal.Decimal
	ToQuantity   decimal.Decimal
}

// RecordMovement valida en orden estricto (primera falla gana): cantidad no
// cero, performed_by presente, tipo permitido, producto y bodega existentes.
// Luego, dentro de la transacción: bloquea la fila de stock, verifica que el
// saldo resultante no sea negativo y aplica append + upsert juntos.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, input MovementInput) (*MovementResult, error) {
	if input.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if input.PerformedBy == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(input.Type) || input.Type == entity.MovementTypeTransfer {
		// Los traslados entran por RecordTransfer: tocan dos llaves.
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkCatalog(input.ProductID, input.WarehouseID); err != nil {
		return nil, err
	}

	now := time.Now()
	var result *MovementResult

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
	) error {
		mov, newQty, err := applyLeg(movRepo, stockRepo, &entity.StockMovement{
			WarehouseID: input.WarehouseID,
			ProductID:   input.ProductID,
			Type:        input.Type,
			Quantity:    input.Quantity,
			Reason:      input.Reason,
			PerformedBy: input.PerformedBy,
			CreatedAt:   now,
		})
		if err != nil {
			return err
		}
		result = &MovementResult{EventID: mov.ID, NewQuantity: newQty}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecordTransfer mueve stock entre dos bodegas como una sola operación lógica:
// dos movimientos enlazados (out en origen, in en destino) con el mismo
// TransferID, en una única transacción. Las filas se bloquean en orden global
// fijo (bodega ascendente) para evitar deadlock entre traslados opuestos.
func (uc *RecordMovementUseCase) RecordTransfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if input.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if input.PerformedBy == "" {
		return nil, domain.ErrInvalidInput
	}
	if !input.Quantity.GreaterThan(decimal.Zero) || input.FromWarehouseID == input.ToWarehouseID {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkCatalog(input.ProductID, input.FromWarehouseID); err != nil {
		return nil, err
	}
	if wh, err := uc.warehouseRepo.GetByID(input.ToWarehouseID); err != nil {
		return nil, err
	} else if wh == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	transferID := uuid.New().String()
	var result *TransferResult

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
	) error {
		// Orden global de bloqueo: primero la bodega menor, para que dos
		// traslados en sentidos opuestos no se esperen mutuamente.
		first, second := input.FromWarehouseID, input.ToWarehouseID
		if second < first {
			first, second = second, first
		}
		if _, err := stockRepo.GetForUpdate(first, input.ProductID); err != nil {
			return err
		}
		if _, err := stockRepo.GetForUpdate(second, input.ProductID); err != nil {
			return err
		}

		outMov, fromQty, err := applyLeg(movRepo, stockRepo, &entity.StockMovement{
			TransferID:  transferID,
			WarehouseID: input.FromWarehouseID,
			ProductID:   input.ProductID,
			Type:        entity.MovementTypeTransfer,
			Quantity:    input.Quantity.Neg(),
			Reason:      input.Reason,
			PerformedBy: input.PerformedBy,
			CreatedAt:   now,
		})
		if err != nil {
			return err
		}
		inMov, toQty, err := applyLeg(movRepo, stockRepo, &entity.StockMovement{
			TransferID:  transferID,
			WarehouseID: input.ToWarehouseID,
			ProductID:   input.ProductID,
			Type:        entity.MovementTypeTransfer,
			Quantity:    input.Quantity,
			Reason:      input.Reason,
			PerformedBy: input.PerformedBy,
			CreatedAt:   now,
		})
		if err != nil {
			return err
		}
		result = &TransferResult{
			TransferID:   transferID,
			OutEventID:   outMov.ID,
			InEventID:    inMov.ID,
			FromQuantity: fromQty,
			ToQuantity:   toQty,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// applyLeg aplica una pata: bloquea la fila, verifica no-negatividad contra el
// saldo vivo, persiste el evento en el ledger y el nuevo saldo materializado.
// Se usa tanto para movimientos simples como para cada pata de un traslado.
func applyLeg(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	mov *entity.StockMovement,
) (*entity.StockMovement, decimal.Decimal, error) {
	stock, err := stockRepo.GetForUpdate(mov.WarehouseID, mov.ProductID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	newQty := stock.Quantity.Add(mov.Quantity)
	if newQty.LessThan(decimal.Zero) {
		return nil, decimal.Zero, domain.ErrInsufficientStock
	}
	if err := movRepo.Append(mov); err != nil {
		return nil, decimal.Zero, err
	}
	stock.Quantity = newQty
	stock.UpdatedAt = mov.CreatedAt
	if err := stockRepo.Upsert(stock); err != nil {
		return nil, decimal.Zero, err
	}
	return mov, newQty, nil
}

// checkCatalog verifica existencia de producto y bodega antes de mutar estado.
func (uc *RecordMovementUseCase) checkCatalog(productID, warehouseID string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.ErrNotFound
	}
	return nil
}
