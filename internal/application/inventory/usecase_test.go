package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-core/internal/application/inventory"
	"github.com/jhoicas/Inventario-core/internal/domain"
	"github.com/jhoicas/Inventario-core/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	productP   = "00000000-0000-0000-0000-00000000000a"
	productQ   = "00000000-0000-0000-0000-00000000000b"
	warehouse1 = "00000000-0000-0000-0000-000000000001"
	warehouse2 = "00000000-0000-0000-0000-000000000002"
)

// buildEngine arma el coordinador con fakes y el catálogo mínimo (P, Q, W1, W2).
func buildEngine() (*inventory.RecordMovementUseCase, *fakeTxRunner) {
	runner := newFakeTxRunner()
	products := newFakeProductRepo(
		&entity.Product{ID: productP, SKU: "SKU-P", Name: "Producto P", IsActive: true},
		&entity.Product{ID: productQ, SKU: "SKU-Q", Name: "Producto Q", IsActive: true},
	)
	warehouses := newFakeWarehouseRepo(
		&entity.Warehouse{ID: warehouse1, Name: "Bodega 1", IsActive: true},
		&entity.Warehouse{ID: warehouse2, Name: "Bodega 2", IsActive: true},
	)
	return inventory.NewRecordMovementUseCase(runner, products, warehouses), runner
}

// mustRecord registra un movimiento que debe ser exitoso.
func mustRecord(t *testing.T, uc *inventory.RecordMovementUseCase, warehouseID, productID, movType string, qty int64, by string) *inventory.MovementResult {
	t.Helper()
	result, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		WarehouseID: warehouseID,
		ProductID:   productID,
		Type:        movType,
		Quantity:    decimal.NewFromInt(qty),
		PerformedBy: by,
	})
	require.NoError(t, err, "el movimiento debe registrarse sin error")
	require.NotNil(t, result)
	return result
}

func quantityOf(t *testing.T, runner *fakeTxRunner, warehouseID, productID string) decimal.Decimal {
	t.Helper()
	stock, err := runner.stock.Get(warehouseID, productID)
	require.NoError(t, err)
	return stock.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos simples
// ──────────────────────────────────────────────────────────────────────────────

// Escenario: entrada de 100 unidades por alice deja el saldo en 100.
func TestRecordMovement_EntradaIncrementaStock(t *testing.T) {
	uc, runner := buildEngine()

	result := mustRecord(t, uc, warehouse1, productP, entity.MovementTypeIn, 100, "alice")

	assert.True(t, result.NewQuantity.Equal(decimal.NewFromInt(100)),
		"el saldo devuelto debe ser 100, fue %s", result.NewQuantity)
	assert.True(t, quantityOf(t, runner, warehouse1, productP).Equal(decimal.NewFromInt(100)),
		"el stock materializado debe quedar en 100")
	assert.NotEmpty(t, result.EventID, "el evento debe tener ID")
}

// Escenario: desde 100, salida de 30 por bob deja 70; una salida de 100 se
// rechaza con stock insuficiente y el saldo no cambia.
func TestRecordMovement_SalidaYStockInsuficiente(t *testing.T) {
	uc, runner := buildEngine()
	mustRecord(t, uc, warehouse1, productP, entity.MovementTypeIn, 100, "alice")

	mustRecord(t, uc, warehouse1, productP, entity.MovementTypeOut, -30, "bob")
	assert.True(t, quantityOf(t, runner, warehouse1, productP).Equal(decimal.NewFromInt(70)))

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		WarehouseID: warehouse1,
		ProductID:   productP,
		Type:        entity.MovementTypeOut,
		Quantity:    decimal.NewFromInt(-100),
		PerformedBy: "bob",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"una salida mayor al saldo debe rechazarse")
	assert.True(t, quantityOf(t, runner, warehouse1, productP).Equal(decimal.NewFromInt(70)),
		"el saldo debe quedar intacto tras el rechazo")
	assert.Len(t, runner.movements.byKey(warehouse1, productP), 2,
		"el rechazo no debe dejar eventos en el ledger")
}

// Un ajuste negativo que no baja de cero es válido.
func TestRecordMovement_AjusteNegativo(t *testing.T) {
	uc, runner := buildEngine()
	mustRecord(t, uc, warehouse1, productP, entity.MovementTypeIn, 50, "alice")

	mustRecord(t, uc, warehouse1, productP, entity.MovementTypeAdjustment, -20, "carol")

	assert.True(t, quantityOf(t, runner, warehouse1, productP).Equal(decimal.NewFromInt(30)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden de validación: la primera falla gana
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_CantidadCeroRechazada(t *testing.T) {
	uc, _ := buildEngine()
	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		WarehouseID: warehouse1,
		ProductID:   productP,
		Type:        entity.MovementTypeIn,
		Quantity:    decimal.Zero,
		PerformedBy: "alice",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordMovement_PerformedByVacioRechazado(t *testing.T) {
	uc, _ := buildEngine()
	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		WarehouseID: warehouse1,
		ProductID:   productP,
		Type:        entity.MovementTypeIn,
		Quantity:    decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordMovement_TipoInvalidoRechazado(t *testing.T) {
	uc, _ := buildEngine()
	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		WarehouseID: warehouse1,
		ProductID:   productP,
		Type:        "restock",
		Quantity:    decimal.NewFromInt(10),
		PerformedBy: "alice",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El tipo transfer no entra por RecordMovement: toca dos llaves.
func TestRecordMovement_TransferPorMovimientoSimpleRechazado(t *testing.T) {
	uc, _ := buildEngine()
	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		WarehouseID: warehouse1,
		ProductID:   productP,
		Type:        entity.MovementTypeTransfer,
		Quantity:    decimal.NewFromInt(10),
		PerformedBy: "alice",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La validación de entrada gana sobre la existencia en catálogo: con cantidad
// cero y producto desconocido, el error debe ser de validación.
func TestRecordMovement_ValidacionGanaANotFound(t *testing.T) {
	uc, _ := buildEngine()
	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		WarehouseID: warehouse1,
		ProductID:   "producto-inexistente",
		Type:        entity.MovementTypeIn,
		Quantity:    decimal.Zero,
		PerformedBy: "alice",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"la primera falla (cantidad cero) gana sobre producto inexistente")
}

func TestRecordMovement_ProductoInexistente(t *testing.T) {
	uc, _ := buildEngine()
	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		WarehouseID: warehouse1,
		ProductID:   "producto-inexistente",
		Type:        entity.MovementTypeIn,
		Quantity:    decimal.NewFromInt(10),
		PerformedBy: "alice",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordMovement_BodegaInexistente(t *testing.T) {
	uc, _ := buildEngine()
	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		WarehouseID: "bodega-inexistente",
		ProductID:   productP,
		Type:        entity.MovementTypeIn,
		Quantity:    decimal.NewFromInt(10),
		PerformedBy: "alice",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Traslados
// ──────────────────────────────────────────────────────────────────────────────

// Escenario: trasladar 20 de W1 (70) a W2 (0) deja W1=50, W2=20 y dos eventos
// enlazados con la misma magnitud y signo opuesto.
func TestRecordTransfer_TrasladaEntreBodegas(t *testing.T) {
	uc, runner := buildEngine()
	mustRecord(t, uc, warehouse1, productP, entity.MovementTypeIn, 70, "alice")

	result, err := uc.RecordTransfer(context.Background(), inventory.TransferInput{
		ProductID:       productP,
		FromWarehouseID: warehouse1,
		ToWarehouseID:   warehouse2,
		Quantity:        decimal.NewFromInt(20),
		PerformedBy:     "dave",
	})
	require.NoError(t, err)

	assert.True(t, result.FromQuantity.Equal(decimal.NewFromInt(50)), "origen debe quedar en 50")
	assert.True(t, result.ToQuantity.Equal(decimal.NewFromInt(20)), "destino debe quedar en 20")
	assert.True(t, quantityOf(t, runner, warehouse1, productP).Equal(decimal.NewFromInt(50)))
	assert.True(t, quantityOf(t, runner, warehouse2, productP).Equal(decimal.NewFromInt(20)))

	outLeg := runner.movements.byKey(warehouse1, productP)
	inLeg := runner.movements.byKey(warehouse2, productP)
	require.Len(t, inLeg, 1, "debe haber exactamente una pata de entrada en destino")
	last := outLeg[len(outLeg)-1]
	assert.Equal(t, result.TransferID, last.TransferID, "las patas comparten TransferID")
	assert.Equal(t, result.TransferID, inLeg[0].TransferID)
	assert.True(t, last.Quantity.Equal(inLeg[0].Quantity.Neg()),
		"misma magnitud y signo opuesto: %s vs %s", last.Quantity, inLeg[0].Quantity)
}

// Un traslado sin saldo suficiente no deja rastro en ninguna de las dos llaves.
func TestRecordTransfer_StockInsuficienteSinEfectoParcial(t *testing.T) {
	uc, runner := buildEngine()
	mustRecord(t, uc, warehouse1, productP, entity.MovementTypeIn, 10, "alice")

	_, err := uc.RecordTransfer(context.Background(), inventory.TransferInput{
		ProductID:       productP,
		FromWarehouseID: warehouse1,
		ToWarehouseID:   warehouse2,
		Quantity:        decimal.NewFromInt(50),
		PerformedBy:     "dave",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, quantityOf(t, runner, warehouse1, productP).Equal(decimal.NewFromInt(10)),
		"el origen no debe cambiar")
	assert.True(t, quantityOf(t, runner, warehouse2, productP).IsZero(),
		"el destino no debe recibir nada: un traslado parcial es corrupción")
	assert.Empty(t, runner.movements.byKey(warehouse2, productP),
		"no debe quedar pata de entrada huérfana en el ledger")
}

func TestRecordTransfer_MismaBodegaRechazado(t *testing.T) {
	uc, _ := buildEngine()
	_, err := uc.RecordTransfer(context.Background(), inventory.TransferInput{
		ProductID:       productP,
		FromWarehouseID: warehouse1,
		ToWarehouseID:   warehouse1,
		Quantity:        decimal.NewFromInt(5),
		PerformedBy:     "dave",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordTransfer_CantidadNegativaRechazada(t *testing.T) {
	uc, _ := buildEngine()
	_, err := uc.RecordTransfer(context.Background(), inventory.TransferInput{
		ProductID:       productP,
		FromWarehouseID: warehouse1,
		ToWarehouseID:   warehouse2,
		Quantity:        decimal.NewFromInt(-5),
		PerformedBy:     "dave",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad: ledger y stock materializado viven o mueren juntos
// ──────────────────────────────────────────────────────────────────────────────

// Si el upsert del stock falla después del append al ledger, el rollback debe
// dejar el sistema exactamente como antes: nunca un estado mixto.
func TestAtomicidad_FalloTrasAppendRevierteTodo(t *testing.T) {
	uc, runner := buildEngine()
	mustRecord(t, uc, warehouse1, productP, entity.MovementTypeIn, 40, "alice")

	runner.stock.failUpsert = true
	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		WarehouseID: warehouse1,
		ProductID:   productP,
		Type:        entity.MovementTypeIn,
		Quantity:    decimal.NewFromInt(10),
		PerformedBy: "alice",
	})
	require.Error(t, err)
	runner.stock.failUpsert = false

	assert.Len(t, runner.movements.byKey(warehouse1, productP), 1,
		"el evento appendeado debe revertirse con la transacción")
	assert.True(t, quantityOf(t, runner, warehouse1, productP).Equal(decimal.NewFromInt(40)),
		"el stock debe quedar en el estado previo")
}

// Si el append al ledger falla, el stock tampoco debe moverse.
func TestAtomicidad_FalloEnAppendNoTocaStock(t *testing.T) {
	uc, runner := buildEngine()
	mustRecord(t, uc, warehouse1, productP, entity.MovementTypeIn, 40, "alice")

	runner.movements.failAppend = true
	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		WarehouseID: warehouse1,
		ProductID:   productP,
		Type:        entity.MovementTypeIn,
		Quantity:    decimal.NewFromInt(10),
		PerformedBy: "alice",
	})
	require.Error(t, err)
	runner.movements.failAppend = false

	assert.True(t, quantityOf(t, runner, warehouse1, productP).Equal(decimal.NewFromInt(40)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// Escenario: dos salidas concurrentes de -60 contra un saldo de 100. Exactamente
// una gana (deja 40); la otra recibe stock insuficiente. El saldo nunca queda
// negativo ni doblemente descontado.
func TestConcurrencia_DosSalidasSoloUnaGana(t *testing.T) {
	uc, runner := buildEngine()
	mustRecord(t, uc, warehouse1, productP, entity.MovementTypeIn, 100, "alice")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.RecordMovement(context.Background(), inventory.MovementInput{
				WarehouseID: warehouse1,
				ProductID:   productP,
				Type:        entity.MovementTypeOut,
				Quantity:    decimal.NewFromInt(-60),
				PerformedBy: "bob",
			})
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case err == domain.ErrInsufficientStock:
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactamente una salida debe ganar")
	assert.Equal(t, 1, insufficient, "la otra debe rechazarse por stock insuficiente")
	assert.True(t, quantityOf(t, runner, warehouse1, productP).Equal(decimal.NewFromInt(40)),
		"el saldo final debe ser 40")
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante 1: replay del ledger == stock materializado
// ──────────────────────────────────────────────────────────────────────────────

func TestReplay_EquivaleAlStockMaterializado(t *testing.T) {
	uc, runner := buildEngine()
	reconcile := inventory.NewReconcileUseCase(runner)

	mustRecord(t, uc, warehouse1, productP, entity.MovementTypeIn, 100, "alice")
	mustRecord(t, uc, warehouse1, productP, entity.MovementTypeOut, -25, "bob")
	mustRecord(t, uc, warehouse1, productP, entity.MovementTypeAdjustment, 7, "carol")
	mustRecord(t, uc, warehouse1, productQ, entity.MovementTypeIn, 12, "alice")
	_, err := uc.RecordTransfer(context.Background(), inventory.TransferInput{
		ProductID:       productP,
		FromWarehouseID: warehouse1,
		ToWarehouseID:   warehouse2,
		Quantity:        decimal.NewFromInt(30),
		PerformedBy:     "dave",
	})
	require.NoError(t, err)

	for _, tc := range []struct{ warehouseID, productID string }{
		{warehouse1, productP},
		{warehouse2, productP},
		{warehouse1, productQ},
	} {
		result, err := reconcile.Verify(context.Background(), tc.warehouseID, tc.productID)
		require.NoError(t, err, "replay y stock deben coincidir para %s/%s", tc.warehouseID, tc.productID)
		assert.True(t, result.Ledger.Equal(result.Aggregate))
	}
}

// Una divergencia inyectada (escritura por fuera del coordinador) debe detectarse.
func TestReplay_DivergenciaDetectada(t *testing.T) {
	uc, runner := buildEngine()
	reconcile := inventory.NewReconcileUseCase(runner)
	mustRecord(t, uc, warehouse1, productP, entity.MovementTypeIn, 100, "alice")

	// Mutación directa del stock saltándose el ledger: justo lo prohibido.
	runner.stock.rows[key(warehouse1, productP)].Quantity = decimal.NewFromInt(99)

	result, err := reconcile.Verify(context.Background(), warehouse1, productP)
	assert.ErrorIs(t, err, domain.ErrLedgerDiverged)
	require.NotNil(t, result)
	assert.True(t, result.Ledger.Equal(decimal.NewFromInt(100)))
	assert.True(t, result.Aggregate.Equal(decimal.NewFromInt(99)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante 2: ninguna secuencia de movimientos deja saldo negativo
// ──────────────────────────────────────────────────────────────────────────────

func TestNoNegatividad_SecuenciaDeMovimientos(t *testing.T) {
	uc, runner := buildEngine()

	deltas := []int64{50, -20, -20, -20, 30, -45, -1}
	for _, d := range deltas {
		movType := entity.MovementTypeIn
		if d < 0 {
			movType = entity.MovementTypeOut
		}
		_, _ = uc.RecordMovement(context.Background(), inventory.MovementInput{
			WarehouseID: warehouse1,
			ProductID:   productP,
			Type:        movType,
			Quantity:    decimal.NewFromInt(d),
			PerformedBy: "alice",
		})
		qty := quantityOf(t, runner, warehouse1, productP)
		assert.False(t, qty.LessThan(decimal.Zero),
			"el saldo nunca puede ser negativo, fue %s tras delta %d", qty, d)
	}
}
