package inventory

import (
	"time"

	"github.com/jhoicas/Inventario-core/internal/domain/entity"
	"github.com/jhoicas/Inventario-core/internal/domain/repository"
)

// DefaultHistoryBatch tamaño de página por defecto del cursor de historial.
const DefaultHistoryBatch = 100

// HistoryUseCase recorre el historial de movimientos de una llave en orden de
// secuencia, de forma perezosa (paginando contra el ledger) y reiniciable
// (cada llamada a Stream produce un cursor nuevo desde el principio).
type HistoryUseCase struct {
	movRepo   repository.StockMovementRepository
	batchSize int
}

// NewHistoryUseCase construye el caso de uso. batchSize <= 0 usa el default.
func NewHistoryUseCase(movRepo repository.StockMovementRepository, batchSize int) *HistoryUseCase {
	if batchSize <= 0 {
		batchSize = DefaultHistoryBatch
	}
	return &HistoryUseCase{movRepo: movRepo, batchSize: batchSize}
}

// Stream abre un cursor sobre los movimientos de la llave dentro del rango de
// fechas (from/to pueden ser nil), ordenados por seq ascendente.
func (uc *HistoryUseCase) Stream(warehouseID, productID string, from, to *time.Time) *HistoryCursor {
	return &HistoryCursor{
		uc:          uc,
		warehouseID: warehouseID,
		productID:   productID,
		from:        from,
		to:          to,
	}
}

// HistoryCursor cursor perezoso sobre el ledger. No es seguro para uso
// concurrente; para reiniciar, pedir otro cursor a Stream.
type HistoryCursor struct {
	uc          *HistoryUseCase
	warehouseID string
	productID   string
	from, to    *time.Time

	buf      []*entity.StockMovement
	pos      int
	afterSeq int64
	done     bool
}

// Next devuelve el siguiente movimiento o nil, nil al agotar el historial.
func (c *HistoryCursor) Next() (*entity.StockMovement, error) {
	if c.pos >= len(c.buf) {
		if c.done {
			return nil, nil
		}
		batch, err := c.uc.movRepo.ListByKey(
			c.warehouseID, c.productID, c.from, c.to, c.afterSeq, c.uc.batchSize,
		)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			c.done = true
			return nil, nil
		}
		if len(batch) < c.uc.batchSize {
			c.done = true
		}
		c.buf = batch
		c.pos = 0
		c.afterSeq = batch[len(batch)-1].Seq
	}
	mov := c.buf[c.pos]
	c.pos++
	return mov, nil
}

// Collect drena el cursor completo (para respuestas HTTP acotadas por fechas).
func (c *HistoryCursor) Collect() ([]*entity.StockMovement, error) {
	var all []*entity.StockMovement
	for {
		mov, err := c.Next()
		if err != nil {
			return nil, err
		}
		if mov == nil {
			return all, nil
		}
		all = append(all, mov)
	}
}
