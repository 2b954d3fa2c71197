package inventory

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Inventario-core/internal/domain/repository"
)

// StockQueryUseCase consultas de solo lectura sobre el stock materializado.
type StockQueryUseCase struct {
	stockRepo repository.StockRepository
}

// NewStockQueryUseCase construye el caso de uso de consulta.
func NewStockQueryUseCase(stockRepo repository.StockRepository) *StockQueryUseCase {
	return &StockQueryUseCase{stockRepo: stockRepo}
}

// GetQuantity devuelve la cantidad actual de la llave. Una llave que nunca ha
// tenido movimientos devuelve cero, no error.
func (uc *StockQueryUseCase) GetQuantity(ctx context.Context, warehouseID, productID string) (decimal.Decimal, error) {
	stock, err := uc.stockRepo.Get(warehouseID, productID)
	if err != nil {
		return decimal.Zero, err
	}
	return stock.Quantity, nil
}
