package repository

import "github.com/jhoicas/Inventario-core/internal/domain/entity"

// StockRepository define el puerto de consulta/actualización del stock
// materializado por (bodega, producto). Las escrituras solo deben ocurrir
// dentro de la transacción del coordinador de movimientos: escribir por fuera
// rompe la equivalencia con el ledger.
type StockRepository interface {
	// Get devuelve el stock actual; si la llave nunca ha tenido movimientos
	// devuelve una fila con cantidad cero (ausencia no es error).
	Get(warehouseID, productID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE), creándola
	// en cero si no existe para que el lock tenga fila que sostener.
	GetForUpdate(warehouseID, productID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
}
