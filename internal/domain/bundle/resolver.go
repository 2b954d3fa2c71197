package bundle

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Inventario-core/internal/domain"
	"github.com/jhoicas/Inventario-core/internal/domain/entity"
)

// MaxDepth limita la profundidad de bundles anidados para fallar rápido
// ante grafos malformados en lugar de recursar sin fin.
const MaxDepth = 32

// StockSource devuelve la cantidad disponible de un producto hoja en una bodega
// (cero si la llave nunca ha tenido movimientos).
type StockSource interface {
	Quantity(warehouseID, productID string) (decimal.Decimal, error)
}

// ComponentSource devuelve los componentes directos de un bundle, en orden estable.
type ComponentSource interface {
	ComponentsOf(bundleID string) ([]*entity.BundleComponent, error)
}

// ProductSource indica si un producto es bundle (stock virtual) u hoja.
type ProductSource interface {
	IsBundle(productID string) (bool, error)
}

// Resolver calcula cuántas unidades de un bundle pueden armarse con el stock
// actual de sus componentes (servicio de dominio, solo lectura).
type Resolver struct {
	stock      StockSource
	components ComponentSource
	products   ProductSource
}

// NewResolver construye el servicio de resolución.
func NewResolver(stock StockSource, components ComponentSource, products ProductSource) *Resolver {
	return &Resolver{stock: stock, components: components, products: products}
}

// MaxBuildable devuelve min sobre componentes de floor(disponible / requerido).
// Un componente hoja aporta su stock en la bodega; un componente bundle aporta
// su propio MaxBuildable (bundles de bundles). Un bundle sin componentes da 0.
// Si la resolución vuelve a visitar un producto del camino actual devuelve
// domain.ErrCyclicBundle.
func (r *Resolver) MaxBuildable(bundleID, warehouseID string) (int64, error) {
	return r.resolve(bundleID, warehouseID, map[string]bool{}, 0)
}

func (r *Resolver) resolve(bundleID, warehouseID string, onPath map[string]bool, depth int) (int64, error) {
	if depth > MaxDepth {
		return 0, domain.ErrCyclicBundle
	}
	if onPath[bundleID] {
		return 0, domain.ErrCyclicBundle
	}
	onPath[bundleID] = true
	defer delete(onPath, bundleID)

	comps, err := r.components.ComponentsOf(bundleID)
	if err != nil {
		return 0, err
	}
	if len(comps) == 0 {
		return 0, nil
	}

	var best int64 = -1
	for _, comp := range comps {
		if comp.Quantity.LessThan(decimal.NewFromInt(1)) {
			return 0, domain.ErrInvalidInput
		}

		isBundle, err := r.products.IsBundle(comp.ComponentID)
		if err != nil {
			return 0, err
		}

		var available decimal.Decimal
		if isBundle {
			nested, err := r.resolve(comp.ComponentID, warehouseID, onPath, depth+1)
			if err != nil {
				return 0, err
			}
			available = decimal.NewFromInt(nested)
		} else {
			available, err = r.stock.Quantity(warehouseID, comp.ComponentID)
			if err != nil {
				return 0, err
			}
		}

		buildable := available.Div(comp.Quantity).Floor().IntPart()
		if buildable < 0 {
			buildable = 0
		}
		if best < 0 || buildable < best {
			best = buildable
		}
	}
	return best, nil
}
