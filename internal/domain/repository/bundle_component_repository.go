package repository

import "github.com/jhoicas/Inventario-core/internal/domain/entity"

// BundleComponentRepository define el puerto del grafo de composición de bundles.
// La gestión del grafo es del catálogo; el motor de stock solo lo lee.
type BundleComponentRepository interface {
	Add(component *entity.BundleComponent) error
	Remove(bundleID, componentID string) error
	// ComponentsOf devuelve los componentes directos del bundle, en orden estable.
	ComponentsOf(bundleID string) ([]*entity.BundleComponent, error)
}
