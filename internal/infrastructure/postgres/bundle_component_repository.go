package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-core/internal/domain"
	"github.com/jhoicas/Inventario-core/internal/domain/entity"
	"github.com/jhoicas/Inventario-core/internal/domain/repository"
)

var _ repository.BundleComponentRepository = (*BundleComponentRepo)(nil)

// BundleComponentRepo adaptador del grafo de composición sobre PostgreSQL.
type BundleComponentRepo struct {
	q Querier
}

// NewBundleComponentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBundleComponentRepository(q Querier) *BundleComponentRepo {
	return &BundleComponentRepo{q: q}
}

// Add inserta la arista bundle → componente. Arista repetida devuelve
// domain.ErrDuplicate (llave única por par).
func (r *BundleComponentRepo) Add(component *entity.BundleComponent) error {
	query := `
		INSERT INTO bundle_components (bundle_id, component_id, quantity, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		component.BundleID, component.ComponentID, component.Quantity, component.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("add bundle component: %w", err)
	}
	return nil
}

// Remove elimina la arista bundle → componente.
func (r *BundleComponentRepo) Remove(bundleID, componentID string) error {
	query := `DELETE FROM bundle_components WHERE bundle_id = $1 AND component_id = $2`
	tag, err := r.q.Exec(context.Background(), query, bundleID, componentID)
	if err != nil {
		return fmt.Errorf("remove bundle component: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ComponentsOf devuelve los componentes directos del bundle en orden estable.
func (r *BundleComponentRepo) ComponentsOf(bundleID string) ([]*entity.BundleComponent, error) {
	query := `
		SELECT bundle_id, component_id, quantity, created_at
		FROM bundle_components WHERE bundle_id = $1
		ORDER BY component_id`
	rows, err := r.q.Query(context.Background(), query, bundleID)
	if err != nil {
		return nil, fmt.Errorf("components of bundle: %w", err)
	}
	defer rows.Close()

	var list []*entity.BundleComponent
	for rows.Next() {
		var c entity.BundleComponent
		if err := rows.Scan(&c.BundleID, &c.ComponentID, &c.Quantity, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bundle component: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
