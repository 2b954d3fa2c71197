package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-core/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo consultas de alertas sobre PostgreSQL.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador de alertas. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// ListLowStock devuelve productos activos en o bajo su umbral de reorden
// (default 10 si no está definido) con salidas en los últimos 30 días.
// La velocidad diaria se calcula sobre los días con actividad, no sobre 30.
func (r *AlertRepo) ListLowStock(ctx context.Context) ([]repository.LowStockRow, error) {
	query := `
		WITH recent_sales AS (
			SELECT
				sm.warehouse_id,
				sm.product_id,
				SUM(ABS(sm.quantity)) AS total_sold,
				CASE
					WHEN COUNT(DISTINCT DATE(sm.created_at)) > 0
					THEN SUM(ABS(sm.quantity)) / COUNT(DISTINCT DATE(sm.created_at))
					ELSE 0
				END AS daily_sales_rate
			FROM stock_movements sm
			WHERE sm.type = 'out'
			  AND sm.created_at >= now() - INTERVAL '30 days'
			  AND sm.quantity < 0
			GROUP BY sm.warehouse_id, sm.product_id
			HAVING SUM(ABS(sm.quantity)) > 0
		)
		SELECT
			p.id, p.name, p.sku,
			s.warehouse_id, w.name,
			s.quantity,
			CASE WHEN p.reorder_level > 0 THEN p.reorder_level ELSE 10 END AS threshold,
			rs.daily_sales_rate,
			rs.total_sold
		FROM stock s
		JOIN warehouses w ON w.id = s.warehouse_id
		JOIN products p ON p.id = s.product_id
		JOIN recent_sales rs ON rs.warehouse_id = s.warehouse_id AND rs.product_id = s.product_id
		WHERE s.quantity <= CASE WHEN p.reorder_level > 0 THEN p.reorder_level ELSE 10 END
		  AND p.is_active = true
		  AND w.is_active = true
		ORDER BY s.quantity ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var list []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.SKU,
			&row.WarehouseID, &row.WarehouseName, &row.CurrentStock,
			&row.Threshold, &row.DailySalesRate, &row.UnitsSold30d); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
