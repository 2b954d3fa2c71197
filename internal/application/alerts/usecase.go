package alerts

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Inventario-core/internal/application/dto"
	"github.com/jhoicas/Inventario-core/internal/domain/repository"
)

// maxStockoutDays tope para productos sin velocidad de venta medible.
const maxStockoutDays = 999

// LowStockUseCase genera alertas de stock bajo: productos en o bajo su umbral
// de reorden con ventas en los últimos 30 días, con proyección de días hasta
// agotarse según la velocidad de venta diaria.
type LowStockUseCase struct {
	alertRepo repository.AlertRepository
}

// NewLowStockUseCase construye el caso de uso de alertas.
func NewLowStockUseCase(alertRepo repository.AlertRepository) *LowStockUseCase {
	return &LowStockUseCase{alertRepo: alertRepo}
}

// ListAlerts devuelve las alertas ordenadas de más a menos urgente:
// primero menos días hasta agotarse, luego menor stock actual.
func (uc *LowStockUseCase) ListAlerts(ctx context.Context) ([]dto.LowStockAlertDTO, error) {
	rows, err := uc.alertRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}

	alerts := make([]dto.LowStockAlertDTO, 0, len(rows))
	for _, row := range rows {
		days := int64(maxStockoutDays)
		if row.DailySalesRate.GreaterThan(decimal.Zero) {
			days = row.CurrentStock.Div(row.DailySalesRate).Ceil().IntPart()
			if days > maxStockoutDays {
				days = maxStockoutDays
			}
		}
		alerts = append(alerts, dto.LowStockAlertDTO{
			ProductID:         row.ProductID,
			ProductName:       row.ProductName,
			SKU:               row.SKU,
			WarehouseID:       row.WarehouseID,
			WarehouseName:     row.WarehouseName,
			CurrentStock:      row.CurrentStock,
			Threshold:         row.Threshold,
			DaysUntilStockout: days,
			UnitsSold30d:      row.UnitsSold30d,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].DaysUntilStockout != alerts[j].DaysUntilStockout {
			return alerts[i].DaysUntilStockout < alerts[j].DaysUntilStockout
		}
		return alerts[i].CurrentStock.LessThan(alerts[j].CurrentStock)
	})
	return alerts, nil
}
