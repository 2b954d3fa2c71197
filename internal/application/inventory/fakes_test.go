package inventory_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Inventario-core/internal/domain"
	"github.com/jhoicas/Inventario-core/internal/domain/entity"
	"github.com/jhoicas/Inventario-core/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos del motor. El fakeTxRunner toma una foto del
// estado al entrar y la restaura si fn falla, imitando el Rollback de la BD;
// el mutex serializa las transacciones igual que el FOR UPDATE por llave.
// ──────────────────────────────────────────────────────────────────────────────

var errForcedFailure = errors.New("fallo inyectado")

func key(warehouseID, productID string) string { return warehouseID + "|" + productID }

type fakeStockRepo struct {
	rows       map[string]*entity.Stock
	failUpsert bool
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{rows: map[string]*entity.Stock{}}
}

func (r *fakeStockRepo) Get(warehouseID, productID string) (*entity.Stock, error) {
	if s, ok := r.rows[key(warehouseID, productID)]; ok {
		cp := *s
		return &cp, nil
	}
	return &entity.Stock{WarehouseID: warehouseID, ProductID: productID, Quantity: decimal.Zero}, nil
}

func (r *fakeStockRepo) GetForUpdate(warehouseID, productID string) (*entity.Stock, error) {
	return r.Get(warehouseID, productID)
}

func (r *fakeStockRepo) Upsert(stock *entity.Stock) error {
	if r.failUpsert {
		return errForcedFailure
	}
	cp := *stock
	r.rows[key(stock.WarehouseID, stock.ProductID)] = &cp
	return nil
}

func (r *fakeStockRepo) snapshot() map[string]*entity.Stock {
	snap := make(map[string]*entity.Stock, len(r.rows))
	for k, v := range r.rows {
		cp := *v
		snap[k] = &cp
	}
	return snap
}

func (r *fakeStockRepo) restore(snap map[string]*entity.Stock) { r.rows = snap }

type fakeMovementRepo struct {
	events     []*entity.StockMovement
	failAppend bool
}

func newFakeMovementRepo() *fakeMovementRepo { return &fakeMovementRepo{} }

func (r *fakeMovementRepo) Append(m *entity.StockMovement) error {
	if r.failAppend {
		return errForcedFailure
	}
	if m.Quantity.IsZero() || m.PerformedBy == "" {
		return domain.ErrInvalidInput
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	var maxSeq int64
	for _, e := range r.events {
		if e.WarehouseID == m.WarehouseID && e.ProductID == m.ProductID && e.Seq > maxSeq {
			maxSeq = e.Seq
		}
	}
	m.Seq = maxSeq + 1
	cp := *m
	r.events = append(r.events, &cp)
	return nil
}

func (r *fakeMovementRepo) Replay(warehouseID, productID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range r.events {
		if e.WarehouseID == warehouseID && e.ProductID == productID {
			sum = sum.Add(e.Quantity)
		}
	}
	return sum, nil
}

func (r *fakeMovementRepo) ListByKey(warehouseID, productID string, from, to *time.Time, afterSeq int64, limit int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, e := range r.events {
		if e.WarehouseID != warehouseID || e.ProductID != productID || e.Seq <= afterSeq {
			continue
		}
		if from != nil && e.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && e.CreatedAt.After(*to) {
			continue
		}
		cp := *e
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Seq < list[j].Seq })
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *fakeMovementRepo) byKey(warehouseID, productID string) []*entity.StockMovement {
	var list []*entity.StockMovement
	for _, e := range r.events {
		if e.WarehouseID == warehouseID && e.ProductID == productID {
			list = append(list, e)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Seq < list[j].Seq })
	return list
}

func (r *fakeMovementRepo) snapshot() []*entity.StockMovement {
	snap := make([]*entity.StockMovement, len(r.events))
	copy(snap, r.events)
	return snap
}

func (r *fakeMovementRepo) restore(snap []*entity.StockMovement) { r.events = snap }

type fakeTxRunner struct {
	mu        sync.Mutex
	stock     *fakeStockRepo
	movements *fakeMovementRepo
}

func newFakeTxRunner() *fakeTxRunner {
	return &fakeTxRunner{stock: newFakeStockRepo(), movements: newFakeMovementRepo()}
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stockSnap := r.stock.snapshot()
	movSnap := r.movements.snapshot()
	if err := fn(r.movements, r.stock); err != nil {
		r.stock.restore(stockSnap)
		r.movements.restore(movSnap)
		return err
	}
	return nil
}

func (r *fakeTxRunner) RunSnapshot(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.movements, r.stock)
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.products {
		list = append(list, p)
	}
	return list, nil
}

type fakeWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

func newFakeWarehouseRepo(warehouses ...*entity.Warehouse) *fakeWarehouseRepo {
	r := &fakeWarehouseRepo{warehouses: map[string]*entity.Warehouse{}}
	for _, w := range warehouses {
		r.warehouses[w.ID] = w
	}
	return r
}

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	r.warehouses[w.ID] = w
	return nil
}

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.warehouses[id], nil
}

func (r *fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	for _, w := range r.warehouses {
		list = append(list, w)
	}
	return list, nil
}
