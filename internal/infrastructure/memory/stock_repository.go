package memory

import (
	"context"
	"sort"

	"github.com/tu-usuario/marketplace-stock/internal/domain"
	"github.com/tu-usuario/marketplace-stock/internal/domain/entity"
	"github.com/tu-usuario/marketplace-stock/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre el Store en memoria.
// Escribe directo al store; para mutaciones atómicas usar el TxRunner,
// que entrega un repositorio transaccional con commit diferido.
type StockRepo struct {
	store *Store
}

// NewStockRepository construye el adaptador sobre el store.
func NewStockRepository(store *Store) *StockRepo {
	return &StockRepo{store: store}
}

func (r *StockRepo) GetByItemID(_ context.Context, itemID string) (*entity.StockRecord, error) {
	return r.store.get(itemID), nil
}

// GetByItemIDForUpdate fuera de transacción equivale a una lectura simple;
// el bloqueo por artículo lo aporta el TxRunner.
func (r *StockRepo) GetByItemIDForUpdate(ctx context.Context, itemID string) (*entity.StockRecord, error) {
	return r.GetByItemID(ctx, itemID)
}

func (r *StockRepo) Create(_ context.Context, record *entity.StockRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.records[record.ItemID]; exists {
		return domain.ErrDuplicate
	}
	r.store.records[record.ItemID] = cloneRecord(record)
	return nil
}

func (r *StockRepo) Save(_ context.Context, record *entity.StockRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.records[record.ItemID]; !exists {
		return domain.ErrNotFound
	}
	r.store.records[record.ItemID] = cloneRecord(record)
	return nil
}

func (r *StockRepo) ListBySupplier(_ context.Context, supplierID string) ([]*entity.StockRecord, error) {
	var list []*entity.StockRecord
	for _, rec := range r.store.snapshot() {
		if rec.SupplierID == supplierID {
			list = append(list, rec)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ItemID < list[j].ItemID })
	return list, nil
}

func (r *StockRepo) ListNeedingReorder(_ context.Context, supplierID string) ([]*entity.StockRecord, error) {
	var list []*entity.StockRecord
	for _, rec := range r.store.snapshot() {
		if supplierID != "" && rec.SupplierID != supplierID {
			continue
		}
		if rec.NeedsReorder() {
			list = append(list, rec)
		}
	}
	// Mayor déficit primero, como el adaptador PostgreSQL.
	deficit := func(rec *entity.StockRecord) int { return *rec.ReorderLevel - rec.TotalStock() }
	sort.SliceStable(list, func(i, j int) bool { return deficit(list[i]) > deficit(list[j]) })
	return list, nil
}

func (r *StockRepo) ExistsByItemID(_ context.Context, itemID string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	_, exists := r.store.records[itemID]
	return exists, nil
}

func (r *StockRepo) DeleteByItemID(_ context.Context, itemID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.records[itemID]; !exists {
		return domain.ErrNotFound
	}
	delete(r.store.records, itemID)
	return nil
}
