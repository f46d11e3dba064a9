package memory

import (
	"context"

	"github.com/tu-usuario/marketplace-stock/internal/application/stock"
	"github.com/tu-usuario/marketplace-stock/internal/domain"
	"github.com/tu-usuario/marketplace-stock/internal/domain/entity"
	"github.com/tu-usuario/marketplace-stock/internal/domain/repository"
)

var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner unidad de trabajo en memoria: toma el mutex del artículo para
// serializar cargar-mutar-guardar y prepara las escrituras en un staging
// que solo se vuelca al store si fn termina sin error. Equivalente en
// memoria del par transacción + SELECT FOR UPDATE del adaptador PostgreSQL.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run serializa por itemID y aplica los cambios de fn atómicamente.
func (r *TxRunner) Run(ctx context.Context, itemID string, fn func(repo repository.StockRepository) error) error {
	lock := r.store.lockFor(itemID)
	lock.Lock()
	defer lock.Unlock()

	tx := &txRepo{
		store:   r.store,
		staged:  make(map[string]*entity.StockRecord),
		deleted: make(map[string]bool),
	}
	if err := fn(tx); err != nil {
		return err
	}
	r.store.apply(tx.staged, tx.deleted)
	return nil
}

// txRepo repositorio atado a la "transacción": lee staging primero y
// acumula escrituras sin tocar el store hasta el commit.
type txRepo struct {
	store   *Store
	staged  map[string]*entity.StockRecord
	deleted map[string]bool
}

var _ repository.StockRepository = (*txRepo)(nil)

func (t *txRepo) GetByItemID(_ context.Context, itemID string) (*entity.StockRecord, error) {
	if t.deleted[itemID] {
		return nil, nil
	}
	if r, ok := t.staged[itemID]; ok {
		return cloneRecord(r), nil
	}
	return t.store.get(itemID), nil
}

func (t *txRepo) GetByItemIDForUpdate(ctx context.Context, itemID string) (*entity.StockRecord, error) {
	return t.GetByItemID(ctx, itemID)
}

func (t *txRepo) Create(ctx context.Context, record *entity.StockRecord) error {
	existing, _ := t.GetByItemID(ctx, record.ItemID)
	if existing != nil {
		return domain.ErrDuplicate
	}
	delete(t.deleted, record.ItemID)
	t.staged[record.ItemID] = cloneRecord(record)
	return nil
}

func (t *txRepo) Save(ctx context.Context, record *entity.StockRecord) error {
	existing, _ := t.GetByItemID(ctx, record.ItemID)
	if existing == nil {
		return domain.ErrNotFound
	}
	t.staged[record.ItemID] = cloneRecord(record)
	return nil
}

func (t *txRepo) ListBySupplier(ctx context.Context, supplierID string) ([]*entity.StockRecord, error) {
	return NewStockRepository(t.store).ListBySupplier(ctx, supplierID)
}

func (t *txRepo) ListNeedingReorder(ctx context.Context, supplierID string) ([]*entity.StockRecord, error) {
	return NewStockRepository(t.store).ListNeedingReorder(ctx, supplierID)
}

func (t *txRepo) ExistsByItemID(ctx context.Context, itemID string) (bool, error) {
	r, err := t.GetByItemID(ctx, itemID)
	return r != nil, err
}

func (t *txRepo) DeleteByItemID(ctx context.Context, itemID string) error {
	existing, _ := t.GetByItemID(ctx, itemID)
	if existing == nil {
		return domain.ErrNotFound
	}
	delete(t.staged, itemID)
	t.deleted[itemID] = true
	return nil
}
