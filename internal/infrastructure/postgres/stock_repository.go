package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/marketplace-stock/internal/domain"
	"github.com/tu-usuario/marketplace-stock/internal/domain/entity"
	"github.com/tu-usuario/marketplace-stock/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

const stockColumns = `id, supplier_id, item_id, available_quantity, reserved_quantity,
		reorder_level, reorder_quantity, warehouse_location, last_restocked, last_updated, status`

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetByItemID obtiene el registro de stock de un artículo; (nil, nil) si no existe.
func (r *StockRepo) GetByItemID(ctx context.Context, itemID string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE item_id = $1`
	return r.scanOne(ctx, query, itemID)
}

// GetByItemIDForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE).
// Serializa las mutaciones concurrentes sobre el mismo artículo; filas de
// artículos distintos no se bloquean entre sí.
func (r *StockRepo) GetByItemIDForUpdate(ctx context.Context, itemID string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE item_id = $1 FOR UPDATE`
	return r.scanOne(ctx, query, itemID)
}

func (r *StockRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.StockRecord, error) {
	var s entity.StockRecord
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.SupplierID, &s.ItemID, &s.Available, &s.Reserved,
		&s.ReorderLevel, &s.ReorderQty, &s.Location, &s.LastRestocked, &s.LastUpdated, &s.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock record: %w", translateError(err))
	}
	return &s, nil
}

// Create inserta el registro; la unicidad por item_id la garantiza el constraint.
func (r *StockRepo) Create(ctx context.Context, record *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		record.ID, record.SupplierID, record.ItemID, record.Available, record.Reserved,
		record.ReorderLevel, record.ReorderQty, record.Location,
		record.LastRestocked, record.LastUpdated, record.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create stock record: %w", translateError(err))
	}
	return nil
}

// Save persiste cantidades, umbrales, bodega y estado del registro.
func (r *StockRepo) Save(ctx context.Context, record *entity.StockRecord) error {
	query := `
		UPDATE stock_records
		SET available_quantity = $2, reserved_quantity = $3,
		    reorder_level = $4, reorder_quantity = $5, warehouse_location = $6,
		    last_restocked = $7, last_updated = $8, status = $9
		WHERE item_id = $1`
	tag, err := r.q.Exec(ctx, query,
		record.ItemID, record.Available, record.Reserved,
		record.ReorderLevel, record.ReorderQty, record.Location,
		record.LastRestocked, record.LastUpdated, record.Status,
	)
	if err != nil {
		return fmt.Errorf("save stock record: %w", translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListBySupplier lista los registros de un proveedor.
func (r *StockRepo) ListBySupplier(ctx context.Context, supplierID string) ([]*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + `
		FROM stock_records WHERE supplier_id = $1 ORDER BY last_updated DESC`
	return r.scanMany(ctx, query, supplierID)
}

// ListNeedingReorder devuelve los registros cuyo stock total cayó a su umbral,
// excluyendo descontinuados, mayor déficit primero. supplierID vacío = todos.
func (r *StockRepo) ListNeedingReorder(ctx context.Context, supplierID string) ([]*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + `
		FROM stock_records
		WHERE reorder_level IS NOT NULL
		  AND status <> 'DISCONTINUED'
		  AND available_quantity + reserved_quantity <= reorder_level
		  AND ($1 = '' OR supplier_id = $1)
		ORDER BY reorder_level - (available_quantity + reserved_quantity) DESC`
	return r.scanMany(ctx, query, supplierID)
}

func (r *StockRepo) scanMany(ctx context.Context, query string, args ...any) ([]*entity.StockRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock records: %w", translateError(err))
	}
	defer rows.Close()
	var list []*entity.StockRecord
	for rows.Next() {
		var s entity.StockRecord
		if err := rows.Scan(
			&s.ID, &s.SupplierID, &s.ItemID, &s.Available, &s.Reserved,
			&s.ReorderLevel, &s.ReorderQty, &s.Location, &s.LastRestocked, &s.LastUpdated, &s.Status,
		); err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ExistsByItemID verifica si el artículo ya tiene registro de stock.
func (r *StockRepo) ExistsByItemID(ctx context.Context, itemID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM stock_records WHERE item_id = $1)`, itemID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists stock record: %w", translateError(err))
	}
	return exists, nil
}

// DeleteByItemID elimina el registro (cascada del borrado del artículo).
func (r *StockRepo) DeleteByItemID(ctx context.Context, itemID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_records WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete stock record: %w", translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
