package repository

import (
	"context"

	"github.com/tu-usuario/marketplace-stock/internal/domain/entity"
)

// StockRepository define el puerto de persistencia del libro de stock (DIP).
// Get* devuelven (nil, nil) si no existe registro para el artículo.
type StockRepository interface {
	// GetByItemID carga el registro por artículo (producto o variante).
	GetByItemID(ctx context.Context, itemID string) (*entity.StockRecord, error)
	// GetByItemIDForUpdate carga y bloquea la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción (TxRunner).
	GetByItemIDForUpdate(ctx context.Context, itemID string) (*entity.StockRecord, error)

	// Create inserta un registro nuevo; ErrDuplicate si el artículo ya tiene uno.
	Create(ctx context.Context, record *entity.StockRecord) error
	// Save persiste las cantidades, umbrales y estado del registro.
	Save(ctx context.Context, record *entity.StockRecord) error

	ListBySupplier(ctx context.Context, supplierID string) ([]*entity.StockRecord, error)
	// ListNeedingReorder devuelve los registros con stock total bajo su umbral,
	// mayor déficit primero. supplierID vacío = todos los proveedores.
	ListNeedingReorder(ctx context.Context, supplierID string) ([]*entity.StockRecord, error)

	ExistsByItemID(ctx context.Context, itemID string) (bool, error)
	// DeleteByItemID elimina el registro; solo como cascada al borrar el artículo.
	DeleteByItemID(ctx context.Context, itemID string) error
}
