package stock

import (
	"context"
	"fmt"

	"github.com/tu-usuario/marketplace-stock/internal/domain"
	"github.com/tu-usuario/marketplace-stock/internal/domain/entity"
	"github.com/tu-usuario/marketplace-stock/internal/domain/repository"
)

// AvailabilityUseCase consulta de disponibilidad, solo lectura.
// No pasa por TxRunner ni por el camino de guardado.
type AvailabilityUseCase struct {
	repo repository.StockRepository
}

// NewAvailabilityUseCase construye el caso de uso.
func NewAvailabilityUseCase(repo repository.StockRepository) *AvailabilityUseCase {
	return &AvailabilityUseCase{repo: repo}
}

// AvailabilityResult respuesta de la consulta. Available y SufficientStock
// son preguntas independientes: un artículo DISCONTINUED con stock físico
// responde SufficientStock=true y Available=false.
type AvailabilityResult struct {
	Available       bool
	SufficientStock bool
	AvailableQty    int
	Status          entity.StockStatus
}

// Check consulta si el artículo es pedible y si alcanza la cantidad pedida.
// requestedQty 0 significa "sin cantidad solicitada" → SufficientStock=false.
func (uc *AvailabilityUseCase) Check(ctx context.Context, itemID string, requestedQty int) (*AvailabilityResult, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	record, err := uc.repo.GetByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("artículo %s: %w", itemID, domain.ErrNotFound)
	}
	return &AvailabilityResult{
		Available:       record.IsAvailableForOrder(),
		SufficientStock: requestedQty > 0 && record.HasSufficientStock(requestedQty),
		AvailableQty:    record.Available,
		Status:          record.Status,
	}, nil
}

// Get devuelve el registro de stock de un artículo.
func (uc *AvailabilityUseCase) Get(ctx context.Context, itemID string) (*entity.StockRecord, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	record, err := uc.repo.GetByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("artículo %s: %w", itemID, domain.ErrNotFound)
	}
	return record, nil
}

// ListBySupplier lista los registros de stock de un proveedor.
func (uc *AvailabilityUseCase) ListBySupplier(ctx context.Context, supplierID string) ([]*entity.StockRecord, error) {
	if supplierID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.repo.ListBySupplier(ctx, supplierID)
}
