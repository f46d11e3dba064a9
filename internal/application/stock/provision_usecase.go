package stock

import (
	"context"
	"fmt"

	"github.com/tu-usuario/marketplace-stock/internal/domain"
	"github.com/tu-usuario/marketplace-stock/internal/domain/entity"
	"github.com/tu-usuario/marketplace-stock/internal/domain/repository"
)

// ProvisionUseCase ciclo de vida del registro: alta al aprovisionar un
// artículo vendible y baja en cascada cuando el catálogo lo elimina.
type ProvisionUseCase struct {
	repo repository.StockRepository
}

// NewProvisionUseCase construye el caso de uso.
func NewProvisionUseCase(repo repository.StockRepository) *ProvisionUseCase {
	return &ProvisionUseCase{repo: repo}
}

// Provision crea el registro en cero (OUT_OF_STOCK) para un artículo nuevo.
// ErrDuplicate si el artículo ya tiene registro (unicidad por ItemID).
func (uc *ProvisionUseCase) Provision(ctx context.Context, supplierID, itemID string) (*entity.StockRecord, error) {
	if supplierID == "" || itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	exists, err := uc.repo.ExistsByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("artículo %s: %w", itemID, domain.ErrDuplicate)
	}
	record := entity.NewStockRecord(supplierID, itemID)
	if err := uc.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Remove elimina el registro como cascada del borrado del artículo.
// Nunca se invoca de forma independiente al catálogo.
func (uc *ProvisionUseCase) Remove(ctx context.Context, itemID string) error {
	if itemID == "" {
		return domain.ErrInvalidInput
	}
	record, err := uc.repo.GetByItemID(ctx, itemID)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("artículo %s: %w", itemID, domain.ErrNotFound)
	}
	return uc.repo.DeleteByItemID(ctx, itemID)
}
