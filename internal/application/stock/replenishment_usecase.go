package stock

import (
	"context"

	"github.com/tu-usuario/marketplace-stock/internal/application/dto"
	"github.com/tu-usuario/marketplace-stock/internal/domain/repository"
)

// ReplenishmentUseCase genera el informe de reposición: artículos cuyo
// stock total (disponible + reservado) cayó a su umbral de reorden, con la
// cantidad sugerida de pedido. supplierID vacío = todos los proveedores.
type ReplenishmentUseCase struct {
	repo      repository.StockRepository
	generator ReportGenerator
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(repo repository.StockRepository, generator ReportGenerator) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{repo: repo, generator: generator}
}

// List devuelve las sugerencias de reposición, mayor déficit primero
// (orden que ya entrega el repositorio).
func (uc *ReplenishmentUseCase) List(ctx context.Context, supplierID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	records, err := uc.repo.ListNeedingReorder(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(records))
	for i, r := range records {
		level := 0
		if r.ReorderLevel != nil {
			level = *r.ReorderLevel
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ItemID:            r.ItemID,
			SupplierID:        r.SupplierID,
			AvailableQty:      r.Available,
			ReservedQty:       r.Reserved,
			TotalStock:        r.TotalStock(),
			ReorderLevel:      level,
			SuggestedOrderQty: r.SuggestedOrderQty(),
			Location:          r.Location,
			Priority:          i + 1,
		})
	}
	return suggestions, nil
}

// ExportPDF genera el informe de reposición en PDF.
func (uc *ReplenishmentUseCase) ExportPDF(ctx context.Context, supplierID string) ([]byte, error) {
	records, err := uc.repo.ListNeedingReorder(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateReplenishmentPDF(ctx, records)
}
