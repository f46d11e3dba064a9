package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/marketplace-stock/internal/domain"
	"github.com/tu-usuario/marketplace-stock/internal/domain/entity"
	"github.com/tu-usuario/marketplace-stock/internal/domain/repository"
)

// ControlUseCase concentra las mutaciones del libro de stock: reservar,
// liberar, descontar, reponer, ajuste manual y las transiciones
// administrativas. Cada operación corre como cargar → mutar → guardar
// dentro del TxRunner, serializada por artículo para que dos pedidos
// concurrentes no puedan sobrevender las mismas unidades.
type ControlUseCase struct {
	txRunner TxRunner
}

// NewControlUseCase construye el caso de uso.
func NewControlUseCase(txRunner TxRunner) *ControlUseCase {
	return &ControlUseCase{txRunner: txRunner}
}

// AdjustInput entrada del ajuste manual (sobrescritura administrativa).
// Los punteros nil significan "no tocar ese campo".
type AdjustInput struct {
	ItemID       string
	Available    int
	ReorderLevel *int
	ReorderQty   *int
	Location     *string
}

// Reserve compromete quantity unidades de un artículo a un pedido aceptado.
// Falla con ErrNotFound, ErrProductNotAvailable o ErrInsufficientStock.
func (uc *ControlUseCase) Reserve(ctx context.Context, itemID string, quantity int) error {
	if itemID == "" || quantity <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, itemID, func(repo repository.StockRepository) error {
		record, err := uc.loadForUpdate(ctx, repo, itemID)
		if err != nil {
			return err
		}
		if !record.IsAvailableForOrder() {
			return fmt.Errorf("estado %s: %w", record.Status, domain.ErrProductNotAvailable)
		}
		if !record.Reserve(quantity) {
			return fmt.Errorf("disponible %d, solicitado %d: %w",
				record.Available, quantity, domain.ErrInsufficientStock)
		}
		return repo.Save(ctx, record)
	})
}

// Release devuelve quantity unidades reservadas al disponible
// (pedido cancelado antes de despachar).
func (uc *ControlUseCase) Release(ctx context.Context, itemID string, quantity int) error {
	if itemID == "" || quantity <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, itemID, func(repo repository.StockRepository) error {
		record, err := uc.loadForUpdate(ctx, repo, itemID)
		if err != nil {
			return err
		}
		if err := record.Release(quantity); err != nil {
			return fmt.Errorf("%v: %w", err, domain.ErrReleaseFailed)
		}
		return repo.Save(ctx, record)
	})
}

// Deduct consume quantity unidades reservadas (pedido despachado).
func (uc *ControlUseCase) Deduct(ctx context.Context, itemID string, quantity int) error {
	if itemID == "" || quantity <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, itemID, func(repo repository.StockRepository) error {
		record, err := uc.loadForUpdate(ctx, repo, itemID)
		if err != nil {
			return err
		}
		if !record.Deduct(quantity) {
			return fmt.Errorf("reservado %d, solicitado %d: %w",
				record.Reserved, quantity, domain.ErrInsufficientReserved)
		}
		return repo.Save(ctx, record)
	})
}

// Restock suma quantity unidades al disponible (llegada de mercancía) y
// devuelve el registro actualizado. No reactiva artículos descontinuados.
func (uc *ControlUseCase) Restock(ctx context.Context, itemID string, quantity int) (*entity.StockRecord, error) {
	if itemID == "" || quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.StockRecord
	err := uc.txRunner.Run(ctx, itemID, func(repo repository.StockRepository) error {
		record, err := uc.loadForUpdate(ctx, repo, itemID)
		if err != nil {
			return err
		}
		if err := record.Restock(quantity); err != nil {
			return fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
		}
		if err := repo.Save(ctx, record); err != nil {
			return err
		}
		updated = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Adjust sobrescritura administrativa: fija disponible, umbrales y bodega.
// Regla crítica: el disponible propuesto no puede quedar por debajo de lo
// ya reservado; el administrador debe liberar reservas primero.
func (uc *ControlUseCase) Adjust(ctx context.Context, input AdjustInput) (*entity.StockRecord, error) {
	if input.ItemID == "" || input.Available < 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.ReorderLevel != nil && *input.ReorderLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.ReorderQty != nil && *input.ReorderQty < 0 {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.StockRecord
	err := uc.txRunner.Run(ctx, input.ItemID, func(repo repository.StockRepository) error {
		record, err := uc.loadForUpdate(ctx, repo, input.ItemID)
		if err != nil {
			return err
		}
		if input.Available < record.Reserved {
			return fmt.Errorf("propuesto %d, reservado %d: %w",
				input.Available, record.Reserved, domain.ErrAvailableLessThanReserved)
		}
		record.Available = input.Available
		if input.ReorderLevel != nil {
			record.ReorderLevel = input.ReorderLevel
		}
		if input.ReorderQty != nil {
			record.ReorderQty = input.ReorderQty
		}
		if input.Location != nil {
			record.Location = *input.Location
		}
		record.RefreshStatus()
		record.LastUpdated = time.Now().UTC()
		if err := repo.Save(ctx, record); err != nil {
			return err
		}
		updated = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Discontinue marca el artículo como descontinuado (pegajoso).
func (uc *ControlUseCase) Discontinue(ctx context.Context, itemID string) error {
	if itemID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, itemID, func(repo repository.StockRepository) error {
		record, err := uc.loadForUpdate(ctx, repo, itemID)
		if err != nil {
			return err
		}
		record.Discontinue()
		return repo.Save(ctx, record)
	})
}

// Reactivate saca el artículo de DISCONTINUED; el estado vuelve a derivarse
// de las cantidades. Reponer stock NO reactiva: esta es la acción explícita.
func (uc *ControlUseCase) Reactivate(ctx context.Context, itemID string) error {
	if itemID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, itemID, func(repo repository.StockRepository) error {
		record, err := uc.loadForUpdate(ctx, repo, itemID)
		if err != nil {
			return err
		}
		record.Reactivate()
		return repo.Save(ctx, record)
	})
}

// loadForUpdate carga el registro con bloqueo de fila; ErrNotFound si no existe.
func (uc *ControlUseCase) loadForUpdate(ctx context.Context, repo repository.StockRepository, itemID string) (*entity.StockRecord, error) {
	record, err := repo.GetByItemIDForUpdate(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("artículo %s: %w", itemID, domain.ErrNotFound)
	}
	return record, nil
}
