package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/marketplace-stock/internal/application/stock"
	"github.com/tu-usuario/marketplace-stock/internal/domain"
	"github.com/tu-usuario/marketplace-stock/internal/domain/entity"
	"github.com/tu-usuario/marketplace-stock/internal/infrastructure/memory"
)

func TestProvision_CreaRegistroEnCero(t *testing.T) {
	repo := memory.NewStockRepository(memory.NewStore())
	uc := stock.NewProvisionUseCase(repo)

	record, err := uc.Provision(context.Background(), testSupplier, testItem)

	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, 0, record.Available)
	assert.Equal(t, 0, record.Reserved)
	assert.Equal(t, entity.StatusOutOfStock, record.Status)

	persisted, err := repo.GetByItemID(context.Background(), testItem)
	require.NoError(t, err)
	require.NotNil(t, persisted)
}

func TestProvision_DuplicadoRechazado(t *testing.T) {
	// Unicidad: exactamente un registro por artículo.
	repo := memory.NewStockRepository(memory.NewStore())
	uc := stock.NewProvisionUseCase(repo)
	ctx := context.Background()

	_, err := uc.Provision(ctx, testSupplier, testItem)
	require.NoError(t, err)

	_, err = uc.Provision(ctx, testSupplier, testItem)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProvision_EntradaInvalida(t *testing.T) {
	uc := stock.NewProvisionUseCase(memory.NewStockRepository(memory.NewStore()))

	_, err := uc.Provision(context.Background(), "", testItem)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Provision(context.Background(), testSupplier, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRemove_CascadaEliminaRegistro(t *testing.T) {
	repo := memory.NewStockRepository(memory.NewStore())
	uc := stock.NewProvisionUseCase(repo)
	ctx := context.Background()

	_, err := uc.Provision(ctx, testSupplier, testItem)
	require.NoError(t, err)

	require.NoError(t, uc.Remove(ctx, testItem))

	r, err := repo.GetByItemID(ctx, testItem)
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestRemove_NotFound(t *testing.T) {
	uc := stock.NewProvisionUseCase(memory.NewStockRepository(memory.NewStore()))

	err := uc.Remove(context.Background(), "no-existe")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
