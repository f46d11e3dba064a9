package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/marketplace-stock/internal/application/stock"
	"github.com/tu-usuario/marketplace-stock/internal/domain/entity"
	"github.com/tu-usuario/marketplace-stock/internal/infrastructure/memory"
)

// fakeGenerator captura los registros que recibe y devuelve bytes fijos.
type fakeGenerator struct {
	received []*entity.StockRecord
}

func (f *fakeGenerator) GenerateReplenishmentPDF(_ context.Context, records []*entity.StockRecord) ([]byte, error) {
	f.received = records
	return []byte("%PDF-fake"), nil
}

// seedReplenishment siembra tres registros: dos bajo umbral y uno sano.
func seedReplenishment(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	repo := memory.NewStockRepository(store)
	ctx := context.Background()

	critical := entity.NewStockRecord("supplier-1", "item-critico")
	critical.Available = 1
	critical.ReorderLevel = intPtr(30) // déficit 29
	critical.RefreshStatus()
	require.NoError(t, repo.Create(ctx, critical))

	low := entity.NewStockRecord("supplier-2", "item-bajo")
	low.Available = 20
	low.ReorderLevel = intPtr(30) // déficit 10
	low.ReorderQty = intPtr(100)
	low.RefreshStatus()
	require.NoError(t, repo.Create(ctx, low))

	healthy := entity.NewStockRecord("supplier-1", "item-sano")
	healthy.Available = 500
	healthy.ReorderLevel = intPtr(30)
	healthy.RefreshStatus()
	require.NoError(t, repo.Create(ctx, healthy))

	return store
}

func TestList_SoloBajoUmbralMayorDeficitPrimero(t *testing.T) {
	store := seedReplenishment(t)
	uc := stock.NewReplenishmentUseCase(memory.NewStockRepository(store), &fakeGenerator{})

	list, err := uc.List(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "item-critico", list[0].ItemID)
	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, 29, list[0].SuggestedOrderQty, "sin lote fijo: déficit contra el umbral")
	assert.Equal(t, "item-bajo", list[1].ItemID)
	assert.Equal(t, 100, list[1].SuggestedOrderQty, "con lote fijo gana reorder_qty")
}

func TestList_FiltraPorProveedor(t *testing.T) {
	store := seedReplenishment(t)
	uc := stock.NewReplenishmentUseCase(memory.NewStockRepository(store), &fakeGenerator{})

	list, err := uc.List(context.Background(), "supplier-2")

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "item-bajo", list[0].ItemID)
}

func TestList_DescontinuadosExcluidos(t *testing.T) {
	store := seedReplenishment(t)
	repo := memory.NewStockRepository(store)
	ctx := context.Background()
	r, err := repo.GetByItemID(ctx, "item-critico")
	require.NoError(t, err)
	r.Discontinue()
	require.NoError(t, repo.Save(ctx, r))
	uc := stock.NewReplenishmentUseCase(repo, &fakeGenerator{})

	list, err := uc.List(ctx, "")

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "item-bajo", list[0].ItemID)
}

func TestExportPDF_DelegaEnElGenerador(t *testing.T) {
	store := seedReplenishment(t)
	gen := &fakeGenerator{}
	uc := stock.NewReplenishmentUseCase(memory.NewStockRepository(store), gen)

	pdfBytes, err := uc.ExportPDF(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdfBytes)
	assert.Len(t, gen.received, 2)
}
