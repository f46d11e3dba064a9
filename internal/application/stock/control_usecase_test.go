package stock_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/marketplace-stock/internal/application/stock"
	"github.com/tu-usuario/marketplace-stock/internal/domain"
	"github.com/tu-usuario/marketplace-stock/internal/domain/entity"
	"github.com/tu-usuario/marketplace-stock/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSupplier = "supplier-1"
	testItem     = "item-1"
)

// fixture levanta store + use case y siembra un registro con las cantidades dadas.
func fixture(t *testing.T, available, reserved int, reorderLevel *int) (*memory.Store, *stock.ControlUseCase) {
	t.Helper()
	store := memory.NewStore()
	repo := memory.NewStockRepository(store)

	r := entity.NewStockRecord(testSupplier, testItem)
	r.Available = available
	r.Reserved = reserved
	r.ReorderLevel = reorderLevel
	r.RefreshStatus()
	require.NoError(t, repo.Create(context.Background(), r))

	return store, stock.NewControlUseCase(memory.NewTxRunner(store))
}

func getRecord(t *testing.T, store *memory.Store, itemID string) *entity.StockRecord {
	t.Helper()
	r, err := memory.NewStockRepository(store).GetByItemID(context.Background(), itemID)
	require.NoError(t, err)
	require.NotNil(t, r)
	return r
}

func intPtr(v int) *int { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Reserve
// ──────────────────────────────────────────────────────────────────────────────

func TestReserve_PersisteElMovimiento(t *testing.T) {
	store, uc := fixture(t, 30, 0, nil)

	err := uc.Reserve(context.Background(), testItem, 10)

	require.NoError(t, err)
	r := getRecord(t, store, testItem)
	assert.Equal(t, 20, r.Available)
	assert.Equal(t, 10, r.Reserved)
}

func TestReserve_EntradaInvalida(t *testing.T) {
	_, uc := fixture(t, 30, 0, nil)

	assert.ErrorIs(t, uc.Reserve(context.Background(), "", 10), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.Reserve(context.Background(), testItem, 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.Reserve(context.Background(), testItem, -5), domain.ErrInvalidInput)
}

func TestReserve_ArticuloInexistente(t *testing.T) {
	_, uc := fixture(t, 30, 0, nil)

	err := uc.Reserve(context.Background(), "no-existe", 10)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReserve_StockInsuficienteNoPersiste(t *testing.T) {
	// Escenario: reserve(50) con available=30 → falla y el registro queda intacto.
	store, uc := fixture(t, 30, 0, nil)

	err := uc.Reserve(context.Background(), testItem, 50)

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "30", "el mensaje debe reportar el disponible")
	assert.Contains(t, err.Error(), "50", "el mensaje debe reportar lo solicitado")
	r := getRecord(t, store, testItem)
	assert.Equal(t, 30, r.Available)
	assert.Equal(t, 0, r.Reserved)
}

func TestReserve_OutOfStockRechazado(t *testing.T) {
	_, uc := fixture(t, 0, 0, nil)

	err := uc.Reserve(context.Background(), testItem, 1)

	require.ErrorIs(t, err, domain.ErrProductNotAvailable)
	assert.Contains(t, err.Error(), string(entity.StatusOutOfStock), "debe reportar el estado actual")
}

func TestReserve_DescontinuadoRechazadoAunqueHayaStock(t *testing.T) {
	store, uc := fixture(t, 50, 0, nil)
	repo := memory.NewStockRepository(store)
	r := getRecord(t, store, testItem)
	r.Discontinue()
	require.NoError(t, repo.Save(context.Background(), r))

	err := uc.Reserve(context.Background(), testItem, 1)

	require.ErrorIs(t, err, domain.ErrProductNotAvailable)
	assert.Equal(t, 50, getRecord(t, store, testItem).Available, "sin mutación")
}

// ──────────────────────────────────────────────────────────────────────────────
// Release / Deduct / Restock
// ──────────────────────────────────────────────────────────────────────────────

func TestRelease_DevuelveReserva(t *testing.T) {
	store, uc := fixture(t, 10, 15, nil)

	require.NoError(t, uc.Release(context.Background(), testItem, 15))

	r := getRecord(t, store, testItem)
	assert.Equal(t, 25, r.Available)
	assert.Equal(t, 0, r.Reserved)
}

func TestRelease_FalloDeDominioSeTraducce(t *testing.T) {
	store, uc := fixture(t, 10, 5, nil)

	err := uc.Release(context.Background(), testItem, 8)

	require.ErrorIs(t, err, domain.ErrReleaseFailed)
	r := getRecord(t, store, testItem)
	assert.Equal(t, 10, r.Available)
	assert.Equal(t, 5, r.Reserved)
}

func TestDeduct_ConsumeReservado(t *testing.T) {
	store, uc := fixture(t, 10, 25, nil)

	require.NoError(t, uc.Deduct(context.Background(), testItem, 20))

	r := getRecord(t, store, testItem)
	assert.Equal(t, 10, r.Available)
	assert.Equal(t, 5, r.Reserved)
}

func TestDeduct_ReservadoInsuficiente(t *testing.T) {
	store, uc := fixture(t, 10, 25, nil)

	err := uc.Deduct(context.Background(), testItem, 40)

	require.ErrorIs(t, err, domain.ErrInsufficientReserved)
	assert.Contains(t, err.Error(), "25")
	assert.Contains(t, err.Error(), "40")
	r := getRecord(t, store, testItem)
	assert.Equal(t, 25, r.Reserved, "sin mutación parcial")
}

func TestRestock_DevuelveRegistroActualizado(t *testing.T) {
	_, uc := fixture(t, 0, 0, intPtr(30))

	r, err := uc.Restock(context.Background(), testItem, 100)

	require.NoError(t, err)
	assert.Equal(t, 100, r.Available)
	assert.Equal(t, entity.StatusAvailable, r.Status)
	assert.NotNil(t, r.LastRestocked)
}

func TestRestock_NoReactivaDescontinuado(t *testing.T) {
	store, uc := fixture(t, 0, 0, nil)
	repo := memory.NewStockRepository(store)
	r := getRecord(t, store, testItem)
	r.Discontinue()
	require.NoError(t, repo.Save(context.Background(), r))

	updated, err := uc.Restock(context.Background(), testItem, 50)

	require.NoError(t, err)
	assert.Equal(t, 50, updated.Available)
	assert.Equal(t, entity.StatusDiscontinued, updated.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjust (ajuste manual)
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_SobrescribeCampos(t *testing.T) {
	store, uc := fixture(t, 20, 10, nil)
	loc := "bodega-norte-A3"

	r, err := uc.Adjust(context.Background(), stock.AdjustInput{
		ItemID:       testItem,
		Available:    80,
		ReorderLevel: intPtr(25),
		ReorderQty:   intPtr(50),
		Location:     &loc,
	})

	require.NoError(t, err)
	assert.Equal(t, 80, r.Available)
	assert.Equal(t, 10, r.Reserved, "el ajuste no toca lo reservado")
	assert.Equal(t, 25, *r.ReorderLevel)
	assert.Equal(t, 50, *r.ReorderQty)
	assert.Equal(t, loc, r.Location)
	assert.Equal(t, entity.StatusAvailable, r.Status)

	persisted := getRecord(t, store, testItem)
	assert.Equal(t, 80, persisted.Available)
}

func TestAdjust_DisponibleMenorQueReservadoRechazado(t *testing.T) {
	// Escenario: available=20, reserved=10, propuesto=5 → rechazado.
	store, uc := fixture(t, 20, 10, nil)

	_, err := uc.Adjust(context.Background(), stock.AdjustInput{ItemID: testItem, Available: 5})

	require.ErrorIs(t, err, domain.ErrAvailableLessThanReserved)
	r := getRecord(t, store, testItem)
	assert.Equal(t, 20, r.Available)
}

func TestAdjust_CamposNilNoSeTocan(t *testing.T) {
	store, uc := fixture(t, 20, 0, intPtr(15))

	_, err := uc.Adjust(context.Background(), stock.AdjustInput{ItemID: testItem, Available: 40})

	require.NoError(t, err)
	r := getRecord(t, store, testItem)
	require.NotNil(t, r.ReorderLevel)
	assert.Equal(t, 15, *r.ReorderLevel)
}

func TestAdjust_EntradaInvalida(t *testing.T) {
	_, uc := fixture(t, 20, 0, nil)

	_, err := uc.Adjust(context.Background(), stock.AdjustInput{ItemID: testItem, Available: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Adjust(context.Background(), stock.AdjustInput{ItemID: testItem, Available: 5, ReorderLevel: intPtr(-2)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Discontinue / Reactivate
// ──────────────────────────────────────────────────────────────────────────────

func TestDiscontinueYReactivate(t *testing.T) {
	store, uc := fixture(t, 50, 0, nil)
	ctx := context.Background()

	require.NoError(t, uc.Discontinue(ctx, testItem))
	assert.Equal(t, entity.StatusDiscontinued, getRecord(t, store, testItem).Status)

	require.NoError(t, uc.Reactivate(ctx, testItem))
	assert.Equal(t, entity.StatusAvailable, getRecord(t, store, testItem).Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedad de concurrencia: N reservas de 1 unidad contra k < N disponibles
// → exactamente k éxitos, N−k fallos, disponible final 0.
// ──────────────────────────────────────────────────────────────────────────────

func TestReserve_ConcurrenciaSinSobreventa(t *testing.T) {
	const (
		n = 50 // reservas concurrentes
		k = 30 // unidades disponibles
	)
	store, uc := fixture(t, k, 0, nil)

	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- uc.Reserve(context.Background(), testItem, 1)
		}()
	}
	wg.Wait()
	close(results)

	var ok, failed int
	for err := range results {
		if err == nil {
			ok++
			continue
		}
		failed++
		// Al agotarse el disponible el registro pasa a OUT_OF_STOCK, así que
		// los rechazos llegan como stock insuficiente o producto no disponible.
		rechazoEsperado := errors.Is(err, domain.ErrInsufficientStock) ||
			errors.Is(err, domain.ErrProductNotAvailable)
		assert.True(t, rechazoEsperado, "error inesperado: %v", err)
	}

	assert.Equal(t, k, ok, "deben triunfar exactamente k reservas")
	assert.Equal(t, n-k, failed)

	r := getRecord(t, store, testItem)
	assert.Equal(t, 0, r.Available)
	assert.Equal(t, k, r.Reserved)
	assert.Equal(t, entity.StatusOutOfStock, r.Status)
}

// Claves distintas no se serializan entre sí: reservas paralelas sobre dos
// artículos terminan ambas con su propio resultado correcto.
func TestReserve_ArticulosIndependientesEnParalelo(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewStockRepository(store)
	ctx := context.Background()
	for _, item := range []string{"item-a", "item-b"} {
		r := entity.NewStockRecord(testSupplier, item)
		r.Available = 10
		r.RefreshStatus()
		require.NoError(t, repo.Create(ctx, r))
	}
	uc := stock.NewControlUseCase(memory.NewTxRunner(store))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		for _, item := range []string{"item-a", "item-b"} {
			wg.Add(1)
			go func(item string) {
				defer wg.Done()
				_ = uc.Reserve(ctx, item, 1)
			}(item)
		}
	}
	wg.Wait()

	for _, item := range []string{"item-a", "item-b"} {
		r, err := repo.GetByItemID(ctx, item)
		require.NoError(t, err)
		assert.Equal(t, 0, r.Available, item)
		assert.Equal(t, 10, r.Reserved, item)
	}
}
