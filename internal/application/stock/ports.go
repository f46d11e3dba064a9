package stock

import (
	"context"

	"github.com/tu-usuario/marketplace-stock/internal/domain/entity"
	"github.com/tu-usuario/marketplace-stock/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una unidad de trabajo atómica serializada
// por artículo: ninguna otra mutación sobre el mismo itemID corre en
// paralelo, y si fn falla no se persiste nada.
//
// El adaptador PostgreSQL abre una transacción y serializa vía fila
// bloqueada (SELECT FOR UPDATE); itemID le resulta redundante pero permite
// al adaptador en memoria tomar el mutex por clave. Artículos distintos
// avanzan en paralelo.
type TxRunner interface {
	Run(ctx context.Context, itemID string, fn func(repo repository.StockRepository) error) error
}

// ReportGenerator genera la representación PDF del informe de reposición.
type ReportGenerator interface {
	GenerateReplenishmentPDF(ctx context.Context, records []*entity.StockRecord) ([]byte, error)
}
