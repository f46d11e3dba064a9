// Package pdf genera el informe de reposición en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Informe de reposición + fecha de generación        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Artículo | Bodega | Disp | Resv | Total | Umbral |  │
//	│         Sugerido                                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total de artículos bajo umbral                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appstock "github.com/tu-usuario/marketplace-stock/internal/application/stock"
	"github.com/tu-usuario/marketplace-stock/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ appstock.ReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa stock.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateReplenishmentPDF genera el PDF del informe y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReplenishmentPDF(
	_ context.Context,
	records []*entity.StockRecord,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de reposición", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range records {
		m.AddRows(tableDetailRow(r))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(summaryRow(len(records)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y fecha de generación (der).
func headerRow() core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Informe de reposición de inventario", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 9, Top: 4, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(width int, label string, a align.Type) core.Col {
		return col.New(width).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 1.5,
		}))
	}
	r := row.New(7).Add(
		header(3, "Artículo", align.Left),
		header(2, "Bodega", align.Left),
		header(1, "Disp", align.Right),
		header(1, "Resv", align.Right),
		header(1, "Total", align.Right),
		header(2, "Umbral", align.Right),
		header(2, "Sugerido", align.Right),
	)
	r.WithStyle(&props.Cell{BackgroundColor: colorPrimary})
	return r
}

func tableDetailRow(rec *entity.StockRecord) core.Row {
	cell := func(width int, value string, a align.Type) core.Col {
		return col.New(width).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1}))
	}
	level := ""
	if rec.ReorderLevel != nil {
		level = strconv.Itoa(*rec.ReorderLevel)
	}
	return row.New(6).Add(
		cell(3, rec.ItemID, align.Left),
		cell(2, rec.Location, align.Left),
		cell(1, strconv.Itoa(rec.Available), align.Right),
		cell(1, strconv.Itoa(rec.Reserved), align.Right),
		cell(1, strconv.Itoa(rec.TotalStock()), align.Right),
		cell(2, level, align.Right),
		cell(2, strconv.Itoa(rec.SuggestedOrderQty()), align.Right),
	)
}

func summaryRow(total int) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("%d artículo(s) bajo su umbral de reposición", total), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 2, Color: colorPrimary,
			}),
		),
	)
}
