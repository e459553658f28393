// Package pdf implementa el informe de stock en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la app  │  Fecha de generación           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA CATÁLOGO: ID | EAN | Nombre | Est. | Caja | Stock |  │
//	│                  Mín. (filas bajo mínimo resaltadas)        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ACTIVIDAD RECIENTE: últimas entradas del ledger            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/tu-usuario/almacen-stock/internal/application/report"
	"github.com/tu-usuario/almacen-stock/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 200, Green: 30, Blue: 60} // filas bajo mínimo
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoStockReport implementa report.StockReportGenerator usando Maroto v2.
type MarotoStockReport struct{}

// NewMarotoStockReport construye el generador.
func NewMarotoStockReport() *MarotoStockReport { return &MarotoStockReport{} }

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoStockReport) GenerateStockReport(_ context.Context, data *report.StockReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Catálogo
	m.AddRows(sectionRow("CATÁLOGO"))
	m.AddRows(itemsHeaderRow())
	for _, r := range itemRows(data.Items) {
		m.AddRows(r)
	}

	// Actividad reciente del ledger
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(sectionRow(fmt.Sprintf("ACTIVIDAD RECIENTE (máx. %d)", len(data.Recent))))
	for _, r := range ledgerRows(data.Recent) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) + fecha de generación (der).
func headerRow(data *report.StockReportData) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New("Informe de stock", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d artículos en catálogo", len(data.Items)), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+data.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}),
	))
}

// itemsHeaderRow: cabecera de la tabla del catálogo.
func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(7).Add(
		h("ID", 2, align.Left),
		h("EAN", 2, align.Left),
		h("Nombre", 4, align.Left),
		h("Est.", 1, align.Center),
		h("Caja", 1, align.Center),
		h("Stock", 1, align.Right),
		h("Mín.", 1, align.Right),
	)
}

// itemRows: una fila por artículo; bajo mínimo va en color de alerta.
func itemRows(items []*entity.Item) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		color := colorGray
		if it.BelowMinimum() {
			color = colorAlert
		}
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{
				Size: 8, Align: a, Top: 1, Color: color,
			}))
		}
		result = append(result, row.New(6).Add(
			cell(it.ID, 2, align.Left),
			cell(it.EAN, 2, align.Left),
			cell(it.Name, 4, align.Left),
			cell(it.Shelf, 1, align.Center),
			cell(it.Box, 1, align.Center),
			cell(strconv.Itoa(it.Amount), 1, align.Right),
			cell(strconv.Itoa(it.MinAmount), 1, align.Right),
		))
	}
	return result
}

// ledgerRows: actividad reciente en el formato del log en pantalla:
// "username: 3x Tornillo M4 taken from stock (now 7 available)".
func ledgerRows(entries []*entity.LedgerEntry) []core.Row {
	result := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		verb := "added to stock"
		if e.Mode == entity.ModeOut {
			verb = "taken from stock"
		}
		main := fmt.Sprintf("%s: %dx %s %s (now %d available)", e.Username, e.Change, e.ItemName, verb, e.NewCount)
		sub := fmt.Sprintf("%s  |  Item id: %s", e.CreatedAt.Format("02/01/2006 15:04:05"), e.ItemID)
		result = append(result, row.New(8).Add(
			col.New(8).Add(text.New(main, props.Text{Size: 8, Top: 1})),
			col.New(4).Add(text.New(sub, props.Text{Size: 7, Align: align.Right, Top: 2, Color: colorGray})),
		))
	}
	return result
}
