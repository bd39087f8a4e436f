// Package pdf implementa la generación del reporte de varianza en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del venue  │  Ventana de análisis           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Esperado | Real | Varianza | Valor  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Faltante / Sobrante / Merma (unid. y valor)        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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
	"github.com/shopspring/decimal"

	"github.com/pon-gitweb/tallyup-sub002/internal/application/dto"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa reports.VariancePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateVarianceReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateVarianceReport(
	_ context.Context,
	venue *entity.Venue,
	report *dto.VarianceReportDTO,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de varianza de inventario", true).
		WithAuthor(venue.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(venue, report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(report.Rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report.Totals))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del venue (izq) y ventana de análisis (der).
func headerRow(venue *entity.Venue, report *dto.VarianceReportDTO) core.Row {
	ventana := fmt.Sprintf("%s → %s",
		report.WindowFrom.Format("02/01/2006"),
		report.WindowTo.Format("02/01/2006"))
	alcance := "Todo el local"
	if report.DepartmentID != "" {
		alcance = "Departamento: " + report.DepartmentID
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(venue.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(alcance, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE VARIANZA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(ventana, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("%d productos", len(report.Rows)), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de varianzas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Esperado", 2, align.Right),
		h("Real", 1, align.Right),
		h("Varianza", 1, align.Right),
		h("Valor", 2, align.Right),
	)
}

// tableDetailRows: una fila por SKU; varianzas negativas en rojo.
func tableDetailRows(rows []dto.VarianceRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		varColor := colorGray
		if r.Variance.IsNegative() {
			varColor = colorRed
		}
		value := "—"
		if r.Value != nil {
			value = "$" + r.Value.StringFixed(2)
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				r.SKU,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				r.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				r.Expected.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				r.OnHand.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				r.Variance.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: varColor},
			)),
			col.New(2).Add(text.New(
				value,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: varColor},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(t dto.VarianceTotals) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(d decimal.Decimal) core.Component {
		c := colorGray
		if d.IsNegative() {
			c = colorRed
		}
		return text.New("$"+d.StringFixed(2), props.Text{
			Size: 9, Align: align.Right, Right: 1, Color: c,
		})
	}

	return row.New(30).Add(
		col.New(4), // espacio izquierdo
		col.New(4).Add(
			label("Valor faltante:"),
			label("Valor sobrante:"),
			label("Merma (unidades):"),
			label("Merma (valor):"),
		),
		col.New(4).Add(
			value(t.ShortageValue),
			value(t.ExcessValue),
			text.New(t.ShrinkageUnits.StringFixed(2), props.Text{
				Size: 9, Align: align.Right, Right: 1, Color: colorGray,
			}),
			value(t.ShrinkageValue),
		),
	)
}
