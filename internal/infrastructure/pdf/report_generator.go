// Package pdf renderiza los reportes de la consola con Maroto v2.
//
// Layout de la página A4 horizontal:
//
//	┌───────────────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte           │  Generado el dd/mm/aaaa hh:mm  │
//	│  Filtros aplicados                                                     │
//	│  ───────────────────────────────────────────────────────────────────  │
//	│  TABLA: cabecera repetida en cada página + una fila por registro       │
//	│  ───────────────────────────────────────────────────────────────────  │
//	│  FOOTER: total de registros                                            │
//	└───────────────────────────────────────────────────────────────────────┘
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
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/farmacia-console/internal/application/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 105, Blue: 92}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 242, Green: 246, Blue: 245}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReportGenerator implementa report.Generator usando Maroto v2.
type ReportGenerator struct {
	author string
}

// NewReportGenerator construye el generador; author se guarda en los metadatos del PDF.
func NewReportGenerator(author string) *ReportGenerator {
	return &ReportGenerator{author: author}
}

// Render genera el PDF y devuelve sus bytes.
func (g *ReportGenerator) Render(ctx context.Context, doc report.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(doc.Columns))
	if len(doc.Rows) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin registros para los filtros seleccionados.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	for i, cells := range doc.Rows {
		m.AddRows(tableDetailRow(doc.Columns, cells, i%2 == 1))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total de registros: %d", len(doc.Rows)), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1,
		}),
	)))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y filtros (izq), fecha de generación (der).
func headerRow(doc report.Document) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(doc.Subtitle, "Sin filtros"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado el "+doc.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo de color.
func tableHeaderRow(columns []report.Column) core.Row {
	cols := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, col.New(c.Width).Add(text.New(c.Label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: alignFor(c.Kind),
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRow: una fila por registro, alternando fondo.
func tableDetailRow(columns []report.Column, cells []string, striped bool) core.Row {
	cols := make([]core.Col, 0, len(columns))
	for i, c := range columns {
		value := ""
		if i < len(cells) {
			value = cells[i]
		}
		cols = append(cols, col.New(c.Width).Add(text.New(value, props.Text{
			Size: 8, Align: alignFor(c.Kind), Top: 1, Left: 1, Right: 1,
		})))
	}
	r := row.New(7).Add(cols...)
	if striped {
		r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

// ── helpers ───────────────────────────────────────────────────────────────────

func alignFor(kind report.ColumnKind) align.Type {
	switch kind {
	case report.Number, report.Money:
		return align.Right
	case report.Date:
		return align.Center
	default:
		return align.Left
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
