package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/application/validation"
	"github.com/jhoicas/farmacia-console/internal/domain"
)

// RowsAPI filas crudas del backend.
type RowsAPI interface {
	Rows(ctx context.Context, kind string, f dto.ReportFilters) ([]dto.ReportRow, error)
}

// Document reporte listo para renderizar: celdas ya formateadas.
type Document struct {
	Definition
	Subtitle    string
	GeneratedAt time.Time
	Rows        [][]string
}

// Generator renderiza un Document a PDF.
type Generator interface {
	Render(ctx context.Context, doc Document) ([]byte, error)
}

// UseCase exporta reportes.
type UseCase struct {
	api     RowsAPI
	gen     Generator
	v       *validation.Validator
	printer *message.Printer
	log     zerolog.Logger
	now     func() time.Time
}

// NewUseCase construye el caso de uso; los números se formatean en pt-BR.
func NewUseCase(api RowsAPI, gen Generator, v *validation.Validator, log zerolog.Logger) *UseCase {
	return &UseCase{
		api:     api,
		gen:     gen,
		v:       v,
		printer: message.NewPrinter(language.BrazilianPortuguese),
		log:     log,
		now:     time.Now,
	}
}

// Export genera el PDF de kind. Devuelve los bytes y el nombre de archivo sugerido.
//
// Errores:
//   - domain.ErrUnknownReportKind si kind no existe.
//   - domain.ErrNoInstitution     si no hay institución seleccionada.
//   - *validation.Errors          si las fechas no son AAAA-MM-DD.
func (uc *UseCase) Export(ctx context.Context, kind string, f dto.ReportFilters) ([]byte, string, error) {
	def, ok := Lookup(kind)
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", domain.ErrUnknownReportKind, kind)
	}
	if f.InstitutionID == "" {
		return nil, "", domain.ErrNoInstitution
	}
	if err := uc.v.Validate(f); err != nil {
		return nil, "", err
	}

	rows, err := uc.api.Rows(ctx, kind, f)
	if err != nil {
		return nil, "", err
	}

	now := uc.now()
	doc := Document{
		Definition:  def,
		Subtitle:    subtitle(f),
		GeneratedAt: now,
		Rows:        make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		cells := make([]string, len(def.Columns))
		for i, c := range def.Columns {
			cells[i] = uc.format(c.Kind, r[c.Key])
		}
		doc.Rows = append(doc.Rows, cells)
	}

	pdf, err := uc.gen.Render(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("report: renderizar %s: %w", kind, err)
	}
	uc.log.Info().Str("kind", kind).Int("rows", len(doc.Rows)).Int("bytes", len(pdf)).Msg("reporte exportado")
	return pdf, fmt.Sprintf("%s-%s.pdf", kind, now.Format("20060102-1504")), nil
}

func subtitle(f dto.ReportFilters) string {
	parts := []string{}
	if f.StartDate != "" || f.EndDate != "" {
		parts = append(parts, fmt.Sprintf("Período: %s a %s", orDash(f.StartDate), orDash(f.EndDate)))
	}
	if f.StockID != "" {
		parts = append(parts, "Stock: "+f.StockID)
	}
	return strings.Join(parts, "   |   ")
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// format celda según el tipo de columna.
func (uc *UseCase) format(kind ColumnKind, v interface{}) string {
	if v == nil {
		return "—"
	}
	switch kind {
	case Number:
		if d, ok := toDecimal(v); ok {
			return uc.printer.Sprintf("%d", d.IntPart())
		}
	case Money:
		if d, ok := toDecimal(v); ok {
			return uc.printer.Sprintf("R$ %.2f", d.InexactFloat64())
		}
	case Date:
		if s, ok := v.(string); ok {
			for _, layout := range []string{time.RFC3339, "2006-01-02"} {
				if t, err := time.Parse(layout, s); err == nil {
					return t.Format("02/01/2006")
				}
			}
		}
	}
	return fmt.Sprint(v)
}

func toDecimal(v interface{}) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n), true
	case string:
		d, err := decimal.NewFromString(n)
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}
