package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/application/validation"
	"github.com/jhoicas/farmacia-console/internal/domain"
)

type fakeRows struct {
	rows []dto.ReportRow
	err  error
	kind string
}

func (f *fakeRows) Rows(_ context.Context, kind string, _ dto.ReportFilters) ([]dto.ReportRow, error) {
	f.kind = kind
	return f.rows, f.err
}

type captureGenerator struct {
	doc Document
}

func (g *captureGenerator) Render(_ context.Context, doc Document) ([]byte, error) {
	g.doc = doc
	return []byte("%PDF-fake"), nil
}

func newUseCase(api RowsAPI, gen Generator) *UseCase {
	uc := NewUseCase(api, gen, validation.New(), zerolog.Nop())
	uc.now = func() time.Time { return time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC) }
	return uc
}

func TestExport_FormateaCeldasEnPtBR(t *testing.T) {
	api := &fakeRows{rows: []dto.ReportRow{{
		"entryDate":    "2026-03-01T10:00:00Z",
		"movementType": "Compra",
		"medicine":     "Dipirona 500mg",
		"batch":        "L1",
		"quantity":     float64(1500),
		"totalCost":    "1234.5",
	}}}
	gen := &captureGenerator{}

	pdf, filename, err := newUseCase(api, gen).Export(context.Background(), "entries", dto.ReportFilters{InstitutionID: "inst-1", StartDate: "2026-03-01"})
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Equal(t, "entries-20260402-0930.pdf", filename)
	assert.Equal(t, "entries", api.kind)
	require.Len(t, gen.doc.Rows, 1)
	assert.Equal(t, []string{"01/03/2026", "Compra", "Dipirona 500mg", "L1", "1.500", "R$ 1.234,50"}, gen.doc.Rows[0])
	assert.Contains(t, gen.doc.Subtitle, "2026-03-01")
}

func TestExport_ValorAusente(t *testing.T) {
	gen := &captureGenerator{}
	_, _, err := newUseCase(&fakeRows{rows: []dto.ReportRow{{"medicine": "X"}}}, gen).
		Export(context.Background(), "inventory", dto.ReportFilters{InstitutionID: "i"})
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "—", "—", "—", "—"}, gen.doc.Rows[0])
}

func TestExport_TipoDesconocido(t *testing.T) {
	_, _, err := newUseCase(&fakeRows{}, &captureGenerator{}).Export(context.Background(), "sales", dto.ReportFilters{InstitutionID: "i"})
	assert.ErrorIs(t, err, domain.ErrUnknownReportKind)
}

func TestExport_SinInstitucion(t *testing.T) {
	_, _, err := newUseCase(&fakeRows{}, &captureGenerator{}).Export(context.Background(), "exits", dto.ReportFilters{})
	assert.ErrorIs(t, err, domain.ErrNoInstitution)
}

func TestExport_FechaInvalida(t *testing.T) {
	_, _, err := newUseCase(&fakeRows{}, &captureGenerator{}).Export(context.Background(), "exits", dto.ReportFilters{InstitutionID: "i", EndDate: "31/12/2026"})
	_, ok := validation.AsErrors(err)
	assert.True(t, ok)
}

func TestExport_ErrorDelBackend(t *testing.T) {
	_, _, err := newUseCase(&fakeRows{err: errors.New("caído")}, &captureGenerator{}).Export(context.Background(), "exits", dto.ReportFilters{InstitutionID: "i"})
	assert.EqualError(t, err, "caído")
}

func TestKinds(t *testing.T) {
	assert.Equal(t, []string{"dispensations", "entries", "exits", "inventory"}, Kinds())
	for _, k := range Kinds() {
		def, _ := Lookup(k)
		total := 0
		for _, c := range def.Columns {
			total += c.Width
		}
		assert.Equal(t, 12, total, k)
	}
}
