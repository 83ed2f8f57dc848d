package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-console/internal/application/report"
)

func TestRender_GeneraPDF(t *testing.T) {
	def, ok := report.Lookup("inventory")
	require.True(t, ok)

	doc := report.Document{
		Definition:  def,
		Subtitle:    "Stock: Central",
		GeneratedAt: time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC),
		Rows: [][]string{
			{"Dipirona", "500mg", "Central", "1.500", "0"},
			{"Amoxicilina", "250mg", "Central", "320", "12"},
		},
	}
	out, err := NewReportGenerator("farmacia-console").Render(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, len(out) > 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRender_SinFilas(t *testing.T) {
	def, _ := report.Lookup("exits")
	out, err := NewReportGenerator("").Render(context.Background(), report.Document{Definition: def, GeneratedAt: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRender_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewReportGenerator("").Render(ctx, report.Document{})
	assert.ErrorIs(t, err, context.Canceled)
}
