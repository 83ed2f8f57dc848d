package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/application/query"
	"github.com/jhoicas/farmacia-console/internal/domain"
	"github.com/jhoicas/farmacia-console/internal/domain/entity"
)

type fakeMetrics struct {
	calls atomic.Int32
	err   error
}

func (f *fakeMetrics) Inventory(_ context.Context, _ string) (*entity.InventoryMetrics, error) {
	f.calls.Add(1)
	m := &entity.InventoryMetrics{LowStock: 7}
	m.Quantity.Available = 120
	return m, f.err
}

func (f *fakeMetrics) Movements(context.Context, string) (*entity.MovementMetrics, error) {
	return &entity.MovementMetrics{Dispensations: 3}, nil
}

type fakeInventory struct{}

func (fakeInventory) List(_ context.Context, p dto.ListParams) (*entity.Page[entity.MedicineStock], error) {
	var items []entity.MedicineStock
	n := 2
	if p.Filters["isLowStock"] == "true" {
		n = 8
	}
	for i := 0; i < n; i++ {
		items = append(items, entity.MedicineStock{MedicineStockID: p.Filters["institutionId"]})
	}
	return &entity.Page[entity.MedicineStock]{Items: items}, nil
}

func newUseCase(m MetricsAPI) *UseCase {
	uc := NewUseCase(m, fakeInventory{}, query.New(query.Config{StaleTime: time.Minute, RetryBaseDelay: time.Millisecond}), zerolog.Nop())
	uc.now = func() time.Time { return time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC) }
	return uc
}

func TestSummary_CombinaLasCuatroConsultas(t *testing.T) {
	uc := newUseCase(&fakeMetrics{})

	s, err := uc.Summary(context.Background(), "inst-1")
	require.NoError(t, err)
	assert.Equal(t, 120, s.Inventory.Quantity.Available)
	assert.Equal(t, 3, s.Movements.Dispensations)
	assert.Len(t, s.LowStock, alertListSize)
	assert.Len(t, s.NearExpiring, 2)
	assert.Equal(t, "inst-1", s.LowStock[0].MedicineStockID)
	assert.Equal(t, "Marzo 2026", s.PeriodLabel)
}

func TestSummary_SinInstitucion(t *testing.T) {
	_, err := newUseCase(&fakeMetrics{}).Summary(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrNoInstitution)
}

func TestSummary_CacheadoPorInstitucion(t *testing.T) {
	m := &fakeMetrics{}
	uc := newUseCase(m)

	_, err := uc.Summary(context.Background(), "inst-1")
	require.NoError(t, err)
	_, err = uc.Summary(context.Background(), "inst-1")
	require.NoError(t, err)
	assert.Equal(t, int32(1), m.calls.Load())

	uc.cache.InvalidateScoped()
	_, err = uc.Summary(context.Background(), "inst-1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), m.calls.Load())
}

func TestSummary_ErrorDeMetricas(t *testing.T) {
	_, err := newUseCase(&fakeMetrics{err: errors.New("timeout")}).Summary(context.Background(), "inst-1")
	assert.ErrorContains(t, err, "métricas de inventario")
}
