// Package dashboard arma el tablero de la institución seleccionada: métricas de
// inventario y movimientos más los listados de stock bajo y próximos a vencer.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/application/query"
	"github.com/jhoicas/farmacia-console/internal/domain"
	"github.com/jhoicas/farmacia-console/internal/domain/entity"
)

const alertListSize = 5 // filas de cada widget de alertas

// MetricsAPI métricas agregadas del backend.
type MetricsAPI interface {
	Inventory(ctx context.Context, institutionID string) (*entity.InventoryMetrics, error)
	Movements(ctx context.Context, institutionID string) (*entity.MovementMetrics, error)
}

// InventoryAPI listado de inventario con filtros.
type InventoryAPI interface {
	List(ctx context.Context, params dto.ListParams) (*entity.Page[entity.MedicineStock], error)
}

// UseCase resumen del tablero.
type UseCase struct {
	metrics   MetricsAPI
	inventory InventoryAPI
	cache     *query.Cache
	log       zerolog.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(metrics MetricsAPI, inventory InventoryAPI, cache *query.Cache, log zerolog.Logger) *UseCase {
	return &UseCase{metrics: metrics, inventory: inventory, cache: cache, log: log, now: time.Now}
}

// Summary devuelve el tablero de institutionID, cacheado por institución.
//
// Cuatro llamadas en paralelo:
//  1. métricas de inventario
//  2. métricas de movimientos
//  3. inventario con stock bajo
//  4. inventario próximo a vencer
func (uc *UseCase) Summary(ctx context.Context, institutionID string) (*dto.DashboardSummary, error) {
	if institutionID == "" {
		return nil, domain.ErrNoInstitution
	}
	key := query.NewScopedKey(query.EntityDashboard, map[string]string{"institutionId": institutionID})
	return query.Fetch(ctx, uc.cache, key, func(ctx context.Context) (*dto.DashboardSummary, error) {
		return uc.load(ctx, institutionID)
	})
}

func (uc *UseCase) load(ctx context.Context, institutionID string) (*dto.DashboardSummary, error) {
	type inventoryResult struct {
		m   *entity.InventoryMetrics
		err error
	}
	type movementResult struct {
		m   *entity.MovementMetrics
		err error
	}
	type listResult struct {
		page *entity.Page[entity.MedicineStock]
		err  error
	}

	invCh := make(chan inventoryResult, 1)
	movCh := make(chan movementResult, 1)
	lowCh := make(chan listResult, 1)
	expCh := make(chan listResult, 1)

	base := dto.NewListParams(1, map[string]string{"institutionId": institutionID})

	go func() {
		m, err := uc.metrics.Inventory(ctx, institutionID)
		invCh <- inventoryResult{m, err}
	}()
	go func() {
		m, err := uc.metrics.Movements(ctx, institutionID)
		movCh <- movementResult{m, err}
	}()
	go func() {
		p, err := uc.inventory.List(ctx, base.With("isLowStock", "true"))
		lowCh <- listResult{p, err}
	}()
	go func() {
		p, err := uc.inventory.List(ctx, base.With("nearExpiration", "true"))
		expCh <- listResult{p, err}
	}()

	inv := <-invCh
	mov := <-movCh
	low := <-lowCh
	exp := <-expCh

	if inv.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de inventario: %w", inv.err)
	}
	if mov.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de movimientos: %w", mov.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if exp.err != nil {
		return nil, fmt.Errorf("dashboard: próximos a vencer: %w", exp.err)
	}

	return &dto.DashboardSummary{
		InstitutionID: institutionID,
		Inventory:     *inv.m,
		Movements:     *mov.m,
		LowStock:      head(low.page.Items, alertListSize),
		NearExpiring:  head(exp.page.Items, alertListSize),
		PeriodLabel:   monthLabel(uc.now()),
	}, nil
}

func head(items []entity.MedicineStock, n int) []entity.MedicineStock {
	if len(items) > n {
		return items[:n]
	}
	if items == nil {
		return []entity.MedicineStock{}
	}
	return items
}

// monthLabel etiqueta legible del mes, ej: "Marzo 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
