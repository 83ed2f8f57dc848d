package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/domain/entity"
)

// MetricsAPI métricas del tablero.
type MetricsAPI struct {
	c *Client
}

func institutionQuery(institutionID string) url.Values {
	q := url.Values{}
	if institutionID != "" {
		q.Set("institutionId", institutionID)
	}
	return q
}

// Inventory GET /metrics/inventory.
func (a *MetricsAPI) Inventory(ctx context.Context, institutionID string) (*entity.InventoryMetrics, error) {
	var out entity.InventoryMetrics
	if err := a.c.Do(ctx, http.MethodGet, "/metrics/inventory", institutionQuery(institutionID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Movements GET /metrics/movements.
func (a *MetricsAPI) Movements(ctx context.Context, institutionID string) (*entity.MovementMetrics, error) {
	var out entity.MovementMetrics
	if err := a.c.Do(ctx, http.MethodGet, "/metrics/movements", institutionQuery(institutionID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReportAPI filas de reportes.
type ReportAPI struct {
	c *Client
}

// Rows GET /reports/{kind}.
func (a *ReportAPI) Rows(ctx context.Context, kind string, f dto.ReportFilters) ([]dto.ReportRow, error) {
	q := institutionQuery(f.InstitutionID)
	for k, v := range map[string]string{"stockId": f.StockID, "startDate": f.StartDate, "endDate": f.EndDate} {
		if v != "" {
			q.Set(k, v)
		}
	}
	var out struct {
		Report []dto.ReportRow `json:"report"`
	}
	if err := a.c.Do(ctx, http.MethodGet, "/reports/"+url.PathEscape(kind), q, nil, &out); err != nil {
		return nil, err
	}
	return out.Report, nil
}
