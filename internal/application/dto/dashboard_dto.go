package dto

import "github.com/jhoicas/farmacia-console/internal/domain/entity"

// DashboardSummary vista de GET /dashboard para la institución seleccionada.
type DashboardSummary struct {
	InstitutionID string                  `json:"institutionId"`
	Inventory     entity.InventoryMetrics `json:"inventory"`
	Movements     entity.MovementMetrics  `json:"movements"`
	LowStock      []entity.MedicineStock  `json:"lowStock"`
	NearExpiring  []entity.MedicineStock  `json:"nearExpiring"`
	PeriodLabel   string                  `json:"periodLabel"`
}

// ReportFilters filtros comunes de los reportes.
type ReportFilters struct {
	InstitutionID string `json:"institutionId"`
	StockID       string `json:"stockId,omitempty"`
	StartDate     string `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate       string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ReportRow fila de reporte tal cual la devuelve el backend.
type ReportRow map[string]interface{}

// PanelResponse vista del panel inicial.
type PanelResponse struct {
	Operator      *entity.Operator     `json:"operator"`
	Institutions  []entity.Institution `json:"institutions"`
	InstitutionID string               `json:"institutionId"`
}
