package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/domain/entity"
)

// DispensationAPI dispensaciones a pacientes.
type DispensationAPI struct {
	c *Client
}

// List GET /dispensations.
func (a *DispensationAPI) List(ctx context.Context, params dto.ListParams) (*entity.Page[entity.Dispensation], error) {
	return list[entity.Dispensation](ctx, a.c, "/dispensations", "dispensations", params.Values())
}

// Preview GET /dispensations/preview: lotes que el backend propone para cubrir quantityRequired.
func (a *DispensationAPI) Preview(ctx context.Context, medicineStockID string, quantityRequired int) ([]entity.PreviewBatch, error) {
	q := url.Values{}
	q.Set("medicineStockId", medicineStockID)
	q.Set("quantityRequired", strconv.Itoa(quantityRequired))
	var out struct {
		BatchesStocks []entity.PreviewBatch `json:"batchesStocks"`
	}
	if err := a.c.Do(ctx, http.MethodGet, "/dispensations/preview", q, nil, &out); err != nil {
		return nil, err
	}
	return out.BatchesStocks, nil
}

// Register POST /dispensations.
func (a *DispensationAPI) Register(ctx context.Context, req dto.RegisterDispensationRequest) error {
	return a.c.Do(ctx, http.MethodPost, "/dispensations", nil, req, nil)
}

// ExitAPI salidas de stock.
type ExitAPI struct {
	c *Client
}

// List GET /medicines/exits.
func (a *ExitAPI) List(ctx context.Context, params dto.ListParams) (*entity.Page[entity.MedicineExit], error) {
	return list[entity.MedicineExit](ctx, a.c, "/medicines/exits", "medicine_exits", params.Values())
}

// Register POST /medicines/exits.
func (a *ExitAPI) Register(ctx context.Context, req dto.RegisterExitRequest) error {
	return a.c.Do(ctx, http.MethodPost, "/medicines/exits", nil, req, nil)
}

// EntryAPI entradas de stock.
type EntryAPI struct {
	c *Client
}

// List GET /medicines/entries.
func (a *EntryAPI) List(ctx context.Context, params dto.ListParams) (*entity.Page[entity.MedicineEntry], error) {
	return list[entity.MedicineEntry](ctx, a.c, "/medicines/entries", "medicine_entries", params.Values())
}

// Register POST /medicines/entries.
func (a *EntryAPI) Register(ctx context.Context, req dto.EntryForm) error {
	return a.c.Do(ctx, http.MethodPost, "/medicines/entries", nil, req, nil)
}

// TransferAPI traslados entre stocks.
type TransferAPI struct {
	c *Client
}

// List GET /transfers.
func (a *TransferAPI) List(ctx context.Context, params dto.ListParams) (*entity.Page[entity.Transfer], error) {
	return list[entity.Transfer](ctx, a.c, "/transfers", "transfers", params.Values())
}

// Create POST /transfers.
func (a *TransferAPI) Create(ctx context.Context, req dto.CreateTransferRequest) error {
	return a.c.Do(ctx, http.MethodPost, "/transfers", nil, req, nil)
}
