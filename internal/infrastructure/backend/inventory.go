package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/domain/entity"
)

// InventoryAPI inventario por stock y búsqueda de lotes.
type InventoryAPI struct {
	c *Client
}

// List GET /inventory (filtros: stockId, institutionId, medicine, isLowStock, nearExpiration).
func (a *InventoryAPI) List(ctx context.Context, params dto.ListParams) (*entity.Page[entity.MedicineStock], error) {
	return list[entity.MedicineStock](ctx, a.c, "/inventory", "inventory", params.Values())
}

// Details GET /inventory/{medicineStockId}.
func (a *InventoryAPI) Details(ctx context.Context, medicineStockID string) (*entity.MedicineStockDetails, error) {
	var out entity.MedicineStockDetails
	if err := a.c.Do(ctx, http.MethodGet, "/inventory/"+url.PathEscape(medicineStockID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchBatches GET /inventory/{medicineStockId}/batches?code=.
func (a *InventoryAPI) SearchBatches(ctx context.Context, medicineStockID, code string) ([]entity.BatchStock, error) {
	q := url.Values{}
	if code != "" {
		q.Set("code", code)
	}
	var out struct {
		BatchesStocks []entity.BatchStock `json:"batches_stocks"`
	}
	path := "/inventory/" + url.PathEscape(medicineStockID) + "/batches"
	if err := a.c.Do(ctx, http.MethodGet, path, q, nil, &out); err != nil {
		return nil, err
	}
	return out.BatchesStocks, nil
}
