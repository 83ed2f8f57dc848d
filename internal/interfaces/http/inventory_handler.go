package http

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-console/internal/application/dashboard"
	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/application/query"
	"github.com/jhoicas/farmacia-console/internal/application/report"
	"github.com/jhoicas/farmacia-console/internal/domain/entity"
)

// InventoryHandler inventario, tablero y exportación de reportes.
type InventoryHandler struct {
	*Handler
}

// ListInventory godoc
// @Summary      Inventario de la institución seleccionada
// @Tags         inventory
// @Produce      json
// @Param        page      query  int     false  "Página"
// @Param        stockId   query  string  false  "Stock"
// @Param        medicine  query  string  false  "Nombre del medicamento"
// @Success      200  {object}  dto.PageResponse[entity.MedicineStock]
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /inventory [get]
func (h *InventoryHandler) ListInventory(c *fiber.Ctx) error {
	api := h.api(c)
	params := listParams(c, "stockId", "medicine", "therapeuticClassId", "lowStock", "nearExpiration")
	return scopedList(c, query.EntityInventory, params, api.Inventory.List)
}

// Details godoc
// @Summary      Detalle de un medicamento en stock con sus lotes
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "Medicamento en stock"
// @Success      200  {object}  entity.MedicineStockDetails
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /inventory/{id} [get]
func (h *InventoryHandler) Details(c *fiber.Ctx) error {
	id := c.Params("id")
	api := h.api(c)
	key := query.NewScopedKey(query.EntityInventory, map[string]string{"id": id})
	details, err := query.Fetch(c.UserContext(), GetSession(c).Cache(), key, func(ctx context.Context) (*entity.MedicineStockDetails, error) {
		return api.Inventory.Details(ctx, id)
	})
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(details)
}

// Dashboard godoc
// @Summary      Tablero de la institución seleccionada
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardSummary
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /dashboard [get]
func (h *InventoryHandler) Dashboard(c *fiber.Ctx) error {
	sess := GetSession(c)
	api := h.api(c)
	uc := dashboard.NewUseCase(api.Metrics, api.Inventory, sess.Cache(), h.log)
	summary, err := uc.Summary(c.UserContext(), sess.InstitutionID())
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(summary)
}

// ExportReport godoc
// @Summary      Exportar reporte en PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        kind       path   string  true   "inventory, dispensations, exits o entries"
// @Param        stockId    query  string  false  "Stock"
// @Param        startDate  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        endDate    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /reports/{kind}/export [get]
func (h *InventoryHandler) ExportReport(c *fiber.Ctx) error {
	filters := dto.ReportFilters{
		InstitutionID: GetSession(c).InstitutionID(),
		StockID:       strings.TrimSpace(c.Query("stockId")),
		StartDate:     strings.TrimSpace(c.Query("startDate")),
		EndDate:       strings.TrimSpace(c.Query("endDate")),
	}
	uc := report.NewUseCase(h.api(c).Reports, h.reports, h.v, h.log)
	pdf, filename, err := uc.Export(c.UserContext(), c.Params("kind"), filters)
	if err != nil {
		return writeError(c, err, filters)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdf)
}

// ReportKinds tipos de reporte disponibles.
func (h *InventoryHandler) ReportKinds(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"kinds": report.Kinds()})
}
