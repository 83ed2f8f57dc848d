package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/application/movement"
	"github.com/jhoicas/farmacia-console/internal/application/query"
	"github.com/jhoicas/farmacia-console/internal/domain"
	"github.com/jhoicas/farmacia-console/internal/domain/entity"
)

// filtros de los listados de movimientos.
var movementFilters = []string{"stockId", "medicine", "startDate", "endDate"}

// MovementHandler entradas, salidas, traslados y dispensaciones.
type MovementHandler struct {
	*Handler
}

// ListEntries godoc
// @Summary      Entradas de medicamentos de la institución seleccionada
// @Tags         movement
// @Produce      json
// @Param        page       query  int     false  "Página"
// @Param        stockId    query  string  false  "Stock"
// @Param        startDate  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        endDate    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.PageResponse[entity.MedicineEntry]
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /movement/entries [get]
func (h *MovementHandler) ListEntries(c *fiber.Ctx) error {
	api := h.api(c)
	return scopedList(c, query.EntityEntries, listParams(c, movementFilters...), api.Entries.List)
}

// RegisterEntry godoc
// @Summary      Registrar entrada de lotes
// @Tags         movement
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EntryForm  true  "Entrada"
// @Success      201   {object}  movement.EntrySummary
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /movement/entries [post]
func (h *MovementHandler) RegisterEntry(c *fiber.Ctx) error {
	var form dto.EntryForm
	if err := c.BodyParser(&form); err != nil {
		return invalidBody(c)
	}
	sess := GetSession(c)
	uc := movement.NewEntryUseCase(h.v, h.api(c).Entries, sess.Cache(), h.log)
	summary, err := uc.Register(c.UserContext(), form)
	if err != nil {
		return writeError(c, err, form)
	}
	return c.Status(fiber.StatusCreated).JSON(summary)
}

// ListExits godoc
// @Summary      Salidas de medicamentos de la institución seleccionada
// @Tags         movement
// @Produce      json
// @Success      200  {object}  dto.PageResponse[entity.MedicineExit]
// @Router       /movement/exits [get]
func (h *MovementHandler) ListExits(c *fiber.Ctx) error {
	api := h.api(c)
	return scopedList(c, query.EntityExits, listParams(c, append(movementFilters, "exitType")...), api.Exits.List)
}

// ListTransfers traslados entre stocks de la institución seleccionada.
func (h *MovementHandler) ListTransfers(c *fiber.Ctx) error {
	api := h.api(c)
	return scopedList(c, query.EntityTransfers, listParams(c, movementFilters...), api.Transfers.List)
}

// RegisterExit godoc
// @Summary      Registrar salida (tipo de movimiento, donación o traslado)
// @Description  TRANSFER se envía como traslado; los otros tipos como salida.
// @Tags         movement
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExitForm  true  "Salida"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /movement/exits [post]
func (h *MovementHandler) RegisterExit(c *fiber.Ctx) error {
	var form dto.ExitForm
	if err := c.BodyParser(&form); err != nil {
		return invalidBody(c)
	}
	api := h.api(c)
	uc := movement.NewExitUseCase(h.v, api.Exits, api.Transfers, GetSession(c).Cache(), h.log)
	if err := uc.Submit(c.UserContext(), form); err != nil {
		return writeError(c, err, form)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"exitType": form.ExitType})
}

// SearchBatches godoc
// @Summary      Buscar lotes de un medicamento en stock por código
// @Tags         movement
// @Produce      json
// @Param        medicineStockId  query  string  true   "Medicamento en stock"
// @Param        code             query  string  false  "Código de lote"
// @Success      200  {array}   entity.BatchStock
// @Router       /movement/exits/batches [get]
func (h *MovementHandler) SearchBatches(c *fiber.Ctx) error {
	medicineStockID := strings.TrimSpace(c.Query("medicineStockId"))
	if medicineStockID == "" {
		return writeError(c, domain.ErrInvalidInput, nil)
	}
	code := strings.TrimSpace(c.Query("code"))
	api := h.api(c)
	key := query.NewKey(query.EntityBatches, map[string]string{"medicineStockId": medicineStockID, "code": code})
	batches, err := query.Fetch(c.UserContext(), GetSession(c).Cache(), key, func(ctx context.Context) ([]entity.BatchStock, error) {
		return api.Inventory.SearchBatches(ctx, medicineStockID, code)
	})
	if err != nil {
		return writeError(c, err, nil)
	}
	if batches == nil {
		batches = []entity.BatchStock{}
	}
	return c.JSON(batches)
}

// ListDispensations godoc
// @Summary      Dispensaciones de la institución seleccionada
// @Tags         dispensation
// @Produce      json
// @Success      200  {object}  dto.PageResponse[entity.Dispensation]
// @Router       /dispensation [get]
func (h *MovementHandler) ListDispensations(c *fiber.Ctx) error {
	api := h.api(c)
	return scopedList(c, query.EntityDispensations, listParams(c, append(movementFilters, "userId")...), api.Dispensations.List)
}

func (h *MovementHandler) dispensation(c *fiber.Ctx) *movement.DispensationUseCase {
	sess := GetSession(c)
	return movement.NewDispensationUseCase(h.v, h.api(c).Dispensations, sess.Draft(), sess.Cache(), h.log)
}

// DispensationDraft borrador actual de la dispensación.
func (h *MovementHandler) DispensationDraft(c *fiber.Ctx) error {
	return c.JSON(h.dispensation(c).Draft())
}

// AddDispensationMedicine godoc
// @Summary      Agregar medicamento a la dispensación
// @Description  Consulta la vista previa de lotes al backend y la guarda sin modificarla.
// @Tags         dispensation
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddDispensationMedicineForm  true  "Medicamento y cantidad"
// @Success      200   {object}  session.DraftSnapshot
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /dispensation/new/medicines [post]
func (h *MovementHandler) AddDispensationMedicine(c *fiber.Ctx) error {
	var form dto.AddDispensationMedicineForm
	if err := c.BodyParser(&form); err != nil {
		return invalidBody(c)
	}
	uc := h.dispensation(c)
	if _, err := uc.AddMedicine(c.UserContext(), form); err != nil {
		return writeError(c, err, form)
	}
	return c.JSON(uc.Draft())
}

// RemoveDispensationMedicine quita un medicamento del borrador.
func (h *MovementHandler) RemoveDispensationMedicine(c *fiber.Ctx) error {
	uc := h.dispensation(c)
	if err := uc.RemoveMedicine(c.Params("medicineStockId")); err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(uc.Draft())
}

// SubmitDispensation godoc
// @Summary      Registrar la dispensación del borrador
// @Tags         dispensation
// @Accept       json
// @Param        body  body  dto.DispensationHeaderForm  true  "Stock, paciente y fecha"
// @Success      201
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /dispensation/new [post]
func (h *MovementHandler) SubmitDispensation(c *fiber.Ctx) error {
	var header dto.DispensationHeaderForm
	if err := c.BodyParser(&header); err != nil {
		return invalidBody(c)
	}
	if err := h.dispensation(c).Submit(c.UserContext(), header); err != nil {
		return writeError(c, err, header)
	}
	return c.SendStatus(fiber.StatusCreated)
}
