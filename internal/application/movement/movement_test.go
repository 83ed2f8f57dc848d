package movement_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/application/movement"
	"github.com/jhoicas/farmacia-console/internal/application/query"
	"github.com/jhoicas/farmacia-console/internal/application/session"
	"github.com/jhoicas/farmacia-console/internal/application/validation"
	"github.com/jhoicas/farmacia-console/internal/domain"
	"github.com/jhoicas/farmacia-console/internal/domain/entity"
)

// ─── fakes ──────────────────────────────────────────────────────────────────────

type fakeExits struct {
	calls []dto.RegisterExitRequest
	err   error
}

func (f *fakeExits) Register(_ context.Context, req dto.RegisterExitRequest) error {
	f.calls = append(f.calls, req)
	return f.err
}

type fakeTransfers struct {
	calls []dto.CreateTransferRequest
}

func (f *fakeTransfers) Create(_ context.Context, req dto.CreateTransferRequest) error {
	f.calls = append(f.calls, req)
	return nil
}

type fakeDispensations struct {
	preview   []entity.PreviewBatch
	registers []dto.RegisterDispensationRequest
	err       error
}

func (f *fakeDispensations) Preview(context.Context, string, int) ([]entity.PreviewBatch, error) {
	return f.preview, nil
}

func (f *fakeDispensations) Register(_ context.Context, req dto.RegisterDispensationRequest) error {
	f.registers = append(f.registers, req)
	return f.err
}

type fakeEntries struct {
	calls int
}

func (f *fakeEntries) Register(context.Context, dto.EntryForm) error {
	f.calls++
	return nil
}

type recordingCache struct {
	invalidated []query.Entity
}

func (r *recordingCache) Invalidate(entities ...query.Entity) {
	r.invalidated = append(r.invalidated, entities...)
}

var exitDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

// formulario con dos lotes de un mismo medicamento: L1 (20 disponibles) y L2 (10).
func exitForm(exitType entity.ExitType, l1, l2 int) dto.ExitForm {
	return dto.ExitForm{
		StockID:  "stock-1",
		ExitType: exitType,
		Date:     exitDate,
		Medicines: []dto.ExitMedicineForm{{
			MedicineStockID: "ms-1",
			Batches: []dto.ExitBatchForm{
				{BatchStockID: "L1", Quantity: l1, TotalCurrent: 20},
				{BatchStockID: "L2", Quantity: l2, TotalCurrent: 10},
			},
		}},
	}
}

func newValidator() *validation.Validator {
	v := validation.New()
	movement.RegisterRules(v)
	return v
}

// ─── FlattenBatches ─────────────────────────────────────────────────────────────

func TestFlattenBatches_ConservaOrdenYCadaParUnaVez(t *testing.T) {
	meds := []dto.ExitMedicineForm{
		{MedicineStockID: "a", Batches: []dto.ExitBatchForm{{BatchStockID: "a1", Quantity: 1}, {BatchStockID: "a2", Quantity: 2}}},
		{MedicineStockID: "b", Batches: []dto.ExitBatchForm{{BatchStockID: "b1", Quantity: 3}}},
	}
	assert.Equal(t, []dto.BatchQuantity{
		{BatchStockID: "a1", Quantity: 1},
		{BatchStockID: "a2", Quantity: 2},
		{BatchStockID: "b1", Quantity: 3},
	}, movement.FlattenBatches(meds))
	assert.Empty(t, movement.FlattenBatches(nil))
}

// ─── NewExitRequest ─────────────────────────────────────────────────────────────

func TestNewExitRequest_VariantePorTipo(t *testing.T) {
	v := newValidator()

	f := exitForm(entity.ExitTypeMovementType, 5, 10)
	f.MovementTypeID = "mt-1"
	req, err := movement.NewExitRequest(v, f)
	require.NoError(t, err)
	assert.IsType(t, movement.MovementTypeExit{}, req)

	f = exitForm(entity.ExitTypeDonation, 5, 10)
	f.DestinationInstitutionID = "inst-2"
	req, err = movement.NewExitRequest(v, f)
	require.NoError(t, err)
	assert.IsType(t, movement.DonationExit{}, req)

	f = exitForm(entity.ExitTypeTransfer, 5, 10)
	f.StockDestinationID = "stock-2"
	req, err = movement.NewExitRequest(v, f)
	require.NoError(t, err)
	tr, ok := req.(movement.TransferExit)
	require.True(t, ok)
	assert.Equal(t, "stock-2", tr.StockDestinationID)
}

func TestNewExitRequest_CampoDependienteObligatorio(t *testing.T) {
	v := newValidator()
	cases := map[entity.ExitType]string{
		entity.ExitTypeMovementType: "movementTypeId",
		entity.ExitTypeDonation:     "destinationInstitutionId",
		entity.ExitTypeTransfer:     "stockDestinationId",
	}
	for exitType, field := range cases {
		_, err := movement.NewExitRequest(v, exitForm(exitType, 5, 10))
		verrs, ok := validation.AsErrors(err)
		require.True(t, ok, string(exitType))
		assert.True(t, verrs.Has(field), "%s debe exigir %s", exitType, field)
	}
}

func TestNewExitRequest_TrasladoAlMismoStock(t *testing.T) {
	f := exitForm(entity.ExitTypeTransfer, 5, 10)
	f.StockDestinationID = f.StockID
	_, err := movement.NewExitRequest(newValidator(), f)
	verrs, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.True(t, verrs.Has("stockDestinationId"))
}

func TestNewExitRequest_TipoDispensacionNoEsSalidaManual(t *testing.T) {
	_, err := movement.NewExitRequest(newValidator(), exitForm(entity.ExitTypeDispensation, 5, 10))
	verrs, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.True(t, verrs.Has("exitType"))
}

func TestNewExitRequest_CantidadFueraDeRango(t *testing.T) {
	v := newValidator()
	for name, q := range map[string][2]int{"cero": {0, 10}, "supera L2": {5, 11}} {
		f := exitForm(entity.ExitTypeMovementType, q[0], q[1])
		f.MovementTypeID = "mt-1"
		_, err := movement.NewExitRequest(v, f)
		assert.Error(t, err, name)
	}
}

// ─── ExitUseCase ────────────────────────────────────────────────────────────────

func TestExitSubmit_PayloadConLotesElegidos(t *testing.T) {
	exits, transfers, cache := &fakeExits{}, &fakeTransfers{}, &recordingCache{}
	uc := movement.NewExitUseCase(newValidator(), exits, transfers, cache, zerolog.Nop())

	f := exitForm(entity.ExitTypeMovementType, 20, 10)
	f.MovementTypeID = "mt-1"
	require.NoError(t, uc.Submit(context.Background(), f))

	require.Len(t, exits.calls, 1)
	assert.Equal(t, dto.RegisterExitRequest{
		StockID:        "stock-1",
		ExitType:       entity.ExitTypeMovementType,
		ExitDate:       exitDate,
		MovementTypeID: "mt-1",
		Batches: []dto.BatchQuantity{
			{BatchStockID: "L1", Quantity: 20},
			{BatchStockID: "L2", Quantity: 10},
		},
	}, exits.calls[0])
	assert.Empty(t, transfers.calls)
	assert.Contains(t, cache.invalidated, query.EntityExits)
}

func TestExitSubmit_TrasladoVaAlEndpointDeTraslados(t *testing.T) {
	exits, transfers, cache := &fakeExits{}, &fakeTransfers{}, &recordingCache{}
	uc := movement.NewExitUseCase(newValidator(), exits, transfers, cache, zerolog.Nop())

	f := exitForm(entity.ExitTypeTransfer, 1, 1)
	f.StockDestinationID = "stock-2"
	require.NoError(t, uc.Submit(context.Background(), f))

	assert.Empty(t, exits.calls)
	require.Len(t, transfers.calls, 1)
	assert.Equal(t, "stock-1", transfers.calls[0].StockOriginID)
	assert.Equal(t, "stock-2", transfers.calls[0].StockDestinationID)
	assert.Len(t, transfers.calls[0].Batches, 2)
	assert.Contains(t, cache.invalidated, query.EntityTransfers)
}

func TestExitSubmit_ValidacionNoLlegaALaRed(t *testing.T) {
	exits, transfers, cache := &fakeExits{}, &fakeTransfers{}, &recordingCache{}
	uc := movement.NewExitUseCase(newValidator(), exits, transfers, cache, zerolog.Nop())

	f := exitForm(entity.ExitTypeMovementType, 5, 11)
	f.MovementTypeID = "mt-1"
	err := uc.Submit(context.Background(), f)

	verrs, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.True(t, verrs.Has("medicines[0].batches[1].quantity"))
	assert.Empty(t, exits.calls)
	assert.Empty(t, cache.invalidated)
}

func TestExitSubmit_ErrorDelBackendNoInvalida(t *testing.T) {
	exits := &fakeExits{err: errors.New("lote bloqueado")}
	cache := &recordingCache{}
	uc := movement.NewExitUseCase(newValidator(), exits, &fakeTransfers{}, cache, zerolog.Nop())

	f := exitForm(entity.ExitTypeDonation, 1, 1)
	f.DestinationInstitutionID = "inst-2"
	err := uc.Submit(context.Background(), f)

	assert.EqualError(t, err, "lote bloqueado")
	assert.Empty(t, cache.invalidated)
}

// ─── DispensationUseCase ────────────────────────────────────────────────────────

// previewBatches medicamento A, 30 pedidos: L1 aporta 20 y L2 aporta 10.
func previewBatches() []entity.PreviewBatch {
	return []entity.PreviewBatch{
		{BatchStockID: "L1", Code: "L1", Quantity: entity.BatchQuantity{TotalCurrent: 20, ToDispensation: 20}},
		{BatchStockID: "L2", Code: "L2", Quantity: entity.BatchQuantity{TotalCurrent: 40, ToDispensation: 10}},
	}
}

func header() dto.DispensationHeaderForm {
	return dto.DispensationHeaderForm{StockID: "stock-1", UserID: "user-1", Date: exitDate}
}

func TestDispensation_AddMedicineGuardaLaVistaPreviaSinCambios(t *testing.T) {
	api := &fakeDispensations{preview: previewBatches()}
	draft := &session.Draft{}
	uc := movement.NewDispensationUseCase(validation.New(), api, draft, &recordingCache{}, zerolog.Nop())

	item, err := uc.AddMedicine(context.Background(), dto.AddDispensationMedicineForm{MedicineStockID: "ms-1", QuantityRequired: 30})
	require.NoError(t, err)
	assert.Equal(t, previewBatches(), item.Batches)
	assert.Equal(t, previewBatches(), uc.Draft().Items[0].Batches)
}

func TestDispensation_SubmitEnviaToDispensation(t *testing.T) {
	api := &fakeDispensations{preview: previewBatches()}
	draft := &session.Draft{}
	cache := &recordingCache{}
	uc := movement.NewDispensationUseCase(validation.New(), api, draft, cache, zerolog.Nop())

	_, err := uc.AddMedicine(context.Background(), dto.AddDispensationMedicineForm{MedicineStockID: "ms-1", QuantityRequired: 30})
	require.NoError(t, err)
	require.NoError(t, uc.Submit(context.Background(), header()))

	require.Len(t, api.registers, 1)
	assert.Equal(t, dto.RegisterDispensationRequest{
		StockID:          "stock-1",
		UserID:           "user-1",
		DispensationDate: exitDate,
		Batches: []dto.BatchQuantity{
			{BatchStockID: "L1", Quantity: 20},
			{BatchStockID: "L2", Quantity: 10},
		},
	}, api.registers[0])
	assert.Empty(t, draft.Snapshot().Items)
	assert.Contains(t, cache.invalidated, query.EntityDispensations)
	assert.Contains(t, cache.invalidated, query.EntityInventory)
}

func TestDispensation_FalloConservaElBorrador(t *testing.T) {
	api := &fakeDispensations{preview: previewBatches(), err: errors.New("estoque insuficiente")}
	draft := &session.Draft{}
	cache := &recordingCache{}
	uc := movement.NewDispensationUseCase(validation.New(), api, draft, cache, zerolog.Nop())

	_, err := uc.AddMedicine(context.Background(), dto.AddDispensationMedicineForm{MedicineStockID: "ms-1", QuantityRequired: 30})
	require.NoError(t, err)
	assert.Error(t, uc.Submit(context.Background(), header()))

	assert.Len(t, draft.Snapshot().Items, 1)
	assert.Equal(t, "user-1", draft.Snapshot().Header.UserID)
	assert.Empty(t, cache.invalidated)
}

func TestDispensation_BorradorVacio(t *testing.T) {
	api := &fakeDispensations{}
	uc := movement.NewDispensationUseCase(validation.New(), api, &session.Draft{}, &recordingCache{}, zerolog.Nop())

	assert.ErrorIs(t, uc.Submit(context.Background(), header()), domain.ErrEmptyDraft)
	assert.Empty(t, api.registers)
}

func TestDispensation_RemoveMedicine(t *testing.T) {
	api := &fakeDispensations{preview: previewBatches()}
	uc := movement.NewDispensationUseCase(validation.New(), api, &session.Draft{}, &recordingCache{}, zerolog.Nop())

	_, err := uc.AddMedicine(context.Background(), dto.AddDispensationMedicineForm{MedicineStockID: "ms-1", QuantityRequired: 1})
	require.NoError(t, err)
	require.NoError(t, uc.RemoveMedicine("ms-1"))
	assert.ErrorIs(t, uc.RemoveMedicine("ms-1"), domain.ErrNotFound)
}

func TestDispensation_CantidadRequeridaInvalida(t *testing.T) {
	uc := movement.NewDispensationUseCase(validation.New(), &fakeDispensations{}, &session.Draft{}, &recordingCache{}, zerolog.Nop())
	_, err := uc.AddMedicine(context.Background(), dto.AddDispensationMedicineForm{MedicineStockID: "ms-1"})
	_, ok := validation.AsErrors(err)
	assert.True(t, ok)
}

// ─── EntryUseCase ───────────────────────────────────────────────────────────────

func TestEntryRegister_ResumenConCostos(t *testing.T) {
	api, cache := &fakeEntries{}, &recordingCache{}
	uc := movement.NewEntryUseCase(validation.New(), api, cache, zerolog.Nop())
	cost := decimal.RequireFromString("2.50")

	summary, err := uc.Register(context.Background(), dto.EntryForm{
		StockID:        "stock-1",
		MovementTypeID: "mt-in",
		EntryDate:      exitDate,
		Medicines: []dto.EntryMedicineForm{{
			MedicineVariantID: "mv-1",
			Batches: []dto.EntryBatchForm{
				{Code: "L9", ExpirationDate: exitDate.AddDate(1, 0, 0), ManufacturerID: "m-1", Quantity: 4, UnitCost: &cost},
				{Code: "L10", ExpirationDate: exitDate.AddDate(1, 0, 0), ManufacturerID: "m-1", Quantity: 6},
			},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, api.calls)
	assert.Equal(t, 2, summary.Batches)
	assert.Equal(t, 10, summary.Units)
	require.NotNil(t, summary.TotalCost)
	assert.Equal(t, "10", summary.TotalCost.String())
	assert.Contains(t, cache.invalidated, query.EntityEntries)
}

func TestEntryRegister_SinLotes(t *testing.T) {
	api := &fakeEntries{}
	uc := movement.NewEntryUseCase(validation.New(), api, &recordingCache{}, zerolog.Nop())

	_, err := uc.Register(context.Background(), dto.EntryForm{StockID: "s", MovementTypeID: "mt", EntryDate: exitDate})
	verrs, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.True(t, verrs.Has("medicines"))
	assert.Equal(t, 0, api.calls)
}
