package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-console/internal/application/catalog"
	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/application/query"
	"github.com/jhoicas/farmacia-console/internal/application/validation"
	"github.com/jhoicas/farmacia-console/internal/domain"
	"github.com/jhoicas/farmacia-console/internal/domain/entity"
)

type fakeStocks struct {
	listCalls  int
	getCalls   int
	lastParams dto.ListParams
	owner      string
	createErr  error
	created    []dto.StockRequest
}

func (f *fakeStocks) List(_ context.Context, p dto.ListParams) (*entity.Page[entity.Stock], error) {
	f.listCalls++
	f.lastParams = p
	return &entity.Page[entity.Stock]{Items: []entity.Stock{{ID: "s1"}}, Meta: entity.PageMeta{Page: p.Page, TotalCount: 1}}, nil
}

func (f *fakeStocks) Get(_ context.Context, id string) (*entity.Stock, error) {
	f.getCalls++
	return &entity.Stock{ID: id, InstitutionID: f.owner}, nil
}

func (f *fakeStocks) Create(_ context.Context, in dto.StockRequest) (*entity.Stock, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, in)
	return &entity.Stock{ID: "new", Name: in.Name}, nil
}

func (f *fakeStocks) Update(_ context.Context, id string, in dto.StockRequest) (*entity.Stock, error) {
	return &entity.Stock{ID: id, Name: in.Name}, nil
}

func (f *fakeStocks) Delete(context.Context, string) error { return nil }

func newCache() *query.Cache {
	return query.New(query.Config{StaleTime: time.Minute, RetryBaseDelay: time.Millisecond})
}

func TestResource_ListMismosFiltrosMismaConsulta(t *testing.T) {
	api := &fakeStocks{}
	r, err := catalog.NewResource[entity.Stock, dto.StockRequest, dto.StockRequest](query.EntityStocks, api, newCache(), validation.New())
	require.NoError(t, err)

	_, err = r.List(context.Background(), dto.NewListParams(1, map[string]string{"name": "x", "status": "true"}))
	require.NoError(t, err)
	_, err = r.List(context.Background(), dto.NewListParams(1, map[string]string{"status": "true", "name": "x"}))
	require.NoError(t, err)
	assert.Equal(t, 1, api.listCalls)

	_, err = r.List(context.Background(), dto.NewListParams(2, map[string]string{"status": "true", "name": "x"}))
	require.NoError(t, err)
	assert.Equal(t, 2, api.listCalls)
}

func TestResource_ScopedAgregaInstitucion(t *testing.T) {
	api := &fakeStocks{}
	cache := newCache()
	r, err := catalog.NewResource[entity.Stock, dto.StockRequest, dto.StockRequest](query.EntityStocks, api, cache, validation.New(), catalog.ScopedTo("inst-1"))
	require.NoError(t, err)

	_, err = r.List(context.Background(), dto.NewListParams(1, nil))
	require.NoError(t, err)
	assert.Equal(t, "inst-1", api.lastParams.Filters["institutionId"])

	cache.InvalidateScoped()
	_, err = r.List(context.Background(), dto.NewListParams(1, nil))
	require.NoError(t, err)
	assert.Equal(t, 2, api.listCalls)
}

func TestResource_ScopedGetDeOtraInstitucion(t *testing.T) {
	api := &fakeStocks{owner: "inst-2"}
	cache := newCache()
	r, err := catalog.NewResource[entity.Stock, dto.StockRequest, dto.StockRequest](query.EntityStocks, api, cache, validation.New(), catalog.ScopedTo("inst-1"))
	require.NoError(t, err)

	_, err = r.Get(context.Background(), "s9")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	api.owner = "inst-1"
	other, err := catalog.NewResource[entity.Stock, dto.StockRequest, dto.StockRequest](query.EntityStocks, api, cache, validation.New(), catalog.ScopedTo("inst-2"))
	require.NoError(t, err)
	_, err = other.Get(context.Background(), "s9")
	assert.ErrorIs(t, err, domain.ErrNotFound, "la clave incluye la institución")
	assert.Equal(t, 2, api.getCalls)

	got, err := r.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "inst-1", got.InstitutionID)
}

func TestResource_ScopedSinInstitucion(t *testing.T) {
	_, err := catalog.NewResource[entity.Stock, dto.StockRequest, dto.StockRequest](query.EntityStocks, &fakeStocks{}, newCache(), validation.New(), catalog.ScopedTo(""))
	assert.ErrorIs(t, err, domain.ErrNoInstitution)
}

func TestResource_CreateInvalidaElListado(t *testing.T) {
	api := &fakeStocks{}
	r, err := catalog.NewResource[entity.Stock, dto.StockRequest, dto.StockRequest](query.EntityStocks, api, newCache(), validation.New(), catalog.AlsoInvalidates(query.EntityInventory))
	require.NoError(t, err)

	_, err = r.List(context.Background(), dto.NewListParams(1, nil))
	require.NoError(t, err)
	_, err = r.Create(context.Background(), dto.StockRequest{Name: "Central", InstitutionID: "inst-1"})
	require.NoError(t, err)
	_, err = r.List(context.Background(), dto.NewListParams(1, nil))
	require.NoError(t, err)
	assert.Equal(t, 2, api.listCalls)
}

func TestResource_CreateInvalidoNoLlegaAlBackend(t *testing.T) {
	api := &fakeStocks{}
	r, err := catalog.NewResource[entity.Stock, dto.StockRequest, dto.StockRequest](query.EntityStocks, api, newCache(), validation.New())
	require.NoError(t, err)

	_, err = r.Create(context.Background(), dto.StockRequest{})
	verrs, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.True(t, verrs.Has("name"))
	assert.True(t, verrs.Has("institutionId"))
	assert.Empty(t, api.created)
}

func TestResource_CreateErrorDelBackendNoInvalida(t *testing.T) {
	api := &fakeStocks{createErr: errors.New("duplicado")}
	r, err := catalog.NewResource[entity.Stock, dto.StockRequest, dto.StockRequest](query.EntityStocks, api, newCache(), validation.New())
	require.NoError(t, err)

	_, err = r.List(context.Background(), dto.NewListParams(1, nil))
	require.NoError(t, err)
	_, err = r.Create(context.Background(), dto.StockRequest{Name: "a", InstitutionID: "i"})
	assert.EqualError(t, err, "duplicado")
	_, err = r.List(context.Background(), dto.NewListParams(1, nil))
	require.NoError(t, err)
	assert.Equal(t, 1, api.listCalls)
}
