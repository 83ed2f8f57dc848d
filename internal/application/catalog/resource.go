// Package catalog implementa el caso de uso genérico de las páginas de listado y
// administración (operadores, instituciones, stocks, catálogo de medicamentos, pacientes).
package catalog

import (
	"context"

	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/application/query"
	"github.com/jhoicas/farmacia-console/internal/application/validation"
	"github.com/jhoicas/farmacia-console/internal/domain"
	"github.com/jhoicas/farmacia-console/internal/domain/entity"
)

// Backend CRUD REST de una entidad.
type Backend[T any, C any, U any] interface {
	List(ctx context.Context, params dto.ListParams) (*entity.Page[T], error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, in C) (*T, error)
	Update(ctx context.Context, id string, in U) (*T, error)
	Delete(ctx context.Context, id string) error
}

// Resource listado cacheado y mutaciones con invalidación para una entidad.
type Resource[T any, C any, U any] struct {
	entity      query.Entity
	api         Backend[T, C, U]
	cache       *query.Cache
	v           *validation.Validator
	scope       string
	invalidates []query.Entity
}

// Option ajusta un Resource.
type Option func(*options)

type options struct {
	scope       string
	scoped      bool
	invalidates []query.Entity
}

// ScopedTo liga el listado a la institución: filtra por institutionId y la clave se
// invalida al cambiar de institución.
func ScopedTo(institutionID string) Option {
	return func(o *options) {
		o.scoped = true
		o.scope = institutionID
	}
}

// AlsoInvalidates entidades extra a invalidar tras una mutación.
func AlsoInvalidates(entities ...query.Entity) Option {
	return func(o *options) { o.invalidates = append(o.invalidates, entities...) }
}

// NewResource construye el caso de uso para la entidad e.
func NewResource[T any, C any, U any](e query.Entity, api Backend[T, C, U], cache *query.Cache, v *validation.Validator, opts ...Option) (*Resource[T, C, U], error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.scoped && o.scope == "" {
		return nil, domain.ErrNoInstitution
	}
	return &Resource[T, C, U]{
		entity:      e,
		api:         api,
		cache:       cache,
		v:           v,
		scope:       o.scope,
		invalidates: append([]query.Entity{e}, o.invalidates...),
	}, nil
}

func (r *Resource[T, C, U]) key(params interface{}) query.Key {
	if r.scope != "" {
		return query.NewScopedKey(r.entity, params)
	}
	return query.NewKey(r.entity, params)
}

// List página filtrada, servida desde el cache si está vigente.
func (r *Resource[T, C, U]) List(ctx context.Context, params dto.ListParams) (*entity.Page[T], error) {
	if r.scope != "" {
		params = params.With("institutionId", r.scope)
	}
	return query.Fetch(ctx, r.cache, r.key(params), func(ctx context.Context) (*entity.Page[T], error) {
		return r.api.List(ctx, params)
	})
}

// institutionScoped entidades que pertenecen a una institución.
type institutionScoped interface {
	InstitutionRef() string
}

// Get detalle por id. En un recurso ligado a la institución la clave incluye
// institutionId y una entidad de otra institución se responde como ErrNotFound.
func (r *Resource[T, C, U]) Get(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	params := map[string]string{"id": id}
	if r.scope != "" {
		params["institutionId"] = r.scope
	}
	out, err := query.Fetch(ctx, r.cache, r.key(params), func(ctx context.Context) (*T, error) {
		return r.api.Get(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if s, ok := any(out).(institutionScoped); ok && r.scope != "" && s.InstitutionRef() != r.scope {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

// Create valida y crea; las mutaciones no se reintentan.
func (r *Resource[T, C, U]) Create(ctx context.Context, in C) (*T, error) {
	if err := r.v.Validate(in); err != nil {
		return nil, err
	}
	out, err := r.api.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	r.cache.Invalidate(r.invalidates...)
	return out, nil
}

// Update valida y actualiza.
func (r *Resource[T, C, U]) Update(ctx context.Context, id string, in U) (*T, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := r.v.Validate(in); err != nil {
		return nil, err
	}
	out, err := r.api.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	r.cache.Invalidate(r.invalidates...)
	return out, nil
}

// Delete elimina por id.
func (r *Resource[T, C, U]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if err := r.api.Delete(ctx, id); err != nil {
		return err
	}
	r.cache.Invalidate(r.invalidates...)
	return nil
}
