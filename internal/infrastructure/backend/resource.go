package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/domain/entity"
)

// Resource CRUD REST genérico: T entidad, C alta, U edición.
type Resource[T any, C any, U any] struct {
	c          *Client
	path       string
	collection string
}

// NewResource path es la ruta base ("/stocks"); collection la clave del listado ("stocks").
func NewResource[T any, C any, U any](c *Client, path, collection string) *Resource[T, C, U] {
	return &Resource[T, C, U]{c: c, path: path, collection: collection}
}

// List GET {path}?page=&filtros.
func (r *Resource[T, C, U]) List(ctx context.Context, params dto.ListParams) (*entity.Page[T], error) {
	return list[T](ctx, r.c, r.path, r.collection, params.Values())
}

// Get GET {path}/{id}.
func (r *Resource[T, C, U]) Get(ctx context.Context, id string) (*T, error) {
	var out T
	if err := r.c.Do(ctx, http.MethodGet, r.path+"/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create POST {path}. Devuelve nil si el backend responde sin cuerpo.
func (r *Resource[T, C, U]) Create(ctx context.Context, in C) (*T, error) {
	return r.send(ctx, http.MethodPost, r.path, in)
}

// Update PUT {path}/{id}.
func (r *Resource[T, C, U]) Update(ctx context.Context, id string, in U) (*T, error) {
	return r.send(ctx, http.MethodPut, r.path+"/"+url.PathEscape(id), in)
}

// Delete DELETE {path}/{id}.
func (r *Resource[T, C, U]) Delete(ctx context.Context, id string) error {
	return r.c.Do(ctx, http.MethodDelete, r.path+"/"+url.PathEscape(id), nil, nil, nil)
}

func (r *Resource[T, C, U]) send(ctx context.Context, method, path string, in interface{}) (*T, error) {
	var out *T
	if err := r.c.Do(ctx, method, path, nil, in, &out); err != nil {
		return nil, err
	}
	return out, nil
}
