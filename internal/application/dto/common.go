package dto

import (
	"net/url"
	"sort"
	"strconv"
)

// ListParams página y filtros de un listado; se traduce a query string del backend.
type ListParams struct {
	Page    int               `json:"page"`
	Filters map[string]string `json:"filters,omitempty"`
}

// NewListParams aplica la página por defecto (1) y descarta filtros vacíos.
func NewListParams(page int, filters map[string]string) ListParams {
	if page < 1 {
		page = 1
	}
	clean := make(map[string]string, len(filters))
	for k, v := range filters {
		if v != "" {
			clean[k] = v
		}
	}
	if len(clean) == 0 {
		clean = nil
	}
	return ListParams{Page: page, Filters: clean}
}

// With devuelve una copia con el filtro k=v añadido.
func (p ListParams) With(k, v string) ListParams {
	out := ListParams{Page: p.Page, Filters: make(map[string]string, len(p.Filters)+1)}
	for fk, fv := range p.Filters {
		out.Filters[fk] = fv
	}
	if v != "" {
		out.Filters[k] = v
	}
	return out
}

// Values query string con page y filtros en orden estable.
func (p ListParams) Values() url.Values {
	q := url.Values{}
	page := p.Page
	if page < 1 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page))
	keys := make([]string, 0, len(p.Filters))
	for k := range p.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		q.Set(k, p.Filters[k])
	}
	return q
}

// PageResponse vista paginada que devuelve la consola.
type PageResponse[T any] struct {
	Items      []T               `json:"items"`
	Page       int               `json:"page"`
	TotalCount int               `json:"totalCount"`
	Filters    map[string]string `json:"filters,omitempty"`
}

// ErrorResponse cuerpo de error HTTP. Message es el texto del toast;
// Form devuelve lo enviado para que la consola conserve el formulario.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Form    interface{}       `json:"form,omitempty"`
}
