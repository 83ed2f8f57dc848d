package entity

// PageMeta metadatos de paginación devueltos por el backend.
type PageMeta struct {
	Page       int `json:"page"`
	TotalCount int `json:"totalCount"`
}

// Page una página de resultados de cualquier listado.
type Page[T any] struct {
	Items []T      `json:"items"`
	Meta  PageMeta `json:"meta"`
}
