package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/application/query"
	"github.com/jhoicas/farmacia-console/internal/application/report"
	"github.com/jhoicas/farmacia-console/internal/application/validation"
	"github.com/jhoicas/farmacia-console/internal/domain"
	"github.com/jhoicas/farmacia-console/internal/domain/entity"
	"github.com/jhoicas/farmacia-console/internal/infrastructure/backend"
)

// Handler dependencias compartidas por los handlers de la consola.
type Handler struct {
	backend *backend.Client
	v       *validation.Validator
	reports report.Generator
	metrics *Metrics
	log     zerolog.Logger
}

// api módulos del backend con el token de la sesión actual.
func (h *Handler) api(c *fiber.Ctx) *backend.API {
	return h.backend.For(GetSession(c).Store())
}

// listParams lee page y los filtros permitidos de la query string.
func listParams(c *fiber.Ctx, allowed ...string) dto.ListParams {
	filters := make(map[string]string, len(allowed))
	for _, k := range allowed {
		filters[k] = strings.TrimSpace(c.Query(k))
	}
	return dto.NewListParams(c.QueryInt("page", 1), filters)
}

// pageResponse adapta una página del backend a la vista de la consola.
func pageResponse[T any](p *entity.Page[T], params dto.ListParams) dto.PageResponse[T] {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	page := p.Meta.Page
	if page == 0 {
		page = params.Page
	}
	return dto.PageResponse[T]{Items: items, Page: page, TotalCount: p.Meta.TotalCount, Filters: params.Filters}
}

// scopedList listado ligado a la institución seleccionada, servido por el cache de la sesión.
func scopedList[T any](
	c *fiber.Ctx,
	e query.Entity,
	params dto.ListParams,
	fetch func(ctx context.Context, p dto.ListParams) (*entity.Page[T], error),
) error {
	sess := GetSession(c)
	institutionID := sess.InstitutionID()
	if institutionID == "" {
		return writeError(c, domain.ErrNoInstitution, nil)
	}
	params = params.With("institutionId", institutionID)
	page, err := query.Fetch(c.UserContext(), sess.Cache(), query.NewScopedKey(e, params), func(ctx context.Context) (*entity.Page[T], error) {
		return fetch(ctx, params)
	})
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(pageResponse(page, params))
}
