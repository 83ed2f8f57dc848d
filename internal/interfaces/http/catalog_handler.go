package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-console/internal/application/catalog"
	"github.com/jhoicas/farmacia-console/internal/application/query"
	"github.com/jhoicas/farmacia-console/internal/infrastructure/backend"
)

// CatalogRoutes describe las rutas de administración de una entidad.
type CatalogRoutes[T any, C any, U any] struct {
	Entity  query.Entity
	Backend func(api *backend.API) catalog.Backend[T, C, U]
	Filters []string
	Scoped  bool          // lista solo lo de la institución seleccionada
	Write   fiber.Handler // guard de las mutaciones; nil = el del grupo
	Related []query.Entity
}

// CatalogHandler handlers CRUD genéricos sobre catalog.Resource.
type CatalogHandler[T any, C any, U any] struct {
	*Handler
	routes CatalogRoutes[T, C, U]
}

// RegisterCatalog monta GET path, GET path/:id, POST path, PUT path/:id y DELETE path/:id.
func RegisterCatalog[T any, C any, U any](r fiber.Router, path string, h *Handler, routes CatalogRoutes[T, C, U]) *CatalogHandler[T, C, U] {
	ch := &CatalogHandler[T, C, U]{Handler: h, routes: routes}
	write := routes.Write
	if write == nil {
		write = func(c *fiber.Ctx) error { return c.Next() }
	}
	r.Get(path, ch.List)
	r.Get(path+"/:id", ch.Get)
	r.Post(path, write, ch.Create)
	r.Put(path+"/:id", write, ch.Update)
	r.Delete(path+"/:id", write, ch.Delete)
	return ch
}

// NewForm página del formulario de alta vacío; no consulta al backend.
func NewForm[C any](page string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form C
		return c.JSON(fiber.Map{"page": page, "form": form})
	}
}

func (ch *CatalogHandler[T, C, U]) resource(c *fiber.Ctx) (*catalog.Resource[T, C, U], error) {
	sess := GetSession(c)
	var opts []catalog.Option
	if ch.routes.Scoped {
		opts = append(opts, catalog.ScopedTo(sess.InstitutionID()))
	}
	if len(ch.routes.Related) > 0 {
		opts = append(opts, catalog.AlsoInvalidates(ch.routes.Related...))
	}
	return catalog.NewResource[T, C, U](ch.routes.Entity, ch.routes.Backend(ch.api(c)), sess.Cache(), ch.v, opts...)
}

// List página filtrada por la query string.
func (ch *CatalogHandler[T, C, U]) List(c *fiber.Ctx) error {
	res, err := ch.resource(c)
	if err != nil {
		return writeError(c, err, nil)
	}
	params := listParams(c, ch.routes.Filters...)
	page, err := res.List(c.UserContext(), params)
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(pageResponse(page, params))
}

// Get detalle por id.
func (ch *CatalogHandler[T, C, U]) Get(c *fiber.Ctx) error {
	res, err := ch.resource(c)
	if err != nil {
		return writeError(c, err, nil)
	}
	out, err := res.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(out)
}

// Create valida el formulario y crea la entidad.
func (ch *CatalogHandler[T, C, U]) Create(c *fiber.Ctx) error {
	var in C
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := ch.resource(c)
	if err != nil {
		return writeError(c, err, in)
	}
	out, err := res.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, in)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update valida el formulario y actualiza la entidad.
func (ch *CatalogHandler[T, C, U]) Update(c *fiber.Ctx) error {
	var in U
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := ch.resource(c)
	if err != nil {
		return writeError(c, err, in)
	}
	out, err := res.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err, in)
	}
	return c.JSON(out)
}

// Delete elimina la entidad.
func (ch *CatalogHandler[T, C, U]) Delete(c *fiber.Ctx) error {
	res, err := ch.resource(c)
	if err != nil {
		return writeError(c, err, nil)
	}
	if err := res.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err, nil)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
