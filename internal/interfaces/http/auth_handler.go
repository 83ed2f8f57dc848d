package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-console/internal/application/catalog"
	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/application/query"
	"github.com/jhoicas/farmacia-console/internal/domain"
	"github.com/jhoicas/farmacia-console/internal/domain/entity"
)

// AuthHandler acceso, cierre de sesión y selección de institución.
type AuthHandler struct {
	*Handler
}

// SignInPage godoc
// @Summary      Página de acceso
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Success      302  "ya autenticado: redirige a /"
// @Router       /sign-in [get]
func (h *AuthHandler) SignInPage(c *fiber.Ctx) error {
	if GetSession(c).Authenticated(c.UserContext()) {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.JSON(fiber.Map{"page": "sign-in"})
}

// SignIn godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Param        body  body  dto.SignInRequest  true  "Credenciales"
// @Success      303   "redirige a /"
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /sign-in [post]
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var in dto.SignInRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	form := fiber.Map{"email": in.Email}
	if err := h.v.Validate(in); err != nil {
		return writeError(c, err, form)
	}
	sess := GetSession(c)
	token, err := h.api(c).Auth.SignIn(c.UserContext(), in)
	if err != nil {
		h.metrics.SignIn("failure")
		return writeError(c, err, form)
	}
	if err := sess.Store().Login(c.UserContext(), token); err != nil {
		h.metrics.SignIn("failure")
		return writeError(c, err, form)
	}
	h.metrics.SignIn("success")
	h.log.Info().Str("session_id", sess.ID).Msg("operador autenticado")
	return c.Redirect("/", fiber.StatusSeeOther)
}

// SignOut godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Success      303  "redirige a /sign-in"
// @Router       /sign-out [post]
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	if err := GetSession(c).Store().Logout(c.UserContext()); err != nil {
		h.log.Warn().Err(err).Msg("logout: borrar almacenamiento")
	}
	return c.Redirect(SignInPath, fiber.StatusSeeOther)
}

// SelectInstitution godoc
// @Summary      Seleccionar institución
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelectInstitutionRequest  true  "Institución (vacío = ninguna)"
// @Success      200   {object}  dto.SelectInstitutionRequest
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /institution [post]
func (h *AuthHandler) SelectInstitution(c *fiber.Ctx) error {
	var in dto.SelectInstitutionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.InstitutionID != "" && !GetOperator(c).CanAccessInstitution(in.InstitutionID) {
		return writeError(c, domain.ErrForbidden, in)
	}
	if err := GetSession(c).Store().SelectInstitution(c.UserContext(), in.InstitutionID); err != nil {
		return writeError(c, err, in)
	}
	return c.JSON(in)
}

// Panel godoc
// @Summary      Panel inicial: operador, instituciones e institución seleccionada
// @Tags         panel
// @Produce      json
// @Success      200  {object}  dto.PanelResponse
// @Router       /panel [get]
func (h *AuthHandler) Panel(c *fiber.Ctx) error {
	op := GetOperator(c)
	sess := GetSession(c)
	institutions := op.Institutions
	if op.HasRole(entity.RoleSuperAdmin) {
		res, err := catalog.NewResource[entity.Institution, dto.InstitutionRequest, dto.InstitutionRequest](
			query.EntityInstitutions, h.api(c).Institutions, sess.Cache(), h.v)
		if err != nil {
			return writeError(c, err, nil)
		}
		page, err := res.List(c.UserContext(), dto.NewListParams(1, nil))
		if err != nil {
			return writeError(c, err, nil)
		}
		institutions = page.Items
	}
	if institutions == nil {
		institutions = []entity.Institution{}
	}
	return c.JSON(dto.PanelResponse{
		Operator:      op,
		Institutions:  institutions,
		InstitutionID: sess.InstitutionID(),
	})
}

// Unauthorized página de acceso denegado.
func (h *AuthHandler) Unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tiene permiso para acceder a esta página"})
}
