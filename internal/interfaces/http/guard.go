package http

import (
	"github.com/gofiber/fiber/v2"
)

// Rutas de redirección de los guards.
const (
	SignInPath       = "/sign-in"
	UnauthorizedPath = "/unauthorized"
)

// PrivateRoute deja pasar solo sesiones con token; si no, redirige a /sign-in.
// Es control de acceso de presentación: la autorización real la aplica el backend.
func PrivateRoute() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := GetSession(c)
		if sess == nil || sess.Store().Token() == "" {
			return c.Redirect(SignInPath, fiber.StatusFound)
		}
		return c.Next()
	}
}

// RequireRole resuelve "quién soy" y compara el rol con roles (vacío = cualquier rol).
//
// Comportamiento:
//   - "quién soy" falla → 302 a /sign-in.
//   - rol fuera de la lista → 302 a /unauthorized.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := GetSession(c)
		if sess == nil {
			return c.Redirect(SignInPath, fiber.StatusFound)
		}
		op, err := sess.WhoAmI(c.UserContext())
		if err != nil || op == nil {
			return c.Redirect(SignInPath, fiber.StatusFound)
		}
		c.Locals(LocalOperator, op)
		if len(roles) > 0 && !op.HasRole(roles...) {
			return c.Redirect(UnauthorizedPath, fiber.StatusFound)
		}
		return c.Next()
	}
}
