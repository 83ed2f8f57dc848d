package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/application/session"
	"github.com/jhoicas/farmacia-console/internal/domain"
	"github.com/jhoicas/farmacia-console/internal/domain/entity"
)

// Locals keys para la sesión y el operador en Fiber.
const (
	LocalSession  = "console_session"
	LocalOperator = "console_operator"
)

// CookieConfig cookie que identifica la sesión del navegador.
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// SessionMiddleware carga la sesión de la cookie; si no hay cookie válida crea una nueva.
func SessionMiddleware(mgr *session.Manager, cookie CookieConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(cookie.Name)
		sess, err := mgr.Get(c.UserContext(), id)
		if errors.Is(err, domain.ErrNoSession) || errors.Is(err, domain.ErrInvalidInput) {
			id = mgr.NewID()
			sess, err = mgr.Get(c.UserContext(), id)
			if err == nil {
				c.Cookie(&fiber.Cookie{
					Name:     cookie.Name,
					Value:    id,
					Path:     "/",
					Expires:  time.Now().Add(cookie.TTL),
					HTTPOnly: true,
					Secure:   cookie.Secure,
					SameSite: fiber.CookieSameSiteLaxMode,
				})
			}
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "SESSION_UNAVAILABLE", Message: "no se pudo abrir la sesión, intente más tarde"})
		}
		c.Locals(LocalSession, sess)
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto (después de SessionMiddleware).
func GetSession(c *fiber.Ctx) *session.Session {
	s, _ := c.Locals(LocalSession).(*session.Session)
	return s
}

// GetOperator devuelve el operador del contexto (después de RequireRole).
func GetOperator(c *fiber.Ctx) *entity.Operator {
	op, _ := c.Locals(LocalOperator).(*entity.Operator)
	return op
}
