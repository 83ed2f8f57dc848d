package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/jhoicas/farmacia-console/internal/application/dto"
)

// RateLimiterConfig límite por IP.
type RateLimiterConfig struct {
	Rate  rate.Limit
	Burst int
}

// RateLimiter token bucket por IP del cliente; los buckets inactivos expiran.
type RateLimiter struct {
	cfg      RateLimiterConfig
	limiters *gocache.Cache
	mu       sync.Mutex
}

// NewRateLimiter construye el limitador.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	return &RateLimiter{cfg: cfg, limiters: gocache.New(15*time.Minute, 5*time.Minute)}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if v, ok := rl.limiters.Get(key); ok {
		return v.(*rate.Limiter)
	}
	l := rate.NewLimiter(rl.cfg.Rate, rl.cfg.Burst)
	rl.limiters.SetDefault(key, l)
	return l
}

// Limit responde 429 cuando la IP supera el límite; onReject (opcional) se llama en cada rechazo.
func (rl *RateLimiter) Limit(onReject func()) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rl.limiter(c.IP()).Allow() {
			if onReject != nil {
				onReject()
			}
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiados intentos, espere un momento"})
		}
		return c.Next()
	}
}
