package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/farmacia-console/internal/application/query"
	"github.com/jhoicas/farmacia-console/internal/application/session"
	"github.com/jhoicas/farmacia-console/internal/application/validation"
	"github.com/jhoicas/farmacia-console/internal/infrastructure/backend"
	infrapdf "github.com/jhoicas/farmacia-console/internal/infrastructure/pdf"
	"github.com/jhoicas/farmacia-console/internal/infrastructure/postgres"
	"github.com/jhoicas/farmacia-console/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/farmacia-console/internal/interfaces/http"
	"github.com/jhoicas/farmacia-console/pkg/config"
	"github.com/jhoicas/farmacia-console/pkg/logger"
)

// sessionStorage almacenamiento persistente de sesiones con cierre.
type sessionStorage interface {
	session.Storage
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("backend", cfg.Backend.BaseURL).
		Str("session_storage", cfg.Session.Storage).
		Msg("iniciando consola")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de sesiones")
	}
	defer store.Close()

	client := backend.NewClient(backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	}, log.Component("backend"))

	sessions := session.NewManager(store, query.Config{
		StaleTime:      cfg.Cache.StaleTime,
		Retries:        cfg.Cache.Retries,
		RetryBaseDelay: cfg.Cache.RetryBaseDelay,
	}, cfg.Session.TTL, func(s *session.Store) session.AuthAPI {
		return client.For(s).Auth
	}, log.Component("session"))

	metrics := httpRouter.NewMetrics("farmacia_console", func() float64 {
		return float64(sessions.Count())
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})

	// Swagger UI: http://localhost:<port>/docs
	if cfg.Docs.FilePath != "" {
		if _, err := os.Stat(cfg.Docs.FilePath); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.Docs.FilePath,
				Path:     "docs",
				Title:    "Farmacia Console",
			}))
		} else {
			log.Warn().Str("file", cfg.Docs.FilePath).Msg("documentación swagger no encontrada")
		}
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sessions:  sessions,
		Backend:   client,
		Validator: validation.New(),
		Reports:   infrapdf.NewReportGenerator(cfg.App.Name),
		Metrics:   metrics,
		Cookie: httpRouter.CookieConfig{
			Name:   cfg.Session.CookieName,
			TTL:    cfg.Session.TTL,
			Secure: cfg.Session.Secure,
		},
		SignIn: httpRouter.RateLimiterConfig{
			Rate:  rate.Limit(cfg.HTTP.SignInRate),
			Burst: cfg.HTTP.SignInBurst,
		},
		Log: log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("consola detenida")
}

// openStorage abre el almacenamiento de sesiones configurado. Con postgres arranca
// además la purga periódica de claves inactivas.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (sessionStorage, error) {
	switch cfg.Session.Storage {
	case "redis":
		return storage.NewRedis(ctx, cfg.Redis.URL, cfg.Session.TTL)
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		s, err := postgres.NewSessionStorage(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		go purgeSessions(ctx, s, cfg.Session.TTL, log)
		return s, nil
	default:
		return storage.NewMemory(), nil
	}
}

func purgeSessions(ctx context.Context, s *postgres.SessionStorage, ttl time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.PurgeOlderThan(ctx, time.Now().Add(-ttl))
			if err != nil {
				log.Warn().Err(err).Msg("purga de sesiones")
				continue
			}
			if n > 0 {
				log.Info().Int64("keys", n).Msg("sesiones inactivas purgadas")
			}
		}
	}
}
