package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/jhoicas/farmacia-console/internal/application/query"
	"github.com/jhoicas/farmacia-console/internal/domain"
)

// AuthBinder construye la API de autenticación que usa el token de store.
type AuthBinder func(store *Store) AuthAPI

// Manager registro de sesiones por id de cookie. Las sesiones inactivas salen de
// memoria tras ttl; su token e institución siguen en Storage.
type Manager struct {
	storage  Storage
	sessions *gocache.Cache
	cacheCfg query.Config
	bind     AuthBinder
	ttl      time.Duration
	mu       sync.Mutex
	log      zerolog.Logger
}

// NewManager construye el registro.
func NewManager(storage Storage, cacheCfg query.Config, ttl time.Duration, bind AuthBinder, log zerolog.Logger) *Manager {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	sessions := gocache.New(ttl, 10*time.Minute)
	sessions.OnEvicted(func(id string, v interface{}) {
		if s, ok := v.(*Session); ok {
			s.Close()
		}
	})
	return &Manager{
		storage:  storage,
		sessions: sessions,
		cacheCfg: cacheCfg,
		bind:     bind,
		ttl:      ttl,
		log:      log,
	}
}

// NewID genera un id de sesión para la cookie.
func (m *Manager) NewID() string {
	return uuid.NewString()
}

// Get devuelve la sesión id, abriéndola desde Storage si no está en memoria.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, domain.ErrNoSession
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: id de sesión inválido", domain.ErrInvalidInput)
	}
	if v, ok := m.sessions.Get(id); ok {
		m.sessions.SetDefault(id, v)
		return v.(*Session), nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.sessions.Get(id); ok {
		return v.(*Session), nil
	}
	store, err := Open(ctx, m.storage, "session:"+id)
	if err != nil {
		return nil, fmt.Errorf("abrir sesión: %w", err)
	}
	s := New(id, store, query.New(m.cacheCfg), m.bind(store))
	m.sessions.SetDefault(id, s)
	m.log.Debug().Str("session_id", id).Msg("sesión abierta")
	return s, nil
}

// Count sesiones en memoria.
func (m *Manager) Count() int {
	return m.sessions.ItemCount()
}
