// Package session guarda el estado de sesión de cada navegador: token, institución
// seleccionada, cache de consultas y el borrador de dispensación.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/farmacia-console/internal/domain"
	pkgjwt "github.com/jhoicas/farmacia-console/pkg/jwt"
)

const (
	keyToken         = "token"
	keyInstitutionID = "institutionId"
)

// Storage almacenamiento persistente clave/valor (memoria, Redis o PostgreSQL).
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// EventType tipo de cambio de sesión notificado a los suscriptores.
type EventType int

const (
	EventLogin EventType = iota + 1
	EventLogout
	EventInstitutionChanged
)

func (t EventType) String() string {
	switch t {
	case EventLogin:
		return "login"
	case EventLogout:
		return "logout"
	case EventInstitutionChanged:
		return "institution_changed"
	default:
		return "unknown"
	}
}

// State token e institución seleccionada. Cadena vacía = ausente.
type State struct {
	Token         string `json:"-"`
	InstitutionID string `json:"institutionId"`
}

// Event cambio de sesión con el estado resultante y el anterior.
type Event struct {
	Type     EventType
	State    State
	Previous State
}

// Store estado de sesión con lectura/escritura explícita y suscripción a cambios.
// Cada cambio se persiste en Storage antes de aplicarse en memoria.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	ns      string
	state   State
	subs    map[int]func(Event)
	nextSub int
	now     func() time.Time
}

// Open carga token e institución persistidos bajo namespace.
func Open(ctx context.Context, storage Storage, namespace string) (*Store, error) {
	s := &Store{
		storage: storage,
		ns:      namespace,
		subs:    make(map[int]func(Event)),
		now:     time.Now,
	}
	token, _, err := storage.Get(ctx, s.key(keyToken))
	if err != nil {
		return nil, fmt.Errorf("leer token: %w", err)
	}
	institutionID, _, err := storage.Get(ctx, s.key(keyInstitutionID))
	if err != nil {
		return nil, fmt.Errorf("leer institución: %w", err)
	}
	s.state = State{Token: token, InstitutionID: institutionID}
	return s, nil
}

func (s *Store) key(name string) string {
	if s.ns == "" {
		return name
	}
	return s.ns + ":" + name
}

// Get devuelve el estado actual. Un JWT vencido se informa como ausente.
func (s *Store) Get() State {
	s.mu.RLock()
	st := s.state
	s.mu.RUnlock()
	if st.Token != "" && pkgjwt.Expired(st.Token, s.now()) {
		st.Token = ""
	}
	return st
}

// Token token vigente o "" (implementa la fuente de token del cliente backend).
func (s *Store) Token() string {
	return s.Get().Token
}

// InstitutionID institución seleccionada o "".
func (s *Store) InstitutionID() string {
	return s.Get().InstitutionID
}

// Login persiste el token y notifica EventLogin.
func (s *Store) Login(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: token vacío", domain.ErrInvalidInput)
	}
	if err := s.storage.Set(ctx, s.key(keyToken), token); err != nil {
		return fmt.Errorf("guardar token: %w", err)
	}
	s.mu.Lock()
	prev := s.state
	s.state.Token = token
	s.mu.Unlock()
	s.emit(EventLogin, prev)
	return nil
}

// Logout borra token e institución de memoria y del almacenamiento; notifica EventLogout.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	prev := s.state
	s.state = State{}
	s.mu.Unlock()
	if err := s.storage.Delete(ctx, s.key(keyToken), s.key(keyInstitutionID)); err != nil {
		s.emit(EventLogout, prev)
		return fmt.Errorf("borrar sesión: %w", err)
	}
	s.emit(EventLogout, prev)
	return nil
}

// SelectInstitution persiste la institución elegida ("" la quita) y notifica
// EventInstitutionChanged.
func (s *Store) SelectInstitution(ctx context.Context, institutionID string) error {
	var err error
	if institutionID == "" {
		err = s.storage.Delete(ctx, s.key(keyInstitutionID))
	} else {
		err = s.storage.Set(ctx, s.key(keyInstitutionID), institutionID)
	}
	if err != nil {
		return fmt.Errorf("guardar institución: %w", err)
	}
	s.mu.Lock()
	prev := s.state
	s.state.InstitutionID = institutionID
	s.mu.Unlock()
	s.emit(EventInstitutionChanged, prev)
	return nil
}

// Subscribe registra fn para cada cambio; devuelve la función para darse de baja.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) emit(t EventType, prev State) {
	s.mu.RLock()
	ev := Event{Type: t, State: s.state, Previous: prev}
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(ev)
	}
}
