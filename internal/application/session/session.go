package session

import (
	"context"
	"fmt"

	"github.com/jhoicas/farmacia-console/internal/application/query"
	"github.com/jhoicas/farmacia-console/internal/domain"
	"github.com/jhoicas/farmacia-console/internal/domain/entity"
)

// AuthAPI operaciones de autenticación que necesita la sesión.
type AuthAPI interface {
	ValidateToken(ctx context.Context) (bool, error)
	Me(ctx context.Context) (*entity.Operator, error)
}

// MeKey clave de la consulta "quién soy".
var MeKey = query.NewKey(query.EntityMe, nil)

// Session une el Store de un navegador con su cache de consultas y su borrador.
type Session struct {
	ID          string
	store       *Store
	cache       *query.Cache
	auth        AuthAPI
	draft       *Draft
	unsubscribe func()
}

// New enlaza store y cache. Logout invalida todo y vacía el borrador, igual que un
// login sobre un token anterior. El primer login solo invalida "quién soy" y el
// cambio de institución las consultas de la institución.
func New(id string, store *Store, cache *query.Cache, auth AuthAPI) *Session {
	s := &Session{ID: id, store: store, cache: cache, auth: auth, draft: &Draft{}}
	s.unsubscribe = store.Subscribe(func(ev Event) {
		switch ev.Type {
		case EventLogout:
			cache.InvalidateAll()
			s.draft.Clear()
		case EventInstitutionChanged:
			cache.InvalidateScoped()
		case EventLogin:
			if ev.Previous.Token != "" {
				cache.InvalidateAll()
				s.draft.Clear()
				return
			}
			cache.Invalidate(query.EntityMe)
		}
	})
	return s
}

func (s *Session) Store() *Store         { return s.store }
func (s *Session) Cache() *query.Cache   { return s.cache }
func (s *Session) Draft() *Draft         { return s.draft }
func (s *Session) Close()                { s.unsubscribe() }
func (s *Session) InstitutionID() string { return s.store.InstitutionID() }

// WhoAmI valida el token y devuelve el operador. Sin token devuelve
// domain.ErrNoSession sin consultar al backend. Nunca se reintenta.
func (s *Session) WhoAmI(ctx context.Context) (*entity.Operator, error) {
	if s.store.Token() == "" {
		return nil, domain.ErrNoSession
	}
	return query.Fetch(ctx, s.cache, MeKey, func(ctx context.Context) (*entity.Operator, error) {
		valid, err := s.auth.ValidateToken(ctx)
		if err != nil {
			return nil, err
		}
		if !valid {
			return nil, fmt.Errorf("%w: token rechazado", domain.ErrUnauthorized)
		}
		return s.auth.Me(ctx)
	}, query.NoRetry())
}

// Authenticated hay token y "quién soy" respondió bien.
func (s *Session) Authenticated(ctx context.Context) bool {
	op, err := s.WhoAmI(ctx)
	return err == nil && op != nil
}
