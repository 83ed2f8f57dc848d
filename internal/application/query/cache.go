// Package query implementa el cache de consultas de la consola: claves estructuradas
// (entidad + parámetros), deduplicación de peticiones concurrentes, reintentos con
// backoff e invalidación tipada por entidad o por alcance de institución.
package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// Entity nombre de la colección cacheada.
type Entity string

const (
	EntityMe                  Entity = "me"
	EntityOperators           Entity = "operators"
	EntityInstitutions        Entity = "institutions"
	EntityStocks              Entity = "stocks"
	EntityMedicines           Entity = "medicines"
	EntityMedicineVariants    Entity = "medicine-variants"
	EntityPathologies         Entity = "pathologies"
	EntityPharmaceuticalForms Entity = "pharmaceutical-forms"
	EntityUnitMeasures        Entity = "unit-measures"
	EntityTherapeuticClasses  Entity = "therapeutic-classes"
	EntityManufacturers       Entity = "manufacturers"
	EntityMovementTypes       Entity = "movement-types"
	EntityUsers               Entity = "users"
	EntityInventory           Entity = "inventory"
	EntityBatches             Entity = "batches"
	EntityDispensations       Entity = "dispensations"
	EntityDispensationPreview Entity = "dispensation-preview"
	EntityExits               Entity = "exits"
	EntityEntries             Entity = "entries"
	EntityTransfers           Entity = "transfers"
	EntityDashboard           Entity = "dashboard"
	EntityReports             Entity = "reports"
)

// Key identifica una consulta. Scoped marca las consultas que dependen de la
// institución seleccionada y se invalidan al cambiarla.
type Key struct {
	Entity Entity
	Params string
	Scoped bool
}

// NewKey construye una clave con los parámetros serializados de forma canónica
// (JSON: campos de struct en orden de declaración, mapas con claves ordenadas).
func NewKey(entity Entity, params interface{}) Key {
	return Key{Entity: entity, Params: canonical(params)}
}

// NewScopedKey igual que NewKey pero ligada a la institución seleccionada.
func NewScopedKey(entity Entity, params interface{}) Key {
	k := NewKey(entity, params)
	k.Scoped = true
	return k
}

func (k Key) String() string {
	scope := "global"
	if k.Scoped {
		scope = "scoped"
	}
	return fmt.Sprintf("%s|%s|%s", k.Entity, scope, k.Params)
}

func canonical(params interface{}) string {
	if params == nil {
		return "{}"
	}
	b, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%v", params)
	}
	return string(b)
}

// Config parámetros del cache.
type Config struct {
	StaleTime      time.Duration // vida de una entrada antes de expirar
	Retries        int           // reintentos por defecto de una consulta fallida
	RetryBaseDelay time.Duration
}

type entry struct {
	key   Key
	value interface{}
	stale bool
}

// flight consulta en curso. invalidated se activa si una invalidación la alcanza
// antes de que su resultado llegue al store.
type flight struct {
	key         Key
	invalidated bool
}

// Cache cache de consultas por sesión.
type Cache struct {
	store *gocache.Cache
	group singleflight.Group
	cfg   Config

	mu       sync.Mutex
	inflight map[string]*flight
}

// New construye el cache. StaleTime <= 0 equivale a sin expiración.
func New(cfg Config) *Cache {
	ttl := cfg.StaleTime
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = 500 * time.Millisecond
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	return &Cache{
		store:    gocache.New(ttl, 10*time.Minute),
		cfg:      cfg,
		inflight: make(map[string]*flight),
	}
}

type fetchOptions struct {
	retries int
}

// FetchOption ajusta una consulta concreta.
type FetchOption func(*fetchOptions)

// NoRetry desactiva los reintentos (consulta "quién soy").
func NoRetry() FetchOption {
	return func(o *fetchOptions) { o.retries = 0 }
}

// WithRetries fija el número de reintentos.
func WithRetries(n int) FetchOption {
	return func(o *fetchOptions) {
		if n >= 0 {
			o.retries = n
		}
	}
}

// Fetch devuelve el valor cacheado si está vigente; si falta o está marcado como
// obsoleto ejecuta fn. Las llamadas concurrentes con la misma clave comparten una
// sola ejecución. Los errores no se cachean. Un resultado cuya consulta fue
// invalidada mientras estaba en curso se guarda ya obsoleto.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fn func(context.Context) (T, error), opts ...FetchOption) (T, error) {
	var zero T
	id := key.String()

	if raw, ok := c.store.Get(id); ok {
		if e := raw.(*entry); !e.stale {
			if v, ok := e.value.(T); ok {
				return v, nil
			}
		}
	}

	o := fetchOptions{retries: c.cfg.Retries}
	for _, opt := range opts {
		opt(&o)
	}

	v, err, _ := c.group.Do(id, func() (interface{}, error) {
		f := c.begin(id, key)
		var out T
		op := func() error {
			res, err := fn(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return backoff.Permanent(err)
				}
				return err
			}
			out = res
			return nil
		}
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = c.cfg.RetryBaseDelay
		b.MaxElapsedTime = 0
		policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(o.retries)), ctx)
		if err := backoff.Retry(op, policy); err != nil {
			c.finish(id, f, nil)
			return nil, err
		}
		c.finish(id, f, &entry{key: key, value: out})
		return out, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

func (c *Cache) begin(id string, key Key) *flight {
	f := &flight{key: key}
	c.mu.Lock()
	c.inflight[id] = f
	c.mu.Unlock()
	return f
}

// finish cierra la consulta y guarda e (si no es nil) bajo el mismo lock que
// markStale, así ninguna invalidación queda entre ambos pasos.
func (c *Cache) finish(id string, f *flight, e *entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[id] == f {
		delete(c.inflight, id)
	}
	if e == nil {
		return
	}
	e.stale = f.invalidated
	c.store.SetDefault(id, e)
}

// Set guarda un valor directamente (por ejemplo el resultado de una mutación).
func (c *Cache) Set(key Key, value interface{}) {
	c.store.SetDefault(key.String(), &entry{key: key, value: value})
}

// Peek devuelve el valor cacheado sin consultar, aunque esté obsoleto.
func (c *Cache) Peek(key Key) (interface{}, bool) {
	raw, ok := c.store.Get(key.String())
	if !ok {
		return nil, false
	}
	return raw.(*entry).value, true
}

// IsStale indica si la clave no tiene valor vigente (ausente o invalidada).
func (c *Cache) IsStale(key Key) bool {
	raw, ok := c.store.Get(key.String())
	if !ok {
		return true
	}
	return raw.(*entry).stale
}

// Invalidate marca como obsoletas todas las consultas de las entidades indicadas.
func (c *Cache) Invalidate(entities ...Entity) {
	set := make(map[Entity]struct{}, len(entities))
	for _, e := range entities {
		set[e] = struct{}{}
	}
	c.markStale(func(k Key) bool {
		_, ok := set[k.Entity]
		return ok
	})
}

// InvalidateScoped marca como obsoletas las consultas ligadas a la institución.
func (c *Cache) InvalidateScoped() {
	c.markStale(func(k Key) bool { return k.Scoped })
}

// InvalidateAll marca como obsoletas todas las consultas.
func (c *Cache) InvalidateAll() {
	c.markStale(func(Key) bool { return true })
}

func (c *Cache) markStale(match func(Key) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, f := range c.inflight {
		if match(f.key) {
			f.invalidated = true
		}
	}
	for id, item := range c.store.Items() {
		e, ok := item.Object.(*entry)
		if !ok || e.stale || !match(e.key) {
			continue
		}
		stale := *e
		stale.stale = true
		ttl := gocache.DefaultExpiration
		if item.Expiration > 0 {
			ttl = time.Until(time.Unix(0, item.Expiration))
			if ttl <= 0 {
				c.store.Delete(id)
				continue
			}
		}
		c.store.Set(id, &stale, ttl)
	}
}
