package query_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-console/internal/application/query"
)

type stockFilters struct {
	Page int    `json:"page"`
	Name string `json:"name,omitempty"`
}

func newCache() *query.Cache {
	return query.New(query.Config{StaleTime: time.Minute, Retries: 2, RetryBaseDelay: time.Millisecond})
}

func TestNewKey_ParametrosCanonicos(t *testing.T) {
	a := query.NewKey(query.EntityStocks, stockFilters{Page: 1, Name: "central"})
	b := query.NewKey(query.EntityStocks, stockFilters{Page: 1, Name: "central"})
	c := query.NewKey(query.EntityStocks, stockFilters{Page: 2, Name: "central"})
	d := query.NewKey(query.EntityMedicines, stockFilters{Page: 1, Name: "central"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a.String(), c.String())
	assert.NotEqual(t, a.String(), d.String(), "misma forma de parámetros en otra entidad no colisiona")
	assert.NotEqual(t, a.String(), query.NewScopedKey(query.EntityStocks, stockFilters{Page: 1, Name: "central"}).String())
}

func TestFetch_CacheaHastaInvalidar(t *testing.T) {
	c := newCache()
	key := query.NewKey(query.EntityExits, stockFilters{Page: 1})
	var calls int32
	fn := func(context.Context) (int, error) {
		return int(atomic.AddInt32(&calls, 1)), nil
	}

	v, err := query.Fetch(context.Background(), c, key, fn)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	v, _ = query.Fetch(context.Background(), c, key, fn)
	assert.Equal(t, 1, v, "segunda lectura sale del cache")
	assert.False(t, c.IsStale(key))

	c.Invalidate(query.EntityExits)
	assert.True(t, c.IsStale(key))

	v, _ = query.Fetch(context.Background(), c, key, fn)
	assert.Equal(t, 2, v, "tras invalidar se vuelve a consultar")
	assert.False(t, c.IsStale(key))
}

func TestInvalidate_SoloEntidadesIndicadas(t *testing.T) {
	c := newCache()
	exits := query.NewKey(query.EntityExits, nil)
	stocks := query.NewKey(query.EntityStocks, nil)
	c.Set(exits, 1)
	c.Set(stocks, 2)

	c.Invalidate(query.EntityExits)

	assert.True(t, c.IsStale(exits))
	assert.False(t, c.IsStale(stocks))
	v, ok := c.Peek(exits)
	assert.True(t, ok, "el valor obsoleto sigue disponible para mostrar")
	assert.Equal(t, 1, v)
}

func TestInvalidateScoped(t *testing.T) {
	c := newCache()
	scoped := query.NewScopedKey(query.EntityInventory, map[string]string{"institutionId": "i1"})
	global := query.NewKey(query.EntityMedicines, nil)
	c.Set(scoped, "inv")
	c.Set(global, "meds")

	c.InvalidateScoped()

	assert.True(t, c.IsStale(scoped))
	assert.False(t, c.IsStale(global))

	c.InvalidateAll()
	assert.True(t, c.IsStale(global))
}

func TestFetch_ReintentaYNoCacheaErrores(t *testing.T) {
	c := newCache()
	key := query.NewKey(query.EntityStocks, nil)
	var calls int32
	fn := func(context.Context) (string, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return "", errors.New("temporal")
		}
		return "ok", nil
	}

	v, err := query.Fetch(context.Background(), c, key, fn)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "1 intento + 2 reintentos")
}

func TestFetch_NoRetry(t *testing.T) {
	c := newCache()
	key := query.NewKey(query.EntityMe, nil)
	var calls int32
	boom := errors.New("token inválido")
	_, err := query.Fetch(context.Background(), c, key, func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", boom
	}, query.NoRetry())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.True(t, c.IsStale(key), "los errores no se cachean")
}

func TestFetch_DeduplicaConcurrentes(t *testing.T) {
	c := newCache()
	key := query.NewKey(query.EntityInstitutions, nil)
	var calls int32
	release := make(chan struct{})
	fn := func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = query.Fetch(context.Background(), c, key, fn)
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.Equal(t, 42, r)
	}
}

func TestFetch_InvalidacionDuranteLaConsulta(t *testing.T) {
	c := newCache()
	key := query.NewScopedKey(query.EntityInventory, map[string]string{"institutionId": "i1"})
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan string)
	go func() {
		v, _ := query.Fetch(context.Background(), c, key, func(context.Context) (string, error) {
			close(started)
			<-release
			return "viejo", nil
		})
		done <- v
	}()

	<-started
	c.InvalidateScoped()
	close(release)
	assert.Equal(t, "viejo", <-done)

	assert.True(t, c.IsStale(key), "la invalidación no se pierde")
	v, err := query.Fetch(context.Background(), c, key, func(context.Context) (string, error) {
		return "nuevo", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "nuevo", v)
	assert.False(t, c.IsStale(key))
}

func TestFetch_InvalidacionDeOtraEntidadNoAfecta(t *testing.T) {
	c := newCache()
	key := query.NewKey(query.EntityMedicines, nil)
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = query.Fetch(context.Background(), c, key, func(context.Context) (int, error) {
			close(started)
			<-release
			return 1, nil
		})
	}()

	<-started
	c.Invalidate(query.EntityExits)
	close(release)
	<-done

	assert.False(t, c.IsStale(key))
}
