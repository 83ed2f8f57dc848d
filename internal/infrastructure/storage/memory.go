// Package storage implementa el almacenamiento persistente de la sesión del
// navegador (claves "token" e "institutionId") en memoria, Redis o PostgreSQL.
package storage

import (
	"context"

	gocache "github.com/patrickmn/go-cache"
)

// Memory almacenamiento en proceso; se pierde al reiniciar la consola.
type Memory struct {
	c *gocache.Cache
}

// NewMemory construye el almacenamiento en memoria (sin expiración).
func NewMemory() *Memory {
	return &Memory{c: gocache.New(gocache.NoExpiration, 0)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return "", false, nil
	}
	return v.(string), true, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.c.Set(key, value, gocache.NoExpiration)
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		m.c.Delete(k)
	}
	return nil
}

func (m *Memory) Close() error { return nil }
