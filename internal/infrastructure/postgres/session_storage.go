package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createSessionStorageTable = `
	CREATE TABLE IF NOT EXISTS console_session_storage (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// SessionStorage almacenamiento clave/valor de sesiones sobre PostgreSQL.
type SessionStorage struct {
	pool *pgxpool.Pool
}

// NewSessionStorage construye el adaptador y crea la tabla si no existe.
func NewSessionStorage(ctx context.Context, pool *pgxpool.Pool) (*SessionStorage, error) {
	if _, err := pool.Exec(ctx, createSessionStorageTable); err != nil {
		return nil, fmt.Errorf("crear tabla console_session_storage: %w", err)
	}
	return &SessionStorage{pool: pool}, nil
}

// Get obtiene el valor de una clave.
func (s *SessionStorage) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM console_session_storage WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get session key: %w", err)
	}
	return value, true, nil
}

// Set inserta o reemplaza el valor de una clave.
func (s *SessionStorage) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO console_session_storage (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := s.pool.Exec(ctx, query, key, value, time.Now()); err != nil {
		return fmt.Errorf("set session key: %w", err)
	}
	return nil
}

// Delete elimina las claves indicadas.
func (s *SessionStorage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM console_session_storage WHERE key = ANY($1)`, keys); err != nil {
		return fmt.Errorf("delete session keys: %w", err)
	}
	return nil
}

// PurgeOlderThan borra claves sin actividad desde before. Devuelve las filas borradas.
func (s *SessionStorage) PurgeOlderThan(ctx context.Context, before time.Time) (int64, error) {
	cmd, err := s.pool.Exec(ctx, `DELETE FROM console_session_storage WHERE updated_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("purge session keys: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (s *SessionStorage) Close() error {
	s.pool.Close()
	return nil
}
