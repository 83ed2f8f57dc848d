// Package backend es el cliente REST del backend de farmacia: adjunta el token de la
// sesión, normaliza los errores HTTP a *APIError y decodifica los listados paginados.
// Usa net/http de la librería estándar, como los demás adaptadores HTTP salientes.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/farmacia-console/internal/domain"
	"github.com/jhoicas/farmacia-console/internal/domain/entity"
)

const (
	maxResponseBytes = 10 << 20

	// GenericErrorMessage mensaje cuando el error no trae uno legible.
	GenericErrorMessage = "Ocurrió un error inesperado. Intente nuevamente."
	timeoutMessage      = "El servidor no respondió a tiempo. Intente nuevamente."
)

// TokenSource entrega el token vigente de la sesión ("" si no hay).
type TokenSource interface {
	Token() string
}

type noToken struct{}

func (noToken) Token() string { return "" }

// Config conexión al backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client cliente HTTP del backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        zerolog.Logger
}

// NewClient construye el cliente sin token; WithTokens lo liga a una sesión.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     noToken{},
		log:        log,
	}
}

// WithTokens copia del cliente que usa ts para el header Authorization.
func (c *Client) WithTokens(ts TokenSource) *Client {
	cp := *c
	if ts == nil {
		ts = noToken{}
	}
	cp.tokens = ts
	return &cp
}

// APIError respuesta no 2xx del backend.
type APIError struct {
	Status    int
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: HTTP %d: %s", e.Status, e.Message)
}

// Unwrap traduce el status a los errores de dominio.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	default:
		return nil
	}
}

// ExtractMessage texto para la notificación al usuario a partir de cualquier error.
func ExtractMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return timeoutMessage
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return timeoutMessage
	}
	return GenericErrorMessage
}

// parseMessage lee {"message": "..."} o {"message": ["...", "..."]}.
func parseMessage(raw []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if len(payload.Message) > 0 {
		var s string
		if err := json.Unmarshal(payload.Message, &s); err == nil {
			return s
		}
		var list []string
		if err := json.Unmarshal(payload.Message, &list); err == nil {
			return strings.Join(list, "; ")
		}
	}
	return payload.Error
}

// Do ejecuta la petición. body se envía como JSON; out (si no es nil) recibe la respuesta.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: serializar request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("backend: crear request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("backend: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("backend: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("backend: leer respuesta: %w", err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Dur("latency", time.Since(start)).
		Msg("backend request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: parseMessage(raw), RequestID: requestID}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("backend: deserializar respuesta de %s: %w", path, err)
	}
	return nil
}

// listEnvelope forma {<colección>: [...], meta: {page, totalCount}}.
type listEnvelope map[string]json.RawMessage

func decodePage[T any](env listEnvelope, collection string) (*entity.Page[T], error) {
	out := &entity.Page[T]{Items: []T{}}
	if raw, ok := env[collection]; ok && len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &out.Items); err != nil {
			return nil, fmt.Errorf("backend: deserializar %s: %w", collection, err)
		}
	}
	if raw, ok := env["meta"]; ok && len(raw) > 0 {
		if err := json.Unmarshal(raw, &out.Meta); err != nil {
			return nil, fmt.Errorf("backend: deserializar meta: %w", err)
		}
	}
	return out, nil
}

// list GET paginado de una colección.
func list[T any](ctx context.Context, c *Client, path, collection string, query url.Values) (*entity.Page[T], error) {
	var env listEnvelope
	if err := c.Do(ctx, http.MethodGet, path, query, nil, &env); err != nil {
		return nil, err
	}
	return decodePage[T](env, collection)
}
