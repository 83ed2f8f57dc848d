package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la consola (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Backend BackendConfig
	Session SessionConfig
	Cache   CacheConfig
	Redis   RedisConfig
	DB      DBConfig
	Docs    DocsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP de la consola.
type HTTPConfig struct {
	Host string
	Port int

	// SignInRate intentos de inicio de sesión por segundo aceptados por el limitador.
	SignInRate  float64
	SignInBurst int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BackendConfig configuración del API REST de farmacia consumido por la consola.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig configuración de sesiones del navegador.
// Storage: "memory", "redis" o "postgres".
type SessionConfig struct {
	Storage    string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// CacheConfig configuración del cache de consultas.
type CacheConfig struct {
	StaleTime      time.Duration
	Retries        int
	RetryBaseDelay time.Duration
}

// RedisConfig conexión a Redis (solo si Session.Storage = "redis").
type RedisConfig struct {
	URL string
}

// DBConfig configuración de PostgreSQL (solo si Session.Storage = "postgres").
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// DocsConfig documentación Swagger servida en /docs (vacío = deshabilitada).
type DocsConfig struct {
	FilePath string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, BACKEND_URL, SESSION_STORAGE, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "farmacia-console"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			SignInRate:  getFloat(v, "HTTP_SIGNIN_RATE", 1),
			SignInBurst: getInt(v, "HTTP_SIGNIN_BURST", 5),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimRight(getString(v, "BACKEND_URL", "http://localhost:3333"), "/"),
			Timeout: time.Duration(getInt(v, "BACKEND_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		Session: SessionConfig{
			Storage:    getString(v, "SESSION_STORAGE", "memory"),
			CookieName: getString(v, "SESSION_COOKIE", "console_sid"),
			TTL:        time.Duration(getInt(v, "SESSION_TTL_HOURS", 12)) * time.Hour,
			Secure:     getString(v, "APP_ENV", "development") == "production",
		},
		Cache: CacheConfig{
			StaleTime:      time.Duration(getInt(v, "CACHE_STALE_SECONDS", 60)) * time.Second,
			Retries:        getInt(v, "CACHE_RETRIES", 3),
			RetryBaseDelay: time.Duration(getInt(v, "CACHE_RETRY_DELAY_MS", 500)) * time.Millisecond,
		},
		Redis: RedisConfig{
			URL: getString(v, "REDIS_URL", "redis://localhost:6379/0"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "farmacia_console"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Docs: DocsConfig{
			FilePath: getString(v, "DOCS_FILE", ""),
		},
	}

	switch cfg.Session.Storage {
	case "memory", "redis", "postgres":
	default:
		return nil, fmt.Errorf("config: SESSION_STORAGE desconocido %q", cfg.Session.Storage)
	}
	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("config: BACKEND_URL requerido")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(v.GetString(key), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}
