package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported DATABASE_DRIVER values.
const (
	DriverPostgres = "postgres" // pgx through gorm.io/driver/postgres
	DriverPQ       = "pq"       // lib/pq through gorm.io/driver/postgres
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config is the fully resolved server configuration.
type Config struct {
	Port            string
	DatabaseDriver  string
	DatabaseDSN     string
	DatabaseMigrate bool
	StaticDir       string
	CORSOrigins     string
	RedisAddr       string
	RedisPassword   string
	CacheTTL        time.Duration
	RabbitMQURL     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// ConfigError reports a missing or invalid configuration key.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Reason)
}

// Load reads the optional env file named by ENV_FILE (default ".env") and then
// resolves the configuration from the environment. It never opens connections.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("ENV_FILE", ".env")
	v.AutomaticEnv()

	if err := loadEnvFile(v.GetString("ENV_FILE")); err != nil {
		return Config{}, err
	}
	return FromViper(v)
}

// FromViper resolves the configuration from an existing viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	v.SetDefault("APP_PORT", ":3000")
	v.SetDefault("DATABASE_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_AUTO_MIGRATE", true)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("CACHE_TTL", "30s")
	v.SetDefault("HTTP_READ_TIMEOUT", "15s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "15s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.AutomaticEnv()

	cfg := Config{
		Port:            normalizePort(v.GetString("APP_PORT")),
		DatabaseDriver:  strings.ToLower(strings.TrimSpace(v.GetString("DATABASE_DRIVER"))),
		DatabaseDSN:     strings.TrimSpace(v.GetString("DATABASE_DSN")),
		DatabaseMigrate: v.GetBool("DATABASE_AUTO_MIGRATE"),
		StaticDir:       strings.TrimSpace(v.GetString("STATIC_DIR")),
		CORSOrigins:     v.GetString("CORS_ORIGINS"),
		RedisAddr:       strings.TrimSpace(v.GetString("REDIS_ADDR")),
		RedisPassword:   v.GetString("REDIS_PASSWORD"),
		RabbitMQURL:     strings.TrimSpace(v.GetString("RABBITMQ_URL")),
	}

	if cfg.Port == "" {
		return Config{}, &ConfigError{Key: "APP_PORT", Reason: "must not be empty"}
	}

	switch cfg.DatabaseDriver {
	case DriverPostgres, DriverPQ, DriverSQLite:
		if cfg.DatabaseDSN == "" {
			return Config{}, &ConfigError{Key: "DATABASE_DSN", Reason: "database credentials are required for driver " + cfg.DatabaseDriver}
		}
	case DriverMemory:
	default:
		return Config{}, &ConfigError{Key: "DATABASE_DRIVER", Reason: fmt.Sprintf("unsupported driver %q", cfg.DatabaseDriver)}
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"CACHE_TTL", &cfg.CacheTTL},
		{"HTTP_READ_TIMEOUT", &cfg.ReadTimeout},
		{"HTTP_WRITE_TIMEOUT", &cfg.WriteTimeout},
		{"SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		parsed, err := time.ParseDuration(v.GetString(d.key))
		if err != nil || parsed < 0 {
			return Config{}, &ConfigError{Key: d.key, Reason: fmt.Sprintf("invalid duration %q", v.GetString(d.key))}
		}
		*d.dst = parsed
	}

	return cfg, nil
}

// loadEnvFile loads KEY=VALUE pairs without overriding variables already set.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("Env file %s not found, relying on system environment variables.", path)
			return nil
		}
		return &ConfigError{Key: "ENV_FILE", Reason: err.Error()}
	}
	log.Printf("Loaded environment from %s", path)
	return nil
}

// normalizePort accepts both "3000" and ":3000".
func normalizePort(port string) string {
	port = strings.TrimSpace(port)
	if port != "" && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
