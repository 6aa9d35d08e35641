package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	StorageDriver string
	ServerAddr    string
	CORSOrigins   []string
	LogLevel      string

	MongoURL string
	DBName   string

	Postgres PostgresConfig
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
}

func (p PostgresConfig) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", p.User, p.Password, p.Host, p.Port, p.DB)
}

// LoadDotEnv reads a .env file into the environment when one exists.
// It reports whether a file was loaded.
func LoadDotEnv(paths ...string) bool {
	return godotenv.Load(paths...) == nil
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv reads the configuration without validating it, for commands that
// let flags override the environment first.
func FromEnv() *Config {
	return &Config{
		StorageDriver: getenv("STORAGE_DRIVER", DriverMongo),
		ServerAddr:    getenv("SERVER_ADDR", "0.0.0.0:8001"),
		CORSOrigins:   splitList(getenv("CORS_ORIGINS", "*")),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		MongoURL:      os.Getenv("MONGO_URL"),
		DBName:        os.Getenv("DB_NAME"),
		Postgres: PostgresConfig{
			Host:     getenv("POSTGRES_HOST", "localhost"),
			Port:     getenv("POSTGRES_PORT", "5432"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DB:       os.Getenv("POSTGRES_DB"),
		},
	}
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverMongo:
		if c.MongoURL == "" {
			return errors.New("MONGO_URL is required for the mongo storage driver")
		}
		if c.DBName == "" {
			return errors.New("DB_NAME is required for the mongo storage driver")
		}
	case DriverPostgres:
		if c.Postgres.DB == "" {
			return errors.New("POSTGRES_DB is required for the postgres storage driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
