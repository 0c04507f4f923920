// Package config handles loading and parsing application configuration.
// All values come from environment variables (the standard way to pass
// config to a container); main loads a .env file first so local runs
// work without exporting anything.
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"fmt"
	"log"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration structure.
// Every field maps to an environment variable (env:"..."); defaults
// match what the deployment's docker-compose wiring provides.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `env:"ENV" env-default:"dev"`

	// Testing switches the persistence gateway from networked PostgreSQL
	// to an ephemeral in-memory SQLite instance.
	Testing bool `env:"TESTING" env-default:"false"`

	// HTTPServer and Database are embedded (not pointers) so their
	// fields are reachable directly on Config: cfg.Addr, cfg.Database.DSN().
	HTTPServer
	Database
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string `env:"HTTP_SERVER_ADDR" env-default:":8080"`
}

// Database holds the PostgreSQL connection parameters. The defaults
// point at the "postgres" service of the compose network.
type Database struct {
	User     string `env:"POSTGRES_USER" env-default:"postgres"`
	Password string `env:"POSTGRES_PASSWORD" env-default:"postgres"`
	Name     string `env:"POSTGRES_DB" env-default:"postgres"`
	Host     string `env:"DB_HOST" env-default:"postgres"`
	Port     string `env:"DB_PORT" env-default:"5432"`
}

// DSN assembles the PostgreSQL connection string from the individual
// parameters.
func (d Database) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// MustLoad reads, validates, and returns the application config.
//
// The name "MustLoad" follows a Go convention: functions prefixed with
// "Must" are allowed to panic/fatal on failure. Callers do not need to
// check a returned error — if this function returns, the config is valid.
func MustLoad() *Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err.Error())
	}

	return &cfg
}
