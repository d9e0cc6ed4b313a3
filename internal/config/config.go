// Package config loads server configuration from an optional YAML
// file plus environment overrides. Every key has a development
// default, so a bare `court-reads` starts with the in-memory store
// and the embedded broker.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Airtable  AirtableConfig  `mapstructure:"airtable"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Warehouse WarehouseConfig `mapstructure:"warehouse"`
}

type ServerConfig struct {
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`
}

// AirtableConfig holds the bearer credentials for the book/character
// base. An empty APIKey disables the Airtable source.
type AirtableConfig struct {
	APIKey string `mapstructure:"api_key"`
	BaseID string `mapstructure:"base_id"`
}

// DatabaseConfig selects the session store backend. Driver is one of
// "memory", "sqlite", or "postgres".
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// NATSConfig points at a broker for draft events. With Embedded set
// the server runs its own in-process instance and ignores URL.
type NATSConfig struct {
	Embedded bool   `mapstructure:"embedded"`
	URL      string `mapstructure:"url"`
}

// WarehouseConfig configures the ClickHouse season-stats sync. Left
// disabled, stats only live in the request-path caches.
type WarehouseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// Load reads configuration from path (optional) with COURTREADS_*
// environment variables taking precedence over file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("COURTREADS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.driver", "memory")
	v.SetDefault("database.path", "court-reads.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "courtreads")
	v.SetDefault("database.dbname", "courtreads")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	v.SetDefault("nats.embedded", true)
	v.SetDefault("nats.url", "nats://localhost:4222")

	v.SetDefault("warehouse.enabled", false)
	v.SetDefault("warehouse.addr", "localhost:9000")
	v.SetDefault("warehouse.database", "courtreads")
	v.SetDefault("warehouse.user", "default")
}

// DSN builds the postgres connection string for the session store.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Addr returns the host:port address for the Redis stats cache.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
