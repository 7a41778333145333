package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Contas"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"contas"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	// Redis caches the bill list in the API; empty address disables it.
	Redis struct {
		Addr string        `envconfig:"REDIS_ADDR" default:""`
		TTL  time.Duration `envconfig:"REDIS_TTL" default:"30s"`
	}

	// Kafka publishes bill change events; empty brokers disable it.
	Kafka struct {
		Brokers string `envconfig:"KAFKA_BROKERS" default:""`
		Topic   string `envconfig:"KAFKA_TOPIC" default:"bill_events"`
	}

	// Locale drives the currency rendering of the totals in the TUI.
	Locale struct {
		Language string `envconfig:"LOCALE" default:"pt-BR"`
		Currency string `envconfig:"CURRENCY" default:"BRL"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// KafkaBrokers splits the comma-separated broker list.
func (c *Config) KafkaBrokers() []string {
	if c.Kafka.Brokers == "" {
		return nil
	}

	parts := strings.Split(c.Kafka.Brokers, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
