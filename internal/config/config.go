package config

import (
	"fmt"
	"time"

	"go-hris-leave/internal/shared/connection"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"development"`
	Port   string `envconfig:"PORT" default:"3000"`

	DBHost       string `envconfig:"DB_HOST" default:"localhost"`
	DBPort       string `envconfig:"DB_PORT" default:"5432"`
	DBUser       string `envconfig:"DB_USER" required:"true"`
	DBPassword   string `envconfig:"DB_PASSWORD"`
	DBName       string `envconfig:"DB_NAME" required:"true"`
	DBSSLMode    string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxRetries int    `envconfig:"DB_MAX_RETRIES" default:"5"`

	// Empty disables the idempotency middleware.
	RedisAddr      string        `envconfig:"REDIS_ADDR"`
	IdempotencyTTL time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`

	// Per user request rate on the leave routes; 0 disables limiting.
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"10"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"20"`

	KafkaBroker        string        `envconfig:"KAFKA_BROKER"`
	KafkaConsumerGroup string        `envconfig:"KAFKA_CONSUMER_GROUP" default:"go-hris-leave-audit"`
	OutboxPollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"3s"`
	OutboxBatchSize    int           `envconfig:"OUTBOX_BATCH_SIZE" default:"50"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
	WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"10s"`
	IdleTimeout     time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) Postgres() connection.PostgresConfig {
	return connection.PostgresConfig{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		DBName:   c.DBName,
		SSLMode:  c.DBSSLMode,
	}
}

func (c *Config) RequireKafka() error {
	if c.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	return nil
}
