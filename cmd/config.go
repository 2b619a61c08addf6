package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" env-default:"8080"`

	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER" env-required:"true"`
	DBPassword string `env:"DB_PASSWORD" env-required:"true"`
	DBName     string `env:"DB_NAME" env-required:"true"`
	DBSslMode  string `env:"DB_SSLMODE" env-default:"disable"`

	JWTSigningKey string `env:"JWT_SIGNING_KEY" env-required:"true"`

	// Empty values disable the adapter.
	RedisAddr          string `env:"REDIS_ADDR"`
	KafkaBrokers       string `env:"KAFKA_BROKERS"`
	KafkaEventsTopic   string `env:"KAFKA_EVENTS_TOPIC" env-default:"freight.events"`
	AMQPURL            string `env:"AMQP_URL"`
	AMQPPositionsQueue string `env:"AMQP_POSITIONS_QUEUE" env-default:"trip.positions"`

	HistoryTimezone    string        `env:"HISTORY_TIMEZONE" env-default:"UTC"`
	OutboxBatchSize    int           `env:"OUTBOX_BATCH_SIZE" env-default:"100"`
	OutboxSchedule     string        `env:"OUTBOX_SCHEDULE" env-default:"*/2 * * * * *"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	IdempotencyLockTTL time.Duration `env:"IDEMPOTENCY_LOCK_TTL" env-default:"30s"`
	IdempotencyTTL     time.Duration `env:"IDEMPOTENCY_TTL" env-default:"24h"`
}

// LoadConfig reads an optional .env file and then the process environment,
// which takes precedence.
func LoadConfig() (Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) KafkaBrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
