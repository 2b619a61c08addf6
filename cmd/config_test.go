package cmd_test

import (
	"testing"
	"time"

	"freight/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("should apply defaults to optional keys", func(t *testing.T) {
		t.Setenv("DB_USER", "freight")
		t.Setenv("DB_PASSWORD", "secret")
		t.Setenv("DB_NAME", "freight")
		t.Setenv("JWT_SIGNING_KEY", "key")

		cfg, err := cmd.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, "UTC", cfg.HistoryTimezone)
		assert.Equal(t, 100, cfg.OutboxBatchSize)
		assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
		assert.Empty(t, cfg.KafkaBrokerList())
		assert.Equal(t, "host=localhost port=5432 user=freight password=secret dbname=freight sslmode=disable", cfg.DSN())
	})

	t.Run("should split the broker list", func(t *testing.T) {
		cfg := cmd.Config{KafkaBrokers: "kafka-1:9092, kafka-2:9092,"}

		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokerList())
	})
}
