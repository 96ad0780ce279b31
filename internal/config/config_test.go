package config_test

import (
	"testing"
	"time"

	"go-agency/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.FromViper(viper.New())

		assert.NoError(t, err)
		assert.Equal(t, "3000", cfg.App.Port)
		assert.Equal(t, 5*time.Minute, cfg.App.AvailabilityTTL)
		assert.Equal(t, 3*time.Second, cfg.Kafka.PollInterval)
		assert.True(t, cfg.App.MigrateOnStart)
		assert.Equal(t, "host=localhost user=postgres password= dbname=agency port=5432 sslmode=disable", cfg.Database.DSN())
		assert.Error(t, cfg.RequireKafka())
	})

	t.Run("overrides", func(t *testing.T) {
		v := viper.New()
		v.Set("PORT", "8080")
		v.Set("KAFKA_BROKER", "kafka:9092")
		v.Set("AVAILABILITY_CACHE_TTL", "30s")

		cfg, err := config.FromViper(v)

		assert.NoError(t, err)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, 30*time.Second, cfg.App.AvailabilityTTL)
		assert.NoError(t, cfg.RequireKafka())
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		v := viper.New()
		v.Set("APP_ENV", "production")

		_, err := config.FromViper(v)

		assert.Error(t, err)
	})
}
