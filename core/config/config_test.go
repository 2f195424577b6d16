package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaykit/relay/core/config"
)

func TestLoad(t *testing.T) {
	t.Run("parses_env_tags", func(t *testing.T) {
		type webConfig struct {
			Addr  string `env:"TEST_WEB_ADDR" envDefault:":8080"`
			Debug bool   `env:"TEST_WEB_DEBUG" envDefault:"false"`
		}

		t.Setenv("TEST_WEB_ADDR", ":9090")
		t.Setenv("TEST_WEB_DEBUG", "true")

		var cfg webConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, ":9090", cfg.Addr)
		assert.True(t, cfg.Debug)
	})

	t.Run("defaults_apply_when_unset", func(t *testing.T) {
		type queueConfig struct {
			Workers int `env:"TEST_QUEUE_WORKERS" envDefault:"4"`
		}

		var cfg queueConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 4, cfg.Workers)
	})

	t.Run("same_type_is_cached", func(t *testing.T) {
		type cachedConfig struct {
			Value string `env:"TEST_CACHED_VALUE" envDefault:"first"`
		}

		t.Setenv("TEST_CACHED_VALUE", "first")
		var first cachedConfig
		require.NoError(t, config.Load(&first))

		// A changed environment is not observed for an already-loaded type.
		t.Setenv("TEST_CACHED_VALUE", "second")
		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, first, second)
	})

	t.Run("required_variable_missing_fails", func(t *testing.T) {
		type strictConfig struct {
			Secret string `env:"TEST_STRICT_SECRET,required"`
		}

		var cfg strictConfig
		assert.Error(t, config.Load(&cfg))
	})

	t.Run("rejects_non_struct_targets", func(t *testing.T) {
		assert.ErrorIs(t, config.Load(nil), config.ErrInvalidTarget)

		var n int
		assert.ErrorIs(t, config.Load(&n), config.ErrInvalidTarget)

		type anyConfig struct{}
		var nilPtr *anyConfig
		assert.ErrorIs(t, config.Load(nilPtr), config.ErrInvalidTarget)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics_on_failure", func(t *testing.T) {
		type brokenConfig struct {
			Token string `env:"TEST_MUST_TOKEN,required"`
		}

		assert.Panics(t, func() {
			config.MustLoad(&brokenConfig{})
		})
	})

	t.Run("loads_on_success", func(t *testing.T) {
		type fineConfig struct {
			Name string `env:"TEST_MUST_NAME" envDefault:"relay"`
		}

		var cfg fineConfig
		assert.NotPanics(t, func() { config.MustLoad(&cfg) })
		assert.Equal(t, "relay", cfg.Name)
	})
}
