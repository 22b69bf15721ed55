package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httpkit/pkg/config"
)

type serverConfig struct {
	Addr    string        `env:"ADDR" envDefault:":8080"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"5s"`
	Origins []string      `env:"ORIGINS" envSeparator:","`
}

type requiredConfig struct {
	DSN string `env:"DSN,required"`
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.Load[serverConfig](config.WithEnvironment(map[string]string{}))
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Empty(t, cfg.Origins)
	})

	t.Run("values and prefix", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.Load[serverConfig](
			config.WithPrefix("APP_"),
			config.WithEnvironment(map[string]string{
				"APP_ADDR":    ":9000",
				"APP_TIMEOUT": "1m",
				"APP_ORIGINS": "https://a.example,https://b.example",
			}),
		)
		require.NoError(t, err)
		assert.Equal(t, ":9000", cfg.Addr)
		assert.Equal(t, time.Minute, cfg.Timeout)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins)
	})

	t.Run("missing required value", func(t *testing.T) {
		t.Parallel()
		_, err := config.Load[requiredConfig](config.WithEnvironment(map[string]string{}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("missing required env file", func(t *testing.T) {
		t.Parallel()
		_, err := config.Load[serverConfig](
			config.WithEnvFiles(filepath.Join(t.TempDir(), "missing.env")),
			config.WithRequiredFiles(),
		)
		assert.ErrorIs(t, err, config.ErrEnvFile)
	})

	t.Run("must load panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			config.MustLoad[requiredConfig](config.WithEnvironment(map[string]string{}))
		})
	})
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("HTTPKIT_TEST_DSN=postgres://localhost/test\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("HTTPKIT_TEST_DSN") })

	cfg, err := config.Load[requiredConfig](
		config.WithEnvFiles(path),
		config.WithRequiredFiles(),
		config.WithPrefix("HTTPKIT_TEST_"),
	)
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/test", cfg.DSN)
}
