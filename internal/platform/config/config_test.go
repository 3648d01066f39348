package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("LOAD_MIN_INTERVAL", "")
	t.Setenv("DEMO_STORE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.LoadMinInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.LoadDebounceWindow)
	assert.Equal(t, 15*time.Second, cfg.LoadFetchTimeout)
	assert.Equal(t, DemoStoreMemory, cfg.DemoStore)
	assert.Equal(t, "100-M", cfg.RateLimit)
}

func TestLoadConfig_Overrides(t *testing.T) {
	viper.Reset()
	t.Setenv("LOAD_MIN_INTERVAL", "2s")
	t.Setenv("LOAD_DEBOUNCE_WINDOW", "not-a-duration")
	t.Setenv("DEMO_STORE", "Redis")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.LoadMinInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.LoadDebounceWindow)
	assert.Equal(t, DemoStoreRedis, cfg.DemoStore)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}
