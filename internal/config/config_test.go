package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmorita/sage/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SAGE_API_BASE_URL", "SAGE_HTTP_TIMEOUT", "SAGE_TOKEN_PATH", "PORT", "STUB_TOKEN_TTL", "ARK_API_KEY", "ARK_MODEL"} {
		t.Setenv(key, "")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.Client.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
	assert.Empty(t, cfg.Client.TokenPath)

	assert.Equal(t, ":8080", cfg.Stub.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Stub.TokenTTL)
	assert.False(t, cfg.Stub.AI.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SAGE_API_BASE_URL", "https://sage.example.com/api")
	t.Setenv("SAGE_HTTP_TIMEOUT", "5")
	t.Setenv("SAGE_TOKEN_PATH", "/tmp/sage-token")
	t.Setenv("PORT", "9090")
	t.Setenv("STUB_TOKEN_TTL", "2")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://sage.example.com/api", cfg.Client.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Client.Timeout)
	assert.Equal(t, "/tmp/sage-token", cfg.Client.TokenPath)
	assert.Equal(t, ":9090", cfg.Stub.Addr)
	assert.Equal(t, 2*time.Hour, cfg.Stub.TokenTTL)
}

func TestLoadAddrForms(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:8081")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8081", cfg.Stub.Addr)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SAGE_HTTP_TIMEOUT", "zero")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("SAGE_HTTP_TIMEOUT", "-3")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestAIConfigEnabled(t *testing.T) {
	t.Setenv("ARK_API_KEY", "key")
	t.Setenv("ARK_MODEL", "doubao-pro")
	t.Setenv("ARK_TEMPERATURE", "0.7")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.Stub.AI.Enabled())
	require.NotNil(t, cfg.Stub.AI.Temperature)
	assert.InDelta(t, 0.7, *cfg.Stub.AI.Temperature, 1e-9)
}
