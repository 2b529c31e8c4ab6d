package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresEnokiKey(t *testing.T) {
	t.Setenv("ENOKI_PRIVATE_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENOKI_PRIVATE_KEY")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENOKI_PRIVATE_KEY", "enoki_test_key")
	t.Setenv("PORT", "")
	t.Setenv("ENOKI_API_URL", "")
	t.Setenv("ENOKI_TIMEOUT_SECONDS", "")
	t.Setenv("SPONSOR_ALLOWED_TARGETS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "enoki_test_key", cfg.EnokiPrivateKey)
	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.EnokiTimeout)
	assert.Empty(t, cfg.EnokiAPIURL)
	assert.Empty(t, cfg.AllowedCallTargets)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENOKI_PRIVATE_KEY", "enoki_test_key")
	t.Setenv("PORT", "8080")
	t.Setenv("ENOKI_API_URL", "http://localhost:9999")
	t.Setenv("ENOKI_TIMEOUT_SECONDS", "5")
	t.Setenv("SPONSOR_ALLOWED_TARGETS", " 0xabc::mod::fn , 0xdef::mod::other ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:9999", cfg.EnokiAPIURL)
	assert.Equal(t, 5*time.Second, cfg.EnokiTimeout)
	assert.Equal(t, []string{"0xabc::mod::fn", "0xdef::mod::other"}, cfg.AllowedCallTargets)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("ENOKI_PRIVATE_KEY", "enoki_test_key")
	t.Setenv("ENOKI_TIMEOUT_SECONDS", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}
