package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.VerifyDelay)
	assert.Equal(t, 1500*time.Millisecond, cfg.ConfirmDelay)
	assert.Equal(t, 15*time.Minute, cfg.ConfirmationIdleTTL)
	assert.Len(t, cfg.ErrorMessages, 2)
	assert.NotEqual(t, cfg.ErrorMessages[0], cfg.ErrorMessages[1])
}

func TestLoadDotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STUDYIA_TEST_ONLY_PORT=1\nVERIFY_DELAY=10ms\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("STUDYIA_TEST_ONLY_PORT")
		os.Unsetenv("VERIFY_DELAY")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Millisecond, cfg.VerifyDelay)
}

func TestLoadRejectsCommissionRate(t *testing.T) {
	t.Setenv("COMMISSION_RATE", "1.5")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "commission rate")
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("REDIS_DB", "not-an-int")

	var cfg Config
	err := ParseEnv(&cfg)
	assert.ErrorContains(t, err, "parse env:")
}

func TestLocation(t *testing.T) {
	cfg := &Config{TimeZone: "Local"}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.TimeZone = "UTC"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	cfg.TimeZone = "Nowhere/Atlantis"
	_, err = cfg.Location()
	assert.Error(t, err)
}
