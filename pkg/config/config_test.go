package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_VideoAPIConfig(t *testing.T) {
	os.Setenv("VIDEO_API_ENDPOINT", "https://video.test/api")
	os.Setenv("VIDEO_API_KEY", "test-key")
	os.Setenv("VIDEO_POLL_INTERVAL", "500ms")
	os.Setenv("VIDEO_POLL_TIMEOUT", "90s")
	defer func() {
		os.Unsetenv("VIDEO_API_ENDPOINT")
		os.Unsetenv("VIDEO_API_KEY")
		os.Unsetenv("VIDEO_POLL_INTERVAL")
		os.Unsetenv("VIDEO_POLL_TIMEOUT")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "https://video.test/api", cfg.VideoAPI.Endpoint)
	assert.Equal(t, "test-key", cfg.VideoAPI.APIKey)
	assert.Equal(t, 500*time.Millisecond, cfg.VideoAPI.PollInterval)
	assert.Equal(t, 90*time.Second, cfg.VideoAPI.PollTimeout)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("VIDEO_POLL_INTERVAL")
	os.Unsetenv("VIDEO_POLL_TIMEOUT")
	os.Unsetenv("STORAGE_BACKEND")
	os.Unsetenv("REUSE_CASE_ENABLED")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.VideoAPI.PollInterval)
	assert.Equal(t, 5*time.Minute, cfg.VideoAPI.PollTimeout)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Equal(t, "storage", cfg.Storage.LocalDir)
	assert.True(t, cfg.Reuse.Enabled)
}

func TestLoad_ReuseKillSwitch(t *testing.T) {
	os.Setenv("REUSE_CASE_ENABLED", "false")
	defer os.Unsetenv("REUSE_CASE_ENABLED")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.False(t, cfg.Reuse.Enabled)
}
