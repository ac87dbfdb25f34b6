package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SRTPLAY_ADDR", "SRTPLAY_UPLOAD_DIR", "SRTPLAY_MAX_UPLOAD_MB",
		"SRTPLAY_OPEN_BROWSER", "SRTPLAY_BROWSER", "BROWSER",
		"SRTPLAY_FFMPEG_PATH", "SRTPLAY_FFPROBE_PATH",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr)
	assert.Equal(t, "srtplay", filepath.Base(cfg.UploadDir))
	assert.Equal(t, int64(4096), cfg.MaxUploadMB)
	assert.Equal(t, int64(4096)<<20, cfg.MaxUploadBytes())
	assert.False(t, cfg.OpenBrowser)
	assert.Empty(t, cfg.Browser)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SRTPLAY_ADDR", ":9000")
	t.Setenv("SRTPLAY_UPLOAD_DIR", "/data/uploads")
	t.Setenv("SRTPLAY_MAX_UPLOAD_MB", "12")
	t.Setenv("SRTPLAY_OPEN_BROWSER", "true")
	t.Setenv("SRTPLAY_BROWSER", "")
	t.Setenv("BROWSER", "firefox")
	t.Setenv("SRTPLAY_FFPROBE_PATH", "/opt/ffprobe")

	cfg := Load()
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "/data/uploads", cfg.UploadDir)
	assert.Equal(t, int64(12)<<20, cfg.MaxUploadBytes())
	assert.True(t, cfg.OpenBrowser)
	assert.Equal(t, "firefox", cfg.Browser)
	assert.Equal(t, "/opt/ffprobe", cfg.FFprobePath)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("SRTPLAY_MAX_UPLOAD_MB", "lots")
	t.Setenv("SRTPLAY_OPEN_BROWSER", "maybe")

	cfg := Load()
	assert.Equal(t, int64(4096), cfg.MaxUploadMB)
	assert.False(t, cfg.OpenBrowser)
}

func TestMaxUploadBytesUnlimited(t *testing.T) {
	cfg := &Config{MaxUploadMB: 0}
	assert.Zero(t, cfg.MaxUploadBytes())
}
