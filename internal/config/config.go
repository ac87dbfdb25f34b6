package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config holds settings shared by the serve and preview commands.
type Config struct {
	Addr        string
	UploadDir   string
	MaxUploadMB int64
	OpenBrowser bool
	Browser     string
	FFmpegPath  string
	FFprobePath string
}

// Load reads the configuration from environment variables or defaults.
// Command-line flags override these values afterwards.
func Load() *Config {
	return &Config{
		Addr:        getEnv("SRTPLAY_ADDR", "127.0.0.1:8080"),
		UploadDir:   getEnv("SRTPLAY_UPLOAD_DIR", filepath.Join(os.TempDir(), "srtplay")),
		MaxUploadMB: getEnvInt("SRTPLAY_MAX_UPLOAD_MB", 4096),
		OpenBrowser: getEnvBool("SRTPLAY_OPEN_BROWSER", false),
		Browser:     firstEnv("SRTPLAY_BROWSER", "BROWSER"),
		FFmpegPath:  os.Getenv("SRTPLAY_FFMPEG_PATH"),
		FFprobePath: os.Getenv("SRTPLAY_FFPROBE_PATH"),
	}
}

// MaxUploadBytes is the request body limit for media uploads.
func (c *Config) MaxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 0
	}
	return c.MaxUploadMB << 20
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}
