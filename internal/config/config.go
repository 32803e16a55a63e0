package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	// Gemini
	GeminiAPIKey  string
	TextModel     string
	ImageModel    string
	OracleTimeout time.Duration

	// Compliance
	ComplianceMaxAttempts int

	// Storage
	AssetsDir string
	OutputDir string

	// Redis (optional; empty URL keeps everything in-process)
	RedisURL string

	// Rate limiting
	RateLimitPerMinute int

	// Fonts (first readable path wins; empty list falls back to a built-in face)
	FontPaths []string

	// Server
	APIPort string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		TextModel:     getEnv("GEMINI_TEXT_MODEL", "gemini-flash-latest"),
		ImageModel:    getEnv("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),
		OracleTimeout: time.Duration(getEnvInt("ORACLE_TIMEOUT_SECONDS", 120)) * time.Second,

		ComplianceMaxAttempts: getEnvInt("COMPLIANCE_MAX_ATTEMPTS", 5),

		AssetsDir: getEnv("ASSETS_DIR", "./assets"),
		OutputDir: getEnv("OUTPUT_DIR", "./output"),

		RedisURL: getEnv("REDIS_URL", ""),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 100),

		FontPaths: parseFontPaths(getEnv("FONT_PATHS", "")),

		APIPort: getEnv("API_PORT", "8000"),
	}

	return cfg
}

func (c *Config) Validate(log *zap.Logger) {
	if c.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY is not set, oracle calls will fail")
	}
	if c.RedisURL == "" {
		log.Info("REDIS_URL not set, using in-memory status store and event bus")
	}
}

// StorageMode reports where creatives are written. Local filesystem is the only
// backend wired in; the name mirrors the health endpoint contract.
func (c *Config) StorageMode() string {
	return "local"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func parseFontPaths(s string) []string {
	defaults := []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
		"/System/Library/Fonts/Helvetica.ttc",
	}
	if s == "" {
		return defaults
	}
	var paths []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return defaults
	}
	return paths
}
