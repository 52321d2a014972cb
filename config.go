package quizforge

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the runtime settings shared by the server and CLI
type Config struct {
	Port       string
	APIKey     string
	Model      string
	DBPath     string
	StaticDir  string
	LogDir     string
	SessionKey string

	AllowedOrigins []string

	// GenTimeoutSec bounds a single background quiz build
	GenTimeoutSec int

	Verbose bool
}

// FromEnv builds a Config from the environment with sensible defaults
func FromEnv() Config {
	return Config{
		Port:           envOr("PORT", "8180"),
		APIKey:         os.Getenv("OPENAI_API_KEY"),
		Model:          envOr("OPENAI_MODEL", ""),
		DBPath:         envOr("QUIZFORGE_DB", "quizforge.db"),
		StaticDir:      envOr("QUIZFORGE_STATIC_DIR", "static"),
		LogDir:         envOr("QUIZFORGE_LOG_DIR", "logs"),
		SessionKey:     envOr("QUIZFORGE_SESSION_KEY", "quizforge-dev-session-key"),
		AllowedOrigins: csvOr("QUIZFORGE_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8180"),
		GenTimeoutSec:  envInt("QUIZFORGE_GEN_TIMEOUT", 600),
		Verbose:        envBool("QUIZFORGE_VERBOSE", false),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
