// Package config loads runtime settings from the environment (and an
// optional .env file). Command-line flags are applied on top by cmd/.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the server and CLI settings.
type Config struct {
	Port           int
	PlanFile       string // empty = built-in plan
	LogLevel       string
	LogFormat      string // "json" or "console"
	AllowedOrigins []string
}

// Defaults
const (
	DefaultPort      = 8080
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

var defaultOrigins = []string{"http://localhost:5173", "http://localhost:8080"}

// Load reads .env (if present) and then the process environment.
// It reports whether a .env file was found so the caller can log it.
func Load() (Config, bool) {
	found := godotenv.Load() == nil
	return FromEnv(os.Getenv), found
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) Config {
	return Config{
		Port:           getIntOrDefault(getenv, "PORT", DefaultPort),
		PlanFile:       strings.TrimSpace(getenv("PLAN_FILE")),
		LogLevel:       getOrDefault(getenv, "LOG_LEVEL", DefaultLogLevel),
		LogFormat:      getOrDefault(getenv, "LOG_FORMAT", DefaultLogFormat),
		AllowedOrigins: getListOrDefault(getenv, "ALLOWED_ORIGINS", defaultOrigins),
	}
}

func getOrDefault(getenv func(string) string, key, def string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return def
}

func getIntOrDefault(getenv func(string) string, key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(getenv(key)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getListOrDefault(getenv func(string) string, key string, def []string) []string {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return append([]string(nil), def...)
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
