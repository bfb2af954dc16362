// internal/config/config.go
//
// Environment-driven configuration. A `.env` file in the working directory
// is loaded first (development); real environment variables win.

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Words      WordsConfig
	Dictionary DictionaryConfig
	Round      RoundConfig
	LogLevel   string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ClientOrigin string
	Production   bool
}

// WordsConfig points at optional word-list files; empty means embedded.
type WordsConfig struct {
	StartFile      string
	DictionaryFile string
}

// DictionaryConfig selects the spell-check backend.
type DictionaryConfig struct {
	Backend   string
	DBPath    string
	RedisAddr string
}

// RoundConfig holds round bootstrap and token settings.
type RoundConfig struct {
	DailySalt string
	JWTSecret string
	TokenTTL  time.Duration
}

// Load reads configuration from the environment with defaults.
func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "5175"),
			ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
			Production:   os.Getenv("NODE_ENV") == "production",
		},
		Words: WordsConfig{
			StartFile:      os.Getenv("WORDS_START_FILE"),
			DictionaryFile: os.Getenv("WORDS_DICTIONARY_FILE"),
		},
		Dictionary: DictionaryConfig{
			Backend:   getEnv("DICTIONARY_BACKEND", "memory"),
			DBPath:    getEnv("DB_PATH", "./data/dictionary.db"),
			RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Round: RoundConfig{
			DailySalt: getEnv("DAILY_SALT", "local_dev_salt"),
			JWTSecret: getEnv("JWT_SECRET", "dev_secret_change_me"),
			TokenTTL:  time.Duration(getEnvInt("ROUND_TOKEN_HOURS", 24)) * time.Hour,
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
