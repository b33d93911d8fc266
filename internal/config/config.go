// internal/config/config.go
//
// Environment-driven configuration.
// .env files are loaded by the caller (godotenv) before Load runs.
//
// Environment variables:
//   PORT, LOG_LEVEL, LOG_FORMAT (json|console), DB_PATH,
//   SESSION_SECRET, SESSION_TTL_DAYS, COOKIE_NAME, NODE_ENV, CLIENT_ORIGIN,
//   WORDS_FILE, WORD_LENGTH, MAX_ATTEMPTS, REQUEST_TIMEOUT, WORDS_FIXED_SOLUTION,
//   WORDS_DAILY_SALT, SESSION_IDLE_TTL (0 disables idle eviction).

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process settings.
type Config struct {
	Port           string
	LogLevel       string
	LogFormat      string
	DBPath         string
	SessionSecret  string
	SessionTTL     time.Duration
	CookieName     string
	Production     bool
	ClientOrigin   string
	WordsFile      string
	WordLength     int
	MaxAttempts    int
	RequestTimeout time.Duration
	IdleTTL        time.Duration
	FixedSolution  string
	DailySalt      string
}

// LoadEnvFile loads path into the environment; an empty path loads ./.env if present.
// Variables already set are not overridden.
func LoadEnvFile(path string) error {
	if path == "" {
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	c := Config{
		Port:          getEnv("PORT", "5175"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		DBPath:        getEnv("DB_PATH", "./data/guessgame.db"),
		SessionSecret: getEnv("SESSION_SECRET", "dev_secret_change_me"),
		CookieName:    getEnv("COOKIE_NAME", "guessgame_session"),
		Production:    os.Getenv("NODE_ENV") == "production",
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		WordsFile:     os.Getenv("WORDS_FILE"),
		FixedSolution: os.Getenv("WORDS_FIXED_SOLUTION"),
		DailySalt:     os.Getenv("WORDS_DAILY_SALT"),
	}

	days, err := envInt("SESSION_TTL_DAYS", 180)
	if err != nil {
		return Config{}, err
	}
	c.SessionTTL = time.Duration(days) * 24 * time.Hour
	if c.WordLength, err = envInt("WORD_LENGTH", 5); err != nil {
		return Config{}, err
	}
	if c.MaxAttempts, err = envInt("MAX_ATTEMPTS", 6); err != nil {
		return Config{}, err
	}
	if c.RequestTimeout, err = envDuration("REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if c.IdleTTL, err = envDuration("SESSION_IDLE_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.WordLength < 1 {
		return fmt.Errorf("config: WORD_LENGTH must be >= 1, got %d", c.WordLength)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("config: MAX_ATTEMPTS must be >= 1, got %d", c.MaxAttempts)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL_DAYS must be >= 1")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: REQUEST_TIMEOUT must be positive")
	}
	if c.IdleTTL < 0 {
		return fmt.Errorf("config: SESSION_IDLE_TTL must not be negative")
	}
	return nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", k, err)
	}
	return n, nil
}

func envDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", k, err)
	}
	return d, nil
}
