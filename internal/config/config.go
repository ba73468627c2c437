package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                   string
	DBPath                 string
	LogLevel               string
	LogColors              bool
	ExamDuration           time.Duration
	TimerInterval          time.Duration
	PersistQueueSize       int
	SetPageSize            int
	FullExamSize           int
	MasteryReviewThreshold int
	SessionIdleTTL         time.Duration
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                   envOr("ADDR", ":8080"),
		DBPath:                 envOr("DB_PATH", "file:examprep.db"),
		LogLevel:               envOr("LOG_LEVEL", "INFO"),
		LogColors:              envBoolOr("LOG_COLORS", true),
		ExamDuration:           envDurationOr("EXAM_DURATION", 150*time.Minute),
		TimerInterval:          envDurationOr("TIMER_INTERVAL", time.Second),
		PersistQueueSize:       envIntOr("PERSIST_QUEUE_SIZE", 256),
		SetPageSize:            envIntOr("SET_PAGE_SIZE", 10),
		FullExamSize:           envIntOr("FULL_EXAM_SIZE", 80),
		MasteryReviewThreshold: envIntOr("MASTERY_REVIEW_THRESHOLD", 3),
		SessionIdleTTL:         envDurationOr("SESSION_IDLE_TTL", 6*time.Hour),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}
	if c.ExamDuration < time.Second {
		errs = append(errs, fmt.Errorf("EXAM_DURATION must be at least 1s, got %s", c.ExamDuration))
	}
	if c.TimerInterval <= 0 {
		errs = append(errs, fmt.Errorf("TIMER_INTERVAL must be positive, got %s", c.TimerInterval))
	}
	if c.PersistQueueSize < 1 {
		errs = append(errs, fmt.Errorf("PERSIST_QUEUE_SIZE must be at least 1, got %d", c.PersistQueueSize))
	}
	if c.SetPageSize < 1 {
		errs = append(errs, fmt.Errorf("SET_PAGE_SIZE must be at least 1, got %d", c.SetPageSize))
	}
	if c.FullExamSize < 1 {
		errs = append(errs, fmt.Errorf("FULL_EXAM_SIZE must be at least 1, got %d", c.FullExamSize))
	}
	if c.MasteryReviewThreshold < 1 {
		errs = append(errs, fmt.Errorf("MASTERY_REVIEW_THRESHOLD must be at least 1, got %d", c.MasteryReviewThreshold))
	}
	if c.SessionIdleTTL < 0 {
		errs = append(errs, fmt.Errorf("SESSION_IDLE_TTL cannot be negative, got %s", c.SessionIdleTTL))
	}
	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
