// internal/config/config.go
//
// Process configuration read from the environment (after godotenv has loaded
// any .env file in main).
//
// Every key has a development default, so an empty environment runs an
// in-memory server on :5175 with local secret generation.

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robalobadob/bullscows/internal/store"
)

type Config struct {
	Port         string
	LogLevel     string
	LogFormat    string // json | console
	ClientOrigin string

	Store store.Config

	RandomOrgEnabled bool
	RandomOrgURL     string
	RandomOrgTimeout time.Duration

	DailySalt string
}

// Load reads the environment. It fails only on malformed values.
func Load() (Config, error) {
	var errs []error
	c := Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    strings.ToLower(getEnv("LOG_FORMAT", "json")),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Store: store.Config{
			Driver:        strings.ToLower(getEnv("STORE_DRIVER", "memory")),
			SQLitePath:    getEnv("SQLITE_PATH", "./data/bnc.db"),
			PostgresURL:   os.Getenv("DATABASE_URL"),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       getInt("REDIS_DB", 0, &errs),
			RedisTTL:      getDuration("REDIS_TTL", 0, &errs),
		},
		RandomOrgEnabled: getBool("RANDOM_ORG_ENABLED", true, &errs),
		RandomOrgURL:     getEnv("RANDOM_ORG_URL", "https://www.random.org/integers/"),
		RandomOrgTimeout: getDuration("RANDOM_ORG_TIMEOUT", 3*time.Second, &errs),
		DailySalt:        getEnv("DAILY_SALT", "bulls-and-cows"),
	}
	if c.Store.Driver == "postgres" && c.Store.PostgresURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required when STORE_DRIVER=postgres"))
	}
	return c, errors.Join(errs...)
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int, errs *[]error) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", k, err))
		return def
	}
	return n
}

func getBool(k string, def bool, errs *[]error) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", k, err))
		return def
	}
	return b
}

func getDuration(k string, def time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", k, err))
		return def
	}
	return d
}
