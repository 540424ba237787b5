package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by applyEnv.
const (
	EnvAPIURL      = "ESTATE_API_URL"
	EnvTimeout     = "ESTATE_TIMEOUT"
	EnvPageSize    = "ESTATE_PAGE_SIZE"
	EnvSession     = "ESTATE_SESSION"
	EnvSessionPath = "ESTATE_SESSION_PATH"
	EnvLogFile     = "ESTATE_LOG_FILE"
	EnvLogLevel    = "ESTATE_LOG_LEVEL"
)

// loadDotEnv copies variables from path into the process environment.
// Variables already set are kept. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
	if v := getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v := getenv(EnvPageSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvPageSize, err)
		}
		c.PageSize = n
	}
	if v := getenv(EnvSession); v != "" {
		c.SessionBackend = v
	}
	if v := getenv(EnvSessionPath); v != "" {
		c.SessionPath = v
	}
	if v := getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	return nil
}
