// Package config loads client settings.
//
// Sources, later ones win: built-in defaults, a .env file, ESTATE_* environment
// variables, a JSON file named by -c/-config, and command-line flags.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Session backends.
const (
	SessionFile   = "file"
	SessionSQLite = "sqlite"
	SessionMemory = "memory"
)

// Config holds runtime settings for the estate client.
type Config struct {
	APIURL         string
	Timeout        time.Duration
	PageSize       int
	SessionBackend string
	SessionPath    string // derived from the backend when empty
	LogFile        string
	LogLevel       string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://localhost:8080"
	c.Timeout = 30 * time.Second
	c.PageSize = 9
	c.SessionBackend = SessionFile
	c.SessionPath = ""
	c.LogFile = filepath.Join(Dir(), "estate.log")
	c.LogLevel = "info"
}

// Load builds a Config from all sources. args are the command-line
// arguments without the program name and subcommand.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}

	fl, err := parseFlags(args)
	if err != nil {
		return nil, err
	}
	if fl.configFile != "" {
		if err := cfg.applyJSON(fl.configFile); err != nil {
			return nil, err
		}
	}
	fl.apply(cfg)

	if cfg.SessionPath == "" {
		cfg.SessionPath = defaultSessionPath(cfg.SessionBackend)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: invalid api url %q", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive, got %s", c.Timeout)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("config: page size must be positive, got %d", c.PageSize)
	}
	switch c.SessionBackend {
	case SessionFile, SessionSQLite, SessionMemory:
	default:
		return fmt.Errorf("config: unknown session backend %q", c.SessionBackend)
	}
	return nil
}

// Dir returns ~/.estate, or .estate when the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".estate"
	}
	return filepath.Join(home, ".estate")
}

func defaultSessionPath(backend string) string {
	switch backend {
	case SessionSQLite:
		return filepath.Join(Dir(), "session.db")
	case SessionMemory:
		return ""
	default:
		return filepath.Join(Dir(), "session.json")
	}
}
