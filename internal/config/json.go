package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// jsonConfig is the on-disk shape of a -config file. Empty fields leave the
// current value untouched.
type jsonConfig struct {
	APIURL         string `json:"api_url"`
	Timeout        string `json:"timeout"` // Go duration, e.g. "15s"
	PageSize       int    `json:"page_size"`
	SessionBackend string `json:"session"`
	SessionPath    string `json:"session_path"`
	LogFile        string `json:"log_file"`
	LogLevel       string `json:"log_level"`
}

func (c *Config) applyJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	if jc.APIURL != "" {
		c.APIURL = jc.APIURL
	}
	if jc.Timeout != "" {
		d, err := time.ParseDuration(jc.Timeout)
		if err != nil {
			return fmt.Errorf("config: %s: timeout: %w", path, err)
		}
		c.Timeout = d
	}
	if jc.PageSize != 0 {
		c.PageSize = jc.PageSize
	}
	if jc.SessionBackend != "" {
		c.SessionBackend = jc.SessionBackend
	}
	if jc.SessionPath != "" {
		c.SessionPath = jc.SessionPath
	}
	if jc.LogFile != "" {
		c.LogFile = jc.LogFile
	}
	if jc.LogLevel != "" {
		c.LogLevel = jc.LogLevel
	}
	return nil
}
