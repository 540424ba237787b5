package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"
)

type flagValues struct {
	fs         *flag.FlagSet
	configFile string

	apiURL      string
	timeout     time.Duration
	pageSize    int
	session     string
	sessionPath string
	logFile     string
	logLevel    string
}

// parseFlags parses args without touching a Config so that the JSON file
// named by -c can be applied first.
func parseFlags(args []string) (*flagValues, error) {
	fv := &flagValues{fs: flag.NewFlagSet("estate", flag.ContinueOnError)}
	fs := fv.fs
	fs.SetOutput(io.Discard)

	fs.StringVar(&fv.configFile, "c", "", "path to a JSON config file")
	fs.StringVar(&fv.configFile, "config", "", "path to a JSON config file")
	fs.StringVar(&fv.apiURL, "api", "", "listing service base URL")
	fs.DurationVar(&fv.timeout, "timeout", 0, "HTTP request timeout")
	fs.IntVar(&fv.pageSize, "page-size", 0, "listings per page")
	fs.StringVar(&fv.session, "session", "", "session backend: file, sqlite or memory")
	fs.StringVar(&fv.sessionPath, "session-path", "", "session file or database path")
	fs.StringVar(&fv.logFile, "log-file", "", "log file path")
	fs.StringVar(&fv.logLevel, "log-level", "", "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("config: unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return fv, nil
}

// apply copies only the flags that were given explicitly.
func (fv *flagValues) apply(c *Config) {
	fv.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "api":
			c.APIURL = fv.apiURL
		case "timeout":
			c.Timeout = fv.timeout
		case "page-size":
			c.PageSize = fv.pageSize
		case "session":
			c.SessionBackend = fv.session
		case "session-path":
			c.SessionPath = fv.sessionPath
		case "log-file":
			c.LogFile = fv.logFile
		case "log-level":
			c.LogLevel = fv.logLevel
		}
	})
}
