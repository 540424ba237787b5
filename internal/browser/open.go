// Package browser hands web links to the desktop's default handler.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Command returns the command that opens link on goos. Only absolute
// http and https links are accepted.
func Command(goos, link string) (*exec.Cmd, error) {
	u, err := url.Parse(link)
	if err != nil {
		return nil, fmt.Errorf("browser: parse %q: %w", link, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("browser: refusing to open %q", link)
	}
	switch goos {
	case "darwin":
		return exec.Command("open", link), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", link), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", link), nil
	default:
		return nil, fmt.Errorf("browser: unsupported OS: %s", goos)
	}
}

// Open opens link in the user's default browser without waiting for it.
func Open(link string) error {
	cmd, err := Command(runtime.GOOS, link)
	if err != nil {
		return err
	}
	return cmd.Start()
}
