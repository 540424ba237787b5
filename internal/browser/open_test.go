package browser

import (
	"path/filepath"
	"testing"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		goos string
		bin  string
	}{
		{"darwin", "open"},
		{"linux", "xdg-open"},
		{"windows", "rundll32"},
	}
	for _, tc := range tests {
		t.Run(tc.goos, func(t *testing.T) {
			cmd, err := Command(tc.goos, "https://placehold.co/800x600")
			if err != nil {
				t.Fatalf("Command: %v", err)
			}
			if got := filepath.Base(cmd.Args[0]); got != tc.bin {
				t.Errorf("binary = %q, want %q", got, tc.bin)
			}
			if last := cmd.Args[len(cmd.Args)-1]; last != "https://placehold.co/800x600" {
				t.Errorf("last arg = %q", last)
			}
		})
	}
}

func TestCommandRejects(t *testing.T) {
	for _, link := range []string{"", "file:///etc/passwd", "javascript:alert(1)", "/relative/path", "http://"} {
		if _, err := Command("linux", link); err == nil {
			t.Errorf("Command(%q): expected error", link)
		}
	}
	if _, err := Command("plan9", "https://example.com"); err == nil {
		t.Error("expected error for unsupported OS")
	}
}
