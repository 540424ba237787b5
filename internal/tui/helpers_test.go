package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

func TestFormatPrice(t *testing.T) {
	norm := strings.NewReplacer("\u00a0", " ", "\u202f", " ")
	tests := []struct {
		in   float64
		want string
	}{
		{1234567, "1 234 567 ₽"},
		{999, "999 ₽"},
		{1500.5, "1 500,5 ₽"},
	}
	for _, tc := range tests {
		if got := norm.Replace(formatPrice(tc.in)); got != tc.want {
			t.Errorf("formatPrice(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2024-03-05T10:20:30", "05.03.2024"},
		{"2024-03-05T10:20:30.123456", "05.03.2024"},
		{"2024-12-31T23:59:59Z", "31.12.2024"},
		{"2024-03-05", "05.03.2024"},
		{"вчера", "вчера"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := formatDate(tc.in); got != tc.want {
			t.Errorf("formatDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSnippet(t *testing.T) {
	if got := snippet("Уютный  дом\nу моря"); got != "Уютный дом у моря..." {
		t.Errorf("snippet = %q", got)
	}
	long := strings.Repeat("я", 150)
	got := snippet(long)
	if utf8.RuneCountInString(got) != snippetLen+3 || !strings.HasSuffix(got, "...") {
		t.Errorf("snippet length = %d", utf8.RuneCountInString(got))
	}
}

func TestTruncStr(t *testing.T) {
	tests := []struct {
		s      string
		maxLen int
		want   string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 5, "hell…"},
		{"Квартира", 4, "Ква…"},
		{"", 5, ""},
	}
	for _, tc := range tests {
		if got := truncStr(tc.s, tc.maxLen); got != tc.want {
			t.Errorf("truncStr(%q, %d) = %q, want %q", tc.s, tc.maxLen, got, tc.want)
		}
	}
}

func TestImageURLPlaceholder(t *testing.T) {
	if imageURL("  ") != placeholderImage {
		t.Error("blank url should fall back to the placeholder")
	}
	if imageURL("http://x/1.jpg") != "http://x/1.jpg" {
		t.Error("url should be kept")
	}
}

func TestEditRune(t *testing.T) {
	tests := []struct {
		name, start, key, want string
	}{
		{"append", "дo", "м", "дoм"},
		{"space", "a", " ", "a "},
		{"backspace multibyte", "дом", "backspace", "до"},
		{"backspace empty", "", "backspace", ""},
		{"named key ignored", "abc", "enter", "abc"},
		{"ctrl ignored", "abc", "ctrl+s", "abc"},
		{"at limit", strings.Repeat("a", maxInputLen), "b", strings.Repeat("a", maxInputLen)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := editRune(tc.start, tc.key); got != tc.want {
				t.Errorf("editRune(%q, %q) = %q, want %q", tc.start, tc.key, got, tc.want)
			}
		})
	}
}

func TestEditTextPaste(t *testing.T) {
	got := editText("", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Санкт-Петербург"), Paste: true})
	if got != "Санкт-Петербург" {
		t.Errorf("paste = %q", got)
	}
	if got := editText("ab", tea.KeyMsg{Type: tea.KeyBackspace}); got != "a" {
		t.Errorf("backspace = %q", got)
	}
	if got := editText("ab", tea.KeyMsg{Type: tea.KeyEnter}); got != "ab" {
		t.Errorf("enter = %q", got)
	}
}

func TestNumericOnly(t *testing.T) {
	tests := map[string]string{
		"1500000": "1500000",
		"1 500":   "1500",
		"1.5.2":   "1.52",
		"abc":     "",
		"-10":     "10",
		"1,5":     "15",
	}
	for in, want := range tests {
		if got := numericOnly(in); got != want {
			t.Errorf("numericOnly(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCycle(t *testing.T) {
	opts := []string{"", "a", "b"}
	if got := cycle(opts, "", 1); got != "a" {
		t.Errorf("got %q", got)
	}
	if got := cycle(opts, "b", 1); got != "" {
		t.Errorf("wrap forward: got %q", got)
	}
	if got := cycle(opts, "", -1); got != "b" {
		t.Errorf("wrap back: got %q", got)
	}
	if got := cycle([]string{"x", "y"}, "zzz", -1); got != "y" {
		t.Errorf("unknown value back: got %q", got)
	}
}

func TestTruncateToHeight(t *testing.T) {
	in := "1\n2\n3\n4\n"
	if got := truncateToHeight(in, 2); got != "1\n2\n" {
		t.Errorf("got %q", got)
	}
	if got := truncateToHeight(in, 0); got != in {
		t.Errorf("zero max should keep input, got %q", got)
	}
}

func TestMask(t *testing.T) {
	if got := mask("пароль", false); got != "••••••" {
		t.Errorf("mask = %q", got)
	}
	if got := mask("пароль", true); got != "пароль" {
		t.Errorf("shown = %q", got)
	}
}

func TestShimmerLogoKeepsLetters(t *testing.T) {
	out := renderShimmerLogo(3)
	for _, r := range logoText {
		if !strings.ContainsRune(out, r) {
			t.Errorf("logo missing %q", r)
		}
	}
}
