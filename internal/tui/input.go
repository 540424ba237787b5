package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// maxInputLen is the maximum number of runes allowed in form inputs.
// Descriptions may legally reach 2000 runes; the extra room lets the
// length rule be seen failing.
const maxInputLen = 2100

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for non-printable keys (enter, esc, etc.).
// Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	case " ":
		if utf8.RuneCountInString(text) >= maxInputLen {
			return text
		}
		return text + " "
	default:
		if utf8.RuneCountInString(key) == 1 {
			if utf8.RuneCountInString(text) >= maxInputLen {
				return text
			}
			return text + key
		}
		return text
	}
}

// keyText returns the text a key inserts: runes for typed or pasted input,
// a space for the space key, and "" otherwise.
func keyText(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyRunes:
		return string(msg.Runes)
	case tea.KeySpace:
		return " "
	}
	return ""
}

// editText applies a key to text: backspace deletes, printable input appends.
func editText(text string, msg tea.KeyMsg) string {
	if msg.Type == tea.KeyBackspace {
		return editRune(text, "backspace")
	}
	for _, r := range keyText(msg) {
		text = editRune(text, string(r))
	}
	return text
}

// numericOnly keeps digits and the first decimal point of s.
func numericOnly(s string) string {
	var b strings.Builder
	dot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !dot:
			dot = true
			b.WriteRune(r)
		}
	}
	return b.String()
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// mask hides a secret unless shown.
func mask(s string, shown bool) string {
	if shown {
		return s
	}
	return strings.Repeat("•", utf8.RuneCountInString(s))
}

// renderField draws one labelled form row with an optional inline error.
func renderField(label, value string, focused bool, errMsg string) string {
	cursor := "  "
	style := metaStyle
	if focused {
		cursor = inputPromptStyle.Render("> ")
		style = selectedStyle
		value += "█"
	}
	line := fmt.Sprintf("%s%s %s", cursor, style.Render(fmt.Sprintf("%-16s", label)), normalStyle.Render(value))
	if errMsg != "" {
		line += "\n" + strings.Repeat(" ", 19) + errorStyle.Render(errMsg)
	}
	return line
}

// renderSelect draws a select row whose value cycles with left/right.
func renderSelect(label, value string, focused bool, errMsg string) string {
	shown := value
	if shown == "" {
		shown = inputPlaceholderStyle.Render("не выбрано")
	}
	if focused {
		shown = "‹ " + shown + " ›"
	}
	cursor := "  "
	style := metaStyle
	if focused {
		cursor = inputPromptStyle.Render("> ")
		style = selectedStyle
	}
	line := fmt.Sprintf("%s%s %s", cursor, style.Render(fmt.Sprintf("%-16s", label)), accentStyle.Render(shown))
	if errMsg != "" {
		line += "\n" + strings.Repeat(" ", 19) + errorStyle.Render(errMsg)
	}
	return line
}

// cycle moves through options from current by step, wrapping around.
func cycle(options []string, current string, step int) string {
	if len(options) == 0 {
		return current
	}
	idx := -1
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		if step > 0 {
			return options[0]
		}
		return options[len(options)-1]
	}
	return options[(idx+step+len(options))%len(options)]
}
