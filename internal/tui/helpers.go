package tui

import (
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	placeholderImage = "https://placehold.co/800x600"
	snippetLen       = 100
)

var ruPrinter = message.NewPrinter(language.Russian)

// formatPrice renders a price with Russian digit grouping and the ruble sign.
func formatPrice(v float64) string {
	return ruPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(3))) + " ₽"
}

// createdAtLayouts are the timestamp shapes the listing service emits.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// formatDate renders a server timestamp as ДД.ММ.ГГГГ, or returns it unchanged
// when it cannot be parsed.
func formatDate(raw string) string {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("02.01.2006")
		}
	}
	return raw
}

// snippet cuts a description for list cards.
func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= snippetLen {
		return s + "..."
	}
	return string([]rune(s)[:snippetLen]) + "..."
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// imageURL returns the image reference or the placeholder when it is empty.
func imageURL(u string) string {
	if strings.TrimSpace(u) == "" {
		return placeholderImage
	}
	return u
}
