package main

import (
	"fmt"
	"io"
)

// ANSI colors for plain command output (runs outside the TUI).
const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiAqua  = "\033[38;2;94;234;212m"  // #5eead4
	ansiTeal  = "\033[38;2;45;160;150m"  // #2da096
	ansiGreen = "\033[38;2;74;222;128m"  // #4ade80
	ansiRed   = "\033[38;2;248;113;113m" // #f87171
)

// printLogo prints the spaced wordmark in alternating aqua and teal.
func printLogo(w io.Writer) {
	letters := []rune("НЕДВИЖИМОСТЬ")
	colors := [2]string{ansiAqua, ansiTeal}
	fmt.Fprint(w, "\n  ")
	for i, ch := range letters {
		fmt.Fprintf(w, "%s%s%c%s", colors[i%2], ansiBold, ch, ansiReset)
		if i < len(letters)-1 {
			fmt.Fprint(w, " ")
		}
	}
	fmt.Fprintln(w)
}

func printSuccess(w io.Writer, msg string) {
	fmt.Fprintf(w, "\n  %s%s✓%s %s\n\n", ansiGreen, ansiBold, ansiReset, msg)
}

func printFailure(w io.Writer, msg string) {
	fmt.Fprintf(w, "  %s✗%s %s\n", ansiRed, ansiReset, msg)
}
