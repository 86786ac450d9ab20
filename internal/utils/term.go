package utils

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

const defaultTermWidth = 80

// TermWidth returns the current terminal width.
//
// In CI / tests there is no TTY attached to stderr, in which case the value of
// $COLUMNS or 80 is used.
func TermWidth() int {
	if c := os.Getenv("COLUMNS"); c != "" {
		if n, err := strconv.Atoi(c); err == nil && n > 0 {
			return n
		}
	}
	fd := int(os.Stderr.Fd())
	if !term.IsTerminal(fd) {
		return defaultTermWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultTermWidth
	}
	return w
}
