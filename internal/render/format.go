package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// PadRight pads str with spaces to the given display width
func PadRight(str string, width int) string {
	w := runewidth.StringWidth(str)
	if w < width {
		return str + strings.Repeat(" ", width-w)
	}
	return str
}

// Excerpt collapses whitespace in s and truncates it to the given display width
func Excerpt(s string, width int) string {
	return runewidth.Truncate(strings.Join(strings.Fields(s), " "), width, "…")
}
