package session

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Input box layout. Heights are in pixels for a box with 16px vertical padding.
const (
	BaseHeight = 56
	LineHeight = 24
	MaxLines   = 4
	MaxHeight  = BaseHeight + LineHeight*(MaxLines-1)
)

// InputLines is the number of visible rows the input needs for text wrapped at width
// columns, between 1 and MaxLines. A width of zero or less disables wrapping.
func InputLines(text string, width int) int {
	lines := 0
	for _, line := range strings.Split(text, "\n") {
		w := runewidth.StringWidth(line)
		if width <= 0 || w <= width {
			lines++
		} else {
			lines += (w + width - 1) / width
		}
		if lines >= MaxLines {
			return MaxLines
		}
	}
	if lines < 1 {
		return 1
	}
	return lines
}

// InputHeight is InputLines expressed in pixels, clamped to [BaseHeight, MaxHeight].
func InputHeight(text string, width int) int {
	return BaseHeight + LineHeight*(InputLines(text, width)-1)
}
