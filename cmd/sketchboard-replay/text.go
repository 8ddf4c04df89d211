package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// runeWidth returns the display width of r. Control and combining
// characters take no columns.
func runeWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 0 {
		return 0
	}
	return w
}

// truncateToWidth cuts s so it fits in maxWidth columns without splitting a rune
func truncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	width := 0
	for i, r := range s {
		rw := runeWidth(r)
		if width+rw > maxWidth {
			return s[:i]
		}
		width += rw
	}
	return s
}

// drawText writes s at row y starting from column x, clipped to the screen width
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	cols, _ := screen.Size()
	for _, r := range truncateToWidth(s, cols-x) {
		screen.SetContent(x, y, r, nil, style)
		x += runeWidth(r)
	}
}
