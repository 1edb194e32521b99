/*
Package colors assigns display colors to usernames.

Colors are handed out from a fixed, ordered palette in first-sighting order and never
change for a name once assigned. The reserved service name always gets the sentinel color
and never consumes a palette slot.
*/
package colors

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"termchat/internal/app/user"
)

// Color is a hex terminal color usable directly as a lipgloss style color.
type Color = lipgloss.Color

// ServerColor is the sentinel color for messages from the reserved service name.
const ServerColor Color = "#87CEEB"

// DefaultPalette is the cycle used for user names: red, green, yellow, magenta, cyan,
// then the bright variants of red, yellow, magenta and cyan.
var DefaultPalette = []Color{
	"#FF0000",
	"#00FF00",
	"#FFFF00",
	"#FF00FF",
	"#00FFFF",
	"#FF5555",
	"#FFFF55",
	"#FF55FF",
	"#55FFFF",
}

// Table maps normalized usernames to assigned colors. It is safe for concurrent use.
type Table struct {
	palette  []Color
	assigned map[string]Color
	next     int
	mu       sync.Mutex
}

// NewTable creates a Table over palette. An empty palette falls back to DefaultPalette.
// The palette is copied so later changes by the caller have no effect.
func NewTable(palette ...Color) *Table {
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	return &Table{
		palette:  append([]Color(nil), palette...),
		assigned: make(map[string]Color),
	}
}

// ColorFor returns the color for username, assigning the next palette color on first sighting.
func (t *Table) ColorFor(username string) Color {
	if user.IsReserved(username) {
		return ServerColor
	}

	key := user.NormalizeName(username)

	t.mu.Lock()
	defer t.mu.Unlock()

	if color, ok := t.assigned[key]; ok {
		return color
	}

	color := t.palette[t.next%len(t.palette)]
	t.assigned[key] = color
	t.next++

	return color
}

// Len returns the number of names that have been assigned a palette color.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.assigned)
}
