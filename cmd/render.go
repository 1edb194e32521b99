package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"termchat/internal/app/chat"
	"termchat/internal/app/colors"
	"termchat/internal/app/protocol"
)

type localCommand int

const (
	cmdNone localCommand = iota
	cmdClear
	cmdQuit
)

// parseLocalCommand recognizes commands handled by the client without contacting the service.
func parseLocalCommand(line string) localCommand {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "/clear", "/c":
		return cmdClear
	case "/quit", "/exit", "/q":
		return cmdQuit
	default:
		return cmdNone
	}
}

// renderer prints events to the terminal. The theme colors are changed by the service.
type renderer struct {
	mu     sync.Mutex
	w      io.Writer
	theme  colors.Color
	bg     colors.Color
	styles map[colors.Color]lipgloss.Style
}

func newRenderer(w io.Writer) *renderer {
	return &renderer{
		w:      w,
		theme:  colors.ServerColor,
		styles: make(map[colors.Color]lipgloss.Style),
	}
}

func (r *renderer) nameStyle(c colors.Color) lipgloss.Style {
	style, ok := r.styles[c]
	if !ok {
		style = lipgloss.NewStyle().Foreground(c).Bold(true)
		r.styles[c] = style
	}
	return style
}

func (r *renderer) systemStyle() lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(r.theme).Italic(true)
	if r.bg != "" {
		style = style.Background(r.bg)
	}
	return style
}

func (r *renderer) prompt(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprint(r.w, text)
}

func (r *renderer) systemf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.systemLocked(fmt.Sprintf(format, args...))
}

func (r *renderer) systemLocked(text string) {
	fmt.Fprintln(r.w, r.systemStyle().Render("* "+text))
}

func (r *renderer) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprint(r.w, "\033[H\033[2J")
}

// render prints ev. It returns true when ev ends the connection.
func (r *renderer) render(ev chat.Event) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e := ev.(type) {
	case chat.Connected:
		r.systemLocked(fmt.Sprintf("Connected to #%s as %s", e.Identity.ChatName, e.Identity.Username))

	case chat.ChatMessage:
		fmt.Fprintf(r.w, "%s: %s\n", r.nameStyle(e.Color).Render(e.Username), e.Content)

	case protocol.UserJoined:
		r.systemLocked(e.Username + " joined")

	case protocol.UserLeft:
		r.systemLocked(e.Username + " left")

	case protocol.ServerError:
		r.systemLocked("Server error: " + e.Message)

	case protocol.AuthFailed:
		r.systemLocked("Authentication failed: " + e.Message)

	case protocol.Kicked:
		r.systemLocked("Kicked: " + e.Message)

	case protocol.ThemeColorChanged:
		r.theme = colors.Color(e.Color)

	case protocol.BackgroundColorChanged:
		r.bg = colors.Color(e.Color)

	case protocol.ChatCleared:
		fmt.Fprint(r.w, "\033[H\033[2J")

	case chat.Diagnostic:
		r.systemLocked("Unrecognized message: " + e.Raw)

	case chat.ConnectFailed:
		r.systemLocked("Connection failed: " + e.Reason)
		return true

	case chat.Disconnected:
		r.systemLocked("Disconnected: " + e.Reason)
		return true
	}

	return false
}
