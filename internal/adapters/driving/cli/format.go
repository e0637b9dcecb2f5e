package cli

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// hexColor matches the colors a terminal swatch can render.
var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

const swatchGlyph = "■"

// swatch renders color as a colored square followed by its value when w
// is a terminal. Other writers and unparseable colors get the plain value.
func swatch(w io.Writer, color string) string {
	if color == "" || !hexColor.MatchString(color) || !isTerminal(w) {
		return color
	}
	block := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(swatchGlyph)
	return block + " " + color
}

// withSwatch appends the swatch for color to s, if there is a color.
func withSwatch(w io.Writer, s, color string) string {
	if color == "" {
		return s
	}
	return s + "  " + swatch(w, color)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func parseID(kind, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, arg)
	}
	return id, nil
}

func parseOffset(name, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid %s offset %q", name, arg)
	}
	return n, nil
}

func msDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}
