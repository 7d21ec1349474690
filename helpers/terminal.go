package helpers

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

func noticeStyle(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Foreground(lipgloss.Color("6"))
}

func warnStyle(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Foreground(lipgloss.Color("3"))
}

func errorStyle(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
}

var colorEnabled = detectColorSupport()

// detectColorSupport only honours the environment; whether a given stream is
// a terminal is checked per write.
func detectColorSupport() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func SupportsColor() bool {
	return colorEnabled
}

func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// render styles text for w. Output that is not a terminal stays plain.
func render(w io.Writer, style func(*lipgloss.Renderer) lipgloss.Style, text string) string {
	if !colorEnabled || !IsTerminal(w) {
		return text
	}
	return style(lipgloss.NewRenderer(w)).Render(text)
}

// Notice prints a progress line such as "[-] Cloning ...".
func Notice(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, render(w, noticeStyle, "[-] "+fmt.Sprintf(format, args...)))
}

// Warn prints a line for best-effort actions the user should know about.
func Warn(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, render(w, warnStyle, "[!] "+fmt.Sprintf(format, args...)))
}

// PrintError prints a fatal error, normally to stderr.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, render(w, errorStyle, fmt.Sprintf("Error: %v", err)))
}
