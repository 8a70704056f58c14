// Package style provides terminal status styling for user-facing
// messages. Styling is disabled automatically when stderr is not a
// terminal so piped output stays plain.
package style

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Status classifies a user-facing message.
type Status string

const (
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
	StatusInfo    Status = "info"
)

func init() {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		pterm.DisableColor()
	}
}

// StatusStyle returns the pterm style for a status.
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusSuccess:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case StatusWarning:
		return pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	case StatusError:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgCyan)
	}
}

// indicator glyphs for each status
var indicators = map[Status]string{
	StatusSuccess: "✓",
	StatusWarning: "!",
	StatusError:   "✗",
	StatusInfo:    "•",
}

// Message renders a status line with its indicator glyph.
func Message(status Status, format string, args ...interface{}) string {
	glyph := indicators[status]
	if glyph == "" {
		glyph = indicators[StatusInfo]
	}
	return fmt.Sprintf("%s %s", StatusStyle(status).Sprint(glyph), fmt.Sprintf(format, args...))
}

// Success renders a success line.
func Success(format string, args ...interface{}) string {
	return Message(StatusSuccess, format, args...)
}

// Warning renders a warning line.
func Warning(format string, args ...interface{}) string {
	return Message(StatusWarning, format, args...)
}

// Error renders an error line.
func Error(format string, args ...interface{}) string {
	return Message(StatusError, format, args...)
}

// Path styles a filesystem path inside a message.
func Path(p string) string {
	return pterm.NewStyle(pterm.FgCyan).Sprint(p)
}
