package prepenv

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fanimeengine/prepenv/pkg/errors"
	"github.com/fanimeengine/prepenv/pkg/injector"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// isTerminal reports whether stdout is an interactive terminal
func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// initOutputStyling turns pterm colors off when output is piped
func initOutputStyling() {
	if !isTerminal() {
		pterm.DisableColor()
	}
}

// formatBold returns the string formatted as bold using pterm
func formatBold(s string) string {
	return pterm.Bold.Sprint(s)
}

// statusMark renders the one-character marker for a result
func statusMark(status injector.Status) string {
	switch status {
	case injector.StatusWritten, injector.StatusCurrent:
		return pterm.FgGreen.Sprint("✓")
	case injector.StatusPlanned:
		return pterm.FgCyan.Sprint("~")
	case injector.StatusStale, injector.StatusMissing:
		return pterm.FgYellow.Sprint("!")
	default:
		return pterm.FgRed.Sprint("✗")
	}
}

// FormatError renders an error for the terminal, followed by its details
// sorted by key.
func FormatError(err error) string {
	var b strings.Builder
	b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", err)))

	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("\n")
		b.WriteString(detailStyle.Render(fmt.Sprintf("  %s: %v", k, details[k])))
	}
	return b.String()
}
