package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ─── Color tokens ────────────────────────────────────────────────────────────

// Adaptive palette shared by every command's output.
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#a78bfa"}
	ColorText    = lipgloss.AdaptiveColor{Light: "#1f2937", Dark: "#e5e7eb"}
	ColorTextDim = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#9ca3af", Dark: "#6b7280"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#ca8a04", Dark: "#facc15"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
	ColorCoral   = lipgloss.AdaptiveColor{Light: "#e11d48", Dark: "#fb7185"}
)

// Icons used in headers and list rows.
const (
	IconDiamond = "◆"
	IconChevron = "›"
	IconKeep    = "✓"
	IconRemove  = "✗"
	IconDot     = "·"
)

// IsTerminal reports whether stdout is an interactive terminal.
// Styled output and TUIs are disabled when piped.
func IsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ─── Size formatting ─────────────────────────────────────────────────────────

// sizeUnits are binary units, largest first.
var sizeUnits = []struct {
	limit int64
	name  string
}{
	{1 << 40, "TB"},
	{1 << 30, "GB"},
	{1 << 20, "MB"},
	{1 << 10, "KB"},
}

// FormatSize renders a byte count as a short human-readable string.
// Negative values mean "size unknown".
func FormatSize(bytes int64) string {
	if bytes < 0 {
		return "unknown"
	}
	for _, u := range sizeUnits {
		if bytes >= u.limit {
			v := float64(bytes) / float64(u.limit)
			if v >= 100 {
				return fmt.Sprintf("%.0f %s", v, u.name)
			}
			return fmt.Sprintf("%.1f %s", v, u.name)
		}
	}
	return fmt.Sprintf("%d B", bytes)
}

// ─── Common styles ───────────────────────────────────────────────────────────

var (
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	StyleDim   = lipgloss.NewStyle().Foreground(ColorTextDim)
	StyleMuted = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleOK    = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleWarn  = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleErr   = lipgloss.NewStyle().Foreground(ColorDanger)
)
