// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bibliomine/bibliomine/internal/model"
)

var (
	// PrimaryColor is the main theme color (library blue).
	PrimaryColor = lipgloss.Color("#4A90D9")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent output.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	highPriorityStyle   = lipgloss.NewStyle().Bold(true).Foreground(ErrorColor)
	mediumPriorityStyle = lipgloss.NewStyle().Foreground(WarningColor)
	lowPriorityStyle    = lipgloss.NewStyle().Foreground(SubtleColor)
)

// FormatTitle formats a section title.
func FormatTitle(title string) string {
	return TitleStyle.Render("📚 " + title)
}

// FormatSuccess formats a success message.
func FormatSuccess(message string) string {
	return SuccessStyle.Render("✓ " + message)
}

// FormatWarning formats a warning message.
func FormatWarning(message string) string {
	return WarningStyle.Render("⚠ " + message)
}

// FormatError formats an error message.
func FormatError(message string) string {
	return ErrorStyle.Render("✗ " + message)
}

// FormatPriority colors an insight priority label.
func FormatPriority(p model.InsightPriority) string {
	switch p {
	case model.PriorityHigh:
		return highPriorityStyle.Render("HIGH")
	case model.PriorityMedium:
		return mediumPriorityStyle.Render("MEDIUM")
	default:
		return lowPriorityStyle.Render("LOW")
	}
}

// FormatStrength colors a rule strength label.
func FormatStrength(s model.RuleStrength) string {
	switch s {
	case model.StrengthStrong:
		return SuccessStyle.Render(string(s))
	case model.StrengthModerate:
		return WarningStyle.Render(string(s))
	default:
		return SubtleStyle.Render(string(s))
	}
}
