// Package tuistyles holds the lipgloss palette shared by the TUI packages.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/inmocalc/internal/domain"
)

// Colors
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#1D4E89", Dark: "#7AB8F5"}
	ColorAccent  = lipgloss.AdaptiveColor{Light: "#B5651D", Dark: "#F2A65A"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#81C784"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#EF9A9A"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#757575", Dark: "#9E9E9E"}
	ColorBorder  = lipgloss.AdaptiveColor{Light: "#BDBDBD", Dark: "#5C5C5C"}
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	LabelStyle = lipgloss.NewStyle().
			Width(22).
			Foreground(ColorMuted)

	FocusedLabelStyle = LabelStyle.
				Foreground(ColorAccent).
				Bold(true)

	MetricLabelStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle    = lipgloss.NewStyle().Bold(true)
	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDanger).
			Padding(0, 1)
)

// Tone colours a metric: good news, bad news or neither.
type Tone int

const (
	ToneNeutral Tone = iota
	TonePositive
	ToneNegative
)

// ToneStyle returns the value style for a tone.
func ToneStyle(t Tone) lipgloss.Style {
	switch t {
	case TonePositive:
		return MetricValueStyle.Inherit(MetricPositiveStyle)
	case ToneNegative:
		return MetricValueStyle.Inherit(MetricNegativeStyle)
	default:
		return MetricValueStyle
	}
}

// FormatCurrency renders a whole-euro amount.
func FormatCurrency(d decimal.Decimal) string {
	return d.Round(domain.CurrencyPlaces).StringFixed(domain.CurrencyPlaces) + " EUR"
}

// FormatPercent renders a percentage with one decimal place.
func FormatPercent(d decimal.Decimal) string {
	return d.Round(domain.PercentPlaces).StringFixed(domain.PercentPlaces) + "%"
}
