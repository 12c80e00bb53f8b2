package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/prefs"
)

// Theme bundles the lipgloss styles for one color scheme.
type Theme struct {
	Name prefs.Theme

	App      lipgloss.Style
	Header   lipgloss.Style
	Tab      lipgloss.Style
	TabActed lipgloss.Style
	Status   lipgloss.Style
	Help     lipgloss.Style

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	ErrorBubble     lipgloss.Style
	Meta            lipgloss.Style
	Highlight       lipgloss.Style
	FocusHighlight  lipgloss.Style

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Positive lipgloss.Style
	Negative lipgloss.Style
	Banner   lipgloss.Style

	Unread lipgloss.Style
	Read   lipgloss.Style
}

// NewTheme builds the styles for the chosen scheme.
func NewTheme(name prefs.Theme) Theme {
	var (
		accent    = lipgloss.Color("35") // green, the crop color
		secondary = lipgloss.Color("178")
		danger    = lipgloss.Color("167")
		dim       lipgloss.Color
		fg        lipgloss.Color
	)
	if name == prefs.ThemeDark {
		dim = lipgloss.Color("243")
		fg = lipgloss.Color("252")
	} else {
		dim = lipgloss.Color("245")
		fg = lipgloss.Color("235")
	}

	return Theme{
		Name: name,

		App:      lipgloss.NewStyle().Padding(0, 1),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Tab:      lipgloss.NewStyle().Foreground(dim).Padding(0, 1),
		TabActed: lipgloss.NewStyle().Foreground(accent).Bold(true).Padding(0, 1).Underline(true),
		Status:   lipgloss.NewStyle().Foreground(dim),
		Help:     lipgloss.NewStyle().Foreground(dim),

		UserBubble: lipgloss.NewStyle().
			Foreground(fg).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		AssistantBubble: lipgloss.NewStyle().
			Foreground(fg).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dim).
			Padding(0, 1),
		ErrorBubble: lipgloss.NewStyle().
			Foreground(danger).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(danger).
			Padding(0, 1),
		Meta:           lipgloss.NewStyle().Foreground(dim).Italic(true),
		Highlight:      lipgloss.NewStyle().Background(secondary).Foreground(lipgloss.Color("16")),
		FocusHighlight: lipgloss.NewStyle().Background(accent).Foreground(lipgloss.Color("16")).Bold(true),

		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(fg),
		Label:    lipgloss.NewStyle().Foreground(dim),
		Value:    lipgloss.NewStyle().Foreground(fg),
		Positive: lipgloss.NewStyle().Foreground(accent),
		Negative: lipgloss.NewStyle().Foreground(danger),
		Banner:   lipgloss.NewStyle().Foreground(danger).Bold(true),

		Unread: lipgloss.NewStyle().Bold(true).Foreground(fg),
		Read:   lipgloss.NewStyle().Foreground(dim),
	}
}
