package tasks

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Header    lipgloss.Style
	Row       lipgloss.Style
	Selected  lipgloss.Style
	Index     lipgloss.Style
	Blank     lipgloss.Style
	Empty     lipgloss.Style
	EmptyHint lipgloss.Style
	Section   lipgloss.Style
	Notice    lipgloss.Style
	Warning   lipgloss.Style
	Help      lipgloss.Style
	Delete    lipgloss.Style
}

func NewStyles(theme Theme) Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		Subtitle:  lipgloss.NewStyle().Italic(true).Foreground(theme.AccentAlt),
		Header:    lipgloss.NewStyle().Foreground(theme.Muted),
		Row:       lipgloss.NewStyle().Foreground(theme.Text),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		Index:     lipgloss.NewStyle().Foreground(theme.Muted),
		Blank:     lipgloss.NewStyle().Faint(true).Italic(true),
		Empty:     lipgloss.NewStyle().Bold(true).Foreground(theme.Muted),
		EmptyHint: lipgloss.NewStyle().Faint(true),
		Section:   lipgloss.NewStyle().MarginTop(1),
		Notice:    lipgloss.NewStyle().Foreground(theme.Success),
		Warning:   lipgloss.NewStyle().Bold(true).Foreground(theme.Danger),
		Help:      lipgloss.NewStyle().Faint(true),
		Delete:    lipgloss.NewStyle().Foreground(theme.Danger),
	}
}
