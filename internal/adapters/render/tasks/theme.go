package tasks

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bnema/task-list-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Theme only changes how the list looks. Every theme renders the same tasks
// in the same order.
type Theme struct {
	Name         string
	Title        string
	Subtitle     string
	Icon         string
	DeleteIcon   string
	Placeholder  string
	EmptyIcon    string
	EmptyMessage string
	EmptyHint    string

	Accent    lipgloss.Color
	AccentAlt lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Danger    lipgloss.Color
	Success   lipgloss.Color
}

var themes = map[string]Theme{
	"aurora": {
		Name:         "aurora",
		Title:        "✨ My Tasks ✨",
		Subtitle:     "Organize your day in style",
		Icon:         "📝",
		DeleteIcon:   "🗑️",
		Placeholder:  "✍️ Type a new task...",
		EmptyIcon:    "🎯",
		EmptyMessage: "No tasks yet!",
		EmptyHint:    "Add your first task above",
		Accent:       lipgloss.Color("#667eea"),
		AccentAlt:    lipgloss.Color("#764ba2"),
		Text:         lipgloss.Color("#374151"),
		Muted:        lipgloss.Color("#9ca3af"),
		Danger:       lipgloss.Color("#ef4444"),
		Success:      lipgloss.Color("#16a34a"),
	},
	"paper": {
		Name:         "paper",
		Title:        "Tasks",
		Subtitle:     "One thing at a time",
		Icon:         "•",
		DeleteIcon:   "x",
		Placeholder:  "New task",
		EmptyIcon:    "○",
		EmptyMessage: "Nothing to do.",
		EmptyHint:    "Type a task and press enter",
		Accent:       lipgloss.Color("#1f2937"),
		AccentAlt:    lipgloss.Color("#6b7280"),
		Text:         lipgloss.Color("#111827"),
		Muted:        lipgloss.Color("#6b7280"),
		Danger:       lipgloss.Color("#b91c1c"),
		Success:      lipgloss.Color("#15803d"),
	},
	"midnight": {
		Name:         "midnight",
		Title:        "🌙 Tonight",
		Subtitle:     "Wind down, plan tomorrow",
		Icon:         "◆",
		DeleteIcon:   "✕",
		Placeholder:  "Add a task for later...",
		EmptyIcon:    "☾",
		EmptyMessage: "All clear for tonight",
		EmptyHint:    "New tasks show up here",
		Accent:       lipgloss.Color("#a78bfa"),
		AccentAlt:    lipgloss.Color("#38bdf8"),
		Text:         lipgloss.Color("#e5e7eb"),
		Muted:        lipgloss.Color("#64748b"),
		Danger:       lipgloss.Color("#f87171"),
		Success:      lipgloss.Color("#4ade80"),
	},
}

func LookupTheme(name string) (Theme, error) {
	theme, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Theme{}, fmt.Errorf("%w %q (available: %s)", domain.ErrUnknownTheme, name, strings.Join(ThemeNames(), ", "))
	}

	return theme, nil
}

func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
