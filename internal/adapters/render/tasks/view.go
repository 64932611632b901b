package tasks

import (
	"fmt"

	"github.com/bnema/task-list-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const NoSelection = -1

type RenderOptions struct {
	Theme Theme
	// Selected highlights the row at this 0-based position. NoSelection
	// highlights nothing.
	Selected int
}

func DefaultRenderOptions(theme Theme) RenderOptions {
	return RenderOptions{Theme: theme, Selected: NoSelection}
}

func renderView(list domain.TaskList, opts RenderOptions, s Styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		RenderHeader(opts.Theme, s),
		s.Header.Render(fmt.Sprintf("tasks: %d", len(list))),
		s.Section.Render(RenderList(list, opts, s)),
	)
}

func RenderHeader(theme Theme, s Styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(theme.Title),
		s.Subtitle.Render(theme.Subtitle),
	)
}

// RenderList draws the numbered rows, or the theme's empty state. Row numbers
// are 1-based, matching the argument of `tl rm`.
func RenderList(list domain.TaskList, opts RenderOptions, s Styles) string {
	if len(list) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			s.Empty.Render(opts.Theme.EmptyIcon+" "+opts.Theme.EmptyMessage),
			s.EmptyHint.Render(opts.Theme.EmptyHint),
		)
	}

	width := len(fmt.Sprintf("%d", len(list)))
	rows := make([]string, 0, len(list))
	for i, task := range list {
		rows = append(rows, renderRow(i, task, width, opts, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderRow(position int, task domain.Task, width int, opts RenderOptions, s Styles) string {
	marker := "  "
	titleStyle := s.Row
	if position == opts.Selected {
		marker = "> "
		titleStyle = s.Selected
	}

	title := titleStyle.Render(sanitizeForTerminal(string(task)))
	if task == "" {
		title = s.Blank.Render("(blank)")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		marker,
		s.Index.Render(fmt.Sprintf("%*d.", width, position+1)),
		" ",
		opts.Theme.Icon,
		" ",
		title,
	)
}
