// Package tui is the interactive task screen: a text input to add tasks and a
// selectable list to remove them. It forwards every intent to a TaskStore and
// accepts no new intent while a write is pending.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bnema/task-list-cli/internal/adapters/render/tasks"
	"github.com/bnema/task-list-cli/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type TaskStore interface {
	Tasks() domain.TaskList
	Add(ctx context.Context, title string) error
	Remove(ctx context.Context, position int) error
}

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

type mutationKind int

const (
	mutationAdd mutationKind = iota
	mutationRemove
)

type mutationDoneMsg struct {
	kind mutationKind
	err  error
}

type Model struct {
	ctx    context.Context
	store  TaskStore
	theme  tasks.Theme
	styles tasks.Styles

	input   textinput.Model
	spinner spinner.Model
	focus   focusArea
	cursor  int
	pending bool

	notice    string
	noticeErr bool
}

func New(ctx context.Context, store TaskStore, theme tasks.Theme) Model {
	input := textinput.New()
	input.Placeholder = theme.Placeholder
	input.Prompt = "> "
	input.CharLimit = 256
	input.Width = 48
	input.Focus()

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
	)

	return Model{
		ctx:     ctx,
		store:   store,
		theme:   theme,
		styles:  tasks.NewStyles(theme),
		input:   input,
		spinner: s,
		focus:   focusInput,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mutationDoneMsg:
		return m.finishMutation(msg), nil
	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "shift+tab":
		return m.toggleFocus(), nil
	case "enter":
		if m.focus == focusInput {
			return m.submit()
		}
		return m, nil
	case "ctrl+d":
		// From the input, the first press only reveals the selection.
		if m.focus == focusInput {
			return m.toggleFocus(), nil
		}
		return m.removeSelected()
	}

	if m.focus == focusList {
		switch msg.String() {
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "d", "x", "delete", "backspace":
			return m.removeSelected()
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) toggleFocus() Model {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
		return m
	}

	m.focus = focusInput
	m.input.Focus()
	return m
}

func (m *Model) moveCursor(delta int) {
	length := len(m.store.Tasks())
	if length == 0 {
		m.cursor = 0
		return
	}

	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= length {
		m.cursor = length - 1
	}
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.pending {
		return m, nil
	}

	title := m.input.Value()
	m.pending = true
	m.notice = ""

	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return mutationDoneMsg{kind: mutationAdd, err: m.store.Add(m.ctx, title)}
	})
}

func (m Model) removeSelected() (tea.Model, tea.Cmd) {
	if m.pending || len(m.store.Tasks()) == 0 {
		return m, nil
	}

	position := m.cursor
	m.pending = true
	m.notice = ""

	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return mutationDoneMsg{kind: mutationRemove, err: m.store.Remove(m.ctx, position)}
	})
}

func (m Model) finishMutation(msg mutationDoneMsg) Model {
	m.pending = false

	if msg.err != nil {
		m.notice = describeError(msg.err)
		m.noticeErr = true
		m.moveCursor(0)
		return m
	}

	m.noticeErr = false
	switch msg.kind {
	case mutationAdd:
		m.input.Reset()
		m.notice = "Task added."
		m.cursor = len(m.store.Tasks()) - 1
	case mutationRemove:
		m.notice = "Task removed."
	}
	m.moveCursor(0)

	return m
}

func describeError(err error) string {
	var storageErr *domain.StorageError
	switch {
	case errors.Is(err, domain.ErrBlankTitle):
		return "Please type a task first."
	case errors.Is(err, domain.ErrPositionOutOfRange):
		return "That task no longer exists."
	case errors.As(err, &storageErr):
		return fmt.Sprintf("Could not save your tasks: %v", storageErr.Err)
	default:
		return err.Error()
	}
}

func (m Model) View() string {
	selected := tasks.NoSelection
	if m.focus == focusList {
		selected = m.cursor
	}

	status := ""
	switch {
	case m.pending:
		status = m.spinner.View() + " saving..."
	case m.notice != "" && m.noticeErr:
		status = m.styles.Warning.Render(m.notice)
	case m.notice != "":
		status = m.styles.Notice.Render(m.notice)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		tasks.RenderHeader(m.theme, m.styles),
		m.styles.Section.Render(m.input.View()),
		status,
		m.styles.Section.Render(tasks.RenderList(m.store.Tasks(), tasks.RenderOptions{Theme: m.theme, Selected: selected}, m.styles)),
		m.styles.Section.Render(m.styles.Help.Render(helpLine(m.focus, m.theme))),
	) + "\n"
}

func helpLine(focus focusArea, theme tasks.Theme) string {
	if focus == focusList {
		return fmt.Sprintf("↑/↓ select • d %s delete • tab type • q quit", theme.DeleteIcon)
	}
	return "enter add • tab select tasks • ctrl+d delete selected • esc quit"
}

// Run shows the screen until the user quits.
func Run(ctx context.Context, store TaskStore, theme tasks.Theme, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(
		New(ctx, store, theme),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	_, err := p.Run()
	return err
}
