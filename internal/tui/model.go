// Package tui is the interactive search screen: a query line, the session status, and the
// live-filtered task list.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rcliao/task-planner/internal/model"
	"github.com/rcliao/task-planner/internal/search"
)

// Options configures a Model.
type Options struct {
	CaseSensitive bool
	Units         model.Unit
	Logger        *slog.Logger
}

// results is shared between the model copies bubbletea passes around and the session
// observer, which rewrites it on every notification.
type results struct {
	visible []model.Task
	state   search.State
}

// Model is the bubbletea model for the search screen.
type Model struct {
	tasks  []model.Task
	sess   *search.Session
	res    *results
	unsub  func()
	units  model.Unit
	input  textinput.Model
	help   help.Model
	keys   keyMap
	cursor int
	width  int
	height int
}

// New builds the screen over a fixed task list.
func New(tasks []model.Task, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "text, /regex/ or @tag:name"
	ti.Prompt = "search: "
	ti.CharLimit = 200
	ti.Focus()

	units := opts.Units
	if units == "" {
		units = model.Minutes
	}

	sess := search.NewSession(opts.Logger)
	res := &results{}
	unsub := sess.Subscribe(func(st search.State) {
		res.state = st
		res.visible = search.FilterPattern(tasks, st.Pattern)
	})
	sess.UpdateFromInput("", opts.CaseSensitive)

	return Model{
		tasks: tasks,
		sess:  sess,
		res:   res,
		unsub: unsub,
		units: units,
		input: ti,
		help:  help.New(),
		keys:  newKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.unsub()
			return m, tea.Quit
		case key.Matches(msg, m.keys.ToggleCase):
			m.sess.ToggleCaseSensitivity()
			m.clampCursor()
			return m, nil
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.res.visible)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.input.SetValue("")
			m.sess.UpdateFromInput("", m.sess.CaseSensitive())
			m.cursor = 0
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.sess.UpdateFromInput(m.input.Value(), m.sess.CaseSensitive())
		m.cursor = 0
	}
	return m, cmd
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.res.visible) {
		m.cursor = len(m.res.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Visible returns the tasks currently shown.
func (m Model) Visible() []model.Task { return m.res.visible }

// Selected returns the task under the cursor.
func (m Model) Selected() (model.Task, bool) {
	if len(m.res.visible) == 0 {
		return model.Task{}, false
	}
	return m.res.visible[m.cursor], true
}

// Status returns the session status shown under the query line.
func (m Model) Status() search.Status { return m.res.state.Status }

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	caseLabel := "ignore case"
	if m.res.state.CaseSensitive {
		caseLabel = "match case"
	}
	fmt.Fprintf(&b, "%s  %s\n\n", titleStyle.Render("Tasks"),
		statusStyle.Render(fmt.Sprintf("%d of %d · %s", len(m.res.visible), len(m.tasks), caseLabel)))
	b.WriteString(m.input.View())
	b.WriteString("\n")

	st := m.res.state.Status
	if st.IsError() {
		b.WriteString(warnStyle.Render(st.Message))
	} else {
		b.WriteString(statusStyle.Render(st.Message))
	}
	b.WriteString("\n\n")

	rows := m.res.visible
	start, end := m.window(len(rows))
	for i := start; i < end; i++ {
		h := search.HighlightTask(rows[i], m.res.state.Pattern, mark)
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%s  %s  %s  %s\n", prefix, h.Title,
			tagStyle.Render("#")+h.Tag, h.DueDate, m.duration(rows[i]))
	}
	if len(rows) == 0 {
		b.WriteString(statusStyle.Render("  no matching tasks"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) duration(t model.Task) string {
	return model.FormatDuration(t.Duration, m.units)
}

// window returns the slice of rows that fits the terminal, keeping the cursor visible.
func (m Model) window(n int) (start, end int) {
	// title, blank, input, status, blank, blank, help
	const chrome = 7
	height := m.height - chrome
	if m.height == 0 || height >= n {
		return 0, n
	}
	if height < 1 {
		height = 1
	}
	start = m.cursor - height + 1
	if start < 0 {
		start = 0
	}
	return start, start + height
}

// Run starts the screen on the terminal and blocks until the user quits.
func Run(tasks []model.Task, opts Options) error {
	_, err := tea.NewProgram(New(tasks, opts), tea.WithAltScreen()).Run()
	return err
}
