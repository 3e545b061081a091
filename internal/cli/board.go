package cli

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/examplan/internal/cli/formatter"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/alexanderramin/examplan/internal/repository"
	"github.com/alexanderramin/examplan/internal/views"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// boardSource tags history events written from the board.
const boardSource = "board"

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Interactive month board for marking progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newBoardModel(cmd.Context(), app)
			_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// ── keys ─────────────────────────────────────────────────────────────────────

type boardKeyMap struct {
	Left, Right, Up, Down key.Binding
	PrevMonth, NextMonth  key.Binding
	Today                 key.Binding
	Low, Medium, High     key.Binding
	Undo                  key.Binding
	Help                  key.Binding
	Quit                  key.Binding
}

func defaultBoardKeys() boardKeyMap {
	return boardKeyMap{
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev week")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next week")),
		PrevMonth: key.NewBinding(key.WithKeys("p", "pgup"), key.WithHelp("p", "prev month")),
		NextMonth: key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n", "next month")),
		Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Low:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "done (low)")),
		Medium:    key.NewBinding(key.WithKeys("2", "enter", "c"), key.WithHelp("2/c", "done (medium)")),
		High:      key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "done (high)")),
		Undo:      key.NewBinding(key.WithKeys("u", "backspace"), key.WithHelp("u", "undo")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Medium, k.Undo, k.NextMonth, k.PrevMonth, k.Help, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.PrevMonth, k.NextMonth, k.Today},
		{k.Low, k.Medium, k.High, k.Undo},
		{k.Help, k.Quit},
	}
}

// ── messages ─────────────────────────────────────────────────────────────────

// boardSavedMsg reports the outcome of a complete or undo.
type boardSavedMsg struct {
	date civil.Date
	row  views.Row
	err  error
}

// ── model ────────────────────────────────────────────────────────────────────

type boardModel struct {
	ctx  context.Context
	app  *App
	keys boardKeyMap
	help help.Model

	first, last civil.Date
	today       civil.Date
	cursor      civil.Date
	cal         views.CalendarMonth

	saving bool
	notice string
	err    error
}

func newBoardModel(ctx context.Context, app *App) *boardModel {
	m := &boardModel{
		ctx:   ctx,
		app:   app,
		keys:  defaultBoardKeys(),
		help:  help.New(),
		today: app.Plan.Today(),
	}
	if plan := app.Plan.Plan(); len(plan) > 0 {
		m.first, m.last = plan[0].Date, plan[len(plan)-1].Date
	} else {
		m.first, m.last = m.today, m.today
	}
	m.moveTo(m.today)
	return m
}

func (m *boardModel) Init() tea.Cmd { return nil }

// moveTo clamps d to the plan window and refreshes the calendar when the
// month changes.
func (m *boardModel) moveTo(d civil.Date) {
	if d.Before(m.first) {
		d = m.first
	}
	if d.After(m.last) {
		d = m.last
	}
	changed := d.Year != m.cal.Year || d.Month != m.cal.Month
	m.cursor = d
	if changed {
		m.refresh()
	}
}

func (m *boardModel) refresh() {
	m.cal = m.app.Plan.Calendar(m.ctx, m.cursor.Year, m.cursor.Month)
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case boardSavedMsg:
		m.saving = false
		m.err = msg.err
		if msg.err == nil {
			m.notice = fmt.Sprintf("%s: %s", msg.date, msg.row.Status)
		} else {
			m.notice = ""
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Left):
		m.moveTo(m.cursor.AddDays(-1))
	case key.Matches(msg, m.keys.Right):
		m.moveTo(m.cursor.AddDays(1))
	case key.Matches(msg, m.keys.Up):
		m.moveTo(m.cursor.AddDays(-7))
	case key.Matches(msg, m.keys.Down):
		m.moveTo(m.cursor.AddDays(7))
	case key.Matches(msg, m.keys.PrevMonth):
		first := civil.Date{Year: m.cursor.Year, Month: m.cursor.Month, Day: 1}
		m.moveTo(first.AddDays(-1))
	case key.Matches(msg, m.keys.NextMonth):
		next := civil.Date{Year: m.cursor.Year, Month: m.cursor.Month, Day: 1}.AddDays(32)
		m.moveTo(civil.Date{Year: next.Year, Month: next.Month, Day: 1})
	case key.Matches(msg, m.keys.Today):
		m.moveTo(m.today)
	case key.Matches(msg, m.keys.Low):
		return m, m.complete(domain.ConfidenceLow)
	case key.Matches(msg, m.keys.Medium):
		return m, m.complete(domain.ConfidenceMedium)
	case key.Matches(msg, m.keys.High):
		return m, m.complete(domain.ConfidenceHigh)
	case key.Matches(msg, m.keys.Undo):
		return m, m.undo()
	}
	return m, nil
}

func (m *boardModel) complete(c domain.Confidence) tea.Cmd {
	progress := m.app.Progress
	return m.save(func(ctx context.Context, date civil.Date) (views.Row, error) {
		return progress.Complete(ctx, date, c)
	})
}

func (m *boardModel) undo() tea.Cmd {
	return m.save(m.app.Progress.Uncomplete)
}

// save runs op for the cursor date in a Cmd. Only one save is in flight at
// a time; keys pressed meanwhile are dropped.
func (m *boardModel) save(op func(ctx context.Context, date civil.Date) (views.Row, error)) tea.Cmd {
	if m.saving {
		return nil
	}
	m.saving = true
	m.err = nil
	m.notice = "saving…"
	ctx, date := repository.WithSource(m.ctx, boardSource), m.cursor
	return func() tea.Msg {
		row, err := op(ctx, date)
		return boardSavedMsg{date: date, row: row, err: err}
	}
}

// selected returns the calendar cell under the cursor.
func (m *boardModel) selected() (views.Cell, bool) {
	for _, week := range m.cal.Weeks {
		for _, c := range week {
			if c.Date == m.cursor {
				return c, true
			}
		}
	}
	return views.Cell{}, false
}

func (m *boardModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.CalendarGrid(m.cal, m.cursor))
	b.WriteString("\n")

	if c, ok := m.selected(); ok && c.Item != nil {
		fmt.Fprintf(&b, "%s  %s\n", formatter.Bold(formatter.HumanDate(c.Date)), formatter.StatusBadge(c.Status))
		fmt.Fprintf(&b, "%s %s\n", formatter.TypeBadge(c.Item.Type), c.Item.Title)
		if c.Record != nil {
			fmt.Fprintf(&b, "Confidence: %s\n", formatter.ConfidenceBadge(c.Record.Confidence))
		}
	} else {
		b.WriteString(formatter.Dim("No study day scheduled.") + "\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render(explain(m.err).Error()) + "\n")
	case m.notice != "":
		b.WriteString(formatter.Dim(m.notice) + "\n")
	default:
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
