package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shaun/quotewidget/internal/github"
	"github.com/shaun/quotewidget/internal/status"
	"github.com/shaun/quotewidget/internal/widget"
)

const (
	fieldToken = iota
	fieldRepo
	fieldPath
	fieldMessage
	fieldCount
)

var fieldLabels = [fieldCount]string{"Token", "Repo", "File", "Message"}

type Model struct {
	ctx    context.Context
	w      *widget.Widget
	width  int
	inputs [fieldCount]textinput.Model
	focus  int // -1 when no input has focus

	fetching bool
	pushes   int // pushes in flight
}

type (
	quoteDoneMsg struct{}
	copyDoneMsg  struct{}
	pushDoneMsg  struct{ form github.Request }
	refreshMsg   struct{}
)

func NewModel(ctx context.Context, w *widget.Widget) Model {
	m := Model{ctx: ctx, w: w, focus: -1, fetching: true}
	placeholders := [fieldCount]string{"ghp_...", "owner/repository", "quotes/quote.txt", "Commit message"}
	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[i]
		in.CharLimit = 256
		m.inputs[i] = in
	}
	m.inputs[fieldToken].EchoMode = textinput.EchoPassword
	m.inputs[fieldToken].EchoCharacter = '•'
	return m
}

// Init fetches the first quote.
func (m Model) Init() tea.Cmd {
	return fetchQuote(m.ctx, m.w)
}

func fetchQuote(ctx context.Context, w *widget.Widget) tea.Cmd {
	return func() tea.Msg {
		w.NewQuote(ctx)
		return quoteDoneMsg{}
	}
}

func (m *Model) newQuote() tea.Cmd {
	m.fetching = true
	return fetchQuote(m.ctx, m.w)
}

func (m Model) copyQuote() tea.Cmd {
	w := m.w
	return func() tea.Msg {
		_, _ = w.Copy()
		return copyDoneMsg{}
	}
}

func (m *Model) push() tea.Cmd {
	form := m.form()
	if _, _, err := form.Trimmed().Validate(); err == nil {
		m.pushes++
	}
	w, ctx := m.w, m.ctx
	return func() tea.Msg {
		return pushDoneMsg{form: w.Push(ctx, form)}
	}
}

func (m Model) form() github.Request {
	return github.Request{
		Token:   m.inputs[fieldToken].Value(),
		Repo:    m.inputs[fieldRepo].Value(),
		Path:    m.inputs[fieldPath].Value(),
		Message: m.inputs[fieldMessage].Value(),
	}
}

// refresh schedules a redraw for when the fallback quote or the toast is due
// to change on its own.
func (m Model) refresh() tea.Cmd {
	st := m.w.State()
	var next time.Duration
	for _, d := range []time.Duration{st.Pending, st.Toast.Remaining} {
		if d > 0 && (next == 0 || d < next) {
			next = d
		}
	}
	if next == 0 {
		return nil
	}
	return tea.Tick(next, func(time.Time) tea.Msg { return refreshMsg{} })
}

func (m *Model) setFocus(i int) tea.Cmd {
	if m.focus >= 0 {
		m.inputs[m.focus].Blur()
	}
	m.focus = i
	if i < 0 {
		return nil
	}
	return m.inputs[i].Focus()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case quoteDoneMsg:
		m.fetching = false
		return m, m.refresh()

	case copyDoneMsg, refreshMsg:
		return m, m.refresh()

	case pushDoneMsg:
		if m.pushes > 0 {
			m.pushes--
		}
		m.inputs[fieldMessage].SetValue(msg.form.Message)
		return m, m.refresh()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.focus >= 0 {
			return m.updateForm(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "n":
			return m, m.newQuote()
		case "c":
			return m, m.copyQuote()
		case "tab", "g":
			return m, m.setFocus(fieldToken)
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, m.setFocus(-1)
	case "tab", "down":
		return m, m.setFocus((m.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	case "enter":
		return m, m.push()
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) View() string {
	st := m.w.State()
	var b strings.Builder

	fmt.Fprintln(&b, titleStyle.Render("Random Quote"))
	fmt.Fprintln(&b, strings.Repeat("─", max(10, min(m.width, 60))))
	if m.fetching {
		fmt.Fprintln(&b, widget.LoadingText)
		fmt.Fprintln(&b)
	} else {
		fmt.Fprintln(&b, quoteStyle.Render(st.Display.Text))
		fmt.Fprintln(&b, authorStyle.Render(st.Display.Author))
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, titleStyle.Render("Push to GitHub"))
	for i, in := range m.inputs {
		label := labelStyle.Render(fieldLabels[i])
		if i == m.focus {
			label = focusedStyle.Render(labelStyle.Render("> " + fieldLabels[i]))
		}
		fmt.Fprintf(&b, "%s %s\n", label, in.View())
	}

	line := st.Status
	if m.pushes > 0 {
		line = status.Status{Text: widget.StatusPushing, Kind: status.Loading}
	}
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, statusStyle(line.Kind).Render(line.Text))

	if st.Toast.Visible {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, toastStyle.Render(st.Toast.Message))
	}

	fmt.Fprintln(&b)
	if m.focus >= 0 {
		fmt.Fprintln(&b, helpStyle.Render("tab/shift+tab move  enter push  esc leave form  ctrl+c quit"))
	} else {
		fmt.Fprintln(&b, helpStyle.Render("n new quote  c copy  tab GitHub form  q quit"))
	}
	return b.String()
}
