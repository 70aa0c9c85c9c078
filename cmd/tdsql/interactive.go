package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	bridge "github.com/Teradata/gosqlbridge"
	"github.com/Teradata/gosqlbridge/session"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#F37440")).
			Padding(0, 1)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// maxHistory bounds how many output lines the transcript keeps.
const maxHistory = 500

type interactiveModel struct {
	driver  bridge.Driver
	sess    *session.Session
	params  string
	input   textinput.Model
	history []string
	err     error
	busy    bool
}

type connectedMsg struct {
	sess *session.Session
	err  error
}

type executedMsg struct {
	lines []string
	err   error
}

func newInteractiveModel(d bridge.Driver, params string) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = `select * from dbc.dbcinfo`
	ti.Prompt = "sql> "
	ti.Width = 80
	ti.Focus()

	return &interactiveModel{
		driver: d,
		params: params,
		input:  ti,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.connect
}

func (m *interactiveModel) connect() tea.Msg {
	sess, err := session.Connect(m.driver, m.params)
	return connectedMsg{sess: sess, err: err}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.sess != nil {
				m.sess.Close()
			}
			return m, tea.Quit

		case "enter":
			if m.busy || m.sess == nil {
				return m, nil
			}
			line := strings.TrimSpace(m.input.Value())
			if line == "" {
				return m, nil
			}
			m.input.Reset()
			if line == `\q` || line == "quit" {
				m.sess.Close()
				return m, tea.Quit
			}
			m.busy = true
			m.append("sql> " + line)
			return m, m.execute(line)
		}

	case connectedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.sess = msg.sess
		m.append(helpStyle.Render("connected"))

	case executedMsg:
		m.busy = false
		if msg.err != nil {
			m.append(errorStyle.Render(msg.err.Error()))
		} else {
			for _, l := range msg.lines {
				m.append(l)
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) append(line string) {
	m.history = append(m.history, line)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
}

// execute runs one input line as a tea command. Lines starting with a
// backslash are meta-commands; everything else goes to the database.
func (m *interactiveModel) execute(line string) tea.Cmd {
	return func() tea.Msg {
		switch line {
		case `\commit`:
			return executedMsg{lines: []string{"committed"}, err: m.sess.Commit()}
		case `\rollback`:
			return executedMsg{lines: []string{"rolled back"}, err: m.sess.Rollback()}
		case `\autocommit on`:
			return executedMsg{lines: []string{"autocommit on"}, err: m.sess.SetAutocommit(true)}
		case `\autocommit off`:
			return executedMsg{lines: []string{"autocommit off"}, err: m.sess.SetAutocommit(false)}
		}
		if strings.HasPrefix(line, `\`) {
			return executedMsg{err: fmt.Errorf("unknown command %q", line)}
		}

		rows, err := m.sess.Execute(line, "")
		if err != nil {
			return executedMsg{err: err}
		}
		defer rows.Close()

		var lines []string
		for {
			meta, err := rows.Metadata()
			if err != nil {
				return executedMsg{lines: lines, err: err}
			}
			lines = append(lines, metaStyle.Render(
				fmt.Sprintf("%s, activity count %d", meta.ActivityName, meta.ActivityCount)))

			for {
				row, ok, err := rows.Fetch()
				if err != nil {
					return executedMsg{lines: lines, err: err}
				}
				if !ok {
					break
				}
				lines = append(lines, rowStyle.Render(row))
			}

			more, err := rows.NextResultSet()
			if err != nil {
				return executedMsg{lines: lines, err: err}
			}
			if !more {
				return executedMsg{lines: lines}
			}
		}
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("tdsql"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("ctrl+c quit"))
		return b.String()
	}
	if m.sess == nil {
		b.WriteString("Connecting...")
		return b.String()
	}

	for _, line := range m.history {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.busy {
		b.WriteString("executing...\n")
	} else {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(`\commit \rollback \autocommit on|off • \q quit`))

	return b.String()
}

func runInteractive(d bridge.Driver, params string) error {
	p := tea.NewProgram(newInteractiveModel(d, params), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
