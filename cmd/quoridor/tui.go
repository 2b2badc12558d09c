package main

import (
	"io"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wricardo/quoridor/game/shell"
)

// tuiModel is a full-screen front-end over shell.Shell: it collects one
// command line, executes it and redraws the board.
type tuiModel struct {
	sh       *shell.Shell
	input    string
	message  string
	finished bool
}

func newTUIModel(cfg shell.Config) (tuiModel, error) {
	eng, err := shell.NewEngine(cfg.Rows, cfg.Cols, cfg.WallsPerPlayer)
	if err != nil {
		return tuiModel{}, err
	}
	return tuiModel{
		sh:      shell.New(eng, cfg.Render),
		message: shell.HelpText,
	}, nil
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.finished {
		return m, tea.Quit
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyBackspace:
		_, size := utf8.DecodeLastRuneInString(m.input)
		m.input = m.input[:len(m.input)-size]
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(key.Runes)
	}
	return m, nil
}

func (m tuiModel) submit() (tea.Model, tea.Cmd) {
	line := m.input
	m.input = ""

	resp := m.sh.Execute(line)
	if resp.Quit {
		return m, tea.Quit
	}

	switch {
	case resp.Applied:
		m.message = "ok: " + strings.TrimSpace(line)
	default:
		m.message = resp.Output
	}

	if over, done := m.sh.GameOver(); done {
		m.message = over
		m.finished = true
	}
	return m, nil
}

func (m tuiModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.sh.Board())
	sb.WriteString("\n\n")
	sb.WriteString(m.message)
	sb.WriteString("\n\n")
	if m.finished {
		sb.WriteString("Press any key to exit.\n")
		return sb.String()
	}
	sb.WriteString(m.sh.Prompt())
	sb.WriteString(m.input)
	sb.WriteString("\n\nenter: run   esc: quit\n")
	return sb.String()
}

func runTUI(in io.Reader, out io.Writer, cfg shell.Config) error {
	m, err := newTUIModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(in), tea.WithOutput(out)).Run()
	return err
}
