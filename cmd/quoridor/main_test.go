package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wricardo/quoridor/game/shell"
)

func runCLI(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newCommand()
	cmd.Reader = strings.NewReader(input)
	cmd.Writer = &out
	err := cmd.Run(context.Background(), append([]string{"quoridor"}, args...))
	return out.String(), err
}

func TestCLI_PlaysToVictory(t *testing.T) {
	script := strings.Join([]string{
		"move 1 2",
		"move 3 2",
		"move 2 2",
		"move 1 2",
		"move 3 2",
		"move 0 2",
		"",
	}, "\n")

	out, err := runCLI(t, script, "--rows", "5", "--cols", "5", "--walls", "3", "--ascii")
	require.NoError(t, err)

	assert.NotContains(t, out, shell.SizePrompt, "explicit size should skip the prompt")
	assert.Contains(t, out, "Game over! Winner: P2")
	assert.Contains(t, out, "Walls: P1=3, P2=3")
}

func TestCLI_SizePrompt(t *testing.T) {
	out, err := runCLI(t, "6\nquit\n", "--ascii")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, shell.SizePrompt))
	assert.Contains(t, out, " 5 ", "expected a 6-row board with a row labelled 5")
	assert.Contains(t, out, "P1> ")
}

func TestCLI_Rejections(t *testing.T) {
	out, err := runCLI(t, "jump\nmove x\nmove 2 2\nquit\n", "--rows", "5", "--cols", "5")
	require.NoError(t, err)

	assert.Contains(t, out, shell.UnknownCmdText)
	assert.Contains(t, out, shell.ParseErrorText)
	assert.Contains(t, out, "Invalid: ")
}

func TestCLI_Config(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"tiny","description":"tiny","rows":3,"cols":4,"walls_per_player":1}`), 0644))

	out, err := runCLI(t, "quit\n", "--config", path, "--ascii")
	require.NoError(t, err)
	assert.Contains(t, out, "Walls: P1=1, P2=1")
	assert.NotContains(t, out, shell.SizePrompt)

	_, err = runCLI(t, "", "--config", "does-not-exist")
	assert.Error(t, err)

	_, err = runCLI(t, "", "--rows", "1")
	assert.Error(t, err, "a one-row board is invalid")
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeLine(t *testing.T, m tuiModel, line string) (tuiModel, tea.Cmd) {
	t.Helper()
	for i, word := range strings.Split(line, " ") {
		if i > 0 {
			next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
			m = next.(tuiModel)
		}
		next, _ := m.Update(keys(word))
		m = next.(tuiModel)
	}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(tuiModel), cmd
}

func newTestTUI(t *testing.T) tuiModel {
	t.Helper()
	cfg := shell.DefaultConfig()
	cfg.Rows, cfg.Cols, cfg.WallsPerPlayer = 5, 5, 3
	cfg.Render.ASCII = true
	m, err := newTUIModel(cfg)
	require.NoError(t, err)
	return m
}

func TestTUI_ExecutesCommands(t *testing.T) {
	m := newTestTUI(t)
	assert.Contains(t, m.View(), "P1> ")

	m, _ = typeLine(t, m, "wall h 0 0")
	assert.Equal(t, "ok: wall h 0 0", m.message)
	assert.Empty(t, m.input)
	assert.Contains(t, m.View(), "P2> ")
	assert.Contains(t, m.View(), "Walls: P1=2, P2=3")

	m, _ = typeLine(t, m, "move 0 0")
	assert.True(t, strings.HasPrefix(m.message, "Invalid: "), m.message)

	m, _ = typeLine(t, m, "dance")
	assert.Equal(t, shell.UnknownCmdText, m.message)
}

func TestTUI_Backspace(t *testing.T) {
	m := newTestTUI(t)
	next, _ := m.Update(keys("movex"))
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "move", next.(tuiModel).input)

	next, _ = next.Update(keys("é"))
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "move", next.(tuiModel).input)
	assert.True(t, utf8.ValidString(next.(tuiModel).input))

	empty := newTestTUI(t)
	next, _ = empty.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Empty(t, next.(tuiModel).input)
}

func TestTUI_GameOverAndQuit(t *testing.T) {
	m := newTestTUI(t)
	for _, line := range []string{"move 1 2", "move 3 2", "move 2 2", "move 1 2", "move 3 2"} {
		m, _ = typeLine(t, m, line)
	}
	m, cmd := typeLine(t, m, "move 0 2")
	assert.Nil(t, cmd)
	assert.True(t, m.finished)
	assert.Equal(t, "Game over! Winner: P2", m.message)
	assert.Contains(t, m.View(), "Press any key to exit.")

	_, cmd = m.Update(keys("x"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	fresh := newTestTUI(t)
	_, cmd = typeLine(t, fresh, "quit")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
