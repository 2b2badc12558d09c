// Package render draws a Quoridor position as multi-line text.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wricardo/quoridor/game/engine"
)

// Options controls the glyph set used by Render
type Options struct {
	// ASCII replaces the box-drawing glyphs with |, - and +
	ASCII bool
}

// CommandHelp is the command summary printed under every board
const CommandHelp = "Commands: move r c | wall h r c | wall v r c | help | quit"

type glyphs struct {
	vertical   string
	horizontal string
	junction   string
	empty      string
	turnP1     string
	turnP2     string
}

var (
	unicodeGlyphs = glyphs{vertical: "┃", horizontal: "━", junction: "╋", empty: "·", turnP1: "P1 ⒈", turnP2: "P2 ⒉"}
	asciiGlyphs   = glyphs{vertical: "|", horizontal: "-", junction: "+", empty: ".", turnP1: "P1 (1)", turnP2: "P2 (2)"}
)

const labelWidth = 4 // "%2d" plus two spaces

// CellWidth returns the width of one cell column for a board with cols columns
func CellWidth(cols int) int {
	digits := len(strconv.Itoa(max(0, cols-1)))
	return max(3, digits+1)
}

// Render returns the board, wall layout and footer for s
func Render(s *engine.GameState, opts Options) string {
	g := unicodeGlyphs
	if opts.ASCII {
		g = asciiGlyphs
	}

	cellW := CellWidth(s.Cols)
	hRun := strings.Repeat(g.horizontal, cellW)
	blank := strings.Repeat(" ", cellW)

	var sb strings.Builder

	sb.WriteString(strings.Repeat(" ", labelWidth))
	for c := 0; c < s.Cols; c++ {
		sb.WriteString(center(strconv.Itoa(c), cellW))
		if c < s.Cols-1 {
			sb.WriteString("  ")
		}
	}
	sb.WriteString("\n")

	for r := 0; r < s.Rows; r++ {
		fmt.Fprintf(&sb, "%2d  ", r)
		for c := 0; c < s.Cols; c++ {
			sb.WriteString(center(cellToken(s, engine.Position{Row: r, Col: c}, g), cellW))
			if c < s.Cols-1 {
				sb.WriteString(" ")
				if s.Walls.HasVertical(r, c) {
					sb.WriteString(g.vertical)
				} else {
					sb.WriteString(" ")
				}
			}
		}
		sb.WriteString("\n")

		if r == s.Rows-1 {
			continue
		}
		sb.WriteString(strings.Repeat(" ", labelWidth))
		for c := 0; c < s.Cols; c++ {
			left := s.Walls.HasHorizontal(r, c)
			if left {
				sb.WriteString(hRun)
			} else {
				sb.WriteString(blank)
			}
			if c < s.Cols-1 {
				sb.WriteString(" ")
				if left && s.Walls.HasHorizontal(r, c+1) {
					sb.WriteString(g.junction)
				} else {
					sb.WriteString(" ")
				}
			}
		}
		sb.WriteString("\n")
	}

	turn := g.turnP1
	if s.Turn == engine.Player2 {
		turn = g.turnP2
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Turn: %s   Walls: P1=%d, P2=%d\n", turn, s.P1.WallsLeft, s.P2.WallsLeft)
	sb.WriteString(CommandHelp)
	sb.WriteString("\n")
	return sb.String()
}

func cellToken(s *engine.GameState, p engine.Position, g glyphs) string {
	switch s.OccupantAt(p) {
	case engine.Player1:
		return "1"
	case engine.Player2:
		return "2"
	}
	return g.empty
}

func center(text string, width int) string {
	n := utf8.RuneCountInString(text)
	if n >= width {
		return text
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-n-left)
}
