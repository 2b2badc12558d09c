// Package shell implements the line-oriented Quoridor console: a size prompt
// followed by a loop of move/wall commands against a single engine.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wricardo/quoridor/game/engine"
	"github.com/wricardo/quoridor/game/render"
)

const (
	SizePrompt      = "Enter board size 'n m' (rows cols, >=5 recommended; default 9 9): "
	HelpText        = "move r c  |  wall h r c  |  wall v r c  |  quit"
	ParseErrorText  = "Parse error. Try: move r c | wall h r c | wall v r c"
	UnknownCmdText  = "Unknown command"
	minSquareSize   = 5
	invalidPrefix   = "Invalid: "
	gameOverMessage = "Game over! Winner: %s"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrParse          = errors.New("parse error")
)

// CommandKind distinguishes game actions from shell control commands
type CommandKind int

const (
	CommandAction CommandKind = iota
	CommandHelp
	CommandQuit
)

// Command is one parsed input line
type Command struct {
	Kind   CommandKind
	Action engine.Action
}

// ParseCommand parses move r c, wall h|v r c, help and quit (case-insensitive).
// Extra trailing tokens are ignored.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrUnknownCommand
	}

	switch strings.ToLower(fields[0]) {
	case "quit":
		return Command{Kind: CommandQuit}, nil
	case "help":
		return Command{Kind: CommandHelp}, nil
	case "move":
		p, err := parsePosition(fields[1:])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandAction, Action: engine.MoveAction(p)}, nil
	case "wall":
		if len(fields) < 2 {
			return Command{}, ErrParse
		}
		o, err := engine.ParseOrientation(strings.ToLower(fields[1]))
		if err != nil {
			return Command{}, fmt.Errorf("%w: %v", ErrParse, err)
		}
		p, err := parsePosition(fields[2:])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandAction, Action: engine.WallAction(o, p)}, nil
	}
	return Command{}, ErrUnknownCommand
}

func parsePosition(fields []string) (engine.Position, error) {
	if len(fields) < 2 {
		return engine.Position{}, ErrParse
	}
	r, err := strconv.Atoi(fields[0])
	if err != nil {
		return engine.Position{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	c, err := strconv.Atoi(fields[1])
	if err != nil {
		return engine.Position{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return engine.Position{Row: r, Col: c}, nil
}

// ParseSize reads the answer to SizePrompt. A single number of at least 5
// gives a square board, two numbers give rows and cols when both are within
// the engine's limits; anything else keeps the defaults.
func ParseSize(line string, defRows, defCols int) (rows, cols int) {
	rows, cols = defRows, defCols
	fields := strings.Fields(line)

	switch {
	case len(fields) == 1:
		n, err := strconv.Atoi(fields[0])
		if err == nil && n >= minSquareSize && n <= engine.MaxBoardSize {
			return n, n
		}
	case len(fields) >= 2:
		r, errR := strconv.Atoi(fields[0])
		c, errC := strconv.Atoi(fields[1])
		if errR == nil && errC == nil && validSize(r) && validSize(c) {
			return r, c
		}
	}
	return rows, cols
}

func validSize(n int) bool {
	return n >= engine.MinBoardSize && n <= engine.MaxBoardSize
}

// Response is the outcome of executing one line
type Response struct {
	Output  string
	Applied bool
	Quit    bool
}

// Shell dispatches command lines against one engine
type Shell struct {
	eng  *engine.GameEngine
	opts render.Options
}

// New creates a shell over eng
func New(eng *engine.GameEngine, opts render.Options) *Shell {
	return &Shell{eng: eng, opts: opts}
}

// Engine returns the underlying engine
func (s *Shell) Engine() *engine.GameEngine {
	return s.eng
}

// Prompt returns the prompt for the player to move, e.g. "P1> "
func (s *Shell) Prompt() string {
	return fmt.Sprintf("%s> ", s.eng.CurrentPlayer())
}

// Board renders the current position
func (s *Shell) Board() string {
	return render.Render(s.eng.GetState(), s.opts)
}

// GameOver returns the end-of-game line once a pawn has reached its goal row
func (s *Shell) GameOver() (string, bool) {
	w, ok := s.eng.Winner()
	if !ok {
		return "", false
	}
	return fmt.Sprintf(gameOverMessage, w), true
}

// Execute runs one command line and returns the text to show
func (s *Shell) Execute(line string) Response {
	cmd, err := ParseCommand(line)
	switch {
	case errors.Is(err, ErrUnknownCommand):
		return Response{Output: UnknownCmdText}
	case err != nil:
		return Response{Output: ParseErrorText}
	}

	switch cmd.Kind {
	case CommandQuit:
		return Response{Quit: true}
	case CommandHelp:
		return Response{Output: HelpText}
	}

	if _, err := s.eng.Submit(cmd.Action); err != nil {
		return Response{Output: invalidPrefix + err.Error()}
	}
	return Response{Output: s.Board(), Applied: true}
}

// Config controls a console session
type Config struct {
	Rows, Cols     int
	WallsPerPlayer int
	AskSize        bool
	Render         render.Options
}

// DefaultConfig asks for the size and falls back to the classic board
func DefaultConfig() Config {
	return Config{
		Rows:           engine.DefaultRows,
		Cols:           engine.DefaultCols,
		WallsPerPlayer: engine.DefaultWallsPerPlayer,
		AskSize:        true,
	}
}

// NewEngine builds an engine for a rows x cols console game
func NewEngine(rows, cols, walls int) (*engine.GameEngine, error) {
	return engine.NewEngine(&engine.GameConfig{
		Name:           "console",
		Description:    fmt.Sprintf("%dx%d console game", rows, cols),
		Rows:           rows,
		Cols:           cols,
		WallsPerPlayer: walls,
	})
}

// Run plays one game reading commands from in and writing to out. It returns
// when the game ends, the player quits or in is exhausted.
func Run(in io.Reader, out io.Writer, cfg Config) error {
	scanner := bufio.NewScanner(in)
	rows, cols := cfg.Rows, cfg.Cols

	if cfg.AskSize {
		fmt.Fprint(out, SizePrompt)
		if scanner.Scan() {
			rows, cols = ParseSize(scanner.Text(), rows, cols)
		}
	}

	eng, err := NewEngine(rows, cols, cfg.WallsPerPlayer)
	if err != nil {
		return err
	}
	sh := New(eng, cfg.Render)
	fmt.Fprintln(out, sh.Board())

	for {
		if msg, over := sh.GameOver(); over {
			fmt.Fprintln(out, msg)
			return nil
		}

		fmt.Fprint(out, sh.Prompt())
		if !scanner.Scan() {
			return scanner.Err()
		}

		resp := sh.Execute(scanner.Text())
		if resp.Quit {
			return nil
		}
		fmt.Fprintln(out, resp.Output)
	}
}
