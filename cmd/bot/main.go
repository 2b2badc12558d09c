// Command bot plays Quoridor against the game server's REST API.
//
// It can control P1, P2 or both pawns of a session. While the other side is
// controlled elsewhere (a human in the browser, an MCP agent) it polls the
// session and answers each time the turn comes back.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/wricardo/quoridor/game/engine"
)

// PlayOptions controls one game.
type PlayOptions struct {
	Sides    map[engine.PlayerID]bool
	MaxMoves int
	Delay    time.Duration
	Poll     time.Duration
}

var errMoveLimit = errors.New("move limit reached")

// parseSides maps the -side flag to the pawns the bot controls.
func parseSides(side string) (map[engine.PlayerID]bool, error) {
	switch side {
	case "p1", "1":
		return map[engine.PlayerID]bool{engine.Player1: true}, nil
	case "p2", "2":
		return map[engine.PlayerID]bool{engine.Player2: true}, nil
	case "both":
		return map[engine.PlayerID]bool{engine.Player1: true, engine.Player2: true}, nil
	}
	return nil, fmt.Errorf("unknown side %q (use p1, p2 or both)", side)
}

// play submits strategy actions for the controlled sides until the game ends,
// the move limit is reached or ctx is cancelled. It returns the last state and
// the number of actions the bot submitted.
func play(ctx context.Context, client *Client, strategy Strategy, state *engine.GameState, opts PlayOptions) (*engine.GameState, int, error) {
	moves := 0
	for !engine.IsTerminal(state) {
		if err := ctx.Err(); err != nil {
			return state, moves, err
		}
		if opts.MaxMoves > 0 && moves >= opts.MaxMoves {
			return state, moves, errMoveLimit
		}

		if !opts.Sides[state.Turn] {
			time.Sleep(opts.Poll)
			next, err := client.GetState()
			if err != nil {
				return state, moves, err
			}
			state = next
			continue
		}

		action, ok := strategy.Next(state)
		if !ok {
			return state, moves, fmt.Errorf("no action available for %s", state.Turn)
		}

		result, err := client.Submit(action)
		if err != nil {
			return state, moves, err
		}
		moves++
		log.Debug().
			Str("player", result.Player).
			Str("action", action.String()).
			Int("move", result.GameState.MoveNumber).
			Msg("Played")

		state = result.GameState
		if opts.Delay > 0 {
			time.Sleep(opts.Delay)
		}
	}
	return state, moves, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	configID := flag.String("config", "", "Board configuration ID for a new session (default: server default)")
	continueSession := flag.String("continue", "", "Play an existing session by ID")
	side := flag.String("side", "both", "Pawns to control: p1, p2 or both")
	useWalls := flag.Bool("walls", true, "Allow the bot to place walls")
	reset := flag.Bool("reset", false, "Reset the session before playing")
	maxMoves := flag.Int("max-moves", 500, "Maximum actions the bot submits")
	delayMs := flag.Int("delay", 0, "Delay between actions in milliseconds")
	verbose := flag.Bool("v", false, "Log every action")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	sides, err := parseSides(*side)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid -side")
	}

	client := NewClient(*serverURL)
	var state *engine.GameState
	if *continueSession != "" {
		state, err = client.Resume(*continueSession)
	} else {
		state, err = client.CreateSession(*configID)
	}
	if err != nil {
		log.Fatal().Err(err).Str("url", *serverURL).Msg("Failed to start")
	}
	log.Info().Str("session", client.SessionID()).Int("rows", state.Rows).Int("cols", state.Cols).Msg("Playing")

	if *reset {
		if state, err = client.Reset(); err != nil {
			log.Fatal().Err(err).Msg("Failed to reset")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	final, moves, err := play(ctx, client, Strategy{UseWalls: *useWalls}, state, PlayOptions{
		Sides:    sides,
		MaxMoves: *maxMoves,
		Delay:    time.Duration(*delayMs) * time.Millisecond,
		Poll:     500 * time.Millisecond,
	})
	if err != nil {
		log.Error().Err(err).Str("session", client.SessionID()).Int("moves", moves).Msg("Stopped")
		os.Exit(1)
	}

	winner, _ := engine.Winner(final)
	log.Info().
		Str("session", client.SessionID()).
		Str("winner", winner.String()).
		Int("moves", moves).
		Int("p1_walls_left", final.P1.WallsLeft).
		Int("p2_walls_left", final.P2.WallsLeft).
		Msg("Game over")
}
