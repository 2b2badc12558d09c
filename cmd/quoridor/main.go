// Command quoridor plays a two-player Quoridor game in the terminal.
//
// By default it asks for the board size and reads commands line by line:
//
//	move r c | wall h r c | wall v r c | help | quit
//
// With --tui the same commands drive a full-screen view.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/quoridor/game/engine"
	"github.com/wricardo/quoridor/game/render"
	"github.com/wricardo/quoridor/game/shell"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("quoridor failed")
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "quoridor",
		Usage: "play Quoridor in the terminal",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "rows",
				Value: engine.DefaultRows,
				Usage: "board rows (skips the size prompt)",
			},
			&cli.IntFlag{
				Name:  "cols",
				Value: engine.DefaultCols,
				Usage: "board columns (skips the size prompt)",
			},
			&cli.IntFlag{
				Name:  "walls",
				Value: engine.DefaultWallsPerPlayer,
				Usage: "walls per player",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "board configuration file or name under ./configs (overrides --rows, --cols, --walls)",
			},
			&cli.BoolFlag{
				Name:  "ascii",
				Usage: "draw the board with plain ASCII characters",
			},
			&cli.BoolFlag{
				Name:  "tui",
				Usage: "full-screen terminal interface",
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := shellConfig(cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("tui") {
		return runTUI(cmd.Reader, cmd.Writer, cfg)
	}
	return shell.Run(cmd.Reader, cmd.Writer, cfg)
}

// shellConfig turns flags into a console configuration. The size prompt is
// only shown when no dimension or config was given.
func shellConfig(cmd *cli.Command) (shell.Config, error) {
	cfg := shell.DefaultConfig()
	cfg.Render = render.Options{ASCII: cmd.Bool("ascii")}
	cfg.Rows = cmd.Int("rows")
	cfg.Cols = cmd.Int("cols")
	cfg.WallsPerPlayer = cmd.Int("walls")
	cfg.AskSize = !cmd.IsSet("rows") && !cmd.IsSet("cols") && !cmd.Bool("tui")

	if name := cmd.String("config"); name != "" {
		gc, err := loadConfig(name)
		if err != nil {
			return cfg, err
		}
		cfg.Rows, cfg.Cols, cfg.WallsPerPlayer = gc.Rows, gc.Cols, gc.WallsPerPlayer
		cfg.AskSize = false
	}

	if err := engine.ValidateGameConfig(&engine.GameConfig{
		Name:           "console",
		Description:    "console game",
		Rows:           cfg.Rows,
		Cols:           cfg.Cols,
		WallsPerPlayer: cfg.WallsPerPlayer,
	}); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadConfig accepts either a path to a JSON file or a config name.
func loadConfig(name string) (*engine.GameConfig, error) {
	if _, err := os.Stat(name); err == nil {
		gc, err := engine.LoadGameConfig(name)
		if err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", name, err)
		}
		return gc, nil
	}
	return engine.LoadConfigByName(name)
}
