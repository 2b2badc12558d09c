// Command analyze prints quick, human-readable heuristics about the board
// configurations in the project's configs directory: dimensions, wall budget,
// how much of the board the walls can cover, and the opening position
// (shortest paths, legal pawn moves and legal wall placements).
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wricardo/quoridor/game/engine"
)

// Analysis summarizes one configuration.
type Analysis struct {
	Name            string
	Rows, Cols      int
	WallsPerPlayer  int
	SegmentCapacity int
	Coverage        float64
	P1Path, P2Path  int
	OpeningMoves    int
	OpeningWallsH   int
	OpeningWallsV   int
}

func analyze(config *engine.GameConfig) Analysis {
	state := engine.InitGameStateFromConfig(config)
	capacity := (config.Rows-1)*config.Cols + config.Rows*(config.Cols-1)

	a := Analysis{
		Name:            config.Name,
		Rows:            config.Rows,
		Cols:            config.Cols,
		WallsPerPlayer:  config.WallsPerPlayer,
		SegmentCapacity: capacity,
		P1Path:          engine.ShortestPath(state, engine.Player1),
		P2Path:          engine.ShortestPath(state, engine.Player2),
		OpeningMoves:    len(engine.LegalMoves(state, engine.Player1)),
		OpeningWallsH:   len(engine.LegalWalls(state, engine.Player1, engine.Horizontal)),
		OpeningWallsV:   len(engine.LegalWalls(state, engine.Player1, engine.Vertical)),
	}
	if capacity > 0 {
		a.Coverage = float64(4*config.WallsPerPlayer) / float64(capacity)
	}
	return a
}

func printAnalysis(w io.Writer, a Analysis) {
	fmt.Fprintf(w, "Name: %s\n", a.Name)
	fmt.Fprintf(w, "Board: %d x %d\n", a.Rows, a.Cols)
	fmt.Fprintf(w, "Walls per player: %d\n", a.WallsPerPlayer)
	fmt.Fprintf(w, "Segment capacity: %d (walls can cover %.0f%%)\n", a.SegmentCapacity, a.Coverage*100)
	fmt.Fprintf(w, "Opening shortest paths: P1=%d, P2=%d\n", a.P1Path, a.P2Path)
	fmt.Fprintf(w, "Opening options for P1: %d moves, %d horizontal walls, %d vertical walls\n",
		a.OpeningMoves, a.OpeningWallsH, a.OpeningWallsV)

	if a.Coverage > 1 {
		fmt.Fprintf(w, "⚠️  WARNING: wall budget exceeds what the board can hold\n")
	}
	if a.WallsPerPlayer == 0 {
		fmt.Fprintf(w, "⚠️  NOTE: no walls, the game is a pure race\n")
	}
}

func analyzeFile(w io.Writer, path string) error {
	config, err := engine.LoadGameConfig(path)
	if err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	printAnalysis(w, analyze(config))
	return nil
}

func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil || len(files) == 0 {
		fmt.Printf("No config files found in %s\n", configDir)
		os.Exit(1)
	}

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		if err := analyzeFile(os.Stdout, file); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}
