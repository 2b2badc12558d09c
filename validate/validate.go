// Command validate checks the board configuration JSON files in a directory
// (default ../configs). For each file it checks:
//   - JSON structure, unknown fields and required fields
//   - board dimensions and wall budget against the engine limits
//   - that the config name matches the file name it is loaded by
//   - the opening position: both pawns placed, each with a path to its goal row
//
// It exits with a non-zero status if any file is invalid.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/quoridor/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
	Info     []string
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single configuration file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.GameConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.fail("%v", err)
		return result
	}

	id := strings.TrimSuffix(result.File, ".json")
	if config.Name != id {
		result.Warnings = append(result.Warnings, fmt.Sprintf("name %q differs from config ID %q", config.Name, id))
	}

	slots := segmentCapacity(config.Rows, config.Cols) / 2
	if combined := 2 * config.WallsPerPlayer; combined > slots {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("combined wall budget of %d exceeds the %d wall slots on the board", combined, slots))
	}

	state := engine.InitGameStateFromConfig(&config)
	if err := engine.CheckState(state); err != nil {
		result.fail("Opening position is invalid: %v", err)
		return result
	}

	p1 := engine.ShortestPath(state, engine.Player1)
	p2 := engine.ShortestPath(state, engine.Player2)

	result.Info = append(result.Info,
		fmt.Sprintf("Name: %s", config.Name),
		fmt.Sprintf("Board: %dx%d", config.Rows, config.Cols),
		fmt.Sprintf("Walls per player: %d", config.WallsPerPlayer),
		fmt.Sprintf("Opening: P1 at %s, P2 at %s", state.P1.Position, state.P2.Position),
		fmt.Sprintf("Shortest paths: P1=%d, P2=%d", p1, p2),
	)
	return result
}

// segmentCapacity counts the wall segments a board can hold: one per pair of
// orthogonally adjacent cells.
func segmentCapacity(rows, cols int) int {
	return (rows-1)*cols + rows*(cols-1)
}

// report prints every result and reports whether all were valid.
func report(w io.Writer, results []ValidationResult) bool {
	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Info {
				fmt.Fprintln(w, "  ✓ "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Fprintln(w, "  ❌ "+err)
			}
		}
		for _, warning := range result.Warnings {
			fmt.Fprintln(w, "  ⚠️  "+warning)
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All configurations are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some configurations have errors")
	}
	return allValid
}

func validateDir(dir string) ([]ValidationResult, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no config files in %s", dir)
	}

	results := make([]ValidationResult, 0, len(files))
	for _, file := range files {
		results = append(results, validateConfig(file))
	}
	return results, nil
}

func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	results, err := validateDir(configDir)
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	if !report(os.Stdout, results) {
		os.Exit(1)
	}
}
