// tetris is a deterministic falling-block game for the terminal, with
// headless rollouts and weight tuning for its heuristic agent.
//
// Usage:
//
//	tetris list              - List game modes
//	tetris play [mode]       - Play (tetris or tetris_bot)
//	tetris menu              - Start menu to pick a mode interactively
//	tetris rollout           - Run headless episodes and summarize them
//	tetris tune              - Tune heuristic weights with CMA-ES
//	tetris serve             - Start SSH server for remote play
//	tetris scores [mode]     - Show high scores
//	tetris config            - Print the default configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.tetris/scores.db)
//	--config <path>     - Custom config YAML
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	tetrisgame "github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - a deterministic falling-block game for your terminal",
	Long: `Tetris runs a deterministic 20x10 falling-block engine. Play it in the
terminal, watch the heuristic bot, evaluate policies over many seeded episodes,
or tune the bot's weights.

Available commands:
  list     - Show game modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  rollout  - Headless episodes with summary statistics
  tune     - CMA-ES search over heuristic weights
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Print the default configuration

Examples:
  tetris play
  tetris play tetris_bot --difficulty hard
  tetris rollout --policy heuristic --episodes 200 --csv out.csv
  tetris tune --evals 100 --out tuned.yaml
  tetris serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(rolloutCmd)
	rootCmd.AddCommand(tuneCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger creates the process logger at the level given by --log-level.
func newLogger(prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// loadConfig loads the config file, applies the difficulty preset and
// installs it for games created through the registry.
func loadConfig() (config.TetrisConfig, error) {
	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, config.DifficultyPreset(flagDifficulty))
	tetrisgame.SetConfig(cfg)
	return cfg, nil
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
