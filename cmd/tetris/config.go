package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in default configuration as YAML.

Save it to ~/.tetris/configs/tetris.yaml or ./configs/tetris.yaml to customize
reward weights, gravity, the bot's heuristic weights, rollout and tuner settings.
Any field can also be overridden with a TETRIS_* environment variable.

Examples:
  tetris config > ~/.tetris/configs/tetris.yaml
  TETRIS_PLAY_GRAVITY_TICKS=10 tetris play`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	_, err := cmd.OutOrStdout().Write(config.GetDefaultYAML())
	return err
}
