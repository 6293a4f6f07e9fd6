package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a game would start with, after the config file
search and the difficulty preset are applied. The output is valid YAML and
can be saved as a starting point for a custom config:

  snake config --difficulty hard > ~/.snake/configs/snake.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, preset, err := loadGameConfig()
	if err != nil {
		return err
	}
	data, err := cfg.YAML()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "# %s\n", describeDifficulty(preset)); err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
