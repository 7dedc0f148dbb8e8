package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/drift-snake/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective rules as YAML",
	Long: `Print the rules after applying --config and --difficulty.
The output is a valid config file and can be saved to ~/.snake/configs/snake.yaml.

Examples:
  snake config
  snake config --difficulty hard > ~/.snake/configs/snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) {
	rules, err := loadRules()
	if err != nil {
		fail("%v", err)
	}
	data, err := config.Encode(rules)
	if err != nil {
		fail("%v", err)
	}
	os.Stdout.Write(data)
}
