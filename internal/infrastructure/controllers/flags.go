package controllers

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/bumpchain/internal/domain/commands"
	"github.com/rios0rios0/bumpchain/internal/domain/entities"
)

// FlagBinder is implemented by controllers that register their own flags.
type FlagBinder interface {
	AddFlags(cmd *cobra.Command)
}

func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	return entities.LoadSettings(configPath)
}

func targetDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

func addAnalyzeFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("exclude", nil, "Exclude these projects from updates for this run")
	cmd.Flags().StringP("output", "o", OutputText, "Output format (text, yaml)")
}

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("select", nil, "Projects whose dependents are expanded")
	cmd.Flags().Bool("minimize", false, "Drop chains already covered by a larger chain")
}

func readAnalyzeOptions(cmd *cobra.Command, args []string) commands.AnalyzeOptions {
	exclude, _ := cmd.Flags().GetStringSlice("exclude")
	verbose, _ := cmd.Flags().GetBool("verbose")
	return commands.AnalyzeOptions{
		Dir:     targetDir(args),
		Exclude: exclude,
		Verbose: verbose,
	}
}

func readGraphOptions(cmd *cobra.Command, args []string) commands.GraphOptions {
	selected, _ := cmd.Flags().GetStringSlice("select")
	minimize, _ := cmd.Flags().GetBool("minimize")
	return commands.GraphOptions{
		AnalyzeOptions: readAnalyzeOptions(cmd, args),
		Select:         selected,
		Minimize:       minimize,
	}
}

func readOutput(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("output")
	if format == "" {
		format = OutputText
	}
	return format, ValidateOutput(format)
}
