package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/bumpchain/internal/domain/commands"
	"github.com/rios0rios0/bumpchain/internal/domain/entities"
)

// GraphController handles the "graph" subcommand.
type GraphController struct {
	command commands.Graph
}

// NewGraphController creates a new GraphController.
func NewGraphController(command commands.Graph) *GraphController {
	return &GraphController{command: command}
}

// GetBind returns the Cobra command metadata for the graph controller.
func (it *GraphController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "graph [path]",
		Short: "Print the projects that depend on the selected ones",
		Long: `Expand every --select project into the tree of projects that
reference it, directly or transitively. With --minimize, chains already
contained in a larger chain are dropped.`,
	}
}

// AddFlags adds the graph-specific flags to the given Cobra command.
func (it *GraphController) AddFlags(cmd *cobra.Command) {
	addAnalyzeFlags(cmd)
	addSelectionFlags(cmd)
}

// Execute builds and prints the referrer forest.
func (it *GraphController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	format, err := readOutput(cmd)
	if err != nil {
		logger.Errorf("Graph failed: %v", err)
		return
	}
	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	result, err := it.command.Execute(ctx, settings, readGraphOptions(cmd, args))
	if err != nil {
		logger.Errorf("Graph failed: %v", err)
		return
	}
	for _, failure := range result.Report.Failures {
		logger.Warnf("%s could not be analyzed: %v", failure.Project, failure.Err)
	}
	if renderErr := RenderForest(cmd.OutOrStdout(), result.Roots, result.Stats, format); renderErr != nil {
		logger.Errorf("Failed to print graph: %v", renderErr)
	}
}
