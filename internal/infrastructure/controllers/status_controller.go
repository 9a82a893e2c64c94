package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/bumpchain/internal/domain/commands"
	"github.com/rios0rios0/bumpchain/internal/domain/entities"
)

// StatusController handles the "status" subcommand.
type StatusController struct {
	command commands.Analyze
}

// NewStatusController creates a new StatusController.
func NewStatusController(command commands.Analyze) *StatusController {
	return &StatusController{command: command}
}

// GetBind returns the Cobra command metadata for the status controller.
func (it *StatusController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "status [path]",
		Short: "Show uncommitted reference and version changes per project",
		Long: `Discover every project of the repository containing [path] and
classify its uncommitted changes: package and project reference edits,
version property edits, or changes of unknown impact.

Projects with conflicting version edits are listed as failures while
the remaining projects are still analyzed.`,
	}
}

// AddFlags adds the status-specific flags to the given Cobra command.
func (it *StatusController) AddFlags(cmd *cobra.Command) {
	addAnalyzeFlags(cmd)
}

// Execute runs the analysis and prints the report.
func (it *StatusController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	format, err := readOutput(cmd)
	if err != nil {
		logger.Errorf("Status failed: %v", err)
		return
	}
	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	report, err := it.command.Execute(ctx, settings, readAnalyzeOptions(cmd, args))
	if err != nil {
		logger.Errorf("Status failed: %v", err)
		return
	}
	if renderErr := RenderStatus(cmd.OutOrStdout(), report, format); renderErr != nil {
		logger.Errorf("Failed to print status: %v", renderErr)
	}
}
