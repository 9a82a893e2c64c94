package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/bumpchain/internal/domain/commands"
	"github.com/rios0rios0/bumpchain/internal/domain/entities"
)

// BumpController handles the "bump" subcommand.
type BumpController struct {
	command commands.Bump
}

// NewBumpController creates a new BumpController.
func NewBumpController(command commands.Bump) *BumpController {
	return &BumpController{command: command}
}

// GetBind returns the Cobra command metadata for the bump controller.
func (it *BumpController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "bump [path]",
		Short: "Bump selected projects and propagate to their dependents",
		Long: `Assign a version to each --set project, either a segment name
(major, minor, patch, revision) or an explicit version, then bump every
dependent project once all selected projects have a version.

Examples:
  bumpchain bump --set Core=minor
  bumpchain bump --set Core=2.0.0 --set Data=patch --exclude Legacy
  bumpchain bump --set Core=minor --dry-run`,
	}
}

// AddFlags adds the bump-specific flags to the given Cobra command.
func (it *BumpController) AddFlags(cmd *cobra.Command) {
	addAnalyzeFlags(cmd)
	addSelectionFlags(cmd)
	cmd.Flags().StringArray("set", nil, "Project=segment or Project=version, repeatable")
}

// Execute parses the assignments, runs the bump and prints the plan.
func (it *BumpController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	format, err := readOutput(cmd)
	if err != nil {
		logger.Errorf("Bump failed: %v", err)
		return
	}
	rawAssignments, _ := cmd.Flags().GetStringArray("set")
	assignments := make([]commands.Assignment, 0, len(rawAssignments))
	for _, raw := range rawAssignments {
		assignment, parseErr := commands.ParseAssignment(raw)
		if parseErr != nil {
			logger.Errorf("Bump failed: %v", parseErr)
			return
		}
		assignments = append(assignments, assignment)
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	result, err := it.command.Execute(ctx, settings, commands.BumpOptions{
		GraphOptions: readGraphOptions(cmd, args),
		Assignments:  assignments,
		DryRun:       dryRun,
	})
	if err != nil {
		logger.Errorf("Bump failed: %v", err)
		return
	}
	if renderErr := RenderBump(cmd.OutOrStdout(), result, format); renderErr != nil {
		logger.Errorf("Failed to print bump plan: %v", renderErr)
	}
	if result.Outcome != nil && result.Outcome.HasErrors() {
		logger.Errorf("Bump finished with %d errors", len(result.Outcome.Errors))
	}
}
