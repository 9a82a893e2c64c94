package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/bumpchain/internal/domain/commands"
	"github.com/rios0rios0/bumpchain/internal/domain/entities"
)

// ExcludeController handles the "exclude" subcommand.
type ExcludeController struct {
	command commands.Exclude
}

// NewExcludeController creates a new ExcludeController.
func NewExcludeController(command commands.Exclude) *ExcludeController {
	return &ExcludeController{command: command}
}

// GetBind returns the Cobra command metadata for the exclude controller.
func (it *ExcludeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "exclude [path]",
		Short: "Persist which projects never receive version updates",
		Long: `Add the --project names to the excluded_projects list of the
config file, or remove them with --remove. Excluded projects keep their
version while their dependents are still bumped.`,
	}
}

// AddFlags adds the exclude-specific flags to the given Cobra command.
func (it *ExcludeController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("project", nil, "Projects to exclude or include again")
	cmd.Flags().Bool("remove", false, "Remove the projects from the exclusion list")
}

// Execute updates the exclusion list.
func (it *ExcludeController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	projects, _ := cmd.Flags().GetStringSlice("project")
	remove, _ := cmd.Flags().GetBool("remove")

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	changed, err := it.command.Execute(ctx, settings, commands.ExcludeOptions{
		Dir:      targetDir(args),
		Projects: projects,
		Remove:   remove,
	})
	if err != nil {
		logger.Errorf("Exclude failed: %v", err)
		return
	}
	if len(changed) == 0 {
		logger.Info("No exclusions changed")
	}
}
