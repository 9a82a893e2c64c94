package commands

import (
	"context"
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/bumpchain/internal/domain/entities"
	"github.com/rios0rios0/bumpchain/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/bumpchain/internal/infrastructure/repositories"
)

const defaultConfigFile = ".bumpchain.yaml"

// Exclude is the interface for the exclude command.
type Exclude interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ExcludeOptions) ([]string, error)
}

// ExcludeOptions holds runtime options for editing the exclusion list.
type ExcludeOptions struct {
	Dir      string
	Projects []string
	Remove   bool
}

// ExcludeCommand persists per-project exclusions in the settings file.
type ExcludeCommand struct {
	diffRegistry *infraRepos.DiffRegistry
	projectRepo  repositories.ProjectRepository
}

// NewExcludeCommand creates a new ExcludeCommand.
func NewExcludeCommand(
	diffRegistry *infraRepos.DiffRegistry,
	projectRepo repositories.ProjectRepository,
) *ExcludeCommand {
	return &ExcludeCommand{diffRegistry: diffRegistry, projectRepo: projectRepo}
}

// Execute adds or removes the named projects and saves the settings. Names
// must match discovered projects. Unless --config named a file, the settings
// are saved to the configuration file at the repository root, creating
// .bumpchain.yaml there when none exists. Returns the names that changed.
func (it *ExcludeCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts ExcludeOptions,
) ([]string, error) {
	if len(opts.Projects) == 0 {
		return nil, entities.ErrNoSelection
	}

	diffs, err := it.diffRegistry.Get(settings.DiffProvider)
	if err != nil {
		return nil, err
	}
	repoRoot, err := resolveRepoRoot(diffs, opts.Dir)
	if err != nil {
		return nil, err
	}
	if err = settings.AdoptRepositoryConfig(repoRoot); err != nil {
		return nil, err
	}

	projects, err := it.projectRepo.Discover(ctx, repoRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to discover projects: %w", err)
	}
	resolved, err := resolveProjects(projects, opts.Projects)
	if err != nil {
		return nil, err
	}

	var changed []string
	for _, project := range resolved {
		if settings.SetExcluded(project.Name, !opts.Remove) {
			changed = append(changed, project.Name)
		}
	}
	if len(changed) == 0 {
		logger.Info("Exclusion list already up to date")
		return nil, nil
	}

	if !settings.Explicit() {
		if path, ok := entities.FindRepositoryConfigFile(repoRoot); ok {
			settings.SetPath(path)
		} else {
			settings.SetPath(filepath.Join(repoRoot, defaultConfigFile))
		}
	}
	if saveErr := settings.Save(); saveErr != nil {
		return nil, saveErr
	}
	logger.Infof("Updated exclusions in %s: %v", settings.Path(), changed)
	return changed, nil
}
