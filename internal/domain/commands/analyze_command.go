package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/bumpchain/internal/domain/analysis"
	"github.com/rios0rios0/bumpchain/internal/domain/entities"
	"github.com/rios0rios0/bumpchain/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/bumpchain/internal/infrastructure/repositories"
)

const maxConcurrentProjects = 4

// Analyze is the interface for the status command.
type Analyze interface {
	Execute(ctx context.Context, settings *entities.Settings, opts AnalyzeOptions) (*AnalysisReport, error)
}

// AnalyzeOptions holds runtime options for one analysis.
type AnalyzeOptions struct {
	Dir     string   // any directory inside the repository
	Exclude []string // extra exclusions on top of the settings file
	Verbose bool
}

// ProjectFailure is an analysis error that did not stop the other projects.
type ProjectFailure struct {
	Project string
	Err     error
}

// AnalysisReport is the outcome of discovering and analyzing a repository.
type AnalysisReport struct {
	RepoRoot string
	Provider string
	Projects []*entities.Project
	Failures []ProjectFailure
}

// HasFailures reports whether any project could not be analyzed.
func (r *AnalysisReport) HasFailures() bool {
	return len(r.Failures) > 0
}

// AnalyzeCommand discovers the projects of a repository and classifies their
// uncommitted changes.
type AnalyzeCommand struct {
	diffRegistry *infraRepos.DiffRegistry
	projectRepo  repositories.ProjectRepository
}

// NewAnalyzeCommand creates a new AnalyzeCommand.
func NewAnalyzeCommand(
	diffRegistry *infraRepos.DiffRegistry,
	projectRepo repositories.ProjectRepository,
) *AnalyzeCommand {
	return &AnalyzeCommand{
		diffRegistry: diffRegistry,
		projectRepo:  projectRepo,
	}
}

// Execute analyzes every discovered project. Projects run concurrently; a
// version conflict in one project is recorded in the report and the others
// continue.
func (it *AnalyzeCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts AnalyzeOptions,
) (*AnalysisReport, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
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
	if settings.DiffProvider != diffs.Name() {
		if diffs, err = it.diffRegistry.Get(settings.DiffProvider); err != nil {
			return nil, err
		}
	}

	projects, err := it.projectRepo.Discover(ctx, repoRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to discover projects: %w", err)
	}
	logger.Infof("Found %d projects in %s", len(projects), repoRoot)

	for _, p := range projects {
		p.ExcludedFromUpdates = settings.IsExcluded(p.Name) || containsName(opts.Exclude, p.Name)
	}

	changed, err := diffs.GetChangedFiles(ctx, repoRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to list changed files: %w", err)
	}
	logger.Debugf("%d changed files reported by %s", len(changed), diffs.Name())

	report := &AnalysisReport{RepoRoot: repoRoot, Provider: diffs.Name(), Projects: projects}
	report.Failures, err = analyzeProjects(ctx, settings, projects, repoRoot, changed, diffs)
	if err != nil {
		return nil, fmt.Errorf("analysis interrupted: %w", err)
	}

	logger.Infof("Analysis complete: %d projects, %d failures", len(projects), len(report.Failures))
	return report, nil
}

func analyzeProjects(
	ctx context.Context,
	settings *entities.Settings,
	projects []*entities.Project,
	repoRoot string,
	changed []string,
	diffs repositories.DiffRepository,
) ([]ProjectFailure, error) {
	analyzer := analysis.NewChangeAnalyzer(analysis.NewDiffClassifier(), settings.AnalyzableFiles)

	var (
		mu       sync.Mutex
		failures []ProjectFailure
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentProjects)
	for _, project := range projects {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			result, err := analyzer.Analyze(groupCtx, project, repoRoot, changed, diffs)
			if err != nil {
				logger.Errorf("Failed to analyze %q: %v", project.Name, err)
				mu.Lock()
				failures = append(failures, ProjectFailure{Project: project.Name, Err: err})
				mu.Unlock()
				return nil
			}
			project.ApplyAnalysis(*result)
			logger.Debugf("%s: %s", project.Name, project.Status)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	sortFailures(failures, projects)
	return failures, nil
}

// sortFailures orders failures like the project list so reports are stable.
func sortFailures(failures []ProjectFailure, projects []*entities.Project) {
	position := make(map[string]int, len(projects))
	for i, p := range projects {
		position[p.Name] = i
	}
	slices.SortStableFunc(failures, func(a, b ProjectFailure) int {
		return position[a.Project] - position[b.Project]
	})
}

// resolveRepoRoot finds the repository containing dir, or the working directory.
func resolveRepoRoot(diffs repositories.DiffRepository, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", dir, err)
	}
	repoRoot, err := diffs.FindRoot(absDir)
	if err != nil {
		return "", fmt.Errorf("failed to find repository root: %w", err)
	}
	return repoRoot, nil
}

func containsName(names []string, name string) bool {
	key := entities.ProjectKey(name)
	for _, candidate := range names {
		if entities.ProjectKey(candidate) == key {
			return true
		}
	}
	return false
}
