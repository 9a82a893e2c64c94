package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/bumpchain/internal/domain/entities"
	"github.com/rios0rios0/bumpchain/internal/domain/graph"
)

// Graph is the interface for the graph command.
type Graph interface {
	Execute(ctx context.Context, settings *entities.Settings, opts GraphOptions) (*GraphResult, error)
}

// GraphOptions holds runtime options for building referrer chains.
type GraphOptions struct {
	AnalyzeOptions

	Select   []string // names of the projects whose dependents are shown
	Minimize bool     // forces minimization on even when settings disable it
}

// GraphResult is the built forest together with the analysis it came from.
type GraphResult struct {
	Report *AnalysisReport
	Roots  []*entities.ReferrerChainNode
	Stats  entities.ForestStats
}

// GraphCommand builds the referrer forest for a selection of projects.
type GraphCommand struct {
	analyze Analyze
}

// NewGraphCommand creates a new GraphCommand.
func NewGraphCommand(analyze Analyze) *GraphCommand {
	return &GraphCommand{analyze: analyze}
}

// Execute analyzes the repository and expands the selected projects into
// referrer trees. Unknown project names fail with ErrProjectNotFound.
func (it *GraphCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts GraphOptions,
) (*GraphResult, error) {
	if len(opts.Select) == 0 {
		return nil, entities.ErrNoSelection
	}

	report, err := it.analyze.Execute(ctx, settings, opts.AnalyzeOptions)
	if err != nil {
		return nil, err
	}

	selected, err := resolveProjects(report.Projects, opts.Select)
	if err != nil {
		return nil, err
	}

	minimize := opts.Minimize || settings.MinimizeChains
	index := graph.BuildDependencyIndex(report.Projects)
	roots := graph.NewChainBuilder(index).BuildChains(selected, minimize)
	stats := entities.ComputeForestStats(roots)
	logger.Infof("Built %d chains with %d nodes over %d projects (minimized: %t)",
		stats.Roots, stats.Nodes, stats.UniqueProjects, minimize)

	return &GraphResult{Report: report, Roots: roots, Stats: stats}, nil
}

func resolveProjects(projects []*entities.Project, names []string) ([]*entities.Project, error) {
	resolved := make([]*entities.Project, 0, len(names))
	for _, name := range names {
		project, ok := entities.FindProject(projects, name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", entities.ErrProjectNotFound, name)
		}
		resolved = append(resolved, project)
	}
	return resolved, nil
}
