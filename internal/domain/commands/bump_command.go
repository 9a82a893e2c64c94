package commands

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"

	"github.com/rios0rios0/bumpchain/internal/domain/entities"
	"github.com/rios0rios0/bumpchain/internal/domain/graph"
	"github.com/rios0rios0/bumpchain/internal/domain/repositories"
)

var explicitVersionPattern = regexp.MustCompile(`^\d+(\.\d+){0,3}$`)

// Bump is the interface for the bump command.
type Bump interface {
	Execute(ctx context.Context, settings *entities.Settings, opts BumpOptions) (*BumpResult, error)
}

// Assignment asks for a version on one selected project. Value is either a
// segment name ("major", "minor", "patch", "revision") or a dotted version.
type Assignment struct {
	Project string
	Value   string
}

// ParseAssignment reads the "Project=value" form used on the command line.
func ParseAssignment(raw string) (Assignment, error) {
	name, value, ok := strings.Cut(raw, "=")
	name, value = strings.TrimSpace(name), strings.TrimSpace(value)
	if !ok || name == "" || value == "" {
		return Assignment{}, fmt.Errorf("%w: %q, expected Project=segment or Project=version", entities.ErrInvalidAssignment, raw)
	}
	return Assignment{Project: name, Value: value}, nil
}

// BumpOptions holds runtime options for one bump.
type BumpOptions struct {
	GraphOptions

	Assignments []Assignment
	DryRun      bool
}

// BumpResult describes what the bump decided and what it wrote.
type BumpResult struct {
	Graph   *GraphResult
	State   graph.PropagationState
	Updates []graph.PendingUpdate
	Outcome *entities.VersionUpdateResult
}

// BumpCommand assigns versions to selected projects, propagates bumps to
// their dependents and writes the result back to the manifests.
type BumpCommand struct {
	graph        Graph
	projectRepo  repositories.ProjectRepository
	manifestRepo repositories.ManifestRepository
}

// NewBumpCommand creates a new BumpCommand.
func NewBumpCommand(
	graphCmd Graph,
	projectRepo repositories.ProjectRepository,
	manifestRepo repositories.ManifestRepository,
) *BumpCommand {
	return &BumpCommand{
		graph:        graphCmd,
		projectRepo:  projectRepo,
		manifestRepo: manifestRepo,
	}
}

// Execute runs the full bump cycle. Projects selected without an assignment
// must be excluded, otherwise propagation waits and nothing is written.
func (it *BumpCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts BumpOptions,
) (*BumpResult, error) {
	graphOpts := opts.GraphOptions
	graphOpts.Select = mergeSelection(opts.Assignments, opts.Select)

	built, err := it.graph.Execute(ctx, settings, graphOpts)
	if err != nil {
		return nil, err
	}
	if built.Report.HasFailures() {
		return nil, fmt.Errorf("analysis failed for %d projects, resolve conflicts first: %w",
			len(built.Report.Failures), built.Report.Failures[0].Err)
	}

	mode := settings.Mode()
	for _, assignment := range opts.Assignments {
		if assignErr := assign(built.Roots, assignment, mode); assignErr != nil {
			return nil, assignErr
		}
	}

	propagator := graph.NewVersionPropagator(mode, func(roots []*entities.ReferrerChainNode) {
		logger.Infof("All selected projects have a version, propagated through %d chains", len(roots))
	})
	result := &BumpResult{Graph: built, Outcome: &entities.VersionUpdateResult{}}
	if !propagator.Propagate(built.Roots) {
		result.State = graph.Waiting
		logger.Warn("Some selected projects have neither a version nor an exclusion, nothing to write")
		return result, nil
	}
	result.State = graph.Ready
	result.Updates = graph.PendingUpdates(built.Roots)

	if opts.DryRun {
		for _, update := range result.Updates {
			logger.Infof("[dry-run] Would change %s from %s to %s",
				update.Project.Name, update.OldVersion, update.NewVersion)
		}
		return result, nil
	}

	it.writeUpdates(ctx, settings, result)
	if refreshErr := it.projectRepo.RefreshVersions(ctx, built.Report.Projects); refreshErr != nil {
		logger.Warnf("Failed to refresh project versions: %v", refreshErr)
	}

	logger.Infof("Bump complete: %d updated, %d errors", len(result.Outcome.Successes), len(result.Outcome.Errors))
	return result, nil
}

func (it *BumpCommand) writeUpdates(ctx context.Context, settings *entities.Settings, result *BumpResult) {
	for _, update := range result.Updates {
		project := update.Project
		if isDowngrade(update.OldVersion, update.NewVersion) {
			logger.Warnf("%s is moving backwards from %s to %s", project.Name, update.OldVersion, update.NewVersion)
		}

		changed, err := it.manifestRepo.WriteVersion(ctx, project, update.NewVersion)
		if err != nil {
			logger.Errorf("Failed to write version of %q: %v", project.Name, err)
			result.Outcome.AddError(project.Name, update.OldVersion, update.NewVersion, err)
			continue
		}
		if !changed {
			logger.Debugf("%s already declares %s", project.Name, update.NewVersion)
		}
		result.Outcome.AddSuccess(project.Name, update.OldVersion, update.NewVersion)

		if !settings.UpdateChangelog {
			continue
		}
		entry := entities.VersionChangelogEntry(project.Name, update.OldVersion, update.NewVersion)
		if _, logErr := it.manifestRepo.AppendChangelog(ctx, project, entry); logErr != nil {
			logger.Warnf("Failed to update changelog of %q: %v", project.Name, logErr)
		}
	}
}

func assign(roots []*entities.ReferrerChainNode, assignment Assignment, mode entities.VersioningMode) error {
	if segment, ok := entities.ParseSegment(assignment.Value); ok {
		version, err := graph.AssignBump(roots, assignment.Project, segment, mode)
		if err != nil {
			return err
		}
		logger.Infof("%s: %s bump to %s", assignment.Project, segment, version)
		return nil
	}

	if !explicitVersionPattern.MatchString(assignment.Value) {
		return fmt.Errorf("%w: %s=%s", entities.ErrInvalidAssignment, assignment.Project, assignment.Value)
	}
	version := entities.ParseVersion(assignment.Value).Render(mode)
	if _, err := graph.AssignVersion(roots, assignment.Project, version); err != nil {
		return err
	}
	logger.Infof("%s: set to %s", assignment.Project, version)
	return nil
}

// mergeSelection lists assigned projects first, then any extra selections.
func mergeSelection(assignments []Assignment, extra []string) []string {
	names := make([]string, 0, len(assignments)+len(extra))
	for _, a := range assignments {
		if !containsName(names, a.Project) {
			names = append(names, a.Project)
		}
	}
	for _, name := range extra {
		if !containsName(names, name) {
			names = append(names, name)
		}
	}
	return names
}

// isDowngrade compares the first three segments as semantic versions and
// falls back to the revision when they are equal.
func isDowngrade(oldVersion, newVersion string) bool {
	oldSegments, newSegments := entities.ParseVersion(oldVersion), entities.ParseVersion(newVersion)
	oldSemver, newSemver := toSemver(oldSegments), toSemver(newSegments)
	if !semver.IsValid(oldSemver) || !semver.IsValid(newSemver) {
		return false
	}
	if cmp := semver.Compare(newSemver, oldSemver); cmp != 0 {
		return cmp < 0
	}
	return newSegments[entities.Revision] < oldSegments[entities.Revision]
}

func toSemver(v entities.VersionSegments) string {
	return fmt.Sprintf("v%d.%d.%d", v[entities.Major], v[entities.Minor], v[entities.Patch])
}
