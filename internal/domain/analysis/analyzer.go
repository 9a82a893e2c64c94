package analysis

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/bumpchain/internal/domain/entities"
	"github.com/rios0rios0/bumpchain/internal/domain/repositories"
)

const maxConcurrentDiffs = 8

// fileResult is written by exactly one goroutine, the one analyzing its file.
type fileResult struct {
	path         string
	otherChanges bool
	changedLines int
	references   []entities.ReferenceChange
	versions     []entities.VersionChange
}

// ChangeAnalyzer turns the uncommitted diffs of a project into a ProjectAnalysis.
type ChangeAnalyzer struct {
	classifier *DiffClassifier
	analyzable entities.AnalyzableFiles
}

// NewChangeAnalyzer creates an analyzer that parses only the analyzable files;
// any other changed file marks its project as modified.
func NewChangeAnalyzer(classifier *DiffClassifier, analyzable entities.AnalyzableFiles) *ChangeAnalyzer {
	return &ChangeAnalyzer{classifier: classifier, analyzable: analyzable}
}

// Analyze classifies the changes of one project. changedFiles are relative to
// repoRoot; files outside the project directory are ignored. Diffs are fetched
// concurrently and aggregated once every file is done. A *VersionConflictError
// is returned when the project carries disagreeing version edits.
func (a *ChangeAnalyzer) Analyze(
	ctx context.Context,
	project *entities.Project,
	repoRoot string,
	changedFiles []string,
	diffs repositories.DiffRepository,
) (*entities.ProjectAnalysis, error) {
	owned := FilesInProject(project, repoRoot, changedFiles)
	results := make([]fileResult, len(owned))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentDiffs)
	for i, file := range owned {
		results[i].path = file
		if !a.analyzable.Matches(file) {
			results[i].otherChanges = true
			continue
		}

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			diff, err := diffs.GetDiff(groupCtx, repoRoot, file)
			if err != nil {
				logger.Warnf("Could not read diff of %q, treating it as unchanged: %v", file, err)
				return nil
			}
			a.classifyDiff(diff, &results[i])
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("failed to analyze project %q: %w", project.Name, err)
	}

	return aggregate(project.Name, results)
}

// classifyDiff fills result from one file's diff. Classification stops at the
// first changed line the classifier does not recognize; every changed line is
// still counted.
func (a *ChangeAnalyzer) classifyDiff(diff string, result *fileResult) {
	for _, line := range strings.Split(diff, "\n") {
		line = strings.TrimRight(line, "\r")
		if !IsChangedLine(line) {
			continue
		}
		result.changedLines++
		if result.otherChanges {
			continue
		}

		match := a.classifier.Classify(line)
		switch match.Kind {
		case PackageReferenceChange:
			result.references = append(result.references, packageChange(match))
		case ProjectReferenceChange:
			result.references = append(result.references, projectChange(match))
		case VersionPropertyChange:
			result.versions = append(result.versions, versionChange(result.path, entities.SourceManifest, match))
		case AssemblyVersionChange:
			result.versions = append(result.versions, versionChange(result.path, entities.SourceAssemblyInfo, match))
		case Unrecognized:
			logger.Debugf("Unrecognized change in %q: %s", result.path, line)
			result.otherChanges = true
		}
	}
}

func aggregate(projectName string, results []fileResult) (*entities.ProjectAnalysis, error) {
	var (
		otherChanges bool
		references   []entities.ReferenceChange
		versions     []entities.VersionChange
		lines        int
	)
	for _, r := range results {
		otherChanges = otherChanges || r.otherChanges
		references = append(references, r.references...)
		versions = append(versions, r.versions...)
		lines += r.changedLines
	}

	if ambiguous := entities.AmbiguousVersionChanges(versions); len(ambiguous) > 0 {
		return nil, &entities.VersionConflictError{Project: projectName, Conflicts: ambiguous}
	}

	combined := entities.CombineVersionChanges(versions)
	var resolved *entities.VersionChange
	if len(combined) > 0 {
		for _, vc := range combined[1:] {
			if !vc.SameEdit(combined[0]) {
				return nil, &entities.VersionConflictError{Project: projectName, Conflicts: combined}
			}
		}
		first := combined[0]
		resolved = &first
	}

	merged := entities.MergeReferenceChanges(references)
	return &entities.ProjectAnalysis{
		Status:           entities.DeriveStatus(otherChanges, len(merged), resolved),
		ReferenceChanges: merged,
		VersionChange:    resolved,
		ChangedFileCount: len(results),
		ChangedLineCount: lines,
	}, nil
}

// FilesInProject keeps the changed files located under the project directory.
// Paths are compared case-insensitively.
func FilesInProject(project *entities.Project, repoRoot string, changedFiles []string) []string {
	dir := project.Directory()
	if dir == "" {
		return nil
	}
	prefix := strings.ToLower(filepath.Clean(dir)) + string(filepath.Separator)

	var owned []string
	for _, file := range changedFiles {
		abs := strings.ToLower(filepath.Clean(filepath.Join(repoRoot, filepath.FromSlash(file))))
		if strings.HasPrefix(abs, prefix) {
			owned = append(owned, file)
		}
	}
	return owned
}

func packageChange(match LineMatch) entities.ReferenceChange {
	change := entities.ReferenceChange{Name: match.Name, IsPackageReference: true}
	if match.Added {
		change.Kind = entities.ReferenceAdded
		change.NewVersion = match.Value
	} else {
		change.Kind = entities.ReferenceRemoved
		change.OldVersion = match.Value
	}
	return change
}

func projectChange(match LineMatch) entities.ReferenceChange {
	kind := entities.ReferenceRemoved
	if match.Added {
		kind = entities.ReferenceAdded
	}
	return entities.ReferenceChange{Name: match.Name, Kind: kind}
}

func versionChange(file string, source entities.VersionSource, match LineMatch) entities.VersionChange {
	change := entities.VersionChange{File: file, Source: source, Property: match.Name}
	if match.Added {
		change.Kind = entities.VersionAdded
		change.NewVersion = match.Value
	} else {
		change.Kind = entities.VersionRemoved
		change.OldVersion = match.Value
	}
	return change
}
