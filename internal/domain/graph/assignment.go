package graph

import (
	"fmt"

	"github.com/rios0rios0/bumpchain/internal/domain/entities"
)

// AssignVersion sets an explicit target version on every node of the named
// project and returns how many nodes were updated. The assignment replaces any
// version edit found by analysis, so the new version gets written.
func AssignVersion(roots []*entities.ReferrerChainNode, projectName, version string) (int, error) {
	key := entities.ProjectKey(projectName)
	updated := 0
	entities.WalkForest(roots, func(node *entities.ReferrerChainNode, _ int) {
		if node.Project.Key() == key {
			node.NewVersion = version
			node.Project.VersionChange = nil
			updated++
		}
	})
	if updated == 0 {
		return 0, fmt.Errorf("%w in graph: %s", entities.ErrProjectNotFound, projectName)
	}
	return updated, nil
}

// AssignBump bumps one segment of the project's current version and assigns
// the result with AssignVersion.
func AssignBump(
	roots []*entities.ReferrerChainNode,
	projectName string,
	segment entities.Segment,
	mode entities.VersioningMode,
) (string, error) {
	var project *entities.Project
	key := entities.ProjectKey(projectName)
	entities.WalkForest(roots, func(node *entities.ReferrerChainNode, _ int) {
		if project == nil && node.Project.Key() == key {
			project = node.Project
		}
	})
	if project == nil {
		return "", fmt.Errorf("%w in graph: %s", entities.ErrProjectNotFound, projectName)
	}

	version := entities.IncrementVersion(project.CurrentVersion(), segment, mode)
	if _, err := AssignVersion(roots, projectName, version); err != nil {
		return "", err
	}
	return version, nil
}

// PendingUpdate is one project whose assigned version differs from its current one.
type PendingUpdate struct {
	Project    *entities.Project
	OldVersion string
	NewVersion string
}

// PendingUpdates lists, once per project and in traversal order, the
// non-excluded projects whose NewVersion differs from the current version.
// Projects with an analyzed version edit already carry it in the working tree.
func PendingUpdates(roots []*entities.ReferrerChainNode) []PendingUpdate {
	seen := make(map[string]struct{})
	var updates []PendingUpdate
	entities.WalkForest(roots, func(node *entities.ReferrerChainNode, _ int) {
		key := node.Project.Key()
		if _, done := seen[key]; done || !node.HasNewVersion() || node.Project.ExcludedFromUpdates ||
			node.Project.VersionChange != nil {
			return
		}
		seen[key] = struct{}{}
		if node.NewVersion == node.Project.Version {
			return
		}
		updates = append(updates, PendingUpdate{
			Project:    node.Project,
			OldVersion: node.Project.CurrentVersion(),
			NewVersion: node.NewVersion,
		})
	})
	return updates
}
