package graph

import (
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/bumpchain/internal/domain/entities"
)

// PropagationState tells whether every selected project has a decided version.
type PropagationState int

const (
	// Waiting means a selected project still lacks both a version and an exclusion.
	Waiting PropagationState = iota
	// Ready means propagation may cascade bumps to dependents.
	Ready
)

func (s PropagationState) String() string {
	if s == Ready {
		return "ready"
	}
	return "waiting"
}

// AllRootsSetListener is notified once per completed propagation pass.
type AllRootsSetListener func(roots []*entities.ReferrerChainNode)

// VersionPropagator cascades bumps from the selected projects to their
// dependents. It mutates the forest in place and must not run concurrently
// on the same forest.
type VersionPropagator struct {
	mode     entities.VersioningMode
	listener AllRootsSetListener
}

// NewVersionPropagator creates a propagator; listener may be nil.
func NewVersionPropagator(mode entities.VersioningMode, listener AllRootsSetListener) *VersionPropagator {
	return &VersionPropagator{mode: mode, listener: listener}
}

// State inspects every node of the forest, not only roots. A selected
// project is decided once any of its nodes carries a NewVersion or the
// project is excluded. A forest without selected nodes is Waiting.
func (p *VersionPropagator) State(roots []*entities.ReferrerChainNode) PropagationState {
	decided := make(map[string]bool)
	entities.WalkForest(roots, func(node *entities.ReferrerChainNode, _ int) {
		if !node.WasOriginallySelected {
			return
		}
		key := node.Project.Key()
		decided[key] = decided[key] || node.HasNewVersion() || node.Project.ExcludedFromUpdates
	})

	if len(decided) == 0 {
		return Waiting
	}
	for _, ok := range decided {
		if !ok {
			return Waiting
		}
	}
	return Ready
}

// IsReady is shorthand for State(roots) == Ready.
func (p *VersionPropagator) IsReady(roots []*entities.ReferrerChainNode) bool {
	return p.State(roots) == Ready
}

// Propagate assigns a version to every eligible node lacking one and reports
// whether a pass ran. While Waiting it does nothing. Existing NewVersion
// values are never overwritten, so repeated calls are idempotent. All nodes
// of one project receive the same version.
func (p *VersionPropagator) Propagate(roots []*entities.ReferrerChainNode) bool {
	if p.State(roots) != Ready {
		logger.Debug("Propagation is waiting for every selected project to have a version")
		return false
	}

	rootKeys := make(map[string]struct{}, len(roots))
	for _, root := range roots {
		rootKeys[root.Project.Key()] = struct{}{}
	}

	chosen := make(map[string]string)
	entities.WalkForest(roots, func(node *entities.ReferrerChainNode, _ int) {
		if _, ok := chosen[node.Project.Key()]; !ok && node.HasNewVersion() {
			chosen[node.Project.Key()] = node.NewVersion
		}
	})

	visited := make(map[*entities.ReferrerChainNode]struct{})
	for _, root := range roots {
		visited[root] = struct{}{}
	}

	var walk func(node *entities.ReferrerChainNode)
	walk = func(node *entities.ReferrerChainNode) {
		for _, child := range node.Referrers {
			if _, seen := visited[child]; seen {
				continue
			}
			visited[child] = struct{}{}

			_, isRootProject := rootKeys[child.Project.Key()]
			if isRootProject && !child.WasOriginallySelected {
				continue
			}
			if !child.Project.ExcludedFromUpdates && !child.HasNewVersion() {
				child.NewVersion = p.versionFor(child.Project, chosen)
			}
			walk(child)
		}
	}
	for _, root := range roots {
		walk(root)
	}

	if p.listener != nil {
		p.listener(roots)
	}
	return true
}

// versionFor reuses the version already chosen for the project elsewhere in
// the forest, or bumps the project's own current version.
func (p *VersionPropagator) versionFor(project *entities.Project, chosen map[string]string) string {
	key := project.Key()
	if version, ok := chosen[key]; ok {
		return version
	}
	version := entities.IncrementVersion(project.CurrentVersion(), p.mode.PropagationSegment(), p.mode)
	chosen[key] = version
	logger.Debugf("Propagated %s -> %s to %q", project.CurrentVersion(), version, project.Name)
	return version
}
