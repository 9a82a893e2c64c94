package graph

import (
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/bumpchain/internal/domain/entities"
)

// ChainBuilder expands selected projects into referrer trees.
type ChainBuilder struct {
	index *DependencyIndex
}

func NewChainBuilder(index *DependencyIndex) *ChainBuilder {
	return &ChainBuilder{index: index}
}

// BuildChains returns one tree per distinct selected project, in selection
// order. A project already on the current root-to-node path is emitted as a
// leaf so cycles stay visible without recursing forever. Every node backed by
// a selected project is flagged WasOriginallySelected. With minimize, chains
// whose coverage is strictly contained in another chain's are dropped.
func (b *ChainBuilder) BuildChains(selected []*entities.Project, minimize bool) []*entities.ReferrerChainNode {
	selection := b.resolveSelection(selected)
	if len(selection) == 0 {
		return nil
	}

	roots := make([]*entities.ReferrerChainNode, 0, len(selection))
	for _, project := range selection {
		roots = append(roots, b.buildNode(project, true, make(map[string]struct{})))
	}

	selectedKeys := make(map[string]struct{}, len(selection))
	for _, project := range selection {
		selectedKeys[project.Key()] = struct{}{}
	}
	entities.WalkForest(roots, func(node *entities.ReferrerChainNode, _ int) {
		if _, ok := selectedKeys[node.Project.Key()]; ok {
			node.WasOriginallySelected = true
		}
	})

	if minimize {
		return minimizeChains(roots)
	}
	return roots
}

// resolveSelection dedupes by name and swaps in the indexed instance of each
// project so nodes and referrer lookups share the same records.
func (b *ChainBuilder) resolveSelection(selected []*entities.Project) []*entities.Project {
	seen := make(map[string]struct{}, len(selected))
	resolved := make([]*entities.Project, 0, len(selected))
	for _, project := range selected {
		if project == nil {
			continue
		}
		if _, dup := seen[project.Key()]; dup {
			continue
		}
		seen[project.Key()] = struct{}{}

		if indexed, ok := b.index.Lookup(project.Name); ok {
			project = indexed
		}
		resolved = append(resolved, project)
	}
	return resolved
}

func (b *ChainBuilder) buildNode(
	project *entities.Project, isRoot bool, path map[string]struct{},
) *entities.ReferrerChainNode {
	node := entities.NewReferrerChainNode(project, isRoot)
	key := project.Key()
	if _, onPath := path[key]; onPath {
		logger.Debugf("Cycle detected at %q, not descending again", project.Name)
		return node
	}

	path[key] = struct{}{}
	for _, referrer := range b.index.Referrers(project) {
		node.Referrers = append(node.Referrers, b.buildNode(referrer, false, path))
	}
	delete(path, key)
	return node
}

// minimizeChains drops chains whose coverage is strictly inside another's.
// A chain with the largest coverage is never inside another, so the result is
// never empty for a non-empty forest.
func minimizeChains(roots []*entities.ReferrerChainNode) []*entities.ReferrerChainNode {
	coverage := make([]map[string]struct{}, len(roots))
	for i, root := range roots {
		coverage[i] = chainCoverage(root)
	}

	kept := make([]*entities.ReferrerChainNode, 0, len(roots))
	for i, root := range roots {
		redundant := false
		for j := range roots {
			if i != j && isStrictSubset(coverage[i], coverage[j]) {
				logger.Debugf("Chain of %q is covered by chain of %q", root.Project.Name, roots[j].Project.Name)
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, root)
		}
	}
	return kept
}

func chainCoverage(root *entities.ReferrerChainNode) map[string]struct{} {
	covered := make(map[string]struct{})
	entities.WalkForest([]*entities.ReferrerChainNode{root}, func(node *entities.ReferrerChainNode, _ int) {
		covered[node.Project.Key()] = struct{}{}
	})
	return covered
}

// isStrictSubset treats equally sized sets as never being subsets of each other.
func isStrictSubset(sub, super map[string]struct{}) bool {
	if len(sub) >= len(super) {
		return false
	}
	for key := range sub {
		if _, ok := super[key]; !ok {
			return false
		}
	}
	return true
}
