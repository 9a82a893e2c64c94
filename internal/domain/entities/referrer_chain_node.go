package entities

// ReferrerChainNode wraps a Project in the context of one traversal. The same
// Project may back several nodes when it is reachable through several paths.
type ReferrerChainNode struct {
	Project               *Project
	IsRoot                bool
	WasOriginallySelected bool
	NewVersion            string
	Referrers             []*ReferrerChainNode
}

// NewReferrerChainNode creates a node and seeds NewVersion from a pending
// version edit found by analysis.
func NewReferrerChainNode(project *Project, isRoot bool) *ReferrerChainNode {
	node := &ReferrerChainNode{Project: project, IsRoot: isRoot}
	if project.VersionChange != nil {
		node.NewVersion = project.VersionChange.NewVersion
	}
	return node
}

// HasNewVersion reports whether a target version was assigned.
func (n *ReferrerChainNode) HasNewVersion() bool {
	return n.NewVersion != ""
}

// WalkForest visits every node instance depth-first, parents before children.
func WalkForest(roots []*ReferrerChainNode, visit func(node *ReferrerChainNode, depth int)) {
	var walk func(node *ReferrerChainNode, depth int)
	walk = func(node *ReferrerChainNode, depth int) {
		if node == nil {
			return
		}
		visit(node, depth)
		for _, child := range node.Referrers {
			walk(child, depth+1)
		}
	}
	for _, root := range roots {
		walk(root, 0)
	}
}

// ForestStats counts what a rendered forest contains.
type ForestStats struct {
	Roots          int `yaml:"roots"`
	Nodes          int `yaml:"nodes"`
	UniqueProjects int `yaml:"unique_projects"`
	Edges          int `yaml:"edges"`
}

// ComputeForestStats summarizes a forest.
func ComputeForestStats(roots []*ReferrerChainNode) ForestStats {
	stats := ForestStats{Roots: len(roots)}
	unique := make(map[string]struct{})
	WalkForest(roots, func(node *ReferrerChainNode, _ int) {
		stats.Nodes++
		stats.Edges += len(node.Referrers)
		unique[node.Project.Key()] = struct{}{}
	})
	stats.UniqueProjects = len(unique)
	return stats
}
