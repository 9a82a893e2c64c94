package graph

import "github.com/rios0rios0/bumpchain/internal/domain/entities"

// DependencyIndex maps every project to the projects that reference it.
// It is built once from a project snapshot and never updated incrementally.
type DependencyIndex struct {
	projects  []*entities.Project
	byKey     map[string]*entities.Project
	referrers map[string][]*entities.Project
}

// BuildDependencyIndex records P as a referrer of Q whenever P declares a
// reference that resolves, case-insensitively, to Q. References to unknown
// names (packages, projects outside the snapshot) are ignored, and so are
// self-references. Referrer lists follow the order of projects.
func BuildDependencyIndex(projects []*entities.Project) *DependencyIndex {
	index := &DependencyIndex{
		projects:  projects,
		byKey:     make(map[string]*entities.Project, len(projects)),
		referrers: make(map[string][]*entities.Project, len(projects)),
	}
	for _, p := range projects {
		if _, exists := index.byKey[p.Key()]; !exists {
			index.byKey[p.Key()] = p
		}
	}

	seen := make(map[[2]string]struct{})
	for _, referrer := range projects {
		for _, name := range referrer.References {
			target, ok := index.byKey[entities.ProjectKey(name)]
			// a project never refers to itself; MSBuild rejects such a reference
			if !ok || target.Key() == referrer.Key() {
				continue
			}
			edge := [2]string{target.Key(), referrer.Key()}
			if _, dup := seen[edge]; dup {
				continue
			}
			seen[edge] = struct{}{}
			index.referrers[target.Key()] = append(index.referrers[target.Key()], referrer)
		}
	}
	return index
}

// Referrers returns the projects that depend directly on project.
func (i *DependencyIndex) Referrers(project *entities.Project) []*entities.Project {
	return i.referrers[project.Key()]
}

// Lookup resolves a project by case-insensitive name.
func (i *DependencyIndex) Lookup(name string) (*entities.Project, bool) {
	p, ok := i.byKey[entities.ProjectKey(name)]
	return p, ok
}

// Projects returns the snapshot the index was built from.
func (i *DependencyIndex) Projects() []*entities.Project {
	return i.projects
}
