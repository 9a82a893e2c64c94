//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/bumpchain/internal/domain/entities"
	"github.com/rios0rios0/bumpchain/internal/domain/repositories"
)

// SpyProjectRepository implements repositories.ProjectRepository as a configurable spy.
type SpyProjectRepository struct {
	// --- Discover ---
	Projects      []*entities.Project
	DiscoverErr   error
	DiscoveredDir []string

	// --- RefreshVersions ---
	// RefreshedVersions, keyed by project name, are applied on RefreshVersions.
	RefreshedVersions map[string]string
	RefreshErr        error
	RefreshCalls      int
}

var _ repositories.ProjectRepository = (*SpyProjectRepository)(nil)

func (s *SpyProjectRepository) Discover(_ context.Context, rootDir string) ([]*entities.Project, error) {
	s.DiscoveredDir = append(s.DiscoveredDir, rootDir)
	return s.Projects, s.DiscoverErr
}

func (s *SpyProjectRepository) RefreshVersions(_ context.Context, projects []*entities.Project) error {
	s.RefreshCalls++
	if s.RefreshErr != nil {
		return s.RefreshErr
	}
	for _, p := range projects {
		if v, ok := s.RefreshedVersions[p.Name]; ok {
			p.Version = v
		}
	}
	return nil
}
