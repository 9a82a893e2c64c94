//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/bumpchain/internal/domain/entities"
	"github.com/rios0rios0/bumpchain/internal/domain/repositories"
)

// WrittenVersion records one WriteVersion call.
type WrittenVersion struct {
	Project    string
	OldVersion string
	NewVersion string
}

// SpyManifestRepository implements repositories.ManifestRepository as a configurable spy.
type SpyManifestRepository struct {
	// --- WriteVersion ---
	// WriteErrs, keyed by project name, fail the write for that project.
	WriteErrs map[string]error
	Unchanged map[string]bool
	Written   []WrittenVersion

	// --- AppendChangelog ---
	ChangelogErr     error
	ChangelogEntries map[string][]string
}

var _ repositories.ManifestRepository = (*SpyManifestRepository)(nil)

func (s *SpyManifestRepository) WriteVersion(
	_ context.Context, project *entities.Project, newVersion string,
) (bool, error) {
	if err, ok := s.WriteErrs[project.Name]; ok {
		return false, err
	}
	s.Written = append(s.Written, WrittenVersion{
		Project:    project.Name,
		OldVersion: project.Version,
		NewVersion: newVersion,
	})
	return !s.Unchanged[project.Name], nil
}

func (s *SpyManifestRepository) AppendChangelog(
	_ context.Context, project *entities.Project, entry string,
) (bool, error) {
	if s.ChangelogErr != nil {
		return false, s.ChangelogErr
	}
	if s.ChangelogEntries == nil {
		s.ChangelogEntries = make(map[string][]string)
	}
	s.ChangelogEntries[project.Name] = append(s.ChangelogEntries[project.Name], entry)
	return true, nil
}
