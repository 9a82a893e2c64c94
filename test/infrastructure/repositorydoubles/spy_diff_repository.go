//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/bumpchain/internal/domain/repositories"
)

// SpyDiffRepository implements repositories.DiffRepository with canned diffs.
// GetDiff is called concurrently by the analyzer, so call tracking is locked.
type SpyDiffRepository struct {
	// --- identity ---
	ProviderName string

	// --- FindRoot ---
	Root        string
	FindRootErr error

	// --- GetChangedFiles ---
	ChangedFiles      []string
	ChangedFilesErr   error
	ChangedFilesCalls int

	// --- GetDiff ---
	Diffs    map[string]string
	DiffErrs map[string]error

	mu            sync.Mutex
	requestedDiff []string
}

var _ repositories.DiffRepository = (*SpyDiffRepository)(nil)

func (s *SpyDiffRepository) Name() string {
	if s.ProviderName == "" {
		return "spy"
	}
	return s.ProviderName
}

func (s *SpyDiffRepository) FindRoot(dir string) (string, error) {
	if s.FindRootErr != nil {
		return "", s.FindRootErr
	}
	if s.Root == "" {
		return dir, nil
	}
	return s.Root, nil
}

func (s *SpyDiffRepository) GetChangedFiles(_ context.Context, _ string) ([]string, error) {
	s.ChangedFilesCalls++
	return s.ChangedFiles, s.ChangedFilesErr
}

func (s *SpyDiffRepository) GetDiff(_ context.Context, _ string, filePath string) (string, error) {
	s.mu.Lock()
	s.requestedDiff = append(s.requestedDiff, filePath)
	s.mu.Unlock()

	if err, ok := s.DiffErrs[filePath]; ok {
		return "", err
	}
	return s.Diffs[filePath], nil
}

// RequestedDiffs returns every path GetDiff was called with, in call order.
func (s *SpyDiffRepository) RequestedDiffs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requestedDiff...)
}
