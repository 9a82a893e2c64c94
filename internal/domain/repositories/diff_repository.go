package repositories

import "context"

// DiffRepository abstracts the source-control tool that reports uncommitted changes.
type DiffRepository interface {
	// Name returns the provider identifier (e.g. "gogit", "cli").
	Name() string

	// GetChangedFiles lists changed paths relative to repoRoot, slash-separated.
	GetChangedFiles(ctx context.Context, repoRoot string) ([]string, error)

	// GetDiff returns the unified diff of one changed file. Empty text means no changes.
	GetDiff(ctx context.Context, repoRoot, filePath string) (string, error)

	// FindRoot resolves the repository root containing dir.
	FindRoot(dir string) (string, error)
}
