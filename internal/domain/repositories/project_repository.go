package repositories

import (
	"context"

	"github.com/rios0rios0/bumpchain/internal/domain/entities"
)

// ProjectRepository supplies the flat project list the graph is built from.
type ProjectRepository interface {
	// Discover returns every project found under rootDir, sorted by name.
	Discover(ctx context.Context, rootDir string) ([]*entities.Project, error)

	// RefreshVersions re-reads the version of every project from its manifest.
	RefreshVersions(ctx context.Context, projects []*entities.Project) error
}
