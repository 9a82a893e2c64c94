package repositories

import (
	"context"

	"github.com/rios0rios0/bumpchain/internal/domain/entities"
)

// ManifestRepository persists a new version into a project's version-bearing files.
type ManifestRepository interface {
	// WriteVersion updates every version property of the project, creating one
	// when none exists. It returns true when at least one file changed.
	WriteVersion(ctx context.Context, project *entities.Project, newVersion string) (bool, error)

	// AppendChangelog records the bump in the project's CHANGELOG.md when one exists.
	AppendChangelog(ctx context.Context, project *entities.Project, entry string) (bool, error)
}
