package msbuild

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/bumpchain/internal/domain/entities"
	"github.com/rios0rios0/bumpchain/internal/domain/repositories"
)

const unknownVersion = "0.0.0.0"

// ProjectRepository discovers SDK-style and legacy *.csproj projects on disk.
type ProjectRepository struct {
	skipDirs map[string]bool
}

var _ repositories.ProjectRepository = (*ProjectRepository)(nil)

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{
		skipDirs: map[string]bool{"bin": true, "obj": true, ".git": true, "node_modules": true},
	}
}

// Discover walks rootDir for project files. Unreadable manifests are logged and skipped.
func (r *ProjectRepository) Discover(ctx context.Context, rootDir string) ([]*entities.Project, error) {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", rootDir, err)
	}

	var projects []*entities.Project
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if entry.IsDir() {
			if path != root && r.skipDirs[strings.ToLower(entry.Name())] {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), manifestExtension) {
			return nil
		}

		project, readErr := readProject(path)
		if readErr != nil {
			logger.Warnf("Skipping %s: %v", path, readErr)
			return nil
		}
		logger.Debugf("Discovered %s %s (%d references)", project.Name, project.Version, len(project.References))
		projects = append(projects, project)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover projects under %q: %w", root, err)
	}

	slices.SortStableFunc(projects, func(a, b *entities.Project) int {
		return strings.Compare(a.Key(), b.Key())
	})
	return projects, nil
}

// RefreshVersions re-reads each project's version from its manifest.
func (r *ProjectRepository) RefreshVersions(ctx context.Context, projects []*entities.Project) error {
	var errs []error
	for _, project := range projects {
		if err := ctx.Err(); err != nil {
			return err
		}
		m, err := readManifest(project.FilePath)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		project.Version = resolveVersion(project.Name, m.declaredVersions())
		project.References = m.references()
	}
	return errors.Join(errs...)
}

func readProject(path string) (*entities.Project, error) {
	m, err := readManifest(path)
	if err != nil {
		return nil, err
	}
	name := projectName(path)
	return &entities.Project{
		Name:       name,
		FilePath:   path,
		Version:    resolveVersion(name, m.declaredVersions()),
		References: m.references(),
	}, nil
}

// resolveVersion normalizes the declared version to four segments. Disagreeing
// declarations make the version unknown.
func resolveVersion(name string, declared []string) string {
	if len(declared) == 0 {
		return unknownVersion
	}
	for _, value := range declared[1:] {
		if value != declared[0] {
			logger.Warnf("%s declares conflicting versions %v", name, declared)
			return unknownVersion
		}
	}
	return entities.NormalizeVersion(declared[0])
}
