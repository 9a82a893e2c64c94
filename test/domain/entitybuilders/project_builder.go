//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"path/filepath"

	"github.com/rios0rios0/bumpchain/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

const (
	defaultProjectName    = "Core"
	defaultProjectVersion = "1.0.0.0"
	defaultRootDir        = "/repo"
)

// ProjectBuilder helps create test projects with a fluent interface.
type ProjectBuilder struct {
	*testkit.BaseBuilder
	name          string
	rootDir       string
	filePath      string
	version       string
	references    []string
	status        entities.ProjectStatus
	versionChange *entities.VersionChange
	excluded      bool
}

// NewProjectBuilder creates a new project builder with sensible defaults.
// The manifest lives at <root>/<name>/<name>.csproj unless WithFilePath is used.
func NewProjectBuilder() *ProjectBuilder {
	return &ProjectBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        defaultProjectName,
		rootDir:     defaultRootDir,
		version:     defaultProjectVersion,
	}
}

// WithName sets the project name.
func (b *ProjectBuilder) WithName(name string) *ProjectBuilder {
	b.name = name
	return b
}

// WithRootDir sets the repository directory the default manifest path is built from.
func (b *ProjectBuilder) WithRootDir(dir string) *ProjectBuilder {
	b.rootDir = dir
	return b
}

// WithFilePath sets the manifest path explicitly.
func (b *ProjectBuilder) WithFilePath(path string) *ProjectBuilder {
	b.filePath = path
	return b
}

// WithVersion sets the current version.
func (b *ProjectBuilder) WithVersion(version string) *ProjectBuilder {
	b.version = version
	return b
}

// WithReferences sets the names of the projects this one depends on.
func (b *ProjectBuilder) WithReferences(names ...string) *ProjectBuilder {
	b.references = append([]string(nil), names...)
	return b
}

// WithStatus sets the analysis status.
func (b *ProjectBuilder) WithStatus(status entities.ProjectStatus) *ProjectBuilder {
	b.status = status
	return b
}

// WithVersionChange sets a pending version edit from oldVersion to newVersion.
func (b *ProjectBuilder) WithVersionChange(oldVersion, newVersion string) *ProjectBuilder {
	b.versionChange = &entities.VersionChange{
		File:       b.name + ".csproj",
		OldVersion: oldVersion,
		NewVersion: newVersion,
		Source:     entities.SourceManifest,
		Property:   "Version",
	}
	return b
}

// WithExcluded flags the project as excluded from updates.
func (b *ProjectBuilder) WithExcluded(excluded bool) *ProjectBuilder {
	b.excluded = excluded
	return b
}

// Build creates the project (satisfies testkit.Builder interface).
func (b *ProjectBuilder) Build() interface{} {
	return b.BuildProject()
}

// BuildProject creates the project with a concrete return type.
func (b *ProjectBuilder) BuildProject() *entities.Project {
	filePath := b.filePath
	if filePath == "" {
		filePath = filepath.Join(b.rootDir, b.name, b.name+".csproj")
	}

	var versionChange *entities.VersionChange
	if b.versionChange != nil {
		vc := *b.versionChange
		versionChange = &vc
	}

	return &entities.Project{
		Name:                b.name,
		FilePath:            filePath,
		Version:             b.version,
		References:          append([]string(nil), b.references...),
		Status:              b.status,
		VersionChange:       versionChange,
		ExcludedFromUpdates: b.excluded,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *ProjectBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = defaultProjectName
	b.rootDir = defaultRootDir
	b.filePath = ""
	b.version = defaultProjectVersion
	b.references = nil
	b.status = entities.StatusInitial
	b.versionChange = nil
	b.excluded = false
	return b
}

// Clone creates a deep copy of the ProjectBuilder.
func (b *ProjectBuilder) Clone() testkit.Builder {
	var versionChange *entities.VersionChange
	if b.versionChange != nil {
		vc := *b.versionChange
		versionChange = &vc
	}
	return &ProjectBuilder{
		BaseBuilder:   b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:          b.name,
		rootDir:       b.rootDir,
		filePath:      b.filePath,
		version:       b.version,
		references:    append([]string(nil), b.references...),
		status:        b.status,
		versionChange: versionChange,
		excluded:      b.excluded,
	}
}
