package msbuild

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/bumpchain/internal/domain/entities"
	"github.com/rios0rios0/bumpchain/internal/domain/repositories"
)

var assemblyAttributePattern = regexp.MustCompile(`(?i)\[assembly:\s*(AssemblyVersion|AssemblyFileVersion)\("[^"]+"\)\]`)

// ManifestRepository writes versions into project files, AssemblyInfo.cs and CHANGELOG.md.
type ManifestRepository struct{}

var _ repositories.ManifestRepository = (*ManifestRepository)(nil)

func NewManifestRepository() *ManifestRepository {
	return &ManifestRepository{}
}

// WriteVersion updates Properties/AssemblyInfo.cs and every version element of
// the project file. A project file without any gets a <Version> in its first PropertyGroup.
func (r *ManifestRepository) WriteVersion(
	ctx context.Context,
	project *entities.Project,
	newVersion string,
) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	infoChanged, err := writeAssemblyInfo(filepath.Join(project.Directory(), "Properties", assemblyInfoFile), newVersion)
	if err != nil {
		return false, err
	}

	m, err := readManifest(project.FilePath)
	if err != nil {
		return infoChanged, err
	}

	changed := false
	elements := m.propertyVersionElements()
	for _, el := range elements {
		if el.Text() != newVersion {
			el.SetText(newVersion)
			changed = true
		}
	}
	if len(elements) == 0 {
		group := m.doc.FindElement("//PropertyGroup")
		if group == nil {
			group = m.doc.Root().CreateElement("PropertyGroup")
		}
		group.CreateElement("Version").SetText(newVersion)
		changed = true
		logger.Debugf("Added a Version element to %s", project.FilePath)
	}

	if !changed {
		return infoChanged, nil
	}
	if err = m.save(); err != nil {
		return infoChanged, err
	}
	return true, nil
}

// AppendChangelog adds entry under the Unreleased section of the project's
// CHANGELOG.md. A missing changelog is not an error.
func (r *ManifestRepository) AppendChangelog(ctx context.Context, project *entities.Project, entry string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	path := filepath.Join(project.Directory(), changelogFile)
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %q: %w", path, err)
	}

	updated := entities.InsertChangelogEntry(string(content), []string{entry})
	if updated == string(content) {
		return false, nil
	}
	if err = os.WriteFile(path, []byte(updated), 0o644); err != nil { //nolint:gosec // changelog is a tracked source file
		return false, fmt.Errorf("failed to write %q: %w", path, err)
	}
	return true, nil
}

func writeAssemblyInfo(path, newVersion string) (bool, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %q: %w", path, err)
	}

	updated := assemblyAttributePattern.ReplaceAllString(string(content), `[assembly: $1("`+newVersion+`")]`)
	if updated == string(content) {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if err = os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("failed to write %q: %w", path, err)
	}
	return true, nil
}
