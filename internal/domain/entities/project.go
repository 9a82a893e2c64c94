package entities

import (
	"path/filepath"
	"strings"
)

// Project is one discovered project: identity plus the mutable analysis state.
type Project struct {
	Name       string   // unique, compared case-insensitively
	FilePath   string   // absolute path to the project manifest
	Version    string   // raw version string, possibly empty
	References []string // names of projects this one depends on

	Status              ProjectStatus
	ReferenceChanges    []ReferenceChange
	VersionChange       *VersionChange
	ExcludedFromUpdates bool
	ChangedFileCount    int
	ChangedLineCount    int
}

// Key is the case-insensitive identity used for graph lookups.
func (p *Project) Key() string {
	return ProjectKey(p.Name)
}

// ProjectKey normalizes a project name for lookups.
func ProjectKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Directory is the folder holding the project manifest.
func (p *Project) Directory() string {
	if p.FilePath == "" {
		return ""
	}
	return filepath.Dir(p.FilePath)
}

// CurrentVersion returns the version used as the base for bumps.
func (p *Project) CurrentVersion() string {
	if p.Version == "" {
		return NormalizeVersion("")
	}
	return p.Version
}

// ApplyAnalysis stores an analysis outcome on the project. A detected version
// edit moves the project's current version back to the edit's old value, so
// bumps are computed from the committed version.
func (p *Project) ApplyAnalysis(analysis ProjectAnalysis) {
	p.Status = analysis.Status
	p.ReferenceChanges = analysis.ReferenceChanges
	p.VersionChange = analysis.VersionChange
	p.ChangedFileCount = analysis.ChangedFileCount
	p.ChangedLineCount = analysis.ChangedLineCount
	if p.VersionChange != nil && p.VersionChange.OldVersion != "" {
		p.Version = p.VersionChange.OldVersion
	}
}

// ProjectAnalysis is what change analysis produces for one project.
type ProjectAnalysis struct {
	Status           ProjectStatus
	ReferenceChanges []ReferenceChange
	VersionChange    *VersionChange
	ChangedFileCount int
	ChangedLineCount int
}

// FindProject looks a project up by case-insensitive name.
func FindProject(projects []*Project, name string) (*Project, bool) {
	key := ProjectKey(name)
	for _, p := range projects {
		if p.Key() == key {
			return p, true
		}
	}
	return nil, false
}
