package entities

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrProjectNotFound is returned when a name does not match any discovered project.
	ErrProjectNotFound = errors.New("project not found")
	// ErrNoSelection is returned when a graph is requested without selected projects.
	ErrNoSelection = errors.New("no projects selected")
	// ErrInvalidVersioningMode is returned for an unknown versioning_mode value.
	ErrInvalidVersioningMode = errors.New("invalid versioning mode")
	// ErrUnknownDiffProvider is returned when no diff provider is registered under a name.
	ErrUnknownDiffProvider = errors.New("unknown diff provider")
	// ErrInvalidAssignment is returned when a requested version is neither a bump name nor a dotted number.
	ErrInvalidAssignment = errors.New("invalid version assignment")
)

// VersionConflictError reports irreconcilable version edits found for one project.
type VersionConflictError struct {
	Project   string
	Conflicts []VersionChange
}

func (e *VersionConflictError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "conflicting version changes detected for project %q:", e.Project)
	for _, vc := range e.Conflicts {
		fmt.Fprintf(&sb, "\n  file: %s, source: %s, property: %s, old: %s, new: %s",
			vc.File, vc.Source, vc.Property, orNone(vc.OldVersion), orNone(vc.NewVersion))
	}
	return sb.String()
}

func orNone(value string) string {
	if value == "" {
		return "<none>"
	}
	return value
}
