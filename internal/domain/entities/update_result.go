package entities

import (
	"fmt"
	"strings"
)

// VersionUpdateResult collects the outcome of writing versions back to manifests.
type VersionUpdateResult struct {
	Successes []string
	Errors    []string
}

// AddSuccess records a project whose manifests were updated.
func (r *VersionUpdateResult) AddSuccess(name, oldVersion, newVersion string) {
	r.Successes = append(r.Successes, fmt.Sprintf("%s: %s -> %s", name, oldVersion, newVersion))
}

// AddError records a project whose manifests could not be updated.
func (r *VersionUpdateResult) AddError(name, oldVersion, newVersion string, err error) {
	r.Errors = append(r.Errors, fmt.Sprintf("%s: ERROR %s -> %s (%v)", name, oldVersion, newVersion, err))
}

// HasErrors reports whether any project failed.
func (r *VersionUpdateResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Message joins successes then errors, one per line.
func (r *VersionUpdateResult) Message() string {
	lines := make([]string, 0, len(r.Successes)+len(r.Errors))
	lines = append(lines, r.Successes...)
	lines = append(lines, r.Errors...)
	return strings.Join(lines, "\n")
}
