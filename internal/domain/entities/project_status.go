package entities

// ProjectStatus summarizes the uncommitted changes of a project.
type ProjectStatus int

const (
	// StatusInitial means the project has not been analyzed yet.
	StatusInitial ProjectStatus = iota
	// StatusClean means no uncommitted changes.
	StatusClean
	// StatusModified means at least one change of unknown impact.
	StatusModified
	// StatusReferenceChanges means only package or project reference edits.
	StatusReferenceChanges
	// StatusVersionChangeOnly means only a version property edit.
	StatusVersionChangeOnly
	// StatusReferenceAndVersionChanges means reference edits plus a version edit.
	StatusReferenceAndVersionChanges
)

func (s ProjectStatus) String() string {
	switch s {
	case StatusInitial:
		return "initial"
	case StatusClean:
		return "clean"
	case StatusModified:
		return "modified"
	case StatusReferenceChanges:
		return "reference-changes"
	case StatusVersionChangeOnly:
		return "version-change-only"
	case StatusReferenceAndVersionChanges:
		return "reference-and-version-changes"
	default:
		return "unknown"
	}
}

// DeriveStatus applies the status precedence: other changes win, then the
// combination of reference and version edits.
func DeriveStatus(hasOtherChanges bool, referenceChangeCount int, versionChange *VersionChange) ProjectStatus {
	if hasOtherChanges {
		return StatusModified
	}

	hasReferenceChanges := referenceChangeCount > 0
	hasVersionChange := versionChange != nil
	switch {
	case hasReferenceChanges && hasVersionChange:
		return StatusReferenceAndVersionChanges
	case hasReferenceChanges:
		return StatusReferenceChanges
	case hasVersionChange:
		return StatusVersionChangeOnly
	default:
		return StatusClean
	}
}
