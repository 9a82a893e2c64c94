package entities

// ReferenceChangeKind tells whether a reference was added, removed or edited in place.
type ReferenceChangeKind int

const (
	ReferenceAdded ReferenceChangeKind = iota
	ReferenceRemoved
	ReferenceEdited
)

func (k ReferenceChangeKind) String() string {
	switch k {
	case ReferenceAdded:
		return "added"
	case ReferenceRemoved:
		return "removed"
	case ReferenceEdited:
		return "edited"
	default:
		return "unknown"
	}
}

// ReferenceChange is one detected edit to a dependency declaration.
// OldVersion is empty for additions and project references, NewVersion is
// empty for removals and project references.
type ReferenceChange struct {
	Name               string
	OldVersion         string
	NewVersion         string
	IsPackageReference bool
	Kind               ReferenceChangeKind
}

// IsProjectReference reports whether the change targets an in-repository project.
func (r ReferenceChange) IsProjectReference() bool {
	return !r.IsPackageReference
}

// MergeReferenceChanges folds a removal and an addition of the same package
// into a single edit. Order of first appearance is kept.
func MergeReferenceChanges(raw []ReferenceChange) []ReferenceChange {
	merged := make([]ReferenceChange, 0, len(raw))
	pending := make(map[string]int)

	for _, change := range raw {
		if !change.IsPackageReference {
			merged = append(merged, change)
			continue
		}

		key := change.Name
		idx, ok := pending[key]
		if ok && merged[idx].Kind != change.Kind && merged[idx].Kind != ReferenceEdited {
			edited := merged[idx]
			if change.Kind == ReferenceAdded {
				edited.NewVersion = change.NewVersion
			} else {
				edited.OldVersion = change.OldVersion
			}
			edited.Kind = ReferenceEdited
			merged[idx] = edited
			delete(pending, key)
			continue
		}

		pending[key] = len(merged)
		merged = append(merged, change)
	}
	return merged
}
