package entities

// VersionSource names where a version-bearing property was found.
type VersionSource string

const (
	// SourceManifest is a Version/AssemblyVersion/FileVersion element of a project file.
	SourceManifest VersionSource = "csproj"
	// SourceAssemblyInfo is an assembly attribute in AssemblyInfo.cs.
	SourceAssemblyInfo VersionSource = "AssemblyInfo"
)

// VersionChangeKind tells on which side of a diff a version value was seen.
type VersionChangeKind int

const (
	VersionAdded VersionChangeKind = iota
	VersionRemoved
)

func (k VersionChangeKind) String() string {
	if k == VersionRemoved {
		return "removed"
	}
	return "added"
}

// VersionChange is one detected edit to a version-bearing property.
// Empty OldVersion or NewVersion means "not present on that side".
type VersionChange struct {
	File       string
	OldVersion string
	NewVersion string
	Source     VersionSource
	Property   string
	Kind       VersionChangeKind
}

// SameEdit reports whether two changes describe the same old -> new transition.
func (vc VersionChange) SameEdit(other VersionChange) bool {
	return vc.OldVersion == other.OldVersion && vc.NewVersion == other.NewVersion
}

type versionChangeKey struct {
	file     string
	source   VersionSource
	property string
}

func keyOf(vc VersionChange) versionChangeKey {
	return versionChangeKey{file: vc.File, source: vc.Source, property: vc.Property}
}

// CombineVersionChanges collapses raw records into at most one change per
// (file, source, property). An addition paired with a removal becomes a single
// old -> new change. Groups keep the order of their first record.
func CombineVersionChanges(raw []VersionChange) []VersionChange {
	order := make([]versionChangeKey, 0)
	added := make(map[versionChangeKey]*VersionChange)
	removed := make(map[versionChangeKey]*VersionChange)

	for i := range raw {
		key := keyOf(raw[i])
		if added[key] == nil && removed[key] == nil {
			order = append(order, key)
		}
		switch raw[i].Kind {
		case VersionAdded:
			if added[key] == nil {
				added[key] = &raw[i]
			}
		case VersionRemoved:
			if removed[key] == nil {
				removed[key] = &raw[i]
			}
		}
	}

	combined := make([]VersionChange, 0, len(order))
	for _, key := range order {
		add, remove := added[key], removed[key]
		switch {
		case add != nil && remove != nil:
			combined = append(combined, VersionChange{
				File:       add.File,
				OldVersion: remove.OldVersion,
				NewVersion: add.NewVersion,
				Source:     add.Source,
				Property:   add.Property,
				Kind:       VersionAdded,
			})
		case add != nil:
			combined = append(combined, VersionChange{
				File:       add.File,
				NewVersion: add.NewVersion,
				Source:     add.Source,
				Property:   add.Property,
				Kind:       VersionAdded,
			})
		case remove != nil:
			combined = append(combined, VersionChange{
				File:       remove.File,
				OldVersion: remove.OldVersion,
				Source:     remove.Source,
				Property:   remove.Property,
				Kind:       VersionRemoved,
			})
		}
	}
	return combined
}

// AmbiguousVersionChanges returns the raw records of every (file, source,
// property) group whose additions or removals disagree among themselves.
// Such groups cannot be collapsed without discarding one of the values.
func AmbiguousVersionChanges(raw []VersionChange) []VersionChange {
	newValues := make(map[versionChangeKey]map[string]struct{})
	oldValues := make(map[versionChangeKey]map[string]struct{})
	for _, vc := range raw {
		key := keyOf(vc)
		if vc.Kind == VersionAdded {
			addValue(newValues, key, vc.NewVersion)
		} else {
			addValue(oldValues, key, vc.OldVersion)
		}
	}

	var ambiguous []VersionChange
	for _, vc := range raw {
		key := keyOf(vc)
		if len(newValues[key]) > 1 || len(oldValues[key]) > 1 {
			ambiguous = append(ambiguous, vc)
		}
	}
	return ambiguous
}

func addValue(values map[versionChangeKey]map[string]struct{}, key versionChangeKey, value string) {
	if values[key] == nil {
		values[key] = make(map[string]struct{})
	}
	values[key][value] = struct{}{}
}
