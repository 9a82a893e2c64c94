package commands

// IsDowngrade exports isDowngrade for testing.
var IsDowngrade = isDowngrade //nolint:gochecknoglobals // test export

// MergeSelection exports mergeSelection for testing.
var MergeSelection = mergeSelection //nolint:gochecknoglobals // test export
