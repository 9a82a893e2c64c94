package entities

import (
	"fmt"
	"strings"
)

const (
	unreleasedHeading = "## [Unreleased]"
	changedSubheading = "### Changed"
	releasePrefix     = "## ["
	bulletPrefix      = "- "
)

// VersionChangelogEntry is the bullet written for a bumped project.
func VersionChangelogEntry(name, oldVersion, newVersion string) string {
	return fmt.Sprintf("- changed the version of `%s` from `%s` to `%s`", name, oldVersion, newVersion)
}

// InsertChangelogEntry adds bullets under "## [Unreleased]" / "### Changed" of
// a Keep-a-Changelog document. Content without an Unreleased section, or a
// bullet already present there, leaves the document unchanged.
func InsertChangelogEntry(content string, entries []string) string {
	if len(entries) == 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	start := indexOfTrimmed(lines, 0, len(lines), unreleasedHeading)
	if start < 0 {
		return content
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), releasePrefix) {
			end = i
			break
		}
	}

	fresh := make([]string, 0, len(entries))
	for _, entry := range entries {
		if indexOfTrimmed(lines, start, end, entry) < 0 {
			fresh = append(fresh, entry)
		}
	}
	if len(fresh) == 0 {
		return content
	}

	changed := indexOfTrimmed(lines, start+1, end, changedSubheading)
	if changed < 0 {
		block := append([]string{"", changedSubheading, ""}, fresh...)
		return strings.Join(spliceLines(lines, start+1, block), "\n")
	}

	last := changed
	for i := changed + 1; i < end; i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, bulletPrefix) {
			break
		}
		last = i
	}
	return strings.Join(spliceLines(lines, last+1, fresh), "\n")
}

func indexOfTrimmed(lines []string, from, to int, want string) int {
	for i := from; i < to; i++ {
		if strings.TrimSpace(lines[i]) == want {
			return i
		}
	}
	return -1
}

func spliceLines(lines []string, at int, extra []string) []string {
	result := make([]string, 0, len(lines)+len(extra))
	result = append(result, lines[:at]...)
	result = append(result, extra...)
	return append(result, lines[at:]...)
}
