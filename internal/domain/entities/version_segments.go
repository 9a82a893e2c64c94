package entities

import (
	"fmt"
	"strconv"
	"strings"
)

const segmentCount = 4

// VersioningMode selects whether versions carry a fourth ("revision") segment.
type VersioningMode int

const (
	// FourPart renders Major.Minor.Patch.Revision.
	FourPart VersioningMode = iota
	// ThreePart renders Major.Minor.Patch and remaps revision bumps to patch bumps.
	ThreePart
)

// ParseVersioningMode accepts the configuration spellings of a versioning mode.
// An empty string yields FourPart.
func ParseVersioningMode(raw string) (VersioningMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "four_part", "fourpart", "4":
		return FourPart, nil
	case "three_part", "threepart", "3":
		return ThreePart, nil
	default:
		return FourPart, fmt.Errorf("%w: %q", ErrInvalidVersioningMode, raw)
	}
}

func (m VersioningMode) String() string {
	if m == ThreePart {
		return "three_part"
	}
	return "four_part"
}

// PropagationSegment is the segment bumped on dependents during propagation.
func (m VersioningMode) PropagationSegment() Segment {
	if m == ThreePart {
		return Patch
	}
	return Revision
}

// Segment indexes one position of a dotted version.
type Segment int

const (
	Major Segment = iota
	Minor
	Patch
	Revision
)

// ParseSegment maps a bump name ("major", "minor", "patch", "revision") to its Segment.
func ParseSegment(raw string) (Segment, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "major":
		return Major, true
	case "minor":
		return Minor, true
	case "patch":
		return Patch, true
	case "revision":
		return Revision, true
	default:
		return Major, false
	}
}

func (s Segment) String() string {
	switch s {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Patch:
		return "patch"
	case Revision:
		return "revision"
	default:
		return fmt.Sprintf("segment(%d)", int(s))
	}
}

// VersionSegments is a dotted numeric version held as exactly four integers.
type VersionSegments [segmentCount]int

// ParseVersion never fails: missing segments are zero, extra segments are
// dropped and anything non-numeric reads as zero.
func ParseVersion(raw string) VersionSegments {
	var v VersionSegments
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return v
	}

	parts := strings.Split(trimmed, ".")
	for i := 0; i < segmentCount && i < len(parts); i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 {
			continue
		}
		v[i] = n
	}
	return v
}

// Increment bumps one segment and zeroes every segment after it.
func (v VersionSegments) Increment(segment Segment, mode VersioningMode) VersionSegments {
	if mode == ThreePart && segment == Revision {
		segment = Patch
	}
	if segment < Major || segment > Revision {
		return v
	}

	v[segment]++
	for i := int(segment) + 1; i < segmentCount; i++ {
		v[i] = 0
	}
	if mode == ThreePart {
		v[Revision] = 0
	}
	return v
}

// Render formats the version for the given mode.
func (v VersionSegments) Render(mode VersioningMode) string {
	count := segmentCount
	if mode == ThreePart {
		count = segmentCount - 1
	}

	parts := make([]string, count)
	for i := range count {
		parts[i] = strconv.Itoa(v[i])
	}
	return strings.Join(parts, ".")
}

// String renders all four segments.
func (v VersionSegments) String() string {
	return v.Render(FourPart)
}

// IncrementVersion parses, bumps and renders in one call.
func IncrementVersion(raw string, segment Segment, mode VersioningMode) string {
	return ParseVersion(raw).Increment(segment, mode).Render(mode)
}

// NormalizeVersion pads or truncates a raw version to four segments.
func NormalizeVersion(raw string) string {
	return ParseVersion(raw).String()
}
