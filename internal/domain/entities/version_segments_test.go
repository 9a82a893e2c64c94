//go:build unit

package entities_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/bumpchain/internal/domain/entities"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		expected entities.VersionSegments
	}{
		{name: "should parse four segments", raw: "1.2.3.4", expected: entities.VersionSegments{1, 2, 3, 4}},
		{name: "should pad missing segments", raw: "1.2", expected: entities.VersionSegments{1, 2, 0, 0}},
		{name: "should truncate extra segments", raw: "1.2.3.4.5", expected: entities.VersionSegments{1, 2, 3, 4}},
		{name: "should read non-numeric segments as zero", raw: "1.x.3-beta.4", expected: entities.VersionSegments{1, 0, 0, 4}},
		{name: "should read an empty string as zero", raw: "", expected: entities.VersionSegments{}},
		{name: "should read negative numbers as zero", raw: "-1.2", expected: entities.VersionSegments{0, 2, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			result := entities.ParseVersion(tt.raw)

			// then
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIncrementVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		segment  entities.Segment
		mode     entities.VersioningMode
		expected string
	}{
		{name: "should reset trailing segments after a minor bump", raw: "1.2.3.4", segment: entities.Minor, mode: entities.FourPart, expected: "1.3.0.0"},
		{name: "should bump major", raw: "1.2.3.4", segment: entities.Major, mode: entities.FourPart, expected: "2.0.0.0"},
		{name: "should bump revision", raw: "1.2.3.4", segment: entities.Revision, mode: entities.FourPart, expected: "1.2.3.5"},
		{name: "should render four segments from a short version", raw: "1.2", segment: entities.Patch, mode: entities.FourPart, expected: "1.2.1.0"},
		{name: "should remap revision to patch in three part mode", raw: "1.2.3", segment: entities.Revision, mode: entities.ThreePart, expected: "1.2.4"},
		{name: "should bump patch in three part mode", raw: "1.2.3", segment: entities.Patch, mode: entities.ThreePart, expected: "1.2.4"},
		{name: "should drop the revision in three part mode", raw: "1.2.3.9", segment: entities.Minor, mode: entities.ThreePart, expected: "1.3.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			result := entities.IncrementVersion(tt.raw, tt.segment, tt.mode)

			// then
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestVersionSegments_IncrementProperty(t *testing.T) {
	t.Parallel()

	t.Run("should bump exactly one segment and zero every later one", func(t *testing.T) {
		t.Parallel()

		// given
		inputs := []string{"0.0.0.0", "1.2.3.4", "10.0.99.7", "3.3", "7"}
		segments := []entities.Segment{entities.Major, entities.Minor, entities.Patch, entities.Revision}

		for _, raw := range inputs {
			for _, segment := range segments {
				// when
				before := entities.ParseVersion(raw)
				after := before.Increment(segment, entities.FourPart)

				// then
				for i := range before {
					switch {
					case i < int(segment):
						assert.Equal(t, before[i], after[i], "%s %s", raw, segment)
					case i == int(segment):
						assert.Equal(t, before[i]+1, after[i], "%s %s", raw, segment)
					default:
						assert.Zero(t, after[i], "%s %s", raw, segment)
					}
				}
			}
		}
	})

	t.Run("should never render a fourth segment in three part mode", func(t *testing.T) {
		t.Parallel()

		// given
		segments := []entities.Segment{entities.Major, entities.Minor, entities.Patch, entities.Revision}

		for _, segment := range segments {
			// when
			result := entities.IncrementVersion("4.5.6.7", segment, entities.ThreePart)

			// then
			assert.Equal(t, 2, strings.Count(result, "."), result)
		}
	})
}

func TestParseVersioningMode(t *testing.T) {
	t.Parallel()

	t.Run("should accept known spellings", func(t *testing.T) {
		t.Parallel()

		for raw, expected := range map[string]entities.VersioningMode{
			"":           entities.FourPart,
			"four_part":  entities.FourPart,
			"4":          entities.FourPart,
			"ThreePart":  entities.ThreePart,
			"three_part": entities.ThreePart,
			"3":          entities.ThreePart,
		} {
			// when
			mode, err := entities.ParseVersioningMode(raw)

			// then
			require.NoError(t, err, raw)
			assert.Equal(t, expected, mode, raw)
		}
	})

	t.Run("should reject an unknown mode", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.ParseVersioningMode("semver")

		// then
		require.ErrorIs(t, err, entities.ErrInvalidVersioningMode)
	})

	t.Run("should propagate on patch in three part mode and revision otherwise", func(t *testing.T) {
		t.Parallel()

		// then
		assert.Equal(t, entities.Patch, entities.ThreePart.PropagationSegment())
		assert.Equal(t, entities.Revision, entities.FourPart.PropagationSegment())
	})
}

func TestParseSegment(t *testing.T) {
	t.Parallel()

	t.Run("should parse bump names case-insensitively", func(t *testing.T) {
		t.Parallel()

		// when
		segment, ok := entities.ParseSegment("Minor")

		// then
		require.True(t, ok)
		assert.Equal(t, entities.Minor, segment)
	})

	t.Run("should reject an unknown name", func(t *testing.T) {
		t.Parallel()

		// when
		_, ok := entities.ParseSegment("build")

		// then
		assert.False(t, ok)
	})
}
