//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/bumpchain/internal/domain/commands"
	"github.com/rios0rios0/bumpchain/internal/domain/entities"
	"github.com/rios0rios0/bumpchain/internal/domain/graph"
	"github.com/rios0rios0/bumpchain/test/domain/commanddoubles"
	"github.com/rios0rios0/bumpchain/test/infrastructure/repositorydoubles"
)

type bumpFixture struct {
	projects    []*entities.Project
	projectRepo *repositorydoubles.SpyProjectRepository
	manifest    *repositorydoubles.SpyManifestRepository
	cmd         *commands.BumpCommand
}

// newBumpFixture wires the real graph command over Core <- Data <- Api.
func newBumpFixture(failures ...commands.ProjectFailure) *bumpFixture {
	projects := []*entities.Project{
		newProject("Core", "1.0.0.0"),
		newProject("Data", "2.3.0.4", "Core"),
		newProject("Api", "0.9.0.0", "Data"),
	}
	analyze := &commanddoubles.StubAnalyzeCommand{
		Report: &commands.AnalysisReport{RepoRoot: repoRoot, Projects: projects, Failures: failures},
	}
	projectRepo := &repositorydoubles.SpyProjectRepository{}
	manifest := &repositorydoubles.SpyManifestRepository{}
	return &bumpFixture{
		projects:    projects,
		projectRepo: projectRepo,
		manifest:    manifest,
		cmd:         commands.NewBumpCommand(commands.NewGraphCommand(analyze), projectRepo, manifest),
	}
}

func TestBumpCommand_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should bump the selection and propagate to dependents", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture()
		settings := entities.DefaultSettings()
		settings.UpdateChangelog = true

		// when
		result, err := fixture.cmd.Execute(context.Background(), settings, commands.BumpOptions{
			Assignments: []commands.Assignment{{Project: "Core", Value: "minor"}},
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, graph.Ready, result.State)
		assert.Equal(t, []repositorydoubles.WrittenVersion{
			{Project: "Core", OldVersion: "1.0.0.0", NewVersion: "1.1.0.0"},
			{Project: "Data", OldVersion: "2.3.0.4", NewVersion: "2.3.0.5"},
			{Project: "Api", OldVersion: "0.9.0.0", NewVersion: "0.9.0.1"},
		}, fixture.manifest.Written)
		assert.False(t, result.Outcome.HasErrors())
		assert.Len(t, result.Outcome.Successes, 3)
		assert.Equal(t,
			[]string{entities.VersionChangelogEntry("Data", "2.3.0.4", "2.3.0.5")},
			fixture.manifest.ChangelogEntries["Data"])
		assert.Equal(t, 1, fixture.projectRepo.RefreshCalls)
	})

	t.Run("should not write anything in dry run mode", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture()

		// when
		result, err := fixture.cmd.Execute(context.Background(), entities.DefaultSettings(), commands.BumpOptions{
			Assignments: []commands.Assignment{{Project: "Core", Value: "2.0"}},
			DryRun:      true,
		})

		// then
		require.NoError(t, err)
		require.Len(t, result.Updates, 3)
		assert.Equal(t, "2.0.0.0", result.Updates[0].NewVersion)
		assert.Empty(t, fixture.manifest.Written)
		assert.Zero(t, fixture.projectRepo.RefreshCalls)
	})

	t.Run("should skip excluded projects while still propagating past them", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture()
		fixture.projects[1].ExcludedFromUpdates = true

		// when
		_, err := fixture.cmd.Execute(context.Background(), entities.DefaultSettings(), commands.BumpOptions{
			Assignments: []commands.Assignment{{Project: "Core", Value: "patch"}},
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []repositorydoubles.WrittenVersion{
			{Project: "Core", OldVersion: "1.0.0.0", NewVersion: "1.0.1.0"},
			{Project: "Api", OldVersion: "0.9.0.0", NewVersion: "0.9.0.1"},
		}, fixture.manifest.Written)
	})

	t.Run("should wait when a selected project has no version", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture()
		opts := commands.BumpOptions{Assignments: []commands.Assignment{{Project: "Core", Value: "major"}}}
		opts.Select = []string{"Data"}

		// when
		result, err := fixture.cmd.Execute(context.Background(), entities.DefaultSettings(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, graph.Waiting, result.State)
		assert.Empty(t, result.Updates)
		assert.Empty(t, fixture.manifest.Written)
	})

	t.Run("should render explicit versions in three part mode", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture()
		settings := entities.DefaultSettings()
		settings.VersioningMode = entities.ThreePart.String()

		// when
		result, err := fixture.cmd.Execute(context.Background(), settings, commands.BumpOptions{
			Assignments: []commands.Assignment{{Project: "Core", Value: "3.1.4.1"}},
			DryRun:      true,
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, "3.1.4", result.Updates[0].NewVersion)
		assert.Equal(t, "2.3.1", result.Updates[1].NewVersion)
	})

	t.Run("should reject an invalid assignment", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture()

		// when
		_, err := fixture.cmd.Execute(context.Background(), entities.DefaultSettings(), commands.BumpOptions{
			Assignments: []commands.Assignment{{Project: "Core", Value: "v1-beta"}},
		})

		// then
		require.ErrorIs(t, err, entities.ErrInvalidAssignment)
	})

	t.Run("should record write failures and continue", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture()
		fixture.manifest.WriteErrs = map[string]error{"Data": errors.New("read-only file")}

		// when
		result, err := fixture.cmd.Execute(context.Background(), entities.DefaultSettings(), commands.BumpOptions{
			Assignments: []commands.Assignment{{Project: "Core", Value: "revision"}},
		})

		// then
		require.NoError(t, err)
		assert.True(t, result.Outcome.HasErrors())
		assert.Len(t, result.Outcome.Successes, 2)
		assert.Contains(t, result.Outcome.Message(), "Data: ERROR 2.3.0.4 -> 2.3.0.5 (read-only file)")
	})

	t.Run("should refuse to bump when analysis failed", func(t *testing.T) {
		t.Parallel()

		// given
		conflict := &entities.VersionConflictError{Project: "Core"}
		fixture := newBumpFixture(commands.ProjectFailure{Project: "Core", Err: conflict})

		// when
		_, err := fixture.cmd.Execute(context.Background(), entities.DefaultSettings(), commands.BumpOptions{
			Assignments: []commands.Assignment{{Project: "Core", Value: "minor"}},
		})

		// then
		var target *entities.VersionConflictError
		require.ErrorAs(t, err, &target)
		assert.Empty(t, fixture.manifest.Written)
	})
}

func TestParseAssignment(t *testing.T) {
	t.Parallel()

	t.Run("should split project and value", func(t *testing.T) {
		t.Parallel()

		// when
		assignment, err := commands.ParseAssignment(" Core = minor ")

		// then
		require.NoError(t, err)
		assert.Equal(t, commands.Assignment{Project: "Core", Value: "minor"}, assignment)
	})

	t.Run("should reject a value without a project", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := commands.ParseAssignment("minor")

		// then
		require.ErrorIs(t, err, entities.ErrInvalidAssignment)
	})
}

func TestIsDowngrade(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		old      string
		new      string
		expected bool
	}{
		{name: "should flag a lower minor", old: "1.2.0.0", new: "1.1.9.9", expected: true},
		{name: "should flag a lower revision", old: "1.2.3.4", new: "1.2.3.3", expected: true},
		{name: "should accept a higher patch", old: "1.2.3.4", new: "1.2.4.0", expected: false},
		{name: "should accept an equal version", old: "1.2.3", new: "1.2.3.0", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			result := commands.IsDowngrade(tt.old, tt.new)

			// then
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestMergeSelection(t *testing.T) {
	t.Parallel()

	t.Run("should list assigned projects first without duplicates", func(t *testing.T) {
		t.Parallel()

		// given
		assignments := []commands.Assignment{{Project: "Core", Value: "minor"}, {Project: "Api", Value: "1.0"}}

		// when
		names := commands.MergeSelection(assignments, []string{"core", "Legacy"})

		// then
		assert.Equal(t, []string{"Core", "Api", "Legacy"}, names)
	})
}
