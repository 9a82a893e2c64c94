//go:build unit

package commands_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/bumpchain/internal/domain/commands"
	"github.com/rios0rios0/bumpchain/internal/domain/entities"
	infraRepos "github.com/rios0rios0/bumpchain/internal/infrastructure/repositories"
	"github.com/rios0rios0/bumpchain/test/domain/entitybuilders"
	"github.com/rios0rios0/bumpchain/test/infrastructure/repositorydoubles"
)

const repoRoot = "/repo"

func newProject(name, version string, references ...string) *entities.Project {
	return entitybuilders.NewProjectBuilder().
		WithName(name).
		WithRootDir(repoRoot).
		WithVersion(version).
		WithReferences(references...).
		BuildProject()
}

func registryWith(diffs *repositorydoubles.SpyDiffRepository) *infraRepos.DiffRegistry {
	if diffs.ProviderName == "" {
		diffs.ProviderName = entities.DiffProviderGoGit
	}
	if diffs.Root == "" {
		diffs.Root = repoRoot
	}
	registry := infraRepos.NewDiffRegistry()
	registry.Register(diffs)
	return registry
}

func TestAnalyzeCommand_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should analyze every project and apply exclusions", func(t *testing.T) {
		t.Parallel()

		// given
		core := newProject("Core", "1.0.0.0")
		api := newProject("Api", "2.0.0.0", "Core")
		legacy := newProject("Legacy", "0.1.0.0")
		projectRepo := &repositorydoubles.SpyProjectRepository{Projects: []*entities.Project{core, api, legacy}}
		diffs := &repositorydoubles.SpyDiffRepository{
			ChangedFiles: []string{"Core/Core.csproj", "Api/Controller.cs"},
			Diffs: map[string]string{
				"Core/Core.csproj": "-<Version>1.0.0.0</Version>\n+<Version>1.1.0.0</Version>\n",
			},
		}
		settings := entities.DefaultSettings()
		settings.ExcludedProjects = []string{"legacy"}
		cmd := commands.NewAnalyzeCommand(registryWith(diffs), projectRepo)

		// when
		report, err := cmd.Execute(context.Background(), settings, commands.AnalyzeOptions{
			Dir:     "/repo/Core",
			Exclude: []string{"API"},
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, repoRoot, report.RepoRoot)
		assert.Equal(t, entities.DiffProviderGoGit, report.Provider)
		assert.False(t, report.HasFailures())
		assert.Equal(t, entities.StatusVersionChangeOnly, core.Status)
		assert.Equal(t, "1.0.0.0", core.Version)
		assert.Equal(t, entities.StatusModified, api.Status)
		assert.Equal(t, entities.StatusClean, legacy.Status)
		assert.True(t, legacy.ExcludedFromUpdates)
		assert.True(t, api.ExcludedFromUpdates)
		assert.False(t, core.ExcludedFromUpdates)
		assert.Equal(t, []string{repoRoot}, projectRepo.DiscoveredDir)
	})

	t.Run("should record a version conflict and keep analyzing other projects", func(t *testing.T) {
		t.Parallel()

		// given
		core := newProject("Core", "1.0.0.0")
		api := newProject("Api", "2.0.0.0")
		projectRepo := &repositorydoubles.SpyProjectRepository{Projects: []*entities.Project{core, api}}
		diffs := &repositorydoubles.SpyDiffRepository{
			ChangedFiles: []string{"Core/Core.csproj", "Api/Api.csproj"},
			Diffs: map[string]string{
				"Core/Core.csproj": "+<Version>1.1.0.0</Version>\n+<Version>1.2.0.0</Version>\n",
				"Api/Api.csproj":   `+<PackageReference Include="Polly" Version="8.0.0" />` + "\n",
			},
		}
		cmd := commands.NewAnalyzeCommand(registryWith(diffs), projectRepo)

		// when
		report, err := cmd.Execute(context.Background(), entities.DefaultSettings(), commands.AnalyzeOptions{})

		// then
		require.NoError(t, err)
		require.Len(t, report.Failures, 1)
		assert.Equal(t, "Core", report.Failures[0].Project)
		var conflict *entities.VersionConflictError
		require.ErrorAs(t, report.Failures[0].Err, &conflict)
		assert.Equal(t, entities.StatusInitial, core.Status)
		assert.Equal(t, entities.StatusReferenceChanges, api.Status)
	})

	t.Run("should fail for an unregistered diff provider", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		settings.DiffProvider = entities.DiffProviderCLI
		cmd := commands.NewAnalyzeCommand(
			registryWith(&repositorydoubles.SpyDiffRepository{}),
			&repositorydoubles.SpyProjectRepository{},
		)

		// when
		_, err := cmd.Execute(context.Background(), settings, commands.AnalyzeOptions{})

		// then
		require.ErrorIs(t, err, entities.ErrUnknownDiffProvider)
	})

	t.Run("should fail when the repository root cannot be found", func(t *testing.T) {
		t.Parallel()

		// given
		diffs := &repositorydoubles.SpyDiffRepository{FindRootErr: errors.New("not a git repository")}
		cmd := commands.NewAnalyzeCommand(registryWith(diffs), &repositorydoubles.SpyProjectRepository{})

		// when
		_, err := cmd.Execute(context.Background(), entities.DefaultSettings(), commands.AnalyzeOptions{})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a git repository")
	})

	t.Run("should fail when changed files cannot be listed", func(t *testing.T) {
		t.Parallel()

		// given
		diffs := &repositorydoubles.SpyDiffRepository{ChangedFilesErr: errors.New("index locked")}
		projectRepo := &repositorydoubles.SpyProjectRepository{Projects: []*entities.Project{newProject("Core", "1.0")}}
		cmd := commands.NewAnalyzeCommand(registryWith(diffs), projectRepo)

		// when
		_, err := cmd.Execute(context.Background(), entities.DefaultSettings(), commands.AnalyzeOptions{})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "index locked")
	})

	t.Run("should stop when the context is canceled before projects are analyzed", func(t *testing.T) {
		t.Parallel()

		// given
		projectRepo := &repositorydoubles.SpyProjectRepository{
			Projects: []*entities.Project{newProject("Core", "1.0.0.0"), newProject("Api", "2.0.0.0")},
		}
		diffs := &repositorydoubles.SpyDiffRepository{ChangedFiles: []string{"Core/Core.csproj"}}
		cmd := commands.NewAnalyzeCommand(registryWith(diffs), projectRepo)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		report, err := cmd.Execute(ctx, entities.DefaultSettings(), commands.AnalyzeOptions{})

		// then
		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, report)
	})

	t.Run("should honor exclusions saved at the repository root from another directory", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		projects := []*entities.Project{newProject("Core", "1.0.0.0"), newProject("Legacy", "1.0.0.0")}
		diffs := &repositorydoubles.SpyDiffRepository{Root: root}
		projectRepo := &repositorydoubles.SpyProjectRepository{Projects: projects}
		exclude := commands.NewExcludeCommand(registryWith(diffs), projectRepo)
		_, err := exclude.Execute(context.Background(), entities.DefaultSettings(), commands.ExcludeOptions{
			Dir:      root,
			Projects: []string{"Legacy"},
		})
		require.NoError(t, err)
		settings := entities.DefaultSettings()
		cmd := commands.NewAnalyzeCommand(registryWith(diffs), projectRepo)

		// when
		report, err := cmd.Execute(context.Background(), settings, commands.AnalyzeOptions{
			Dir: filepath.Join(root, "src", "Core"),
		})

		// then
		require.NoError(t, err)
		require.Len(t, report.Projects, 2)
		assert.False(t, projects[0].ExcludedFromUpdates)
		assert.True(t, projects[1].ExcludedFromUpdates)
		assert.Equal(t, filepath.Join(root, ".bumpchain.yaml"), settings.Path())
	})
}
