//go:build unit

package commands_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/bumpchain/internal/domain/commands"
	"github.com/rios0rios0/bumpchain/internal/domain/entities"
	"github.com/rios0rios0/bumpchain/test/infrastructure/repositorydoubles"
)

func TestExcludeCommand_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should save exclusions next to the repository when no config exists", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		diffs := &repositorydoubles.SpyDiffRepository{Root: root}
		projectRepo := &repositorydoubles.SpyProjectRepository{
			Projects: []*entities.Project{newProject("Core", "1.0"), newProject("Legacy", "1.0")},
		}
		settings := entities.DefaultSettings()
		cmd := commands.NewExcludeCommand(registryWith(diffs), projectRepo)

		// when
		changed, err := cmd.Execute(context.Background(), settings, commands.ExcludeOptions{
			Projects: []string{"legacy"},
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"Legacy"}, changed)
		configPath := filepath.Join(root, ".bumpchain.yaml")
		assert.Equal(t, configPath, settings.Path())
		saved, loadErr := entities.NewSettings(configPath)
		require.NoError(t, loadErr)
		assert.True(t, saved.IsExcluded("Legacy"))
	})

	t.Run("should remove an exclusion", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		diffs := &repositorydoubles.SpyDiffRepository{Root: root}
		projectRepo := &repositorydoubles.SpyProjectRepository{Projects: []*entities.Project{newProject("Legacy", "1.0")}}
		settings := entities.DefaultSettings()
		settings.ExcludedProjects = []string{"Legacy"}
		settings.SetPath(filepath.Join(root, "bumpchain.yaml"))
		require.NoError(t, settings.Save())
		cmd := commands.NewExcludeCommand(registryWith(diffs), projectRepo)

		// when
		changed, err := cmd.Execute(context.Background(), settings, commands.ExcludeOptions{
			Projects: []string{"Legacy"},
			Remove:   true,
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"Legacy"}, changed)
		assert.Empty(t, settings.ExcludedProjects)
		assert.FileExists(t, filepath.Join(root, "bumpchain.yaml"))
	})

	t.Run("should not save when nothing changes", func(t *testing.T) {
		t.Parallel()

		// given
		diffs := &repositorydoubles.SpyDiffRepository{Root: t.TempDir()}
		projectRepo := &repositorydoubles.SpyProjectRepository{Projects: []*entities.Project{newProject("Core", "1.0")}}
		settings := entities.DefaultSettings()
		cmd := commands.NewExcludeCommand(registryWith(diffs), projectRepo)

		// when
		changed, err := cmd.Execute(context.Background(), settings, commands.ExcludeOptions{
			Projects: []string{"Core"},
			Remove:   true,
		})

		// then
		require.NoError(t, err)
		assert.Empty(t, changed)
		assert.Empty(t, settings.Path())
	})

	t.Run("should reject unknown projects", func(t *testing.T) {
		t.Parallel()

		// given
		diffs := &repositorydoubles.SpyDiffRepository{}
		projectRepo := &repositorydoubles.SpyProjectRepository{Projects: []*entities.Project{newProject("Core", "1.0")}}
		cmd := commands.NewExcludeCommand(registryWith(diffs), projectRepo)

		// when
		_, err := cmd.Execute(context.Background(), entities.DefaultSettings(), commands.ExcludeOptions{
			Projects: []string{"Ghost"},
		})

		// then
		require.ErrorIs(t, err, entities.ErrProjectNotFound)
	})

	t.Run("should require at least one project", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewExcludeCommand(
			registryWith(&repositorydoubles.SpyDiffRepository{}),
			&repositorydoubles.SpyProjectRepository{},
		)

		// when
		_, err := cmd.Execute(context.Background(), entities.DefaultSettings(), commands.ExcludeOptions{})

		// then
		require.ErrorIs(t, err, entities.ErrNoSelection)
	})
}
