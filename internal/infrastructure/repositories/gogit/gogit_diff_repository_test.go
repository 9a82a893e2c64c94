//go:build integration

package gogit_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/bumpchain/internal/infrastructure/repositories/gogit"
)

const committedManifest = `<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup>
    <Version>1.0.0.0</Version>
  </PropertyGroup>
</Project>
`

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// initRepository commits Core/Core.csproj into a fresh repository.
func initRepository(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)

	writeFile(t, root, "Core/Core.csproj", committedManifest)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("Core/Core.csproj")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "dev", Email: "dev@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return root
}

func TestDiffRepository(t *testing.T) {
	t.Parallel()

	t.Run("should report modified and untracked files", func(t *testing.T) {
		t.Parallel()

		// given
		root := initRepository(t)
		writeFile(t, root, "Core/Core.csproj", `<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup>
    <Version>1.1.0.0</Version>
  </PropertyGroup>
</Project>
`)
		writeFile(t, root, "Core/New.cs", "class New {}\n")
		repository := gogit.NewDiffRepository()

		// when
		files, err := repository.GetChangedFiles(context.Background(), root)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"Core/Core.csproj", "Core/New.cs"}, files)
	})

	t.Run("should diff the working tree against the index", func(t *testing.T) {
		t.Parallel()

		// given
		root := initRepository(t)
		writeFile(t, root, "Core/Core.csproj", `<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup>
    <Version>1.1.0.0</Version>
  </PropertyGroup>
</Project>
`)
		repository := gogit.NewDiffRepository()

		// when
		diff, err := repository.GetDiff(context.Background(), root, "Core/Core.csproj")

		// then
		require.NoError(t, err)
		assert.Contains(t, diff, "--- a/Core/Core.csproj")
		assert.Contains(t, diff, "+++ b/Core/Core.csproj")
		assert.Contains(t, diff, "-    <Version>1.0.0.0</Version>")
		assert.Contains(t, diff, "+    <Version>1.1.0.0</Version>")
	})

	t.Run("should return an empty diff for untracked and unchanged files", func(t *testing.T) {
		t.Parallel()

		// given
		root := initRepository(t)
		writeFile(t, root, "Core/New.cs", "class New {}\n")
		repository := gogit.NewDiffRepository()

		// when
		untracked, untrackedErr := repository.GetDiff(context.Background(), root, "Core/New.cs")
		unchanged, unchangedErr := repository.GetDiff(context.Background(), root, "Core/Core.csproj")

		// then
		require.NoError(t, untrackedErr)
		require.NoError(t, unchangedErr)
		assert.Empty(t, untracked)
		assert.Empty(t, unchanged)
	})

	t.Run("should find the root from a nested directory", func(t *testing.T) {
		t.Parallel()

		// given
		root := initRepository(t)
		repository := gogit.NewDiffRepository()

		// when
		found, err := repository.FindRoot(filepath.Join(root, "Core"))

		// then
		require.NoError(t, err)
		expected, evalErr := filepath.EvalSymlinks(root)
		require.NoError(t, evalErr)
		actual, evalErr := filepath.EvalSymlinks(found)
		require.NoError(t, evalErr)
		assert.Equal(t, expected, actual)
	})
}

func TestUnifiedDiff(t *testing.T) {
	t.Parallel()

	t.Run("should mark a deleted file as all removals", func(t *testing.T) {
		t.Parallel()

		// when
		diff, err := gogit.UnifiedDiff("Core/Core.csproj", "<Version>1.0</Version>\n", "")

		// then
		require.NoError(t, err)
		assert.Contains(t, diff, "-<Version>1.0</Version>")
	})
}
