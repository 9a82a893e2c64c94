package gogit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	difflib "github.com/pmezard/go-difflib/difflib"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/bumpchain/internal/domain/entities"
	"github.com/rios0rios0/bumpchain/internal/domain/repositories"
)

const diffContextLines = 3

// DiffRepository reads status and diffs in-process with go-git. Diffs
// compare the working tree against the index, like `git diff`.
type DiffRepository struct{}

var _ repositories.DiffRepository = (*DiffRepository)(nil)

func NewDiffRepository() *DiffRepository {
	return &DiffRepository{}
}

func (r *DiffRepository) Name() string {
	return entities.DiffProviderGoGit
}

// FindRoot walks up from dir until a repository is found.
func (r *DiffRepository) FindRoot(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("failed to open repository from %q: %w", dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to open worktree: %w", err)
	}
	return wt.Filesystem.Root(), nil
}

// GetChangedFiles lists every path with a staged, unstaged or untracked change.
func (r *DiffRepository) GetChangedFiles(ctx context.Context, repoRoot string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo, err := git.PlainOpen(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository %q: %w", repoRoot, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read status: %w", err)
	}

	files := make([]string, 0, len(status))
	for path, fileStatus := range status {
		if fileStatus.Staging == git.Unmodified && fileStatus.Worktree == git.Unmodified {
			continue
		}
		files = append(files, filepath.ToSlash(path))
	}
	slices.Sort(files)
	return files, nil
}

// GetDiff returns a unified diff of one file between the index and the
// working tree. Untracked files and unchanged files yield an empty diff.
func (r *DiffRepository) GetDiff(ctx context.Context, repoRoot, filePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	repo, err := git.PlainOpen(repoRoot)
	if err != nil {
		return "", fmt.Errorf("failed to open repository %q: %w", repoRoot, err)
	}

	staged, tracked, err := readIndexedContent(repo, filePath)
	if err != nil {
		return "", err
	}
	if !tracked {
		logger.Debugf("%s is not tracked, no diff", filePath)
		return "", nil
	}

	current, err := os.ReadFile(filepath.Join(repoRoot, filepath.FromSlash(filePath)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to read %q: %w", filePath, err)
	}

	return UnifiedDiff(filePath, staged, string(current))
}

// UnifiedDiff renders the a/ b/ prefixed unified diff between two contents.
func UnifiedDiff(filePath, before, after string) (string, error) {
	if before == after {
		return "", nil
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + filePath,
		ToFile:   "b/" + filePath,
		Context:  diffContextLines,
	})
	if err != nil {
		return "", fmt.Errorf("failed to diff %q: %w", filePath, err)
	}
	return diff, nil
}

func readIndexedContent(repo *git.Repository, filePath string) (string, bool, error) {
	idx, err := repo.Storer.Index()
	if err != nil {
		return "", false, fmt.Errorf("failed to read index: %w", err)
	}
	entry, err := idx.Entry(filePath)
	if errors.Is(err, index.ErrEntryNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to look up %q in index: %w", filePath, err)
	}

	blob, err := repo.BlobObject(entry.Hash)
	if err != nil {
		return "", false, fmt.Errorf("failed to load blob of %q: %w", filePath, err)
	}
	reader, err := blob.Reader()
	if err != nil {
		return "", false, fmt.Errorf("failed to open blob of %q: %w", filePath, err)
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return "", false, fmt.Errorf("failed to read blob of %q: %w", filePath, err)
	}
	return string(content), true, nil
}
