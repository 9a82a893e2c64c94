package gitcli

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rios0rios0/bumpchain/internal/domain/entities"
	"github.com/rios0rios0/bumpchain/internal/domain/repositories"
)

// DiffRepository shells out to the git binary found on PATH.
type DiffRepository struct {
	binary string
}

var _ repositories.DiffRepository = (*DiffRepository)(nil)

func NewDiffRepository() *DiffRepository {
	return &DiffRepository{binary: "git"}
}

func (r *DiffRepository) Name() string {
	return entities.DiffProviderCLI
}

// FindRoot runs `git rev-parse --show-toplevel` from dir.
func (r *DiffRepository) FindRoot(dir string) (string, error) {
	output, err := r.run(context.Background(), dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return filepath.FromSlash(strings.TrimSpace(output)), nil
}

// GetChangedFiles parses `git status --porcelain`.
func (r *DiffRepository) GetChangedFiles(ctx context.Context, repoRoot string) ([]string, error) {
	output, err := r.run(ctx, repoRoot, "status", "--porcelain")
	if err != nil {
		return nil, err
	}
	return ParsePorcelainStatus(output), nil
}

// GetDiff runs `git diff -- <file>`, which compares the working tree with the index.
func (r *DiffRepository) GetDiff(ctx context.Context, repoRoot, filePath string) (string, error) {
	return r.run(ctx, repoRoot, "diff", "--", filePath)
}

func (r *DiffRepository) run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return string(output), nil
}

// ParsePorcelainStatus extracts paths from `git status --porcelain` output.
// Renames report their new path; C-quoted paths are unquoted.
func ParsePorcelainStatus(output string) []string {
	var files []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if len(line) <= 3 {
			continue
		}
		path := strings.TrimSpace(line[3:])
		if _, renamed, ok := strings.Cut(path, " -> "); ok {
			path = renamed
		}
		path = unquotePath(path)
		if path == "" || strings.ContainsRune(path, 0) {
			continue
		}
		files = append(files, path)
	}
	return files
}

func unquotePath(path string) string {
	if len(path) < 2 || !strings.HasPrefix(path, `"`) || !strings.HasSuffix(path, `"`) {
		return path
	}
	unquoted, err := strconv.Unquote(path)
	if err != nil {
		return path[1 : len(path)-1]
	}
	return unquoted
}
