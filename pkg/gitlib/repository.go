// Package gitlib adapts libgit2 to the ownership.BlameSource contract:
// listing the tracked files of the HEAD snapshot and producing one author
// identity per blamed line. Nothing here looks at history beyond the single
// blame snapshot.
package gitlib

import (
	"fmt"
	"path/filepath"
	"strings"

	git2go "github.com/libgit2/git2go/v34"
)

// Repository wraps a libgit2 repository handle. Handles are not safe for
// concurrent use; Pool hands out one per in-flight operation.
type Repository struct {
	repo *git2go.Repository
}

// OpenRepository discovers and opens the git repository containing path,
// searching upward the way the git CLI does.
func OpenRepository(path string) (*Repository, error) {
	repo, err := git2go.OpenRepositoryExtended(path, 0, "")
	if err != nil {
		return nil, fmt.Errorf("open repository at %s: %w", path, err)
	}

	return &Repository{repo: repo}, nil
}

// Workdir returns the repository working directory with a trailing slash.
func (r *Repository) Workdir() string {
	return r.repo.Workdir()
}

// RelPath converts an absolute filesystem path to the repository-relative
// slash form used by tree listings and blame.
func (r *Repository) RelPath(abs string) (string, error) {
	rel, err := filepath.Rel(filepath.Clean(r.Workdir()), abs)
	if err != nil {
		return "", fmt.Errorf("relativize %s: %w", abs, err)
	}

	rel = filepath.ToSlash(rel)
	if rel == "." {
		rel = ""
	}

	if strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("path %s is outside the repository worktree", abs)
	}

	return rel, nil
}

// Free releases the repository resources.
func (r *Repository) Free() {
	if r.repo != nil {
		r.repo.Free()
		r.repo = nil
	}
}

// headTree returns the tree of the HEAD commit. The caller owns the
// returned tree and must Free it.
func (r *Repository) headTree() (*git2go.Tree, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("get HEAD: %w", err)
	}
	defer ref.Free()

	commit, err := r.repo.LookupCommit(ref.Target())
	if err != nil {
		return nil, fmt.Errorf("lookup HEAD commit: %w", err)
	}
	defer commit.Free()

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("lookup HEAD tree: %w", err)
	}

	return tree, nil
}
