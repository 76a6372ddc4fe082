package gitlib

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	git2go "github.com/libgit2/git2go/v34"

	"github.com/Sumatoshi-tech/gitowners/pkg/ownership"
)

// Source implements ownership.BlameSource on top of a libgit2 repository.
// It owns a pool of handles so blames can run across a worker pool without
// sharing libgit2 objects between goroutines.
type Source struct {
	pool    *Pool
	workdir string
}

// NewSource discovers the repository containing path and opens a pool of
// handles sized for the given worker count.
func NewSource(path string, handles int) (*Source, error) {
	pool, err := NewPool(path, handles)
	if err != nil {
		return nil, err
	}

	return &Source{pool: pool, workdir: pool.all[0].Workdir()}, nil
}

// Close frees all repository handles. Call only after in-flight work has
// drained.
func (s *Source) Close() {
	s.pool.Close()
}

// Workdir returns the repository working directory with a trailing slash.
func (s *Source) Workdir() string {
	return s.workdir
}

// RelPath converts an absolute filesystem path to the repository-relative
// form expected by ListTrackedFiles and BlameLines.
func (s *Source) RelPath(abs string) (string, error) {
	return s.pool.all[0].RelPath(abs)
}

// ListTrackedFiles walks the HEAD tree and returns the ordered
// repository-relative paths of every tracked file under p. A path that
// exists on disk but not in HEAD yields ownership.ErrNotTracked; a path
// that exists nowhere yields ownership.ErrInvalidPath.
func (s *Source) ListTrackedFiles(ctx context.Context, p string) ([]string, error) {
	repo, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer s.pool.Release(repo)

	tree, err := repo.headTree()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ownership.ErrBlameUnavailable, err)
	}
	defer tree.Free()

	if p == "" || p == "." {
		var files []string

		err = listTree(repo.repo, tree, "", &files)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ownership.ErrBlameUnavailable, err)
		}

		return files, nil
	}

	entry, err := tree.EntryByPath(p)
	if err != nil {
		if git2go.IsErrorCode(err, git2go.ErrorCodeNotFound) {
			return nil, s.classifyMissing(p)
		}

		return nil, fmt.Errorf("%w: lookup %s: %v", ownership.ErrBlameUnavailable, p, err)
	}

	switch entry.Type {
	case git2go.ObjectBlob:
		return []string{p}, nil
	case git2go.ObjectTree:
		sub, lookupErr := repo.repo.LookupTree(entry.Id)
		if lookupErr != nil {
			return nil, fmt.Errorf("%w: lookup subtree %s: %v", ownership.ErrBlameUnavailable, p, lookupErr)
		}
		defer sub.Free()

		var files []string

		err = listTree(repo.repo, sub, p, &files)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ownership.ErrBlameUnavailable, err)
		}

		return files, nil
	default:
		// Submodule commits and other oddities are not blamed.
		return nil, fmt.Errorf("%w: %s", ownership.ErrNotTracked, p)
	}
}

// classifyMissing distinguishes an untracked-but-present path from one that
// does not exist at all.
func (s *Source) classifyMissing(p string) error {
	_, statErr := os.Stat(filepath.Join(s.workdir, filepath.FromSlash(p)))
	if statErr != nil {
		return fmt.Errorf("%w: %s", ownership.ErrInvalidPath, p)
	}

	return fmt.Errorf("%w: %s", ownership.ErrNotTracked, p)
}

// listTree appends every blob beneath tree to out, in git tree order, with
// paths joined onto prefix.
func listTree(repo *git2go.Repository, tree *git2go.Tree, prefix string, out *[]string) error {
	for i := uint64(0); i < tree.EntryCount(); i++ {
		entry := tree.EntryByIndex(i)
		if entry == nil {
			continue
		}

		name := path.Join(prefix, entry.Name)

		switch entry.Type {
		case git2go.ObjectBlob:
			*out = append(*out, name)
		case git2go.ObjectTree:
			sub, err := repo.LookupTree(entry.Id)
			if err != nil {
				return fmt.Errorf("lookup subtree %s: %w", name, err)
			}

			err = listTree(repo, sub, name, out)
			sub.Free()

			if err != nil {
				return err
			}
		default:
			// Submodule commits contribute no blamed lines.
		}
	}

	return nil
}
