package ownership

import (
	"context"
	"fmt"
)

// BlameSource supplies the per-line authorship snapshot for tracked files.
// Implementations return ErrNotTracked (possibly wrapped) when a path is
// outside version control and ErrBlameUnavailable for any other failure of
// the blame facility.
type BlameSource interface {
	// ListTrackedFiles returns ordered repository-relative paths of every
	// tracked file under path (just the path itself for a tracked file).
	ListTrackedFiles(ctx context.Context, path string) ([]string, error)

	// BlameLines returns one author identity per line of file, in line order.
	BlameLines(ctx context.Context, file string) ([]string, error)
}

// FileScorer converts one file's raw author-per-line sequence into a
// normalized ownership set.
type FileScorer struct {
	source BlameSource
}

// NewFileScorer creates a scorer backed by the given blame source.
func NewFileScorer(source BlameSource) *FileScorer {
	return &FileScorer{source: source}
}

// ScoreFile blames path and counts lines per author. An empty file yields an
// empty set and no error. ErrNotTracked propagates so callers can fold it
// into a zero contribution; any other blame failure is fatal and passes
// through with its identity intact.
func (fs *FileScorer) ScoreFile(ctx context.Context, path string) (OwnershipSet, error) {
	authors, err := fs.source.BlameLines(ctx, path)
	if err != nil {
		return OwnershipSet{}, fmt.Errorf("score %s: %w", path, err)
	}

	lines := make(map[string]int, 8)
	for _, author := range authors {
		lines[author]++
	}

	return NewOwnershipSet(path, lines), nil
}
