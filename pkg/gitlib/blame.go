package gitlib

import (
	"context"
	"fmt"

	git2go "github.com/libgit2/git2go/v34"

	"github.com/Sumatoshi-tech/gitowners/pkg/ownership"
)

// unknownAuthor stands in for hunks whose signature libgit2 could not
// resolve (e.g. boundary hunks of shallow clones).
const unknownAuthor = "unknown"

// BlameLines blames file at HEAD and expands the hunks into one author
// identity per line, in line order. This is a single structured pass over
// libgit2's hunk table; no text pipeline is involved.
func (s *Source) BlameLines(ctx context.Context, file string) ([]string, error) {
	repo, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer s.pool.Release(repo)

	opts, err := git2go.DefaultBlameOptions()
	if err != nil {
		return nil, fmt.Errorf("%w: blame options: %v", ownership.ErrBlameUnavailable, err)
	}

	blame, err := repo.repo.BlameFile(file, &opts)
	if err != nil {
		if git2go.IsErrorCode(err, git2go.ErrorCodeNotFound) {
			return nil, fmt.Errorf("%w: %s", ownership.ErrNotTracked, file)
		}

		return nil, fmt.Errorf("%w: blame %s: %v", ownership.ErrBlameUnavailable, file, err)
	}
	defer func() {
		_ = blame.Free()
	}()

	var authors []string

	for i := 0; i < blame.HunkCount(); i++ {
		hunk, hunkErr := blame.HunkByIndex(i)
		if hunkErr != nil {
			return nil, fmt.Errorf("%w: blame hunk %d of %s: %v", ownership.ErrBlameUnavailable, i, file, hunkErr)
		}

		identity := formatIdentity(hunk.FinalSignature)

		for range int(hunk.LinesInHunk) {
			authors = append(authors, identity)
		}
	}

	return authors, nil
}

// formatIdentity renders a signature as the exact identity string owners
// are keyed by. No normalization or alias merging happens here.
func formatIdentity(sig *git2go.Signature) string {
	if sig == nil || (sig.Name == "" && sig.Email == "") {
		return unknownAuthor
	}

	if sig.Email == "" {
		return sig.Name
	}

	return fmt.Sprintf("%s <%s>", sig.Name, sig.Email)
}
