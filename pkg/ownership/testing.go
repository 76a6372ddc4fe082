package ownership

import (
	"context"
	"sort"
	"strings"
)

// StaticBlameSource is an in-memory BlameSource for tests: a map from file
// path to its per-line author identities. Real git operations are not
// needed to exercise scoring and aggregation.
type StaticBlameSource struct {
	// Files maps repository-relative paths to one author per line.
	Files map[string][]string

	// Errors maps paths to an error returned verbatim from BlameLines,
	// overriding Files.
	Errors map[string]error

	// ListErr, when set, is returned from ListTrackedFiles.
	ListErr error
}

// ListTrackedFiles returns the sorted file paths under path, or ErrNotTracked
// when nothing matches.
func (s *StaticBlameSource) ListTrackedFiles(_ context.Context, path string) ([]string, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}

	var files []string

	for file := range s.Files {
		if underPath(file, path) {
			files = append(files, file)
		}
	}

	for file := range s.Errors {
		if underPath(file, path) {
			files = append(files, file)
		}
	}

	if len(files) == 0 {
		return nil, ErrNotTracked
	}

	sort.Strings(files)

	return files, nil
}

// BlameLines returns the configured per-line authors for file.
func (s *StaticBlameSource) BlameLines(_ context.Context, file string) ([]string, error) {
	if err, ok := s.Errors[file]; ok {
		return nil, err
	}

	authors, ok := s.Files[file]
	if !ok {
		return nil, ErrNotTracked
	}

	return authors, nil
}

func underPath(file, path string) bool {
	if path == "" || path == "." {
		return true
	}

	return file == path || strings.HasPrefix(file, path+"/")
}
