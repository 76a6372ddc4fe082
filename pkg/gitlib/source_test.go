package gitlib_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	git2go "github.com/libgit2/git2go/v34"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitowners/pkg/gitlib"
	"github.com/Sumatoshi-tech/gitowners/pkg/ownership"
)

const (
	aliceIdentity = "Alice <alice@example.com>"
	bobIdentity   = "Bob <bob@example.com>"
)

// fixtureRepo is a temporary repository built commit by commit, each commit
// attributed to a chosen author so blame output is predictable.
type fixtureRepo struct {
	dir  string
	repo *git2go.Repository
}

func newFixtureRepo(t *testing.T) *fixtureRepo {
	t.Helper()

	dir := t.TempDir()

	repo, err := git2go.InitRepository(dir, false)
	require.NoError(t, err, "InitRepository")

	t.Cleanup(repo.Free)

	return &fixtureRepo{dir: dir, repo: repo}
}

func (f *fixtureRepo) writeFile(t *testing.T, name, content string) {
	t.Helper()

	p := filepath.Join(f.dir, name)

	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
}

func (f *fixtureRepo) commit(t *testing.T, name, email string) {
	t.Helper()

	index, err := f.repo.Index()
	require.NoError(t, err, "Index")

	defer index.Free()

	require.NoError(t, index.AddAll([]string{"*"}, git2go.IndexAddDefault, nil))
	require.NoError(t, index.Write())

	treeID, err := index.WriteTree()
	require.NoError(t, err, "WriteTree")

	tree, err := f.repo.LookupTree(treeID)
	require.NoError(t, err, "LookupTree")

	defer tree.Free()

	sig := &git2go.Signature{Name: name, Email: email, When: time.Now()}

	var parents []*git2go.Commit

	head, headErr := f.repo.Head()
	if headErr == nil {
		headCommit, lookupErr := f.repo.LookupCommit(head.Target())
		if lookupErr == nil && headCommit != nil {
			parents = append(parents, headCommit)
		}

		head.Free()
	}

	_, err = f.repo.CreateCommit("HEAD", sig, sig, "commit by "+name, tree, parents...)
	require.NoError(t, err, "CreateCommit")

	for _, p := range parents {
		p.Free()
	}
}

// twoAuthorFixture builds a repo where alice writes three lines of main.go
// and one line of sub/util.go, then bob appends two lines to main.go.
func twoAuthorFixture(t *testing.T) *fixtureRepo {
	t.Helper()

	f := newFixtureRepo(t)

	f.writeFile(t, "main.go", "package main\n\nfunc main() {}\n")
	f.writeFile(t, "sub/util.go", "package sub\n")
	f.commit(t, "Alice", "alice@example.com")

	f.writeFile(t, "main.go", "package main\n\nfunc main() {}\n\nfunc helper() {}\n")
	f.commit(t, "Bob", "bob@example.com")

	return f
}

func newTestSource(t *testing.T, f *fixtureRepo) *gitlib.Source {
	t.Helper()

	source, err := gitlib.NewSource(f.dir, 2)
	require.NoError(t, err)

	t.Cleanup(source.Close)

	return source
}

func TestListTrackedFilesWholeTree(t *testing.T) {
	f := twoAuthorFixture(t)
	source := newTestSource(t, f)

	files, err := source.ListTrackedFiles(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"main.go", "sub/util.go"}, files)
}

func TestListTrackedFilesSubdirectory(t *testing.T) {
	f := twoAuthorFixture(t)
	source := newTestSource(t, f)

	files, err := source.ListTrackedFiles(context.Background(), "sub")
	require.NoError(t, err)

	assert.Equal(t, []string{"sub/util.go"}, files)
}

func TestListTrackedFilesSingleFile(t *testing.T) {
	f := twoAuthorFixture(t)
	source := newTestSource(t, f)

	files, err := source.ListTrackedFiles(context.Background(), "main.go")
	require.NoError(t, err)

	assert.Equal(t, []string{"main.go"}, files)
}

func TestListTrackedFilesUntrackedPath(t *testing.T) {
	f := twoAuthorFixture(t)
	f.writeFile(t, "scratch.txt", "not committed\n")

	source := newTestSource(t, f)

	_, err := source.ListTrackedFiles(context.Background(), "scratch.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ownership.ErrNotTracked)
}

func TestListTrackedFilesMissingPath(t *testing.T) {
	f := twoAuthorFixture(t)
	source := newTestSource(t, f)

	_, err := source.ListTrackedFiles(context.Background(), "no/such/path.go")
	require.Error(t, err)
	assert.ErrorIs(t, err, ownership.ErrInvalidPath)
}

func TestBlameLinesAttributesPerAuthor(t *testing.T) {
	f := twoAuthorFixture(t)
	source := newTestSource(t, f)

	authors, err := source.BlameLines(context.Background(), "main.go")
	require.NoError(t, err)
	require.Len(t, authors, 5)

	// Alice wrote the first three lines; bob appended the last two.
	assert.Equal(t, aliceIdentity, authors[0])
	assert.Equal(t, aliceIdentity, authors[1])
	assert.Equal(t, aliceIdentity, authors[2])
	assert.Equal(t, bobIdentity, authors[3])
	assert.Equal(t, bobIdentity, authors[4])
}

func TestBlameLinesUntrackedFile(t *testing.T) {
	f := twoAuthorFixture(t)
	f.writeFile(t, "scratch.txt", "not committed\n")

	source := newTestSource(t, f)

	_, err := source.BlameLines(context.Background(), "scratch.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ownership.ErrNotTracked)
}

func TestSourceFeedsIndexBuild(t *testing.T) {
	f := twoAuthorFixture(t)
	source := newTestSource(t, f)

	idx, err := ownership.BuildIndex(context.Background(), source, "", ownership.BuildConfig{Workers: 2})
	require.NoError(t, err)
	require.True(t, idx.Tracked())

	summary := idx.Summarize()
	assert.Equal(t, 6, summary.Total)

	alice, ok := summary.Owner(aliceIdentity)
	require.True(t, ok)
	assert.Equal(t, 4, alice.Score.Lines)

	bob, ok := summary.Owner(bobIdentity)
	require.True(t, ok)
	assert.Equal(t, 2, bob.Score.Lines)
}

func TestRelPath(t *testing.T) {
	f := twoAuthorFixture(t)
	source := newTestSource(t, f)

	rel, err := source.RelPath(filepath.Join(f.dir, "sub", "util.go"))
	require.NoError(t, err)
	assert.Equal(t, "sub/util.go", rel)

	rel, err = source.RelPath(f.dir)
	require.NoError(t, err)
	assert.Empty(t, rel)

	_, err = source.RelPath(filepath.Dir(f.dir))
	assert.Error(t, err)
}
