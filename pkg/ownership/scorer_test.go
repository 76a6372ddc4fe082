package ownership_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitowners/pkg/ownership"
)

func TestScoreFileCountsLinesPerAuthor(t *testing.T) {
	t.Parallel()

	source := &ownership.StaticBlameSource{Files: map[string][]string{
		"main.go": {"alice", "alice", "bob"},
	}}
	scorer := ownership.NewFileScorer(source)

	set, err := scorer.ScoreFile(context.Background(), "main.go")
	require.NoError(t, err)

	require.Len(t, set.Owners, 2)
	assert.Equal(t, 3, set.Total)

	alice, ok := set.Owner("alice")
	require.True(t, ok)
	assert.Equal(t, 2, alice.Score.Lines)
	assert.InDelta(t, 2.0/3.0, alice.Score.Fraction(), 1e-12)

	bob, ok := set.Owner("bob")
	require.True(t, ok)
	assert.Equal(t, 1, bob.Score.Lines)
	assert.InDelta(t, 1.0/3.0, bob.Score.Fraction(), 1e-12)
}

func TestScoreFileEmptyFile(t *testing.T) {
	t.Parallel()

	source := &ownership.StaticBlameSource{Files: map[string][]string{
		"empty.go": {},
	}}
	scorer := ownership.NewFileScorer(source)

	set, err := scorer.ScoreFile(context.Background(), "empty.go")
	require.NoError(t, err)

	assert.True(t, set.IsEmpty())
	assert.Zero(t, set.Total)
}

func TestScoreFileNotTrackedPropagates(t *testing.T) {
	t.Parallel()

	source := &ownership.StaticBlameSource{Files: map[string][]string{}}
	scorer := ownership.NewFileScorer(source)

	_, err := scorer.ScoreFile(context.Background(), "ghost.go")
	require.Error(t, err)
	assert.ErrorIs(t, err, ownership.ErrNotTracked)
}

func TestScoreFileBlameFailurePreservesIdentity(t *testing.T) {
	t.Parallel()

	source := &ownership.StaticBlameSource{Errors: map[string]error{
		"broken.go": ownership.ErrBlameUnavailable,
	}}
	scorer := ownership.NewFileScorer(source)

	_, err := scorer.ScoreFile(context.Background(), "broken.go")
	require.Error(t, err)
	assert.ErrorIs(t, err, ownership.ErrBlameUnavailable)
	assert.False(t, errors.Is(err, ownership.ErrNotTracked))
}
