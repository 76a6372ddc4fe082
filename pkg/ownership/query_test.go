package ownership_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitowners/pkg/ownership"
)

func querySet() ownership.OwnershipSet {
	return ownership.NewOwnershipSet("pkg", map[string]int{
		"alice": 5,
		"bob":   3,
		"carol": 2,
	})
}

func TestTopReturnsSortedPrefix(t *testing.T) {
	t.Parallel()

	owners, err := ownership.Top(querySet(), 2)
	require.NoError(t, err)

	require.Len(t, owners, 2)
	assert.Equal(t, "alice", owners[0].Author)
	assert.Equal(t, "bob", owners[1].Author)
}

func TestTopZero(t *testing.T) {
	t.Parallel()

	owners, err := ownership.Top(querySet(), 0)
	require.NoError(t, err)
	assert.Empty(t, owners)
}

func TestTopClampsToOwnerCount(t *testing.T) {
	t.Parallel()

	owners, err := ownership.Top(querySet(), 100)
	require.NoError(t, err)
	assert.Len(t, owners, 3)
}

func TestTopNegative(t *testing.T) {
	t.Parallel()

	_, err := ownership.Top(querySet(), -1)
	assert.ErrorIs(t, err, ownership.ErrInvalidArgument)
}

func TestTopPercentSmallestCoveringPrefix(t *testing.T) {
	t.Parallel()

	// alice covers 0.5; alice+bob cover 0.8.
	owners, err := ownership.TopPercent(querySet(), 0.6)
	require.NoError(t, err)

	require.Len(t, owners, 2)
	assert.Equal(t, "alice", owners[0].Author)
	assert.Equal(t, "bob", owners[1].Author)
}

func TestTopPercentExactBoundary(t *testing.T) {
	t.Parallel()

	owners, err := ownership.TopPercent(querySet(), 0.5)
	require.NoError(t, err)

	require.Len(t, owners, 1)
	assert.Equal(t, "alice", owners[0].Author)
}

func TestTopPercentZeroIsEmpty(t *testing.T) {
	t.Parallel()

	owners, err := ownership.TopPercent(querySet(), 0)
	require.NoError(t, err)
	assert.Empty(t, owners)
}

func TestTopPercentFullCoverage(t *testing.T) {
	t.Parallel()

	owners, err := ownership.TopPercent(querySet(), 1.0)
	require.NoError(t, err)
	assert.Len(t, owners, 3)
}

func TestTopPercentOutOfRange(t *testing.T) {
	t.Parallel()

	_, err := ownership.TopPercent(querySet(), 1.5)
	assert.ErrorIs(t, err, ownership.ErrInvalidArgument)

	_, err = ownership.TopPercent(querySet(), -0.1)
	assert.ErrorIs(t, err, ownership.ErrInvalidArgument)
}

func TestSelectRejectsBothOptions(t *testing.T) {
	t.Parallel()

	count := 2
	percent := 0.5

	_, err := ownership.Select(querySet(), ownership.QueryOptions{Count: &count, Percent: &percent})
	assert.ErrorIs(t, err, ownership.ErrInvalidArgument)
}

func TestSelectNoOptionsReturnsAll(t *testing.T) {
	t.Parallel()

	set := querySet()

	owners, err := ownership.Select(set, ownership.QueryOptions{})
	require.NoError(t, err)

	assert.Equal(t, set.Owners, owners)

	// The result is a copy; mutating it must not touch the set.
	owners[0].Author = "mallory"
	assert.Equal(t, "alice", set.Owners[0].Author)
}

func TestSelectDispatchesCount(t *testing.T) {
	t.Parallel()

	count := 1

	owners, err := ownership.Select(querySet(), ownership.QueryOptions{Count: &count})
	require.NoError(t, err)

	require.Len(t, owners, 1)
	assert.Equal(t, "alice", owners[0].Author)
}

func TestSelectDispatchesPercent(t *testing.T) {
	t.Parallel()

	percent := 0.9

	owners, err := ownership.Select(querySet(), ownership.QueryOptions{Percent: &percent})
	require.NoError(t, err)
	assert.Len(t, owners, 3)
}
