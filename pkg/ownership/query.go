package ownership

import (
	"fmt"
	"slices"
)

// QueryOptions selects a prefix of an ownership set. At most one of Count
// and Percent may be set; neither means all owners.
type QueryOptions struct {
	// Count limits the result to the first n owners by descending fraction.
	Count *int

	// Percent selects the smallest sorted prefix whose cumulative fraction
	// reaches the given value in [0, 1].
	Percent *float64
}

// Select applies the query options to a set. Supplying both options is
// caller misuse and fails with ErrInvalidArgument before any work.
func Select(set OwnershipSet, opts QueryOptions) ([]Ownership, error) {
	switch {
	case opts.Count != nil && opts.Percent != nil:
		return nil, fmt.Errorf("%w: count and percent are mutually exclusive", ErrInvalidArgument)
	case opts.Count != nil:
		return Top(set, *opts.Count)
	case opts.Percent != nil:
		return TopPercent(set, *opts.Percent)
	default:
		return slices.Clone(set.Owners), nil
	}
}

// Top returns the first n owners by descending fraction. n = 0 yields an
// empty result; n beyond the owner count yields all owners.
func Top(set OwnershipSet, n int) ([]Ownership, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: count must be non-negative, got %d", ErrInvalidArgument, n)
	}

	if n > len(set.Owners) {
		n = len(set.Owners)
	}

	return slices.Clone(set.Owners[:n]), nil
}

// TopPercent returns the smallest sorted prefix whose cumulative fraction
// reaches percent. The empty prefix already satisfies percent = 0.
func TopPercent(set OwnershipSet, percent float64) ([]Ownership, error) {
	if percent < 0 || percent > 1 {
		return nil, fmt.Errorf("%w: percent must be within [0, 1], got %v", ErrInvalidArgument, percent)
	}

	if percent == 0 {
		return []Ownership{}, nil
	}

	cumulative := 0.0

	for i, owner := range set.Owners {
		cumulative += owner.Score.Fraction()
		if cumulative >= percent {
			return slices.Clone(set.Owners[:i+1]), nil
		}
	}

	// Rounding can leave the cumulative fraction a hair under the target;
	// the full set is the correct answer then.
	return slices.Clone(set.Owners), nil
}
