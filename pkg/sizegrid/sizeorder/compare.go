package sizeorder

import "slices"

// Comparator orders size tokens by rank. Ranked tokens come first in rank
// order; unranked tokens compare equal to each other, so a stable sort
// keeps their input order.
type Comparator struct {
	ranks *Ranks
}

// New returns a Comparator over ranks. A nil table selects DefaultRanks.
func New(ranks *Ranks) Comparator {
	if ranks == nil {
		ranks = DefaultRanks()
	}
	return Comparator{ranks: ranks}
}

// Ranks returns the table backing c.
func (c Comparator) Ranks() *Ranks {
	if c.ranks == nil {
		return DefaultRanks()
	}
	return c.ranks
}

// Compare returns a negative number when a sorts before b, a positive
// number when after, and zero when they are equivalent.
func (c Comparator) Compare(a, b string) int {
	ranks := c.Ranks()
	ra, okA := ranks.Rank(a)
	rb, okB := ranks.Rank(b)

	switch {
	case okA && okB:
		switch {
		case ra < rb:
			return -1
		case ra > rb:
			return 1
		}
		return 0
	case okA:
		return -1
	case okB:
		return 1
	}
	return 0
}

// Sort sorts sizes in place, stably.
func (c Comparator) Sort(sizes []string) {
	slices.SortStableFunc(sizes, c.Compare)
}

// Sorted returns a sorted copy of sizes.
func (c Comparator) Sorted(sizes []string) []string {
	out := slices.Clone(sizes)
	c.Sort(out)
	return out
}

// Sort returns a copy of sizes sorted with the default rank table.
func Sort(sizes []string) []string {
	return New(nil).Sorted(sizes)
}
