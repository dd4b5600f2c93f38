package huffman

import (
	"cmp"
	"slices"
)

// Symbol is the constraint satisfied by all symbol types.  Symbols must be
// totally ordered, as the ordering is used to break ties between nodes of
// equal weight.
type Symbol interface {
	cmp.Ordered
}

// Weight is the constraint satisfied by all weight types.  A weight is an
// unnormalized frequency or probability, and must not be negative.
type Weight interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Entry pairs a Symbol with its Weight.
type Entry[S Symbol, W Weight] struct {
	Symbol S
	Weight W
}

// MakeEntry is a convenience function that constructs an Entry.
func MakeEntry[S Symbol, W Weight](symbol S, weight W) Entry[S, W] {
	return Entry[S, W]{Symbol: symbol, Weight: weight}
}

// EntriesFromMap converts a symbol-to-weight mapping into a list of entries,
// sorted by symbol.
func EntriesFromMap[S Symbol, W Weight](weights map[S]W) []Entry[S, W] {
	entries := make([]Entry[S, W], 0, len(weights))
	for symbol, weight := range weights {
		entries = append(entries, Entry[S, W]{symbol, weight})
	}
	sortEntries(entries)
	return entries
}

// Count tallies the number of occurrences of each distinct Symbol in input.
// The result is sorted by symbol and is suitable for passing to Build.
func Count[S Symbol](input []S) []Entry[S, uint64] {
	counts := make(map[S]uint64)
	for _, symbol := range input {
		counts[symbol]++
	}
	return EntriesFromMap(counts)
}

func sortEntries[S Symbol, W Weight](entries []Entry[S, W]) {
	slices.SortFunc(entries, func(a, b Entry[S, W]) int {
		return cmp.Compare(a.Symbol, b.Symbol)
	})
}

// isNaN reports whether w is a floating-point NaN.  It is always false for
// integer weights.
func isNaN[W Weight](w W) bool {
	return w != w
}
