// Package bloom provides card deduplication using Bloom filters. Corpus
// builds scan every stored card; the filter skips cards whose content ID
// was already seen, across documents.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter keyed by card content IDs.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected cards
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen records the card ID and reports whether it was already present.
// A true result may rarely be a false positive, which drops a unique
// card from the corpus; false negatives do not occur, so duplicates are
// never kept.
func (f *Filter) Seen(cardID string) bool {
	if f.f.TestString(cardID) {
		return true
	}
	f.f.AddString(cardID)
	return false
}

// EstimatedCount returns the approximate number of distinct cards seen.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
