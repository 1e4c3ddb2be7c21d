// Package bloom provides a probabilistic membership pre-check for URLs.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// DefaultFalsePositiveRate is used by NewFilter when rate is not positive.
const DefaultFalsePositiveRate = 0.01

// Filter wraps a Bloom filter sized for an expected number of URLs.
// A negative answer from MayContain is definite; a positive answer must be
// confirmed against an exact set. Filter is not safe for concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a Filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	if fpRate <= 0 || fpRate >= 1 {
		fpRate = DefaultFalsePositiveRate
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a URL.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// MayContain reports whether the URL might have been added.
// False positives are possible; false negatives are not.
func (f *Filter) MayContain(url string) bool {
	return f.f.TestString(url)
}
