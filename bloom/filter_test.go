package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/urlcrawl/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndMayContain(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.MayContain("https://example.com/page1"))

	f.Add("https://example.com/page1")

	assert.True(t, f.MayContain("https://example.com/page1"))
	assert.False(t, f.MayContain("https://example.com/page2"))
}

func TestFilter_InvalidParametersFallBackToDefaults(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(0, 0)

	f.Add("https://example.com/")
	assert.True(t, f.MayContain("https://example.com/"))
}

func TestFilter_NoFalseNegatives(t *testing.T) {
	t.Parallel()

	const numItems = 5000

	f := bloom.NewFilter(numItems, 0.01)
	for i := range numItems {
		f.Add(fmt.Sprintf("https://example.com/added/%d", i))
	}

	for i := range numItems {
		url := fmt.Sprintf("https://example.com/added/%d", i)
		assert.True(t, f.MayContain(url), "added URL %s must be reported", url)
	}
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)
	for i := range numItems {
		f.Add(fmt.Sprintf("https://example.com/added/%d", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.MayContain(fmt.Sprintf("https://example.com/notadded/%d", i)) {
			falsePositives++
		}
	}

	// Allow up to 2% to account for statistical variance
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
