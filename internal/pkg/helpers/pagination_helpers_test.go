package helpers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagerPageCountAndConcat(t *testing.T) {
	// Concatenating every page must reproduce the original sequence in order
	// for any size/count combination.
	for _, size := range []int{1, 3, 7, 10} {
		for _, n := range []int{0, 1, 9, 10, 11, 25} {
			items := make([]int, n)
			for i := range items {
				items[i] = i
			}

			pager := NewPager(n, size)
			wantPages := int(math.Ceil(float64(n) / float64(size)))
			assert.Equal(t, wantPages, pager.TotalPages, "n=%d size=%d", n, size)

			concat := []int{}
			for page := 1; page <= pager.TotalPages; page++ {
				lo, hi := pager.SliceBounds(page)
				concat = append(concat, items[lo:hi]...)
			}
			assert.Equal(t, items, concat, "n=%d size=%d", n, size)
		}
	}
}

func TestPagerGoToPageClamps(t *testing.T) {
	pager := NewPager(25, 10)
	assert.Equal(t, 3, pager.TotalPages)

	assert.Equal(t, 1, pager.GoToPage(-100))
	assert.Equal(t, 1, pager.GoToPage(0))
	assert.Equal(t, 2, pager.GoToPage(2))
	assert.Equal(t, 3, pager.GoToPage(3))
	assert.Equal(t, 3, pager.GoToPage(9999))
}

func TestPagerEmpty(t *testing.T) {
	pager := NewPager(0, 10)
	assert.Equal(t, 0, pager.TotalPages)
	assert.Equal(t, 1, pager.GoToPage(5))

	lo, hi := pager.SliceBounds(1)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 0, hi)

	start, end := pager.DisplayBounds(1)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestPagerDisplayBounds(t *testing.T) {
	pager := NewPager(25, 10)

	start, end := pager.DisplayBounds(2)
	assert.Equal(t, 11, start)
	assert.Equal(t, 20, end)

	start, end = pager.DisplayBounds(3)
	assert.Equal(t, 21, start)
	assert.Equal(t, 25, end)
}

func TestQueryRange(t *testing.T) {
	pager := NewPager(100, 10)

	// from == (page-1)*size and every non-final window spans exactly one page.
	for page := 1; page <= pager.TotalPages; page++ {
		from, to := pager.QueryRange(page)
		assert.Equal(t, (page-1)*10, from)
		assert.Equal(t, 10, to-from+1)
	}

	// Out-of-range pages clamp to the last window.
	from, to := pager.QueryRange(42)
	assert.Equal(t, 90, from)
	assert.Equal(t, 99, to)
}
