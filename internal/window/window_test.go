package window

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		offset    float64
		viewport  float64
		height    float64
		count     int
		overscan  int
		wantRange Range
	}{
		{
			name:      "scrolled into the middle with overscan",
			offset:    1000,
			viewport:  400,
			height:    100,
			count:     1000,
			overscan:  5,
			wantRange: Range{Start: 5, End: 19},
		},
		{
			name:      "top of the list clips overscan at zero",
			offset:    0,
			viewport:  400,
			height:    100,
			count:     1000,
			overscan:  5,
			wantRange: Range{Start: 0, End: 9},
		},
		{
			name:      "bottom of the list clips overscan at the last item",
			offset:    99600,
			viewport:  400,
			height:    100,
			count:     1000,
			overscan:  5,
			wantRange: Range{Start: 991, End: 999},
		},
		{
			name:      "fewer items than fit in the viewport",
			offset:    0,
			viewport:  400,
			height:    100,
			count:     2,
			overscan:  0,
			wantRange: Range{Start: 0, End: 1},
		},
		{
			name:      "zero height viewport still yields the item at the offset",
			offset:    250,
			viewport:  0,
			height:    100,
			count:     10,
			overscan:  0,
			wantRange: Range{Start: 2, End: 2},
		},
		{
			name:      "partial item offset",
			offset:    150,
			viewport:  200,
			height:    100,
			count:     10,
			overscan:  0,
			wantRange: Range{Start: 1, End: 3},
		},
		{
			name:      "over-scrolled offset keeps the last item",
			offset:    1e9,
			viewport:  400,
			height:    100,
			count:     10,
			overscan:  2,
			wantRange: Range{Start: 9, End: 9},
		},
		{
			name:      "negative offset reads as zero",
			offset:    -300,
			viewport:  200,
			height:    100,
			count:     10,
			overscan:  0,
			wantRange: Range{Start: 0, End: 2},
		},
		{
			name:      "fractional heights",
			offset:    1.5,
			viewport:  1,
			height:    0.5,
			count:     100,
			overscan:  1,
			wantRange: Range{Start: 2, End: 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, err := Compute(tt.offset, tt.viewport, tt.height, tt.count, tt.overscan)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRange, r)
		})
	}
}

func TestComputeEmptyCollection(t *testing.T) {
	t.Parallel()

	for _, offset := range []float64{0, 10, 1e6} {
		r, err := Compute(offset, 400, 100, 0, 5)
		require.NoError(t, err)
		assert.True(t, r.Empty())
		assert.Equal(t, 0, r.Len())
	}
}

func TestComputeInvalidConfiguration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		viewport float64
		height   float64
		overscan int
	}{
		{name: "zero item height", viewport: 400, height: 0},
		{name: "negative item height", viewport: 400, height: -1},
		{name: "NaN item height", viewport: 400, height: math.NaN()},
		{name: "infinite item height", viewport: 400, height: math.Inf(1)},
		{name: "negative viewport", viewport: -1, height: 100},
		{name: "negative overscan", viewport: 400, height: 100, overscan: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Compute(0, tt.viewport, tt.height, 10, tt.overscan)
			require.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}

	t.Run("empty collection does not hide a bad height", func(t *testing.T) {
		t.Parallel()
		_, err := Compute(0, 400, 0, 0, 0)
		require.ErrorIs(t, err, ErrInvalidConfiguration)
	})
}

func TestComputeRangeContainment(t *testing.T) {
	t.Parallel()

	counts := []int{1, 2, 7, 100, 1000}
	heights := []float64{0.25, 1, 3, 100}
	viewports := []float64{0, 1, 50, 400, 10000}
	overscans := []int{0, 1, 5, 1000}
	offsets := []float64{0, 0.5, 99, 100, 12345, 1e12}

	for _, count := range counts {
		for _, height := range heights {
			for _, viewport := range viewports {
				for _, overscan := range overscans {
					for _, offset := range offsets {
						r, err := Compute(offset, viewport, height, count, overscan)
						require.NoError(t, err)
						require.Truef(t, 0 <= r.Start && r.Start <= r.End && r.End <= count-1,
							"range %v out of bounds for count=%d height=%v viewport=%v overscan=%d offset=%v",
							r, count, height, viewport, overscan, offset)
					}
				}
			}
		}
	}
}

func TestComputeOverscanMonotonic(t *testing.T) {
	t.Parallel()

	for _, offset := range []float64{0, 150, 5000, 99999} {
		prev, err := Compute(offset, 400, 100, 1000, 0)
		require.NoError(t, err)
		for overscan := 1; overscan <= 20; overscan++ {
			r, err := Compute(offset, 400, 100, 1000, overscan)
			require.NoError(t, err)
			assert.LessOrEqual(t, r.Start, prev.Start)
			assert.GreaterOrEqual(t, r.End, prev.End)
			prev = r
		}
	}
}

func TestComputeIsPure(t *testing.T) {
	t.Parallel()

	first, err := Compute(1234, 400, 100, 1000, 3)
	require.NoError(t, err)
	for range 10 {
		again, err := Compute(1234, 400, 100, 1000, 3)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestComputeDoesNotAllocate(t *testing.T) {
	allocs := testing.AllocsPerRun(100, func() {
		_, _ = Compute(1000, 400, 100, math.MaxInt32, 5)
	})
	assert.Zero(t, allocs)
}

func TestRange(t *testing.T) {
	t.Parallel()

	r := Range{Start: 5, End: 19}
	assert.False(t, r.Empty())
	assert.Equal(t, 15, r.Len())
	assert.True(t, r.Contains(5))
	assert.True(t, r.Contains(19))
	assert.False(t, r.Contains(4))
	assert.False(t, r.Contains(20))
	assert.Equal(t, "[5, 19]", r.String())

	assert.True(t, EmptyRange.Empty())
	assert.False(t, EmptyRange.Contains(0))
	assert.Equal(t, "[]", EmptyRange.String())
}
