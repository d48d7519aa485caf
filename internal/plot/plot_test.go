package plot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoundsHandlesConstantSlice(t *testing.T) {
	min, max := bounds([]float64{5, 5, 5})
	require.Equal(t, 5.0, min)
	require.Equal(t, 6.0, max)
}

func TestBoundsHandlesEmptySlice(t *testing.T) {
	min, max := bounds(nil)
	require.Equal(t, 0.0, min)
	require.Equal(t, 1.0, max)
}

func TestHistogramCountsDistributesIntoBins(t *testing.T) {
	counts := histogramCounts([]float64{0, 1, 2, 3, 4, 5}, 2)
	require.Len(t, counts, 2)
	total := 0
	for _, c := range counts {
		total += c
	}
	require.Equal(t, 6, total)
}

func TestHistogramCountsOnConstantValuesPutsEverythingInFirstBin(t *testing.T) {
	counts := histogramCounts([]float64{3, 3, 3}, 4)
	require.Equal(t, 3, counts[0])
}

func TestProjectMapsIntoCanvasBounds(t *testing.T) {
	px, py := project(5, 5, 0, 10, 0, 10)
	require.GreaterOrEqual(t, px, margin)
	require.LessOrEqual(t, px, canvasWidth-margin)
	require.GreaterOrEqual(t, py, margin)
	require.LessOrEqual(t, py, canvasHeight-margin)
}
