package wilcoxon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPseudoMedian(t *testing.T) {
	assert.Equal(t, 0.0, PseudoMedian(nil))
	assert.Equal(t, 4.5, PseudoMedian([]float64{4.5}))

	// Walsh averages 1, 1.5, 2, 2, 2.5, 3
	assert.Equal(t, 2.0, PseudoMedian([]float64{1, 2, 3}))

	// Walsh averages -1, 2, 5
	assert.Equal(t, 2.0, PseudoMedian([]float64{-1, 5}))

	assert.Equal(t, 2.0, PseudoMedian([]float64{3, 1, 2}))
}

func TestMedianDifference(t *testing.T) {
	d, err := MedianDifference([]float64{10, 20}, []float64{1})
	require.NoError(t, err)
	assert.Equal(t, 14.0, d)

	d, err = MedianDifference([]float64{5}, []float64{1, 2, 9})
	require.NoError(t, err)
	assert.Equal(t, 3.0, d)

	_, err = MedianDifference(nil, []float64{1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
