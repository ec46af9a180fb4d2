package plot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownsample_NoDownsampling(t *testing.T) {
	values := []float64{1.0, 1.1, 1.2}

	result := Downsample(values, 10)
	require.Equal(t, 3, len(result))
	assert.Equal(t, values, result)

	// Result never aliases the input
	result[0] = 42
	assert.Equal(t, 1.0, values[0])
}

func TestDownsample_WithDownsampling(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i) * 0.01
	}

	result := Downsample(values, 10)
	require.Equal(t, 10, len(result))

	assert.Equal(t, values[0], result[0])
	assert.Equal(t, values[99], result[len(result)-1])
	assert.IsNonDecreasing(t, result)
}

func TestDownsample_Edge(t *testing.T) {
	tests := []struct {
		name      string
		src       []float64
		maxPoints int
		want      []float64
	}{
		{name: "empty", src: nil, maxPoints: 5, want: nil},
		{name: "single point", src: []float64{1, 2, 3}, maxPoints: 1, want: []float64{1}},
		{name: "no limit", src: []float64{1, 2, 3}, maxPoints: 0, want: []float64{1, 2, 3}},
		{name: "two points", src: []float64{1, 2, 3, 4, 5}, maxPoints: 2, want: []float64{1, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Downsample(tt.src, tt.maxPoints)
			assert.Equal(t, tt.want, got)
		})
	}
}
