package plot

import (
	"math"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestCurveWidget_SetData(t *testing.T) {
	test.NewTempApp(t)

	raw := make([]float64, 3000)
	for i := range raw {
		raw[i] = float64(i) / 100
	}
	linear := []float64{0, 10, 20, 29.99}

	c := New()
	c.SetData(raw, linear)

	rawLen, linearLen := c.Len()
	assert.Equal(t, 3000, rawLen)
	assert.Equal(t, 4, linearLen)

	c.mu.RLock()
	assert.Len(t, c.displayRaw, DefaultMaxPoints)
	assert.Equal(t, linear, c.displayLinear)
	assert.Less(t, c.yMin, 0.0)
	assert.Greater(t, c.yMax, 29.99)
	c.mu.RUnlock()
}

func TestCurveWidget_Render(t *testing.T) {
	test.NewTempApp(t)

	c := New()
	c.SetData([]float64{1, 2, 4, math.Inf(1)}, []float64{1, 4})
	c.Resize(fyne.NewSize(400, 300))

	r := test.WidgetRenderer(c)
	r.Refresh()

	// Background, 9 horizontal and 11 vertical grid lines with labels,
	// 2 raw segments (the open circuit breaks the third), 1 linear segment,
	// 2 legend labels.
	assert.Len(t, r.Objects(), 1+9*2+11*2+2+1+2)
	assert.Equal(t, fyne.NewSize(400, 300), r.MinSize())
}

func TestCurveWidget_Empty(t *testing.T) {
	test.NewTempApp(t)

	c := New()
	r := test.WidgetRenderer(c)
	r.Refresh()
	assert.Len(t, r.Objects(), 1)
}

func TestCurveWidget_SetDataKeepsPreviousSeries(t *testing.T) {
	test.NewTempApp(t)

	c := New()
	c.SetData([]float64{1, 2, 3}, []float64{1, 3})

	// A renderer holds these after releasing the read lock.
	c.mu.RLock()
	raw, linear := c.displayRaw, c.displayLinear
	c.mu.RUnlock()

	c.SetData([]float64{10, 20, 30}, []float64{10, 30})

	assert.Equal(t, []float64{1, 2, 3}, raw)
	assert.Equal(t, []float64{1, 3}, linear)

	c.mu.RLock()
	assert.Equal(t, []float64{10, 20, 30}, c.displayRaw)
	assert.Equal(t, []float64{10, 30}, c.displayLinear)
	c.mu.RUnlock()
}
