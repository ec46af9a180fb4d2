// Package plot renders resistance ladders as curves in a fyne widget.
package plot

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// DefaultMaxPoints limits the points drawn per series.
const DefaultMaxPoints = 1000

// CurveWidget is a custom Fyne widget that draws the raw sorted resistance
// ladder and its linearized subset on a shared scale.
type CurveWidget struct {
	widget.BaseWidget

	// Data (protected by mu)
	mu     sync.RWMutex
	raw    []float64
	linear []float64

	// Display series. Replaced, never written in place, so a renderer may
	// keep reading a slice it took under the read lock.
	displayRaw    []float64
	displayLinear []float64

	// Auto-scaling
	yMin, yMax float64

	maxDisplayPoints int
}

// New creates a new CurveWidget instance.
func New() *CurveWidget {
	c := &CurveWidget{
		yMin:             0,
		yMax:             1,
		maxDisplayPoints: DefaultMaxPoints,
	}
	c.ExtendBaseWidget(c)
	return c
}

// SetData replaces both series. Values are expected in ascending order.
// Call from the UI goroutine or wrap in fyne.Do().
func (c *CurveWidget) SetData(raw, linear []float64) {
	c.mu.Lock()

	c.displayRaw = Downsample(raw, c.maxDisplayPoints)
	c.displayLinear = Downsample(linear, c.maxDisplayPoints)

	c.raw = raw
	c.linear = linear

	c.yMin, c.yMax = autoscale(c.displayRaw, c.displayLinear)

	c.mu.Unlock()

	// Refresh outside the lock; the renderer takes a read lock.
	c.Refresh()
}

// Len returns the number of raw and linearized values held.
func (c *CurveWidget) Len() (raw, linear int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.raw), len(c.linear)
}

// CreateRenderer creates the widget renderer.
func (c *CurveWidget) CreateRenderer() fyne.WidgetRenderer {
	background := canvas.NewRectangle(color.RGBA{R: 20, G: 20, B: 20, A: 255}) // Dark background
	return &curveRenderer{
		curve:      c,
		background: background,
		objects:    []fyne.CanvasObject{background},
	}
}
