package plot

import (
	"image/color"
	"math"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

var (
	gridColor   = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	labelColor  = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	rawColor    = color.RGBA{R: 255, G: 165, B: 0, A: 255}   // Orange
	linearColor = color.RGBA{R: 100, G: 200, B: 255, A: 255} // Light blue
)

// curveRenderer renders the curve widget.
type curveRenderer struct {
	curve *CurveWidget

	background *canvas.Rectangle

	// Objects list for Fyne
	objects []fyne.CanvasObject

	// Track last size to detect changes
	lastSize fyne.Size
}

// MinSize returns the minimum size of the widget.
func (r *curveRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

// Layout arranges the widget components.
func (r *curveRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)

	if r.lastSize != size {
		r.lastSize = size
		r.curve.BaseWidget.Refresh()
	}
}

// Refresh rebuilds the canvas objects from the current data.
func (r *curveRenderer) Refresh() {
	r.curve.mu.RLock()
	raw := r.curve.displayRaw
	linear := r.curve.displayLinear
	yMin := r.curve.yMin
	yMax := r.curve.yMax
	rawCount, linearCount := len(r.curve.raw), len(r.curve.linear)
	r.curve.mu.RUnlock()

	size := r.curve.Size()
	r.objects = []fyne.CanvasObject{r.background}
	if size.Width == 0 || size.Height == 0 {
		return
	}

	marginLeft := float32(70.0)
	marginRight := float32(20.0)
	marginTop := float32(30.0)
	marginBottom := float32(40.0)

	area := plotArea{
		x:      marginLeft,
		y:      marginTop,
		width:  size.Width - marginLeft - marginRight,
		height: size.Height - marginTop - marginBottom,
		yMin:   yMin,
		yMax:   yMax,
	}

	r.drawGrid(area)
	r.drawSeries(area, raw, rawColor, 1.5)
	r.drawSeries(area, linear, linearColor, 2.5)
	r.drawLegend(area, rawCount, linearCount)
}

// plotArea is the inner rectangle curves are drawn into.
type plotArea struct {
	x, y, width, height float32
	yMin, yMax          float64
}

func (a plotArea) point(i, n int, v float64) fyne.Position {
	fx, fy := project(i, n, v, a.yMin, a.yMax)
	return fyne.NewPos(a.x+float32(fx)*a.width, a.y+a.height-float32(fy)*a.height)
}

// drawGrid draws the background grid with resistance and position labels.
func (r *curveRenderer) drawGrid(a plotArea) {
	numHLines := 8
	for i := range numHLines + 1 {
		y := a.y + float32(i)*a.height/float32(numHLines)
		r.addLine(gridColor, 1, fyne.NewPos(a.x, y), fyne.NewPos(a.x+a.width, y))

		value := a.yMax - float64(i)*(a.yMax-a.yMin)/float64(numHLines)
		text := canvas.NewText(formatOhms(value), labelColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignTrailing
		text.Move(fyne.NewPos(a.x-5, y-6))
		r.objects = append(r.objects, text)
	}

	numVLines := 10
	for i := range numVLines + 1 {
		x := a.x + float32(i)*a.width/float32(numVLines)
		r.addLine(gridColor, 1, fyne.NewPos(x, a.y), fyne.NewPos(x, a.y+a.height))

		text := canvas.NewText(formatPercent(float64(i)/float64(numVLines)), labelColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignCenter
		text.Move(fyne.NewPos(x-20, a.y+a.height+5))
		r.objects = append(r.objects, text)
	}
}

// drawSeries draws values as connected line segments. Non-finite values
// (open circuits) break the curve.
func (r *curveRenderer) drawSeries(a plotArea, values []float64, c color.Color, width float32) {
	if len(values) < 2 {
		return
	}
	for i := range len(values) - 1 {
		v0, v1 := values[i], values[i+1]
		if math.IsInf(v0, 0) || math.IsInf(v1, 0) || math.IsNaN(v0) || math.IsNaN(v1) {
			continue
		}
		r.addLine(c, width, a.point(i, len(values), v0), a.point(i+1, len(values), v1))
	}
}

// drawLegend labels both series with their point counts.
func (r *curveRenderer) drawLegend(a plotArea, rawCount, linearCount int) {
	entries := []struct {
		label string
		color color.Color
		count int
	}{
		{"raw", rawColor, rawCount},
		{"linearized", linearColor, linearCount},
	}
	x := a.x + 10
	for _, e := range entries {
		text := canvas.NewText(e.label+" ("+strconv.Itoa(e.count)+")", e.color)
		text.TextSize = 11
		text.Move(fyne.NewPos(x, a.y-22))
		r.objects = append(r.objects, text)
		x += 140
	}
}

func (r *curveRenderer) addLine(c color.Color, width float32, from, to fyne.Position) {
	line := canvas.NewLine(c)
	line.Position1 = from
	line.Position2 = to
	line.StrokeWidth = width
	r.objects = append(r.objects, line)
}

// Objects returns all canvas objects for rendering.
func (r *curveRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up resources.
func (r *curveRenderer) Destroy() {
	// Cleanup handled by Fyne
}
