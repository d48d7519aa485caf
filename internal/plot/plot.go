// Package plot implements the windowed scatter-plot and histogram
// renderer the VM's PLOT and HIST opcodes draw through. Rendering is
// synchronous: EbitenSink opens a window and blocks the calling goroutine
// until the user closes it, then returns, exactly as the VM's dataframe
// opcodes require.
package plot

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	canvasWidth  = 640
	canvasHeight = 480
	margin       = 48
)

// EbitenSink implements vm.PlotSink, drawing each plot onto a fresh
// fixed-size bitmap canvas.
type EbitenSink struct {
	title string
}

// NewEbitenSink builds a sink that titles its window with the given
// program name, for the CLI to pass through from the source file path.
func NewEbitenSink(title string) *EbitenSink {
	return &EbitenSink{title: title}
}

// Scatter opens a blocking window plotting xs against ys as points.
func (s *EbitenSink) Scatter(xs, ys []float64) error {
	canvas := image.NewRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))
	fillBackground(canvas)
	drawAxes(canvas)

	minX, maxX := bounds(xs)
	minY, maxY := bounds(ys)
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	for i := 0; i < n; i++ {
		px, py := project(xs[i], ys[i], minX, maxX, minY, maxY)
		drawPoint(canvas, px, py, color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff})
	}
	drawAxisTicks(canvas, minX, maxX, minY, maxY)

	return s.run(canvas, "scatter")
}

// Histogram opens a blocking window plotting values binned into bins
// equal-width buckets.
func (s *EbitenSink) Histogram(values []float64, bins int) error {
	if bins <= 0 {
		bins = 1
	}
	canvas := image.NewRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))
	fillBackground(canvas)
	drawAxes(canvas)

	counts := histogramCounts(values, bins)
	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	plotW := canvasWidth - 2*margin
	barW := plotW / bins
	for i, c := range counts {
		if maxCount == 0 {
			continue
		}
		barH := int(float64(c) / float64(maxCount) * float64(canvasHeight-2*margin))
		x0 := margin + i*barW
		y0 := canvasHeight - margin - barH
		drawRect(canvas, x0, y0, x0+barW-2, canvasHeight-margin, color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff})
	}
	drawLabel(canvas, margin, canvasHeight-margin+14, strconv.Itoa(maxCount))

	return s.run(canvas, "histogram")
}

func histogramCounts(values []float64, bins int) []int {
	counts := make([]int, bins)
	if len(values) == 0 {
		return counts
	}
	lo, hi := bounds(values)
	width := hi - lo
	if width == 0 {
		width = 1
	}
	for _, v := range values {
		idx := int((v - lo) / width * float64(bins))
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		counts[idx]++
	}
	return counts
}

func bounds(vals []float64) (min, max float64) {
	if len(vals) == 0 {
		return 0, 1
	}
	min, max = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		max = min + 1
	}
	return min, max
}

func project(x, y, minX, maxX, minY, maxY float64) (int, int) {
	plotW := float64(canvasWidth - 2*margin)
	plotH := float64(canvasHeight - 2*margin)
	px := margin + int((x-minX)/(maxX-minX)*plotW)
	py := canvasHeight - margin - int((y-minY)/(maxY-minY)*plotH)
	return px, py
}

func fillBackground(canvas *image.RGBA) {
	bg := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	for y := 0; y < canvasHeight; y++ {
		for x := 0; x < canvasWidth; x++ {
			canvas.SetRGBA(x, y, bg)
		}
	}
}

func drawAxes(canvas *image.RGBA) {
	axis := color.RGBA{A: 0xff}
	for x := margin; x < canvasWidth-margin; x++ {
		canvas.SetRGBA(x, canvasHeight-margin, axis)
	}
	for y := margin; y < canvasHeight-margin; y++ {
		canvas.SetRGBA(margin, y, axis)
	}
}

func drawPoint(canvas *image.RGBA, x, y int, c color.RGBA) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			px, py := x+dx, y+dy
			if px >= 0 && px < canvasWidth && py >= 0 && py < canvasHeight {
				canvas.SetRGBA(px, py, c)
			}
		}
	}
}

// drawAxisTicks labels the axis extremes, the one piece of text that isn't
// just a caption: readers need to know what the plotted range actually is.
func drawAxisTicks(canvas *image.RGBA, minX, maxX, minY, maxY float64) {
	drawLabel(canvas, margin, canvasHeight-margin+14, formatTick(minX))
	drawLabel(canvas, canvasWidth-margin-32, canvasHeight-margin+14, formatTick(maxX))
	drawLabel(canvas, 2, canvasHeight-margin, formatTick(minY))
	drawLabel(canvas, 2, margin, formatTick(maxY))
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// drawLabel renders text onto canvas with x/image's basic bitmap font.
func drawLabel(canvas *image.RGBA, x, y int, text string) {
	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.RGBA{A: 0xff}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func drawRect(canvas *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if x >= 0 && x < canvasWidth && y >= 0 && y < canvasHeight {
				canvas.SetRGBA(x, y, c)
			}
		}
	}
}

// game is the minimal ebiten.Game driving one static render: Update does
// nothing, Draw blits the one reused image, Layout reports the canvas'
// fixed logical size.
type game struct {
	img  *ebiten.Image
	kind string
}

func (g *game) Update() error { return nil }

func (g *game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.img, &ebiten.DrawImageOptions{})
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("raoul %s - close window to continue", g.kind), 4, 4)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return canvasWidth, canvasHeight
}

func (s *EbitenSink) run(canvas *image.RGBA, kind string) error {
	img := ebiten.NewImage(canvasWidth, canvasHeight)
	img.WritePixels(canvas.Pix)

	ebiten.SetWindowSize(canvasWidth, canvasHeight)
	title := s.title
	if title == "" {
		title = "raoul"
	}
	ebiten.SetWindowTitle(fmt.Sprintf("%s - %s", title, kind))

	return ebiten.RunGame(&game{img: img, kind: kind})
}
