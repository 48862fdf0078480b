package main

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/vi-snake/grid"
	"github.com/lixenwraith/vi-snake/render"
)

const (
	margin    = 12 // pixels around the field
	statusBar = 20 // pixels above the field for the score line
)

// windowSink keeps visuals between frames and paints them when ebiten calls Draw
type windowSink struct {
	field      grid.Field
	background color.RGBA
	visuals    map[render.Handle]*render.Visual
	next       render.Handle
	text       string
	order      []render.Handle
}

func newWindowSink(field grid.Field, palette render.Palette) *windowSink {
	return &windowSink{
		field:      field,
		background: rgba(palette.BackgroundRGB()),
		visuals:    make(map[render.Handle]*render.Visual),
	}
}

func (w *windowSink) Create(v render.Visual) render.Handle {
	w.next++
	w.visuals[w.next] = &v
	return w.next
}

func (w *windowSink) Move(h render.Handle, x, y float64) {
	v := w.lookup(h, "Move")
	v.X, v.Y = x, y
}

func (w *windowSink) Destroy(h render.Handle) {
	w.lookup(h, "Destroy")
	delete(w.visuals, h)
}

func (w *windowSink) SetText(text string) { w.text = text }

// Flush fixes the paint order; pixels are produced in draw
func (w *windowSink) Flush() error {
	w.order = w.order[:0]
	for h := range w.visuals {
		w.order = append(w.order, h)
	}
	sort.Slice(w.order, func(i, j int) bool {
		a, b := w.visuals[w.order[i]], w.visuals[w.order[j]]
		if a.Depth != b.Depth {
			return a.Depth < b.Depth
		}
		return w.order[i] < w.order[j]
	})
	return nil
}

func (w *windowSink) lookup(h render.Handle, op string) *render.Visual {
	v, ok := w.visuals[h]
	if !ok {
		panic(fmt.Sprintf("window sink: %s on unknown handle %d", op, h))
	}
	return v
}

// size returns the logical screen size in pixels
func (w *windowSink) size() (int, int) {
	fw, fh := w.field.RenderSize()
	return int(fw) + 2*margin, int(fh) + 2*margin + statusBar
}

// toScreen maps render space (origin at field center, y up) to pixels (origin top-left, y down)
func (w *windowSink) toScreen(x, y float64) (float32, float32) {
	fw, fh := w.field.RenderSize()
	return float32(x + fw/2 + margin), float32(fh/2 - y + margin + statusBar)
}

func (w *windowSink) draw(screen *ebiten.Image) {
	screen.Fill(w.background)

	cs := float32(w.field.CellSize)
	for _, h := range w.order {
		v, ok := w.visuals[h]
		if !ok {
			continue
		}
		px, py := w.toScreen(v.X, v.Y)
		c := rgba(v.Color)

		switch v.Shape {
		case render.ShapeFrame:
			fw, fh := w.field.RenderSize()
			vector.StrokeRect(screen, px-float32(fw/2)-1, py-float32(fh/2)-1, float32(fw)+2, float32(fh)+2, 2, c, false)
		case render.ShapeCircle:
			vector.DrawFilledCircle(screen, px, py, cs/2-2, c, true)
		default:
			vector.DrawFilledRect(screen, px-cs/2+1, py-cs/2+1, cs-2, cs-2, c, false)
		}
	}

	ebitenutil.DebugPrintAt(screen, w.text, margin, 2)
}

func rgba(c render.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
