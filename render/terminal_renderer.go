package render

import (
	"fmt"
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/vi-snake/grid"
	"github.com/mattn/go-runewidth"
)

// cellColumns is how many terminal columns one grid cell spans, keeping cells roughly square
const cellColumns = 2

type termVisual struct {
	Visual
	handle Handle
}

// TerminalSink draws visuals onto a tcell screen
// Row 0 holds the scoreboard, the bordered field starts on row 1
type TerminalSink struct {
	screen  tcell.Screen
	field   grid.Field
	palette Palette

	visuals map[Handle]*termVisual
	next    Handle
	text    string
}

// NewTerminalSink creates a sink for the given screen and field
func NewTerminalSink(screen tcell.Screen, field grid.Field, palette Palette) *TerminalSink {
	return &TerminalSink{
		screen:  screen,
		field:   field,
		palette: palette,
		visuals: make(map[Handle]*termVisual),
	}
}

func (t *TerminalSink) Create(v Visual) Handle {
	t.next++
	t.visuals[t.next] = &termVisual{Visual: v, handle: t.next}
	return t.next
}

func (t *TerminalSink) Move(h Handle, x, y float64) {
	v, ok := t.visuals[h]
	if !ok {
		panic(fmt.Sprintf("render: move of unknown handle %d", h))
	}
	v.X, v.Y = x, y
}

func (t *TerminalSink) Destroy(h Handle) {
	if _, ok := t.visuals[h]; !ok {
		panic(fmt.Sprintf("render: destroy of unknown handle %d", h))
	}
	delete(t.visuals, h)
}

func (t *TerminalSink) SetText(text string) {
	t.text = text
}

// Count returns the number of live visuals
func (t *TerminalSink) Count() int {
	return len(t.visuals)
}

// Flush redraws the whole screen from the live visuals
func (t *TerminalSink) Flush() error {
	bg := tcell.StyleDefault.Background(t.palette.BackgroundRGB().Tcell())
	t.screen.Fill(' ', bg)

	ox, oy := t.origin()

	ordered := make([]*termVisual, 0, len(t.visuals))
	for _, v := range t.visuals {
		ordered = append(ordered, v)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Depth != ordered[j].Depth {
			return ordered[i].Depth < ordered[j].Depth
		}
		return ordered[i].handle < ordered[j].handle
	})

	for _, v := range ordered {
		style := bg.Foreground(v.Color.Tcell())
		switch v.Shape {
		case ShapeFrame:
			t.drawFrame(ox, oy, style)
		case ShapeCircle:
			col, row, ok := t.cellAt(ox, oy, v.X, v.Y)
			if ok {
				t.screen.SetContent(col, row, v.Glyph, nil, style)
			}
		default:
			col, row, ok := t.cellAt(ox, oy, v.X, v.Y)
			if ok {
				for c := 0; c < cellColumns; c++ {
					t.screen.SetContent(col+c, row, v.Glyph, nil, style)
				}
			}
		}
	}

	t.drawText(bg.Foreground(t.palette.TextRGB().Tcell()))
	t.screen.Show()
	return nil
}

// origin returns the terminal position of the top-left border corner
func (t *TerminalSink) origin() (int, int) {
	sw, _ := t.screen.Size()
	fw := t.field.Width*cellColumns + 2
	ox := (sw - fw) / 2
	if ox < 0 {
		ox = 0
	}
	return ox, 1
}

// cellAt maps a render-space position to the terminal column and row of its grid cell
func (t *TerminalSink) cellAt(ox, oy int, x, y float64) (col, row int, ok bool) {
	w, h := t.field.RenderSize()
	i := int(math.Floor((x + w/2) / t.field.CellSize))
	j := int(math.Floor((y + h/2) / t.field.CellSize))
	if !t.field.Contains(grid.C(i, j)) {
		return 0, 0, false
	}
	// Terminal rows grow downward, grid J grows upward
	return ox + 1 + i*cellColumns, oy + 1 + (t.field.Height - 1 - j), true
}

func (t *TerminalSink) drawFrame(ox, oy int, style tcell.Style) {
	right := ox + t.field.Width*cellColumns + 1
	bottom := oy + t.field.Height + 1

	for x := ox + 1; x < right; x++ {
		t.screen.SetContent(x, oy, '─', nil, style)
		t.screen.SetContent(x, bottom, '─', nil, style)
	}
	for y := oy + 1; y < bottom; y++ {
		t.screen.SetContent(ox, y, '│', nil, style)
		t.screen.SetContent(right, y, '│', nil, style)
	}
	t.screen.SetContent(ox, oy, '┌', nil, style)
	t.screen.SetContent(right, oy, '┐', nil, style)
	t.screen.SetContent(ox, bottom, '└', nil, style)
	t.screen.SetContent(right, bottom, '┘', nil, style)
}

// drawText centers the scoreboard on row 0, measuring display width rather than byte length
func (t *TerminalSink) drawText(style tcell.Style) {
	sw, _ := t.screen.Size()
	x := (sw - runewidth.StringWidth(t.text)) / 2
	if x < 0 {
		x = 0
	}
	for _, r := range t.text {
		if x >= sw {
			break
		}
		t.screen.SetContent(x, 0, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
