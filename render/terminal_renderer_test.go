package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/vi-snake/grid"
)

// MockScreen is a minimal mock for tcell.Screen used in tests
type MockScreen struct {
	tcell.Screen
	width, height int
	cells         map[[2]int]rune
	shows         int
}

func newMockScreen(w, h int) *MockScreen {
	return &MockScreen{width: w, height: h, cells: make(map[[2]int]rune)}
}

func (m *MockScreen) Size() (int, int) { return m.width, m.height }
func (m *MockScreen) Show()            { m.shows++ }
func (m *MockScreen) Fill(r rune, style tcell.Style) {
	clear(m.cells)
}
func (m *MockScreen) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	m.cells[[2]int{x, y}] = mainc
}

func (m *MockScreen) row(y int) string {
	out := make([]rune, m.width)
	for x := range out {
		if r, ok := m.cells[[2]int{x, y}]; ok {
			out[x] = r
		} else {
			out[x] = ' '
		}
	}
	return string(out)
}

func TestTerminalSinkDrawsCells(t *testing.T) {
	field := grid.Field{Width: 4, Height: 3, CellSize: 1}
	screen := newMockScreen(10, 6)
	sink := NewTerminalSink(screen, field, DefaultPalette)

	sink.Create(Visual{Shape: ShapeFrame, Depth: PriorityBorder})
	hx, hy := field.ToRenderPosition(grid.C(0, 2))
	head := sink.Create(Visual{Shape: ShapeSquare, X: hx, Y: hy, Depth: PriorityHead, Glyph: '#'})
	cx, cy := field.ToRenderPosition(grid.C(3, 0))
	sink.Create(Visual{Shape: ShapeCircle, X: cx, Y: cy, Depth: PriorityCoin, Glyph: 'o'})
	sink.SetText("Hi")

	if err := sink.Flush(); err != nil {
		t.Fatal(err)
	}

	// Field is 4*2+2 = 10 columns wide, so origin column is 0
	want := []string{
		"    Hi    ",
		"┌────────┐",
		"│##      │",
		"│        │",
		"│      o │",
		"└────────┘",
	}
	for y, line := range want {
		if got := screen.row(y); got != line {
			t.Errorf("row %d = %q, want %q", y, got, line)
		}
	}
	if screen.shows != 1 {
		t.Errorf("Show called %d times, want 1", screen.shows)
	}

	fx, fy := field.ToRenderPosition(grid.C(1, 2))
	sink.Move(head, fx, fy)
	_ = sink.Flush()
	if got := screen.row(2); got != "│  ##    │" {
		t.Errorf("after move row 2 = %q", got)
	}
}

func TestTerminalSinkSkipsOutsideCells(t *testing.T) {
	field := grid.Field{Width: 4, Height: 3, CellSize: 1}
	screen := newMockScreen(10, 6)
	sink := NewTerminalSink(screen, field, DefaultPalette)

	x, y := field.ToRenderPosition(grid.C(-1, 1))
	sink.Create(Visual{Shape: ShapeSquare, X: x, Y: y, Glyph: '#'})
	_ = sink.Flush()

	for y := 0; y < screen.height; y++ {
		for _, r := range screen.row(y) {
			if r == '#' {
				t.Fatalf("out-of-field visual drawn on row %d", y)
			}
		}
	}
}

func TestTerminalSinkHandleMisusePanics(t *testing.T) {
	sink := NewTerminalSink(newMockScreen(10, 6), grid.Field{Width: 4, Height: 3, CellSize: 1}, DefaultPalette)
	h := sink.Create(Visual{})
	sink.Destroy(h)
	if sink.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", sink.Count())
	}

	defer func() {
		if recover() == nil {
			t.Error("double destroy should panic")
		}
	}()
	sink.Destroy(h)
}
