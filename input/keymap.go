package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/vi-snake/grid"
)

// KeyMap translates terminal key events into input frames
type KeyMap struct {
	runes   map[rune]grid.Direction
	restart rune
}

// NewKeyMap builds the default bindings: arrows, WASD and hjkl for movement
// restartKey is matched case-insensitively; Enter and Space also restart
func NewKeyMap(restartKey rune) *KeyMap {
	return &KeyMap{
		runes: map[rune]grid.Direction{
			'w': grid.Up, 'k': grid.Up,
			's': grid.Down, 'j': grid.Down,
			'a': grid.Left, 'h': grid.Left,
			'd': grid.Right, 'l': grid.Right,
		},
		restart: unicode.ToLower(restartKey),
	}
}

// Translate converts one tcell key event to a frame contribution
func (km *KeyMap) Translate(ev *tcell.EventKey) Frame {
	var f Frame

	switch ev.Key() {
	case tcell.KeyUp:
		f.Directions = f.Directions.Add(grid.Up)
	case tcell.KeyDown:
		f.Directions = f.Directions.Add(grid.Down)
	case tcell.KeyLeft:
		f.Directions = f.Directions.Add(grid.Left)
	case tcell.KeyRight:
		f.Directions = f.Directions.Add(grid.Right)
	case tcell.KeyEnter:
		f.Restart = true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		f.Quit = true
	case tcell.KeyRune:
		r := unicode.ToLower(ev.Rune())
		switch {
		case r == km.restart, r == ' ':
			f.Restart = true
		case r == 'q':
			f.Quit = true
		default:
			if d, ok := km.runes[r]; ok {
				f.Directions = f.Directions.Add(d)
			}
		}
	}

	return f
}
