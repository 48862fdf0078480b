package engine

import (
	"github.com/lixenwraith/vi-snake/coin"
	"github.com/lixenwraith/vi-snake/grid"
	"github.com/lixenwraith/vi-snake/snake"
)

// coinPickedUp reports whether the head sits on the coin
func coinPickedUp(s *snake.Snake, c coin.Coin) bool {
	return s.Head().Cell == c.Cell
}

// outOfBounds reports whether the head left the field on either axis
func outOfBounds(f grid.Field, head grid.Coord) bool {
	return !f.Contains(head)
}

// selfOverlap reports whether the head shares a cell with the body, the head itself excluded
func selfOverlap(s *snake.Snake) bool {
	return s.OverlapsSelf()
}
