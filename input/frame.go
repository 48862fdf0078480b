package input

import "github.com/lixenwraith/vi-snake/grid"

// DirSet is the set of directional keys newly pressed during one frame
type DirSet uint8

// Add marks d as pressed
func (s DirSet) Add(d grid.Direction) DirSet {
	return s | 1<<d
}

// Has reports whether d was pressed
func (s DirSet) Has(d grid.Direction) bool {
	return s&(1<<d) != 0
}

// Empty reports whether no direction was pressed
func (s DirSet) Empty() bool {
	return s == 0
}

// Frame is the edge-triggered input collected between two simulation steps
type Frame struct {
	Directions DirSet
	Restart    bool
	Quit       bool
}

// Merge folds another frame's presses into f
func (f Frame) Merge(o Frame) Frame {
	f.Directions |= o.Directions
	f.Restart = f.Restart || o.Restart
	f.Quit = f.Quit || o.Quit
	return f
}

// Resolve picks the next pending heading from the pressed keys
// Candidates are tried in grid.Directions order (Up, Down, Left, Right); the first one
// that does not reverse the committed heading wins. With no acceptable candidate
// the pending heading is kept
func Resolve(committed, pending grid.Direction, pressed DirSet) grid.Direction {
	for _, d := range grid.Directions {
		if !pressed.Has(d) {
			continue
		}
		if d == committed.Opposite() {
			continue
		}
		return d
	}
	return pending
}
