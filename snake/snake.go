package snake

import (
	"github.com/lixenwraith/vi-snake/grid"
	"github.com/lixenwraith/vi-snake/input"
)

// Segment is one body piece
// Dir is the heading the segment had on its last move, used to place grown tail segments
type Segment struct {
	Cell grid.Coord
	Dir  grid.Direction
}

// Snake is an ordered body where index 0 is the head
// Non-head segments form a shift register: each holds the cell the segment
// ahead of it held one step earlier
type Snake struct {
	segments []Segment
	length   int
	facing   grid.Direction
}

// New lays out a snake of the given length with its head at head, body trailing opposite to dir
func New(head grid.Coord, length int, dir grid.Direction) *Snake {
	if length < 1 {
		length = 1
	}

	s := &Snake{
		segments: make([]Segment, length),
		length:   length,
		facing:   dir,
	}

	back := dir.Opposite().Delta()
	cell := head
	for i := range s.segments {
		s.segments[i] = Segment{Cell: cell, Dir: dir}
		cell = cell.Add(back)
	}

	return s
}

// FromSegments builds a snake from explicit segments, head first
func FromSegments(facing grid.Direction, segs ...Segment) *Snake {
	if len(segs) == 0 {
		panic("snake: FromSegments requires at least one segment")
	}
	s := &Snake{
		segments: make([]Segment, len(segs)),
		length:   len(segs),
		facing:   facing,
	}
	copy(s.segments, segs)
	return s
}

// Advance moves the head by delta and shifts every other segment into the
// previous state of the segment ahead of it
// Returns the new head cell and the tail segment as it was before the move
func (s *Snake) Advance(delta grid.Coord) (newHead grid.Coord, prevTail Segment) {
	prevTail = s.segments[len(s.segments)-1]
	newHead = s.segments[0].Cell.Add(delta)

	for i := len(s.segments) - 1; i > 0; i-- {
		s.segments[i] = s.segments[i-1]
	}
	s.segments[0] = Segment{Cell: newHead, Dir: s.facing}

	return newHead, prevTail
}

// Step advances one cell along the pending facing
func (s *Snake) Step() (newHead grid.Coord, prevTail Segment) {
	return s.Advance(s.facing.Delta())
}

// Grow appends one segment behind the tail, offset opposite to the tail's
// recorded heading and inheriting that heading
// A tail that has not moved since the last growth keeps a possibly stale heading
func (s *Snake) Grow() {
	tail := s.segments[len(s.segments)-1]
	s.segments = append(s.segments, Segment{
		Cell: tail.Cell.Sub(tail.Dir.Delta()),
		Dir:  tail.Dir,
	})
	s.length++
}

// Steer applies this frame's directional presses to the pending facing
func (s *Snake) Steer(pressed input.DirSet) {
	s.facing = input.Resolve(s.Committed(), s.facing, pressed)
}

// Committed is the heading the head actually moved with on its last step
func (s *Snake) Committed() grid.Direction {
	return s.segments[0].Dir
}

// OverlapsSelf reports whether the head shares a cell with any other segment
func (s *Snake) OverlapsSelf() bool {
	head := s.segments[0].Cell
	for _, seg := range s.segments[1:] {
		if seg.Cell == head {
			return true
		}
	}
	return false
}

func (s *Snake) Head() Segment              { return s.segments[0] }
func (s *Snake) Tail() Segment              { return s.segments[len(s.segments)-1] }
func (s *Snake) Len() int                   { return len(s.segments) }
func (s *Snake) Length() int                { return s.length }
func (s *Snake) Facing() grid.Direction     { return s.facing }
func (s *Snake) SetFacing(d grid.Direction) { s.facing = d }

// Segment returns the i-th segment, head is 0
func (s *Snake) Segment(i int) Segment {
	return s.segments[i]
}

// Segments returns a copy of the body, head first
func (s *Snake) Segments() []Segment {
	out := make([]Segment, len(s.segments))
	copy(out, s.segments)
	return out
}

// Cells returns the occupied cells, head first
func (s *Snake) Cells() []grid.Coord {
	out := make([]grid.Coord, len(s.segments))
	for i, seg := range s.segments {
		out[i] = seg.Cell
	}
	return out
}
