package grid

import "fmt"

// Coord identifies a lattice cell, I grows right and J grows up
type Coord struct {
	I int
	J int
}

// C is a convenience constructor for Coord
func C(i, j int) Coord {
	return Coord{I: i, J: j}
}

// Add returns the component-wise sum
func (c Coord) Add(o Coord) Coord {
	return Coord{I: c.I + o.I, J: c.J + o.J}
}

// Sub returns the component-wise difference
func (c Coord) Sub(o Coord) Coord {
	return Coord{I: c.I - o.I, J: c.J - o.J}
}

// Step returns the neighbor one cell away in direction d
func (c Coord) Step(d Direction) Coord {
	return c.Add(d.Delta())
}

// Less orders coordinates by I, then J
func (c Coord) Less(o Coord) bool {
	if c.I != o.I {
		return c.I < o.I
	}
	return c.J < o.J
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.I, c.J)
}
