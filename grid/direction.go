package grid

// Direction is a heading on the lattice, zero value is Up
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists all headings in resolver priority order
var Directions = [4]Direction{Up, Down, Left, Right}

var deltas = [4]Coord{
	Up:    {I: 0, J: 1},
	Down:  {I: 0, J: -1},
	Left:  {I: -1, J: 0},
	Right: {I: 1, J: 0},
}

var opposites = [4]Direction{
	Up:    Down,
	Down:  Up,
	Left:  Right,
	Right: Left,
}

// Delta returns the unit offset for one step in d
func (d Direction) Delta() Coord {
	return deltas[d&3]
}

// Opposite returns the reverse heading
func (d Direction) Opposite() Direction {
	return opposites[d&3]
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}
