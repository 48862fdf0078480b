package render

import "github.com/lixenwraith/vi-snake/grid"

// Kind is the entity category of a frame item
type Kind uint8

const (
	KindBorder Kind = iota
	KindCoin
	KindSegment
)

func (k Kind) String() string {
	switch k {
	case KindBorder:
		return "Border"
	case KindCoin:
		return "Coin"
	case KindSegment:
		return "Segment"
	default:
		return "Unknown"
	}
}

// Key identifies an entity across frames
// Epoch 0 marks permanent fixtures; transient entities carry the epoch of the
// state that created them, so bumping the epoch retires all of them at once
type Key struct {
	Kind  Kind
	Index int
	Epoch uint64
}

// Permanent reports whether the entity outlives state changes
func (k Key) Permanent() bool {
	return k.Epoch == 0
}

// Item is one entity in a frame
type Item struct {
	Key  Key
	Cell grid.Coord
}

// Cue flags notable events that happened while producing a frame
type Cue uint8

const (
	CueCoin Cue = 1 << iota
	CueGameOver
	CueRestart
)

// Has reports whether c contains flag
func (c Cue) Has(flag Cue) bool {
	return c&flag != 0
}

// Frame is the complete visible state after one simulation step
type Frame struct {
	Field grid.Field
	Items []Item
	Score string
	Cues  Cue
}
