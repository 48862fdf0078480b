package coin

import (
	"math/rand/v2"

	"github.com/lixenwraith/vi-snake/grid"
)

// Coin is the single collectible on the field
type Coin struct {
	Cell grid.Coord
}

// Spawner places coins uniformly at random over the field
// Cells under the snake are not excluded
type Spawner struct {
	field grid.Field
	rng   *rand.Rand
}

// NewSpawner creates a spawner; seed 0 draws a random seed
func NewSpawner(field grid.Field, seed uint64) *Spawner {
	var rng *rand.Rand
	if seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		rng = rand.New(rand.NewPCG(seed, seed))
	}
	return &Spawner{field: field, rng: rng}
}

// Spawn draws I from [0,Width) and J from [0,Height) independently
func (s *Spawner) Spawn() Coin {
	return Coin{
		Cell: grid.Coord{
			I: s.rng.IntN(s.field.Width),
			J: s.rng.IntN(s.field.Height),
		},
	}
}
