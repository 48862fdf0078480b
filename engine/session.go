package engine

import (
	_ "embed"
	"fmt"
	"log"
	"time"

	"github.com/lixenwraith/vi-snake/coin"
	"github.com/lixenwraith/vi-snake/config"
	"github.com/lixenwraith/vi-snake/engine/fsm"
	"github.com/lixenwraith/vi-snake/grid"
	"github.com/lixenwraith/vi-snake/input"
	"github.com/lixenwraith/vi-snake/render"
	"github.com/lixenwraith/vi-snake/snake"
)

//go:embed session.toml
var sessionGraph []byte

// Phase is the coarse game state visible to frontends
type Phase uint8

const (
	PhasePlaying Phase = iota
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "Playing"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

func parsePhase(name string) (Phase, bool) {
	switch name {
	case "Playing":
		return PhasePlaying, true
	case "GameOver":
		return PhaseGameOver, true
	}
	return 0, false
}

// Session owns one game: body, coin, phase and the clock that paces movement
// Not safe for concurrent use; one loop drives it through Step
type Session struct {
	cfg     *config.Config
	field   grid.Field
	machine *fsm.Machine[*Session]
	ticker  *TickScheduler
	spawner *coin.Spawner

	snake      *snake.Snake
	coin       coin.Coin
	coinSerial int // bumped per spawn, keys the coin entity

	phase Phase
	epoch uint64 // transient entity generation, 0 is reserved for permanent ones
	score string
	cues  render.Cue
}

// NewSession validates cfg, loads the phase graph and starts the first round
func NewSession(cfg *config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	field := cfg.Field()
	s := &Session{
		cfg:     cfg,
		field:   field,
		machine: fsm.NewMachine[*Session](),
		ticker:  NewTickScheduler(cfg.Game.Tick.Duration),
		spawner: coin.NewSpawner(field, cfg.Game.Seed),
		epoch:   1,
	}

	registerEvents(s.machine)
	registerActions(s.machine)
	registerGuards(s.machine)

	if err := s.machine.LoadConfig(sessionGraph); err != nil {
		return nil, fmt.Errorf("failed to load session graph: %w", err)
	}
	if err := s.machine.Init(s); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	return s, nil
}

// Step runs one frame: phase timers, steering, at most one movement tick, collision
// checks and restart handling, then returns the resulting frame
func (s *Session) Step(in input.Frame, dt time.Duration) render.Frame {
	s.cues = 0
	s.machine.Update(s, dt)

	switch s.phase {
	case PhasePlaying:
		s.snake.Steer(in.Directions)
		if s.ticker.Update(dt) {
			s.tick()
		}
	case PhaseGameOver:
		if in.Restart && s.machine.HandleEvent(s, EventRestart) {
			s.cues |= render.CueRestart
		}
	}

	return s.Frame()
}

// tick moves the body one cell and resolves what it ran into
func (s *Session) tick() {
	head, _ := s.snake.Step()

	// Judged on the advanced body, before growth adds a segment behind the tail
	fatal := outOfBounds(s.field, head) || selfOverlap(s.snake)

	// A pickup on the fatal tick still counts toward the final score
	if coinPickedUp(s.snake, s.coin) {
		s.snake.Grow()
		s.spawnCoin()
		s.score = scoreText(s.Score())
		s.cues |= render.CueCoin
	}

	if fatal {
		log.Printf("collision at %v, length %d", head, s.snake.Length())
		s.cues |= render.CueGameOver
		s.machine.HandleEvent(s, EventFatalCollision)
	}
}

func (s *Session) spawnCoin() {
	s.coinSerial++
	s.coin = s.spawner.Spawn()
	log.Printf("coin #%d at %v", s.coinSerial, s.coin.Cell)
}

// Frame builds the render frame for the current state without advancing it
func (s *Session) Frame() render.Frame {
	items := make([]render.Item, 0, s.snake.Len()+2)
	items = append(items, render.Item{Key: render.Key{Kind: render.KindBorder}})

	if s.phase == PhasePlaying {
		items = append(items, render.Item{
			Key:  render.Key{Kind: render.KindCoin, Index: s.coinSerial, Epoch: s.epoch},
			Cell: s.coin.Cell,
		})
		for i := 0; i < s.snake.Len(); i++ {
			items = append(items, render.Item{
				Key:  render.Key{Kind: render.KindSegment, Index: i, Epoch: s.epoch},
				Cell: s.snake.Segment(i).Cell,
			})
		}
	}

	return render.Frame{
		Field: s.field,
		Items: items,
		Score: s.score,
		Cues:  s.cues,
	}
}

func (s *Session) Phase() Phase        { return s.phase }
func (s *Session) Snake() *snake.Snake { return s.snake }
func (s *Session) Scoreboard() string  { return s.score }

// Score is the number of coins eaten this round
func (s *Session) Score() int {
	return s.snake.Length() - s.cfg.Game.StartLength
}

func scoreText(n int) string {
	return fmt.Sprintf("Score: %d", n)
}

func gameOverText(n int, restart rune) string {
	return fmt.Sprintf("Game Over! Score: %d  Press %c to restart", n, restart)
}

// === FSM bindings ===

func registerActions(m *fsm.Machine[*Session]) {
	m.RegisterAction("ResetRound", func(s *Session, _ any) {
		s.snake = snake.New(s.field.Center(), s.cfg.Game.StartLength, grid.Up)
		s.ticker.Reset()
		s.spawnCoin()
		s.score = scoreText(0)
	})

	m.RegisterAction("SetPhase", func(s *Session, args any) {
		name, _ := args.(string)
		p, ok := parsePhase(name)
		if !ok {
			panic(fmt.Sprintf("engine: SetPhase with unknown phase %q", name))
		}
		if p != s.phase {
			log.Printf("phase %s -> %s", s.phase, p)
			s.phase = p
		}
	})

	m.RegisterAction("ShowFinalScore", func(s *Session, _ any) {
		s.score = gameOverText(s.Score(), s.cfg.RestartRune())
	})

	m.RegisterAction("RetireEntities", func(s *Session, _ any) {
		s.epoch++
	})
}

func registerGuards(m *fsm.Machine[*Session]) {
	m.RegisterGuard("RestartDelayElapsed", func(s *Session) bool {
		return s.machine.TimeInState() >= s.cfg.Game.RestartDelay.Duration
	})
}
