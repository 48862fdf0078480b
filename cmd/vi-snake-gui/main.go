// vi-snake-gui is the window frontend, drawing the same session with ebiten
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lixenwraith/vi-snake/audio"
	"github.com/lixenwraith/vi-snake/config"
	"github.com/lixenwraith/vi-snake/engine"
	"github.com/lixenwraith/vi-snake/grid"
	"github.com/lixenwraith/vi-snake/input"
	"github.com/lixenwraith/vi-snake/render"
)

var configFlag = flag.String("config", "", "Path to TOML config (default: ./"+config.DefaultConfigFile+" if present)")

var directionKeys = map[ebiten.Key]grid.Direction{
	ebiten.KeyArrowUp: grid.Up, ebiten.KeyW: grid.Up, ebiten.KeyK: grid.Up,
	ebiten.KeyArrowDown: grid.Down, ebiten.KeyS: grid.Down, ebiten.KeyJ: grid.Down,
	ebiten.KeyArrowLeft: grid.Left, ebiten.KeyA: grid.Left, ebiten.KeyH: grid.Left,
	ebiten.KeyArrowRight: grid.Right, ebiten.KeyD: grid.Right, ebiten.KeyL: grid.Right,
}

type game struct {
	session *engine.Session
	scene   *render.Scene
	sink    *windowSink
	sound   *audio.SoundManager
	clock   *engine.FrameClock
	restart string
	keys    []ebiten.Key
}

// readInput collects keys that went down since the previous Update
func (g *game) readInput() input.Frame {
	var f input.Frame
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if d, ok := directionKeys[k]; ok {
			f.Directions = f.Directions.Add(d)
		}
		switch {
		case k == ebiten.KeyEnter, k == ebiten.KeySpace, strings.EqualFold(k.String(), g.restart):
			f.Restart = true
		case k == ebiten.KeyEscape, k == ebiten.KeyQ:
			f.Quit = true
		}
	}
	return f
}

func (g *game) Update() error {
	return g.advance(g.readInput())
}

// advance runs one session step for in, or tears the scene down on quit
func (g *game) advance(in input.Frame) error {
	if in.Quit {
		if err := g.scene.Clear(); err != nil {
			return err
		}
		return ebiten.Termination
	}

	frame := g.session.Step(in, g.clock.Delta())
	if err := g.scene.Apply(frame); err != nil {
		return err
	}
	g.sound.Handle(frame.Cues)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.sink.draw(screen)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.sink.size()
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vi-snake-gui: %v\n", err)
		os.Exit(1)
	}

	session, err := engine.NewSession(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vi-snake-gui: %v\n", err)
		os.Exit(1)
	}

	sound := audio.NewSoundManager(cfg.Audio.Volume)
	if cfg.Audio.Enabled {
		if err := sound.Initialize(); err != nil {
			log.Printf("Audio initialization failed: %v (continuing without audio)", err)
		} else {
			defer sound.Cleanup()
		}
	}

	sink := newWindowSink(cfg.Field(), render.DefaultPalette)
	g := &game{
		session: session,
		scene:   render.NewScene(sink, render.DefaultPalette),
		sink:    sink,
		sound:   sound,
		clock:   engine.NewFrameClock(engine.NewMonotonicTimeProvider()),
		restart: string(cfg.RestartRune()),
	}

	w, h := sink.size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("vi-snake")
	if err := ebiten.RunGame(g); err != nil {
		log.Printf("game stopped: %v", err)
		os.Exit(1)
	}
}
