// vi-snake is the terminal frontend: a snake on a grid, steered with arrows, WASD or hjkl
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/lixenwraith/vi-snake/audio"
	"github.com/lixenwraith/vi-snake/config"
	"github.com/lixenwraith/vi-snake/core"
	"github.com/lixenwraith/vi-snake/engine"
	"github.com/lixenwraith/vi-snake/input"
	"github.com/lixenwraith/vi-snake/render"
)

// Redraw rate; movement speed comes from the configured tick
const frameInterval = 16 * time.Millisecond

var (
	debugFlag  = flag.Bool("debug", false, "Write debug log to logs/vi-snake.log")
	configFlag = flag.String("config", "", "Path to TOML config (default: ./"+config.DefaultConfigFile+" if present)")
)

func main() {
	flag.Parse()

	if logFile := setupLogging(logDir, *debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vi-snake: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "vi-snake: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}

	session, err := engine.NewSession(cfg)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	core.RegisterScreen(screen)
	defer core.RegisterScreen(nil)
	defer func() { core.HandleCrash(recover()) }()

	screen.HideCursor()

	sound := audio.NewSoundManager(cfg.Audio.Volume)
	if cfg.Audio.Enabled {
		if err := sound.Initialize(); err != nil {
			log.Printf("Audio initialization failed: %v (continuing without audio)", err)
		} else {
			defer sound.Cleanup()
		}
	}

	sink := render.NewTerminalSink(screen, cfg.Field(), render.DefaultPalette)
	scene := render.NewScene(sink, render.DefaultPalette)
	keys := input.NewKeyMap(cfg.RestartRune())

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)

	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	})

	clock := engine.NewFrameClock(engine.NewMonotonicTimeProvider())
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	// Key presses between two frames are merged and consumed by the next Step
	var pending input.Frame

	log.Printf("session started: %dx%d, tick %v", cfg.Grid.Width, cfg.Grid.Height, cfg.Game.Tick.Duration)

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				pending = pending.Merge(keys.Translate(ev))
				if pending.Quit {
					log.Printf("quit in %s, length %d: %s", session.Phase(), session.Snake().Length(), session.Scoreboard())
					// Blank the field before the screen is released
					return scene.Clear()
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			frame := session.Step(pending, clock.Delta())
			pending = input.Frame{}

			if err := scene.Apply(frame); err != nil {
				return fmt.Errorf("render failed: %w", err)
			}
			sound.Handle(frame.Cues)
		}
	}
}
