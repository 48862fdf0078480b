// Package engine runs the snake simulation.
//
// A Session owns the snake, the coin and the phase. Frontends call Step once per
// rendered frame with the keys pressed since the previous frame and the elapsed
// time; Step resolves input, advances the body when the TickScheduler fires,
// checks collisions, drives the phase machine and returns a render.Frame.
//
// Phase changes are declared in session.toml and executed by fsm.Machine. The
// triggers below are the only events the graph may reference.
package engine

import "github.com/lixenwraith/vi-snake/engine/fsm"

const (
	// EventFatalCollision ends the round
	// Trigger: head left the field or hit the body
	EventFatalCollision fsm.EventType = iota + 1

	// EventRestart starts a new round
	// Trigger: restart key while in GameOver
	EventRestart
)

var eventNames = map[string]fsm.EventType{
	"FatalCollision": EventFatalCollision,
	"Restart":        EventRestart,
}

func registerEvents(m *fsm.Machine[*Session]) {
	for name, et := range eventNames {
		m.RegisterEvent(name, et)
	}
}
