package fsm

import (
	"strings"
	"testing"
	"time"
)

const (
	testEventGo EventType = iota + 1
	testEventBack
)

type recorder struct {
	log   []string
	allow bool
}

func newTestMachine(t *testing.T, cfg string) (*Machine[*recorder], *recorder) {
	t.Helper()

	m := NewMachine[*recorder]()
	m.RegisterEvent("Go", testEventGo)
	m.RegisterEvent("Back", testEventBack)
	m.RegisterAction("Log", func(r *recorder, args any) {
		r.log = append(r.log, args.(string))
	})
	m.RegisterGuard("Allowed", func(r *recorder) bool { return r.allow })

	if err := m.LoadConfig([]byte(cfg)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	return m, &recorder{}
}

const flatConfig = `
initial = "A"

[states.A]
on_enter = [{ action = "Log", arg = "enter A" }]
on_exit = [{ action = "Log", arg = "exit A" }]
transitions = [{ trigger = "Go", target = "B" }]

[states.B]
on_enter = [{ action = "Log", arg = "enter B" }]
on_exit = [{ action = "Log", arg = "exit B" }]
transitions = [{ trigger = "Back", target = "A", guard = "Allowed" }]
`

func TestInitEntersInitialState(t *testing.T) {
	m, r := newTestMachine(t, flatConfig)

	if err := m.Init(r); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if m.ActiveName() != "A" {
		t.Errorf("ActiveName() = %q, want A", m.ActiveName())
	}
	if strings.Join(r.log, ",") != "enter A" {
		t.Errorf("log = %v, want [enter A]", r.log)
	}
}

func TestHandleEventRunsExitThenEnter(t *testing.T) {
	m, r := newTestMachine(t, flatConfig)
	_ = m.Init(r)
	r.log = nil

	if !m.HandleEvent(r, testEventGo) {
		t.Fatal("Go should transition A -> B")
	}
	if got := strings.Join(r.log, ","); got != "exit A,enter B" {
		t.Errorf("log = %q, want %q", got, "exit A,enter B")
	}

	// Go is not handled in B
	if m.HandleEvent(r, testEventGo) {
		t.Error("Go should be ignored in B")
	}
}

func TestGuardBlocksTransition(t *testing.T) {
	m, r := newTestMachine(t, flatConfig)
	_ = m.Init(r)
	m.HandleEvent(r, testEventGo)

	if m.HandleEvent(r, testEventBack) {
		t.Error("Back should be blocked by guard")
	}
	if m.ActiveName() != "B" {
		t.Errorf("ActiveName() = %q, want B", m.ActiveName())
	}

	r.allow = true
	if !m.HandleEvent(r, testEventBack) {
		t.Error("Back should pass once guard allows")
	}
	if m.ActiveName() != "A" {
		t.Errorf("ActiveName() = %q, want A", m.ActiveName())
	}
}

func TestTickTransitionAndTimeInState(t *testing.T) {
	cfg := `
initial = "Wait"

[states.Wait]
transitions = [{ trigger = "Tick", target = "Done", guard = "Allowed" }]

[states.Done]
`
	m, r := newTestMachine(t, cfg)
	_ = m.Init(r)

	m.Update(r, 30*time.Millisecond)
	m.Update(r, 20*time.Millisecond)
	if m.TimeInState() != 50*time.Millisecond {
		t.Errorf("TimeInState() = %v, want 50ms", m.TimeInState())
	}
	if m.ActiveName() != "Wait" {
		t.Fatalf("ActiveName() = %q, want Wait", m.ActiveName())
	}

	r.allow = true
	m.Update(r, time.Millisecond)
	if m.ActiveName() != "Done" {
		t.Errorf("ActiveName() = %q, want Done", m.ActiveName())
	}
	if m.TimeInState() != 0 {
		t.Errorf("TimeInState() = %v after transition, want 0", m.TimeInState())
	}
}

func TestHierarchyExitsToCommonAncestor(t *testing.T) {
	cfg := `
initial = "Child1"

[states.Parent]
on_enter = [{ action = "Log", arg = "enter Parent" }]
on_exit = [{ action = "Log", arg = "exit Parent" }]
transitions = [{ trigger = "Back", target = "Outside" }]

[states.Child1]
parent = "Parent"
on_enter = [{ action = "Log", arg = "enter Child1" }]
on_exit = [{ action = "Log", arg = "exit Child1" }]
transitions = [{ trigger = "Go", target = "Child2" }]

[states.Child2]
parent = "Parent"
on_enter = [{ action = "Log", arg = "enter Child2" }]
on_exit = [{ action = "Log", arg = "exit Child2" }]

[states.Outside]
on_enter = [{ action = "Log", arg = "enter Outside" }]
`
	m, r := newTestMachine(t, cfg)
	_ = m.Init(r)
	if got := strings.Join(r.log, ","); got != "enter Parent,enter Child1" {
		t.Fatalf("init log = %q", got)
	}

	r.log = nil
	m.HandleEvent(r, testEventGo)
	if got := strings.Join(r.log, ","); got != "exit Child1,enter Child2" {
		t.Errorf("sibling transition log = %q, parent must stay entered", got)
	}

	// Back is declared on Parent and bubbles up from Child2
	r.log = nil
	if !m.HandleEvent(r, testEventBack) {
		t.Fatal("Back should bubble to Parent")
	}
	if got := strings.Join(r.log, ","); got != "exit Child2,exit Parent,enter Outside" {
		t.Errorf("bubbled transition log = %q", got)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  string
		want string
	}{
		{"unknown initial", `initial = "Nope"
[states.A]`, "initial state"},
		{"unknown target", `initial = "A"
[states.A]
transitions = [{ trigger = "Go", target = "Z" }]`, "unknown target"},
		{"unknown event", `initial = "A"
[states.A]
transitions = [{ trigger = "Jump", target = "A" }]`, "unknown event"},
		{"unknown action", `initial = "A"
[states.A]
on_enter = [{ action = "Explode" }]`, "unknown action"},
		{"unknown guard", `initial = "A"
[states.A]
transitions = [{ trigger = "Go", target = "A", guard = "Maybe" }]`, "unknown guard"},
		{"unknown parent", `initial = "A"
[states.A]
parent = "Ghost"`, "unknown parent"},
		{"unknown key", `initial = "A"
colour = "red"
[states.A]`, "unknown FSM config keys"},
		{"bad toml", `initial = `, "unmarshal"},
		{"parent cycle", `initial = "A"
[states.A]
parent = "B"
[states.B]
parent = "A"`, "parent cycle"},
		{"root as initial", `initial = "Root"
[states.A]`, "initial state"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine[*recorder]()
			m.RegisterEvent("Go", testEventGo)
			m.RegisterAction("Log", func(*recorder, any) {})
			err := m.LoadConfig([]byte(tt.cfg))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestRegisterEventRejectsTick(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("registering type 0 should panic")
		}
	}()
	NewMachine[*recorder]().RegisterEvent("Bad", EventTick)
}

func TestRootActionsRunOnInit(t *testing.T) {
	cfg := `
initial = "A"

[states.Root]
on_enter = [{ action = "Log", arg = "enter Root" }]

[states.A]
on_enter = [{ action = "Log", arg = "enter A" }]
`
	m, r := newTestMachine(t, cfg)
	if err := m.Init(r); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if got := strings.Join(r.log, ","); got != "enter Root,enter A" {
		t.Errorf("log = %q, want root entered before its child", got)
	}
}

func TestLoadConfigReplacesGraph(t *testing.T) {
	m, r := newTestMachine(t, flatConfig)
	_ = m.Init(r)

	if err := m.LoadConfig([]byte(`initial = "B"
[states.B]`)); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if m.ActiveName() != "" {
		t.Errorf("reload should leave the machine stopped, active %q", m.ActiveName())
	}

	r.log = nil
	_ = m.Init(r)
	if m.ActiveName() != "B" || len(r.log) != 0 {
		t.Errorf("after reload active = %q, log = %v", m.ActiveName(), r.log)
	}
}
