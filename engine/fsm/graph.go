package fsm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const rootName = "Root"

// graphDoc is the TOML layout of a state graph
//
//	initial = "Playing"
//	[states.Playing]
//	parent = "Root"                                   # optional
//	on_enter = [{ action = "SetPhase", arg = "Playing" }]
//	transitions = [{ trigger = "FatalCollision", target = "GameOver", guard = "..." }]
type graphDoc struct {
	Initial string               `toml:"initial"`
	States  map[string]*stateDoc `toml:"states"`
}

type stateDoc struct {
	Parent      string          `toml:"parent"`
	OnEnter     []actionDoc     `toml:"on_enter"`
	OnExit      []actionDoc     `toml:"on_exit"`
	Transitions []transitionDoc `toml:"transitions"`
}

type actionDoc struct {
	Action string `toml:"action"`
	Arg    string `toml:"arg"` // handed to the action as a string, nil when empty
}

type transitionDoc struct {
	Trigger string `toml:"trigger"` // registered event name, or "Tick"
	Target  string `toml:"target"`
	Guard   string `toml:"guard"`
}

// LoadConfig replaces the graph with the one described by data
// Every action, guard and event it names must be registered beforehand
func (m *Machine[T]) LoadConfig(data []byte) error {
	var doc graphDoc
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return fmt.Errorf("failed to unmarshal FSM config: %w", err)
	}
	if extra := md.Undecoded(); len(extra) > 0 {
		return fmt.Errorf("unknown FSM config keys: %v", extra)
	}

	ids := stateIDs(doc.States)
	nodes := make(map[StateID]*Node[T], len(ids))
	for name, id := range ids {
		sd := doc.States[name]
		if sd == nil {
			sd = &stateDoc{}
		}
		node, err := m.bindState(name, id, sd, ids)
		if err != nil {
			return fmt.Errorf("state '%s': %w", name, err)
		}
		nodes[id] = node
	}

	for _, node := range nodes {
		if _, err := rootPath(nodes, node, 0); err != nil {
			return err
		}
	}

	initial, ok := ids[doc.Initial]
	if !ok || initial == StateRoot {
		return fmt.Errorf("initial state '%s' not found", doc.Initial)
	}

	m.nodes = nodes
	m.InitialStateID = initial
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]
	return nil
}

// stateIDs numbers states in name order after the implicit root
func stateIDs(states map[string]*stateDoc) map[string]StateID {
	names := make([]string, 0, len(states))
	for name := range states {
		if name != rootName {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	ids := map[string]StateID{rootName: StateRoot}
	for i, name := range names {
		ids[name] = StateRoot + 1 + StateID(i)
	}
	return ids
}

func (m *Machine[T]) bindState(name string, id StateID, sd *stateDoc, ids map[string]StateID) (*Node[T], error) {
	node := &Node[T]{ID: id, Name: name}

	if id != StateRoot {
		parent := sd.Parent
		if parent == "" {
			parent = rootName
		}
		pid, ok := ids[parent]
		if !ok {
			return nil, fmt.Errorf("unknown parent '%s'", parent)
		}
		node.ParentID = pid
	}

	var err error
	if node.OnEnter, err = m.bindActions(sd.OnEnter); err != nil {
		return nil, fmt.Errorf("on_enter: %w", err)
	}
	if node.OnExit, err = m.bindActions(sd.OnExit); err != nil {
		return nil, fmt.Errorf("on_exit: %w", err)
	}

	for _, td := range sd.Transitions {
		tr, err := m.bindTransition(td, ids)
		if err != nil {
			return nil, err
		}
		node.Transitions = append(node.Transitions, tr)
	}
	return node, nil
}

func (m *Machine[T]) bindActions(docs []actionDoc) ([]Action[T], error) {
	actions := make([]Action[T], len(docs))
	for i, ad := range docs {
		fn, ok := m.actionReg[ad.Action]
		if !ok {
			return nil, fmt.Errorf("unknown action '%s'", ad.Action)
		}
		actions[i].Func = fn
		if ad.Arg != "" {
			actions[i].Args = ad.Arg
		}
	}
	return actions, nil
}

func (m *Machine[T]) bindTransition(td transitionDoc, ids map[string]StateID) (Transition[T], error) {
	var tr Transition[T]

	target, ok := ids[td.Target]
	if !ok {
		return tr, fmt.Errorf("unknown target '%s'", td.Target)
	}
	tr.TargetID = target

	if !strings.EqualFold(td.Trigger, "Tick") {
		et, ok := m.eventReg[td.Trigger]
		if !ok {
			return tr, fmt.Errorf("unknown event '%s'", td.Trigger)
		}
		tr.Event = et
	}

	if td.Guard != "" {
		g, ok := m.guardReg[td.Guard]
		if !ok {
			return tr, fmt.Errorf("unknown guard '%s'", td.Guard)
		}
		tr.Guard = g
	}
	return tr, nil
}

// rootPath fills node.Path with the chain Root..node, memoized through the parents
func rootPath[T any](nodes map[StateID]*Node[T], node *Node[T], depth int) ([]StateID, error) {
	if node.Path != nil {
		return node.Path, nil
	}
	if depth > len(nodes) {
		return nil, fmt.Errorf("state '%s' is part of a parent cycle", node.Name)
	}
	if node.ParentID == StateNone {
		node.Path = []StateID{node.ID}
		return node.Path, nil
	}

	above, err := rootPath(nodes, nodes[node.ParentID], depth+1)
	if err != nil {
		return nil, err
	}
	path := make([]StateID, len(above)+1)
	copy(path, above)
	path[len(above)] = node.ID
	node.Path = path
	return path, nil
}
