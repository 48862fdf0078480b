package render

import (
	"fmt"
)

type liveEntity struct {
	handle Handle
	x, y   float64
}

// Scene reconciles successive frames against a handle-based Sink
// Each key is created once when it first appears, moved while it persists,
// and destroyed once when it disappears
type Scene struct {
	sink    Sink
	palette Palette
	live    map[Key]liveEntity
	seen    map[Key]struct{}
	text    string
	textSet bool
}

// NewScene binds a scene to a sink
func NewScene(sink Sink, palette Palette) *Scene {
	return &Scene{
		sink:    sink,
		palette: palette,
		live:    make(map[Key]liveEntity),
		seen:    make(map[Key]struct{}),
	}
}

// Apply pushes frame differences to the sink and flushes it
func (s *Scene) Apply(f Frame) error {
	clear(s.seen)

	for _, item := range f.Items {
		if _, dup := s.seen[item.Key]; dup {
			panic(fmt.Sprintf("render: duplicate key %+v in frame", item.Key))
		}
		s.seen[item.Key] = struct{}{}

		x, y := f.Field.ToRenderPosition(item.Cell)
		if item.Key.Kind == KindBorder {
			x, y = 0, 0
		}

		if e, ok := s.live[item.Key]; ok {
			if e.x != x || e.y != y {
				s.sink.Move(e.handle, x, y)
				s.live[item.Key] = liveEntity{handle: e.handle, x: x, y: y}
			}
			continue
		}

		h := s.sink.Create(s.visual(item, x, y))
		s.live[item.Key] = liveEntity{handle: h, x: x, y: y}
	}

	for key, e := range s.live {
		if _, ok := s.seen[key]; ok {
			continue
		}
		s.sink.Destroy(e.handle)
		delete(s.live, key)
	}

	if !s.textSet || f.Score != s.text {
		s.sink.SetText(f.Score)
		s.text = f.Score
		s.textSet = true
	}

	return s.sink.Flush()
}

// Clear destroys every live entity, permanent ones included
func (s *Scene) Clear() error {
	for key, e := range s.live {
		s.sink.Destroy(e.handle)
		delete(s.live, key)
	}
	return s.sink.Flush()
}

// Live returns the number of entities currently held by the sink
func (s *Scene) Live() int {
	return len(s.live)
}

func (s *Scene) visual(item Item, x, y float64) Visual {
	switch item.Key.Kind {
	case KindBorder:
		return Visual{Shape: ShapeFrame, Color: s.palette.BorderRGB(), Depth: PriorityBorder}
	case KindCoin:
		return Visual{Shape: ShapeCircle, Color: s.palette.CoinRGB(), X: x, Y: y, Depth: PriorityCoin, Glyph: '●'}
	default:
		if item.Key.Index == 0 {
			return Visual{Shape: ShapeSquare, Color: s.palette.Segment(0), X: x, Y: y, Depth: PriorityHead, Glyph: '▓'}
		}
		return Visual{Shape: ShapeSquare, Color: s.palette.Segment(item.Key.Index), X: x, Y: y, Depth: PriorityBody, Glyph: '█'}
	}
}
