package render

// Handle is an opaque reference to a visual owned by a Sink
type Handle uint64

// Shape selects how a visual is drawn
type Shape uint8

const (
	ShapeSquare Shape = iota
	ShapeCircle
	ShapeFrame // outline of the whole play field
)

// Visual describes one drawable entity at creation time
// X and Y are render-space coordinates (origin at field center, y up)
type Visual struct {
	Shape Shape
	Color RGB
	X, Y  float64
	Depth RenderPriority
	Glyph rune // terminal sinks draw this rune; window sinks ignore it
}

// Sink is the presentation collaborator
// Handles returned by Create stay valid until Destroy; using a handle after that is a bug
type Sink interface {
	Create(v Visual) Handle
	Move(h Handle, x, y float64)
	Destroy(h Handle)
	SetText(text string)
	Flush() error
}
