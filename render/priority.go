package render

// RenderPriority determines draw order. Lower values render first
type RenderPriority int

const (
	PriorityBackground RenderPriority = iota
	PriorityBorder
	PriorityCoin
	PriorityBody
	PriorityHead
	PriorityUI
)
