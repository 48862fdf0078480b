package grid

// Field is the rectangular play area
// Cells span [0,Width) x [0,Height), CellSize is the render-space edge length of one cell
type Field struct {
	Width    int
	Height   int
	CellSize float64
}

// Contains reports whether c lies inside the play area
func (f Field) Contains(c Coord) bool {
	return c.I >= 0 && c.I < f.Width && c.J >= 0 && c.J < f.Height
}

// Center returns the default starting cell
func (f Field) Center() Coord {
	return Coord{I: f.Width / 2, J: f.Height / 2}
}

// ToRenderPosition maps a cell to the render-space position of its center
// Render space has its origin at the field center with y pointing up
func (f Field) ToRenderPosition(c Coord) (x, y float64) {
	x = float64(c.I)*f.CellSize - float64(f.Width)*f.CellSize/2 + f.CellSize/2
	y = float64(c.J)*f.CellSize - float64(f.Height)*f.CellSize/2 + f.CellSize/2
	return x, y
}

// RenderSize returns the field extent in render space
func (f Field) RenderSize() (w, h float64) {
	return float64(f.Width) * f.CellSize, float64(f.Height) * f.CellSize
}
