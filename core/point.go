package core

// Point is a grid cell coordinate, 0-indexed
type Point struct {
	X, Y int
}

// Add returns p offset by d
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// In reports whether p lies inside [0,width) x [0,height)
func (p Point) In(width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

// Wrap folds p back into [0,width) x [0,height) modulo each axis
func (p Point) Wrap(width, height int) Point {
	return Point{X: mod(p.X, width), Y: mod(p.Y, height)}
}

func mod(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
