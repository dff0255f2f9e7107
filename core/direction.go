package core

// Direction is one of the four grid headings
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

var directionNames = [...]string{
	DirUp:    "up",
	DirDown:  "down",
	DirLeft:  "left",
	DirRight: "right",
}

var directionDeltas = [...]Point{
	DirUp:    {X: 0, Y: -1},
	DirDown:  {X: 0, Y: 1},
	DirLeft:  {X: -1, Y: 0},
	DirRight: {X: 1, Y: 0},
}

// Delta returns the unit step for the direction, y grows downward
func (d Direction) Delta() Point {
	if int(d) >= len(directionDeltas) {
		return Point{}
	}
	return directionDeltas[d]
}

// Opposite returns the 180° reverse
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// IsVertical reports whether the direction moves along the y axis
func (d Direction) IsVertical() bool {
	return d == DirUp || d == DirDown
}

func (d Direction) String() string {
	if int(d) >= len(directionNames) {
		return "unknown"
	}
	return directionNames[d]
}
