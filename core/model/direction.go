package model

// Direction is the travel direction of a car or a hall call.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
)

// String returns a human-readable representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirNone:
		return "none"
	default:
		return "unknown"
	}
}

// Opposite returns the reversed direction. DirNone is returned unchanged.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	default:
		return DirNone
	}
}

// Toward returns the direction of travel from one floor to another.
// Equal floors yield DirNone.
func Toward(from, to int) Direction {
	switch {
	case to > from:
		return DirUp
	case to < from:
		return DirDown
	default:
		return DirNone
	}
}
