package snake

// Direction is a heading on the grid. The zero value is not a valid
// movement direction.
type Direction uint8

const (
	DirectionNone Direction = iota
	DirectionRight
	DirectionUp
	DirectionLeft
	DirectionDown
)

// Valid reports whether d is one of the four movement directions.
func (d Direction) Valid() bool {
	return d >= DirectionRight && d <= DirectionDown
}

// Opposite returns the reverse heading. DirectionNone has no opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionRight:
		return DirectionLeft
	case DirectionUp:
		return DirectionDown
	case DirectionLeft:
		return DirectionRight
	case DirectionDown:
		return DirectionUp
	}
	return DirectionNone
}

// Delta returns the one-cell offset for d. Y grows downward.
func (d Direction) Delta() Cell {
	switch d {
	case DirectionRight:
		return Cell{X: 1}
	case DirectionUp:
		return Cell{Y: -1}
	case DirectionLeft:
		return Cell{X: -1}
	case DirectionDown:
		return Cell{Y: 1}
	}
	return Cell{}
}

func (d Direction) String() string {
	switch d {
	case DirectionRight:
		return "right"
	case DirectionUp:
		return "up"
	case DirectionLeft:
		return "left"
	case DirectionDown:
		return "down"
	}
	return "none"
}

// ParseDirection maps a lower-case name as produced by String back to a
// Direction. Unknown names yield DirectionNone and false.
func ParseDirection(name string) (Direction, bool) {
	for d := DirectionRight; d <= DirectionDown; d++ {
		if d.String() == name {
			return d, true
		}
	}
	return DirectionNone, false
}
