package navigation

// State holds the highlight cursor
type State struct {
	Highlighted int
}

// Direction represents movement directions
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Step returns the index delta for the direction
func (d Direction) Step() int {
	switch d {
	case DirectionUp:
		return -1
	case DirectionDown:
		return 1
	default:
		return 0
	}
}
