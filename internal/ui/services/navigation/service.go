package navigation

// Service moves the highlight over the current option list
type Service struct {
	state   *State
	queryFn func() int // Function to get the current option count
}

// NewService creates a new navigation service with the highlight at 0
func NewService() *Service {
	return &Service{
		state: &State{
			Highlighted: 0,
		},
	}
}

// SetQueryFunction sets the function to query the option count
func (s *Service) SetQueryFunction(fn func() int) {
	s.queryFn = fn
}

// Highlighted returns the current highlight index
func (s *Service) Highlighted() int {
	return s.state.Highlighted
}

// Navigate moves the highlight one step. A step that would leave
// [0, count-1] is discarded; there is no wraparound.
// Returns whether the highlight moved.
func (s *Service) Navigate(direction Direction) bool {
	step := direction.Step()
	if step == 0 {
		return false
	}

	next := s.state.Highlighted + step
	if next < 0 || next >= s.count() {
		return false
	}
	s.state.Highlighted = next
	return true
}

// MoveToIndex sets the highlight directly, as hovering a row does
func (s *Service) MoveToIndex(index int) {
	s.state.Highlighted = index
}

// InRange reports whether the highlight points at an existing option
func (s *Service) InRange() bool {
	return s.state.Highlighted >= 0 && s.state.Highlighted < s.count()
}

func (s *Service) count() int {
	if s.queryFn == nil {
		return 0
	}
	return s.queryFn()
}
