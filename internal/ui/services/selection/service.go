package selection

import (
	"dropselect/internal/domain"
)

func (s Single) Multiple() bool { return false }

func (s Single) Valid() bool { return s.OnChange != nil }

// Select requests option as the new value. Selecting the current value
// again does nothing; only Clear deselects in single mode.
func (s Single) Select(option *domain.Option) {
	if s.Value != option {
		s.OnChange(option)
	}
}

// Clear requests no selection
func (s Single) Clear() {
	s.OnChange(nil)
}

func (s Single) IsSelected(option *domain.Option) bool {
	return s.Value == option
}

func (s Single) Selected() []*domain.Option {
	if s.Value == nil {
		return nil
	}
	return []*domain.Option{s.Value}
}

func (m Multi) Multiple() bool { return true }

func (m Multi) Valid() bool { return m.OnChange != nil }

// Select toggles option: a selected option is removed keeping the order
// of the rest, an unselected one is appended.
func (m Multi) Select(option *domain.Option) {
	if m.IsSelected(option) {
		next := make([]*domain.Option, 0, len(m.Value))
		for _, v := range m.Value {
			if v != option {
				next = append(next, v)
			}
		}
		m.OnChange(next)
		return
	}

	next := make([]*domain.Option, 0, len(m.Value)+1)
	next = append(next, m.Value...)
	next = append(next, option)
	m.OnChange(next)
}

// Clear requests an empty selection
func (m Multi) Clear() {
	m.OnChange([]*domain.Option{})
}

func (m Multi) IsSelected(option *domain.Option) bool {
	for _, v := range m.Value {
		if v == option {
			return true
		}
	}
	return false
}

func (m Multi) Selected() []*domain.Option {
	return m.Value
}
