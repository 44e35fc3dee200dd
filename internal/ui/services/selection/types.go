package selection

import (
	"dropselect/internal/domain"
)

// Mode is the selection shape of a dropdown. The only implementations are
// Single and Multi, so a value and its change callback always agree.
type Mode interface {
	// Multiple reports whether the mode is multi-select
	Multiple() bool
	// Select applies a click on option
	Select(option *domain.Option)
	// Clear requests an empty selection
	Clear()
	// IsSelected reports whether option is part of the current value
	IsSelected(option *domain.Option) bool
	// Selected returns the current value in display order
	Selected() []*domain.Option
	// Valid reports whether the change callback is set
	Valid() bool

	mode()
}

// Single holds at most one option. A nil Value means nothing is selected.
type Single struct {
	Value    *domain.Option
	OnChange func(*domain.Option)
}

// Multi holds any number of options in insertion order
type Multi struct {
	Value    []*domain.Option
	OnChange func([]*domain.Option)
}

func (Single) mode() {}
func (Multi) mode()  {}
