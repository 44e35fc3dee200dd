package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSelectionChanged EventType = "SelectionChanged"
	EventDropdownToggled  EventType = "DropdownToggled"
	EventError            EventType = "Error"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
	EventAppReady         EventType = "AppReady"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SelectionChangedEvent is emitted after a dropdown's owner accepted a new selection
type SelectionChangedEvent struct {
	Dropdown string
	Multiple bool
	Values   []Value // empty means nothing selected
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// DropdownToggledEvent is emitted when a dropdown opens or closes
type DropdownToggledEvent struct {
	Dropdown string
	Open     bool
}

func (e DropdownToggledEvent) Type() EventType { return EventDropdownToggled }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path      string
	Dropdowns int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// AppReadyEvent is emitted when the app is fully initialized and ready
type AppReadyEvent struct {
	Dropdowns int
}

func (e AppReadyEvent) Type() EventType { return EventAppReady }
