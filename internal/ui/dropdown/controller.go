package dropdown

import (
	"errors"

	"dropselect/internal/domain"
	"dropselect/internal/ui/services/navigation"
	"dropselect/internal/ui/services/selection"
)

var (
	// ErrNoMode is returned when Props carries no selection mode
	ErrNoMode = errors.New("dropdown: selection mode is required")
	// ErrNoOnChange is returned when the selection mode has no change callback
	ErrNoOnChange = errors.New("dropdown: OnChange is required")
)

// Props is what the owner of a dropdown supplies on every render.
// Mode is selection.Single or selection.Multi.
type Props struct {
	Options []*domain.Option
	Mode    selection.Mode
}

func (p Props) validate() error {
	if p.Mode == nil {
		return ErrNoMode
	}
	if !p.Mode.Valid() {
		return ErrNoOnChange
	}
	return nil
}

// keyDeps are the values the key listener captures. A change in any of
// them replaces the listener.
type keyDeps struct {
	open        bool
	highlighted int
	options     **domain.Option // first element, identifies the backing array
	count       int
}

// Controller is the selection state machine of one dropdown. It owns the
// open flag and the highlight; the selection value belongs to the caller
// and is only changed through the mode's OnChange.
//
// Handlers must be called from a single goroutine.
type Controller struct {
	props     Props
	open      bool
	nav       *navigation.Service
	container *Element
	keys      effect[keyDeps]
	mounted   bool

	// OnToggle, when set, is called after the open flag changes
	OnToggle func(open bool)
}

// NewController validates props and creates a closed controller with the
// highlight on the first option. Call Mount before dispatching keys.
func NewController(props Props) (*Controller, error) {
	if err := props.validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		props:     props,
		nav:       navigation.NewService(),
		container: NewElement("container"),
	}
	c.nav.SetQueryFunction(func() int { return len(c.props.Options) })
	return c, nil
}

// SetProps replaces options and selection as the owner re-renders
func (c *Controller) SetProps(props Props) error {
	if err := props.validate(); err != nil {
		return err
	}
	c.props = props
	c.sync()
	return nil
}

// Mount attaches the key listener to the container
func (c *Controller) Mount() {
	c.mounted = true
	c.sync()
}

// Unmount detaches the key listener
func (c *Controller) Unmount() {
	c.mounted = false
	c.keys.dispose()
}

// Container returns the element key events are dispatched to
func (c *Controller) Container() *Element {
	return c.container
}

// IsOpen reports whether the option list is shown
func (c *Controller) IsOpen() bool {
	return c.open
}

// Highlighted returns the keyboard cursor. It may be out of range when the
// option list shrank.
func (c *Controller) Highlighted() int {
	return c.nav.Highlighted()
}

// Options returns the current option list
func (c *Controller) Options() []*domain.Option {
	return c.props.Options
}

// Multiple reports whether the dropdown is multi-select
func (c *Controller) Multiple() bool {
	return c.props.Mode.Multiple()
}

// Selected returns the current selection in display order
func (c *Controller) Selected() []*domain.Option {
	return c.props.Mode.Selected()
}

// IsOptionSelected reports whether option is part of the selection
func (c *Controller) IsOptionSelected(option *domain.Option) bool {
	return c.props.Mode.IsSelected(option)
}

// Click handles a click on the container
func (c *Controller) Click() {
	c.setOpen(!c.open)
}

// Blur handles the container losing focus
func (c *Controller) Blur() {
	c.setOpen(false)
}

// KeyDown delivers a key press to the container element
func (c *Controller) KeyDown(ev KeyEvent) {
	c.container.Dispatch(ev)
}

// OptionClick selects the option at index and closes the list
func (c *Controller) OptionClick(index int) {
	if index < 0 || index >= len(c.props.Options) {
		return
	}
	c.selectOption(c.props.Options[index])
	c.setOpen(false)
}

// OptionHover moves the highlight to the hovered row
func (c *Controller) OptionHover(index int) {
	if index < 0 || index >= len(c.props.Options) {
		return
	}
	c.nav.MoveToIndex(index)
	c.sync()
}

// ClearClick clears the selection. The open state is left alone.
func (c *Controller) ClearClick() {
	c.props.Mode.Clear()
}

// BadgeClick handles a click on a selected option's badge, which removes it
// in multi mode
func (c *Controller) BadgeClick(option *domain.Option) {
	if option == nil {
		return
	}
	c.selectOption(option)
}

func (c *Controller) selectOption(option *domain.Option) {
	c.props.Mode.Select(option)
}

func (c *Controller) setOpen(open bool) {
	if c.open == open {
		return
	}
	c.open = open
	c.sync()
	if c.OnToggle != nil {
		c.OnToggle(open)
	}
}

// sync replaces the key listener when the values it captures changed
func (c *Controller) sync() {
	if !c.mounted {
		return
	}
	c.keys.run(c.currentDeps(), c.registerKeyListener)
}

func (c *Controller) currentDeps() keyDeps {
	deps := keyDeps{
		open:        c.open,
		highlighted: c.nav.Highlighted(),
		count:       len(c.props.Options),
	}
	if len(c.props.Options) > 0 {
		deps.options = &c.props.Options[0]
	}
	return deps
}

// registerKeyListener attaches a listener that sees the open flag,
// highlight and options as they are now. Enter and Space toggle the live
// flag but decide about selecting from the captured one.
func (c *Controller) registerKeyListener() func() {
	wasOpen := c.open
	highlighted := c.nav.Highlighted()
	options := c.props.Options

	return c.container.AddKeyListener(func(ev KeyEvent) {
		if ev.Target != c.container {
			return
		}

		switch ev.Code {
		case KeyEnter, KeySpace:
			c.setOpen(!c.open)
			if wasOpen && highlighted >= 0 && highlighted < len(options) {
				c.selectOption(options[highlighted])
			}
		case KeyArrowUp, KeyArrowDown:
			if !wasOpen {
				c.setOpen(true)
				return
			}
			direction := navigation.DirectionDown
			if ev.Code == KeyArrowUp {
				direction = navigation.DirectionUp
			}
			if c.nav.Navigate(direction) {
				c.sync()
			}
		case KeyEscape:
			c.setOpen(false)
		}
	})
}
