package dropdown

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"dropselect/internal/domain"
	"dropselect/internal/ui/views"
)

// FocusLeaveMsg is sent when keyboard focus moves past the first or last
// focusable element of the dropdown
type FocusLeaveMsg struct {
	Forward bool
}

type focusKind int

const (
	focusContainer focusKind = iota
	focusBadge
	focusClear
)

// focusTarget is the inner element holding keyboard focus
type focusTarget struct {
	kind  focusKind
	index int // badge index when kind is focusBadge
}

// Model binds a Controller to Bubble Tea input and renders it
type Model struct {
	ctl         *Controller
	keys        KeyMap
	theme       *views.Theme
	width       int
	placeholder string

	focused  bool
	focus    focusTarget
	clearEl  *Element
	badgeEls []*Element

	hits *HitMap
	x, y int // screen position of the last render
}

// ModelOption configures a Model
type ModelOption func(*Model)

// WithKeyMap sets the key bindings
func WithKeyMap(k KeyMap) ModelOption {
	return func(m *Model) { m.keys = k }
}

// WithTheme sets the theme used for rendering
func WithTheme(t *views.Theme) ModelOption {
	return func(m *Model) { m.theme = t }
}

// WithWidth sets the rendered width in cells
func WithWidth(w int) ModelOption {
	return func(m *Model) { m.width = w }
}

// WithPlaceholder sets the text shown when nothing is selected
func WithPlaceholder(s string) ModelOption {
	return func(m *Model) { m.placeholder = s }
}

// New creates and mounts a dropdown
func New(props Props, opts ...ModelOption) (*Model, error) {
	ctl, err := NewController(props)
	if err != nil {
		return nil, err
	}

	m := &Model{
		ctl:         ctl,
		keys:        DefaultKeyMap(),
		theme:       views.NewTheme(),
		width:       40,
		placeholder: "Select…",
		clearEl:     NewElement("clear"),
		hits:        NewHitMap(),
	}
	for _, opt := range opts {
		opt(m)
	}

	ctl.Mount()
	return m, nil
}

// Controller returns the underlying state machine
func (m *Model) Controller() *Controller {
	return m.ctl
}

// SetProps passes the owner's current options and selection down
func (m *Model) SetProps(props Props) error {
	if err := m.ctl.SetProps(props); err != nil {
		return err
	}
	m.normalizeFocus()
	return nil
}

// Close unmounts the controller
func (m *Model) Close() {
	m.ctl.Unmount()
}

// Focus gives the dropdown keyboard focus, on the container
func (m *Model) Focus() {
	m.focused = true
	m.focus = focusTarget{kind: focusContainer}
}

// FocusLast gives the dropdown keyboard focus on its last inner element,
// as reached when tabbing backwards
func (m *Model) FocusLast() {
	m.focused = true
	m.focus = focusTarget{kind: focusClear}
}

// Blur removes keyboard focus, which closes the option list
func (m *Model) Blur() {
	m.focused = false
	m.focus = focusTarget{kind: focusContainer}
	m.ctl.Blur()
}

// Focused reports whether the dropdown has keyboard focus
func (m *Model) Focused() bool {
	return m.focused
}

// KeyMap returns the key bindings in use
func (m *Model) KeyMap() KeyMap {
	return m.keys
}

// SetOrigin records where the dropdown was drawn on screen
func (m *Model) SetOrigin(x, y int) {
	m.x, m.y = x, y
}

// Contains reports whether the screen cell x, y is part of the last render
func (m *Model) Contains(x, y int) bool {
	return m.hits.Test(x-m.x, y-m.y) != nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles key messages while focused and mouse messages always.
// The host decides which dropdown receives a mouse message.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			return nil
		}
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.normalizeFocus()

	switch {
	case key.Matches(msg, m.keys.Next):
		return m.moveFocus(1)
	case key.Matches(msg, m.keys.Prev):
		return m.moveFocus(-1)
	}

	code, ok := m.keys.code(msg)
	if !ok {
		return nil
	}

	target := m.targetElement()
	if target != m.ctl.Container() && (code == KeyEnter || code == KeySpace) {
		m.activate()
	}
	// Keys bubble to the container; its listener ignores other targets
	m.ctl.KeyDown(KeyEvent{Code: code, Target: target})
	m.normalizeFocus()
	return nil
}

// activate presses the focused inner button
func (m *Model) activate() {
	switch m.focus.kind {
	case focusClear:
		m.ctl.ClearClick()
	case focusBadge:
		selected := m.ctl.Selected()
		if m.focus.index < len(selected) {
			m.ctl.BadgeClick(selected[m.focus.index])
		}
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	region := m.hits.Test(msg.X-m.x, msg.Y-m.y)
	if region == nil {
		return
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		if region.ID == regionOption && m.ctl.IsOpen() {
			m.ctl.OptionHover(region.Data.(int))
		}
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.focused = true
		m.focus = focusTarget{kind: focusContainer}

		switch region.ID {
		case regionOption:
			m.ctl.OptionClick(region.Data.(int))
		case regionClear:
			m.ctl.ClearClick()
		case regionBadge:
			selected := m.ctl.Selected()
			if i := region.Data.(int); i < len(selected) {
				m.ctl.BadgeClick(selected[i])
			}
		case regionContainer:
			m.ctl.Click()
		}
	}
}

// focusRing lists the focusable inner elements in tab order
func (m *Model) focusRing() []focusTarget {
	ring := []focusTarget{{kind: focusContainer}}
	if m.ctl.Multiple() {
		for i := range m.ctl.Selected() {
			ring = append(ring, focusTarget{kind: focusBadge, index: i})
		}
	}
	return append(ring, focusTarget{kind: focusClear})
}

func (m *Model) moveFocus(step int) tea.Cmd {
	ring := m.focusRing()
	pos := 0
	for i, f := range ring {
		if f == m.focus {
			pos = i
			break
		}
	}

	next := pos + step
	if next < 0 || next >= len(ring) {
		m.Blur()
		forward := step > 0
		return func() tea.Msg { return FocusLeaveMsg{Forward: forward} }
	}
	m.focus = ring[next]
	return nil
}

// normalizeFocus keeps a badge focus valid after badges were removed
func (m *Model) normalizeFocus() {
	if m.focus.kind != focusBadge {
		return
	}
	n := 0
	if m.ctl.Multiple() {
		n = len(m.ctl.Selected())
	}
	switch {
	case n == 0:
		m.focus = focusTarget{kind: focusClear}
	case m.focus.index >= n:
		m.focus.index = n - 1
	}
}

func (m *Model) targetElement() *Element {
	switch m.focus.kind {
	case focusClear:
		return m.clearEl
	case focusBadge:
		for len(m.badgeEls) <= m.focus.index {
			m.badgeEls = append(m.badgeEls, NewElement("badge"))
		}
		return m.badgeEls[m.focus.index]
	default:
		return m.ctl.Container()
	}
}

// Selected returns the current selection
func (m *Model) Selected() []*domain.Option {
	return m.ctl.Selected()
}
