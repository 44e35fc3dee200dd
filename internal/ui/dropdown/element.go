package dropdown

import (
	"github.com/google/uuid"
)

// KeyCode names the keys the controller reacts to
type KeyCode string

const (
	KeyEnter     KeyCode = "Enter"
	KeySpace     KeyCode = "Space"
	KeyArrowUp   KeyCode = "ArrowUp"
	KeyArrowDown KeyCode = "ArrowDown"
	KeyEscape    KeyCode = "Escape"
)

// KeyEvent is a key press delivered to an element. Target is the element
// that had keyboard focus when the key was pressed.
type KeyEvent struct {
	Code   KeyCode
	Target *Element
}

// KeyListener handles key events dispatched to an element
type KeyListener func(KeyEvent)

type keyListener struct {
	id uint64
	fn KeyListener
}

// Element is a stable reference to a mounted piece of the dropdown:
// the container, the clear button or one badge.
type Element struct {
	id        string
	kind      string
	listeners []keyListener
	nextID    uint64
}

// NewElement creates an element with a unique id
func NewElement(kind string) *Element {
	return &Element{
		id:   kind + "-" + uuid.NewString(),
		kind: kind,
	}
}

// ID returns the unique id of the element
func (e *Element) ID() string {
	return e.id
}

// Kind returns the element kind given at creation
func (e *Element) Kind() string {
	return e.kind
}

// AddKeyListener registers fn and returns the function that removes it
func (e *Element) AddKeyListener(fn KeyListener) func() {
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, keyListener{id: id, fn: fn})

	return func() {
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of registered key listeners
func (e *Element) ListenerCount() int {
	return len(e.listeners)
}

// Dispatch delivers ev to the listeners registered when the dispatch starts.
// Listeners added or removed while dispatching take effect for the next event.
func (e *Element) Dispatch(ev KeyEvent) {
	snapshot := make([]keyListener, len(e.listeners))
	copy(snapshot, e.listeners)
	for _, l := range snapshot {
		l.fn(ev)
	}
}

// effect re-runs setup whenever its dependencies change, always running the
// previous cleanup first. dispose runs the last cleanup.
type effect[D comparable] struct {
	deps    D
	mounted bool
	cleanup func()
}

func (f *effect[D]) run(deps D, setup func() func()) {
	if f.mounted && f.deps == deps {
		return
	}
	if f.cleanup != nil {
		f.cleanup()
		f.cleanup = nil
	}
	f.deps = deps
	f.mounted = true
	f.cleanup = setup()
}

func (f *effect[D]) dispose() {
	if f.cleanup != nil {
		f.cleanup()
		f.cleanup = nil
	}
	f.mounted = false
}
