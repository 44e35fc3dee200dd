package dropdown

import (
	"testing"

	"dropselect/internal/domain"
	"dropselect/internal/ui/services/selection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeOptions() []*domain.Option {
	return []*domain.Option{
		domain.NewOption("A", domain.NumberValue(1)),
		domain.NewOption("B", domain.NumberValue(2)),
		domain.NewOption("C", domain.NumberValue(3)),
	}
}

// singleHost owns a single-select value the way a real caller would:
// it stores what OnChange gives it and renders it back through SetProps.
type singleHost struct {
	t       *testing.T
	options []*domain.Option
	value   *domain.Option
	changes int
	ctl     *Controller
}

func newSingleHost(t *testing.T, options []*domain.Option) *singleHost {
	h := &singleHost{t: t, options: options}
	ctl, err := NewController(h.props())
	require.NoError(t, err)
	h.ctl = ctl
	ctl.Mount()
	return h
}

func (h *singleHost) props() Props {
	return Props{
		Options: h.options,
		Mode: selection.Single{Value: h.value, OnChange: func(o *domain.Option) {
			h.changes++
			h.value = o
			if h.ctl != nil {
				require.NoError(h.t, h.ctl.SetProps(h.props()))
			}
		}},
	}
}

type multiHost struct {
	t       *testing.T
	options []*domain.Option
	value   []*domain.Option
	ctl     *Controller
}

func newMultiHost(t *testing.T, options []*domain.Option) *multiHost {
	h := &multiHost{t: t, options: options, value: []*domain.Option{}}
	ctl, err := NewController(h.props())
	require.NoError(t, err)
	h.ctl = ctl
	ctl.Mount()
	return h
}

func (h *multiHost) props() Props {
	return Props{
		Options: h.options,
		Mode: selection.Multi{Value: h.value, OnChange: func(v []*domain.Option) {
			h.value = v
			if h.ctl != nil {
				require.NoError(h.t, h.ctl.SetProps(h.props()))
			}
		}},
	}
}

func keyDown(c *Controller, code KeyCode) {
	c.KeyDown(KeyEvent{Code: code, Target: c.Container()})
}

func TestNewControllerRejectsBrokenProps(t *testing.T) {
	_, err := NewController(Props{Options: threeOptions()})
	require.ErrorIs(t, err, ErrNoMode)

	_, err = NewController(Props{Mode: selection.Single{}})
	require.ErrorIs(t, err, ErrNoOnChange)

	_, err = NewController(Props{Mode: selection.Multi{}})
	require.ErrorIs(t, err, ErrNoOnChange)

	h := newSingleHost(t, threeOptions())
	require.ErrorIs(t, h.ctl.SetProps(Props{}), ErrNoMode)
}

func TestNewControllerStartsClosed(t *testing.T) {
	h := newSingleHost(t, threeOptions())

	assert.False(t, h.ctl.IsOpen())
	assert.Equal(t, 0, h.ctl.Highlighted())
	assert.False(t, h.ctl.Multiple())
	assert.Empty(t, h.ctl.Selected())
}

func TestSingleSelectScenario(t *testing.T) {
	options := threeOptions()
	h := newSingleHost(t, options)

	h.ctl.Click()
	require.True(t, h.ctl.IsOpen())

	h.ctl.OptionClick(1)
	assert.Same(t, options[1], h.value)
	assert.False(t, h.ctl.IsOpen())
	assert.Equal(t, 1, h.changes)

	h.ctl.Click()
	require.True(t, h.ctl.IsOpen())

	// Same option again: value unchanged, no callback, still closes
	h.ctl.OptionClick(1)
	assert.Same(t, options[1], h.value)
	assert.False(t, h.ctl.IsOpen())
	assert.Equal(t, 1, h.changes)
	assert.True(t, h.ctl.IsOptionSelected(options[1]))
}

func TestMultiSelectScenario(t *testing.T) {
	options := threeOptions()
	h := newMultiHost(t, options)

	h.ctl.Click()
	require.True(t, h.ctl.IsOpen())

	h.ctl.OptionClick(0)
	assert.Equal(t, []string{"A"}, domain.Labels(h.value))

	h.ctl.Click()
	h.ctl.OptionClick(2)
	assert.Equal(t, []string{"A", "C"}, domain.Labels(h.value))

	h.ctl.Click()
	h.ctl.OptionClick(0)
	assert.Equal(t, []string{"C"}, domain.Labels(h.value))
	assert.Same(t, options[2], h.value[0])
	assert.True(t, h.ctl.Multiple())
}

func TestMultiToggleRestoresPosition(t *testing.T) {
	options := threeOptions()
	h := newMultiHost(t, options)
	h.ctl.OptionClick(0)
	h.ctl.OptionClick(2)
	before := append([]*domain.Option(nil), h.value...)

	h.ctl.OptionClick(1)
	h.ctl.OptionClick(1)

	assert.Equal(t, before, h.value)
}

func TestArrowDownClampsAtEnd(t *testing.T) {
	h := newSingleHost(t, threeOptions())
	h.ctl.Click()

	keyDown(h.ctl, KeyArrowDown)
	keyDown(h.ctl, KeyArrowDown)
	assert.Equal(t, 2, h.ctl.Highlighted())

	keyDown(h.ctl, KeyArrowDown)
	assert.Equal(t, 2, h.ctl.Highlighted())
	assert.True(t, h.ctl.IsOpen())

	for i := 0; i < 5; i++ {
		keyDown(h.ctl, KeyArrowUp)
	}
	assert.Equal(t, 0, h.ctl.Highlighted())
}

func TestArrowOpensClosedDropdownWithoutMoving(t *testing.T) {
	h := newSingleHost(t, threeOptions())

	keyDown(h.ctl, KeyArrowDown)
	assert.True(t, h.ctl.IsOpen())
	assert.Equal(t, 0, h.ctl.Highlighted())

	h.ctl.Blur()
	keyDown(h.ctl, KeyArrowUp)
	assert.True(t, h.ctl.IsOpen())
	assert.Equal(t, 0, h.ctl.Highlighted())
}

func TestEnterSelectsOnlyWhenAlreadyOpen(t *testing.T) {
	options := threeOptions()
	h := newSingleHost(t, options)

	// Closed: Enter opens and selects nothing
	keyDown(h.ctl, KeyEnter)
	assert.True(t, h.ctl.IsOpen())
	assert.Nil(t, h.value)

	keyDown(h.ctl, KeyArrowDown)

	// Open: Space closes and selects the highlighted option
	keyDown(h.ctl, KeySpace)
	assert.False(t, h.ctl.IsOpen())
	assert.Same(t, options[1], h.value)
}

func TestHighlightPersistsAcrossOpenClose(t *testing.T) {
	h := newSingleHost(t, threeOptions())
	h.ctl.Click()
	keyDown(h.ctl, KeyArrowDown)
	keyDown(h.ctl, KeyEscape)
	h.ctl.Click()

	assert.Equal(t, 1, h.ctl.Highlighted())
}

func TestEscapeAndBlurAlwaysClose(t *testing.T) {
	h := newSingleHost(t, threeOptions())

	keyDown(h.ctl, KeyEscape)
	assert.False(t, h.ctl.IsOpen())
	h.ctl.Blur()
	assert.False(t, h.ctl.IsOpen())

	h.ctl.Click()
	keyDown(h.ctl, KeyEscape)
	assert.False(t, h.ctl.IsOpen())

	h.ctl.Click()
	h.ctl.Blur()
	assert.False(t, h.ctl.IsOpen())
}

func TestClearNeverChangesOpenState(t *testing.T) {
	options := threeOptions()

	single := newSingleHost(t, options)
	single.ctl.OptionClick(2)
	single.ctl.Click()
	single.ctl.ClearClick()
	assert.Nil(t, single.value)
	assert.True(t, single.ctl.IsOpen())
	single.ctl.ClearClick()
	assert.Nil(t, single.value)

	multi := newMultiHost(t, options)
	multi.ctl.OptionClick(0)
	multi.ctl.OptionClick(1)
	multi.ctl.ClearClick()
	require.NotNil(t, multi.value)
	assert.Empty(t, multi.value)
	assert.False(t, multi.ctl.IsOpen())
}

func TestKeysFromDescendantsAreIgnored(t *testing.T) {
	h := newSingleHost(t, threeOptions())
	clearBtn := NewElement("clear")

	for _, code := range []KeyCode{KeyEnter, KeySpace, KeyArrowDown, KeyArrowUp} {
		h.ctl.KeyDown(KeyEvent{Code: code, Target: clearBtn})
	}
	assert.False(t, h.ctl.IsOpen())
	assert.Equal(t, 0, h.ctl.Highlighted())
	assert.Nil(t, h.value)
}

func TestOptionHoverMovesHighlight(t *testing.T) {
	h := newSingleHost(t, threeOptions())

	h.ctl.OptionHover(2)
	assert.Equal(t, 2, h.ctl.Highlighted())
	assert.False(t, h.ctl.IsOpen())

	h.ctl.OptionHover(7)
	assert.Equal(t, 2, h.ctl.Highlighted())

	// Enter uses the hovered row
	h.ctl.Click()
	keyDown(h.ctl, KeyEnter)
	assert.Equal(t, "C", h.value.Label)
}

func TestBadgeClickRemovesFromMulti(t *testing.T) {
	options := threeOptions()
	h := newMultiHost(t, options)
	h.ctl.OptionClick(0)
	h.ctl.OptionClick(1)

	h.ctl.BadgeClick(options[0])
	assert.Equal(t, []string{"B"}, domain.Labels(h.value))
	assert.False(t, h.ctl.IsOpen())
}

func TestSingleListenerAtATime(t *testing.T) {
	h := newSingleHost(t, threeOptions())
	container := h.ctl.Container()
	assert.Equal(t, 1, container.ListenerCount())

	h.ctl.Click()
	keyDown(h.ctl, KeyArrowDown)
	keyDown(h.ctl, KeyArrowDown)
	h.ctl.OptionHover(0)
	keyDown(h.ctl, KeyEnter)
	h.ctl.Click()
	require.NoError(t, h.ctl.SetProps(Props{Options: threeOptions(), Mode: h.props().Mode}))
	assert.Equal(t, 1, container.ListenerCount())

	h.ctl.Unmount()
	assert.Equal(t, 0, container.ListenerCount())

	// Keys after unmount do nothing
	open, highlighted := h.ctl.IsOpen(), h.ctl.Highlighted()
	keyDown(h.ctl, KeyArrowDown)
	keyDown(h.ctl, KeyEscape)
	assert.Equal(t, open, h.ctl.IsOpen())
	assert.Equal(t, highlighted, h.ctl.Highlighted())

	h.ctl.Mount()
	assert.Equal(t, 1, container.ListenerCount())
}

func TestUnmountedControllerIgnoresKeys(t *testing.T) {
	options := threeOptions()
	var value *domain.Option
	ctl, err := NewController(Props{
		Options: options,
		Mode:    selection.Single{OnChange: func(o *domain.Option) { value = o }},
	})
	require.NoError(t, err)

	keyDown(ctl, KeyArrowDown)
	assert.False(t, ctl.IsOpen())
	assert.Equal(t, 0, ctl.Container().ListenerCount())

	// Clicks still work without a keyboard listener
	ctl.OptionClick(0)
	assert.Same(t, options[0], value)
}

func TestShrunkOptionsAreTolerated(t *testing.T) {
	options := threeOptions()
	h := newSingleHost(t, options)
	h.ctl.Click()
	keyDown(h.ctl, KeyArrowDown)
	keyDown(h.ctl, KeyArrowDown)
	require.Equal(t, 2, h.ctl.Highlighted())

	h.options = options[:1]
	require.NoError(t, h.ctl.SetProps(h.props()))

	keyDown(h.ctl, KeyArrowDown)
	assert.Equal(t, 2, h.ctl.Highlighted())

	// Enter with an out of range highlight closes without selecting
	keyDown(h.ctl, KeyEnter)
	assert.False(t, h.ctl.IsOpen())
	assert.Nil(t, h.value)
	assert.Equal(t, 0, h.changes)
}

func TestControllersAreIndependent(t *testing.T) {
	first := newSingleHost(t, threeOptions())
	second := newSingleHost(t, threeOptions())

	first.ctl.Click()
	keyDown(first.ctl, KeyArrowDown)

	assert.False(t, second.ctl.IsOpen())
	assert.Equal(t, 0, second.ctl.Highlighted())

	// A key addressed to the other container is ignored
	second.ctl.KeyDown(KeyEvent{Code: KeyEnter, Target: first.ctl.Container()})
	assert.False(t, second.ctl.IsOpen())
	assert.NotEqual(t, first.ctl.Container().ID(), second.ctl.Container().ID())
}

func TestOnToggleReportsTransitions(t *testing.T) {
	h := newSingleHost(t, threeOptions())
	var seen []bool
	h.ctl.OnToggle = func(open bool) { seen = append(seen, open) }

	h.ctl.Click()
	h.ctl.Blur()
	h.ctl.Blur()
	keyDown(h.ctl, KeyArrowDown)

	assert.Equal(t, []bool{true, false, true}, seen)
}
