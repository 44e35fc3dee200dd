package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Class is a semantic style name used by the dropdown view
type Class string

const (
	ClassContainer        Class = "container"
	ClassContainerFocused Class = "container-focused"
	ClassValue            Class = "value"
	ClassPlaceholder      Class = "placeholder"
	ClassOptionBadge      Class = "option-badge"
	ClassRemoveBtn        Class = "remove-btn"
	ClassClearBtn         Class = "clear-btn"
	ClassDivider          Class = "divider"
	ClassCaret            Class = "caret"
	ClassOptions          Class = "options"
	ClassOption           Class = "option"
	ClassSelected         Class = "selected"
	ClassHighlighted      Class = "highlighted"
	ClassFocus            Class = "focus" // inner element holding keyboard focus
)

// StyleOverride replaces colors of one class. Empty fields keep the default.
type StyleOverride struct {
	Foreground string
	Background string
	Bold       bool
}

// Theme maps classes to styles. Lookups of unknown classes return an empty style.
type Theme struct {
	styles map[Class]lipgloss.Style
}

// NewTheme creates a Theme with the default palette
func NewTheme() *Theme {
	return &Theme{
		styles: map[Class]lipgloss.Style{
			ClassContainer: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("241")).
				Padding(0, 1),
			ClassContainerFocused: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("99")).
				Padding(0, 1),
			ClassValue:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			ClassPlaceholder: lipgloss.NewStyle().Faint(true),
			ClassOptionBadge: lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("238")),
			ClassRemoveBtn:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
			ClassClearBtn:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			ClassDivider:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			ClassCaret:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			ClassOptions:     lipgloss.NewStyle().Background(lipgloss.Color("235")),
			ClassOption:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			ClassSelected:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true), // green
			ClassHighlighted: lipgloss.NewStyle().Background(lipgloss.Color("238")),
			ClassFocus:       lipgloss.NewStyle().Underline(true),
		},
	}
}

// Style returns the style registered for class
func (t *Theme) Style(class Class) lipgloss.Style {
	if t == nil {
		return lipgloss.NewStyle()
	}
	return t.styles[class]
}

// Compose layers the styles of classes; later classes win on conflicts.
// Only colors and text attributes are layered, spacing comes from none of them.
func (t *Theme) Compose(classes ...Class) lipgloss.Style {
	style := lipgloss.NewStyle()
	for i := len(classes) - 1; i >= 0; i-- {
		style = style.Inherit(t.Style(classes[i]))
	}
	return style
}

// Apply overrides colors per class name. Unknown class names are ignored
// and reported back.
func (t *Theme) Apply(overrides map[string]StyleOverride) []string {
	var unknown []string
	for name, o := range overrides {
		class := Class(name)
		style, ok := t.styles[class]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		if o.Foreground != "" {
			style = style.Foreground(lipgloss.Color(o.Foreground))
		}
		if o.Background != "" {
			style = style.Background(lipgloss.Color(o.Background))
		}
		if o.Bold {
			style = style.Bold(true)
		}
		t.styles[class] = style
	}
	return unknown
}

// Styles contains the styles of the host screen around the dropdowns
type Styles struct {
	Title       lipgloss.Style
	Label       lipgloss.Style
	LabelActive lipgloss.Style
	Status      lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		LabelActive: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // yellow
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().Padding(1, 2),
	}
}
