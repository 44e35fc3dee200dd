package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dropselect/internal/config"
	"dropselect/internal/domain"
	"dropselect/internal/eventbus"
	"dropselect/internal/ui/dropdown"
	"dropselect/internal/ui/services/selection"
	"dropselect/internal/ui/views"
)

// statusTimeout is how long a status message stays visible
const statusTimeout = 3 * time.Second

// appKeyMap holds the bindings handled by the host screen
type appKeyMap struct {
	Help key.Binding
	Quit key.Binding
}

func defaultAppKeyMap() appKeyMap {
	return appKeyMap{
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// footerKeys combines the focused dropdown bindings with the app bindings
type footerKeys struct {
	dropdown dropdown.KeyMap
	app      appKeyMap
}

func (k footerKeys) ShortHelp() []key.Binding {
	return append(k.dropdown.ShortHelp(), k.dropdown.Next, k.app.Help, k.app.Quit)
}

func (k footerKeys) FullHelp() [][]key.Binding {
	return append(k.dropdown.FullHelp(), []key.Binding{k.app.Help, k.app.Quit})
}

// Selection is the final value of one dropdown
type Selection struct {
	Name    string
	Options []*domain.Option
}

// field is one dropdown on screen together with the selection it owns
type field struct {
	name     string
	options  []*domain.Option
	multiple bool
	single   *domain.Option
	multi    []*domain.Option
	dd       *dropdown.Model
}

func (f *field) selected() []*domain.Option {
	if f.multiple {
		return f.multi
	}
	if f.single == nil {
		return nil
	}
	return []*domain.Option{f.single}
}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config

	fields []*field
	focus  int // index into fields, -1 when nothing is focused

	width  int
	height int
	help   help.Model
	keys   appKeyMap
	ddKeys dropdown.KeyMap
	styles *views.Styles

	status      string
	inPagerMode bool // tracks if we're currently in pager mode

	helpRenderer *HelpRenderer
	helpOps      *HelpOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model with one dropdown per configured dropdown
func NewModel(bus eventbus.EventBus, cfg *config.Config) (*Model, error) {
	theme := views.NewTheme()
	for _, name := range theme.Apply(themeOverrides(cfg.Theme)) {
		log.Printf("Ignoring theme override for unknown class %q", name)
	}

	ddKeys := dropdown.DefaultKeyMap()
	ddKeys.Override(cfg.Keys.Toggle, cfg.Keys.Up, cfg.Keys.Down, cfg.Keys.Close)

	width := cfg.UISettings.Width
	if width <= 0 {
		width = config.DefaultWidth
	}

	m := &Model{
		bus:    bus,
		config: cfg,
		focus:  -1,
		help:   help.New(),
		keys:   defaultAppKeyMap(),
		ddKeys: ddKeys,
		styles: views.NewStyles(),
	}
	m.helpRenderer = NewHelpRenderer(ddKeys, m.keys)

	for _, dc := range cfg.Dropdowns {
		f := &field{
			name:     dc.Name,
			options:  dc.BuildOptions(),
			multiple: dc.Multiple,
		}

		// Restore onto the instances just built so identity holds from here on
		restored := dc.SelectedFrom(f.options)
		if f.multiple {
			f.multi = append([]*domain.Option{}, restored...)
		} else if len(restored) > 0 {
			f.single = restored[0]
		}

		dd, err := dropdown.New(m.props(f),
			dropdown.WithKeyMap(ddKeys),
			dropdown.WithTheme(theme),
			dropdown.WithWidth(width),
			dropdown.WithPlaceholder(placeholder(f)),
		)
		if err != nil {
			return nil, fmt.Errorf("dropdown %q: %w", dc.Name, err)
		}
		f.dd = dd

		name := f.name
		dd.Controller().OnToggle = func(open bool) {
			if m.bus != nil {
				m.bus.Publish(eventbus.DropdownToggledEvent{Dropdown: name, Open: open})
			}
		}

		m.fields = append(m.fields, f)
	}

	if len(m.fields) > 0 {
		m.focusField(0, true)
	}
	return m, nil
}

func placeholder(f *field) string {
	if f.multiple {
		return "Select options…"
	}
	return "Select an option…"
}

func themeOverrides(theme map[string]config.StyleConfig) map[string]views.StyleOverride {
	overrides := make(map[string]views.StyleOverride, len(theme))
	for class, sc := range theme {
		overrides[class] = views.StyleOverride{
			Foreground: sc.Foreground,
			Background: sc.Background,
			Bold:       sc.Bold,
		}
	}
	return overrides
}

// props builds the dropdown props from the selection the field owns
func (m *Model) props(f *field) dropdown.Props {
	if f.multiple {
		return dropdown.Props{
			Options: f.options,
			Mode: selection.Multi{
				Value:    f.multi,
				OnChange: func(v []*domain.Option) { m.onChange(f, nil, v) },
			},
		}
	}
	return dropdown.Props{
		Options: f.options,
		Mode: selection.Single{
			Value:    f.single,
			OnChange: func(o *domain.Option) { m.onChange(f, o, nil) },
		},
	}
}

// onChange stores a new selection and renders it back into the dropdown
func (m *Model) onChange(f *field, single *domain.Option, multi []*domain.Option) {
	if f.multiple {
		f.multi = multi
	} else {
		f.single = single
	}

	if f.dd != nil {
		if err := f.dd.SetProps(m.props(f)); err != nil {
			log.Printf("Failed to update dropdown %q: %v", f.name, err)
		}
	}

	selected := f.selected()
	if m.bus != nil {
		m.bus.Publish(eventbus.SelectionChangedEvent{
			Dropdown: f.name,
			Multiple: f.multiple,
			Values:   domain.Values(selected),
		})
	}

	if len(selected) == 0 {
		m.status = fmt.Sprintf("%s cleared", f.name)
	} else {
		m.status = fmt.Sprintf("%s: %s", f.name, strings.Join(domain.Labels(selected), ", "))
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Selections returns the current selection of every dropdown in screen order
func (m *Model) Selections() []Selection {
	out := make([]Selection, 0, len(m.fields))
	for _, f := range m.fields {
		out = append(out, Selection{Name: f.name, Options: f.selected()})
	}
	return out
}

// Close unmounts every dropdown
func (m *Model) Close() {
	for _, f := range m.fields {
		f.dd.Close()
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	if m.bus != nil {
		m.bus.Publish(eventbus.AppReadyEvent{Dropdowns: len(m.fields)})
	}
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case dropdown.FocusLeaveMsg:
		m.moveFocus(msg.Forward)
		return m, nil

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		return m, m.fetchHelpPager()
	}

	if m.focus < 0 {
		// Nothing focused: tab brings focus back
		switch {
		case key.Matches(msg, m.ddKeys.Next) && len(m.fields) > 0:
			m.focusField(0, true)
		case key.Matches(msg, m.ddKeys.Prev) && len(m.fields) > 0:
			m.focusField(len(m.fields)-1, false)
		}
		return m, nil
	}

	return m, m.fields[m.focus].dd.Update(msg)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	target := -1
	for i, f := range m.fields {
		if f.dd.Contains(msg.X, msg.Y) {
			target = i
			break
		}
	}

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		if target != m.focus && m.focus >= 0 {
			m.fields[m.focus].dd.Blur()
		}
		m.focus = target
	}

	if target < 0 {
		return nil
	}
	return m.fields[target].dd.Update(msg)
}

// moveFocus passes focus to the neighbouring dropdown, wrapping around
func (m *Model) moveFocus(forward bool) {
	if len(m.fields) == 0 {
		m.focus = -1
		return
	}
	if m.focus < 0 {
		m.focus = 0
	}
	if forward {
		m.focusField((m.focus+1)%len(m.fields), true)
		return
	}
	m.focusField((m.focus-1+len(m.fields))%len(m.fields), false)
}

func (m *Model) focusField(i int, first bool) {
	if m.focus >= 0 && m.focus != i && m.fields[m.focus].dd.Focused() {
		m.fields[m.focus].dd.Blur()
	}
	m.focus = i
	if first {
		m.fields[i].dd.Focus()
	} else {
		m.fields[i].dd.FocusLast()
	}
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			log.Printf("Help pager failed: %v", msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.status = ""
		return m, nil

	default:
		return m, nil
	}
}

// handleEvent reflects bus events in the status line
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ConfigSavedEvent:
		m.status = fmt.Sprintf("Saved %s", e.Path)
	case eventbus.ErrorEvent:
		m.status = fmt.Sprintf("Error: %s", e.Message)
	default:
		return nil
	}
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager() tea.Cmd {
	if m.program == nil {
		return nil
	}
	content, err := m.helpRenderer.Render()
	if err != nil {
		log.Printf("Help rendering failed, showing markdown: %v", err)
	}
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.helpOps.ShowHelpInPager(content)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

// View renders the screen and records where each dropdown was drawn
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	const left, top = 2, 1 // Main padding

	var b strings.Builder
	row := top

	title := m.styles.Title.Render("dropselect")
	b.WriteString(title)
	b.WriteString("\n\n")
	row += lipgloss.Height(title) + 1

	for i, f := range m.fields {
		label := f.name
		if f.multiple {
			label += " (multiple)"
		}
		if i == m.focus {
			b.WriteString(m.styles.LabelActive.Render(label))
		} else {
			b.WriteString(m.styles.Label.Render(label))
		}
		b.WriteString("\n")
		row++

		f.dd.SetOrigin(left, row)
		view := f.dd.View()
		b.WriteString(view)
		b.WriteString("\n\n")
		row += lipgloss.Height(view) + 1
	}

	if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}

	if m.config.UISettings.ShowHelp {
		keys := footerKeys{dropdown: m.ddKeys, app: m.keys}
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render(m.help.View(keys)))
	}

	return m.styles.Main.Render(b.String())
}
