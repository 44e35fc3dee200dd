package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/noborus/ov/oviewer"

	"dropselect/internal/ui/dropdown"
)

// helpWrap is the word wrap width of the rendered help page
const helpWrap = 80

// HelpRenderer builds the help page from the active key bindings
type HelpRenderer struct {
	dropdownKeys dropdown.KeyMap
	appKeys      appKeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(dropdownKeys dropdown.KeyMap, appKeys appKeyMap) *HelpRenderer {
	return &HelpRenderer{dropdownKeys: dropdownKeys, appKeys: appKeys}
}

// Markdown returns the help page as markdown
func (r *HelpRenderer) Markdown() string {
	var b strings.Builder

	b.WriteString("# dropselect\n\n")
	b.WriteString("Pick values from the configured dropdowns. ")
	b.WriteString("Single dropdowns hold one value, multi dropdowns any number.\n\n")

	b.WriteString("## Dropdown\n\n")
	b.WriteString("| Key | Action |\n|---|---|\n")
	writeBindings(&b,
		r.dropdownKeys.Toggle,
		r.dropdownKeys.Up,
		r.dropdownKeys.Down,
		r.dropdownKeys.Close,
	)
	b.WriteString("\n")
	b.WriteString("Enter on a closed dropdown opens it. Enter on an open dropdown ")
	b.WriteString("selects the highlighted option and closes it. In a multi dropdown ")
	b.WriteString("selecting a chosen option removes it again.\n\n")

	b.WriteString("## Focus\n\n")
	b.WriteString("| Key | Action |\n|---|---|\n")
	writeBindings(&b, r.dropdownKeys.Next, r.dropdownKeys.Prev)
	b.WriteString("\n")
	b.WriteString("Tab visits the dropdown, each selected badge and the clear button. ")
	b.WriteString("Enter on a badge removes it, enter on the clear button empties the selection.\n\n")

	b.WriteString("## Mouse\n\n")
	b.WriteString("- Click a dropdown to open or close it\n")
	b.WriteString("- Click an option to select it\n")
	b.WriteString("- Click `×` on a badge to remove it, or the `×` before the caret to clear\n")
	b.WriteString("- Click outside to close\n\n")

	b.WriteString("## Other\n\n")
	b.WriteString("| Key | Action |\n|---|---|\n")
	writeBindings(&b, r.appKeys.Help, r.appKeys.Quit)

	return b.String()
}

func writeBindings(b *strings.Builder, bindings ...key.Binding) {
	for _, kb := range bindings {
		h := kb.Help()
		fmt.Fprintf(b, "| `%s` | %s |\n", h.Key, h.Desc)
	}
}

// Render renders the help page for the terminal. On renderer failure the
// markdown source is returned.
func (r *HelpRenderer) Render() (string, error) {
	md := r.Markdown()
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(helpWrap),
	)
	if err != nil {
		return md, fmt.Errorf("failed to create help renderer: %w", err)
	}
	out, err := tr.Render(md)
	if err != nil {
		return md, fmt.Errorf("failed to render help: %w", err)
	}
	return out, nil
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Let ov leave the alternate screen before Bubble Tea takes it back
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
