package dropdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"dropselect/internal/ui/views"
)

const (
	minWidth    = 16 // one truncated badge and +N fit the value region
	boxHeight   = 3 // border, content row, border
	contentX    = 2 // border and padding
	tailWidth   = 6 // " × │ ▾"
	ellipsis    = "…"
	overflowFmt = "+%d"
)

// Height returns the number of rows the next View will occupy
func (m *Model) Height() int {
	if m.ctl.IsOpen() {
		return boxHeight + len(m.ctl.Options())
	}
	return boxHeight
}

func (m *Model) totalWidth() int {
	return max(m.width, minWidth)
}

// View renders the dropdown and rebuilds its mouse hit map
func (m *Model) View() string {
	m.hits.Clear()

	width := m.totalWidth()
	inner := width - 4
	valueWidth := inner - tailWidth

	m.hits.AddRect(regionContainer, 0, 0, width, boxHeight, nil)

	value := m.renderValue(valueWidth)
	clearX := contentX + valueWidth + 1
	m.hits.AddRect(regionClear, clearX, 1, 1, 1, nil)

	clearClasses := []views.Class{views.ClassClearBtn}
	if m.focused && m.focus.kind == focusClear {
		clearClasses = append(clearClasses, views.ClassFocus)
	}
	caret := "▾"
	if m.ctl.IsOpen() {
		caret = "▴"
	}
	content := value + " " +
		m.theme.Compose(clearClasses...).Render("×") + " " +
		m.theme.Style(views.ClassDivider).Render("│") + " " +
		m.theme.Style(views.ClassCaret).Render(caret)

	boxClass := views.ClassContainer
	if m.focused {
		boxClass = views.ClassContainerFocused
	}
	box := m.theme.Style(boxClass).Width(width - 2).Render(content)

	if !m.ctl.IsOpen() {
		return box
	}

	rows := []string{box}
	highlighted := m.ctl.Highlighted()
	for i, opt := range m.ctl.Options() {
		classes := []views.Class{views.ClassOptions, views.ClassOption}
		selected := m.ctl.IsOptionSelected(opt)
		if selected {
			classes = append(classes, views.ClassSelected)
		}
		if i == highlighted {
			classes = append(classes, views.ClassHighlighted)
		}
		label := ansi.Truncate(m.marker(selected)+opt.Label, width, ellipsis)
		rows = append(rows, m.theme.Compose(classes...).Width(width).Render(label))
		m.hits.AddRect(regionOption, 0, boxHeight+i, width, 1, i)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) marker(selected bool) string {
	switch {
	case m.ctl.Multiple() && selected:
		return "[x] "
	case m.ctl.Multiple():
		return "[ ] "
	case selected:
		return "✓ "
	default:
		return "  "
	}
}

// renderValue renders the value region padded to exactly width cells
func (m *Model) renderValue(width int) string {
	selected := m.ctl.Selected()

	var out string
	used := 0
	switch {
	case len(selected) == 0:
		text := ansi.Truncate(m.placeholder, width, ellipsis)
		out = m.theme.Style(views.ClassPlaceholder).Render(text)
		used = ansi.StringWidth(text)
	case !m.ctl.Multiple():
		text := ansi.Truncate(selected[0].Label, width, ellipsis)
		out = m.theme.Style(views.ClassValue).Render(text)
		used = ansi.StringWidth(text)
	default:
		out, used = m.renderBadges(width)
	}

	if used > width {
		out = ansi.Truncate(out, width, "")
		used = width
	}
	if used < width {
		out += strings.Repeat(" ", width-used)
	}
	return out
}

// renderBadges lays out one badge per selected option. Badges that do not fit
// are summarized as +N.
func (m *Model) renderBadges(width int) (string, int) {
	selected := m.ctl.Selected()

	var b strings.Builder
	used := 0
	for i, opt := range selected {
		remaining := len(selected) - i - 1
		reserve := 0
		if remaining > 0 {
			reserve = len(fmt.Sprintf(overflowFmt, remaining))
		}

		label := " " + opt.Label + " "
		badgeWidth := ansi.StringWidth(label) + 2 // "× "
		if used+badgeWidth+reserve > width {
			if i == 0 {
				// Always show at least one badge, truncated to fit
				label = ansi.Truncate(label, max(width-2-reserve, 1), ellipsis)
				badgeWidth = ansi.StringWidth(label) + 2
			} else {
				more := fmt.Sprintf(overflowFmt, len(selected)-i)
				b.WriteString(m.theme.Style(views.ClassValue).Render(more))
				return b.String(), used + len(more)
			}
		}

		badgeClasses := []views.Class{views.ClassOptionBadge}
		if m.focused && m.focus.kind == focusBadge && m.focus.index == i {
			badgeClasses = append(badgeClasses, views.ClassFocus)
		}
		b.WriteString(m.theme.Compose(badgeClasses...).Render(label))
		b.WriteString(m.theme.Style(views.ClassRemoveBtn).Render("×"))
		b.WriteString(" ")

		m.hits.AddRect(regionBadge, contentX+used, 1, min(badgeWidth-1, width-used), 1, i)
		used += badgeWidth
	}
	return b.String(), used
}
