package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
)

// Key bindings shared by the report views.
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keyEsc      = "esc"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keySlash    = "/"
	keyS        = "s"
	keyO        = "o"
	keyR        = "r"
	keyD        = "d"
	keyF        = "f"
	keyG        = "g"
	keyX        = "x"
	keyZ        = "z"
	keyN        = "n"
	keyP        = "p"
	keyRight    = "right"
	keyLeft     = "left"
	keyFirst    = "<"
	keyLast     = ">"
)

// Layout defaults used until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 120
	defaultHeight = 30
	minHeight     = 5
	// chromeHeight is the number of lines around the table: header, filters, summary,
	// pagination bar, help line and spacing.
	chromeHeight  = 9
	borderPadding = 2
	minBoxWidth   = 20
)

// Text input limits.
const (
	filterInputCharLimit = 100
	filterInputWidth     = 40
	dateInputCharLimit   = 10
	dateInputWidth       = 12
	pageInputCharLimit   = 6
)

func newTextInput(placeholder string, limit, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = width
	return ti
}

// tableHeight is the number of table rows that fit in a terminal of the given height.
func tableHeight(height int) int {
	return max(minHeight, height-chromeHeight)
}

// sortArrow is the direction marker shown next to the sort column.
func sortArrow(desc bool) string {
	if desc {
		return "↓"
	}
	return "↑"
}
