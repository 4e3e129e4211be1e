package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultBufferSize is the number of rows rendered beyond each edge of the viewport.
const defaultBufferSize = 5

// RenderFunc renders one item. selected is true for the highlighted item.
type RenderFunc[T any] func(item T, selected bool) string

// VirtualListModel is a scrollable list that renders only the rows near the viewport.
// The item slice can be swapped with SetItems without losing the selection when the
// selected index still exists.
type VirtualListModel[T any] struct {
	items      []T
	renderFunc RenderFunc[T]

	selected int
	// top is the index of the first row in the viewport.
	top int

	height int
	width  int

	bufferSize int
}

// NewVirtualListModel creates a list showing height rows.
func NewVirtualListModel[T any](items []T, height, width int, renderFunc RenderFunc[T]) *VirtualListModel[T] {
	m := &VirtualListModel[T]{
		items:      items,
		renderFunc: renderFunc,
		height:     max(1, height),
		width:      width,
		bufferSize: defaultBufferSize,
	}
	m.scrollToSelected()
	return m
}

// Init implements tea.Model.
func (m *VirtualListModel[T]) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys and resizes.
func (m *VirtualListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg.String())
	case tea.WindowSizeMsg:
		m.SetSize(msg.Height, msg.Width)
	}
	return m, nil
}

// handleKey moves the selection. Unknown keys are ignored.
func (m *VirtualListModel[T]) handleKey(key string) {
	if len(m.items) == 0 {
		return
	}
	switch key {
	case "up", "k":
		m.SetSelected(m.selected - 1)
	case "down", "j":
		m.SetSelected(m.selected + 1)
	case "pgup":
		m.SetSelected(m.selected - m.height)
	case "pgdown":
		m.SetSelected(m.selected + m.height)
	case "home":
		m.SetSelected(0)
	case "end":
		m.SetSelected(len(m.items) - 1)
	}
}

// scrollToSelected moves the viewport the minimum distance needed to show the selection.
func (m *VirtualListModel[T]) scrollToSelected() {
	if len(m.items) == 0 {
		m.top = 0
		return
	}
	if m.selected < m.top {
		m.top = m.selected
	}
	if m.selected >= m.top+m.height {
		m.top = m.selected - m.height + 1
	}
	m.top = max(0, min(m.top, len(m.items)-m.height))
}

// View renders the viewport plus buffer rows on either side.
func (m *VirtualListModel[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}

	from := max(0, m.top-m.bufferSize)
	to := min(len(m.items), m.VisibleTo()+m.bufferSize)

	lines := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		lines = append(lines, m.renderFunc(m.items[i], i == m.selected))
	}
	return strings.Join(lines, "\n")
}

// ViewportView renders only the rows inside the viewport.
func (m *VirtualListModel[T]) ViewportView() string {
	if len(m.items) == 0 {
		return ""
	}
	lines := make([]string, 0, m.height)
	for i := m.top; i < m.VisibleTo(); i++ {
		lines = append(lines, m.renderFunc(m.items[i], i == m.selected))
	}
	return strings.Join(lines, "\n")
}

// SetItems replaces the items, keeping the selection within bounds.
func (m *VirtualListModel[T]) SetItems(items []T) {
	m.items = items
	m.SetSelected(m.selected)
}

// SetSize changes the viewport dimensions.
func (m *VirtualListModel[T]) SetSize(height, width int) {
	m.height = max(1, height)
	m.width = width
	m.scrollToSelected()
}

// Items returns the current items.
func (m *VirtualListModel[T]) Items() []T {
	return m.items
}

// ItemCount returns the number of items.
func (m *VirtualListModel[T]) ItemCount() int {
	return len(m.items)
}

// Selected returns the selected index.
func (m *VirtualListModel[T]) Selected() int {
	return m.selected
}

// SetSelected selects index, clamped to the item range.
func (m *VirtualListModel[T]) SetSelected(index int) {
	if len(m.items) == 0 {
		m.selected = 0
		m.top = 0
		return
	}
	m.selected = max(0, min(index, len(m.items)-1))
	m.scrollToSelected()
}

// VisibleFrom returns the first index inside the viewport.
func (m *VirtualListModel[T]) VisibleFrom() int {
	return m.top
}

// VisibleTo returns the index after the last one inside the viewport.
func (m *VirtualListModel[T]) VisibleTo() int {
	return min(len(m.items), m.top+m.height)
}

// Height returns the viewport height.
func (m *VirtualListModel[T]) Height() int {
	return m.height
}

// Width returns the viewport width.
func (m *VirtualListModel[T]) Width() int {
	return m.width
}

// SelectedItem returns the selected item, or nil when the list is empty.
func (m *VirtualListModel[T]) SelectedItem() *T {
	if len(m.items) == 0 {
		return nil
	}
	return &m.items[m.selected]
}
