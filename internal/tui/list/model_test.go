package listview

import (
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbers(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func renderInt(item int, selected bool) string {
	if selected {
		return ">" + strconv.Itoa(item)
	}
	return " " + strconv.Itoa(item)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestVirtualListModel_Navigation(t *testing.T) {
	m := NewVirtualListModel(numbers(100), 10, 80, renderInt)

	tests := []struct {
		key          string
		wantSelected int
		wantFrom     int
	}{
		{"down", 1, 0},
		{"j", 2, 0},
		{"k", 1, 0},
		{"pgdown", 11, 2},
		{"pgup", 1, 1},
		{"end", 99, 90},
		{"down", 99, 90},
		{"home", 0, 0},
		{"up", 0, 0},
	}

	for _, tt := range tests {
		m.Update(key(tt.key))
		assert.Equal(t, tt.wantSelected, m.Selected(), "after %s", tt.key)
		assert.Equal(t, tt.wantFrom, m.VisibleFrom(), "after %s", tt.key)
	}
}

func TestVirtualListModel_ViewRendersWindowOnly(t *testing.T) {
	m := NewVirtualListModel(numbers(10000), 20, 80, renderInt)
	m.SetSelected(5000)

	lines := strings.Split(m.View(), "\n")
	assert.Len(t, lines, 20+2*defaultBufferSize)
	assert.Contains(t, lines, ">5000")

	viewport := strings.Split(m.ViewportView(), "\n")
	require.Len(t, viewport, 20)
	assert.Equal(t, " 4981", viewport[0])
	assert.Equal(t, ">5000", viewport[19])
}

func TestVirtualListModel_SetItemsClampsSelection(t *testing.T) {
	m := NewVirtualListModel(numbers(50), 10, 80, renderInt)
	m.SetSelected(40)

	m.SetItems(numbers(5))
	assert.Equal(t, 4, m.Selected())
	assert.Equal(t, 0, m.VisibleFrom())
	assert.Equal(t, 5, m.VisibleTo())

	m.SetItems(nil)
	assert.Nil(t, m.SelectedItem())
	assert.Empty(t, m.View())
	assert.Equal(t, 0, m.ItemCount())
}

func TestVirtualListModel_Resize(t *testing.T) {
	m := NewVirtualListModel(numbers(100), 10, 80, renderInt)
	m.SetSelected(50)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 4})
	assert.Equal(t, 4, m.Height())
	assert.Equal(t, 120, m.Width())
	assert.GreaterOrEqual(t, 50, m.VisibleFrom())
	assert.Less(t, 50, m.VisibleTo())

	item := m.SelectedItem()
	require.NotNil(t, item)
	assert.Equal(t, 50, *item)
}
