package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jetsetgo/dispatchdesk/internal/report"
	"github.com/jetsetgo/dispatchdesk/internal/view"
)

// View renders the outstanding-orders list (Bubble Tea interface).
func (m OutstandingModel) View() string {
	sections := []string{m.renderHeader()}

	if m.searching || m.search.Value() != "" {
		sections = append(sections, LabelStyle.Render("Search: ")+m.search.View())
	}

	switch m.display.State {
	case view.StateLoading:
		sections = append(sections, RenderLoading(m.loading))
	case view.StateError:
		sections = append(sections, m.renderError())
	case view.StateEmpty:
		sections = append(sections, m.renderColumnHeader(), InfoStyle.Render("\n "+m.display.Message+"\n"))
	case view.StateTable:
		sections = append(sections, m.renderColumnHeader(), m.list.ViewportView())
	}

	if info := view.FilteredInfo(len(m.shown), len(m.all)); info != "" && m.loaded {
		sections = append(sections, SubtleStyle.Render(info))
	}
	sections = append(sections, m.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m OutstandingModel) renderHeader() string {
	title := HeaderStyle.Render("OUTSTANDING ORDERS")
	if m.loaded {
		title += "  " + ValueStyle.Render(view.OutstandingCount(len(m.all)))
	}
	return title
}

func (m OutstandingModel) renderColumnHeader() string {
	titles := make([]string, len(view.OrderColumns))
	for i, c := range view.OrderColumns {
		title := c.Title
		if c.Key == m.sort.Field {
			title += " " + sortArrow(m.sort.Direction == report.SortDesc)
		}
		titles[i] = title
	}
	return TableHeaderStyle.Render(formatCells(titles, view.OrderColumns))
}

func (m OutstandingModel) renderError() string {
	var b strings.Builder
	b.WriteString(CriticalStyle.Render("Error loading outstanding orders"))
	b.WriteString("\n")
	b.WriteString(m.display.Message)
	b.WriteString("\n\n")
	b.WriteString(SubtleStyle.Render("Press r to retry"))
	return ErrorBoxStyle.Width(max(minBoxWidth, m.width-borderPadding)).Render(b.String())
}

func (m OutstandingModel) renderHelp() string {
	if m.searching {
		return SubtleStyle.Render("enter/esc: done")
	}
	return SubtleStyle.Render(
		"/: search  esc: clear  s: sort  o: order  1-6: sort by column  r: refresh  tab: dispatch report  q: quit")
}
