package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jetsetgo/dispatchdesk/internal/report"
	"github.com/jetsetgo/dispatchdesk/internal/view"
)

// View renders the dispatch report (Bubble Tea interface).
func (m DispatchModel) View() string {
	sections := []string{
		m.renderHeader(),
		m.renderFilters(),
	}
	if line := m.renderInput(); line != "" {
		sections = append(sections, line)
	}
	if m.notice != "" {
		sections = append(sections, WarningStyle.Render(m.notice))
	}

	switch m.display.State {
	case view.StateLoading:
		sections = append(sections, RenderLoading(m.loading))
	case view.StateError:
		sections = append(sections, m.renderError())
	case view.StateEmpty:
		sections = append(sections, InfoStyle.Render("\n "+m.display.Message+"\n"))
	case view.StateTable:
		sections = append(sections,
			m.table.View(),
			SubtleStyle.Render(view.DispatchSummary(m.state)),
			m.renderPagination(),
		)
	}

	sections = append(sections, m.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DispatchModel) renderHeader() string {
	title := HeaderStyle.Render("DISPATCH REPORT")
	if m.display.State == view.StateTable || m.display.State == view.StateEmpty {
		title += "  " + ValueStyle.Render(view.ResultsCount(m.state.TotalCount))
	}
	return title
}

func (m DispatchModel) renderFilters() string {
	fromLabel, toLabel := view.DateLabels(m.state.FilterType)
	parts := []string{
		LabelStyle.Render(fromLabel+": ") + valueOrDash(m.state.DateFrom),
		LabelStyle.Render(toLabel+": ") + valueOrDash(m.state.DateTo),
		LabelStyle.Render("Search: ") + valueOrDash(m.state.Search),
		LabelStyle.Render("Sort: ") + m.state.SortField + " " +
			sortArrow(m.state.SortDirection == report.SortDesc),
		LabelStyle.Render("Per page: ") + fmt.Sprint(m.state.Limit),
	}
	return strings.Join(parts, "  ")
}

func (m DispatchModel) renderInput() string {
	switch m.input {
	case inputSearch:
		return LabelStyle.Render("Search: ") + m.search.View()
	case inputDateFrom, inputDateTo:
		fromLabel, toLabel := view.DateLabels(m.state.FilterType)
		return LabelStyle.Render(fromLabel+": ") + m.dateFrom.View() + "  " +
			LabelStyle.Render(toLabel+": ") + m.dateTo.View() +
			SubtleStyle.Render("  tab: switch  enter: apply  esc: cancel")
	case inputPage:
		return LabelStyle.Render(fmt.Sprintf("Go to page (1-%d): ", m.state.TotalPages())) + m.gotoPage.View()
	default:
		return ""
	}
}

func (m DispatchModel) renderError() string {
	var b strings.Builder
	b.WriteString(CriticalStyle.Render("Error loading dispatch records"))
	b.WriteString("\n")
	b.WriteString(m.display.Message)
	b.WriteString("\n\n")
	b.WriteString(SubtleStyle.Render("Press r to retry"))
	return ErrorBoxStyle.Width(max(minBoxWidth, m.width-borderPadding)).Render(b.String())
}

// renderPagination draws First/Prev, the page-number window, Next/Last and the range text.
func (m DispatchModel) renderPagination() string {
	info := m.state.PageInfo()

	button := func(label string, enabled bool) string {
		if enabled {
			return PageStyle.Render(label)
		}
		return PageDisabledStyle.Render(label)
	}

	parts := []string{
		button("«", info.FirstEnabled()),
		button("‹", info.PrevEnabled()),
	}
	for _, item := range info.Window() {
		switch {
		case item.Ellipsis:
			parts = append(parts, PageDisabledStyle.Render(item.Label()))
		case item.Current:
			parts = append(parts, PageCurrentStyle.Render(item.Label()))
		default:
			parts = append(parts, PageStyle.Render(item.Label()))
		}
	}
	parts = append(parts,
		button("›", info.NextEnabled()),
		button("»", info.LastEnabled()),
		"  "+SubtleStyle.Render(info.RangeText()),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m DispatchModel) renderHelp() string {
	if m.display.IsError() {
		return SubtleStyle.Render("r: retry  x: reset filters  q: quit")
	}
	return SubtleStyle.Render(
		"/: search  d: dates  f: date type  s: sort  o: order  z: page size  " +
			"n/p: page  </>: first/last  g: go to  x: reset  r: reload  tab: outstanding  q: quit")
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
