package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Tab is one of the report views of the application.
type Tab int

const (
	// TabDispatch is the paginated dispatch report.
	TabDispatch Tab = iota
	// TabOutstanding is the outstanding-orders list.
	TabOutstanding
)

func (t Tab) String() string {
	switch t {
	case TabDispatch:
		return "Dispatch Report"
	case TabOutstanding:
		return "Outstanding Orders"
	default:
		return "Unknown"
	}
}

// ParseTab parses a view name as used by the --view flag.
func ParseTab(name string) (Tab, error) {
	switch name {
	case "", "dispatch", "dispatched":
		return TabDispatch, nil
	case "outstanding":
		return TabOutstanding, nil
	default:
		return TabDispatch, fmt.Errorf("unknown view %q (valid: dispatch, outstanding)", name)
	}
}

// AppModel hosts the dispatch report and the outstanding orders behind tabs. The
// outstanding list is fetched the first time its tab is shown.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type AppModel struct {
	tab         Tab
	dispatch    DispatchModel
	outstanding OutstandingModel
	initCmd     tea.Cmd
	quitting    bool
}

// NewAppModel creates the application showing the given tab first.
func NewAppModel(dispatch DispatchModel, outstanding OutstandingModel, tab Tab) AppModel {
	m := AppModel{tab: tab, dispatch: dispatch, outstanding: outstanding}
	if tab == TabOutstanding {
		m.outstanding, m.initCmd = m.outstanding.Refresh()
	}
	return m
}

// Tab returns the visible tab.
func (m AppModel) Tab() Tab { return m.tab }

// Init fetches the dispatch report and, when it is visible, the outstanding list.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.dispatch.Init(), m.initCmd)
}

// Update routes messages to the views (Bubble Tea interface).
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		var c1, c2 tea.Cmd
		m.dispatch, c1 = updateDispatch(m.dispatch, msg)
		m.outstanding, c2 = updateOutstanding(m.outstanding, msg)
		return m, tea.Batch(c1, c2)
	case dispatchLoadedMsg, searchDebounceMsg:
		var cmd tea.Cmd
		m.dispatch, cmd = updateDispatch(m.dispatch, msg)
		return m, cmd
	case outstandingLoadedMsg:
		var cmd tea.Cmd
		m.outstanding, cmd = updateOutstanding(m.outstanding, msg)
		return m, cmd
	case spinner.TickMsg:
		// Spinners ignore ticks addressed to other spinners.
		var c1, c2 tea.Cmd
		m.dispatch, c1 = updateDispatch(m.dispatch, msg)
		m.outstanding, c2 = updateOutstanding(m.outstanding, msg)
		return m, tea.Batch(c1, c2)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.updateActive(msg)
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	editing := m.dispatch.Editing()
	if m.tab == TabOutstanding {
		editing = m.outstanding.Editing()
	}

	switch msg.String() {
	case keyCtrlC:
		return m.quit()
	case keyQuit:
		if !editing {
			return m.quit()
		}
	case keyTab, keyShiftTab:
		if !editing {
			return m.switchTab()
		}
	}
	return m.updateActive(msg)
}

func (m AppModel) switchTab() (tea.Model, tea.Cmd) {
	if m.tab == TabDispatch {
		m.tab = TabOutstanding
		if !m.outstanding.Started() {
			var cmd tea.Cmd
			m.outstanding, cmd = m.outstanding.Refresh()
			return m, cmd
		}
		return m, nil
	}
	m.tab = TabDispatch
	return m, nil
}

func (m AppModel) quit() (tea.Model, tea.Cmd) {
	m.dispatch.stop()
	m.outstanding.stop()
	m.quitting = true
	return m, tea.Quit
}

func (m AppModel) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.tab == TabOutstanding {
		m.outstanding, cmd = updateOutstanding(m.outstanding, msg)
	} else {
		m.dispatch, cmd = updateDispatch(m.dispatch, msg)
	}
	return m, cmd
}

// View renders the tab bar and the visible view (Bubble Tea interface).
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	tabs := make([]string, 0, 2) //nolint:mnd // Two tabs.
	for _, t := range []Tab{TabDispatch, TabOutstanding} {
		if t == m.tab {
			tabs = append(tabs, TabActiveStyle.Render(t.String()))
		} else {
			tabs = append(tabs, TabInactiveStyle.Render(t.String()))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	body := m.dispatch.View()
	if m.tab == TabOutstanding {
		body = m.outstanding.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, bar, body)
}

func updateDispatch(d DispatchModel, msg tea.Msg) (DispatchModel, tea.Cmd) {
	updated, cmd := d.Update(msg)
	return updated.(DispatchModel), cmd //nolint:forcetypeassert // Update always returns DispatchModel.
}

func updateOutstanding(o OutstandingModel, msg tea.Msg) (OutstandingModel, tea.Cmd) {
	updated, cmd := o.Update(msg)
	return updated.(OutstandingModel), cmd //nolint:forcetypeassert // Update always returns OutstandingModel.
}

// Run starts the interactive application and blocks until the user quits.
func Run(ctx context.Context, app AppModel) error {
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}
