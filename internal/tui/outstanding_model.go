package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jetsetgo/dispatchdesk/internal/logging"
	"github.com/jetsetgo/dispatchdesk/internal/report"
	listview "github.com/jetsetgo/dispatchdesk/internal/tui/list"
	"github.com/jetsetgo/dispatchdesk/internal/view"
)

// OutstandingFetcher loads every outstanding order.
type OutstandingFetcher func(ctx context.Context) (*report.OutstandingList, error)

// outstandingLoadedMsg carries the result of an outstanding-orders fetch.
type outstandingLoadedMsg struct {
	requestID uint64
	list      *report.OutstandingList
	err       error
}

// outstandingChromeHeight is the number of lines around the order list.
const outstandingChromeHeight = 7

// OutstandingModel lists invoices not yet on a manifest. Search and sort run locally
// over the full set.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type OutstandingModel struct {
	ctx   context.Context
	fetch OutstandingFetcher

	all   []report.OutstandingOrder
	shown []report.OutstandingOrder
	sort  report.OrderSort

	display view.Display
	loaded  bool
	started bool

	requestID uint64
	cancel    context.CancelFunc
	// initCtx is the context of the request issued by Init; cancel releases it.
	initCtx context.Context

	searching bool
	search    textinput.Model

	list    *listview.VirtualListModel[view.OrderRowView]
	loading *LoadingState

	width  int
	height int
}

// NewOutstandingModel creates the outstanding-orders view. Nothing is fetched until
// Init or Refresh runs.
func NewOutstandingModel(ctx context.Context, fetch OutstandingFetcher) OutstandingModel {
	m := OutstandingModel{
		ctx:     ctx,
		fetch:   fetch,
		sort:    report.DefaultOrderSort(),
		display: view.Loading(),
		search:  newTextInput("invoice, order or customer", filterInputCharLimit, filterInputWidth),
		loading: NewLoadingState("Loading outstanding orders..."),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.list = listview.NewVirtualListModel(nil, m.listHeight(), m.width, renderOrderRow)
	// The request issued by Init.
	m.requestID = 1
	m.initCtx, m.cancel = context.WithCancel(ctx)
	return m
}

// Init issues the first fetch (Bubble Tea interface).
func (m OutstandingModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.fetchCmd(m.initCtx, m.requestID))
}

// Started reports whether a fetch has been issued.
func (m OutstandingModel) Started() bool { return m.started }

// Display returns the current display state.
func (m OutstandingModel) Display() view.Display { return m.display }

// Shown returns the orders after search and sort.
func (m OutstandingModel) Shown() []report.OutstandingOrder { return m.shown }

// Sort returns the active sort.
func (m OutstandingModel) Sort() report.OrderSort { return m.sort }

// Editing reports whether the search box has focus.
func (m OutstandingModel) Editing() bool { return m.searching }

// Refresh reloads the orders, superseding any request in flight.
func (m OutstandingModel) Refresh() (OutstandingModel, tea.Cmd) {
	cmd := m.startFetch()
	return m, cmd
}

// Update handles messages (Bubble Tea interface).
func (m OutstandingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.listHeight(), msg.Width)
		return m, nil
	case outstandingLoadedMsg:
		return m.handleLoaded(msg)
	case spinner.TickMsg:
		if m.display.IsLoading() {
			return m, m.loading.Update(msg)
		}
		return m, nil
	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m OutstandingModel) handleLoaded(msg outstandingLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.requestID != m.requestID {
		return m, nil
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	if msg.err != nil {
		logging.FromContext(m.ctx).Warn().
			Str("component", "tui").
			Str("operation", "outstanding_loaded").
			Err(msg.err).
			Msg("outstanding fetch failed")
		m.display = view.Failed(msg.err, view.OutstandingLoadFailed)
		m.loaded = false
		return m, nil
	}

	m.all = msg.list.Orders
	m.loaded = true
	m.refilter()
	return m, nil
}

func (m OutstandingModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k := msg.String(); k {
	case keyQuit, keyCtrlC:
		m.stop()
		return m, tea.Quit
	case keyR:
		return m.Refresh()
	case keySlash:
		if !m.loaded {
			return m, nil
		}
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case keyEsc:
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.refilter()
		}
		return m, nil
	case keyS:
		m.sort = m.sort.Select(nextField(sortableOrderKeys(), m.sort.Field))
		m.refilter()
		return m, nil
	case keyO:
		m.sort = m.sort.Select(m.sort.Field)
		m.refilter()
		return m, nil
	default:
		if col, ok := columnForDigit(k); ok {
			m.sort = m.sort.Select(col)
			m.refilter()
			return m, nil
		}
		m.list.Update(msg)
		return m, nil
	}
}

func (m OutstandingModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyCtrlC:
		m.stop()
		return m, tea.Quit
	case keyEnter, keyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.refilter()
	}
	return m, cmd
}

// refilter recomputes the shown orders from the full set. It does nothing until a
// fetch has succeeded.
func (m *OutstandingModel) refilter() {
	if !m.loaded {
		return
	}
	m.shown = m.sort.Apply(m.all, m.search.Value())
	m.display = view.OrdersDisplay(len(m.shown), len(m.all))
	m.list.SetItems(view.OrderRowViews(m.shown))
}

func (m *OutstandingModel) startFetch() tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	m.requestID++
	m.started = true
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.display = view.Loading()
	m.loaded = false
	return tea.Batch(m.loading.Init(), m.fetchCmd(ctx, m.requestID))
}

func (m OutstandingModel) fetchCmd(ctx context.Context, requestID uint64) tea.Cmd {
	fetch := m.fetch
	return func() tea.Msg {
		list, err := fetch(ctx)
		if err == nil && list == nil {
			err = errNoPage
		}
		return outstandingLoadedMsg{requestID: requestID, list: list, err: err}
	}
}

func (m *OutstandingModel) stop() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m OutstandingModel) listHeight() int {
	return max(minHeight, m.height-outstandingChromeHeight)
}

// sortableOrderKeys lists the keys of the sortable order columns.
func sortableOrderKeys() []string {
	keys := make([]string, 0, len(view.OrderColumns))
	for _, c := range view.OrderColumns {
		if c.Sortable {
			keys = append(keys, c.Key)
		}
	}
	return keys
}

// columnForDigit maps "1".."9" to the sort key of that column.
func columnForDigit(k string) (string, bool) {
	if len(k) != 1 || k[0] < '1' || k[0] > '9' {
		return "", false
	}
	i := int(k[0] - '1')
	if i >= len(view.OrderColumns) || !view.OrderColumns[i].Sortable {
		return "", false
	}
	return view.OrderColumns[i].Key, true
}

func renderOrderRow(row view.OrderRowView, selected bool) string {
	line := formatCells(row.Cells(), view.OrderColumns)
	if selected {
		return TableSelectedStyle.Render(line)
	}
	return line
}

// formatCells pads or truncates each cell to its column width.
func formatCells(cells []string, columns []view.Column) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		w := columns[i].Width
		if lipgloss.Width(cell) > w {
			cell = truncate(cell, w)
		}
		parts[i] = fmt.Sprintf("%-*s", w, cell)
	}
	return strings.Join(parts, " ")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
