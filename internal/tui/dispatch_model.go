package tui

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jetsetgo/dispatchdesk/internal/logging"
	"github.com/jetsetgo/dispatchdesk/internal/report"
	"github.com/jetsetgo/dispatchdesk/internal/view"
)

// DefaultSearchDebounce is the quiet period after the last keystroke before a search runs.
const DefaultSearchDebounce = 500 * time.Millisecond

// errNoPage is reported when a fetcher returns neither a page nor an error.
var errNoPage = errors.New("empty response from server")

// DispatchFetcher loads one page of the dispatch report.
type DispatchFetcher func(ctx context.Context, params report.Params) (*report.DispatchPage, error)

// dispatchLoadedMsg carries the result of a dispatch fetch.
type dispatchLoadedMsg struct {
	requestID uint64
	page      *report.DispatchPage
	err       error
}

// searchDebounceMsg fires once the search box has been idle for the debounce period.
type searchDebounceMsg struct {
	debounceID uint64
	query      string
}

// inputMode is the text field currently receiving keystrokes.
type inputMode int

const (
	inputNone inputMode = iota
	inputSearch
	inputDateFrom
	inputDateTo
	inputPage
)

// DispatchOptions configures a DispatchModel.
type DispatchOptions struct {
	State    report.QueryState
	Debounce time.Duration
}

// DispatchModel is the interactive dispatch report.
//
// Every fetch gets a new request id and cancels the request before it; responses
// carrying an older id are dropped.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type DispatchModel struct {
	ctx   context.Context
	fetch DispatchFetcher

	state   report.QueryState
	display view.Display
	notice  string

	requestID uint64
	cancel    context.CancelFunc
	// initCtx is the context of the request issued by Init; cancel releases it.
	initCtx context.Context

	debounce   time.Duration
	debounceID uint64

	input    inputMode
	search   textinput.Model
	dateFrom textinput.Model
	dateTo   textinput.Model
	gotoPage textinput.Model

	table   table.Model
	loading *LoadingState

	width  int
	height int
}

// NewDispatchModel creates the dispatch report view. Call Init to issue the first fetch.
func NewDispatchModel(ctx context.Context, fetch DispatchFetcher, opts DispatchOptions) DispatchModel {
	state := opts.State
	if state.Limit <= 0 {
		state = report.NewQueryState()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultSearchDebounce
	}

	m := DispatchModel{
		ctx:      ctx,
		fetch:    fetch,
		state:    state,
		display:  view.Loading(),
		debounce: debounce,
		search:   newTextInput("invoice, order, customer or manifest", filterInputCharLimit, filterInputWidth),
		dateFrom: newTextInput(report.DateLayout, dateInputCharLimit, dateInputWidth),
		dateTo:   newTextInput(report.DateLayout, dateInputCharLimit, dateInputWidth),
		gotoPage: newTextInput("page", pageInputCharLimit, pageInputCharLimit+2),
		loading:  NewLoadingState("Loading dispatch records..."),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.search.SetValue(state.Search)
	m.dateFrom.SetValue(state.DateFrom)
	m.dateTo.SetValue(state.DateTo)
	// The request issued by Init.
	m.requestID = 1
	m.initCtx, m.cancel = context.WithCancel(ctx)
	m.table = m.buildTable()
	return m
}

// Init issues the first fetch (Bubble Tea interface).
func (m DispatchModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.fetchCmd(m.initCtx, m.requestID))
}

// State returns the current query state.
func (m DispatchModel) State() report.QueryState { return m.state }

// Display returns the current display state.
func (m DispatchModel) Display() view.Display { return m.display }

// Editing reports whether a text field has focus.
func (m DispatchModel) Editing() bool { return m.input != inputNone }

// Update handles messages (Bubble Tea interface).
func (m DispatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(tableHeight(msg.Height))
		return m, nil
	case dispatchLoadedMsg:
		return m.handleLoaded(msg)
	case searchDebounceMsg:
		return m.handleSearchDebounce(msg)
	case spinner.TickMsg:
		if m.display.IsLoading() {
			return m, m.loading.Update(msg)
		}
		return m, nil
	case tea.KeyMsg:
		if m.input != inputNone {
			return m.handleInputKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m DispatchModel) handleLoaded(msg dispatchLoadedMsg) (tea.Model, tea.Cmd) {
	logger := logging.FromContext(m.ctx)
	if msg.requestID != m.requestID {
		logger.Debug().
			Str("component", "tui").
			Str("operation", "dispatch_loaded").
			Uint64("request_id", msg.requestID).
			Uint64("current_request_id", m.requestID).
			Msg("discarding stale response")
		return m, nil
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	if msg.err != nil {
		logger.Warn().
			Str("component", "tui").
			Str("operation", "dispatch_loaded").
			Err(msg.err).
			Msg("dispatch fetch failed")
		m.display = view.Failed(msg.err, view.DispatchLoadFailed)
		return m, nil
	}

	m.state = m.state.WithPage(msg.page.Rows, msg.page.Total)
	if m.state.OutOfRange() {
		// The total shrank under us; show the last page that still exists.
		m.state = m.state.LastPage()
		return m, m.startFetch()
	}

	m.display = view.ForRows(len(m.state.Rows), view.DispatchEmpty)
	m.table = m.buildTable()
	return m, nil
}

func (m DispatchModel) handleSearchDebounce(msg searchDebounceMsg) (tea.Model, tea.Cmd) {
	if msg.debounceID != m.debounceID {
		return m, nil
	}
	return m.apply(m.state.WithSearch(msg.query))
}

//nolint:cyclop,gocyclo // Key dispatch is a flat switch over the bindings.
func (m DispatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit, keyCtrlC:
		m.stop()
		return m, tea.Quit
	case keyR:
		m.notice = ""
		return m, m.startFetch()
	case keySlash:
		return m.focus(inputSearch)
	case keyD:
		return m.focus(inputDateFrom)
	case keyG:
		if m.state.TotalPages() > 1 {
			m.gotoPage.SetValue("")
			return m.focus(inputPage)
		}
		return m, nil
	case keyEsc:
		if m.state.Search != "" {
			m.search.SetValue("")
			m.debounceID++
			return m.apply(m.state.WithSearch(""))
		}
		return m, nil
	case keyF:
		next := report.FilterManifest
		if m.state.FilterType == report.FilterManifest {
			next = report.FilterDispatch
		}
		return m.apply(m.state.WithFilterType(next))
	case keyS:
		return m.apply(m.state.WithSort(nextField(report.DispatchSortFields, m.state.SortField)))
	case keyO:
		return m.apply(m.state.WithSort(m.state.SortField))
	case keyZ:
		return m.apply(m.state.WithPageSize(nextPageSize(m.state.Limit)))
	case keyX:
		m.search.SetValue("")
		m.dateFrom.SetValue("")
		m.dateTo.SetValue("")
		m.debounceID++
		m.notice = ""
		return m.apply(m.state.Reset())
	case keyN, keyRight:
		if m.state.HasNext() {
			return m.apply(m.state.NextPage())
		}
		return m, nil
	case keyP, keyLeft:
		if m.state.HasPrev() {
			return m.apply(m.state.PrevPage())
		}
		return m, nil
	case keyFirst:
		return m.apply(m.state.FirstPage())
	case keyLast:
		return m.apply(m.state.LastPage())
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
}

func (m DispatchModel) focus(mode inputMode) (tea.Model, tea.Cmd) {
	m.blurAll()
	m.input = mode
	if ti := m.activeInput(); ti != nil {
		ti.Focus()
	}
	m.table.Blur()
	return m, textinput.Blink
}

func (m DispatchModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyCtrlC:
		m.stop()
		return m, tea.Quit
	case keyEsc:
		if m.input == inputDateFrom || m.input == inputDateTo {
			m.dateFrom.SetValue(m.state.DateFrom)
			m.dateTo.SetValue(m.state.DateTo)
		}
		m.endInput()
		return m, nil
	case keyTab, keyShiftTab:
		switch m.input {
		case inputDateFrom:
			return m.focus(inputDateTo)
		case inputDateTo:
			return m.focus(inputDateFrom)
		default:
			return m, nil
		}
	case keyEnter:
		return m.submitInput()
	}

	ti := m.activeInput()
	if ti == nil {
		return m, nil
	}
	before := ti.Value()
	var cmd tea.Cmd
	*ti, cmd = ti.Update(msg)

	if m.input == inputSearch && ti.Value() != before {
		m.debounceID++
		id, query := m.debounceID, ti.Value()
		return m, tea.Batch(cmd, tea.Tick(m.debounce, func(time.Time) tea.Msg {
			return searchDebounceMsg{debounceID: id, query: query}
		}))
	}
	return m, cmd
}

func (m DispatchModel) submitInput() (tea.Model, tea.Cmd) {
	mode := m.input
	m.endInput()

	switch mode {
	case inputSearch:
		m.debounceID++
		return m.apply(m.state.WithSearch(m.search.Value()))
	case inputDateFrom, inputDateTo:
		from := strings.TrimSpace(m.dateFrom.Value())
		to := strings.TrimSpace(m.dateTo.Value())
		next := m.state.WithDateRange(from, to)
		m.notice = invalidDateNotice(m.ctx, from, to)
		m.dateFrom.SetValue(next.DateFrom)
		m.dateTo.SetValue(next.DateTo)
		return m.apply(next)
	case inputPage:
		page, err := strconv.Atoi(strings.TrimSpace(m.gotoPage.Value()))
		if err != nil {
			return m, nil
		}
		return m.apply(m.state.GoToPage(page - 1))
	default:
		return m, nil
	}
}

// invalidDateNotice logs and describes dates that were dropped from the filter.
func invalidDateNotice(ctx context.Context, values ...string) string {
	var bad []string
	for _, v := range values {
		if v != "" && !report.ValidDate(v) {
			bad = append(bad, v)
		}
	}
	if len(bad) == 0 {
		return ""
	}
	logging.FromContext(ctx).Warn().
		Str("component", "tui").
		Str("operation", "date_filter").
		Strs("values", bad).
		Msg("ignoring invalid date")
	return "Ignored invalid date " + strings.Join(bad, ", ") + " (expected " + report.DateLayout + ")"
}

func (m *DispatchModel) activeInput() *textinput.Model {
	switch m.input {
	case inputSearch:
		return &m.search
	case inputDateFrom:
		return &m.dateFrom
	case inputDateTo:
		return &m.dateTo
	case inputPage:
		return &m.gotoPage
	default:
		return nil
	}
}

func (m *DispatchModel) blurAll() {
	m.search.Blur()
	m.dateFrom.Blur()
	m.dateTo.Blur()
	m.gotoPage.Blur()
}

func (m *DispatchModel) endInput() {
	m.blurAll()
	m.input = inputNone
	m.table.Focus()
}

// apply moves to next and fetches when the request it describes differs from the
// current one.
func (m DispatchModel) apply(next report.QueryState) (tea.Model, tea.Cmd) {
	if next.SameQuery(m.state) {
		return m, nil
	}
	m.state = next
	return m, m.startFetch()
}

// startFetch cancels any in-flight request and issues a new one.
func (m *DispatchModel) startFetch() tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	m.requestID++
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.display = view.Loading()
	return tea.Batch(m.loading.Init(), m.fetchCmd(ctx, m.requestID))
}

func (m DispatchModel) fetchCmd(ctx context.Context, requestID uint64) tea.Cmd {
	fetch := m.fetch
	params := report.BuildQuery(m.state)
	return func() tea.Msg {
		page, err := fetch(ctx, params)
		if err == nil && page == nil {
			err = errNoPage
		}
		return dispatchLoadedMsg{requestID: requestID, page: page, err: err}
	}
}

func (m *DispatchModel) stop() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m DispatchModel) buildTable() table.Model {
	columns := make([]table.Column, len(view.DispatchColumns))
	for i, c := range view.DispatchColumns {
		title := c.Title
		if c.Key == m.state.SortField {
			title += " " + sortArrow(m.state.SortDirection == report.SortDesc)
		}
		columns[i] = table.Column{Title: title, Width: c.Width}
	}

	rows := make([]table.Row, len(m.state.Rows))
	for i, r := range view.DispatchRowViews(m.state.Rows) {
		rows[i] = r.Cells()
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(m.input == inputNone),
		table.WithHeight(tableHeight(m.height)),
		table.WithWidth(m.width),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	return t
}

// nextField returns the field after current in fields, wrapping around.
func nextField(fields []string, current string) string {
	i := slices.Index(fields, current)
	return fields[(i+1)%len(fields)]
}

// nextPageSize returns the page size after limit in report.PageSizes, wrapping around.
func nextPageSize(limit int) int {
	i := slices.Index(report.PageSizes, limit)
	return report.PageSizes[(i+1)%len(report.PageSizes)]
}
