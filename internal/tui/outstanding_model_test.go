package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetsetgo/dispatchdesk/internal/report"
	"github.com/jetsetgo/dispatchdesk/internal/view"
)

func sampleOrders() []report.OutstandingOrder {
	return []report.OutstandingOrder{
		{InvoiceNumber: "INV001", OrderNumber: "ORD9", CustomerName: "Acme Stores", InvoiceDate: "2024-03-01T10:00:00", TotalValue: "100.00", Area: "North"},
		{InvoiceNumber: "INV002", OrderNumber: "ORD8", CustomerName: "Baker Bros", InvoiceDate: "2024-03-03T09:00:00", TotalValue: "250.50", Area: "South"},
		{InvoiceNumber: "INV003", OrderNumber: "ORD7", CustomerName: "acme wholesale", InvoiceDate: "", TotalValue: "", Area: "East"},
	}
}

func staticOutstanding(orders []report.OutstandingOrder, err error) OutstandingFetcher {
	return func(context.Context) (*report.OutstandingList, error) {
		if err != nil {
			return nil, err
		}
		return &report.OutstandingList{Orders: orders, Count: len(orders)}, nil
	}
}

// feedOutstanding runs cmd and delivers its fetch results to the model.
func feedOutstanding(m OutstandingModel, cmd tea.Cmd) OutstandingModel {
	for _, msg := range runCmd(cmd) {
		if loaded, ok := msg.(outstandingLoadedMsg); ok {
			updated, _ := m.Update(loaded)
			m = updated.(OutstandingModel)
		}
	}
	return m
}

func pressOutstanding(m OutstandingModel, keys ...string) OutstandingModel {
	for _, k := range keys {
		updated, _ := m.Update(keyMsg(k))
		m = updated.(OutstandingModel)
	}
	return m
}

func typeOutstanding(m OutstandingModel, text string) OutstandingModel {
	for _, r := range text {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(OutstandingModel)
	}
	return m
}

func invoiceNumbers(orders []report.OutstandingOrder) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = string(o.InvoiceNumber)
	}
	return out
}

func loadedOutstanding(t *testing.T, orders []report.OutstandingOrder) OutstandingModel {
	t.Helper()
	m := NewOutstandingModel(context.Background(), staticOutstanding(orders, nil))
	m = feedOutstanding(m, m.Init())
	require.True(t, m.loaded)
	return m
}

func TestNewOutstandingModel(t *testing.T) {
	m := NewOutstandingModel(context.Background(), staticOutstanding(nil, nil))

	assert.False(t, m.Started())
	assert.Equal(t, view.StateLoading, m.Display().State)
	assert.Equal(t, report.DefaultOrderSort(), m.Sort())
	assert.Empty(t, m.Shown())
}

func TestOutstandingModel_Load(t *testing.T) {
	m := loadedOutstanding(t, sampleOrders())

	assert.Equal(t, view.StateTable, m.Display().State)
	// Newest first; the undated order sorts as the epoch.
	assert.Equal(t, []string{"INV002", "INV001", "INV003"}, invoiceNumbers(m.Shown()))
	assert.Equal(t, 3, m.list.ItemCount())

	out := m.View()
	assert.Contains(t, out, "3 outstanding invoices")
	assert.Contains(t, out, "Invoice Date ↓")
	assert.Contains(t, out, "Mar 3, 2024")
	assert.Contains(t, out, view.NotAvailable)
}

func TestOutstandingModel_Empty(t *testing.T) {
	m := loadedOutstanding(t, nil)

	assert.Equal(t, view.StateEmpty, m.Display().State)
	assert.Contains(t, m.View(), view.OutstandingEmpty)
}

func TestOutstandingModel_FetchError(t *testing.T) {
	m := NewOutstandingModel(context.Background(), staticOutstanding(nil, errors.New("connection refused")))
	m = feedOutstanding(m, m.Init())

	assert.Equal(t, view.StateError, m.Display().State)
	assert.Equal(t, "connection refused", m.Display().Message)
	assert.Contains(t, m.View(), "Press r to retry")

	// Search is unavailable until orders load.
	m = pressOutstanding(m, keySlash)
	assert.False(t, m.Editing())
}

func TestOutstandingModel_Search(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		want     []string
		wantInfo string
		wantView string
	}{
		{name: "customer case insensitive", query: "ACME", want: []string{"INV001", "INV003"}, wantInfo: "Showing 2 of 3 invoices"},
		{name: "order number", query: "ord8", want: []string{"INV002"}, wantInfo: "Showing 1 of 3 invoices"},
		{name: "no match", query: "zzz", want: []string{}, wantView: view.NoMatchMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := loadedOutstanding(t, sampleOrders())

			m = pressOutstanding(m, keySlash)
			require.True(t, m.Editing())
			m = typeOutstanding(m, tt.query)

			// Results update per keystroke, no debounce.
			assert.Equal(t, tt.want, invoiceNumbers(m.Shown()))
			if tt.wantInfo != "" {
				assert.Contains(t, m.View(), tt.wantInfo)
			}
			if tt.wantView != "" {
				assert.Contains(t, m.View(), tt.wantView)
			}

			m = pressOutstanding(m, keyEnter)
			assert.False(t, m.Editing())
			m = pressOutstanding(m, keyEsc)
			assert.Len(t, m.Shown(), 3)
		})
	}
}

func TestOutstandingModel_Sort(t *testing.T) {
	m := loadedOutstanding(t, sampleOrders())

	tests := []struct {
		key       string
		wantField string
		wantDir   report.SortDirection
		want      []string
	}{
		{key: keyO, wantField: "invoice_date", wantDir: report.SortAsc, want: []string{"INV003", "INV001", "INV002"}},
		{key: "1", wantField: "invoice_number", wantDir: report.SortDesc, want: []string{"INV003", "INV002", "INV001"}},
		{key: "1", wantField: "invoice_number", wantDir: report.SortAsc, want: []string{"INV001", "INV002", "INV003"}},
		{key: "3", wantField: "customer_name", wantDir: report.SortDesc, want: []string{"INV002", "INV003", "INV001"}},
		{key: keyS, wantField: "invoice_date", wantDir: report.SortDesc, want: []string{"INV002", "INV001", "INV003"}},
		{key: "9", wantField: "invoice_date", wantDir: report.SortDesc, want: []string{"INV002", "INV001", "INV003"}},
	}

	for _, tt := range tests {
		m = pressOutstanding(m, tt.key)
		assert.Equal(t, tt.wantField, m.Sort().Field, "after %s", tt.key)
		assert.Equal(t, tt.wantDir, m.Sort().Direction, "after %s", tt.key)
		assert.Equal(t, tt.want, invoiceNumbers(m.Shown()), "after %s", tt.key)
	}
}

func TestOutstandingModel_StaleResponseDiscarded(t *testing.T) {
	m := loadedOutstanding(t, sampleOrders())

	m, cmd := m.Refresh()
	require.NotNil(t, cmd)
	assert.Equal(t, view.StateLoading, m.Display().State)

	stale := outstandingLoadedMsg{requestID: m.requestID - 1, list: &report.OutstandingList{}}
	updated, _ := m.Update(stale)
	m = updated.(OutstandingModel)
	assert.Equal(t, view.StateLoading, m.Display().State)

	m = feedOutstanding(m, cmd)
	assert.Equal(t, view.StateTable, m.Display().State)
	assert.Len(t, m.Shown(), 3)
}

func TestOutstandingModel_RefreshCancelsInitialFetch(t *testing.T) {
	var ctxs []context.Context
	fetch := func(ctx context.Context) (*report.OutstandingList, error) {
		ctxs = append(ctxs, ctx)
		return &report.OutstandingList{}, nil
	}
	m := NewOutstandingModel(context.Background(), fetch)
	initial := m.Init()

	m, refresh := m.Refresh()
	runCmd(initial)
	runCmd(refresh)

	require.Len(t, ctxs, 2)
	require.ErrorIs(t, ctxs[0].Err(), context.Canceled, "the initial fetch must be cancelled")
	require.NoError(t, ctxs[1].Err())

	m.stop()
	require.Error(t, ctxs[1].Err())
}

func TestOutstandingModel_SearchSurvivesRefresh(t *testing.T) {
	m := loadedOutstanding(t, sampleOrders())
	m = pressOutstanding(m, keySlash)
	m = typeOutstanding(m, "baker")
	m = pressOutstanding(m, keyEnter)

	m, cmd := m.Refresh()
	m = feedOutstanding(m, cmd)
	assert.Equal(t, []string{"INV002"}, invoiceNumbers(m.Shown()))
}

func TestOutstandingModel_ListNavigation(t *testing.T) {
	m := loadedOutstanding(t, sampleOrders())

	m = pressOutstanding(m, "j")
	assert.Equal(t, 1, m.list.Selected())
	m = pressOutstanding(m, "k")
	assert.Equal(t, 0, m.list.Selected())
}

func TestColumnForDigit(t *testing.T) {
	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{key: "1", want: "invoice_number", wantOK: true},
		{key: "6", want: "total_value", wantOK: true},
		{key: "7", wantOK: false},
		{key: "0", wantOK: false},
		{key: "a", wantOK: false},
		{key: "12", wantOK: false},
	}
	for _, tt := range tests {
		got, ok := columnForDigit(tt.key)
		assert.Equal(t, tt.wantOK, ok, tt.key)
		assert.Equal(t, tt.want, got, tt.key)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Acme Wh…", truncate("Acme Wholesale", 8))
	assert.Equal(t, "A", truncate("Acme", 1))
}
