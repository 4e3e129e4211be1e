package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetsetgo/dispatchdesk/internal/report"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{name: "valid default", params: *NewParams()},
		{name: "valid offset mode", params: Params{Limit: 10, Offset: 20}},
		{name: "valid page mode", params: Params{Limit: 25, Page: 3}},
		{name: "zero limit", params: Params{Limit: 0}, wantErr: ErrInvalidLimit},
		{name: "limit too large", params: Params{Limit: MaxLimit + 1}, wantErr: ErrInvalidLimit},
		{name: "negative offset", params: Params{Limit: 10, Offset: -1}, wantErr: ErrInvalidOffset},
		{name: "negative page", params: Params{Limit: 10, Page: -1}, wantErr: ErrInvalidPage},
		{name: "mixed modes", params: Params{Limit: 10, Page: 2, Offset: 10}, wantErr: ErrMixedPaginationModes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParams_EffectiveOffset(t *testing.T) {
	assert.Equal(t, 30, Params{Limit: 10, Offset: 30}.EffectiveOffset())
	assert.Equal(t, 50, Params{Limit: 25, Page: 3}.EffectiveOffset())
	assert.Equal(t, 0, Params{Limit: 25, Page: 1}.EffectiveOffset())
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		input     string
		wantField string
		wantOrder string
		wantErr   error
	}{
		{input: "", wantField: "", wantOrder: ""},
		{input: "driver", wantField: "driver", wantOrder: "desc"},
		{input: "driver:asc", wantField: "driver", wantOrder: "asc"},
		{input: " customer_name : DESC ", wantField: "customer_name", wantOrder: "desc"},
		{input: "a:b:c", wantErr: ErrInvalidSortFormat},
		{input: ":asc", wantErr: ErrEmptySortField},
		{input: "driver:up", wantErr: ErrInvalidSortOrder},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			field, order, err := ParseSort(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestResolveSort(t *testing.T) {
	fields := NewDispatchFields()

	field, dir, err := ResolveSort("", fields, report.DefaultSortField, report.SortDesc)
	require.NoError(t, err)
	assert.Equal(t, "date_dispatched", field)
	assert.Equal(t, report.SortDesc, dir)

	field, dir, err = ResolveSort("manifest_number:asc", fields, report.DefaultSortField, report.SortDesc)
	require.NoError(t, err)
	assert.Equal(t, "manifest_number", field)
	assert.Equal(t, report.SortAsc, dir)

	_, _, err = ResolveSort("sku", fields, report.DefaultSortField, report.SortDesc)
	require.ErrorIs(t, err, ErrInvalidSortField)
	assert.Contains(t, err.Error(), "customer_name, date_dispatched, driver, invoice_number, manifest_number")
}

func TestOrderSorter(t *testing.T) {
	orders := []report.OutstandingOrder{
		{InvoiceNumber: "B", InvoiceDate: "2026-01-01"},
		{InvoiceNumber: "A", InvoiceDate: "2026-01-03"},
		{InvoiceNumber: "C", InvoiceDate: "2026-01-02"},
	}
	sorter := NewOrderSorter()

	sorted := sorter.Sort(orders, "invoice_number", SortOrderAsc)
	assert.Equal(t, report.Text("A"), sorted[0].InvoiceNumber)
	assert.Equal(t, report.Text("C"), sorted[2].InvoiceNumber)

	sorted = sorter.Sort(orders, "invoice_date", SortOrderDesc)
	assert.Equal(t, report.Text("A"), sorted[0].InvoiceNumber)
	assert.Equal(t, report.Text("B"), sorted[2].InvoiceNumber)

	unchanged := sorter.Sort(orders, "bogus", SortOrderAsc)
	assert.Equal(t, orders, unchanged)

	assert.True(t, sorter.IsValidField("customer_name"))
	assert.Contains(t, sorter.GetValidFields(), "total_value")
}
