package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// FilterType selects which date column the dispatch report filters on.
type FilterType string

const (
	// FilterDispatch filters on the date the manifest was dispatched.
	FilterDispatch FilterType = "dispatch"
	// FilterManifest filters on the date the invoice was added to a manifest.
	FilterManifest FilterType = "manifest"
)

// SortDirection is the ordering applied to a sort field.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

var (
	// ErrInvalidFilterType is returned for filter types other than dispatch or manifest.
	ErrInvalidFilterType = errors.New("filter type must be 'dispatch' or 'manifest'")
	// ErrInvalidSortDirection is returned for directions other than asc or desc.
	ErrInvalidSortDirection = errors.New("sort direction must be 'asc' or 'desc'")
)

// ParseFilterType parses a filter type case-insensitively. An empty string yields FilterDispatch.
func ParseFilterType(s string) (FilterType, error) {
	switch FilterType(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterDispatch:
		return FilterDispatch, nil
	case FilterManifest:
		return FilterManifest, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidFilterType, s)
	}
}

// ParseSortDirection parses a sort direction case-insensitively. An empty string yields SortDesc.
func ParseSortDirection(s string) (SortDirection, error) {
	switch SortDirection(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortDesc:
		return SortDesc, nil
	case SortAsc:
		return SortAsc, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidSortDirection, s)
	}
}

// Toggle returns the opposite direction.
func (d SortDirection) Toggle() SortDirection {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// Param returns the upper-case form the backend expects in sort_order.
func (d SortDirection) Param() string {
	return strings.ToUpper(string(d))
}

// Text is a JSON scalar kept as its textual form. Strings decode as-is, numbers and
// booleans keep their literal representation and null decodes to the empty string.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*t = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case data[0] == '{' || data[0] == '[':
		return fmt.Errorf("expected scalar value, got %s", data[:1])
	default:
		*t = Text(data)
	}
	return nil
}

// String returns the raw text.
func (t Text) String() string {
	return string(t)
}

// DispatchRow is one invoice line of the dispatch report, joined with its manifest.
type DispatchRow struct {
	ManifestNumber Text `json:"manifest_number"`
	DateDispatched Text `json:"date_dispatched"`
	Driver         Text `json:"driver"`
	Assistant      Text `json:"assistant"`
	Checker        Text `json:"checker"`
	RegNumber      Text `json:"reg_number"`
	InvoiceNumber  Text `json:"invoice_number"`
	OrderNumber    Text `json:"order_number"`
	CustomerName   Text `json:"customer_name"`
	CustomerNumber Text `json:"customer_number"`
	InvoiceDate    Text `json:"invoice_date"`
	Area           Text `json:"area"`
	SKU            Text `json:"sku"`
	Value          Text `json:"value"`
	Weight         Text `json:"weight"`
}

// DispatchPage is one page of the dispatch report as returned by the backend.
type DispatchPage struct {
	Rows       []DispatchRow `json:"invoices"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	FilterType FilterType    `json:"filter_type"`
}

// OutstandingOrder is an invoice that has not yet been placed on a manifest.
type OutstandingOrder struct {
	InvoiceNumber  Text `json:"invoice_number"`
	OrderNumber    Text `json:"order_number"`
	CustomerName   Text `json:"customer_name"`
	InvoiceDate    Text `json:"invoice_date"`
	CustomerNumber Text `json:"customer_number"`
	TotalValue     Text `json:"total_value"`
	Area           Text `json:"area"`
}

// OutstandingList is the outstanding-orders payload.
type OutstandingList struct {
	Orders []OutstandingOrder `json:"orders"`
	Count  int                `json:"count"`
}
