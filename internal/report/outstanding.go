package report

import (
	"slices"
	"strings"
	"time"
)

// DefaultOrderSortField is the column outstanding orders are sorted by initially.
const DefaultOrderSortField = "invoice_date"

// OrderSortFields are the outstanding-order columns that can be sorted on.
var OrderSortFields = []string{ //nolint:gochecknoglobals // Fixed option list.
	"invoice_number",
	"order_number",
	"customer_name",
	"invoice_date",
	"customer_number",
	"total_value",
	"area",
}

// timestampLayouts are tried in order when parsing backend date values.
var timestampLayouts = []string{ //nolint:gochecknoglobals // Fixed layout list.
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
}

// ParseTimestamp parses a backend date or datetime value.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// epoch is the sort key for missing or unparseable dates.
var epoch = time.Unix(0, 0).UTC() //nolint:gochecknoglobals // Constant sort key.

func timestampOrEpoch(s string) time.Time {
	if t, ok := ParseTimestamp(s); ok {
		return t
	}
	return epoch
}

// Field returns the value of the named column, or "" for unknown names.
func (o OutstandingOrder) Field(name string) string {
	switch name {
	case "invoice_number":
		return string(o.InvoiceNumber)
	case "order_number":
		return string(o.OrderNumber)
	case "customer_name":
		return string(o.CustomerName)
	case "invoice_date":
		return string(o.InvoiceDate)
	case "customer_number":
		return string(o.CustomerNumber)
	case "total_value":
		return string(o.TotalValue)
	case "area":
		return string(o.Area)
	default:
		return ""
	}
}

// IsOrderSortField reports whether field names an outstanding-order column.
func IsOrderSortField(field string) bool {
	return slices.Contains(OrderSortFields, field)
}

// FilterOrders returns the orders whose invoice number, order number or customer name
// contains query, ignoring case. A blank query returns every order. The input is not modified.
func FilterOrders(orders []OutstandingOrder, query string) []OutstandingOrder {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return slices.Clone(orders)
	}

	filtered := make([]OutstandingOrder, 0, len(orders))
	for _, o := range orders {
		if strings.Contains(strings.ToLower(string(o.InvoiceNumber)), needle) ||
			strings.Contains(strings.ToLower(string(o.OrderNumber)), needle) ||
			strings.Contains(strings.ToLower(string(o.CustomerName)), needle) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

// SortOrders returns a stably sorted copy of orders. invoice_date compares as a timestamp
// with missing values sorting as the Unix epoch; other columns compare as lower-cased text.
func SortOrders(orders []OutstandingOrder, field string, dir SortDirection) []OutstandingOrder {
	sorted := slices.Clone(orders)
	if !IsOrderSortField(field) {
		return sorted
	}

	cmp := func(a, b OutstandingOrder) int {
		if field == "invoice_date" {
			return timestampOrEpoch(a.Field(field)).Compare(timestampOrEpoch(b.Field(field)))
		}
		return strings.Compare(strings.ToLower(a.Field(field)), strings.ToLower(b.Field(field)))
	}
	if dir == SortDesc {
		slices.SortStableFunc(sorted, func(a, b OutstandingOrder) int { return cmp(b, a) })
	} else {
		slices.SortStableFunc(sorted, cmp)
	}
	return sorted
}

// OrderSort is the sort applied to the outstanding-orders list.
type OrderSort struct {
	Field     string
	Direction SortDirection
}

// DefaultOrderSort sorts newest invoices first.
func DefaultOrderSort() OrderSort {
	return OrderSort{Field: DefaultOrderSortField, Direction: SortDesc}
}

// Select applies a column selection: the same column toggles, a new one starts descending.
func (s OrderSort) Select(field string) OrderSort {
	if field == s.Field {
		return OrderSort{Field: field, Direction: s.Direction.Toggle()}
	}
	return OrderSort{Field: field, Direction: SortDesc}
}

// Apply filters then sorts orders.
func (s OrderSort) Apply(orders []OutstandingOrder, query string) []OutstandingOrder {
	return SortOrders(FilterOrders(orders, query), s.Field, s.Direction)
}
