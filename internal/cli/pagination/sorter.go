package pagination

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jetsetgo/dispatchdesk/internal/report"
)

// FieldValidator checks sort field names against the columns a report supports.
type FieldValidator interface {
	// IsValidField checks if the given field name is valid for sorting.
	IsValidField(field string) bool
	// GetValidFields returns a list of valid field names for sorting.
	GetValidFields() []string
}

// FieldSet is a FieldValidator over a fixed list of names.
type FieldSet struct {
	validFields map[string]bool
}

// NewFieldSet creates a FieldSet from names.
func NewFieldSet(names ...string) *FieldSet {
	fs := &FieldSet{validFields: make(map[string]bool, len(names))}
	for _, n := range names {
		fs.validFields[n] = true
	}
	return fs
}

// NewDispatchFields returns the columns the backend sorts the dispatch report on.
func NewDispatchFields() *FieldSet {
	return NewFieldSet(report.DispatchSortFields...)
}

// IsValidField checks if the field is valid for sorting.
func (s *FieldSet) IsValidField(field string) bool {
	return s.validFields[field]
}

// GetValidFields returns all valid sort fields.
func (s *FieldSet) GetValidFields() []string {
	fields := make([]string, 0, len(s.validFields))
	for field := range s.validFields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// OrderSorter sorts outstanding orders on the client.
type OrderSorter struct {
	*FieldSet
}

// NewOrderSorter creates an OrderSorter over the outstanding-order columns.
func NewOrderSorter() *OrderSorter {
	return &OrderSorter{FieldSet: NewFieldSet(report.OrderSortFields...)}
}

// Sort returns a stably sorted copy of orders.
// If field is invalid, the orders are returned in their original order.
func (s *OrderSorter) Sort(orders []report.OutstandingOrder, field, order string) []report.OutstandingOrder {
	if !s.IsValidField(field) {
		return orders
	}
	dir := report.SortDesc
	if order == SortOrderAsc {
		dir = report.SortAsc
	}
	return report.SortOrders(orders, field, dir)
}

// ResolveSort parses a --sort expression and validates its field against v.
// An empty expression returns the supplied defaults.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ResolveSort(
	expr string,
	v FieldValidator,
	defaultField string,
	defaultDir report.SortDirection,
) (field string, dir report.SortDirection, err error) {
	field, order, err := ParseSort(expr)
	if err != nil {
		return "", "", err
	}
	if field == "" {
		return defaultField, defaultDir, nil
	}
	if !v.IsValidField(field) {
		return "", "", fmt.Errorf("%w: %q (valid fields: %s)",
			ErrInvalidSortField, field, strings.Join(v.GetValidFields(), ", "))
	}
	return field, report.SortDirection(order), nil
}
