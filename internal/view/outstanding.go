package view

import (
	"fmt"

	"github.com/jetsetgo/dispatchdesk/internal/report"
)

// NoMatchMessage replaces the table when a search hides every outstanding order.
const NoMatchMessage = "No orders match your search criteria"

// OrderColumns are the outstanding-order columns in display order.
//
//nolint:gochecknoglobals // Fixed column layout.
var OrderColumns = []Column{
	{Title: "Invoice", Key: "invoice_number", Width: 12, Sortable: true},
	{Title: "Order", Key: "order_number", Width: 12, Sortable: true},
	{Title: "Customer", Key: "customer_name", Width: 28, Sortable: true},
	{Title: "Invoice Date", Key: "invoice_date", Width: 15, Sortable: true},
	{Title: "Area", Key: "area", Width: 12, Sortable: true},
	{Title: "Value", Key: "total_value", Width: 12, Sortable: true},
}

// OrderRowView is an outstanding order formatted for display.
type OrderRowView struct {
	InvoiceNumber string
	OrderNumber   string
	CustomerName  string
	InvoiceDate   string
	Area          string
	TotalValue    string
}

// NewOrderRowView formats o for display.
func NewOrderRowView(o report.OutstandingOrder) OrderRowView {
	return OrderRowView{
		InvoiceNumber: FormatText(o.InvoiceNumber),
		OrderNumber:   FormatText(o.OrderNumber),
		CustomerName:  FormatText(o.CustomerName),
		InvoiceDate:   FormatDate(o.InvoiceDate.String()),
		Area:          FormatText(o.Area),
		TotalValue:    FormatAmount(o.TotalValue),
	}
}

// Cells returns the values in OrderColumns order.
func (v OrderRowView) Cells() []string {
	return []string{v.InvoiceNumber, v.OrderNumber, v.CustomerName, v.InvoiceDate, v.Area, v.TotalValue}
}

// OrderRowViews formats a list of orders.
func OrderRowViews(orders []report.OutstandingOrder) []OrderRowView {
	views := make([]OrderRowView, len(orders))
	for i, o := range orders {
		views[i] = NewOrderRowView(o)
	}
	return views
}

// OutstandingCount is the "N outstanding invoices" badge for the unfiltered set.
func OutstandingCount(total int) string {
	return fmt.Sprintf("%s outstanding %s", FormatCount(total), plural(total, "invoice"))
}

// FilteredInfo is "Showing X of Y invoices" while a search hides some orders, and ""
// otherwise.
func FilteredInfo(shown, total int) string {
	if shown >= total {
		return ""
	}
	return fmt.Sprintf("Showing %s of %s invoices", FormatCount(shown), FormatCount(total))
}

// OrdersDisplay picks the display for a filtered outstanding list. An empty result of a
// non-empty set is the no-match panel; an empty set is the empty panel.
func OrdersDisplay(shown, total int) Display {
	switch {
	case total == 0:
		return Display{State: StateEmpty, Message: OutstandingEmpty}
	case shown == 0:
		return Display{State: StateEmpty, Message: NoMatchMessage}
	default:
		return Display{State: StateTable}
	}
}
