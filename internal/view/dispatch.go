package view

import (
	"fmt"

	"github.com/jetsetgo/dispatchdesk/internal/report"
)

// Column describes one table column.
type Column struct {
	Title string
	// Key is the backend field name, also used as the sort key.
	Key      string
	Width    int
	Sortable bool
}

// DispatchColumns are the dispatch report columns in display order.
//
//nolint:gochecknoglobals // Fixed column layout.
var DispatchColumns = []Column{
	{Title: "Invoice", Key: "invoice_number", Width: 12, Sortable: true},
	{Title: "Order", Key: "order_number", Width: 12},
	{Title: "Manifest", Key: "manifest_number", Width: 12, Sortable: true},
	{Title: "Customer", Key: "customer_name", Width: 26, Sortable: true},
	{Title: "Invoice Date", Key: "invoice_date", Width: 13},
	{Title: "Dispatched", Key: "date_dispatched", Width: 13, Sortable: true},
	{Title: "Driver", Key: "driver", Width: 16, Sortable: true},
	{Title: "Assistant", Key: "assistant", Width: 16},
	{Title: "Reg", Key: "reg_number", Width: 10},
	{Title: "Checker", Key: "checker", Width: 14},
}

// DispatchRowView is a dispatch row formatted for display.
type DispatchRowView struct {
	InvoiceNumber  string
	OrderNumber    string
	ManifestNumber string
	CustomerName   string
	InvoiceDate    string
	DateDispatched string
	Driver         string
	Assistant      string
	RegNumber      string
	Checker        string
}

// NewDispatchRowView formats r for display.
func NewDispatchRowView(r report.DispatchRow) DispatchRowView {
	return DispatchRowView{
		InvoiceNumber:  FormatText(r.InvoiceNumber),
		OrderNumber:    FormatText(r.OrderNumber),
		ManifestNumber: FormatText(r.ManifestNumber),
		CustomerName:   FormatText(r.CustomerName),
		InvoiceDate:    FormatDate(r.InvoiceDate.String()),
		DateDispatched: FormatDate(r.DateDispatched.String()),
		Driver:         FormatText(r.Driver),
		Assistant:      FormatText(r.Assistant),
		RegNumber:      FormatText(r.RegNumber),
		Checker:        FormatText(r.Checker),
	}
}

// Cells returns the values in DispatchColumns order.
func (v DispatchRowView) Cells() []string {
	return []string{
		v.InvoiceNumber,
		v.OrderNumber,
		v.ManifestNumber,
		v.CustomerName,
		v.InvoiceDate,
		v.DateDispatched,
		v.Driver,
		v.Assistant,
		v.RegNumber,
		v.Checker,
	}
}

// DispatchRowViews formats a page of rows.
func DispatchRowViews(rows []report.DispatchRow) []DispatchRowView {
	views := make([]DispatchRowView, len(rows))
	for i, r := range rows {
		views[i] = NewDispatchRowView(r)
	}
	return views
}

// ResultsCount is the "N invoices found" badge.
func ResultsCount(total int) string {
	return fmt.Sprintf("%s %s found", FormatCount(total), plural(total, "invoice"))
}

// filterVerb is the wording for the date column a filter type applies to.
func filterVerb(ft report.FilterType) string {
	if ft == report.FilterManifest {
		return "added to manifests"
	}
	return "dispatched"
}

// DateFilterText describes the active date filter, or "" when no date is set.
func DateFilterText(s report.QueryState) string {
	verb := filterVerb(s.FilterType)
	switch {
	case s.DateFrom != "" && s.DateTo != "":
		return fmt.Sprintf("%s between %s and %s", verb, FormatDate(s.DateFrom), FormatDate(s.DateTo))
	case s.DateFrom != "":
		return fmt.Sprintf("%s on or after %s", verb, FormatDate(s.DateFrom))
	case s.DateTo != "":
		return fmt.Sprintf("%s on or before %s", verb, FormatDate(s.DateTo))
	default:
		return ""
	}
}

// DispatchSummary is the results summary line, for example
// "Showing 1-50 of 237 invoices dispatched between Jan 2, 2026 and Jan 9, 2026".
// It is empty when there are no results.
func DispatchSummary(s report.QueryState) string {
	if s.TotalCount == 0 {
		return ""
	}
	info := s.PageInfo()
	summary := fmt.Sprintf("Showing %s-%s of %s invoices",
		FormatCount(info.Start), FormatCount(info.End), FormatCount(info.TotalItems))
	if dates := DateFilterText(s); dates != "" {
		summary += " " + dates
	}
	return summary
}

// DateLabels are the labels of the date inputs for a filter type.
func DateLabels(ft report.FilterType) (from, to string) {
	if ft == report.FilterManifest {
		return "Manifest Date From", "Manifest Date To"
	}
	return "Dispatch Date From", "Dispatch Date To"
}
