// Package report models the dispatch report and outstanding-orders data.
//
// It contains:
//   - QueryState: the dispatch report's filter, sort and pagination state, updated through
//     methods that return a new value
//   - BuildQuery: the ordered query parameters sent to /reports/dispatched
//   - PageInfo: page boundaries, button enablement, range text and the page-number window
//   - FilterOrders / SortOrders: client-side search and stable sort of outstanding orders
//
// Nothing in this package performs I/O.
package report
