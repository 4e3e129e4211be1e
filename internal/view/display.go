package view

import (
	"strings"
)

// DisplayState is the panel a report view shows.
type DisplayState int

const (
	// StateLoading shows a spinner while a fetch is in flight.
	StateLoading DisplayState = iota
	// StateError shows the failure message with a retry hint.
	StateError
	// StateEmpty shows the no-results panel.
	StateEmpty
	// StateTable shows the rows.
	StateTable
)

func (s DisplayState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateEmpty:
		return "empty"
	case StateTable:
		return "table"
	default:
		return "unknown"
	}
}

// Fallback messages when a failure carries no text of its own.
const (
	DispatchLoadFailed    = "Failed to load dispatch records. Please check your connection and try again."
	OutstandingLoadFailed = "Failed to load outstanding orders. Please check your connection and try again."
	DispatchEmpty         = "No dispatched invoices match the selected filters."
	OutstandingEmpty      = "No outstanding orders."
)

// Display is the state of a report panel plus the text it shows.
type Display struct {
	State   DisplayState
	Message string
}

// Loading is the display while a request is in flight.
func Loading() Display {
	return Display{State: StateLoading}
}

// Failed is the error display for err. fallback is used when err has no message.
func Failed(err error, fallback string) Display {
	msg := ""
	if err != nil {
		msg = strings.TrimSpace(err.Error())
	}
	if msg == "" {
		msg = fallback
	}
	if msg == "" {
		msg = "unknown error"
	}
	return Display{State: StateError, Message: msg}
}

// ForRows picks the empty or table display for a result of n rows.
func ForRows(n int, emptyMessage string) Display {
	if n == 0 {
		return Display{State: StateEmpty, Message: emptyMessage}
	}
	return Display{State: StateTable}
}

// IsLoading reports whether the display is waiting on a request.
func (d Display) IsLoading() bool { return d.State == StateLoading }

// IsError reports whether the display shows a failure.
func (d Display) IsError() bool { return d.State == StateError }
