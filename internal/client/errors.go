package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// maxErrorBody bounds how much of a failed response is kept for error context.
const maxErrorBody = 4096

var (
	// ErrNetwork wraps transport failures: refused connections, timeouts, DNS errors.
	ErrNetwork = errors.New("network error")
	// ErrInvalidResponse is returned when a payload does not have the expected shape.
	ErrInvalidResponse = errors.New("invalid API response format")
	// ErrInvalidBaseURL is returned by New for URLs that are not absolute http(s) URLs.
	ErrInvalidBaseURL = errors.New("invalid API base URL")
)

// StatusError is returned for responses with a 4xx or 5xx status.
type StatusError struct {
	Code   int
	Status string
	// Detail is the "detail" field of a JSON error body, when present.
	Detail string
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Temporary reports whether retrying the same request may succeed.
func (e *StatusError) Temporary() bool {
	return e.Code >= http.StatusInternalServerError || e.Code == http.StatusTooManyRequests
}

func newStatusError(resp *http.Response, body []byte) *StatusError {
	status := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if status == "" {
		status = http.StatusText(resp.StatusCode)
	}
	return &StatusError{
		Code:   resp.StatusCode,
		Status: status,
		Detail: errorDetail(body),
		Body:   strings.TrimSpace(string(body)),
	}
}

// errorDetail extracts {"detail": "..."} from an error body. Structured details
// (validation error lists) are returned as compact JSON.
func errorDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		return s
	}
	if string(payload.Detail) == "null" {
		return ""
	}
	return string(payload.Detail)
}

// IsTemporary reports whether retrying the request that failed with err may succeed.
// Transport failures and 5xx/429 responses are temporary.
func IsTemporary(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	return errors.Is(err, ErrNetwork)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
