// Package client is the HTTP client for the dispatch report backend.
//
// It fetches pages of the dispatch report, the full outstanding-orders list and the
// backend health status. Failures are classified as:
//
//   - ErrNetwork: the request never produced a response
//   - *StatusError: the backend answered with a 4xx or 5xx status
//   - ErrInvalidResponse: the payload did not have the expected shape
//
// A cancelled context is returned as the context error, unwrapped, so callers that
// abandon superseded requests can recognise it with errors.Is.
//
// Report responses can be cached on disk through WithCache. Health checks always go to
// the network.
package client
