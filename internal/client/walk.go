package client

import (
	"context"
	"errors"

	"github.com/jetsetgo/dispatchdesk/internal/batch"
	"github.com/jetsetgo/dispatchdesk/internal/report"
)

// ErrNilPageHandler is returned when WalkDispatched is given no handler.
var ErrNilPageHandler = errors.New("page handler cannot be nil")

// WalkDispatched fetches every page of the dispatch report from state's offset onward and
// hands each page to fn in offset order. After the first page the remaining pages are
// fetched in concurrent batches of proc's size.
func (c *Client) WalkDispatched(
	ctx context.Context,
	state report.QueryState,
	proc *batch.Processor[int],
	fn func(*report.DispatchPage) error,
) error {
	if fn == nil {
		return ErrNilPageHandler
	}
	if state.Limit <= 0 {
		state = state.WithPageSize(report.DefaultLimit)
	}
	state = state.WithOffset(state.Offset)

	first, err := c.Dispatched(ctx, report.BuildQuery(state))
	if err != nil {
		return err
	}
	if err := fn(first); err != nil {
		return err
	}

	offsets := batch.PageOffsets(first.Total, state.Limit, state.Offset)
	fetch := func(ctx context.Context, offset int) (*report.DispatchPage, error) {
		return c.Dispatched(ctx, report.BuildQuery(state.WithOffset(offset)))
	}
	sink := func(_ int, page *report.DispatchPage) error {
		return fn(page)
	}
	return batch.WalkPages(ctx, proc, offsets, fetch, sink)
}
