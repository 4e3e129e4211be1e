package batch

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// PageFetcher fetches the page starting at offset.
type PageFetcher[P any] func(ctx context.Context, offset int) (P, error)

// PageSink receives fetched pages in offset order.
type PageSink[P any] func(offset int, page P) error

// ErrNilSink is returned when WalkPages is given no sink.
var ErrNilSink = errors.New("page sink cannot be nil")

// PageOffsets lists the offsets of every page after the first for total rows at limit
// rows per page.
func PageOffsets(total, limit, firstOffset int) []int {
	if limit <= 0 {
		return nil
	}
	var offsets []int
	for off := firstOffset + limit; off < total; off += limit {
		offsets = append(offsets, off)
	}
	return offsets
}

// WalkPages fetches the pages at offsets. Pages are grouped into batches of the processor's
// size; the pages of a batch are fetched concurrently and handed to sink in offset order
// before the next batch starts. The first error cancels the walk.
func WalkPages[P any](
	ctx context.Context,
	proc *Processor[int],
	offsets []int,
	fetch PageFetcher[P],
	sink PageSink[P],
) error {
	if fetch == nil {
		return ErrNilCallback
	}
	if sink == nil {
		return ErrNilSink
	}
	if len(offsets) == 0 {
		return nil
	}

	return proc.Process(ctx, offsets, func(ctx context.Context, batch []int, _ int) error {
		pages := make([]P, len(batch))
		g, gctx := errgroup.WithContext(ctx)
		for i, off := range batch {
			g.Go(func() error {
				page, err := fetch(gctx, off)
				if err != nil {
					return fmt.Errorf("offset %d: %w", off, err)
				}
				pages[i] = page
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		for i, off := range batch {
			if err := sink(off, pages[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
