package report

import (
	"fmt"
)

// WindowSize is the maximum number of contiguous page buttons shown around the current page.
const WindowSize = 5

// windowRadius is how many pages the window extends on each side of the current page.
const windowRadius = WindowSize / 2

// PageInfo describes where a page sits within a result set. Page indexes are zero-based.
type PageInfo struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	Offset      int  `json:"offset"       yaml:"offset"`
	Start       int  `json:"start"        yaml:"start"`
	End         int  `json:"end"          yaml:"end"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewPageInfo computes page metadata for a total row count, page size and offset.
// A non-positive limit is treated as a single page holding every row. A page that starts
// past the last row is empty, so its Start and End are both 0.
func NewPageInfo(totalCount, limit, offset int) PageInfo {
	if totalCount < 0 {
		totalCount = 0
	}
	if offset < 0 {
		offset = 0
	}

	pageSize := limit
	if pageSize <= 0 {
		pageSize = totalCount
	}

	currentPage := 0
	totalPages := 0
	if pageSize > 0 {
		currentPage = offset / pageSize
		totalPages = (totalCount + pageSize - 1) / pageSize
	}

	start, end := 0, 0
	if offset < totalCount {
		start = offset + 1
		end = min(offset+pageSize, totalCount)
	}

	return PageInfo{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  totalCount,
		Offset:      offset,
		Start:       start,
		End:         end,
		HasPrevious: currentPage > 0,
		HasNext:     currentPage < totalPages-1,
	}
}

// PageInfo returns the page metadata for the state's offset and last known total.
func (s QueryState) PageInfo() PageInfo {
	return NewPageInfo(s.TotalCount, s.Limit, s.Offset)
}

// FirstEnabled reports whether the First button is active.
func (p PageInfo) FirstEnabled() bool { return p.CurrentPage > 0 }

// PrevEnabled reports whether the Previous button is active.
func (p PageInfo) PrevEnabled() bool { return p.CurrentPage > 0 }

// NextEnabled reports whether the Next button is active.
func (p PageInfo) NextEnabled() bool { return p.CurrentPage < p.TotalPages-1 }

// LastEnabled reports whether the Last button is active.
func (p PageInfo) LastEnabled() bool { return p.CurrentPage < p.TotalPages-1 }

// RangeText renders "Showing {start}-{end} of {total}".
func (p PageInfo) RangeText() string {
	return fmt.Sprintf("Showing %d-%d of %d", p.Start, p.End, p.TotalItems)
}

// PageItem is one element of the page-number strip: either a page button or an ellipsis.
type PageItem struct {
	Page     int
	Ellipsis bool
	Current  bool
}

// Label is the 1-based button text, or "..." for an ellipsis.
func (i PageItem) Label() string {
	if i.Ellipsis {
		return "..."
	}
	return fmt.Sprintf("%d", i.Page+1)
}

// Window returns the page-number strip: up to WindowSize pages centred on the current
// page, with the first and last pages attached behind an ellipsis when they are not
// adjacent. Nothing is returned when there is at most one page.
func (p PageInfo) Window() []PageItem {
	if p.TotalPages <= 1 {
		return nil
	}

	last := p.TotalPages - 1
	start := max(0, p.CurrentPage-windowRadius)
	end := min(last, start+WindowSize-1)
	if end-start < WindowSize-1 {
		start = max(0, end-WindowSize+1)
	}

	items := make([]PageItem, 0, WindowSize+4) //nolint:mnd // Two edge pages plus two ellipses.
	if start > 0 {
		items = append(items, p.page(0))
		if start > 1 {
			items = append(items, PageItem{Ellipsis: true})
		}
	}
	for i := start; i <= end; i++ {
		items = append(items, p.page(i))
	}
	if end < last {
		if end < last-1 {
			items = append(items, PageItem{Ellipsis: true})
		}
		items = append(items, p.page(last))
	}
	return items
}

func (p PageInfo) page(i int) PageItem {
	return PageItem{Page: i, Current: i == p.CurrentPage}
}
