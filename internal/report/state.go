package report

import (
	"strings"
)

// Dispatch report defaults.
const (
	DefaultLimit         = 50
	DefaultSortField     = "date_dispatched"
	DefaultSortDirection = SortDesc
	DefaultFilterType    = FilterDispatch
)

// PageSizes are the page sizes offered by the interactive page-size selector.
var PageSizes = []int{10, 25, 50, 100} //nolint:gochecknoglobals // Fixed option list.

// DispatchSortFields are the columns the backend accepts in sort_by.
var DispatchSortFields = []string{ //nolint:gochecknoglobals // Fixed option list.
	"date_dispatched",
	"manifest_number",
	"invoice_number",
	"customer_name",
	"driver",
}

// QueryState holds the filter, sort and pagination parameters of the dispatch report
// together with the last page received for them.
//
// QueryState is a value type. Every update method returns a new state and leaves the
// receiver untouched, so callers can keep the previous state for comparison.
// DateFrom and DateTo hold YYYY-MM-DD strings; the empty string means unset.
type QueryState struct {
	DateFrom      string
	DateTo        string
	FilterType    FilterType
	Search        string
	Limit         int
	Offset        int
	SortField     string
	SortDirection SortDirection
	TotalCount    int
	Rows          []DispatchRow
}

// NewQueryState returns the state a fresh dispatch report starts with.
func NewQueryState() QueryState {
	return QueryState{
		FilterType:    DefaultFilterType,
		Limit:         DefaultLimit,
		SortField:     DefaultSortField,
		SortDirection: DefaultSortDirection,
	}
}

// WithDateRange sets the date filter. Values without the YYYY-MM-DD shape are treated
// as unset. The offset returns to the first page.
func (s QueryState) WithDateRange(from, to string) QueryState {
	s.DateFrom = normalizeDate(from)
	s.DateTo = normalizeDate(to)
	s.Offset = 0
	return s
}

// WithSearch sets the free-text search. The offset returns to the first page.
func (s QueryState) WithSearch(query string) QueryState {
	s.Search = strings.TrimSpace(query)
	s.Offset = 0
	return s
}

// WithFilterType selects which date column the range applies to.
func (s QueryState) WithFilterType(ft FilterType) QueryState {
	if ft == "" {
		ft = DefaultFilterType
	}
	s.FilterType = ft
	s.Offset = 0
	return s
}

// WithSort selects a sort column. Selecting the current column toggles its direction,
// a different column starts descending. The offset returns to the first page.
func (s QueryState) WithSort(field string) QueryState {
	if field == s.SortField {
		s.SortDirection = s.SortDirection.Toggle()
	} else {
		s.SortField = field
		s.SortDirection = SortDesc
	}
	s.Offset = 0
	return s
}

// WithSortOrder sets both the sort column and direction explicitly.
func (s QueryState) WithSortOrder(field string, dir SortDirection) QueryState {
	if field == "" {
		field = DefaultSortField
	}
	if dir == "" {
		dir = DefaultSortDirection
	}
	s.SortField = field
	s.SortDirection = dir
	s.Offset = 0
	return s
}

// WithPageSize changes the number of rows per page. Non-positive sizes select DefaultLimit.
func (s QueryState) WithPageSize(limit int) QueryState {
	if limit <= 0 {
		limit = DefaultLimit
	}
	s.Limit = limit
	s.Offset = 0
	return s
}

// WithOffset moves to the page containing offset. The offset is aligned down to a page
// boundary; negative offsets select the first page.
func (s QueryState) WithOffset(offset int) QueryState {
	if offset < 0 || s.Limit <= 0 {
		offset = 0
	}
	if s.Limit > 0 {
		offset = (offset / s.Limit) * s.Limit
	}
	s.Offset = offset
	return s
}

// CurrentPage is the zero-based page index of the current offset.
func (s QueryState) CurrentPage() int {
	if s.Limit <= 0 {
		return 0
	}
	return s.Offset / s.Limit
}

// TotalPages is the number of pages TotalCount spans at the current page size.
func (s QueryState) TotalPages() int {
	if s.Limit <= 0 || s.TotalCount <= 0 {
		return 0
	}
	return (s.TotalCount + s.Limit - 1) / s.Limit
}

// LastPageOffset is the offset of the final page, or 0 when there are no rows.
func (s QueryState) LastPageOffset() int {
	if s.Limit <= 0 || s.TotalCount <= 0 {
		return 0
	}
	return ((s.TotalCount - 1) / s.Limit) * s.Limit
}

// GoToPage moves to the zero-based page, clamped to the known page range.
func (s QueryState) GoToPage(page int) QueryState {
	if page < 0 {
		page = 0
	}
	offset := page * s.Limit
	if last := s.LastPageOffset(); offset > last {
		offset = last
	}
	s.Offset = offset
	return s
}

// FirstPage moves to page zero.
func (s QueryState) FirstPage() QueryState {
	s.Offset = 0
	return s
}

// PrevPage moves one page back, stopping at page zero.
func (s QueryState) PrevPage() QueryState {
	s.Offset -= s.Limit
	if s.Offset < 0 {
		s.Offset = 0
	}
	return s
}

// NextPage moves one page forward when more rows exist.
func (s QueryState) NextPage() QueryState {
	if s.HasNext() {
		s.Offset += s.Limit
	}
	return s
}

// LastPage moves to the final page.
func (s QueryState) LastPage() QueryState {
	s.Offset = s.LastPageOffset()
	return s
}

// HasPrev reports whether a previous page exists.
func (s QueryState) HasPrev() bool {
	return s.Offset > 0
}

// HasNext reports whether rows exist beyond the current page.
func (s QueryState) HasNext() bool {
	return s.Offset+s.Limit < s.TotalCount
}

// WithPage records a fetched page.
func (s QueryState) WithPage(rows []DispatchRow, total int) QueryState {
	if total < 0 {
		total = 0
	}
	s.Rows = rows
	s.TotalCount = total
	return s
}

// OutOfRange reports whether the offset lies past the last row, which happens when the
// total shrinks between fetches.
func (s QueryState) OutOfRange() bool {
	return s.TotalCount > 0 && s.Offset >= s.TotalCount
}

// Reset clears the date range, search and sort. Page size and filter type are kept.
func (s QueryState) Reset() QueryState {
	s.DateFrom = ""
	s.DateTo = ""
	s.Search = ""
	s.SortField = DefaultSortField
	s.SortDirection = DefaultSortDirection
	s.Offset = 0
	return s
}

// SameQuery reports whether two states would produce the same request.
func (s QueryState) SameQuery(other QueryState) bool {
	return s.DateFrom == other.DateFrom &&
		s.DateTo == other.DateTo &&
		s.FilterType == other.FilterType &&
		s.Search == other.Search &&
		s.Limit == other.Limit &&
		s.Offset == other.Offset &&
		s.SortField == other.SortField &&
		s.SortDirection == other.SortDirection
}

// IsDispatchSortField reports whether the backend accepts field in sort_by.
func IsDispatchSortField(field string) bool {
	for _, f := range DispatchSortFields {
		if f == field {
			return true
		}
	}
	return false
}

func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if !ValidDate(s) {
		return ""
	}
	return s
}
