package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Pagination modes and validation limits.
const (
	DefaultLimit     = 50
	MaxLimit         = 1000
	MinLimit         = 1
	DefaultOffset    = 0
	MinPage          = 1
	DefaultSortOrder = "desc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrInvalidLimit         = errors.New("limit must be between 1 and 1000")
	ErrInvalidOffset        = errors.New("offset must be non-negative")
	ErrInvalidPage          = errors.New("page must be >= 1")
	ErrInvalidSortOrder     = errors.New("sort order must be 'asc' or 'desc'")
	ErrMixedPaginationModes = errors.New("cannot use both offset-based (--offset) and page-based (--page) pagination")
	ErrInvalidSortFormat    = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'customer_name:asc')")
	ErrEmptySortField       = errors.New("sort field cannot be empty")
	ErrInvalidSortField     = errors.New("invalid sort field")
)

// Params holds the paging and sort flags of a report command.
// Two paging modes are supported and are mutually exclusive:
//   - Offset-based: --limit and --offset
//   - Page-based: --page (1-based) with --limit as the page size
type Params struct {
	Limit  int
	Offset int
	Page   int
	Sort   string
}

// NewParams returns Params with default values.
func NewParams() *Params {
	return &Params{
		Limit:  DefaultLimit,
		Offset: DefaultOffset,
	}
}

// AddFlags registers --limit, --offset, --page and --sort on cmd.
func (p *Params) AddFlags(cmd *cobra.Command, sortUsage string) {
	cmd.Flags().IntVar(&p.Limit, "limit", p.Limit, "rows per page (1-1000)")
	cmd.Flags().IntVar(&p.Offset, "offset", p.Offset, "number of rows to skip")
	cmd.Flags().IntVar(&p.Page, "page", p.Page, "1-based page number (uses --limit as the page size)")
	cmd.Flags().StringVar(&p.Sort, "sort", p.Sort, sortUsage)
}

// Validate checks bounds and mode exclusivity.
func (p Params) Validate() error {
	if p.Limit < MinLimit || p.Limit > MaxLimit {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, p.Limit)
	}
	if p.Offset < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidOffset, p.Offset)
	}
	if p.Page < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.Page > 0 && p.Offset > 0 {
		return ErrMixedPaginationModes
	}
	return nil
}

// IsPageBased returns true if page-based pagination is active.
func (p Params) IsPageBased() bool {
	return p.Page >= MinPage
}

// EffectiveOffset returns the row offset for the selected mode.
func (p Params) EffectiveOffset() int {
	if p.IsPageBased() {
		return (p.Page - 1) * p.Limit
	}
	return p.Offset
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// A missing order defaults to desc, which is how a newly selected column starts.
// An empty string returns empty field and order.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if strings.TrimSpace(sortStr) == "" {
		return "", "", nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}

	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return field, order, nil
}
