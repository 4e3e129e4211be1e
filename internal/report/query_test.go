package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidDate(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2026-01-09", true},
		{"2024-02-29", true},
		{"2023-02-29", true},
		{"2026-13-01", true},
		{"2026-1-9", false},
		{"09/01/2026", false},
		{"", false},
		{" 2026-01-09", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidDate(tt.in))
		})
	}
}

func TestBuildQuery_Defaults(t *testing.T) {
	params := BuildQuery(NewQueryState())

	assert.Equal(t,
		[]string{ParamFilterType, ParamLimit, ParamOffset, ParamSortBy, ParamSortOrder},
		params.Keys())
	assert.Equal(t, "filter_type=dispatch&limit=50&offset=0&sort_by=date_dispatched&sort_order=DESC",
		params.Encode())
}

func TestBuildQuery_ParameterOrder(t *testing.T) {
	s := NewQueryState().
		WithDateRange("2026-01-02", "2026-01-09").
		WithSearch("acme & sons").
		WithFilterType(FilterManifest).
		WithSortOrder("customer_name", SortAsc).
		WithPageSize(25)
	s.TotalCount = 100
	s = s.GoToPage(2)

	params := BuildQuery(s)

	assert.Equal(t, []string{
		ParamDateFrom, ParamDateTo, ParamSearch, ParamFilterType,
		ParamLimit, ParamOffset, ParamSortBy, ParamSortOrder,
	}, params.Keys())
	assert.Equal(t,
		"date_from=2026-01-02&date_to=2026-01-09&search=acme+%26+sons&filter_type=manifest"+
			"&limit=25&offset=50&sort_by=customer_name&sort_order=ASC",
		params.Encode())
}

func TestBuildQuery_OmitsInvalidOrMissingDates(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		wantFrom bool
		wantTo   bool
	}{
		{"both unset", "", "", false, false},
		{"from only", "2026-01-02", "", true, false},
		{"to only", "", "2026-01-09", false, true},
		{"malformed from", "2026/01/02", "2026-01-09", false, true},
		{"well-formed but not on the calendar", "2026-02-30", "2026-13-40", true, true},
		{"short to", "2026-01-02", "2026-2-3", true, false},
		{"both malformed", "yesterday", "today", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Bypass the update method so the builder's own check is exercised.
			s := NewQueryState()
			s.DateFrom = tt.from
			s.DateTo = tt.to

			params := BuildQuery(s)
			assert.Equal(t, tt.wantFrom, params.Has(ParamDateFrom))
			assert.Equal(t, tt.wantTo, params.Has(ParamDateTo))
		})
	}
}

func TestBuildQuery_BlankSearchOmitted(t *testing.T) {
	s := NewQueryState()
	s.Search = "   "

	assert.False(t, BuildQuery(s).Has(ParamSearch))
}

func TestParams_Get(t *testing.T) {
	params := Params{{"a", "1"}, {"b", "2"}}

	v, ok := params.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	_, ok = params.Get("c")
	assert.False(t, ok)
}
