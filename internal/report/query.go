package report

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// DateLayout is the wire format of date_from and date_to.
const DateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Query parameter names sent to /reports/dispatched.
const (
	ParamDateFrom   = "date_from"
	ParamDateTo     = "date_to"
	ParamSearch     = "search"
	ParamFilterType = "filter_type"
	ParamLimit      = "limit"
	ParamOffset     = "offset"
	ParamSortBy     = "sort_by"
	ParamSortOrder  = "sort_order"
)

// Param is one query parameter.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered query parameter list.
type Params []Param

// Get returns the value of the first parameter named key.
func (p Params) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Has reports whether a parameter named key is present.
func (p Params) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Encode renders the parameters as a query string, preserving their order.
func (p Params) Encode() string {
	var sb strings.Builder
	for i, kv := range p {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(kv.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(kv.Value))
	}
	return sb.String()
}

// Map returns the parameters as a map, for logging.
func (p Params) Map() map[string]string {
	m := make(map[string]string, len(p))
	for _, kv := range p {
		m[kv.Key] = kv.Value
	}
	return m
}

// Keys returns the parameter names in order.
func (p Params) Keys() []string {
	keys := make([]string, len(p))
	for i, kv := range p {
		keys[i] = kv.Key
	}
	return keys
}

// ValidDate reports whether s has the YYYY-MM-DD shape. Calendar checks are left to
// the backend.
func ValidDate(s string) bool {
	return datePattern.MatchString(s)
}

// BuildQuery turns the state into the parameters sent to /reports/dispatched.
// Dates and search are included only when set; dates that fail validation are left out.
func BuildQuery(s QueryState) Params {
	params := make(Params, 0, 8) //nolint:mnd // One slot per parameter.

	if ValidDate(s.DateFrom) {
		params = append(params, Param{ParamDateFrom, s.DateFrom})
	}
	if ValidDate(s.DateTo) {
		params = append(params, Param{ParamDateTo, s.DateTo})
	}
	if search := strings.TrimSpace(s.Search); search != "" {
		params = append(params, Param{ParamSearch, search})
	}

	ft := s.FilterType
	if ft == "" {
		ft = DefaultFilterType
	}
	dir := s.SortDirection
	if dir == "" {
		dir = DefaultSortDirection
	}
	field := s.SortField
	if field == "" {
		field = DefaultSortField
	}

	params = append(params,
		Param{ParamFilterType, string(ft)},
		Param{ParamLimit, strconv.Itoa(s.Limit)},
		Param{ParamOffset, strconv.Itoa(s.Offset)},
		Param{ParamSortBy, field},
		Param{ParamSortOrder, dir.Param()},
	)
	return params
}
