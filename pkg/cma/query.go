package cma

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryParams expresses the common list options: skip/limit pagination,
// ordering, field selection, full-text search and arbitrary filters such as
// "content_type" or "fields.title[match]".
type QueryParams struct {
	Skip    int
	Limit   int
	Order   []string
	Select  []string
	Query   string
	Filters map[string][]string
}

// NewQueryParams creates empty query parameters.
func NewQueryParams() *QueryParams {
	return &QueryParams{
		Filters: make(map[string][]string),
	}
}

// WithSkip sets the number of items to skip.
func (q *QueryParams) WithSkip(skip int) *QueryParams {
	q.Skip = skip

	return q
}

// WithLimit sets the page size.
func (q *QueryParams) WithLimit(limit int) *QueryParams {
	q.Limit = limit

	return q
}

// WithOrder appends ordering keys, e.g. "-sys.createdAt".
func (q *QueryParams) WithOrder(keys ...string) *QueryParams {
	q.Order = append(q.Order, keys...)

	return q
}

// WithSelect restricts the returned fields.
func (q *QueryParams) WithSelect(fields ...string) *QueryParams {
	q.Select = append(q.Select, fields...)

	return q
}

// WithQuery sets the full-text search term.
func (q *QueryParams) WithQuery(term string) *QueryParams {
	q.Query = term

	return q
}

// WithFilter adds a filter; multiple values are sent comma-separated.
func (q *QueryParams) WithFilter(key string, values ...string) *QueryParams {
	if q.Filters == nil {
		q.Filters = make(map[string][]string)
	}

	q.Filters[key] = append(q.Filters[key], values...)

	return q
}

// Clone returns a deep copy of q. A nil receiver yields empty params.
func (q *QueryParams) Clone() *QueryParams {
	out := NewQueryParams()
	if q == nil {
		return out
	}

	out.Skip = q.Skip
	out.Limit = q.Limit
	out.Order = append([]string(nil), q.Order...)
	out.Select = append([]string(nil), q.Select...)
	out.Query = q.Query

	for k, v := range q.Filters {
		out.Filters[k] = append([]string(nil), v...)
	}

	return out
}

// ToValues converts the parameters to URL query values.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}
	if q == nil {
		return values
	}

	if q.Skip > 0 {
		values.Set("skip", strconv.Itoa(q.Skip))
	}

	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}

	if len(q.Order) > 0 {
		values.Set("order", strings.Join(q.Order, ","))
	}

	if len(q.Select) > 0 {
		values.Set("select", strings.Join(q.Select, ","))
	}

	if q.Query != "" {
		values.Set("query", q.Query)
	}

	for key, vals := range q.Filters {
		if len(vals) > 0 {
			values.Set(key, strings.Join(vals, ","))
		}
	}

	return values
}
