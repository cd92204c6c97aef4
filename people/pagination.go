package people

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// totalCountHeader carries the size of the whole collection on paged lists.
const totalCountHeader = "X-Total-Count"

// ListOptions selects one page of the collection.
type ListOptions struct {
	// Number of records per page. Must be positive.
	Limit int

	// 1-based page number. Zero means the first page.
	Page int
}

func (o *ListOptions) validate() error {
	if o.Limit <= 0 {
		return invalidArgument("limit has to be positive")
	}
	if o.Page < 0 {
		return invalidArgument("page must not be negative")
	}
	return nil
}

// encode sets the paging parameters on u. The first page is requested
// with _limit only, matching what the API expects for an initial fetch.
func (o *ListOptions) encode(u *url.URL) {
	q := u.Query()
	q.Set("_limit", strconv.Itoa(o.Limit))
	if o.Page > 1 {
		q.Set("_page", strconv.Itoa(o.Page))
	}
	u.RawQuery = q.Encode()
}

// PersonPage is one page of the collection together with the total count
// reported by the server when it was fetched.
type PersonPage struct {
	Records    []Person
	Page       int
	Limit      int
	TotalCount int

	service *PeopleService
}

// Pages returns ceil(TotalCount / Limit).
func (p *PersonPage) Pages() int {
	if p.Limit <= 0 {
		return 0
	}
	return (p.TotalCount + p.Limit - 1) / p.Limit
}

// NextPage fetches the page after p.
// Returns ErrNoNextPage if p is the last page.
func (p *PersonPage) NextPage(ctx context.Context) (*PersonPage, error) {
	if p.Page >= p.Pages() {
		return nil, ErrNoNextPage
	}
	return p.service.ListPage(ctx, &ListOptions{Limit: p.Limit, Page: p.Page + 1})
}

func parseTotalCount(v string) (int, error) {
	if v == "" {
		return 0, fmt.Errorf("missing %s header", totalCountHeader)
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s header %q", totalCountHeader, v)
	}
	return n, nil
}
