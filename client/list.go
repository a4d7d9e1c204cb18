package client

import (
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Page is one page of a paged listing. Next is the cursor of the following
// page, or nil when this is the last one.
type Page[T any] struct {
	Items []T
	Next  *ListOptions
}

// ListOptions describes a paged listing request: which page to fetch and
// the filters that apply to every page. It doubles as the continuation
// cursor; Page.Next carries the same filters with the next page number.
type ListOptions struct {
	// Page is the 1-based page number. Zero means the first page.
	Page int
	// PerPage is the page size. Zero means the client default.
	PerPage int
	// Search maps a field to a substring the server matches against it.
	Search map[string]string
	// Filter maps a field to a value the server matches exactly.
	Filter map[string]string
	// Sort lists fields to sort by; a leading "-" sorts descending.
	Sort []string
}

// WithSearch returns a copy of o with the search filter field=value added.
func (o ListOptions) WithSearch(field, value string) ListOptions {
	o.Search = maps.Clone(o.Search)
	if o.Search == nil {
		o.Search = make(map[string]string, 1)
	}
	o.Search[field] = value
	return o
}

// WithFilter returns a copy of o with the exact filter field=value added.
func (o ListOptions) WithFilter(field, value string) ListOptions {
	o.Filter = maps.Clone(o.Filter)
	if o.Filter == nil {
		o.Filter = make(map[string]string, 1)
	}
	o.Filter[field] = value
	return o
}

// Values encodes o as query parameters.
func (o ListOptions) Values() url.Values {
	v := url.Values{}
	if o.Page > 0 {
		v.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(o.PerPage))
	}
	for _, field := range slices.Sorted(maps.Keys(o.Search)) {
		v.Set("search["+field+"]", o.Search[field])
	}
	for _, field := range slices.Sorted(maps.Keys(o.Filter)) {
		v.Set("filter["+field+"]", o.Filter[field])
	}
	if len(o.Sort) > 0 {
		v.Set("sort", strings.Join(o.Sort, ","))
	}
	return v
}

func (o ListOptions) page() int {
	if o.Page < 1 {
		return 1
	}
	return o.Page
}

// nextPage derives the cursor following cur from the response headers. The
// Link header's rel="next" entry wins; otherwise X-Total is compared with
// the number of items served so far.
func nextPage(h http.Header, cur ListOptions, served int) *ListOptions {
	if link, ok := linkNext(h.Values("Link")); ok {
		next := cur
		next.Page = cur.page() + 1
		if u, err := url.Parse(link); err == nil {
			if p, err := strconv.Atoi(u.Query().Get("page")); err == nil && p > 0 {
				next.Page = p
			}
		}
		return &next
	}
	total, err := strconv.Atoi(h.Get("X-Total"))
	if err != nil || served == 0 {
		return nil
	}
	perPage := cur.PerPage
	if perPage < 1 {
		perPage = served
	}
	if cur.page()*perPage >= total {
		return nil
	}
	next := cur
	next.Page = cur.page() + 1
	return &next
}

// linkNext returns the target of the rel="next" entry of an RFC 8288 Link
// header.
func linkNext(headers []string) (string, bool) {
	for _, header := range headers {
		for _, entry := range strings.Split(header, ",") {
			target, params, ok := strings.Cut(strings.TrimSpace(entry), ";")
			if !ok {
				continue
			}
			target = strings.TrimSpace(target)
			if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
				continue
			}
			for _, param := range strings.Split(params, ";") {
				key, value, _ := strings.Cut(strings.TrimSpace(param), "=")
				if strings.EqualFold(key, "rel") && strings.Trim(value, `"`) == "next" {
					return target[1 : len(target)-1], true
				}
			}
		}
	}
	return "", false
}
