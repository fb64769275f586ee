// Package filter parses API query parameters into registry filter options.
package filter

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/dappregistry/pkg/catalogs"
	"github.com/agentstation/dappregistry/pkg/errors"
	"github.com/agentstation/dappregistry/pkg/filter"
)

// Pagination limits.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Query is a parsed list or search request.
type Query struct {
	Options *filter.Options
	Limit   int
	Offset  int
}

// ParseQuery maps query parameters onto filter options.
//
// Without a "listed" parameter only listed dApps are returned; listed=any
// disables the check. List parameters are comma separated. Malformed values
// are reported as validation errors.
func ParseQuery(q url.Values) (Query, error) {
	opts := filter.Default()
	var err error

	switch v := q.Get("listed"); v {
	case "":
	case "any", "all":
		opts.IsListed = nil
	default:
		if opts.IsListed, err = parseBool("listed", v); err != nil {
			return Query{}, err
		}
	}

	if opts.ChainID, err = parseInt(q, "chainId"); err != nil {
		return Query{}, err
	}
	if opts.MinAge, err = parseInt(q, "minAge"); err != nil {
		return Query{}, err
	}
	if v := q.Get("mature"); v != "" {
		if opts.ForMatureAudience, err = parseBool("mature", v); err != nil {
			return Query{}, err
		}
	}
	if opts.ListedOnOrAfter, err = parseDate(q, "listedAfter"); err != nil {
		return Query{}, err
	}
	if opts.ListedOnOrBefore, err = parseDate(q, "listedBefore"); err != nil {
		return Query{}, err
	}

	opts.Language = q.Get("language")
	opts.AvailableOnPlatform = parseList(q, "platform")
	opts.AllowedInCountries = upper(parseList(q, "allowedIn"))
	opts.BlockedInCountries = upper(parseList(q, "blockedIn"))
	opts.Categories = parseList(q, "category")
	opts.SubCategory = parseList(q, "subCategory")
	if q.Has("developer") {
		opts.Developer = &filter.Developer{GithubID: q.Get("developer")}
	}

	query := Query{Options: opts, Limit: DefaultLimit}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Query{}, errors.NewValidationError("limit", v, "must be a positive integer")
		}
		query.Limit = min(n, MaxLimit)
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Query{}, errors.NewValidationError("offset", v, "must be a non-negative integer")
		}
		query.Offset = n
	}
	return query, nil
}

// Page is one window of a result list.
type Page struct {
	Dapps  []catalogs.Dapp `json:"dapps"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
	Count  int             `json:"count"`
}

// Paginate cuts the window described by q out of dapps.
func (q Query) Paginate(dapps []catalogs.Dapp) Page {
	total := len(dapps)
	start := min(q.Offset, total)
	end := min(start+q.Limit, total)
	window := dapps[start:end]
	if window == nil {
		window = []catalogs.Dapp{}
	}
	return Page{
		Dapps:  window,
		Total:  total,
		Limit:  q.Limit,
		Offset: q.Offset,
		Count:  len(window),
	}
}

// parseList reads a comma separated parameter. A parameter that is present
// but empty yields an empty, non-nil list.
func parseList(q url.Values, key string) []string {
	if !q.Has(key) {
		return nil
	}
	out := []string{}
	for _, v := range q[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func upper(in []string) []string {
	for i, s := range in {
		in[i] = strings.ToUpper(s)
	}
	return in
}

func parseBool(key, v string) (*bool, error) {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, errors.NewValidationError(key, v, "must be true or false")
	}
	return &b, nil
}

func parseInt(q url.Values, key string) (*int, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, errors.NewValidationError(key, v, "must be an integer")
	}
	return &n, nil
}

func parseDate(q url.Values, key string) (*time.Time, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}
	t, err := catalogs.ParseDate(v)
	if err != nil {
		return nil, errors.NewValidationError(key, v, "must be YYYY-MM-DD or RFC 3339")
	}
	return &t, nil
}
