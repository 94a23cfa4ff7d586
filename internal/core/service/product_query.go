package service

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/storefront/catalog-api/internal/core/ports"
)

const defaultSortField = "createdAt"

var sortableFields = map[string]struct{}{
	"name":      {},
	"price":     {},
	"category":  {},
	"sku":       {},
	"stock":     {},
	"createdAt": {},
	"updatedAt": {},
}

// BuildProductQuery turns raw query parameters into a bounded ProductQuery.
// It never fails: unusable values fall back to defaults, limit is capped at
// ports.MaxLimit and page is capped so skip stays representable. category is
// matched exactly as sent.
func BuildProductQuery(params url.Values) ports.ProductQuery {
	q := ports.ProductQuery{
		Filter: ports.ProductFilter{
			Category:  params.Get("category"),
			CreatedBy: strings.TrimSpace(params.Get("createdBy")),
		},
		Sort:  ports.ProductSort{Field: defaultSortField},
		Page:  positiveInt(params.Get("page"), ports.DefaultPage),
		Limit: positiveInt(params.Get("limit"), ports.DefaultLimit),
	}

	if field := strings.TrimSpace(params.Get("sort")); field != "" {
		if _, ok := sortableFields[field]; ok {
			q.Sort.Field = field
		}
	}

	if q.Limit > ports.MaxLimit {
		q.Limit = ports.MaxLimit
	}
	if maxPage := math.MaxInt / q.Limit; q.Page > maxPage {
		q.Page = maxPage
	}
	q.Skip = (q.Page - 1) * q.Limit
	return q
}

// positiveInt parses raw as an integer, returning fallback for empty,
// non-numeric or non-positive input.
func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
