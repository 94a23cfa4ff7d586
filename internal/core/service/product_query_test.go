package service

import (
	"math"
	"net/url"
	"testing"

	"github.com/storefront/catalog-api/internal/core/ports"
)

func TestBuildProductQuery(t *testing.T) {
	cases := []struct {
		name   string
		params url.Values
		want   ports.ProductQuery
	}{
		{
			name:   "defaults",
			params: url.Values{},
			want: ports.ProductQuery{
				Sort: ports.ProductSort{Field: "createdAt"},
				Page: 1, Skip: 0, Limit: 10,
			},
		},
		{
			name:   "category filter",
			params: url.Values{"category": {"electronics"}},
			want: ports.ProductQuery{
				Filter: ports.ProductFilter{Category: "electronics"},
				Sort:   ports.ProductSort{Field: "createdAt"},
				Page:   1, Skip: 0, Limit: 10,
			},
		},
		{
			name:   "empty category ignored",
			params: url.Values{"category": {""}},
			want: ports.ProductQuery{
				Sort: ports.ProductSort{Field: "createdAt"},
				Page: 1, Skip: 0, Limit: 10,
			},
		},
		{
			name:   "creator filter",
			params: url.Values{"createdBy": {"u1"}, "category": {"tools"}},
			want: ports.ProductQuery{
				Filter: ports.ProductFilter{Category: "tools", CreatedBy: "u1"},
				Sort:   ports.ProductSort{Field: "createdAt"},
				Page:   1, Skip: 0, Limit: 10,
			},
		},
		{
			name:   "sort and pagination",
			params: url.Values{"sort": {"price"}, "page": {"3"}, "limit": {"20"}},
			want: ports.ProductQuery{
				Sort: ports.ProductSort{Field: "price"},
				Page: 3, Skip: 40, Limit: 20,
			},
		},
		{
			name:   "unknown sort field falls back",
			params: url.Values{"sort": {"$where"}},
			want: ports.ProductQuery{
				Sort: ports.ProductSort{Field: "createdAt"},
				Page: 1, Skip: 0, Limit: 10,
			},
		},
		{
			name:   "non-numeric page and limit",
			params: url.Values{"page": {"abc"}, "limit": {"ten"}},
			want: ports.ProductQuery{
				Sort: ports.ProductSort{Field: "createdAt"},
				Page: 1, Skip: 0, Limit: 10,
			},
		},
		{
			name:   "non-positive page and limit",
			params: url.Values{"page": {"-2"}, "limit": {"0"}},
			want: ports.ProductQuery{
				Sort: ports.ProductSort{Field: "createdAt"},
				Page: 1, Skip: 0, Limit: 10,
			},
		},
		{
			name:   "limit capped",
			params: url.Values{"page": {"2"}, "limit": {"5000"}},
			want: ports.ProductQuery{
				Sort: ports.ProductSort{Field: "createdAt"},
				Page: 2, Skip: 100, Limit: 100,
			},
		},
		{
			name:   "huge page keeps skip non-negative",
			params: url.Values{"page": {"9223372036854775807"}, "limit": {"100"}},
			want: ports.ProductQuery{
				Sort: ports.ProductSort{Field: "createdAt"},
				Page: math.MaxInt / 100, Skip: (math.MaxInt/100 - 1) * 100, Limit: 100,
			},
		},
		{
			name:   "huge page with limit one",
			params: url.Values{"page": {"9223372036854775807"}, "limit": {"1"}},
			want: ports.ProductQuery{
				Sort: ports.ProductSort{Field: "createdAt"},
				Page: math.MaxInt, Skip: math.MaxInt - 1, Limit: 1,
			},
		},
		{
			name:   "category matched verbatim",
			params: url.Values{"category": {" tools"}},
			want: ports.ProductQuery{
				Filter: ports.ProductFilter{Category: " tools"},
				Sort:   ports.ProductSort{Field: "createdAt"},
				Page:   1, Skip: 0, Limit: 10,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildProductQuery(tc.params)
			if got.Skip < 0 {
				t.Fatalf("skip went negative: %d", got.Skip)
			}
			if got != tc.want {
				t.Fatalf("BuildProductQuery(%v)\n got  %+v\n want %+v", tc.params, got, tc.want)
			}
		})
	}
}
