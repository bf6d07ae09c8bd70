package api

import (
	"net/http/httptest"
	"testing"
)

func TestParsePagination(t *testing.T) {
	cases := []struct {
		query   string
		page    int
		perPage int
	}{
		{"", 1, 3},
		{"?page=2", 2, 3},
		{"?page=2&per_page=10", 2, 10},
		{"?page=0&per_page=0", 1, 3},
		{"?page=-1&per_page=-5", 1, 3},
		{"?page=abc&per_page=xyz", 1, 3},
		{"?per_page=1", 1, 1},
	}

	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/api/v1/bookmarks/"+tc.query, nil)
		page, perPage := parsePagination(r)
		if page != tc.page || perPage != tc.perPage {
			t.Errorf("parsePagination(%q) = (%d, %d), want (%d, %d)",
				tc.query, page, perPage, tc.page, tc.perPage)
		}
	}
}
