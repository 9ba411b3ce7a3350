package utils

import "testing"

func TestBuildPagination(t *testing.T) {
	cases := []struct {
		name                  string
		page, limit, total    int
		wantPage, wantLimit   int
		wantOffset, wantPages int
	}{
		{"defaults", 0, 0, 25, 1, 10, 0, 3},
		{"second page", 2, 10, 25, 2, 10, 10, 3},
		{"limit clamped", 1, 500, 10, 1, 100, 0, 1},
		{"empty result", 1, 10, 0, 1, 10, 0, 0},
		{"exact division", 3, 5, 15, 3, 5, 10, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := BuildPagination(tc.page, tc.limit, tc.total)
			if p.Page != tc.wantPage || p.Limit != tc.wantLimit || p.Offset != tc.wantOffset || p.TotalPages != tc.wantPages {
				t.Fatalf("got %+v", p)
			}
		})
	}
}
