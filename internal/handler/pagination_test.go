package handler

import "testing"

func TestNewPaginatedResponse(t *testing.T) {
	cases := []struct {
		total     int64
		page      int
		limit     int
		wantPages int
	}{
		{0, 1, 10, 0},
		{5, 1, 10, 1},
		{10, 1, 10, 1},
		{11, 2, 10, 2},
		{100, 3, 7, 15},
	}
	for i, c := range cases {
		resp := NewPaginatedResponse([]int{}, c.total, c.page, c.limit)
		if resp.Meta.TotalPages != c.wantPages {
			t.Fatalf("case %d: total pages %d, want %d", i, resp.Meta.TotalPages, c.wantPages)
		}
		if resp.Meta.CurrentPage != c.page || resp.Meta.PageSize != c.limit {
			t.Fatalf("case %d: meta %+v", i, resp.Meta)
		}
	}
}

func TestNewPaginatedResponseZeroLimit(t *testing.T) {
	resp := NewPaginatedResponse([]string{"a"}, 1, 1, 0)
	if resp.Meta.TotalPages != 1 {
		t.Fatalf("zero limit: total pages %d, want 1", resp.Meta.TotalPages)
	}
}
