package page

import (
	"math"
	"testing"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{12, 5, 3},
		{15, 5, 3},
		{16, 5, 4},
		{3, 0, 0},
	}
	for _, tc := range tests {
		if got := TotalPages(tc.total, tc.size); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.size, got, tc.want)
		}
	}
}

func TestSlice_Properties(t *testing.T) {
	for total := 0; total <= 23; total++ {
		items := seq(total)
		pages := TotalPages(total, DefaultSize)
		if (pages == 0) != (total == 0) {
			t.Fatalf("total=%d: pages=%d", total, pages)
		}
		seen := 0
		for n := -2; n <= pages+2; n++ {
			got := Slice(items, NewRequest(n, DefaultSize))
			if len(got) > DefaultSize {
				t.Fatalf("total=%d page=%d: len %d > page size", total, n, len(got))
			}
			if n < 1 || n > pages {
				if len(got) != 0 {
					t.Fatalf("total=%d page=%d: out-of-range page returned %v", total, n, got)
				}
				continue
			}
			if len(got) == 0 {
				t.Fatalf("total=%d page=%d: in-range page is empty", total, n)
			}
			if got[0] != (n-1)*DefaultSize+1 {
				t.Fatalf("total=%d page=%d: first item %d", total, n, got[0])
			}
			seen += len(got)
		}
		if seen != total {
			t.Fatalf("total=%d: pages covered %d items", total, seen)
		}
	}
}

func TestSlice_TwelveRecordsPageThree(t *testing.T) {
	got := Slice(seq(12), NewRequest(3, 5))
	if len(got) != 2 || got[0] != 11 || got[1] != 12 {
		t.Fatalf("page 3 = %v, want [11 12]", got)
	}
	if TotalPages(12, 5) != 3 {
		t.Fatalf("TotalPages(12, 5) = %d, want 3", TotalPages(12, 5))
	}
}

func TestSlice_HugePageNumber(t *testing.T) {
	got := Slice(seq(12), NewRequest(math.MaxInt, 5))
	if len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
	got = Slice(seq(12), NewRequest(math.MinInt, 5))
	if len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
}

func TestSlice_DoesNotAlias(t *testing.T) {
	items := seq(10)
	got := Slice(items, NewRequest(1, 5))
	got[0] = 99
	if items[0] != 1 {
		t.Fatal("Slice must copy the page window")
	}
}

func TestNewRequest_DefaultSize(t *testing.T) {
	r := NewRequest(2, 0)
	if r.Size != DefaultSize || r.Number != 2 {
		t.Errorf("NewRequest(2, 0) = %+v", r)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 1},
		{"  ", 1},
		{"abc", 1},
		{"2.5", 1},
		{"3", 3},
		{" 4 ", 4},
		{"0", 0},
		{"-2", -2},
	}
	for _, tc := range tests {
		if got := ParseNumber(tc.in); got != tc.want {
			t.Errorf("ParseNumber(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestBoundsAndOffset(t *testing.T) {
	r := NewRequest(3, 5)
	start, end := r.Bounds(12)
	if start != 10 || end != 12 {
		t.Errorf("Bounds = [%d, %d), want [10, 12)", start, end)
	}
	if r.Offset() != 10 {
		t.Errorf("Offset = %d, want 10", r.Offset())
	}
	if NewRequest(-1, 5).Offset() != 0 {
		t.Error("negative page offset must be 0")
	}
	if NewRequest(4, 5).InRange(12) {
		t.Error("page 4 of 12 items must be out of range")
	}
}

func TestResult_Navigation(t *testing.T) {
	p := NewResult([]int{11, 12}, NewRequest(3, 5), 12)
	if p.TotalPages != 3 || p.TotalCount != 12 || p.CurrentPage != 3 || p.PageSize != 5 {
		t.Fatalf("unexpected result: %+v", p)
	}
	if p.HasNext() {
		t.Error("last page must not have next")
	}
	if !p.HasPrev() || p.PrevPage() != 2 {
		t.Errorf("HasPrev=%v PrevPage=%d", p.HasPrev(), p.PrevPage())
	}
	if got := p.Pages(); len(got) != 3 || got[2] != 3 {
		t.Errorf("Pages = %v", got)
	}

	empty := NewResult[int](nil, NewRequest(1, 5), 0)
	if empty.Items == nil || len(empty.Items) != 0 {
		t.Error("nil items must become an empty slice")
	}
	if empty.HasNext() || empty.HasPrev() || len(empty.Pages()) != 0 {
		t.Errorf("empty result navigation: %+v", empty)
	}
	if empty.PrevPage() != 1 {
		t.Errorf("PrevPage = %d, want 1", empty.PrevPage())
	}
}
