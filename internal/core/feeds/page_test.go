package feeds

import "testing"

func TestParsePageParam(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "missing", raw: "", want: 1},
		{name: "first page", raw: "1", want: 1},
		{name: "later page", raw: "7", want: 7},
		{name: "zero", raw: "0", want: 1},
		{name: "negative", raw: "-3", want: 1},
		{name: "non-numeric", raw: "abc", want: 1},
		{name: "float", raw: "2.5", want: 1},
		{name: "trailing garbage", raw: "2x", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePageParam(tt.raw); got != tt.want {
				t.Errorf("ParsePageParam(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		total int
		size  int
		want  int
	}{
		{name: "empty feed still has page 1", total: 0, size: 10, want: 1},
		{name: "partial page", total: 3, size: 10, want: 1},
		{name: "exact multiple", total: 20, size: 10, want: 2},
		{name: "one over a boundary", total: 21, size: 10, want: 3},
		{name: "thirteen posts", total: 13, size: 10, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := totalPages(tt.total, tt.size); got != tt.want {
				t.Errorf("totalPages(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.want)
			}
		})
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name   string
		number int
		pages  int
		want   int
	}{
		{name: "in range", number: 2, pages: 3, want: 2},
		{name: "past the end clamps to last", number: 3, pages: 2, want: 2},
		{name: "far past the end", number: 9999, pages: 2, want: 2},
		{name: "below range", number: 0, pages: 2, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampPage(tt.number, tt.pages); got != tt.want {
				t.Errorf("clampPage(%d, %d) = %d, want %d", tt.number, tt.pages, got, tt.want)
			}
		})
	}
}
