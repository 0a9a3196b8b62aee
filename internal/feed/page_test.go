package feed

import (
	"testing"
)

func TestParsePageNumber(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
	}{
		{"empty", "", 1},
		{"valid", "3", 3},
		{"one", "1", 1},
		{"zero", "0", 1},
		{"negative", "-2", 1},
		{"garbage", "abc", 1},
		{"float", "2.5", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePageNumber(tt.raw); got != tt.expected {
				t.Errorf("ParsePageNumber(%q) = %d, want %d", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name     string
		count    int64
		pageSize int
		expected int
	}{
		{"empty set has one page", 0, 10, 1},
		{"partial page", 3, 10, 1},
		{"exact fit", 10, 10, 1},
		{"one over", 11, 10, 2},
		{"thirteen posts", 13, 10, 2},
		{"many", 101, 10, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := totalPages(tt.count, tt.pageSize); got != tt.expected {
				t.Errorf("totalPages(%d, %d) = %d, want %d", tt.count, tt.pageSize, got, tt.expected)
			}
		})
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		total    int
		expected int
	}{
		{"in range", 2, 3, 2},
		{"below range", 0, 3, 1},
		{"above range clamps to last", 99, 3, 3},
		{"single page", 5, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampPage(tt.page, tt.total); got != tt.expected {
				t.Errorf("clampPage(%d, %d) = %d, want %d", tt.page, tt.total, got, tt.expected)
			}
		})
	}
}
