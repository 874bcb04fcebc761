package utils

import "testing"

func TestPagination(t *testing.T) {
	page, size := ValidateAndNormalizePagination(0, 500)
	if page != 1 || size != 100 {
		t.Errorf("unexpected normalization: %d/%d", page, size)
	}
	if off := CalculateOffset(3, 20); off != 40 {
		t.Errorf("expected offset 40, got %d", off)
	}
	info := CalculatePaginationInfo(41, 3, 20)
	if info.TotalPages != 3 || info.HasNext || !info.HasPrevious {
		t.Errorf("unexpected info: %+v", info)
	}
}

func TestCalculatePaginationInfo(t *testing.T) {
	tests := []struct {
		name               string
		total, page, size  int
		wantPages          int
		wantNext, wantPrev bool
	}{
		{"empty", 0, 1, 20, 1, false, false},
		{"exact fit", 40, 1, 20, 2, true, false},
		{"partial last page", 41, 3, 20, 3, false, true},
		{"middle page", 100, 2, 10, 10, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := CalculatePaginationInfo(tt.total, tt.page, tt.size)
			if info.TotalPages != tt.wantPages || info.HasNext != tt.wantNext || info.HasPrevious != tt.wantPrev {
				t.Errorf("unexpected info: %+v", info)
			}
			if info.Total != tt.total || info.Page != tt.page || info.PageSize != tt.size {
				t.Errorf("metadata not echoed: %+v", info)
			}
		})
	}
}

func TestParsePaginationFromQuery(t *testing.T) {
	tests := []struct {
		page, size         string
		wantPage, wantSize int
	}{
		{"", "", 1, 20},
		{"3", "50", 3, 50},
		{"-1", "500", 1, 20},
		{"abc", "0", 1, 20},
	}
	for _, tt := range tests {
		page, size := ParsePaginationFromQuery(tt.page, tt.size)
		if page != tt.wantPage || size != tt.wantSize {
			t.Errorf("ParsePaginationFromQuery(%q, %q) = %d, %d", tt.page, tt.size, page, size)
		}
	}
}
