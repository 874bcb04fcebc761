package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"09:00", 540, false},
		{"9:05", 545, false},
		{" 23:59 ", 1439, false},
		{"00:00", 0, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12:5", 0, true},
		{"1200", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTimeOfDay(%q): expected error=%v, got %v", tt.in, tt.wantErr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTimeOfDayOfTruncatesSeconds(t *testing.T) {
	at := time.Date(2025, 1, 1, 9, 0, 59, 999, time.UTC)
	if got := TimeOfDayOf(at); got != 540 || got.String() != "09:00" {
		t.Errorf("unexpected time of day %v", got)
	}
}

func TestTimeOfDayJSON(t *testing.T) {
	var v struct {
		Start TimeOfDay `json:"start"`
	}
	if err := json.Unmarshal([]byte(`{"start":"07:30"}`), &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, _ := json.Marshal(v)
	if string(out) != `{"start":"07:30"}` {
		t.Errorf("unexpected JSON %s", out)
	}
	if err := json.Unmarshal([]byte(`{"start":450}`), &v); err == nil {
		t.Error("expected numbers to be rejected")
	}
}
