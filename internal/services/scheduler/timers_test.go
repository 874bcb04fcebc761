package scheduler

import (
	"testing"
	"time"

	"github.com/onegreenvn/phishing-campaign-service/internal/models"
)

func TestAnchoredScheduleFiresOnDailyGrid(t *testing.T) {
	s := AnchoredSchedule(20*time.Minute, models.TimeOfDay(9*60))

	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{"before anchor", at("2025-01-01", 3, 17).Add(12 * time.Second), at("2025-01-01", 9, 0)},
		{"at anchor", at("2025-01-01", 9, 0), at("2025-01-01", 9, 20)},
		{"between ticks", at("2025-01-01", 9, 7), at("2025-01-01", 9, 20)},
		{"late evening", at("2025-01-01", 23, 50), at("2025-01-02", 0, 0)},
		{"after midnight", at("2025-01-02", 0, 10), at("2025-01-02", 9, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Next(tt.from); !got.Equal(tt.want) {
				t.Errorf("Next(%s) = %s, want %s", tt.from, got, tt.want)
			}
		})
	}
}

func TestAnchoredScheduleRestartsEachDay(t *testing.T) {
	// 7 hours does not divide a day; the grid must still come back to 09:00
	s := AnchoredSchedule(7*time.Hour, models.TimeOfDay(9*60))

	next := s.Next(at("2025-01-01", 23, 30))
	if !next.Equal(at("2025-01-02", 6, 0)) {
		t.Fatalf("expected 06:00, got %s", next)
	}
	next = s.Next(next)
	if !next.Equal(at("2025-01-02", 9, 0)) {
		t.Errorf("expected the next day's anchor, got %s", next)
	}
}

func TestCronRegistryLifecycle(t *testing.T) {
	r := NewCronRegistry()

	if err := r.Schedule("b", 20*time.Minute, models.TimeOfDay(9*60), func() {}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Schedule("a", 30*time.Minute, models.TimeOfDay(8*60), func() {}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Schedule("a", 45*time.Minute, models.TimeOfDay(8*60), func() {}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := r.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 timers, got %d", len(entries))
	}
	if entries[0].CampaignID != "a" || entries[0].Interval != 45*time.Minute {
		t.Errorf("expected the replaced timer first, got %+v", entries[0])
	}

	r.Cancel("a")
	r.Cancel("a")
	if r.Exists("a") || !r.Exists("b") {
		t.Error("unexpected timers after cancel")
	}

	if err := r.Schedule("c", 30*time.Second, 0, func() {}); err == nil {
		t.Error("expected sub-minute intervals to be rejected")
	}

	r.Start()
	r.Stop()
}
