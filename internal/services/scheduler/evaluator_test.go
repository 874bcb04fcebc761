package scheduler

import (
	"testing"
	"time"

	"github.com/onegreenvn/phishing-campaign-service/internal/models"
)

// newRecurring is an active campaign sending 10 runs over 2025-01-01..03,
// every 20 minutes between 09:00 and 10:00.
func newRecurring(id string) *models.Campaign {
	start, end := date("2025-01-01"), date("2025-01-03")
	return &models.Campaign{
		ID:                 id,
		CompanyName:        "Acme",
		Category:           models.CategoryBanking,
		IsRecurring:        true,
		IsActive:           true,
		RecurrenceInterval: 20,
		StartDate:          &start,
		EndDate:            &end,
		DailyStart:         models.TimeOfDay(9 * 60),
		DailyEnd:           models.TimeOfDay(10 * 60),
		TotalCampaignCount: 10,
	}
}

func ranAt(c *models.Campaign, runs int, t time.Time) {
	c.RunsExecuted = runs
	c.LastRunTime = &t
}

func TestEvaluateFirstRunAndInterval(t *testing.T) {
	c := newRecurring("c1")

	d := Evaluate(c, at("2025-01-01", 9, 0))
	if d.Outcome != Send {
		t.Fatalf("expected send at 09:00, got %s", d)
	}
	if d.DayIndex != 0 || d.TodayQuota != 3 {
		t.Errorf("expected day 0 with quota 3, got day %d quota %d", d.DayIndex, d.TodayQuota)
	}

	ranAt(c, 1, at("2025-01-01", 9, 0))

	if d := Evaluate(c, at("2025-01-01", 9, 15)); d.Outcome != Skip || d.Reason != ReasonInterval {
		t.Errorf("expected interval skip at 09:15, got %s", d)
	}
	if d := Evaluate(c, at("2025-01-01", 9, 20)); d.Outcome != Send {
		t.Errorf("expected send at 09:20, got %s", d)
	}
}

func TestEvaluateFirstSendOfDayNeedsExactStart(t *testing.T) {
	c := newRecurring("c1")

	for _, minute := range []int{1, 5, 20, 59} {
		if d := Evaluate(c, at("2025-01-01", 9, minute)); d.Outcome != Skip || d.Reason != ReasonAwaitStart {
			t.Errorf("09:%02d with no previous run: expected await start, got %s", minute, d)
		}
	}

	ranAt(c, 3, at("2025-01-01", 9, 40))
	if d := Evaluate(c, at("2025-01-02", 9, 20)); d.Outcome != Skip || d.Reason != ReasonAwaitStart {
		t.Errorf("first tick of a new day off the start: expected await start, got %s", d)
	}
	if d := Evaluate(c, at("2025-01-02", 9, 0)); d.Outcome != Send {
		t.Errorf("expected send at the start of day 1, got %s", d)
	}
}

func TestEvaluateSecondsWithinStartMinute(t *testing.T) {
	c := newRecurring("c1")
	if d := Evaluate(c, at("2025-01-01", 9, 0).Add(45*time.Second)); d.Outcome != Send {
		t.Errorf("expected send within the start minute, got %s", d)
	}
}

func TestEvaluateDailyQuota(t *testing.T) {
	c := newRecurring("c1")
	ranAt(c, 3, at("2025-01-01", 9, 40))

	d := Evaluate(c, at("2025-01-01", 9, 59))
	if d.Outcome != Skip || d.Reason != ReasonDailyQuota {
		t.Fatalf("expected daily quota skip, got %s", d)
	}
	if d.TodayQuota != 3 {
		t.Errorf("expected today's quota 3, got %d", d.TodayQuota)
	}
}

func TestEvaluateOutsideWindow(t *testing.T) {
	c := newRecurring("c1")
	for _, now := range []time.Time{at("2025-01-01", 8, 59), at("2025-01-01", 10, 0), at("2025-01-01", 23, 0)} {
		if d := Evaluate(c, now); d.Outcome != Skip || d.Reason != ReasonOutsideWindow {
			t.Errorf("%s: expected outside window, got %s", now.Format("15:04"), d)
		}
	}
}

func TestEvaluateBeforeStartDate(t *testing.T) {
	c := newRecurring("c1")
	if d := Evaluate(c, at("2024-12-31", 9, 0)); d.Outcome != Skip || d.Reason != ReasonNotStarted {
		t.Errorf("expected not started, got %s", d)
	}
}

func TestEvaluateTerminalConditions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *models.Campaign)
		now    time.Time
		want   Outcome
		reason string
	}{
		{
			name:   "inactive wins over everything",
			mutate: func(c *models.Campaign) { c.IsActive = false; c.RunsExecuted = 10 },
			now:    at("2025-02-01", 9, 0),
			want:   Deregister,
			reason: ReasonInactive,
		},
		{
			name:   "not recurring",
			mutate: func(c *models.Campaign) { c.IsRecurring = false },
			now:    at("2025-01-01", 9, 0),
			want:   Deactivate,
			reason: ReasonNotRecurring,
		},
		{
			name:   "missing end date",
			mutate: func(c *models.Campaign) { c.EndDate = nil },
			now:    at("2025-01-01", 9, 0),
			want:   Deactivate,
			reason: ReasonIncomplete,
		},
		{
			name:   "zero interval",
			mutate: func(c *models.Campaign) { c.RecurrenceInterval = 0 },
			now:    at("2025-01-01", 9, 0),
			want:   Deactivate,
			reason: ReasonIncomplete,
		},
		{
			name:   "past end date outside the window",
			mutate: func(c *models.Campaign) {},
			now:    at("2025-01-04", 23, 0),
			want:   Deactivate,
			reason: ReasonExpired,
		},
		{
			name:   "total reached outside the window",
			mutate: func(c *models.Campaign) { ranAt(c, 10, at("2025-01-03", 9, 40)) },
			now:    at("2025-01-03", 12, 0),
			want:   Deactivate,
			reason: ReasonQuotaReached,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newRecurring("c1")
			tt.mutate(c)
			d := Evaluate(c, tt.now)
			if d.Outcome != tt.want || d.Reason != tt.reason {
				t.Errorf("expected %s (%s), got %s", tt.want, tt.reason, d)
			}
			if !d.Outcome.Terminal() {
				t.Errorf("expected a terminal outcome, got %s", d.Outcome)
			}
		})
	}
}

func TestEvaluateEndDateIsInclusive(t *testing.T) {
	c := newRecurring("c1")
	ranAt(c, 6, at("2025-01-02", 9, 40))
	if d := Evaluate(c, at("2025-01-03", 9, 0)); d.Outcome != Send {
		t.Errorf("expected send on the end date, got %s", d)
	}
}

func TestEvaluateDoesNotMutate(t *testing.T) {
	c := newRecurring("c1")
	ranAt(c, 2, at("2025-01-01", 9, 20))
	before := *c

	Evaluate(c, at("2025-01-01", 9, 40))
	Evaluate(c, at("2025-02-01", 9, 0))

	if c.RunsExecuted != before.RunsExecuted || c.IsActive != before.IsActive || !c.LastRunTime.Equal(*before.LastRunTime) {
		t.Error("Evaluate changed the campaign")
	}
}
