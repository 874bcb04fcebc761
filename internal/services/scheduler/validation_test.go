package scheduler

import (
	"errors"
	"strings"
	"testing"
)

func validParams() RecurringParams {
	return RecurringParams{
		DailyStartTime:     "09:00",
		DailyEndTime:       "10:00",
		RecurrenceInterval: "20",
		StartDate:          "2025-01-01",
		EndDate:            "2025-01-01",
		TotalSends:         "4",
	}
}

func TestValidateRecurringAcceptsExactCapacity(t *testing.T) {
	summary, err := ValidateRecurring(validParams())
	if err != nil {
		t.Fatalf("expected the window boundary to be accepted, got %v", err)
	}
	if summary.MaxPerDay != 4 || summary.MinutesNeeded != 60 || summary.WindowMinutes != 60 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if summary.Schedule.DailyStart != 9*60 || summary.Schedule.DailyEnd != 10*60 {
		t.Errorf("unexpected parsed window: %v-%v", summary.Schedule.DailyStart, summary.Schedule.DailyEnd)
	}
}

func TestValidateRecurringRejectsOverCapacity(t *testing.T) {
	p := validParams()
	p.TotalSends = "5"

	_, err := ValidateRecurring(p)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected a ValidationError, got %v", err)
	}
	for _, part := range []string{"send 5 emails per day", "20 minute intervals", "1.3 hours", "only 1.0 hours"} {
		if !strings.Contains(ve.Reason, part) {
			t.Errorf("expected %q in %q", part, ve.Reason)
		}
	}
}

func TestValidateRecurringSummary(t *testing.T) {
	p := validParams()
	p.EndDate = "2025-01-03"
	p.TotalSends = "10"

	summary, err := ValidateRecurring(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalDays != 3 || summary.BasePerDay != 3 || summary.ExtraDays != 1 || summary.MaxPerDay != 4 {
		t.Errorf("unexpected distribution: %+v", summary)
	}
	want := []int{3, 3, 4}
	for i, q := range want {
		if summary.DailyQuotas[i] != q {
			t.Errorf("day %d: expected %d, got %d", i, q, summary.DailyQuotas[i])
		}
	}
}

func TestValidateRecurringMissingFields(t *testing.T) {
	p := validParams()
	p.StartDate = ""
	p.TotalSends = "  "

	_, err := ValidateRecurring(p)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected a ValidationError, got %v", err)
	}
	if len(ve.Missing) != 2 || ve.Missing[0] != "Start Date" || ve.Missing[1] != "Total Sends" {
		t.Errorf("unexpected missing fields: %v", ve.Missing)
	}
	if !strings.HasPrefix(ve.Reason, "Missing required fields") {
		t.Errorf("unexpected reason: %s", ve.Reason)
	}
}

func TestValidateRecurringRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *RecurringParams)
		want   string
	}{
		{"zero interval", func(p *RecurringParams) { p.RecurrenceInterval = "0" }, "Recurrence Interval must be a positive number"},
		{"negative interval", func(p *RecurringParams) { p.RecurrenceInterval = "-5" }, "Recurrence Interval must be a positive number"},
		{"text total", func(p *RecurringParams) { p.TotalSends = "ten" }, "Total Sends must be a positive number"},
		{"bad start date", func(p *RecurringParams) { p.StartDate = "01/01/2025" }, "Invalid Start Date"},
		{"bad end date", func(p *RecurringParams) { p.EndDate = "2025-13-01" }, "Invalid End Date"},
		{"end before start", func(p *RecurringParams) { p.StartDate = "2025-01-02" }, "End Date cannot be before Start Date"},
		{"bad time", func(p *RecurringParams) { p.DailyStartTime = "9am" }, "Invalid time format"},
		{"hour out of range", func(p *RecurringParams) { p.DailyEndTime = "24:00" }, "Invalid time format"},
		{"empty window", func(p *RecurringParams) { p.DailyEndTime = "09:00" }, "must be after Daily Start Time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			_, err := ValidateRecurring(p)
			if !IsValidationError(err) {
				t.Fatalf("expected a ValidationError, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in %q", tt.want, err.Error())
			}
		})
	}
}

func TestCheckCapacitySingleSendPerDay(t *testing.T) {
	plan, _ := NewQuotaPlan(date("2025-01-01"), date("2025-01-05"), 5)
	if err := CheckCapacity(plan, 1, 600); err != nil {
		t.Errorf("one send per day always fits, got %v", err)
	}
}
