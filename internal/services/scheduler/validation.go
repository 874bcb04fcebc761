package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/onegreenvn/phishing-campaign-service/internal/models"
)

// RecurringParams are the raw recurring fields of a registration
type RecurringParams struct {
	DailyStartTime     string
	DailyEndTime       string
	RecurrenceInterval string
	StartDate          string
	EndDate            string
	TotalSends         string
}

// RecurringSchedule is the parsed, validated form of RecurringParams
type RecurringSchedule struct {
	StartDate          time.Time
	EndDate            time.Time
	DailyStart         models.TimeOfDay
	DailyEnd           models.TimeOfDay
	RecurrenceInterval int
	TotalSends         int
}

// RecurringSummary describes how the sends will be distributed
type RecurringSummary struct {
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date"`
	TotalDays          int    `json:"total_days"`
	TotalSends         int    `json:"total_sends"`
	BasePerDay         int    `json:"base_per_day"`
	ExtraDays          int    `json:"extra_days"`
	MaxPerDay          int    `json:"max_per_day"`
	DailyQuotas        []int  `json:"daily_quotas"`
	RecurrenceInterval int    `json:"recurrence_interval"`
	DailyStartTime     string `json:"daily_start_time"`
	DailyEndTime       string `json:"daily_end_time"`
	WindowMinutes      int    `json:"window_minutes"`
	MinutesNeeded      int    `json:"minutes_needed"`

	Schedule RecurringSchedule `json:"-"`
}

// ValidateRecurring checks the recurring parameters of a registration and
// returns the derived distribution. Errors are always *ValidationError.
func ValidateRecurring(p RecurringParams) (*RecurringSummary, error) {
	p = trimParams(p)

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"Daily Start Time", p.DailyStartTime},
		{"Daily End Time", p.DailyEndTime},
		{"Recurrence Interval", p.RecurrenceInterval},
		{"Start Date", p.StartDate},
		{"End Date", p.EndDate},
		{"Total Sends", p.TotalSends},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, missingFields(missing)
	}

	interval, ok := positiveInt(p.RecurrenceInterval)
	if !ok {
		return nil, invalid("Recurrence Interval must be a positive number.")
	}
	total, ok := positiveInt(p.TotalSends)
	if !ok {
		return nil, invalid("Total Sends must be a positive number.")
	}

	start, err := time.Parse(models.DateLayout, p.StartDate)
	if err != nil {
		return nil, invalid(fmt.Sprintf("Invalid Start Date %q. Please use YYYY-MM-DD format.", p.StartDate))
	}
	end, err := time.Parse(models.DateLayout, p.EndDate)
	if err != nil {
		return nil, invalid(fmt.Sprintf("Invalid End Date %q. Please use YYYY-MM-DD format.", p.EndDate))
	}
	if end.Before(start) {
		return nil, invalid("End Date cannot be before Start Date.")
	}

	plan, err := NewQuotaPlan(start, end, total)
	if err != nil {
		return nil, invalid("Campaign duration must be at least 1 day.")
	}

	dailyStart, err := models.ParseTimeOfDay(p.DailyStartTime)
	if err != nil {
		return nil, invalid(fmt.Sprintf("Invalid time format. Please use HH:MM format (e.g., 09:00). Error: %v", err))
	}
	dailyEnd, err := models.ParseTimeOfDay(p.DailyEndTime)
	if err != nil {
		return nil, invalid(fmt.Sprintf("Invalid time format. Please use HH:MM format (e.g., 09:00). Error: %v", err))
	}
	if dailyEnd <= dailyStart {
		return nil, invalid(fmt.Sprintf("Daily End Time (%s) must be after Daily Start Time (%s). Please check your time inputs.",
			p.DailyEndTime, p.DailyStartTime))
	}

	window := int(dailyEnd - dailyStart)
	if err := CheckCapacity(plan, window, interval); err != nil {
		return nil, err
	}

	return &RecurringSummary{
		StartDate:          start.Format(models.DateLayout),
		EndDate:            end.Format(models.DateLayout),
		TotalDays:          plan.TotalDays,
		TotalSends:         total,
		BasePerDay:         plan.Base,
		ExtraDays:          plan.Remainder,
		MaxPerDay:          plan.MaxDaily(),
		DailyQuotas:        plan.Quotas(),
		RecurrenceInterval: interval,
		DailyStartTime:     dailyStart.String(),
		DailyEndTime:       dailyEnd.String(),
		WindowMinutes:      window,
		MinutesNeeded:      minutesNeeded(plan, interval),
		Schedule: RecurringSchedule{
			StartDate:          start,
			EndDate:            end,
			DailyStart:         dailyStart,
			DailyEnd:           dailyEnd,
			RecurrenceInterval: interval,
			TotalSends:         total,
		},
	}, nil
}

// CheckCapacity fails when the busiest day cannot fit in the daily window:
// the first send lands on the window open and each later one an interval after.
func CheckCapacity(plan QuotaPlan, windowMinutes, interval int) error {
	needed := minutesNeeded(plan, interval)
	if needed <= windowMinutes {
		return nil
	}
	return invalid(fmt.Sprintf(
		"Invalid configuration: To send %d emails per day with %d minute intervals, you need %.1f hours, "+
			"but your time window is only %.1f hours. Please either: increase your daily time window, "+
			"decrease the recurrence interval, or reduce total sends.",
		plan.MaxDaily(), interval, float64(needed)/60, float64(windowMinutes)/60))
}

func minutesNeeded(plan QuotaPlan, interval int) int {
	return max(0, plan.MaxDaily()-1) * interval
}

func positiveInt(s string) (int, bool) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func trimParams(p RecurringParams) RecurringParams {
	return RecurringParams{
		DailyStartTime:     strings.TrimSpace(p.DailyStartTime),
		DailyEndTime:       strings.TrimSpace(p.DailyEndTime),
		RecurrenceInterval: strings.TrimSpace(p.RecurrenceInterval),
		StartDate:          strings.TrimSpace(p.StartDate),
		EndDate:            strings.TrimSpace(p.EndDate),
		TotalSends:         strings.TrimSpace(p.TotalSends),
	}
}
