package scheduler

import (
	"errors"
	"time"
)

// QuotaPlan spreads a total send count over an inclusive date range.
// The last Remainder days each get one extra send.
type QuotaPlan struct {
	TotalDays     int
	Base          int
	Remainder     int
	DaysWithExtra int
}

var errEmptyRange = errors.New("date range has no days")

// NewQuotaPlan builds the plan for [start, end] and total sends
func NewQuotaPlan(start, end time.Time, total int) (QuotaPlan, error) {
	days := daysBetween(start, end) + 1
	if days <= 0 {
		return QuotaPlan{}, errEmptyRange
	}
	if total < 0 {
		total = 0
	}
	base, rem := total/days, total%days
	return QuotaPlan{
		TotalDays:     days,
		Base:          base,
		Remainder:     rem,
		DaysWithExtra: days - rem,
	}, nil
}

// Quota returns the number of sends allotted to zero-based day d
func (p QuotaPlan) Quota(d int) int {
	if d >= p.DaysWithExtra {
		return p.Base + 1
	}
	return p.Base
}

// MaxDaily is the largest quota of any single day
func (p QuotaPlan) MaxDaily() int {
	if p.Remainder > 0 {
		return p.Base + 1
	}
	return p.Base
}

// RunsBefore is the cumulative quota of the days before d
func (p QuotaPlan) RunsBefore(d int) int {
	return d*p.Base + max(0, d-p.DaysWithExtra)
}

// RunsByEndOf is the cumulative quota up to and including day d
func (p QuotaPlan) RunsByEndOf(d int) int {
	return p.RunsBefore(d) + p.Quota(d)
}

// Quotas lists every day's quota in order
func (p QuotaPlan) Quotas() []int {
	out := make([]int, p.TotalDays)
	for d := range out {
		out[d] = p.Quota(d)
	}
	return out
}

// dateOf truncates t to its UTC calendar date
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole calendar days from a to b, negative when b is earlier
func daysBetween(a, b time.Time) int {
	return int(dateOf(b).Sub(dateOf(a)).Hours() / 24)
}
