package scheduler

import (
	"fmt"
	"time"

	"github.com/onegreenvn/phishing-campaign-service/internal/models"
)

// Outcome is what a tick should do with a campaign
type Outcome int

const (
	// Skip leaves the campaign untouched until the next tick
	Skip Outcome = iota
	// Send dispatches the campaign and commits the run
	Send
	// Deregister drops the timer of an already inactive campaign
	Deregister
	// Deactivate persists is_active=false and drops the timer
	Deactivate
)

func (o Outcome) String() string {
	switch o {
	case Send:
		return "send"
	case Deregister:
		return "deregister"
	case Deactivate:
		return "deactivate"
	default:
		return "skip"
	}
}

// Terminal reports whether no further ticks should fire
func (o Outcome) Terminal() bool {
	return o == Deregister || o == Deactivate
}

// Reasons attached to a Decision
const (
	ReasonInactive      = "campaign is not active"
	ReasonNotRecurring  = "active campaign is not recurring"
	ReasonIncomplete    = "recurring schedule is incomplete"
	ReasonNotStarted    = "start date not reached"
	ReasonExpired       = "past end date"
	ReasonQuotaReached  = "total send count reached"
	ReasonOutsideWindow = "outside daily window"
	ReasonDailyQuota    = "daily quota reached"
	ReasonInterval      = "recurrence interval not elapsed"
	ReasonAwaitStart    = "waiting for daily start time"
	ReasonEligible      = "eligible"
)

// Decision is the result of evaluating one tick
type Decision struct {
	Outcome    Outcome
	Reason     string
	DayIndex   int
	TodayQuota int
}

func (d Decision) String() string {
	return fmt.Sprintf("%s (%s)", d.Outcome, d.Reason)
}

func skip(reason string) Decision { return Decision{Outcome: Skip, Reason: reason} }

// Evaluate decides what a tick at now does with c. The first failing check wins
// and nothing is mutated here.
func Evaluate(c *models.Campaign, now time.Time) Decision {
	now = now.UTC()

	if !c.IsActive {
		return Decision{Outcome: Deregister, Reason: ReasonInactive}
	}
	if !c.IsRecurring {
		return Decision{Outcome: Deactivate, Reason: ReasonNotRecurring}
	}
	if !scheduleComplete(c) {
		return Decision{Outcome: Deactivate, Reason: ReasonIncomplete}
	}

	day := daysBetween(*c.StartDate, now)
	if day < 0 {
		return skip(ReasonNotStarted)
	}
	if d, ok := checkTerminal(c, now); ok {
		return d
	}

	if !InWindow(now, c.DailyStart, c.DailyEnd) {
		return skip(ReasonOutsideWindow)
	}

	plan, _ := NewQuotaPlan(*c.StartDate, *c.EndDate, c.TotalCampaignCount)
	if c.RunsExecuted >= plan.RunsByEndOf(day) {
		d := skip(ReasonDailyQuota)
		d.DayIndex, d.TodayQuota = day, plan.Quota(day)
		return d
	}

	if c.LastRunTime != nil && daysBetween(*c.LastRunTime, now) == 0 {
		if now.Sub(c.LastRunTime.UTC()) < time.Duration(c.RecurrenceInterval)*time.Minute {
			return skip(ReasonInterval)
		}
	} else if models.TimeOfDayOf(now) != c.DailyStart {
		// first send of the day lands exactly on the window open
		return skip(ReasonAwaitStart)
	}

	return Decision{Outcome: Send, Reason: ReasonEligible, DayIndex: day, TodayQuota: plan.Quota(day)}
}

// checkTerminal reports the conditions under which an active campaign must be
// deactivated whatever the time of day. Restore and StartCampaign use it too.
func checkTerminal(c *models.Campaign, now time.Time) (Decision, bool) {
	if !scheduleComplete(c) {
		return Decision{Outcome: Deactivate, Reason: ReasonIncomplete}, true
	}
	if daysBetween(*c.EndDate, now) > 0 {
		return Decision{Outcome: Deactivate, Reason: ReasonExpired}, true
	}
	if c.RunsExecuted >= c.TotalCampaignCount {
		return Decision{Outcome: Deactivate, Reason: ReasonQuotaReached}, true
	}
	return Decision{}, false
}

func scheduleComplete(c *models.Campaign) bool {
	return c.StartDate != nil && c.EndDate != nil &&
		!c.EndDate.Before(*c.StartDate) &&
		c.RecurrenceInterval > 0 && c.TotalCampaignCount > 0 &&
		c.DailyStart.Valid() && c.DailyEnd.Valid() && c.DailyStart < c.DailyEnd
}
