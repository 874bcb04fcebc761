package scheduler

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/onegreenvn/phishing-campaign-service/internal/models"
)

// TimerRegistry holds one periodic timer per campaign id
type TimerRegistry interface {
	Schedule(id string, interval time.Duration, anchor models.TimeOfDay, fn func()) error
	Cancel(id string)
	Exists(id string) bool
	Entries() []TimerInfo
	Start()
	Stop()
}

// TimerInfo describes a registered timer
type TimerInfo struct {
	CampaignID string        `json:"campaign_id"`
	Interval   time.Duration `json:"interval"`
	NextRun    *time.Time    `json:"next_run,omitempty"`
}

// CronRegistry is a TimerRegistry backed by a cron driver. A job that is still
// running when its next fire comes due is skipped, so ticks of one campaign
// never overlap.
type CronRegistry struct {
	cron    *cron.Cron
	mu      sync.Mutex
	entries map[string]cronEntry
}

type cronEntry struct {
	id       cron.EntryID
	interval time.Duration
}

// NewCronRegistry creates a registry whose driver is not yet running
func NewCronRegistry() *CronRegistry {
	logger := cron.PrintfLogger(logrus.StandardLogger())
	return &CronRegistry{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
			cron.WithLogger(logger),
		),
		entries: make(map[string]cronEntry),
	}
}

// Schedule registers fn every interval on a grid anchored at anchor each day,
// replacing any timer under the same id
func (r *CronRegistry) Schedule(id string, interval time.Duration, anchor models.TimeOfDay, fn func()) error {
	if interval < time.Minute {
		return fmt.Errorf("timer interval %s is shorter than a minute", interval)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[id]; ok {
		r.cron.Remove(e.id)
	}
	entryID := r.cron.Schedule(AnchoredSchedule(interval, anchor), cron.FuncJob(fn))
	r.entries[id] = cronEntry{id: entryID, interval: interval}
	return nil
}

func (r *CronRegistry) Cancel(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[id]; ok {
		r.cron.Remove(e.id)
		delete(r.entries, id)
	}
}

func (r *CronRegistry) Exists(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[id]
	return ok
}

func (r *CronRegistry) Entries() []TimerInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]TimerInfo, 0, len(r.entries))
	for campaignID, e := range r.entries {
		info := TimerInfo{CampaignID: campaignID, Interval: e.interval}
		if next := r.cron.Entry(e.id).Next; !next.IsZero() {
			info.NextRun = &next
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CampaignID < out[j].CampaignID })
	return out
}

func (r *CronRegistry) Start() {
	r.cron.Start()
}

// Stop halts the driver and waits for running jobs to finish
func (r *CronRegistry) Stop() {
	<-r.cron.Stop().Done()
}

// anchoredSchedule fires at anchor, anchor+interval, anchor+2*interval, ...
// every day, restarting from anchor at the next day's anchor. Fire times fall
// on whole minutes, so the first tick of a day lands on the window open.
type anchoredSchedule struct {
	interval time.Duration
	anchor   time.Duration
}

// AnchoredSchedule returns a cron schedule on the daily grid of anchor and interval
func AnchoredSchedule(interval time.Duration, anchor models.TimeOfDay) cron.Schedule {
	if interval < time.Minute {
		interval = time.Minute
	}
	return anchoredSchedule{
		interval: interval.Truncate(time.Minute),
		anchor:   time.Duration(anchor) * time.Minute,
	}
}

func (s anchoredSchedule) Next(t time.Time) time.Time {
	t = t.UTC()
	today := dateOf(t).Add(s.anchor)
	if t.Before(today) {
		return today
	}
	steps := t.Sub(today)/s.interval + 1
	next := today.Add(steps * s.interval)
	if tomorrow := today.AddDate(0, 0, 1); next.After(tomorrow) {
		return tomorrow
	}
	return next
}
