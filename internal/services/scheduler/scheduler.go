package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"

	"github.com/onegreenvn/phishing-campaign-service/internal/models"
	"github.com/onegreenvn/phishing-campaign-service/internal/services/dispatch"
)

// Store is the persistence the scheduler needs. Writes are scoped to the
// columns the scheduler owns so a stop racing a tick is never undone.
type Store interface {
	GetByID(id string) (*models.Campaign, error)
	ListActiveRecurring() ([]*models.Campaign, error)
	SetActive(id string, active bool) error
	RecordRun(id string, runsExecuted int, at time.Time) error
}

// Dispatcher sends a campaign to its whole recipient list. An error means the
// batch could not be started at all; per-recipient failures are only counted.
type Dispatcher interface {
	DispatchCampaign(ctx context.Context, c *models.Campaign) (dispatch.Result, error)
}

// RunObserver is told about every committed run
type RunObserver interface {
	RunCommitted(event models.RunEvent)
}

// RestoreStats summarizes a restore pass
type RestoreStats struct {
	Restored    int `json:"restored"`
	Deactivated int `json:"deactivated"`
	Failed      int `json:"failed"`
}

// Scheduler drives recurring campaigns: one timer per active campaign, an
// eligibility decision per tick and the run counters committed after dispatch.
type Scheduler struct {
	store      Store
	dispatcher Dispatcher
	timers     TimerRegistry
	clock      Clock
	observers  []RunObserver

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	restoreOnce  sync.Once
	restoreStats RestoreStats
	restoreErr   error
	restored     atomic.Bool
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithClock replaces the system clock
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithObserver adds a RunObserver
func WithObserver(o RunObserver) Option {
	return func(s *Scheduler) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// New creates a scheduler. Call Start once at process start.
func New(store Store, dispatcher Dispatcher, timers TimerRegistry, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:      store,
		dispatcher: dispatcher,
		timers:     timers,
		clock:      SystemClock{},
		locks:      make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start restores active campaigns and then starts the timer driver, so no tick
// can fire before restore has finished.
func (s *Scheduler) Start() {
	stats, err := s.Restore()
	if err != nil {
		logrus.Errorf("Scheduler restore failed: %v", err)
	} else {
		logrus.Infof("Scheduler restored %d campaign(s), deactivated %d, failed %d",
			stats.Restored, stats.Deactivated, stats.Failed)
	}
	s.timers.Start()
	logrus.Info("Campaign scheduler started")
}

// Stop halts the timer driver and waits for in-flight ticks
func (s *Scheduler) Stop() {
	s.timers.Stop()
	logrus.Info("Campaign scheduler stopped")
}

// Restore re-registers timers for campaigns left active by a previous process.
// Campaigns that expired or used up their quota while the process was down are
// deactivated instead. Only the first call does any work.
func (s *Scheduler) Restore() (RestoreStats, error) {
	s.restoreOnce.Do(func() {
		s.restoreStats, s.restoreErr = s.restore()
		s.restored.Store(true)
	})
	return s.restoreStats, s.restoreErr
}

func (s *Scheduler) restore() (RestoreStats, error) {
	var stats RestoreStats

	campaigns, err := s.store.ListActiveRecurring()
	if err != nil {
		return stats, fmt.Errorf("failed to list active campaigns: %w", err)
	}
	if len(campaigns) == 0 {
		logrus.Info("No active recurring campaigns to restore")
		return stats, nil
	}

	now := s.clock.Now().UTC()
	for _, c := range campaigns {
		log := logrus.WithField("campaign_id", c.ID)

		if d, stop := checkTerminal(c, now); stop {
			if err := s.store.SetActive(c.ID, false); err != nil {
				log.Errorf("Failed to deactivate campaign on restore: %v", err)
				stats.Failed++
				continue
			}
			log.Warnf("Campaign deactivated on restore: %s", d.Reason)
			stats.Deactivated++
			continue
		}

		if err := s.register(c); err != nil {
			log.Errorf("Failed to restore campaign timer: %v", err)
			stats.Failed++
			continue
		}
		log.Infof("Restored campaign with %d minute interval", c.RecurrenceInterval)
		stats.Restored++
	}
	return stats, nil
}

// StartCampaign activates a recurring campaign and registers its timer
func (s *Scheduler) StartCampaign(id string) error {
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	c, err := s.load(id)
	if err != nil {
		return err
	}
	if !c.IsRecurring {
		return ErrNotRecurring
	}
	if c.IsActive {
		if s.timers.Exists(id) {
			return ErrAlreadyActive
		}
		logrus.WithField("campaign_id", id).Warn("Active campaign had no timer, registering it again")
	}

	if d, stop := checkTerminal(c, s.clock.Now()); stop {
		if c.IsActive {
			if err := s.store.SetActive(id, false); err != nil {
				return fmt.Errorf("failed to deactivate campaign: %w", err)
			}
		}
		return fmt.Errorf("%w: %s", ErrCampaignFinished, d.Reason)
	}

	if err := s.register(c); err != nil {
		return err
	}
	if err := s.store.SetActive(id, true); err != nil {
		s.timers.Cancel(id)
		return fmt.Errorf("failed to activate campaign: %w", err)
	}

	logrus.WithField("campaign_id", id).Infof("Recurring campaign started, ticking every %d minutes", c.RecurrenceInterval)
	return nil
}

// StopCampaign deactivates the campaign and then drops its timer. Stopping an
// inactive campaign is a no-op. An in-flight dispatch runs to completion.
func (s *Scheduler) StopCampaign(id string) error {
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	// the timer stays registered until is_active=false is stored
	if err := s.store.SetActive(id, false); err != nil {
		if errors.Is(err, ErrCampaignNotFound) {
			return ErrCampaignNotFound
		}
		return fmt.Errorf("failed to deactivate campaign: %w", err)
	}
	s.timers.Cancel(id)

	logrus.WithField("campaign_id", id).Info("Recurring campaign stopped")
	return nil
}

// Tick evaluates one campaign at the current time and acts on the decision.
// Ticks of the same campaign are serialized.
func (s *Scheduler) Tick(id string) (Decision, error) {
	if !s.restored.Load() {
		return Decision{}, ErrNotRestored
	}

	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	log := logrus.WithField("campaign_id", id)

	c, err := s.store.GetByID(id)
	if errors.Is(err, ErrCampaignNotFound) {
		log.Warn("Campaign no longer exists, dropping its timer")
		s.timers.Cancel(id)
		return Decision{Outcome: Deregister, Reason: ErrCampaignNotFound.Error()}, nil
	}
	if err != nil {
		return Decision{}, s.fail(log, fmt.Errorf("failed to load campaign: %w", err))
	}

	// minute precision keeps cron jitter out of the interval check
	now := s.clock.Now().UTC().Truncate(time.Minute)
	d := Evaluate(c, now)

	switch d.Outcome {
	case Skip:
		log.Debugf("Tick skipped: %s", d.Reason)
		return d, nil
	case Deregister:
		s.timers.Cancel(id)
		log.Infof("Timer dropped: %s", d.Reason)
		return d, nil
	case Deactivate:
		if err := s.store.SetActive(id, false); err != nil {
			return d, s.fail(log, fmt.Errorf("failed to deactivate campaign: %w", err))
		}
		s.timers.Cancel(id)
		log.Infof("Campaign deactivated: %s", d.Reason)
		return d, nil
	}

	log.Infof("Dispatching run %d/%d (day %d, quota %d)",
		c.RunsExecuted+1, c.TotalCampaignCount, d.DayIndex+1, d.TodayQuota)

	result, err := s.dispatcher.DispatchCampaign(context.Background(), c)
	if err != nil {
		return d, s.fail(log, fmt.Errorf("dispatch aborted: %w", err))
	}

	runs := c.RunsExecuted + 1
	if err := s.store.RecordRun(id, runs, now); err != nil {
		// recipients already got this run; the next eligible tick may send it again
		log.WithFields(logrus.Fields{"sent": result.Success, "failed": result.Failed}).
			Error("Run sent but not committed, a duplicate send is possible")
		return d, s.fail(log, fmt.Errorf("failed to commit run: %w", err))
	}

	log.Infof("Run %d committed. Sent: %d, Failed: %d", runs, result.Success, result.Failed)
	s.notify(models.RunEvent{
		CampaignID:   id,
		Trigger:      models.RunTriggerScheduled,
		RunNumber:    runs,
		ExecutedAt:   now,
		SuccessCount: result.Success,
		FailureCount: result.Failed,
	})
	return d, nil
}

// Jobs lists the registered timers
func (s *Scheduler) Jobs() []TimerInfo {
	return s.timers.Entries()
}

// IsScheduled reports whether a timer is registered for id
func (s *Scheduler) IsScheduled(id string) bool {
	return s.timers.Exists(id)
}

func (s *Scheduler) register(c *models.Campaign) error {
	id := c.ID
	interval := time.Duration(c.RecurrenceInterval) * time.Minute
	return s.timers.Schedule(id, interval, c.DailyStart, func() {
		if _, err := s.Tick(id); err != nil {
			logrus.WithField("campaign_id", id).Errorf("Tick failed: %v", err)
		}
	})
}

func (s *Scheduler) load(id string) (*models.Campaign, error) {
	c, err := s.store.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrCampaignNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	return c, nil
}

func (s *Scheduler) lockFor(id string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	mu, ok := s.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[id] = mu
	}
	return mu
}

func (s *Scheduler) fail(log *logrus.Entry, err error) error {
	log.Error(err)
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("component", "scheduler")
		if id, ok := log.Data["campaign_id"].(string); ok {
			scope.SetTag("campaign_id", id)
		}
		sentry.CaptureException(err)
	})
	return err
}

func (s *Scheduler) notify(ev models.RunEvent) {
	for _, o := range s.observers {
		o.RunCommitted(ev)
	}
}
