package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/onegreenvn/phishing-campaign-service/internal/models"
	"github.com/onegreenvn/phishing-campaign-service/internal/services/dispatch"
)

// Mock store for testing
type mockStore struct {
	mu        sync.Mutex
	campaigns map[string]*models.Campaign
	listCalls int
	recordErr error
	getErr    error
	activeErr error
}

func newMockStore(campaigns ...*models.Campaign) *mockStore {
	s := &mockStore{campaigns: make(map[string]*models.Campaign)}
	for _, c := range campaigns {
		s.campaigns[c.ID] = c
	}
	return s
}

func (m *mockStore) GetByID(id string) (*models.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	c, ok := m.campaigns[id]
	if !ok {
		return nil, ErrCampaignNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockStore) ListActiveRecurring() ([]*models.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	var out []*models.Campaign
	for _, c := range m.campaigns {
		if c.IsActive && c.IsRecurring {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockStore) SetActive(id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.activeErr != nil {
		return m.activeErr
	}
	c, ok := m.campaigns[id]
	if !ok {
		return ErrCampaignNotFound
	}
	c.IsActive = active
	return nil
}

func (m *mockStore) RecordRun(id string, runs int, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recordErr != nil {
		return m.recordErr
	}
	c, ok := m.campaigns[id]
	if !ok {
		return ErrCampaignNotFound
	}
	c.RunsExecuted = runs
	c.LastRunTime = &at
	return nil
}

func (m *mockStore) get(id string) models.Campaign {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.campaigns[id]
}

type mockTimer struct {
	interval time.Duration
	anchor   models.TimeOfDay
	fn       func()
}

type mockTimers struct {
	timers  map[string]mockTimer
	started bool
	stopped bool
}

func newMockTimers() *mockTimers {
	return &mockTimers{timers: make(map[string]mockTimer)}
}

func (m *mockTimers) Schedule(id string, interval time.Duration, anchor models.TimeOfDay, fn func()) error {
	m.timers[id] = mockTimer{interval: interval, anchor: anchor, fn: fn}
	return nil
}

func (m *mockTimers) Cancel(id string)      { delete(m.timers, id) }
func (m *mockTimers) Exists(id string) bool { _, ok := m.timers[id]; return ok }
func (m *mockTimers) Start()                { m.started = true }
func (m *mockTimers) Stop()                 { m.stopped = true }

func (m *mockTimers) Entries() []TimerInfo {
	var out []TimerInfo
	for id, t := range m.timers {
		out = append(out, TimerInfo{CampaignID: id, Interval: t.interval})
	}
	return out
}

type mockClock struct{ now time.Time }

func (m *mockClock) Now() time.Time { return m.now }

type mockDispatcher struct {
	calls int
	err   error
}

func (m *mockDispatcher) DispatchCampaign(ctx context.Context, c *models.Campaign) (dispatch.Result, error) {
	m.calls++
	if m.err != nil {
		return dispatch.Result{}, m.err
	}
	return dispatch.Result{Success: 2, Failed: 1}, nil
}

type mockObserver struct{ events []models.RunEvent }

func (m *mockObserver) RunCommitted(ev models.RunEvent) { m.events = append(m.events, ev) }

type harness struct {
	store      *mockStore
	timers     *mockTimers
	clock      *mockClock
	dispatcher *mockDispatcher
	observer   *mockObserver
	sched      *Scheduler
}

func newHarness(t *testing.T, now time.Time, campaigns ...*models.Campaign) *harness {
	t.Helper()
	h := &harness{
		store:      newMockStore(campaigns...),
		timers:     newMockTimers(),
		clock:      &mockClock{now: now},
		dispatcher: &mockDispatcher{},
		observer:   &mockObserver{},
	}
	h.sched = New(h.store, h.dispatcher, h.timers, WithClock(h.clock), WithObserver(h.observer))
	return h
}

func (h *harness) restore(t *testing.T) RestoreStats {
	t.Helper()
	stats, err := h.sched.Restore()
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	return stats
}

func TestTickBeforeRestore(t *testing.T) {
	h := newHarness(t, at("2025-01-01", 9, 0), newRecurring("c1"))
	if _, err := h.sched.Tick("c1"); !errors.Is(err, ErrNotRestored) {
		t.Fatalf("expected ErrNotRestored, got %v", err)
	}
	if h.dispatcher.calls != 0 {
		t.Error("dispatched before restore")
	}
}

func TestRestoreDeactivatesFinishedCampaigns(t *testing.T) {
	live := newRecurring("live")
	expired := newRecurring("expired")
	exhausted := newRecurring("exhausted")
	ranAt(exhausted, 10, at("2025-01-02", 9, 40))
	stopped := newRecurring("stopped")
	stopped.IsActive = false

	h := newHarness(t, at("2025-01-04", 8, 0), live, expired, exhausted, stopped)
	end := date("2025-01-10")
	h.store.campaigns["live"].EndDate = &end

	stats := h.restore(t)
	if stats.Restored != 1 || stats.Deactivated != 2 || stats.Failed != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if !h.timers.Exists("live") {
		t.Error("expected a timer for the live campaign")
	}
	for _, id := range []string{"expired", "exhausted", "stopped"} {
		if h.timers.Exists(id) {
			t.Errorf("unexpected timer for %s", id)
		}
		if h.store.get(id).IsActive {
			t.Errorf("%s should be inactive", id)
		}
	}
	if h.timers.timers["live"].anchor != live.DailyStart || h.timers.timers["live"].interval != 20*time.Minute {
		t.Errorf("unexpected timer: %+v", h.timers.timers["live"])
	}

	again := h.restore(t)
	if again != stats || h.store.listCalls != 1 {
		t.Errorf("second restore should not reload campaigns (calls=%d)", h.store.listCalls)
	}
}

func TestStartRestoresBeforeTimers(t *testing.T) {
	h := newHarness(t, at("2025-01-01", 8, 0), newRecurring("c1"))
	h.sched.Start()
	if !h.timers.started || !h.timers.Exists("c1") {
		t.Fatal("expected restored timer and a running driver")
	}
	h.sched.Stop()
	if !h.timers.stopped {
		t.Error("expected the driver to be stopped")
	}
}

func TestStartCampaign(t *testing.T) {
	c := newRecurring("c1")
	c.IsActive = false
	h := newHarness(t, at("2025-01-01", 8, 0), c)

	if err := h.sched.StartCampaign("c1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !h.store.get("c1").IsActive || !h.timers.Exists("c1") {
		t.Fatal("expected an active campaign with a timer")
	}
	if err := h.sched.StartCampaign("c1"); !errors.Is(err, ErrAlreadyActive) {
		t.Errorf("expected ErrAlreadyActive, got %v", err)
	}
}

func TestStartCampaignRejections(t *testing.T) {
	oneTime := newRecurring("one-time")
	oneTime.IsRecurring = false
	oneTime.IsActive = false

	finished := newRecurring("finished")
	finished.IsActive = false
	ranAt(finished, 10, at("2025-01-03", 9, 40))

	expiredActive := newRecurring("expired")

	h := newHarness(t, at("2025-01-05", 8, 0), oneTime, finished, expiredActive)

	if err := h.sched.StartCampaign("missing"); !errors.Is(err, ErrCampaignNotFound) {
		t.Errorf("expected ErrCampaignNotFound, got %v", err)
	}
	if err := h.sched.StartCampaign("one-time"); !errors.Is(err, ErrNotRecurring) {
		t.Errorf("expected ErrNotRecurring, got %v", err)
	}
	if err := h.sched.StartCampaign("finished"); !errors.Is(err, ErrCampaignFinished) {
		t.Errorf("expected ErrCampaignFinished, got %v", err)
	}
	if err := h.sched.StartCampaign("expired"); !errors.Is(err, ErrCampaignFinished) {
		t.Errorf("expected ErrCampaignFinished, got %v", err)
	}
	if h.store.get("expired").IsActive {
		t.Error("an expired campaign found active should be deactivated")
	}
	if len(h.timers.timers) != 0 {
		t.Errorf("expected no timers, got %d", len(h.timers.timers))
	}
}

func TestStartCampaignReRegistersLostTimer(t *testing.T) {
	h := newHarness(t, at("2025-01-01", 8, 0), newRecurring("c1"))
	if err := h.sched.StartCampaign("c1"); err != nil {
		t.Fatalf("expected an active campaign without a timer to be registered, got %v", err)
	}
	if !h.timers.Exists("c1") {
		t.Error("expected a timer")
	}
}

func TestStopCampaignIsIdempotent(t *testing.T) {
	h := newHarness(t, at("2025-01-01", 8, 0), newRecurring("c1"))
	h.restore(t)

	for i := 0; i < 2; i++ {
		if err := h.sched.StopCampaign("c1"); err != nil {
			t.Fatalf("stop %d: unexpected error: %v", i+1, err)
		}
	}
	if h.store.get("c1").IsActive || h.timers.Exists("c1") {
		t.Error("expected an inactive campaign without a timer")
	}
	if err := h.sched.StopCampaign("missing"); !errors.Is(err, ErrCampaignNotFound) {
		t.Errorf("expected ErrCampaignNotFound, got %v", err)
	}
}

func TestStopCampaignStoreFailureKeepsTimer(t *testing.T) {
	h := newHarness(t, at("2025-01-01", 8, 0), newRecurring("c1"))
	h.restore(t)
	h.store.activeErr = errors.New("db down")

	if err := h.sched.StopCampaign("c1"); err == nil {
		t.Fatal("expected an error")
	}
	if !h.store.get("c1").IsActive || !h.timers.Exists("c1") {
		t.Fatal("a failed stop must leave the campaign active with its timer")
	}

	h.store.activeErr = nil
	if err := h.sched.StopCampaign("c1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.store.get("c1").IsActive || h.timers.Exists("c1") {
		t.Error("expected an inactive campaign without a timer")
	}
}

func TestTickSendsAndCommits(t *testing.T) {
	h := newHarness(t, at("2025-01-01", 9, 0).Add(700*time.Millisecond), newRecurring("c1"))
	h.restore(t)

	d, err := h.sched.Tick("c1")
	if err != nil || d.Outcome != Send {
		t.Fatalf("expected a send, got %s, %v", d, err)
	}
	got := h.store.get("c1")
	if got.RunsExecuted != 1 || !got.LastRunTime.Equal(at("2025-01-01", 9, 0)) {
		t.Fatalf("unexpected commit: runs=%d last=%v", got.RunsExecuted, got.LastRunTime)
	}
	if len(h.observer.events) != 1 {
		t.Fatalf("expected one run event, got %d", len(h.observer.events))
	}
	ev := h.observer.events[0]
	if ev.RunNumber != 1 || ev.Trigger != models.RunTriggerScheduled || ev.SuccessCount != 2 || ev.FailureCount != 1 {
		t.Errorf("unexpected event: %+v", ev)
	}

	h.clock.now = at("2025-01-01", 9, 15)
	if d, _ := h.sched.Tick("c1"); d.Outcome != Skip {
		t.Errorf("expected skip at 09:15, got %s", d)
	}

	// the first run committed at 09:00 sharp, so sub-second drift cannot shorten the interval
	h.clock.now = at("2025-01-01", 9, 20).Add(20 * time.Millisecond)
	if d, _ := h.sched.Tick("c1"); d.Outcome != Send {
		t.Errorf("expected send at 09:20, got %s", d)
	}
	if h.store.get("c1").RunsExecuted != 2 || h.dispatcher.calls != 2 {
		t.Errorf("expected two runs, got %d", h.store.get("c1").RunsExecuted)
	}
}

func TestTickDispatchErrorDoesNotCommit(t *testing.T) {
	h := newHarness(t, at("2025-01-01", 9, 0), newRecurring("c1"))
	h.restore(t)
	h.dispatcher.err = errors.New("recipient list unreadable")

	if _, err := h.sched.Tick("c1"); err == nil {
		t.Fatal("expected an error")
	}
	if got := h.store.get("c1"); got.RunsExecuted != 0 || got.LastRunTime != nil {
		t.Error("a failed dispatch must not be committed")
	}
	if !h.timers.Exists("c1") || len(h.observer.events) != 0 {
		t.Error("expected the timer kept and no event")
	}
}

func TestTickCommitFailureKeepsTimer(t *testing.T) {
	h := newHarness(t, at("2025-01-01", 9, 0), newRecurring("c1"))
	h.restore(t)
	h.store.recordErr = errors.New("connection refused")

	if _, err := h.sched.Tick("c1"); err == nil {
		t.Fatal("expected an error")
	}
	if !h.timers.Exists("c1") {
		t.Error("a store failure should keep the timer")
	}
	if len(h.observer.events) != 0 {
		t.Error("an uncommitted run must not be published")
	}
}

func TestTickStoreUnreachable(t *testing.T) {
	h := newHarness(t, at("2025-01-01", 9, 0), newRecurring("c1"))
	h.restore(t)
	h.store.getErr = errors.New("connection refused")

	if _, err := h.sched.Tick("c1"); err == nil {
		t.Fatal("expected an error")
	}
	if !h.timers.Exists("c1") || h.dispatcher.calls != 0 {
		t.Error("expected the tick to be aborted with the timer kept")
	}
}

func TestTickDeactivatesAndStaysTerminal(t *testing.T) {
	c := newRecurring("c1")
	ranAt(c, 9, at("2025-01-03", 9, 20))
	h := newHarness(t, at("2025-01-03", 9, 40), c)
	h.restore(t)

	if d, _ := h.sched.Tick("c1"); d.Outcome != Send {
		t.Fatalf("expected the last send, got %s", d)
	}

	h.clock.now = at("2025-01-03", 10, 0)
	d, err := h.sched.Tick("c1")
	if err != nil || d.Outcome != Deactivate || d.Reason != ReasonQuotaReached {
		t.Fatalf("expected deactivation, got %s, %v", d, err)
	}
	if h.store.get("c1").IsActive || h.timers.Exists("c1") {
		t.Fatal("expected an inactive campaign without a timer")
	}

	for _, now := range []time.Time{at("2025-01-04", 9, 0), at("2025-01-05", 9, 0)} {
		h.clock.now = now
		if d, _ := h.sched.Tick("c1"); d.Outcome != Deregister {
			t.Errorf("expected deregister, got %s", d)
		}
	}
	if got := h.store.get("c1"); got.RunsExecuted != 10 || got.IsActive {
		t.Errorf("terminal campaign changed: runs=%d active=%v", got.RunsExecuted, got.IsActive)
	}
}

func TestTickMissingCampaignDropsTimer(t *testing.T) {
	h := newHarness(t, at("2025-01-01", 9, 0), newRecurring("c1"))
	h.restore(t)
	delete(h.store.campaigns, "c1")

	d, err := h.sched.Tick("c1")
	if err != nil || d.Outcome != Deregister {
		t.Fatalf("expected deregister, got %s, %v", d, err)
	}
	if h.timers.Exists("c1") {
		t.Error("expected the timer to be dropped")
	}
}

func TestSchedulerFollowsDailyQuotas(t *testing.T) {
	c := newRecurring("c1")
	c.TotalCampaignCount = 9
	h := newHarness(t, at("2024-12-31", 0, 0), c)
	h.restore(t)

	schedule := AnchoredSchedule(20*time.Minute, c.DailyStart)
	perDay := map[string]int{}
	for now := h.clock.now; now.Before(at("2025-01-05", 0, 0)); now = schedule.Next(now) {
		h.clock.now = now
		d, err := h.sched.Tick("c1")
		if err != nil {
			t.Fatalf("%s: %v", now, err)
		}
		if d.Outcome == Send {
			perDay[now.Format("2006-01-02")]++
		}
	}

	for _, day := range []string{"2025-01-01", "2025-01-02", "2025-01-03"} {
		if perDay[day] != 3 {
			t.Errorf("%s: expected 3 sends, got %d", day, perDay[day])
		}
	}
	if got := h.store.get("c1"); got.RunsExecuted != 9 || got.IsActive {
		t.Errorf("expected 9 runs and a finished campaign, got runs=%d active=%v", got.RunsExecuted, got.IsActive)
	}
}
