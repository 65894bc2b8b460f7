package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"osint-pivot/internal/events"
	"osint-pivot/internal/logger"
	"osint-pivot/internal/metrics"
	"osint-pivot/internal/models"
	"osint-pivot/internal/repository"
)

// fakeScheduler is a manual clock. Tasks run only inside Advance.
type fakeScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*fakeTask
}

type fakeTask struct {
	s       *fakeScheduler
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{}
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &fakeTask{s: s, at: s.now + d, seq: s.seq, f: f}
	s.tasks = append(s.tasks, t)
	return t
}

func (t *fakeTask) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Pending counts tasks that are armed and not yet run
func (s *fakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves the clock forward, running due tasks in time order
func (s *fakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		var next *fakeTask
		for _, t := range s.tasks {
			if t.stopped || t.fired || t.at > target {
				continue
			}
			if next == nil || t.at < next.at || (t.at == next.at && t.seq < next.seq) {
				next = t
			}
		}
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		next.fired = true
		s.now = next.at
		s.mu.Unlock()

		next.f()
	}
}

// fakeTabs records tab and group calls
type fakeTabs struct {
	mu        sync.Mutex
	fail      bool
	opened    []string
	groups    map[string][]string
	titles    map[string]string
	collapsed map[string]bool
}

func newFakeTabs() *fakeTabs {
	return &fakeTabs{
		groups:    make(map[string][]string),
		titles:    make(map[string]string),
		collapsed: make(map[string]bool),
	}
}

func (f *fakeTabs) OpenTab(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return "", errors.New("tab create failed")
	}
	f.opened = append(f.opened, url)
	return fmt.Sprintf("tab-%d", len(f.opened)), nil
}

func (f *fakeTabs) GroupTabs(ctx context.Context, groupID, tabID, title string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if groupID == "" {
		groupID = fmt.Sprintf("group-%d", len(f.groups)+1)
		f.titles[groupID] = title
	}
	f.groups[groupID] = append(f.groups[groupID], tabID)
	return groupID, nil
}

func (f *fakeTabs) CollapseGroup(ctx context.Context, groupID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.collapsed[groupID] = true
	return nil
}

func (f *fakeTabs) setFail(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = fail
}

func (f *fakeTabs) Opened() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.opened...)
}

// blockingTabs holds every OpenTab until release is closed or ctx ends
type blockingTabs struct {
	*fakeTabs
	entered chan string
	release chan struct{}
}

func newBlockingTabs() *blockingTabs {
	return &blockingTabs{
		fakeTabs: newFakeTabs(),
		entered:  make(chan string, 16),
		release:  make(chan struct{}),
	}
}

func (b *blockingTabs) OpenTab(ctx context.Context, url string) (string, error) {
	b.entered <- url
	select {
	case <-b.release:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return b.fakeTabs.OpenTab(ctx, url)
}

// fakePublisher records every published event
type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *fakePublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) Count(eventType string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

func (p *fakePublisher) LastJobs() map[string]models.JobSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.events) - 1; i >= 0; i-- {
		if u, ok := p.events[i].Data.(models.Update); ok && u.Action == models.ActionOTXUpdate {
			return u.Jobs
		}
	}
	return nil
}

// memRepository is an in-memory SettingsRepository
type memRepository struct {
	mu      sync.Mutex
	data    map[string]string
	setErr  error
	getErr  error
	setKeys []string
}

func newMemRepository() *memRepository {
	return &memRepository{data: make(map[string]string)}
}

func (m *memRepository) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return "", repository.ErrKeyNotFound
	}
	return v, nil
}

func (m *memRepository) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.setKeys = append(m.setKeys, key)
	return nil
}

func (m *memRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memRepository) Close() error { return nil }

type jobFixture struct {
	svc       *JobService
	tabs      *fakeTabs
	publisher *fakePublisher
	scheduler *fakeScheduler
	metrics   *metrics.Metrics
}

func newJobFixture() *jobFixture {
	f := &jobFixture{
		tabs:      newFakeTabs(),
		publisher: &fakePublisher{},
		scheduler: newFakeScheduler(),
		metrics:   metrics.NewMetrics(),
	}
	f.svc = NewJobService(f.tabs, f.publisher, f.scheduler, f.metrics, logger.NewNop(), DefaultJobConfig())
	return f
}
