package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"osint-pivot/internal/events"
	"osint-pivot/internal/logger"
	"osint-pivot/internal/metrics"
	"osint-pivot/internal/models"
	"osint-pivot/internal/templates"
)

var (
	ErrJobNotFound        = errors.New("job not found")
	ErrInvalidJob         = errors.New("invalid job kind or host")
	ErrInvalidDomainLevel = errors.New("domain level must be 1, 2 or 3")
	ErrNoHost             = errors.New("no host found in input")
	ErrRateLimitExceeded  = errors.New("rate limit exceeded")
)

// Pause reasons reported to metrics
const (
	reasonBudget    = "budget"
	reasonStop      = "stop"
	reasonEndOfData = "end_of_data"
)

// Tabs opens and groups browser tabs
type Tabs interface {
	OpenTab(ctx context.Context, url string) (string, error)
	// GroupTabs adds tabID to groupID, creating a group titled title when
	// groupID is empty, and returns the group handle.
	GroupTabs(ctx context.Context, groupID, tabID, title string) (string, error)
	CollapseGroup(ctx context.Context, groupID string) error
}

// Publisher delivers broadcasts to observers
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// JobConfig tunes the OTX page loop
type JobConfig struct {
	PageBudget int
	BudgetStep int
	PageDelay  time.Duration
}

// DefaultJobConfig is 5 pages per run segment, 5 more per resume, one
// page every 5 seconds.
func DefaultJobConfig() JobConfig {
	return JobConfig{PageBudget: 5, BudgetStep: 5, PageDelay: 5 * time.Second}
}

type jobEntry struct {
	job  *models.Job
	task Task
	// gen invalidates timer callbacks that were already firing when the
	// job was stopped or restarted
	gen uint64
	// opening is set while a reserved page is being opened outside mu
	opening bool
}

// pageOpen is a page reserved under mu and opened after mu is released
type pageOpen struct {
	entry   *jobEntry
	page    int
	url     string
	groupID string
	title   string
}

// JobService owns the OTX job table. State changes happen under mu; tab
// opens run outside it, and a job never has two pages opening at once.
type JobService struct {
	mu     sync.Mutex
	jobs   map[string]*jobEntry
	closed bool

	tabs      Tabs
	publisher Publisher
	scheduler Scheduler
	metrics   *metrics.Metrics
	logger    logger.Logger
	cfg       JobConfig

	ctx    context.Context
	cancel context.CancelFunc
}

// NewJobService creates a new job service
func NewJobService(tabs Tabs, publisher Publisher, scheduler Scheduler, metrics *metrics.Metrics, log logger.Logger, cfg JobConfig) *JobService {
	def := DefaultJobConfig()
	if cfg.PageBudget <= 0 {
		cfg.PageBudget = def.PageBudget
	}
	if cfg.BudgetStep <= 0 {
		cfg.BudgetStep = def.BudgetStep
	}
	if cfg.PageDelay <= 0 {
		cfg.PageDelay = def.PageDelay
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &JobService{
		jobs:      make(map[string]*jobEntry),
		tabs:      tabs,
		publisher: publisher,
		scheduler: scheduler,
		metrics:   metrics,
		logger:    log,
		cfg:       cfg,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start creates, resumes or restarts the job for (kind, host) and opens its
// next page immediately.
func (s *JobService) Start(kind models.JobKind, host string) (models.JobSnapshot, error) {
	if !kind.Valid() || host == "" {
		return models.JobSnapshot{}, ErrInvalidJob
	}

	s.mu.Lock()
	e, p := s.startLocked(kind, host)
	s.mu.Unlock()

	if p != nil {
		s.openPage(p)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return e.job.Snapshot(), nil
}

func (s *JobService) startLocked(kind models.JobKind, host string) (*jobEntry, *pageOpen) {
	id := models.JobID(kind, host)
	log := s.logger.With(logger.String("job_id", id))

	e, exists := s.jobs[id]
	switch {
	case !exists:
		e = &jobEntry{job: &models.Job{
			ID:          id,
			Kind:        kind,
			Host:        host,
			NextPage:    1,
			PagesBudget: s.cfg.PageBudget,
		}}
		s.jobs[id] = e
		s.metrics.IncrementJobsStarted(string(kind))
		log.Info("OTX job created", logger.Int("budget", e.job.PagesBudget))
	case e.job.Stopped:
		e.job.Stopped = false
		e.job.PagesBudget = e.job.PagesOpened + s.cfg.BudgetStep
		s.metrics.IncrementJobsStarted(string(kind))
		log.Info("OTX job resumed",
			logger.Int("next_page", e.job.NextPage),
			logger.Int("budget", e.job.PagesBudget),
		)
	default:
		log.Info("OTX job restarted", logger.Int("next_page", e.job.NextPage))
	}

	s.cancelTask(e)
	return e, s.reserveLocked(e)
}

// tick is the scheduled continuation of a job's loop
func (s *JobService) tick(id string, gen uint64) {
	s.mu.Lock()
	e, ok := s.jobs[id]
	if !ok || e.job.Stopped || e.gen != gen {
		s.mu.Unlock()
		return
	}
	e.task = nil
	p := s.reserveLocked(e)
	s.mu.Unlock()

	if p != nil {
		s.openPage(p)
	}
}

// reserveLocked performs the bookkeeping half of one loop step: it pauses
// a job whose budget is spent, or claims its next page. Caller holds mu.
func (s *JobService) reserveLocked(e *jobEntry) *pageOpen {
	j := e.job
	if e.opening {
		// the open in flight re-arms the loop when it completes
		return nil
	}

	if j.PagesOpened >= j.PagesBudget {
		j.Stopped = true
		s.metrics.IncrementJobsStopped(reasonBudget)
		s.logger.Info("OTX job paused, page budget reached",
			logger.String("job_id", j.ID),
			logger.Int("pages_opened", j.PagesOpened),
			logger.Int("next_page", j.NextPage),
		)
		s.broadcastLocked()
		return nil
	}

	page := j.NextPage
	j.NextPage++
	e.opening = true
	return &pageOpen{
		entry:   e,
		page:    page,
		url:     templates.OTXPageURL(j.Kind, j.Host, page),
		groupID: j.GroupID,
		title:   "OTX " + j.Host,
	}
}

// openPage opens a reserved page without holding mu, then records the
// result and re-arms the loop unless the job was stopped, cleared or the
// service closed in the meantime.
func (s *JobService) openPage(p *pageOpen) {
	tabID, openErr := s.tabs.OpenTab(s.ctx, p.url)
	groupID := p.groupID
	var groupErr error
	if openErr == nil {
		groupID, groupErr = s.tabs.GroupTabs(s.ctx, p.groupID, tabID, p.title)
	}

	s.mu.Lock()
	e, j := p.entry, p.entry.job
	e.opening = false
	log := s.logger.With(logger.String("job_id", j.ID))

	if openErr != nil {
		s.metrics.IncrementTabFailures()
		log.Error("Failed to open OTX page", logger.Int("page", p.page), logger.Error(openErr))
	} else {
		j.TabIDs = append(j.TabIDs, tabID)
		j.PagesOpened++
		s.metrics.IncrementPagesOpened(string(j.Kind))
		log.Info("OTX page opened", logger.Int("page", p.page), logger.String("url", p.url))

		if groupErr != nil {
			log.Warn("Failed to group OTX tab", logger.Error(groupErr))
		} else {
			j.GroupID = groupID
		}
	}

	if s.jobs[j.ID] != e {
		s.mu.Unlock()
		return
	}
	s.broadcastLocked()

	collapse := ""
	if j.Stopped {
		// the group may have been created after the stop collapsed it
		collapse = j.GroupID
	} else if !s.closed {
		s.armLocked(e)
	}
	s.mu.Unlock()

	if collapse != "" {
		if err := s.tabs.CollapseGroup(s.ctx, collapse); err != nil {
			log.Debug("Failed to collapse tab group", logger.Error(err))
		}
	}
}

func (s *JobService) armLocked(e *jobEntry) {
	if e.task != nil {
		e.task.Stop()
	}
	id, gen := e.job.ID, e.gen
	e.task = s.scheduler.AfterFunc(s.cfg.PageDelay, func() { s.tick(id, gen) })
}

func (s *JobService) cancelTask(e *jobEntry) {
	e.gen++
	if e.task != nil {
		e.task.Stop()
		e.task = nil
	}
}

// Stop pauses a job and collapses its tab group. It reports whether the
// job exists.
func (s *JobService) Stop(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.jobs[id]
	if !ok {
		return false
	}
	s.stopLocked(e, reasonStop)
	s.broadcastLocked()
	return true
}

func (s *JobService) stopLocked(e *jobEntry, reason string) {
	s.cancelTask(e)
	if !e.job.Stopped {
		e.job.Stopped = true
		s.metrics.IncrementJobsStopped(reason)
	}

	log := s.logger.With(logger.String("job_id", e.job.ID))
	log.Info("OTX job stopped", logger.String("reason", reason))

	if e.job.GroupID != "" {
		if err := s.tabs.CollapseGroup(s.ctx, e.job.GroupID); err != nil {
			log.Debug("Failed to collapse tab group", logger.Error(err))
		}
	}
}

// StopAll stops every tracked job. It reports whether any job exists.
func (s *JobService) StopAll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.jobs) == 0 {
		return false
	}
	for _, id := range s.sortedIDs() {
		s.stopLocked(s.jobs[id], reasonStop)
	}
	s.broadcastLocked()
	return true
}

// ResumeAll resumes every paused job with a fresh budget. It reports
// whether any job was resumed.
func (s *JobService) ResumeAll() bool {
	s.mu.Lock()
	var pending []*pageOpen
	resumed := false
	for _, id := range s.sortedIDs() {
		e := s.jobs[id]
		if !e.job.Stopped {
			continue
		}
		if _, p := s.startLocked(e.job.Kind, e.job.Host); p != nil {
			pending = append(pending, p)
		}
		resumed = true
	}
	s.mu.Unlock()

	for _, p := range pending {
		s.openPage(p)
	}
	return resumed
}

// ReportPageStatus applies the has_next flag read from a loaded page.
// has_next=false stops the job regardless of its remaining budget. It
// reports whether the job exists.
func (s *JobService) ReportPageStatus(kind models.JobKind, host string, page int, hasNext bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.jobs[models.JobID(kind, host)]
	if !ok {
		return false
	}

	s.logger.Debug("OTX page status",
		logger.String("job_id", e.job.ID),
		logger.Int("page", page),
		logger.Bool("has_next", hasNext),
	)

	if !hasNext {
		s.stopLocked(e, reasonEndOfData)
		s.broadcastLocked()
	}
	return true
}

// Clear stops and forgets a job
func (s *JobService) Clear(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.jobs[id]
	if !ok {
		return ErrJobNotFound
	}
	s.cancelTask(e)
	delete(s.jobs, id)
	s.broadcastLocked()
	return nil
}

// ClearStopped forgets every paused job and returns how many were removed
func (s *JobService) ClearStopped() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, e := range s.jobs {
		if e.job.Stopped {
			delete(s.jobs, id)
			n++
		}
	}
	if n > 0 {
		s.broadcastLocked()
	}
	return n
}

// List returns a snapshot of every tracked job
func (s *JobService) List() map[string]models.JobSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close cancels every pending tick and any open still waiting on the
// browser. Jobs keep their state.
func (s *JobService) Close() {
	s.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for _, e := range s.jobs {
		s.cancelTask(e)
	}
}

func (s *JobService) snapshotLocked() map[string]models.JobSnapshot {
	out := make(map[string]models.JobSnapshot, len(s.jobs))
	for id, e := range s.jobs {
		out[id] = e.job.Snapshot()
	}
	return out
}

func (s *JobService) broadcastLocked() {
	active := 0
	for _, e := range s.jobs {
		if !e.job.Stopped {
			active++
		}
	}
	s.metrics.SetActiveJobs(active)

	if err := s.publisher.Publish(s.ctx, events.NewJobsUpdate(s.snapshotLocked())); err != nil {
		s.logger.Debug("Job update not delivered", logger.Error(err))
	}
}

func (s *JobService) sortedIDs() []string {
	ids := make([]string, 0, len(s.jobs))
	for id := range s.jobs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
