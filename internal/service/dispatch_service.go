package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"osint-pivot/internal/host"
	"osint-pivot/internal/logger"
	"osint-pivot/internal/metrics"
	"osint-pivot/internal/models"
	"osint-pivot/internal/templates"
)

// ErrUnknownGroup is returned for a catalog group with no actions
var ErrUnknownGroup = errors.New("unknown action group")

// Dispatch routes, as reported to metrics
const (
	routeLookup  = "lookup"
	routeKeyword = "keyword"
	routeURL     = "url"
)

// TabOpener opens a single background tab
type TabOpener interface {
	OpenTab(ctx context.Context, url string) (string, error)
}

// DispatchConfig tunes fan-out timing
type DispatchConfig struct {
	Stagger         time.Duration
	FallbackKeyword string
}

// DispatchResult describes what a dispatch did
type DispatchResult struct {
	Host string
	// Tabs is the number of tabs opened or scheduled; OTX jobs count as 0
	Tabs int
	// Job is set when the action started an OTX job
	Job *models.JobSnapshot
}

// DispatchService turns an action id and raw input into tab opens
type DispatchService struct {
	engine    *templates.Engine
	settings  *SettingsService
	jobs      *JobService
	tabs      TabOpener
	scheduler Scheduler
	limiter   *RateLimiter
	metrics   *metrics.Metrics
	logger    logger.Logger
	cfg       DispatchConfig

	// ctx bounds staggered opens, which outlive the request that scheduled them
	ctx context.Context
}

// NewDispatchService creates a new dispatch service. limiter may be nil.
func NewDispatchService(
	engine *templates.Engine,
	settings *SettingsService,
	jobs *JobService,
	tabs TabOpener,
	scheduler Scheduler,
	limiter *RateLimiter,
	metrics *metrics.Metrics,
	log logger.Logger,
	cfg DispatchConfig,
) *DispatchService {
	if cfg.Stagger <= 0 {
		cfg.Stagger = 300 * time.Millisecond
	}
	if cfg.FallbackKeyword == "" {
		cfg.FallbackKeyword = "password"
	}
	return &DispatchService{
		engine:    engine,
		settings:  settings,
		jobs:      jobs,
		tabs:      tabs,
		scheduler: scheduler,
		limiter:   limiter,
		metrics:   metrics,
		logger:    log,
		cfg:       cfg,
		ctx:       context.Background(),
	}
}

// Dispatch runs one action against the host found in text
func (s *DispatchService) Dispatch(ctx context.Context, action, text string) (DispatchResult, error) {
	h, err := s.resolve(action, text)
	if err != nil {
		return DispatchResult{}, err
	}
	return s.dispatchHost(ctx, action, h), nil
}

// DispatchGroup runs every action of a catalog group, one per stagger step
func (s *DispatchService) DispatchGroup(ctx context.Context, group, text string) (DispatchResult, error) {
	ids := templates.GroupActions(group)
	if len(ids) == 0 {
		return DispatchResult{}, ErrUnknownGroup
	}

	h, err := s.resolve(group, text)
	if err != nil {
		return DispatchResult{}, err
	}

	s.logger.Info("Dispatching group",
		logger.String("group", group),
		logger.String("host", h.Full),
		logger.Int("actions", len(ids)),
	)

	for i, id := range ids {
		if i == 0 {
			s.dispatchHost(ctx, id, h)
			continue
		}
		s.scheduler.AfterFunc(time.Duration(i)*s.cfg.Stagger, func() { s.dispatchHost(s.ctx, id, h) })
	}
	return DispatchResult{Host: h.Full, Tabs: len(ids)}, nil
}

// OpenURLs opens each non-blank URL as a background tab and returns how
// many opened
func (s *DispatchService) OpenURLs(ctx context.Context, urls []string) int {
	opened := 0
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if s.open(ctx, u, routeURL) {
			opened++
		}
	}
	return opened
}

func (s *DispatchService) resolve(action, text string) (host.Host, error) {
	h, ok := host.Parse(text)
	if !ok {
		s.logger.Info("No host found, ignoring action", logger.String("action", action))
		return host.Host{}, ErrNoHost
	}
	if s.limiter != nil {
		if err := s.limiter.CheckHost(h.Full); err != nil {
			s.metrics.IncrementRateLimited()
			s.logger.Warn("Dispatch throttled",
				logger.String("action", action),
				logger.String("host", h.Full),
			)
			return host.Host{}, err
		}
	}
	return h, nil
}

func (s *DispatchService) dispatchHost(ctx context.Context, action string, h host.Host) DispatchResult {
	res := DispatchResult{Host: h.Full}

	if kind := models.JobKind(action); kind.Valid() {
		snap, err := s.jobs.Start(kind, h.Full)
		if err != nil {
			s.logger.Error("Failed to start OTX job", logger.String("action", action), logger.Error(err))
			return res
		}
		res.Job = &snap
		return res
	}

	settings := s.settings.Get()
	opts := templates.Options{
		DomainLevel: settings.DomainLevel,
		NotFilters:  settings.NotFiltersEnabled,
	}

	if s.engine.IsKeywordAction(action) {
		res.Tabs = s.fanOutKeywords(ctx, action, h, opts)
		return res
	}

	url, ok := s.engine.Build(action, h, opts)
	if !ok {
		s.logger.Debug("Unknown action ignored", logger.String("action", action))
		return res
	}
	if s.open(ctx, url, routeLookup) {
		res.Tabs = 1
	}
	return res
}

// fanOutKeywords opens one tab per effective keyword, the i-th after
// i*stagger
func (s *DispatchService) fanOutKeywords(ctx context.Context, action string, h host.Host, opts templates.Options) int {
	keywords := s.settings.EffectiveKeywords()
	if len(keywords) == 0 {
		keywords = []string{s.cfg.FallbackKeyword}
	}

	s.logger.Info("Keyword fan-out",
		logger.String("action", action),
		logger.String("host", h.Full),
		logger.Int("keywords", len(keywords)),
	)

	n := 0
	for i, kw := range keywords {
		o := opts
		o.Keyword = kw
		url, ok := s.engine.Build(action, h, o)
		if !ok {
			continue
		}
		n++
		if i == 0 {
			s.open(ctx, url, routeKeyword)
			continue
		}
		s.scheduler.AfterFunc(time.Duration(i)*s.cfg.Stagger, func() { s.open(s.ctx, url, routeKeyword) })
	}
	return n
}

func (s *DispatchService) open(ctx context.Context, url, route string) bool {
	if _, err := s.tabs.OpenTab(ctx, url); err != nil {
		s.logger.Error("Failed to open tab", logger.String("url", url), logger.Error(err))
		return false
	}
	s.metrics.IncrementDispatched(route)
	return true
}
