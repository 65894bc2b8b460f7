package service

import (
	"context"
	"errors"

	"osint-pivot/internal/inspect"
	"osint-pivot/internal/logger"
)

// ErrQueueFull is returned when the page queue cannot take more work
var ErrQueueFull = errors.New("page queue full")

// ErrNotOTXPage is returned for a URL that is not an OTX url_list page
var ErrNotOTXPage = errors.New("not an OTX url_list page")

// PageReport is a loaded OTX page forwarded by a content script
type PageReport struct {
	URL  string
	Body string
}

// WorkerService inspects forwarded OTX pages in the background
type WorkerService struct {
	jobs   *JobService
	logger logger.Logger
	queue  chan PageReport
}

// NewWorkerService creates a new worker service with a queue of size
func NewWorkerService(jobs *JobService, log logger.Logger, size int) *WorkerService {
	if size <= 0 {
		size = 64
	}
	return &WorkerService{
		jobs:   jobs,
		logger: log,
		queue:  make(chan PageReport, size),
	}
}

// Submit validates the page URL and queues the page for inspection
func (s *WorkerService) Submit(report PageReport) error {
	if _, ok := inspect.ParseOTXURL(report.URL); !ok {
		return ErrNotOTXPage
	}
	select {
	case s.queue <- report:
		return nil
	default:
		return ErrQueueFull
	}
}

// ProcessPages continuously processes queued pages until ctx ends
func (s *WorkerService) ProcessPages(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case report := <-s.queue:
			s.processPage(report)
		}
	}
}

// processPage reads has_next from one page and reports it
func (s *WorkerService) processPage(report PageReport) {
	ref, ok := inspect.ParseOTXURL(report.URL)
	if !ok {
		return
	}
	log := s.logger.With(
		logger.String("job_type", string(ref.Kind)),
		logger.String("host", ref.Host),
		logger.Int("page", ref.Page),
	)

	hasNext, found := inspect.HasNext(report.Body)
	if !found {
		log.Debug("No has_next signal on page")
		return
	}

	if !s.jobs.ReportPageStatus(ref.Kind, ref.Host, ref.Page, hasNext) {
		log.Debug("Page status for unknown job")
		return
	}
	log.Info("Page status reported", logger.Bool("has_next", hasNext))
}
