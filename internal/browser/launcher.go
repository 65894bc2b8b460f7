// Package browser opens lookup URLs as browser tabs and keeps track of the
// tab groups the OTX job loop assigns them to.
package browser

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"osint-pivot/internal/logger"
)

var (
	ErrGroupNotFound = errors.New("tab group not found")
	ErrTabNotFound   = errors.New("tab not found")
)

// Config configures a Launcher
type Config struct {
	Command        string
	Args           []string
	DryRun         bool
	OpensPerSecond float64
	Burst          int
}

// Group is a titled set of tabs
type Group struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Collapsed bool     `json:"collapsed"`
	TabIDs    []string `json:"tabIds"`
}

// Launcher starts a browser process per tab. Tab and group handles are
// generated locally; the browser itself is never queried.
type Launcher struct {
	cfg     Config
	logger  logger.Logger
	limiter *rate.Limiter
	start   func(name string, args ...string) error

	mu     sync.Mutex
	tabs   map[string]string
	groups map[string]*Group
}

// NewLauncher creates a Launcher. Non-positive rates fall back to 10 opens
// per second with a burst of 5.
func NewLauncher(cfg Config, log logger.Logger) *Launcher {
	if cfg.OpensPerSecond <= 0 {
		cfg.OpensPerSecond = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}
	return &Launcher{
		cfg:     cfg,
		logger:  log,
		limiter: rate.NewLimiter(rate.Limit(cfg.OpensPerSecond), cfg.Burst),
		start:   startDetached,
		tabs:    make(map[string]string),
		groups:  make(map[string]*Group),
	}
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// OpenTab opens url in a new background tab and returns its handle
func (l *Launcher) OpenTab(ctx context.Context, url string) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for launch slot: %w", err)
	}

	if l.cfg.DryRun {
		l.logger.Info("Dry run, not launching browser", logger.String("url", url))
	} else {
		args := append(append([]string{}, l.cfg.Args...), url)
		if err := l.start(l.cfg.Command, args...); err != nil {
			return "", fmt.Errorf("failed to launch %s: %w", l.cfg.Command, err)
		}
		l.logger.Debug("Opened tab", logger.String("url", url))
	}

	id := uuid.New().String()
	l.mu.Lock()
	l.tabs[id] = url
	l.mu.Unlock()
	return id, nil
}

// GroupTabs adds tabID to groupID, creating a new group titled title when
// groupID is empty. It returns the group handle.
func (l *Launcher) GroupTabs(_ context.Context, groupID, tabID, title string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.tabs[tabID]; !ok {
		return "", ErrTabNotFound
	}

	if groupID == "" {
		g := &Group{ID: uuid.New().String(), Title: title}
		l.groups[g.ID] = g
		groupID = g.ID
	}
	g, ok := l.groups[groupID]
	if !ok {
		return "", ErrGroupNotFound
	}
	g.TabIDs = append(g.TabIDs, tabID)
	return groupID, nil
}

// CollapseGroup marks a group collapsed
func (l *Launcher) CollapseGroup(_ context.Context, groupID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	g, ok := l.groups[groupID]
	if !ok {
		return ErrGroupNotFound
	}
	g.Collapsed = true
	return nil
}

// Groups returns a copy of every known group, ordered by title
func (l *Launcher) Groups() []Group {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Group, 0, len(l.groups))
	for _, g := range l.groups {
		c := *g
		c.TabIDs = append([]string(nil), g.TabIDs...)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

// TabURL returns the URL a tab was opened with
func (l *Launcher) TabURL(tabID string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	u, ok := l.tabs[tabID]
	return u, ok
}
