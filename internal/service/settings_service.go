package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"osint-pivot/internal/events"
	"osint-pivot/internal/logger"
	"osint-pivot/internal/models"
	"osint-pivot/internal/repository"
)

// Persisted settings keys
const (
	KeyCustomKeywords = "customKeywords"
	KeyNotFilters     = "notFiltersEnabled"
	KeyDomainLevel    = "domainLevelDepth"
)

// SettingsService holds the process-wide settings and writes every change
// through to the repository.
type SettingsService struct {
	mu       sync.RWMutex
	settings models.Settings

	repo      repository.SettingsRepository
	publisher Publisher
	logger    logger.Logger
	defaults  []string
}

// NewSettingsService creates a settings service holding defaults until Load
func NewSettingsService(repo repository.SettingsRepository, publisher Publisher, log logger.Logger, defaultKeywords []string) *SettingsService {
	return &SettingsService{
		settings: models.Settings{
			NotFiltersEnabled: true,
			DomainLevel:       models.DefaultDomainLevel,
		},
		repo:      repo,
		publisher: publisher,
		logger:    log,
		defaults:  append([]string(nil), defaultKeywords...),
	}
}

// Load reads persisted settings. Missing keys keep their defaults and
// corrupt values are logged and skipped.
func (s *SettingsService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error

	if raw, ok, err := s.read(ctx, KeyCustomKeywords); err != nil {
		errs = append(errs, err)
	} else if ok {
		var kws []string
		if err := json.Unmarshal([]byte(raw), &kws); err != nil {
			s.logger.Warn("Ignoring corrupt keyword list", logger.Error(err))
		} else {
			s.settings.CustomKeywords = normalizeKeywords(kws)
		}
	}

	if raw, ok, err := s.read(ctx, KeyNotFilters); err != nil {
		errs = append(errs, err)
	} else if ok {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			s.logger.Warn("Ignoring corrupt NOT-filter flag", logger.String("value", raw))
		} else {
			s.settings.NotFiltersEnabled = enabled
		}
	}

	if raw, ok, err := s.read(ctx, KeyDomainLevel); err != nil {
		errs = append(errs, err)
	} else if ok {
		level, err := strconv.Atoi(raw)
		if err != nil || !models.ValidDomainLevel(level) {
			s.logger.Warn("Ignoring corrupt domain level", logger.String("value", raw))
		} else {
			s.settings.DomainLevel = level
		}
	}

	s.logger.Info("Settings loaded",
		logger.Int("custom_keywords", len(s.settings.CustomKeywords)),
		logger.Bool("not_filters", s.settings.NotFiltersEnabled),
		logger.Int("domain_level", s.settings.DomainLevel),
	)
	return errors.Join(errs...)
}

func (s *SettingsService) read(ctx context.Context, key string) (string, bool, error) {
	raw, err := s.repo.Get(ctx, key)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return raw, true, nil
}

// Get returns a copy of the current settings
func (s *SettingsService) Get() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

// Keywords returns the effective keyword list and whether it is custom
func (s *SettingsService) Keywords() ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.settings.CustomKeywords) > 0 {
		return append([]string(nil), s.settings.CustomKeywords...), true
	}
	return append([]string(nil), s.defaults...), false
}

// EffectiveKeywords returns the custom list when set, otherwise the defaults
func (s *SettingsService) EffectiveKeywords() []string {
	kws, _ := s.Keywords()
	return kws
}

// UploadKeywords replaces the custom list. Entries are trimmed, empties
// dropped and duplicates removed keeping the first occurrence.
func (s *SettingsService) UploadKeywords(ctx context.Context, keywords []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kws := normalizeKeywords(keywords)
	data, err := json.Marshal(kws)
	if err != nil {
		return nil, fmt.Errorf("failed to encode keywords: %w", err)
	}
	if err := s.repo.Set(ctx, KeyCustomKeywords, string(data)); err != nil {
		return nil, fmt.Errorf("failed to save keywords: %w", err)
	}

	s.settings.CustomKeywords = kws
	s.logger.Info("Custom keywords updated", logger.Int("count", len(kws)))
	s.publishLocked(ctx)
	return append([]string(nil), kws...), nil
}

// ResetKeywords drops the custom list so the defaults apply again
func (s *SettingsService) ResetKeywords(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, KeyCustomKeywords); err != nil {
		return fmt.Errorf("failed to reset keywords: %w", err)
	}

	s.settings.CustomKeywords = nil
	s.logger.Info("Custom keywords reset")
	s.publishLocked(ctx)
	return nil
}

// SetNotFilters sets the NOT-filter flag, or flips it when enabled is nil
func (s *SettingsService) SetNotFilters(ctx context.Context, enabled *bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := !s.settings.NotFiltersEnabled
	if enabled != nil {
		next = *enabled
	}
	if err := s.repo.Set(ctx, KeyNotFilters, strconv.FormatBool(next)); err != nil {
		return s.settings.NotFiltersEnabled, fmt.Errorf("failed to save NOT-filter flag: %w", err)
	}

	s.settings.NotFiltersEnabled = next
	s.logger.Info("NOT filters updated", logger.Bool("enabled", next))
	s.publishLocked(ctx)
	return next, nil
}

// SetDomainLevel sets the subdomain depth. Values outside 1..3 are
// rejected and leave the setting unchanged.
func (s *SettingsService) SetDomainLevel(ctx context.Context, level int) error {
	if !models.ValidDomainLevel(level) {
		return ErrInvalidDomainLevel
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Set(ctx, KeyDomainLevel, strconv.Itoa(level)); err != nil {
		return fmt.Errorf("failed to save domain level: %w", err)
	}

	s.settings.DomainLevel = level
	s.logger.Info("Domain level updated", logger.Int("level", level))
	s.publishLocked(ctx)
	return nil
}

func (s *SettingsService) copyLocked() models.Settings {
	c := s.settings
	c.CustomKeywords = append([]string(nil), s.settings.CustomKeywords...)
	return c
}

func (s *SettingsService) publishLocked(ctx context.Context) {
	if err := s.publisher.Publish(ctx, events.NewSettingsUpdate(s.copyLocked())); err != nil {
		s.logger.Debug("Settings update not delivered", logger.Error(err))
	}
}

func normalizeKeywords(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, kw := range in {
		kw = strings.TrimSpace(kw)
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
