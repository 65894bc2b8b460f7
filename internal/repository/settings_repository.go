package repository

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get for a key that was never written
var ErrKeyNotFound = errors.New("settings key not found")

// SettingsRepository defines the interface for settings persistence.
// Values are opaque strings; callers choose the encoding.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
