package service

import (
	"testing"
	"time"
)

func TestRateLimiter_CheckHost_WithinLimit(t *testing.T) {
	rl := NewRateLimiter(60, 10)

	err := rl.CheckHost("example.com")
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestRateLimiter_CheckHost_ExceedsBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	now := time.Now()

	for i := 0; i < 2; i++ {
		if err := rl.checkHostAt("example.com", now); err != nil {
			t.Errorf("expected no error for dispatch %d, got %v", i+1, err)
		}
	}

	err := rl.checkHostAt("example.com", now)
	if err != ErrRateLimitExceeded {
		t.Errorf("expected rate limit error, got %v", err)
	}
}

func TestRateLimiter_CheckHost_Refill(t *testing.T) {
	rl := NewRateLimiter(60, 1)
	now := time.Now()

	if err := rl.checkHostAt("example.com", now); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := rl.checkHostAt("example.com", now); err != ErrRateLimitExceeded {
		t.Errorf("expected rate limit error, got %v", err)
	}

	// 60 per minute refills one token per second
	if err := rl.checkHostAt("example.com", now.Add(time.Second)); err != nil {
		t.Errorf("expected no error after refill, got %v", err)
	}
}

func TestRateLimiter_CheckHost_PerHost(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Now()

	if err := rl.checkHostAt("a.example.com", now); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if err := rl.checkHostAt("b.example.com", now); err != nil {
		t.Errorf("expected no error for a different host, got %v", err)
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(0, 1)

	for i := 0; i < 100; i++ {
		if err := rl.CheckHost("example.com"); err != nil {
			t.Fatalf("expected no error with limiting disabled, got %v", err)
		}
	}
}
