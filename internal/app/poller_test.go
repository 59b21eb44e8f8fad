package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/five82/shelf/internal/config"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second},
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	for failures := 0; failures <= 80; failures++ {
		if got := calculateBackoff(failures, 2*time.Second); got > maxBackoff {
			t.Errorf("calculateBackoff(%d) = %v, exceeds maxBackoff %v", failures, got, maxBackoff)
		}
	}
	if got := calculateBackoff(0, time.Minute); got != time.Minute {
		t.Errorf("calculateBackoff(0, 1m) = %v, want base interval untouched", got)
	}
}

func TestCalculateBackoff_NeverShorterThanBase(t *testing.T) {
	for _, base := range []time.Duration{maxBackoff, time.Minute, 5 * time.Minute} {
		for failures := 1; failures <= 5; failures++ {
			if got := calculateBackoff(failures, base); got < base {
				t.Errorf("calculateBackoff(%d, %v) = %v, shorter than the healthy interval", failures, base, got)
			}
		}
	}
	if got := calculateBackoff(1, time.Minute); got != time.Minute {
		t.Errorf("calculateBackoff(1, 1m) = %v, want 1m", got)
	}
}

type countingStore struct {
	calls atomic.Int32
	err   error
}

func (c *countingStore) Refresh(context.Context) error {
	c.calls.Add(1)
	return c.err
}

func TestStartPoller_RefreshesUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := &countingStore{}

	StartPoller(ctx, store, 5*time.Millisecond, nil)

	deadline := time.Now().Add(2 * time.Second)
	for store.calls.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("poller made %d refreshes, want at least 3", store.calls.Load())
		}
		time.Sleep(time.Millisecond)
	}
	cancel()

	time.Sleep(20 * time.Millisecond)
	after := store.calls.Load()
	time.Sleep(30 * time.Millisecond)
	if got := store.calls.Load(); got != after {
		t.Fatalf("poller kept refreshing after cancel: %d -> %d", after, got)
	}
}

func TestStartPoller_DisabledForZeroInterval(t *testing.T) {
	store := &countingStore{err: errors.New("down")}
	StartPoller(context.Background(), store, 0, nil)
	time.Sleep(10 * time.Millisecond)
	if got := store.calls.Load(); got != 0 {
		t.Fatalf("refresh calls = %d, want 0 when disabled", got)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.Config{APIURL: "http://localhost:8080", RefreshInterval: 0}
	applyOverrides(&cfg, Options{APIURL: "http://books:9000", PollEvery: 15})
	if cfg.APIURL != "http://books:9000" || cfg.RefreshInterval != 15*time.Second {
		t.Fatalf("applyOverrides = %#v", cfg)
	}

	cfg = config.Config{APIURL: "http://a", RefreshInterval: time.Second}
	applyOverrides(&cfg, Options{})
	if cfg.APIURL != "http://a" || cfg.RefreshInterval != time.Second {
		t.Fatalf("applyOverrides with zero options changed cfg: %#v", cfg)
	}
}
