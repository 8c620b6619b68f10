package fx

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type stubRateSource struct {
	rate  float64
	err   error
	calls int
}

func (s *stubRateSource) FetchRate(context.Context) (float64, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return s.rate, nil
}

// stalledRateSource blocks until its context is cancelled, simulating a
// feed that accepts the connection but never answers.
type stalledRateSource struct{}

func (s *stalledRateSource) FetchRate(ctx context.Context) (float64, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

// TestProvider_Rate tests the TTL cache and fallback behavior.
//
// WHY: The rate provider must never block or fail the valuation
// pipeline: it serves cached values inside the TTL, refreshes after it,
// and absorbs fetch errors by returning the last-known-good value or the
// fixed fallback.
func TestProvider_Rate(t *testing.T) {
	t.Run("caches the rate within the TTL", func(t *testing.T) {
		source := &stubRateSource{rate: 31.2}
		provider := NewProvider(source, 30*time.Minute, time.Second, DefaultFallbackRate, zerolog.Nop())

		now := time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC)
		provider.now = func() time.Time { return now }

		if got := provider.Rate(context.Background()); got != 31.2 {
			t.Fatalf("Rate() = %v, want 31.2", got)
		}

		// Ten minutes later: still inside the TTL, no second fetch
		now = now.Add(10 * time.Minute)
		if got := provider.Rate(context.Background()); got != 31.2 {
			t.Errorf("Rate() = %v, want cached 31.2", got)
		}
		if source.calls != 1 {
			t.Errorf("Expected 1 fetch, got %d", source.calls)
		}
	})

	t.Run("refreshes after the TTL expires", func(t *testing.T) {
		source := &stubRateSource{rate: 31.2}
		provider := NewProvider(source, 30*time.Minute, time.Second, DefaultFallbackRate, zerolog.Nop())

		now := time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC)
		provider.now = func() time.Time { return now }

		provider.Rate(context.Background())

		source.rate = 32.1
		now = now.Add(31 * time.Minute)
		if got := provider.Rate(context.Background()); got != 32.1 {
			t.Errorf("Rate() = %v, want refreshed 32.1", got)
		}
		if source.calls != 2 {
			t.Errorf("Expected 2 fetches, got %d", source.calls)
		}
	})

	t.Run("returns the fallback when nothing was ever fetched", func(t *testing.T) {
		source := &stubRateSource{err: errors.New("feed down")}
		provider := NewProvider(source, 30*time.Minute, time.Second, DefaultFallbackRate, zerolog.Nop())

		if got := provider.Rate(context.Background()); got != DefaultFallbackRate {
			t.Errorf("Rate() = %v, want fallback %v", got, DefaultFallbackRate)
		}
	})

	t.Run("times out a stalled fetch and falls back", func(t *testing.T) {
		provider := NewProvider(&stalledRateSource{}, 30*time.Minute, 50*time.Millisecond, DefaultFallbackRate, zerolog.Nop())

		done := make(chan float64, 1)
		go func() {
			done <- provider.Rate(context.Background())
		}()

		select {
		case got := <-done:
			if got != DefaultFallbackRate {
				t.Errorf("Rate() = %v, want fallback %v", got, DefaultFallbackRate)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Rate() did not return within 2s; stalled fetch is not bounded by the fetch timeout")
		}
	})

	t.Run("stalled fetch does not block concurrent callers", func(t *testing.T) {
		provider := NewProvider(&stalledRateSource{}, 30*time.Minute, 50*time.Millisecond, DefaultFallbackRate, zerolog.Nop())

		done := make(chan struct{})
		go func() {
			defer close(done)
			provider.Rate(context.Background())
			provider.Rate(context.Background())
		}()
		go provider.Rate(context.Background())

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("Concurrent Rate() calls blocked behind a stalled fetch")
		}
	})

	t.Run("returns the last known rate on later failures", func(t *testing.T) {
		source := &stubRateSource{rate: 31.2}
		provider := NewProvider(source, 30*time.Minute, time.Second, DefaultFallbackRate, zerolog.Nop())

		now := time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC)
		provider.now = func() time.Time { return now }

		provider.Rate(context.Background())

		source.err = errors.New("feed down")
		now = now.Add(time.Hour)
		if got := provider.Rate(context.Background()); got != 31.2 {
			t.Errorf("Rate() = %v, want last known 31.2", got)
		}
	})
}
