package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayushk-1801/jobwise/internal/config"
)

// newTestLimiter returns a limiter without a cleanup goroutine and with a
// controllable clock.
func newTestLimiter(rpm, burst int) (*Limiter, *time.Time) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLimiter(&Config{
		Enabled:           true,
		RequestsPerMinute: rpm,
		Burst:             burst,
		IdleTimeout:       time.Minute,
		Whitelist:         map[string]bool{"10.0.0.1": true},
	})
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_AllowsBurstThenDenies(t *testing.T) {
	l, _ := newTestLimiter(60, 3)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("127.0.0.1", "/submit_application/", "POST")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 60, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	allowed, info := l.Allow("127.0.0.1", "/submit_application/", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, time.Second, info.RetryAfter)
	assert.True(t, info.ResetTime.After(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestLimiter_Refills(t *testing.T) {
	l, now := newTestLimiter(60, 1)
	defer l.Stop()

	allowed, _ := l.Allow("127.0.0.1", "/review_resume/", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("127.0.0.1", "/review_resume/", "POST")
	require.False(t, allowed)

	*now = now.Add(time.Second)
	allowed, _ = l.Allow("127.0.0.1", "/review_resume/", "POST")
	assert.True(t, allowed, "one token refills per second at 60 rpm")
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(60, 1)
	defer l.Stop()

	allowed, _ := l.Allow("1.1.1.1", "/x", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("2.2.2.2", "/x", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 2, l.Len())
}

func TestLimiter_Bypass(t *testing.T) {
	l, _ := newTestLimiter(60, 1)
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/submit_application/", "POST")
		assert.True(t, allowed, "whitelisted client")
		allowed, _ = l.Allow("127.0.0.1", "/health", "GET")
		assert.True(t, allowed, "health check")
		allowed, _ = l.Allow("127.0.0.1", "/submit_application/", "OPTIONS")
		assert.True(t, allowed, "preflight")
	}
	assert.Equal(t, 0, l.Len())
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("127.0.0.1", "/x", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_EvictIdle(t *testing.T) {
	l, now := newTestLimiter(60, 1)
	defer l.Stop()

	l.Allow("1.1.1.1", "/x", "POST")
	*now = now.Add(2 * time.Minute)
	l.Allow("2.2.2.2", "/x", "POST")

	l.evictIdle(*now)
	assert.Equal(t, 1, l.Len())
}

func TestLimiter_Concurrent(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, RequestsPerMinute: 60, Burst: 50, CleanupInterval: time.Hour, IdleTimeout: time.Hour})
	defer l.Stop()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("127.0.0.1", "/x", "POST"); ok {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.GreaterOrEqual(t, granted, 50)
	assert.LessOrEqual(t, granted, 52)
}

func TestLimiter_StopTwice(t *testing.T) {
	l := NewLimiter(nil)
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestFromSettings(t *testing.T) {
	cfg := FromSettings(config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 12,
		Burst:             2,
		Whitelist:         []string{" 127.0.0.1 ", ""},
	})

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 12, cfg.RequestsPerMinute)
	assert.Equal(t, 2, cfg.Burst)
	assert.Equal(t, map[string]bool{"127.0.0.1": true}, cfg.Whitelist)
	assert.Equal(t, 5*time.Minute, cfg.CleanupInterval)
}

func TestExempt(t *testing.T) {
	assert.True(t, Exempt("/health", "GET"))
	assert.False(t, Exempt("/health", "POST"))
	assert.True(t, Exempt("/anything", "OPTIONS"))
	assert.False(t, Exempt("/submit_application/", "POST"))
}
