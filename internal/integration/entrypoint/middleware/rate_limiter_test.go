package middleware

import (
	"testing"
	"time"
)

func TestRateLimiter(t *testing.T) {
	t.Run("allows up to the limit then blocks", func(t *testing.T) {
		limiter := NewRateLimiterWithConfig(3, time.Minute)

		for i := 0; i < 3; i++ {
			if !limiter.Allow("10.0.0.1") {
				t.Fatalf("attempt %d: expected to be allowed", i+1)
			}
		}
		if limiter.Allow("10.0.0.1") {
			t.Error("expected the fourth attempt to be blocked")
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		limiter := NewRateLimiterWithConfig(1, time.Minute)

		if !limiter.Allow("10.0.0.1") {
			t.Fatal("expected the first key to be allowed")
		}
		if !limiter.Allow("10.0.0.2") {
			t.Error("expected a different key to be unaffected")
		}
		if limiter.Allow("10.0.0.1") {
			t.Error("expected the exhausted key to stay blocked")
		}
	})

	t.Run("an expired window starts over", func(t *testing.T) {
		limiter := NewRateLimiterWithConfig(1, 10*time.Millisecond)

		if !limiter.Allow("10.0.0.1") {
			t.Fatal("expected the first attempt to be allowed")
		}
		if limiter.Allow("10.0.0.1") {
			t.Fatal("expected the second attempt to be blocked")
		}
		time.Sleep(20 * time.Millisecond)
		if !limiter.Allow("10.0.0.1") {
			t.Error("expected a fresh window after expiry")
		}
	})

	t.Run("reset clears all state", func(t *testing.T) {
		limiter := NewRateLimiterWithConfig(1, time.Minute)

		limiter.Allow("10.0.0.1")
		if limiter.Allow("10.0.0.1") {
			t.Fatal("expected the key to be exhausted")
		}
		limiter.Reset()
		if !limiter.Allow("10.0.0.1") {
			t.Error("expected the key to be allowed after reset")
		}
	})

	t.Run("cleanup drops only expired entries", func(t *testing.T) {
		limiter := NewRateLimiterWithConfig(1, 10*time.Millisecond)

		limiter.Allow("expired")
		time.Sleep(20 * time.Millisecond)
		limiter.Allow("fresh")
		limiter.Cleanup()

		limiter.mu.Lock()
		_, expiredKept := limiter.entries["expired"]
		_, freshKept := limiter.entries["fresh"]
		limiter.mu.Unlock()

		if expiredKept {
			t.Error("expected the expired entry to be removed")
		}
		if !freshKept {
			t.Error("expected the fresh entry to survive")
		}
	})
}
