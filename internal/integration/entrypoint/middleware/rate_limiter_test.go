package middleware

import (
	"testing"
	"time"
)

func TestExportRateLimiterAllow(t *testing.T) {
	t.Run("allows up to the limit within one window", func(t *testing.T) {
		rl := NewExportRateLimiterWithConfig(3, time.Minute)

		for i := 0; i < 3; i++ {
			if !rl.allow("dealer-a") {
				t.Fatalf("attempt %d should be allowed", i+1)
			}
		}
		if rl.allow("dealer-a") {
			t.Error("attempt over the limit should be rejected")
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		rl := NewExportRateLimiterWithConfig(1, time.Minute)

		if !rl.allow("dealer-a") {
			t.Fatal("first attempt for dealer-a should be allowed")
		}
		if !rl.allow("dealer-b") {
			t.Error("dealer-b should not be affected by dealer-a's usage")
		}
	})

	t.Run("window expiry resets the budget", func(t *testing.T) {
		rl := NewExportRateLimiterWithConfig(1, 10*time.Millisecond)

		if !rl.allow("dealer-a") {
			t.Fatal("first attempt should be allowed")
		}
		if rl.allow("dealer-a") {
			t.Fatal("second attempt in the same window should be rejected")
		}

		time.Sleep(20 * time.Millisecond)
		if !rl.allow("dealer-a") {
			t.Error("attempt after window expiry should be allowed")
		}
	})

	t.Run("reset clears all state", func(t *testing.T) {
		rl := NewExportRateLimiterWithConfig(1, time.Minute)
		rl.allow("dealer-a")
		rl.Reset()

		if !rl.allow("dealer-a") {
			t.Error("attempt after reset should be allowed")
		}
	})
}
