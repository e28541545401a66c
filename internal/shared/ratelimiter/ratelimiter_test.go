package ratelimiter

import (
	"testing"
	"time"
)

// TestRateLimiter_UnderLimit は上限未満の呼び出しが待機しないことを検証します。
func TestRateLimiter_UnderLimit(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(10, time.Minute)

	start := time.Now()
	for i := 0; i < 10; i++ {
		rl.WaitIfNeeded()
	}
	elapsed := time.Since(start)

	if elapsed > time.Second {
		t.Errorf("expected no waiting under the limit, took %v", elapsed)
	}
}

// TestRateLimiter_OverLimit は上限超過時に待機が発生することを検証します。
func TestRateLimiter_OverLimit(t *testing.T) {
	t.Parallel()

	interval := 200 * time.Millisecond
	rl := NewRateLimiter(2, interval)

	rl.WaitIfNeeded()
	rl.WaitIfNeeded()

	start := time.Now()
	rl.WaitIfNeeded() // Third call must wait out the window
	elapsed := time.Since(start)

	if elapsed < 50*time.Millisecond {
		t.Errorf("expected the third call to wait, took only %v", elapsed)
	}
}

// TestRateLimiter_ResetsAfterInterval はウィンドウ経過後にカウントがリセットされることを検証します。
func TestRateLimiter_ResetsAfterInterval(t *testing.T) {
	t.Parallel()

	interval := 100 * time.Millisecond
	rl := NewRateLimiter(1, interval)

	rl.WaitIfNeeded()
	time.Sleep(interval + 20*time.Millisecond)

	start := time.Now()
	rl.WaitIfNeeded()
	elapsed := time.Since(start)

	if elapsed > 50*time.Millisecond {
		t.Errorf("expected no waiting after the window reset, took %v", elapsed)
	}
}
