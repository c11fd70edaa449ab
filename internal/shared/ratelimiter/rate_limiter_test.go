package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock advances only when sleep is called.
type fakeClock struct {
	t     time.Time
	slept []time.Duration
}

func (f *fakeClock) now() time.Time { return f.t }

func (f *fakeClock) sleep(d time.Duration) {
	f.slept = append(f.slept, d)
	f.t = f.t.Add(d)
}

func TestRateLimiter_WaitIfNeeded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		limit         int
		calls         int
		advance       time.Duration
		expectedSleep []time.Duration
	}{
		{
			name:          "under the limit never sleeps",
			limit:         3,
			calls:         3,
			expectedSleep: nil,
		},
		{
			name:          "exceeding the limit sleeps for the rest of the window",
			limit:         2,
			calls:         3,
			advance:       10 * time.Second,
			expectedSleep: []time.Duration{50 * time.Second},
		},
		{
			name:          "disabled limiter never sleeps",
			limit:         0,
			calls:         10,
			expectedSleep: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			clk := &fakeClock{t: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)}
			rl := newRateLimiter(tt.limit, time.Minute, clk.now, clk.sleep)
			clk.t = clk.t.Add(tt.advance)

			for i := 0; i < tt.calls; i++ {
				rl.WaitIfNeeded()
			}

			assert.Equal(t, tt.expectedSleep, clk.slept)
		})
	}
}

func TestRateLimiter_ResetsAfterInterval(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{t: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(1, time.Minute, clk.now, clk.sleep)

	rl.WaitIfNeeded()
	clk.t = clk.t.Add(time.Minute)
	rl.WaitIfNeeded()

	assert.Empty(t, clk.slept, "a new window must not sleep")
}
