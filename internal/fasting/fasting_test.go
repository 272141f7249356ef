package fasting

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pageza/calorix/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func ms(v int64) *int64 { return &v }

func TestStart(t *testing.T) {
	now := time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)

	t.Run("sets boundaries from duration", func(t *testing.T) {
		s, err := Start(now, 16)
		require.NoError(t, err)
		assert.True(t, s.IsFasting)
		assert.False(t, s.CompletionNotified)
		assert.Equal(t, now.UnixMilli(), *s.StartTime)
		assert.Equal(t, now.Add(16*time.Hour).UnixMilli(), *s.EndTime)
	})

	t.Run("rejects non-positive duration", func(t *testing.T) {
		_, err := Start(now, 0)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})

	t.Run("rejects durations past the limit", func(t *testing.T) {
		_, err := Start(now, MaxHours+0.5)
		assert.ErrorIs(t, err, ErrInvalidDuration)
		_, err = Start(now, 1e300)
		assert.ErrorIs(t, err, ErrInvalidDuration)

		s, err := Start(now, MaxHours)
		require.NoError(t, err)
		assert.Equal(t, now.Add(MaxHours*time.Hour).UnixMilli(), *s.EndTime)
	})

	t.Run("stop resets to idle", func(t *testing.T) {
		assert.Equal(t, model.IdleFasting(), Stop())
	})
}

func TestTick(t *testing.T) {
	now := time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)
	s, err := Start(now, 16)
	require.NoError(t, err)

	t.Run("immediately after start", func(t *testing.T) {
		_, r := Tick(s, now)
		assert.InDelta(t, 0, r.Progress, 0.001)
		assert.False(t, r.Completed)
		assert.False(t, r.Notify)
		assert.Equal(t, "16:00:00", r.Remaining)
		assert.Equal(t, "lion", r.Label)
	})

	t.Run("halfway", func(t *testing.T) {
		_, r := Tick(s, now.Add(8*time.Hour))
		assert.InDelta(t, 50, r.Progress, 0.001)
	})

	t.Run("completion fires once", func(t *testing.T) {
		next, r := Tick(s, now.Add(16*time.Hour))
		assert.Equal(t, float64(100), r.Progress)
		assert.True(t, r.Completed)
		assert.True(t, r.Notify)
		assert.True(t, next.CompletionNotified)

		for i := 1; i <= 3; i++ {
			var again Reading
			next, again = Tick(next, now.Add(16*time.Hour+time.Duration(i)*time.Second))
			assert.True(t, again.Completed)
			assert.False(t, again.Notify)
			assert.Equal(t, float64(100), again.Progress)
			assert.Equal(t, "00:00:00", again.Remaining)
		}
	})

	t.Run("idle state reads zero", func(t *testing.T) {
		idle, r := Tick(Stop(), now)
		assert.Equal(t, model.IdleFasting(), idle)
		assert.Zero(t, r.Progress)
		assert.False(t, r.Notify)
	})

	t.Run("recomputes from absolute time after a pause", func(t *testing.T) {
		_, early := Tick(s, now.Add(time.Hour))
		_, late := Tick(s, now.Add(12*time.Hour))
		assert.InDelta(t, 6.25, early.Progress, 0.001)
		assert.InDelta(t, 75, late.Progress, 0.001)
	})
}

func TestUpdateTimes(t *testing.T) {
	now := time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)
	s, err := Start(now, 16)
	require.NoError(t, err)
	start, end := *s.StartTime, *s.EndTime

	t.Run("moves start earlier", func(t *testing.T) {
		next, ok := UpdateTimes(s, TimeUpdate{StartTime: ms(start - 2*msPerHour)})
		require.True(t, ok)
		assert.Equal(t, start-2*msPerHour, *next.StartTime)
		assert.Equal(t, end, *next.EndTime)
		assert.Equal(t, float64(18), next.DurationHours)
	})

	t.Run("rejects start at or after end", func(t *testing.T) {
		next, ok := UpdateTimes(s, TimeUpdate{StartTime: ms(end)})
		assert.False(t, ok)
		assert.Equal(t, s, next)
	})

	t.Run("rejects end at or before start", func(t *testing.T) {
		next, ok := UpdateTimes(s, TimeUpdate{EndTime: ms(start)})
		assert.False(t, ok)
		assert.Equal(t, s, next)
	})

	t.Run("ignored while idle", func(t *testing.T) {
		_, ok := UpdateTimes(Stop(), TimeUpdate{EndTime: ms(end)})
		assert.False(t, ok)
	})

	t.Run("does not alias the original pointers", func(t *testing.T) {
		next, ok := UpdateTimes(s, TimeUpdate{EndTime: ms(end + msPerHour)})
		require.True(t, ok)
		assert.Equal(t, end, *s.EndTime)
		assert.Equal(t, end+msPerHour, *next.EndTime)
	})
}

func TestLabelAndFormat(t *testing.T) {
	assert.Equal(t, "rabbit", Label(12))
	assert.Equal(t, "fox", Label(14))
	assert.Equal(t, "lion", Label(18))
	assert.Equal(t, "01:01:01", FormatRemaining(3661000))
	assert.Equal(t, "00:00:00", FormatRemaining(-5))
}

func TestMonitor(t *testing.T) {
	clock := &fixedClock{now: time.Now()}

	t.Run("stops when the task reports done", func(t *testing.T) {
		m := NewMonitor(5*time.Millisecond, clock)
		defer m.Close()

		var calls int32
		m.Watch("u1", func(ctx context.Context, now time.Time) bool {
			return atomic.AddInt32(&calls, 1) >= 3
		})
		assert.Eventually(t, func() bool { return !m.Active("u1") }, time.Second, 5*time.Millisecond)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("cancel ends the task", func(t *testing.T) {
		m := NewMonitor(5*time.Millisecond, clock)
		defer m.Close()

		m.Watch("u1", func(ctx context.Context, now time.Time) bool { return false })
		require.True(t, m.Active("u1"))
		m.Cancel("u1")
		assert.False(t, m.Active("u1"))
	})

	t.Run("watch replaces the previous task", func(t *testing.T) {
		m := NewMonitor(5*time.Millisecond, clock)
		defer m.Close()

		var first int32
		m.Watch("u1", func(ctx context.Context, now time.Time) bool {
			atomic.AddInt32(&first, 1)
			return false
		})
		m.Watch("u1", func(ctx context.Context, now time.Time) bool { return false })
		assert.Equal(t, 1, m.Len())

		time.Sleep(20 * time.Millisecond)
		seen := atomic.LoadInt32(&first)
		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, seen, atomic.LoadInt32(&first))
	})

	t.Run("close waits for every task", func(t *testing.T) {
		m := NewMonitor(5*time.Millisecond, clock)
		var running int32
		for _, key := range []string{"a", "b", "c"} {
			m.Watch(key, func(ctx context.Context, now time.Time) bool {
				atomic.StoreInt32(&running, 1)
				return false
			})
		}
		m.Close()
		assert.Equal(t, 0, m.Len())

		m.Watch("d", func(ctx context.Context, now time.Time) bool { return false })
		assert.False(t, m.Active("d"))
	})
}
