package fasting

import (
	"context"
	"sync"
	"time"
)

// TickFunc runs on every tick of a watched fast. Returning true ends the
// task.
type TickFunc func(ctx context.Context, now time.Time) (done bool)

type task struct {
	id     uint64
	cancel context.CancelFunc
}

// Monitor runs one periodic task per key. Watching a key again replaces its
// task, and Close cancels everything and waits for the goroutines to exit.
type Monitor struct {
	interval time.Duration
	clock    Clock

	mu     sync.Mutex
	tasks  map[string]task
	nextID uint64
	closed bool
	wg     sync.WaitGroup
}

// NewMonitor creates a monitor ticking at interval.
func NewMonitor(interval time.Duration, clock Clock) *Monitor {
	if interval <= 0 {
		interval = time.Second
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Monitor{
		interval: interval,
		clock:    clock,
		tasks:    make(map[string]task),
	}
}

// Watch starts fn for key, replacing any running task for the same key. fn
// is called once immediately and then on every tick.
func (m *Monitor) Watch(key string, fn TickFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	if t, ok := m.tasks[key]; ok {
		t.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.nextID++
	id := m.nextID
	m.tasks[key] = task{id: id, cancel: cancel}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer m.release(key, id)
		m.run(ctx, fn)
	}()
}

func (m *Monitor) run(ctx context.Context, fn TickFunc) {
	if fn(ctx, m.clock.Now()) {
		return
	}
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			if fn(ctx, m.clock.Now()) {
				return
			}
		}
	}
}

// release drops the task entry if it still belongs to the finished goroutine.
func (m *Monitor) release(key string, id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[key]; ok && t.id == id {
		t.cancel()
		delete(m.tasks, key)
	}
}

// Cancel stops the task for key, if any.
func (m *Monitor) Cancel(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[key]; ok {
		t.cancel()
		delete(m.tasks, key)
	}
}

// Active reports whether a task is running for key.
func (m *Monitor) Active(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tasks[key]
	return ok
}

// Len returns the number of running tasks.
func (m *Monitor) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Close cancels all tasks and blocks until they have returned. Later calls
// to Watch are ignored.
func (m *Monitor) Close() {
	m.mu.Lock()
	m.closed = true
	for key, t := range m.tasks {
		t.cancel()
		delete(m.tasks, key)
	}
	m.mu.Unlock()
	m.wg.Wait()
}
