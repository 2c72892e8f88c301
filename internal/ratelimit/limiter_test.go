package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 5, 2, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(clock *fakeClock) *Limiter {
	l := New(5*time.Second, 30*time.Second)
	l.now = clock.now
	return l
}

func TestShouldLimitAdmitsFirstEvent(t *testing.T) {
	l := newTestLimiter(newFakeClock())

	assert.False(t, l.ShouldLimit(1, "wrongStateMedia"))
	assert.Equal(t, 1, l.Len())
}

func TestShouldLimitRejectsSecondEventInWindow(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(clock)

	assert.False(t, l.ShouldLimit(1, "wrongStateMedia"))
	clock.advance(2 * time.Second)
	assert.True(t, l.ShouldLimit(1, "wrongStateMedia"))
	clock.advance(2 * time.Second)
	assert.True(t, l.ShouldLimit(1, "wrongStateMedia"))
}

func TestShouldLimitAdmitsAfterWindowElapsed(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(clock)

	assert.False(t, l.ShouldLimit(1, "wrongStateMedia"))
	clock.advance(5*time.Second + time.Millisecond)
	assert.False(t, l.ShouldLimit(1, "wrongStateMedia"))
}

func TestShouldLimitRefreshesTimestampOnReject(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(clock)

	assert.False(t, l.ShouldLimit(1, "wrongStateMedia"))
	clock.advance(4 * time.Second)
	// Rejected, but the window slides forward with the rejection.
	assert.True(t, l.ShouldLimit(1, "wrongStateMedia"))
	clock.advance(4 * time.Second)
	assert.True(t, l.ShouldLimit(1, "wrongStateMedia"))
	clock.advance(6 * time.Second)
	assert.False(t, l.ShouldLimit(1, "wrongStateMedia"))
}

func TestShouldLimitKeysAreIndependent(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(clock)

	assert.False(t, l.ShouldLimit(1, "wrongStateMedia"))
	assert.False(t, l.ShouldLimit(2, "wrongStateMedia"))
	assert.False(t, l.ShouldLimit(1, "spam"))
	assert.True(t, l.ShouldLimit(1, "wrongStateMedia"))
	assert.Equal(t, 3, l.Len())
}

func TestSweepEvictsIdleEntries(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(clock)

	l.ShouldLimit(1, "wrongStateMedia")
	clock.advance(10 * time.Second)
	l.ShouldLimit(2, "wrongStateMedia")

	clock.advance(25 * time.Second)
	evicted := l.SweepOnce()

	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, l.Len())
}

func TestEvictedEntryTreatedAsFirstEver(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(clock)

	assert.False(t, l.ShouldLimit(1, "wrongStateMedia"))
	clock.advance(31 * time.Second)
	assert.Equal(t, 1, l.SweepOnce())
	assert.False(t, l.ShouldLimit(1, "wrongStateMedia"))
	assert.True(t, l.ShouldLimit(1, "wrongStateMedia"))
}
