package emotion_test

import (
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/easeaico/virtual-companion/internal/emotion"
)

type fakeTimer struct {
	delay   time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) emotion.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{delay: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// fire runs every live timer as if its delay elapsed.
func (c *fakeClock) fire() {
	c.mu.Lock()
	var live []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			live = append(live, t)
		}
	}
	c.mu.Unlock()

	for _, t := range live {
		t.f()
	}
}

func TestRelax(t *testing.T) {
	gt.Equal(t, emotion.Relax(90), 72.0)
	gt.Equal(t, emotion.Relax(35), emotion.BaseIntensity)
	gt.Equal(t, emotion.Relax(10), emotion.BaseIntensity)
}

func TestDecayAppliesAfterQuietInterval(t *testing.T) {
	clock := &fakeClock{}
	s := emotion.NewDecayScheduler(clock.AfterFunc)

	var got []float64
	s.Schedule(90, func(v float64) { got = append(got, v) })
	gt.True(t, s.Pending())
	gt.A(t, clock.timers).Length(1)
	gt.Equal(t, clock.timers[0].delay, emotion.DecayInterval)

	clock.fire()
	gt.A(t, got).Length(1)
	gt.Equal(t, got[0], 72.0)
	gt.False(t, s.Pending())
}

func TestDecayRescheduleReplacesPending(t *testing.T) {
	clock := &fakeClock{}
	s := emotion.NewDecayScheduler(clock.AfterFunc)

	var got []float64
	apply := func(v float64) { got = append(got, v) }
	s.Schedule(90, apply)
	s.Schedule(50, apply)

	gt.True(t, clock.timers[0].stopped)
	clock.fire()
	gt.A(t, got).Length(1)
	gt.Equal(t, got[0], 40.0)
}

func TestDecayStaleFireIsIgnored(t *testing.T) {
	clock := &fakeClock{}
	s := emotion.NewDecayScheduler(clock.AfterFunc)

	var got []float64
	s.Schedule(90, func(v float64) { got = append(got, v) })
	stale := clock.timers[0]
	s.Schedule(60, func(v float64) { got = append(got, v) })

	// the first timer's callback runs anyway, as if it fired before Stop
	stale.f()
	gt.A(t, got).Length(0)
}

func TestDecayCancel(t *testing.T) {
	clock := &fakeClock{}
	s := emotion.NewDecayScheduler(clock.AfterFunc)

	called := false
	s.Schedule(90, func(float64) { called = true })
	s.Cancel()
	gt.False(t, s.Pending())

	clock.fire()
	gt.False(t, called)
}

func TestDecayCancelAfterFireIsNoop(t *testing.T) {
	clock := &fakeClock{}
	s := emotion.NewDecayScheduler(clock.AfterFunc)

	count := 0
	s.Schedule(90, func(float64) { count++ })
	clock.fire()
	s.Cancel()
	s.Cancel()
	gt.Equal(t, count, 1)
	gt.False(t, s.Pending())
}

func TestDecayWithRealTimer(t *testing.T) {
	s := emotion.NewDecayScheduler(func(d time.Duration, f func()) emotion.Timer {
		return time.AfterFunc(time.Millisecond, f)
	})

	done := make(chan float64, 1)
	s.Schedule(100, func(v float64) { done <- v })

	select {
	case v := <-done:
		gt.Equal(t, v, 80.0)
	case <-time.After(time.Second):
		t.Fatal("decay did not fire")
	}
}
