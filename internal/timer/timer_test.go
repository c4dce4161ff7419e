package timer

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time { return c.current }

func (c *fakeClock) advance(d time.Duration) { c.current = c.current.Add(d) }

type fakeRecorder struct {
	intervals []Interval
	err       error
}

func (r *fakeRecorder) Record(_ context.Context, interval Interval) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.intervals = append(r.intervals, interval)
	return "session-1", nil
}

func newTestTimer(recorder Recorder) (*Timer, *fakeClock) {
	clock := &fakeClock{current: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	t := New("user-1", recorder)
	t.now = clock.now
	return t, clock
}

func TestElapsedFloorsToWholeSeconds(t *testing.T) {
	tm, clock := newTestTimer(&fakeRecorder{})

	tm.Start()
	clock.advance(1500 * time.Millisecond)

	if got := tm.Elapsed(); got != 1 {
		t.Fatalf("expected 1 elapsed second at +1500ms, got %d", got)
	}
}

func TestElapsedClampsClockSkew(t *testing.T) {
	tm, clock := newTestTimer(&fakeRecorder{})

	tm.Start()
	clock.advance(-10 * time.Second)

	if got := tm.Elapsed(); got != 0 {
		t.Fatalf("elapsed should never go negative, got %d", got)
	}
}

func TestStartIsNoOpWhileRunning(t *testing.T) {
	tm, clock := newTestTimer(&fakeRecorder{})

	tm.Start()
	clock.advance(5 * time.Second)
	tm.Start() // ne doit pas redémarrer l'intervalle

	if got := tm.Elapsed(); got != 5 {
		t.Fatalf("second Start should not reset the interval, got %d", got)
	}
}

func TestStopRecordsMinimumOneSecond(t *testing.T) {
	recorder := &fakeRecorder{}
	tm, _ := newTestTimer(recorder)

	tm.Start()
	interval, err := tm.Stop(context.Background(), "math", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if interval.DurationSeconds != 1 {
		t.Fatalf("zero-length stop should record 1 second, got %d", interval.DurationSeconds)
	}
	if len(recorder.intervals) != 1 {
		t.Fatalf("interval should have been persisted")
	}
}

func TestStopDerivesSyntheticStartTime(t *testing.T) {
	recorder := &fakeRecorder{}
	tm, clock := newTestTimer(recorder)

	tm.Start()
	clock.advance(90 * time.Second)

	interval, err := tm.Stop(context.Background(), "math", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if interval.DurationSeconds != 90 {
		t.Fatalf("expected 90s duration, got %d", interval.DurationSeconds)
	}
	want := interval.EndTime.Add(-90 * time.Second)
	if !interval.StartTime.Equal(want) {
		t.Fatalf("start time should be endTime - duration, got %v", interval.StartTime)
	}
}

func TestStopKeepsLocalTransitionOnRecorderFailure(t *testing.T) {
	recorder := &fakeRecorder{err: errors.New("backend down")}
	tm, clock := newTestTimer(recorder)

	tm.Start()
	clock.advance(10 * time.Second)

	_, err := tm.Stop(context.Background(), "math", nil)
	if err == nil {
		t.Fatalf("expected persistence error to surface")
	}
	// L'arrêt local n'est pas annulé même si la persistance échoue
	if tm.Running() {
		t.Fatalf("timer should stay stopped after recorder failure")
	}
}

func TestResetIsIdempotent(t *testing.T) {
	tm, clock := newTestTimer(&fakeRecorder{})

	tm.Reset()
	if tm.Running() || tm.Elapsed() != 0 {
		t.Fatalf("reset from idle should stay idle at zero")
	}

	tm.Start()
	clock.advance(30 * time.Second)
	tm.Reset()
	if tm.Running() || tm.Elapsed() != 0 {
		t.Fatalf("reset from running should return to idle at zero")
	}

	// Un nouveau départ repart d'un intervalle neuf
	tm.Start()
	clock.advance(2 * time.Second)
	if got := tm.Elapsed(); got != 2 {
		t.Fatalf("fresh interval after reset should not see prior history, got %d", got)
	}
}

func TestRegistryReturnsSameTimerPerUser(t *testing.T) {
	registry := NewRegistry(&fakeRecorder{})

	a := registry.Get("user-1")
	b := registry.Get("user-1")
	c := registry.Get("user-2")

	if a != b {
		t.Fatalf("same user should get the same timer")
	}
	if a == c {
		t.Fatalf("different users should get different timers")
	}
}
