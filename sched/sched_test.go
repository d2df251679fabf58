package sched

import (
	"context"
	"testing"
	"time"
)

func runScheduler(t *testing.T) *Scheduler {
	t.Helper()
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go s.Run(ctx)
	return s
}

func TestDoRunsOnExecutor(t *testing.T) {
	s := runScheduler(t)

	done := make(chan struct{})
	s.Do(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job never ran")
	}
}

func TestJobsRunInOrder(t *testing.T) {
	s := runScheduler(t)

	var got []int
	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		i := i
		s.Do(func() { got = append(got, i) })
	}
	s.Do(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("jobs never drained")
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("order = %v", got)
		}
	}
}

func TestRepeatFiresUntilStopped(t *testing.T) {
	s := runScheduler(t)

	fired := make(chan struct{}, 64)
	task := s.Repeat(5*time.Millisecond, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	if task.Running() {
		t.Fatal("task running before Start")
	}
	task.Start()

	for i := 0; i < 2; i++ {
		select {
		case <-fired:
		case <-time.After(2 * time.Second):
			t.Fatal("task did not fire")
		}
	}

	task.Stop()
	if task.Running() {
		t.Fatal("task still running after Stop")
	}

	// Drain anything in flight, then confirm silence.
	time.Sleep(50 * time.Millisecond)
	for len(fired) > 0 {
		<-fired
	}
	select {
	case <-fired:
		t.Error("task fired after Stop")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStopRunsCleanup(t *testing.T) {
	s := runScheduler(t)

	cleaned := make(chan struct{}, 1)
	task := s.Repeat(time.Hour, func() {})
	task.SetCleanup(func() { cleaned <- struct{}{} })

	task.Start()
	task.Stop()

	select {
	case <-cleaned:
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup never ran")
	}

	// Stopping a stopped task must not re-run cleanup.
	task.Stop()
	select {
	case <-cleaned:
		t.Error("cleanup ran twice")
	case <-time.After(50 * time.Millisecond):
	}
}
