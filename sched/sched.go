// Package sched runs repeating tasks and one-shot jobs on a single
// goroutine, so no two handlers ever execute concurrently. Components
// mutate shared state only from inside this executor.
package sched

import (
	"context"
	"sync"
	"time"
)

// Task is a repeating job. Start and Stop are safe to call from any
// goroutine; the function itself only ever runs on the executor.
type Task struct {
	s        *Scheduler
	interval time.Duration
	fn       func()
	cleanup  func()

	running bool
	next    time.Time
}

// Scheduler owns the executor goroutine.
type Scheduler struct {
	mu    sync.Mutex
	tasks map[*Task]struct{}
	jobs  chan func()
	wake  chan struct{}
}

func New() *Scheduler {
	return &Scheduler{
		tasks: make(map[*Task]struct{}),
		jobs:  make(chan func(), 64),
		wake:  make(chan struct{}, 1),
	}
}

// Repeat creates a stopped task firing every interval once started.
func (s *Scheduler) Repeat(interval time.Duration, fn func()) *Task {
	return &Task{s: s, interval: interval, fn: fn}
}

// Do queues fn for execution on the executor goroutine. Input events
// (pads, faders) are funneled through here.
func (s *Scheduler) Do(fn func()) {
	select {
	case s.jobs <- fn:
		s.poke()
	default:
		// Executor is badly backed up; dropping beats deadlocking the
		// MIDI listen callback.
	}
}

func (s *Scheduler) poke() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// SetCleanup registers a hook that runs on the executor whenever the
// task stops, so a killed task never leaves drawn state behind.
func (t *Task) SetCleanup(fn func()) {
	t.cleanup = fn
}

func (t *Task) Start() {
	t.s.mu.Lock()
	if !t.running {
		t.running = true
		t.next = time.Now().Add(t.interval)
		t.s.tasks[t] = struct{}{}
	}
	t.s.mu.Unlock()
	t.s.poke()
}

// Stop deschedules the task and queues its cleanup hook. The task will
// not fire again after Stop returns.
func (t *Task) Stop() {
	t.s.mu.Lock()
	wasRunning := t.running
	t.running = false
	delete(t.s.tasks, t)
	t.s.mu.Unlock()
	if wasRunning && t.cleanup != nil {
		t.s.Do(t.cleanup)
	}
}

func (t *Task) Running() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return t.running
}

// Run executes tasks and jobs until ctx is cancelled. Blocking; run in
// a goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		// Drain queued jobs first so input stays ahead of polling.
		for {
			select {
			case job := <-s.jobs:
				job()
				continue
			default:
			}
			break
		}

		next, any := s.runDue(time.Now())

		wait := time.Hour
		if any {
			wait = time.Until(next)
			if wait < 0 {
				wait = 0
			}
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case <-ctx.Done():
			return
		case job := <-s.jobs:
			job()
		case <-s.wake:
		case <-timer.C:
		}
	}
}

// runDue fires every due task once and returns the earliest upcoming
// deadline.
func (s *Scheduler) runDue(now time.Time) (next time.Time, any bool) {
	s.mu.Lock()
	var due []*Task
	for t := range s.tasks {
		if !t.next.After(now) {
			due = append(due, t)
			t.next = now.Add(t.interval)
		}
	}
	s.mu.Unlock()

	for _, t := range due {
		// Re-check: a task may have been stopped by an earlier task in
		// this same batch.
		if t.Running() {
			t.fn()
		}
	}

	s.mu.Lock()
	for t := range s.tasks {
		if !any || t.next.Before(next) {
			next = t.next
			any = true
		}
	}
	s.mu.Unlock()
	return next, any
}
