package moderation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Scheduler runs delayed one-shot tasks that can be cancelled individually,
// awaited, or all cancelled at shutdown.
type Scheduler struct {
	mu      sync.Mutex
	idle    *sync.Cond
	tasks   map[string]context.CancelFunc
	running int
	closed  bool
}

func NewScheduler() *Scheduler {
	s := &Scheduler{tasks: make(map[string]context.CancelFunc)}
	s.idle = sync.NewCond(&s.mu)
	return s
}

// After runs fn once delay has elapsed and returns the task ID. fn is not run
// when the task is cancelled first. After returns "" once the scheduler is
// closed.
func (s *Scheduler) After(delay time.Duration, fn func(ctx context.Context)) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || fn == nil {
		return ""
	}

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	s.tasks[id] = cancel
	s.running++

	go func() {
		defer s.finish(id)

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		fn(ctx)
	}()

	return id
}

func (s *Scheduler) finish(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cancel, ok := s.tasks[id]; ok {
		cancel()
		delete(s.tasks, id)
	}
	s.running--
	if s.running == 0 {
		s.idle.Broadcast()
	}
}

// Cancel stops a pending task. It reports false when the task already ran or
// does not exist.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	cancel, ok := s.tasks[id]
	delete(s.tasks, id)
	s.mu.Unlock()
	if ok {
		cancel()
	}
	return ok
}

func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Wait blocks until every scheduled task has run or been cancelled. Tasks
// scheduled while Wait is blocked are awaited too.
func (s *Scheduler) Wait() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.running > 0 {
		s.idle.Wait()
	}
}

// Close cancels all pending tasks and waits for running ones to return.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	for id, cancel := range s.tasks {
		cancel()
		delete(s.tasks, id)
	}
	for s.running > 0 {
		s.idle.Wait()
	}
	s.mu.Unlock()
}
