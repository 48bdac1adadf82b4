// Package schedule runs delayed callbacks against a game-time clock that
// only moves when the owner calls Advance. Nothing here starts goroutines;
// callbacks run on the caller's goroutine in due order.
package schedule

import "sort"

type task struct {
	seq      uint64
	due      float64
	fn       func()
	canceled bool
	done     bool
}

// Handle refers to a scheduled callback.
type Handle struct {
	t *task
}

// Cancel prevents the callback from running. It reports whether the call
// had any effect (false once the task ran or was already canceled).
func (h Handle) Cancel() bool {
	if h.t == nil || h.t.done || h.t.canceled {
		return false
	}
	h.t.canceled = true
	return true
}

// Active reports whether the callback is still waiting to run.
func (h Handle) Active() bool {
	return h.t != nil && !h.t.done && !h.t.canceled
}

type Scheduler struct {
	now   float64
	seq   uint64
	tasks []*task
}

func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() float64 { return s.now }

// After schedules fn to run once delay seconds have elapsed. A non-positive
// delay runs fn on the next Advance.
func (s *Scheduler) After(delay float64, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := &task{seq: s.seq, due: s.now + delay, fn: fn}
	s.tasks = append(s.tasks, t)
	return Handle{t: t}
}

// Advance moves time forward by dt and runs every task due at the new time,
// earliest first, ties in scheduling order. Tasks scheduled by a callback
// run in the same Advance if they are already due. It returns the number of
// callbacks run.
func (s *Scheduler) Advance(dt float64) int {
	if dt > 0 {
		s.now += dt
	}
	ran := 0
	for {
		t := s.popDue()
		if t == nil {
			return ran
		}
		t.done = true
		if t.fn != nil {
			t.fn()
		}
		ran++
	}
}

func (s *Scheduler) popDue() *task {
	s.compact()
	if len(s.tasks) == 0 {
		return nil
	}
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].due != s.tasks[j].due {
			return s.tasks[i].due < s.tasks[j].due
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})
	t := s.tasks[0]
	if t.due > s.now {
		return nil
	}
	s.tasks = s.tasks[1:]
	return t
}

func (s *Scheduler) compact() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.canceled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}

// Pending returns the number of tasks waiting to run.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.canceled {
			n++
		}
	}
	return n
}

// Reset cancels every pending task and rewinds the clock to zero.
func (s *Scheduler) Reset() {
	for _, t := range s.tasks {
		t.canceled = true
	}
	s.tasks = nil
	s.now = 0
}
