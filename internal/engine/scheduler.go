package engine

import "sort"

type task struct {
	due float64
	seq int
	gen uint64
	fn  func()
}

// Scheduler runs delayed effects on simulation time. Each task remembers
// the session generation it was scheduled under; tasks from an older
// generation are dropped instead of run. Generations only grow.
type Scheduler struct {
	now   float64
	seq   int
	tasks []task
}

// After schedules fn to run once ticks have elapsed.
func (s *Scheduler) After(ticks float64, gen uint64, fn func()) {
	if ticks < 0 {
		ticks = 0
	}
	s.seq++
	s.tasks = append(s.tasks, task{due: s.now + ticks, seq: s.seq, gen: gen, fn: fn})
}

// Advance moves time forward by dt and runs due tasks in due order.
// Tasks scheduled by a running task fire in the same call if already due.
// It returns the number of tasks that ran.
func (s *Scheduler) Advance(dt float64, gen uint64) int {
	if dt > 0 {
		s.now += dt
	}

	ran := 0
	for {
		s.dropStale(gen)
		t, ok := s.take(s.nextDue(gen))
		if !ok {
			return ran
		}
		t.fn()
		ran++
	}
}

func (s *Scheduler) nextDue(gen uint64) int {
	best := -1
	for i, t := range s.tasks {
		if t.gen != gen || t.due > s.now {
			continue
		}
		if best < 0 || t.due < s.tasks[best].due ||
			(t.due == s.tasks[best].due && t.seq < s.tasks[best].seq) {
			best = i
		}
	}
	return best
}

func (s *Scheduler) take(i int) (task, bool) {
	if i < 0 || i >= len(s.tasks) {
		return task{}, false
	}
	t := s.tasks[i]
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return t, true
}

func (s *Scheduler) dropStale(gen uint64) {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.gen >= gen {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
}

// Cancel drops every pending task.
func (s *Scheduler) Cancel() {
	s.tasks = s.tasks[:0]
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Pending returns the due times of pending tasks, soonest first.
func (s *Scheduler) Pending() []float64 {
	out := make([]float64, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.due-s.now)
	}
	sort.Float64s(out)
	return out
}
