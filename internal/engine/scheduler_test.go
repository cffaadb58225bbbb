package engine

import (
	"reflect"
	"testing"
)

func TestSchedulerRunsInDueOrder(t *testing.T) {
	var s Scheduler
	var order []string

	s.After(30, 1, func() { order = append(order, "dealer") })
	s.After(6, 1, func() { order = append(order, "card1") })
	s.After(15, 1, func() { order = append(order, "card2") })
	s.After(15, 1, func() { order = append(order, "card2b") })

	if n := s.Advance(5, 1); n != 0 {
		t.Fatalf("nothing is due after 5 ticks, ran %d", n)
	}
	s.Advance(10, 1)
	if !reflect.DeepEqual(order, []string{"card1", "card2", "card2b"}) {
		t.Errorf("order = %v", order)
	}
	s.Advance(20, 1)
	if len(order) != 4 || order[3] != "dealer" {
		t.Errorf("order = %v", order)
	}
	if s.Len() != 0 {
		t.Errorf("fired tasks should be removed, %d pending", s.Len())
	}
}

func TestSchedulerDropsStaleGeneration(t *testing.T) {
	var s Scheduler
	fired := false
	s.After(5, 1, func() { fired = true })

	s.Advance(10, 2)
	if fired {
		t.Error("stale callback ran after the session changed")
	}
	if s.Len() != 0 {
		t.Error("stale callbacks should be discarded")
	}
}

func TestSchedulerChainedTasks(t *testing.T) {
	var s Scheduler
	count := 0
	var draw func()
	draw = func() {
		count++
		if count < 3 {
			s.After(0, 1, draw)
		}
	}
	s.After(1, 1, draw)

	s.Advance(1, 1)
	if count != 3 {
		t.Errorf("zero-delay follow-ups should run in the same advance, count=%d", count)
	}
}

func TestSchedulerCancel(t *testing.T) {
	var s Scheduler
	s.After(1, 1, func() { t.Error("cancelled task ran") })
	s.Cancel()
	s.Advance(5, 1)
}
