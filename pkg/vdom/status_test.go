package vdom

import "testing"

type point struct {
	X, Y int
}

func TestStatusSetStateMarksDirtyOnce(t *testing.T) {
	s := NewStatus[point](nil)
	s.Refresh()

	s.SetState(func(p *point) { p.X = 1 })
	if !s.TakeStateDirty() {
		t.Fatal("TakeStateDirty() = false after a real change, want true")
	}
	if s.TakeStateDirty() {
		t.Error("TakeStateDirty() = true on second take, want false")
	}
	if got := s.State(); got.X != 1 {
		t.Errorf("State().X = %d, want 1", got.X)
	}
}

func TestStatusNoopMutationStaysClean(t *testing.T) {
	s := NewStatus[point](nil)
	s.SetState(func(p *point) { p.X = 3 })
	s.TakeStateDirty()
	s.Refresh()

	s.SetState(func(p *point) { p.X = 3 })
	if s.TakeStateDirty() {
		t.Error("TakeStateDirty() = true after writing the observed value, want false")
	}
}

func TestStatusRevertBeforeRefreshStaysDirty(t *testing.T) {
	s := NewStatus[point](nil)
	s.Refresh()

	s.SetState(func(p *point) { p.X = 7 })
	// The flag is sticky until taken; reverting the value does not clear a
	// change that was already recorded.
	s.SetState(func(p *point) { p.X = 0 })
	if !s.TakeStateDirty() {
		t.Error("TakeStateDirty() = false after dirty-then-revert, want true")
	}
}

func TestStatusNotifyFiresOnEverySet(t *testing.T) {
	calls := 0
	s := NewStatus[point](func() { calls++ })
	s.Refresh()

	s.SetState(func(p *point) { p.X = 1 })
	s.SetState(func(p *point) { p.X = 1 })
	if calls != 2 {
		t.Errorf("notify fired %d times, want 2", calls)
	}
}

func TestStatusRefreshSettlesBaseline(t *testing.T) {
	s := NewStatus[point](nil)
	s.SetState(func(p *point) { p.Y = 5 })
	s.TakeStateDirty()

	if got := s.Refresh(); got.Y != 5 {
		t.Fatalf("Refresh().Y = %d, want 5", got.Y)
	}
	s.SetState(func(p *point) { p.Y = 5 })
	if s.TakeStateDirty() {
		t.Error("TakeStateDirty() = true after re-writing the refreshed value, want false")
	}
}

func TestStatusPropsDirtyRoundTrip(t *testing.T) {
	s := NewStatus[point](nil)
	if s.TakePropsDirty() {
		t.Fatal("TakePropsDirty() = true on a fresh cell, want false")
	}
	s.MarkPropsDirty()
	if !s.TakePropsDirty() {
		t.Error("TakePropsDirty() = false after MarkPropsDirty, want true")
	}
	if s.TakePropsDirty() {
		t.Error("TakePropsDirty() = true on second take, want false")
	}
}
