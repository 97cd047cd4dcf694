package reactive

import (
	"sync"
	"testing"

	"github.com/cyberinsights/inkwell/pkg/scheduler"
	"github.com/cyberinsights/inkwell/pkg/vdom"
)

func TestState_GetSet(t *testing.T) {
	sched := scheduler.NewScheduler()
	state := NewState(42, sched)

	if got := state.Get(); got != 42 {
		t.Errorf("Expected initial value 42, got %d", got)
	}

	state.Set(100)
	if got := state.Get(); got != 100 {
		t.Errorf("Expected value 100 after Set, got %d", got)
	}
}

func TestState_DependencyTracking(t *testing.T) {
	sched := scheduler.NewScheduler()
	state := NewState("hello", sched)

	renderCount := 0
	fiber := sched.CreateFiber(func() *vdom.VNode {
		renderCount++
		return vdom.NewText(state.Get())
	}, nil)

	// Initial render subscribes the fiber
	sched.Flush()
	if renderCount != 1 {
		t.Fatalf("Expected 1 initial render, got %d", renderCount)
	}

	state.Set("world")
	if !fiber.IsDirty() {
		t.Fatal("Set should mark the dependent fiber dirty")
	}
	sched.Flush()

	if renderCount != 2 {
		t.Errorf("Expected 2 renders after state update, got %d", renderCount)
	}
	if fiber.VNode().Text != "world" {
		t.Errorf("Expected rendered text 'world', got %q", fiber.VNode().Text)
	}
}

func TestState_PeekDoesNotSubscribe(t *testing.T) {
	sched := scheduler.NewScheduler()
	state := NewState(1, sched)

	fiber := sched.CreateFiber(func() *vdom.VNode {
		_ = state.Peek()
		return nil
	}, nil)
	sched.Flush()

	state.Set(2)
	if fiber.IsDirty() {
		t.Error("Peek should not subscribe the rendering fiber")
	}
}

func TestState_SetEqualValueStillNotifies(t *testing.T) {
	state := NewState(false, nil)

	calls := 0
	stop := state.Watch(func(bool) { calls++ })
	defer stop()

	state.Set(false)
	state.Set(false)

	if calls != 2 {
		t.Errorf("Expected 2 notifications, got %d", calls)
	}
}

func TestState_Update(t *testing.T) {
	state := NewState(10, nil)

	state.Update(func(v int) int {
		return v * 2
	})

	if got := state.Get(); got != 20 {
		t.Errorf("Expected value 20 after Update, got %d", got)
	}
}

func TestState_WatchStop(t *testing.T) {
	state := NewState(0, nil)

	var seen []int
	stop := state.Watch(func(v int) { seen = append(seen, v) })

	state.Set(1)
	state.Update(func(v int) int { return v + 1 })
	stop()
	stop() // idempotent
	state.Set(3)

	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("Watch saw %v, want [1 2]", seen)
	}
}

func TestState_Unsubscribe(t *testing.T) {
	sched := scheduler.NewScheduler()
	state := NewState(0, sched)

	fiber := sched.CreateFiber(func() *vdom.VNode {
		_ = state.Get()
		return nil
	}, nil)
	sched.Flush()

	state.Unsubscribe(fiber)
	state.Set(5)

	if fiber.IsDirty() {
		t.Error("Unsubscribed fiber should not be marked dirty")
	}
}

func TestState_ConcurrentAccess(t *testing.T) {
	sched := scheduler.NewScheduler()
	state := NewState(0, sched)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func(val int) {
			defer wg.Done()
			state.Set(val)
		}(i)
		go func() {
			defer wg.Done()
			_ = state.Get()
		}()
	}
	wg.Wait()
}

type countingScheduler struct {
	marks map[uint32]int
}

func (c *countingScheduler) MarkDirty(f *scheduler.Fiber) {
	c.marks[f.ID()]++
}

func TestRunBatch_CoalescesMarks(t *testing.T) {
	sched := scheduler.NewScheduler()
	counter := &countingScheduler{marks: make(map[uint32]int)}

	a := NewState(0, counter)
	b := NewState("", counter)

	fiber := sched.CreateFiber(func() *vdom.VNode { return nil }, nil)
	a.Subscribe(fiber)
	b.Subscribe(fiber)

	RunBatch(counter, func() {
		a.Set(1)
		a.Set(2)
		b.Set("x")
		if len(counter.marks) != 0 {
			t.Error("Marks should be deferred until the batch commits")
		}
	})

	if counter.marks[fiber.ID()] != 1 {
		t.Errorf("Expected one coalesced mark, got %d", counter.marks[fiber.ID()])
	}
}
