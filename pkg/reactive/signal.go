package reactive

import (
	"sync"
	"sync/atomic"

	"github.com/cyberinsights/inkwell/pkg/scheduler"
)

// Scheduler interface for reactive system
type Scheduler interface {
	MarkDirty(fiber *scheduler.Fiber)
}

// debugLog is set by platform-specific code
var debugLog func(args ...interface{})

// SetDebugLog sets the debug logging function
func SetDebugLog(fn func(args ...interface{})) {
	debugLog = fn
}

// SetCurrentFiber sets the fiber that Get calls subscribe.
// The scheduler does this around every render.
func SetCurrentFiber(fiber *scheduler.Fiber) {
	scheduler.SetCurrent(fiber)
}

// GetCurrentFiber returns the current fiber
func GetCurrentFiber() *scheduler.Fiber {
	return scheduler.Current()
}

// Signal is the interface for reactive values
type Signal[T any] interface {
	Get() T
	Set(T)
	Subscribe(fiber *scheduler.Fiber)
	Unsubscribe(fiber *scheduler.Fiber)
}

// State represents a reactive state value
type State[T any] struct {
	value T
	mu    sync.RWMutex

	// fibers that depend on this signal
	deps      map[uint32]*scheduler.Fiber
	watchers  map[uint64]func(T)
	nextWatch uint64
	depsMu    sync.RWMutex
	scheduler Scheduler
}

// NewState creates a new reactive state. sched may be nil for state that
// is only observed through Watch.
func NewState[T any](initial T, sched Scheduler) *State[T] {
	return &State[T]{
		value:     initial,
		deps:      make(map[uint32]*scheduler.Fiber),
		watchers:  make(map[uint64]func(T)),
		scheduler: sched,
	}
}

// Get returns the current value and tracks dependencies
func (s *State[T]) Get() T {
	if fiber := GetCurrentFiber(); fiber != nil {
		s.Subscribe(fiber)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Peek returns the current value without subscribing the rendering fiber
func (s *State[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies dependents. Equal values still notify.
func (s *State[T]) Set(value T) {
	s.mu.Lock()
	s.value = value
	s.mu.Unlock()

	s.notify(value)
}

// Update atomically reads, modifies, and writes the value
func (s *State[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.value = fn(s.value)
	newValue := s.value
	s.mu.Unlock()

	s.notify(newValue)
}

// Watch calls fn with every new value until stop is called
func (s *State[T]) Watch(fn func(T)) (stop func()) {
	s.depsMu.Lock()
	id := s.nextWatch
	s.nextWatch++
	s.watchers[id] = fn
	s.depsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.depsMu.Lock()
			delete(s.watchers, id)
			s.depsMu.Unlock()
		})
	}
}

// Subscribe adds a fiber as a dependency
func (s *State[T]) Subscribe(fiber *scheduler.Fiber) {
	if fiber == nil {
		return
	}

	s.depsMu.Lock()
	defer s.depsMu.Unlock()
	s.deps[fiber.ID()] = fiber
}

// Unsubscribe removes a fiber as a dependency
func (s *State[T]) Unsubscribe(fiber *scheduler.Fiber) {
	if fiber == nil {
		return
	}

	s.depsMu.Lock()
	defer s.depsMu.Unlock()
	delete(s.deps, fiber.ID())
}

// notify marks dependents dirty outside the locks to avoid deadlock
func (s *State[T]) notify(value T) {
	s.depsMu.RLock()
	deps := make([]*scheduler.Fiber, 0, len(s.deps))
	for _, fiber := range s.deps {
		deps = append(deps, fiber)
	}
	watchers := make([]func(T), 0, len(s.watchers))
	for _, fn := range s.watchers {
		watchers = append(watchers, fn)
	}
	s.depsMu.RUnlock()

	if debugLog != nil {
		debugLog("[State] Set:", value, "deps:", len(deps), "watchers:", len(watchers))
	}

	for _, fiber := range deps {
		markDirtyOrBatch(s.scheduler, fiber)
	}
	for _, fn := range watchers {
		fn(value)
	}
}

// batchContext holds the current batch state
var batchContext atomic.Pointer[Batch]

// Batch allows multiple state updates without triggering re-renders until the batch completes
type Batch struct {
	scheduler   Scheduler
	dirtyFibers map[uint32]*scheduler.Fiber
	order       []*scheduler.Fiber
	mu          sync.Mutex
	active      bool
}

// NewBatch creates a new batch context
func NewBatch(sched Scheduler) *Batch {
	return &Batch{
		scheduler:   sched,
		dirtyFibers: make(map[uint32]*scheduler.Fiber),
		active:      true,
	}
}

// Add adds a fiber to the batch
func (b *Batch) Add(fiber *scheduler.Fiber) {
	if fiber == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.active {
		return
	}
	if _, seen := b.dirtyFibers[fiber.ID()]; !seen {
		b.dirtyFibers[fiber.ID()] = fiber
		b.order = append(b.order, fiber)
	}
}

// Len returns the number of distinct fibers collected so far
func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.order)
}

// Commit marks every collected fiber dirty once, in first-seen order
func (b *Batch) Commit() {
	b.mu.Lock()
	b.active = false
	fibers := b.order
	b.order = nil
	b.dirtyFibers = nil
	b.mu.Unlock()

	if b.scheduler == nil {
		return
	}
	for _, fiber := range fibers {
		b.scheduler.MarkDirty(fiber)
	}
}

// RunBatch executes a function within a batch context
func RunBatch(sched Scheduler, fn func()) {
	batch := NewBatch(sched)
	oldBatch := batchContext.Swap(batch)

	defer func() {
		batchContext.Store(oldBatch)
		batch.Commit()
	}()

	fn()
}

// markDirtyOrBatch marks a fiber dirty or adds to current batch
func markDirtyOrBatch(sched Scheduler, fiber *scheduler.Fiber) {
	if batch := batchContext.Load(); batch != nil {
		batch.Add(fiber)
		return
	}
	if sched != nil {
		sched.MarkDirty(fiber)
	}
}
