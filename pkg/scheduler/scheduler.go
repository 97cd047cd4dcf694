package scheduler

import (
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/cyberinsights/inkwell/pkg/vdom"
)

// RenderFunc is the function type for widget render functions
type RenderFunc func() *vdom.VNode

// PatchApplier applies the patches produced by one render of a fiber
type PatchApplier func(patches []vdom.Patch)

// ErrorHandler handles panics during rendering
// Returns true to continue scheduling, false to unmount the fiber
type ErrorHandler func(fiber *Fiber, err interface{}) bool

// Fiber represents one mounted widget: its render function and last rendered tree
type Fiber struct {
	id     uint32
	parent *Fiber
	vnode  *vdom.VNode // last rendered tree

	render RenderFunc
	apply  PatchApplier

	dirty atomic.Bool

	onError ErrorHandler
}

// debugLog is set by platform-specific code
var debugLog func(args ...interface{})

// SetDebugLog sets the debug logging function
func SetDebugLog(fn func(args ...interface{})) {
	debugLog = fn
}

// current is the fiber whose render function is executing
var current atomic.Pointer[Fiber]

// Current returns the fiber currently rendering, or nil outside a render
func Current() *Fiber {
	return current.Load()
}

// SetCurrent overrides the rendering fiber. Signals read while a fiber is
// current subscribe that fiber.
func SetCurrent(fiber *Fiber) {
	current.Store(fiber)
}

// Scheduler manages fiber execution
type Scheduler struct {
	mu         sync.Mutex
	fibers     map[uint32]*Fiber
	nextID     uint32
	globalWake chan *Fiber
	running    atomic.Bool

	// renderMu serialises renders between the loop and Flush
	renderMu sync.Mutex

	applyPatches PatchApplier
	defaultError ErrorHandler
}

// NewScheduler creates a new scheduler instance
func NewScheduler() *Scheduler {
	return &Scheduler{
		fibers:     make(map[uint32]*Fiber),
		nextID:     1,
		globalWake: make(chan *Fiber, 256),
	}
}

// SetPatchApplier sets the fallback applier for fibers without their own
func (s *Scheduler) SetPatchApplier(applier PatchApplier) {
	s.applyPatches = applier
}

// SetDefaultErrorHandler sets the default error handler for fibers
func (s *Scheduler) SetDefaultErrorHandler(handler ErrorHandler) {
	s.defaultError = handler
}

// CreateFiber creates a new fiber for a widget. The fiber starts dirty so
// that the first Flush (or loop iteration) performs the initial render.
func (s *Scheduler) CreateFiber(render RenderFunc, parent *Fiber) *Fiber {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	fiber := &Fiber{
		id:      id,
		parent:  parent,
		render:  render,
		onError: s.defaultError,
	}
	fiber.dirty.Store(true)

	s.fibers[id] = fiber
	return fiber
}

// RemoveFiber removes a fiber from the scheduler
func (s *Scheduler) RemoveFiber(fiber *Fiber) {
	if fiber == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.fibers, fiber.id)
}

// MarkDirty marks a fiber as needing re-render
func (s *Scheduler) MarkDirty(fiber *Fiber) {
	if fiber == nil {
		return
	}

	if !fiber.dirty.CompareAndSwap(false, true) {
		return
	}
	if debugLog != nil {
		debugLog("[Scheduler] Fiber", fiber.ID(), "marked dirty")
	}

	if !s.running.Load() {
		// Picked up by the next Flush
		return
	}
	select {
	case s.globalWake <- fiber:
	default:
		// Channel full; the fiber stays dirty and is picked up by the next drain
		if debugLog != nil {
			debugLog("[Scheduler] Wake channel full for fiber", fiber.ID())
		}
	}
}

// Start begins the scheduler loop
func (s *Scheduler) Start() {
	if s.running.CompareAndSwap(false, true) {
		go s.loop()
		// Anything marked before the loop existed
		s.Flush()
	}
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	if s.running.CompareAndSwap(true, false) {
		// Unblock the loop
		select {
		case s.globalWake <- nil:
		default:
		}
	}
}

// IsRunning returns whether the scheduler is running
func (s *Scheduler) IsRunning() bool {
	return s.running.Load()
}

func (s *Scheduler) loop() {
	for s.running.Load() {
		fiber := <-s.globalWake
		if fiber == nil {
			continue
		}

		batch := []*Fiber{fiber}
	drain:
		for {
			select {
			case f := <-s.globalWake:
				if f != nil {
					batch = append(batch, f)
				}
			default:
				break drain
			}
		}

		for _, f := range batch {
			s.processFiber(f)
		}
	}
}

// Flush synchronously renders every dirty fiber in creation order and
// returns the number of fibers rendered.
func (s *Scheduler) Flush() int {
	s.mu.Lock()
	fibers := make([]*Fiber, 0, len(s.fibers))
	for _, f := range s.fibers {
		fibers = append(fibers, f)
	}
	s.mu.Unlock()

	sort.Slice(fibers, func(i, j int) bool { return fibers[i].id < fibers[j].id })

	rendered := 0
	for _, f := range fibers {
		if s.processFiber(f) {
			rendered++
		}
	}
	return rendered
}

// processFiber renders a single fiber and applies patches
func (s *Scheduler) processFiber(fiber *Fiber) bool {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	if s.GetFiber(fiber.id) == nil {
		return false
	}
	if !fiber.dirty.CompareAndSwap(true, false) {
		return false
	}

	ok := false
	func() {
		defer func() {
			SetCurrent(nil)
			if r := recover(); r != nil {
				s.handleFiberError(fiber, r)
			}
		}()

		SetCurrent(fiber)
		next := fiber.render()
		SetCurrent(nil)

		patches := vdom.Diff(fiber.vnode, next)
		if debugLog != nil {
			debugLog("[Scheduler] Diff produced", len(patches), "patches for fiber", fiber.ID())
		}

		apply := fiber.apply
		if apply == nil {
			apply = s.applyPatches
		}
		if apply != nil && len(patches) > 0 {
			apply(patches)
		}

		fiber.vnode = next
		ok = true
	}()
	return ok
}

// handleFiberError handles a panic during fiber rendering
func (s *Scheduler) handleFiberError(fiber *Fiber, err interface{}) {
	errorMsg := fmt.Sprintf("Fiber %d panic: %v\n%s", fiber.id, err, debug.Stack())

	shouldContinue := false
	if fiber.onError != nil {
		shouldContinue = fiber.onError(fiber, errorMsg)
	}

	if !shouldContinue {
		s.RemoveFiber(fiber)
	}
}

// GetFiber returns a fiber by ID
func (s *Scheduler) GetFiber(id uint32) *Fiber {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fibers[id]
}

// FiberCount returns the number of active fibers
func (s *Scheduler) FiberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fibers)
}

// ID returns the fiber's unique ID
func (f *Fiber) ID() uint32 {
	return f.id
}

// Parent returns the fiber's parent
func (f *Fiber) Parent() *Fiber {
	return f.parent
}

// IsDirty reports whether the fiber is waiting for a render
func (f *Fiber) IsDirty() bool {
	return f.dirty.Load()
}

// VNode returns the fiber's last rendered VNode
func (f *Fiber) VNode() *vdom.VNode {
	return f.vnode
}

// SetPatchApplier binds the fiber to its own mount point
func (f *Fiber) SetPatchApplier(apply PatchApplier) {
	f.apply = apply
}

// SetErrorHandler sets a custom error handler for this fiber
func (f *Fiber) SetErrorHandler(handler ErrorHandler) {
	f.onError = handler
}
