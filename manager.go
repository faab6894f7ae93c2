package layoutanim

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Manager intercepts mutation batches and turns the ones covered by the
// configured LayoutAnimation into keyframes that play out over subsequent
// frame ticks.
//
// Each surface's in-flight set is guarded by its own lock, so pulls and
// ticks for different surfaces run in parallel. Status reports for one
// surface follow the order in which its passes took the lock. ConfigureNextAnimation,
// StopSurface and the setters may be called from any goroutine.
type Manager struct {
	executor RuntimeExecutor

	mu       sync.Mutex
	pending  *LayoutAnimation
	slots    map[SurfaceID]*surfaceSlot
	clock    Clock
	registry Registry
	logger   *slog.Logger
	metrics  *Metrics

	stopMu sync.Mutex
	stops  map[SurfaceID]struct{}

	// delegateMu also serializes every call into the delegate.
	delegateMu sync.Mutex
	delegate   StatusDelegate

	inflight atomic.Int64
	debug    atomic.Bool
}

// NewManager creates a manager that dispatches completion callbacks through
// executor (GoExecutor when nil) and reports animation status to delegate,
// which may be nil.
func NewManager(executor RuntimeExecutor, delegate StatusDelegate) *Manager {
	if executor == nil {
		executor = GoExecutor
	}
	return &Manager{
		executor: executor,
		slots:    make(map[SurfaceID]*surfaceSlot),
		clock:    SystemClock(),
		logger:   slog.New(slog.DiscardHandler),
		stops:    make(map[SurfaceID]struct{}),
		delegate: delegate,
	}
}

// SetClock replaces the time source. A nil clock restores SystemClock.
func (m *Manager) SetClock(clock Clock) {
	if clock == nil {
		clock = SystemClock()
	}
	m.mu.Lock()
	m.clock = clock
	m.mu.Unlock()
}

// SetRegistry installs the component registry. While a registry is set,
// views whose component it does not know are never animated.
func (m *Manager) SetRegistry(r Registry) {
	m.mu.Lock()
	m.registry = r
	m.mu.Unlock()
}

// SetLogger sets the structured logger. A nil logger discards output.
func (m *Manager) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m.mu.Lock()
	m.logger = logger
	m.mu.Unlock()
}

// SetMetrics sets the metrics sink. A nil value disables metrics.
func (m *Manager) SetMetrics(metrics *Metrics) {
	m.mu.Lock()
	m.metrics = metrics
	m.mu.Unlock()
}

// SetStatusDelegate swaps the status delegate. It waits for an in-progress
// delegate call to return.
func (m *Manager) SetStatusDelegate(delegate StatusDelegate) {
	m.delegateMu.Lock()
	m.delegate = delegate
	m.delegateMu.Unlock()
}

// SetDebugMode enables internal consistency checks after every pull and
// tick. A failed check panics.
func (m *Manager) SetDebugMode(enabled bool) {
	m.debug.Store(enabled)
}

// ConfigureNextAnimation installs anim for the next pull that carries
// mutations. A configuration that no pull consumed yet is replaced, and its
// callbacks are dropped without being called.
func (m *Manager) ConfigureNextAnimation(anim LayoutAnimation) {
	m.mu.Lock()
	dropped := m.pending != nil
	m.pending = &anim
	logger, metrics := m.logger, m.metrics
	m.mu.Unlock()
	if dropped {
		metrics.configDropped()
		logger.Warn("layoutanim: replacing unconsumed animation config")
	}
}

// ConfigureNextAnimationRaw decodes raw (see DecodeLayoutAnimation) and
// configures the result. On a decode error nothing is configured, onFailure
// is dispatched through the executor, and the error is returned.
func (m *Manager) ConfigureNextAnimationRaw(raw any, onSuccess Callback, onFailure FailureCallback) error {
	anim, err := DecodeLayoutAnimation(raw, onSuccess, onFailure)
	if err != nil {
		m.mu.Lock()
		logger := m.logger
		m.mu.Unlock()
		logger.Warn("layoutanim: rejected animation config", "error", err)
		if onFailure != nil {
			m.executor(func() { onFailure(err) })
		}
		return err
	}
	m.ConfigureNextAnimation(anim)
	return nil
}

// StopSurface marks surface for termination. The next pull for it
// force-completes every in-flight keyframe of the surface, reporting them as
// interrupted. StopSurface itself does not block on surface state.
func (m *Manager) StopSurface(surface SurfaceID) {
	m.stopMu.Lock()
	m.stops[surface] = struct{}{}
	m.stopMu.Unlock()
}

func (m *Manager) takeStop(surface SurfaceID) bool {
	m.stopMu.Lock()
	defer m.stopMu.Unlock()
	if _, ok := m.stops[surface]; !ok {
		return false
	}
	delete(m.stops, surface)
	return true
}

// ShouldAnimateFrame reports whether a tick could produce mutations or a
// configured animation is waiting for a pull.
func (m *Manager) ShouldAnimateFrame() bool {
	if m.inflight.Load() > 0 {
		return true
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending != nil
}

// ShouldOverridePullTransaction reports whether pulls need to go through
// PullTransaction rather than straight to the executor.
func (m *Manager) ShouldOverridePullTransaction() bool {
	if m.ShouldAnimateFrame() {
		return true
	}
	m.stopMu.Lock()
	defer m.stopMu.Unlock()
	return len(m.stops) > 0
}

// begin snapshots the manager configuration for one pass over surface. When
// consume is set it also takes the pending animation. The slot is created
// on demand only if create is set.
func (m *Manager) begin(surface SurfaceID, consume, create bool) (*pass, *LayoutAnimation, *surfaceSlot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var anim *LayoutAnimation
	if consume {
		anim, m.pending = m.pending, nil
	}
	slot, ok := m.slots[surface]
	if !ok && create {
		slot = newSurfaceSlot(surface)
		m.slots[surface] = slot
	}
	p := &pass{
		now:      m.clock(),
		registry: m.registry,
		logger:   m.logger,
		metrics:  m.metrics,
	}
	return p, anim, slot
}

// PullTransaction intercepts the batch diffed for surface and returns the
// mutations to execute now, in execution order. Animated mutations are held
// back as keyframes and surface through Tick.
//
// Remove indices in mutations must address the parent's child list as it was
// before the batch; Insert indices address it after the batch and must
// ascend per parent. The returned indices address the executor's child
// lists, which keep nodes that are still fading out.
func (m *Manager) PullTransaction(surface SurfaceID, mutations MutationList) MutationList {
	began := time.Now()
	stopping := m.takeStop(surface)
	p, anim, slot := m.begin(surface, !stopping && len(mutations) > 0, true)

	var out MutationList
	var seq uint64
	var is bool
	slot.with(func(s *surfaceState) {
		s.passes++
		seq = s.passes
		before := len(s.keyFrames)
		if stopping {
			p.logger.Debug("layoutanim: stopping surface", "surface", surface, "inflight", before)
			out = append(out, s.stopAll(p)...)
		}
		out = append(out, s.resolveConflicts(mutations, p)...)
		out = append(out, s.schedule(mutations, anim, p)...)
		is = len(s.keyFrames) > 0
		m.inflight.Add(int64(len(s.keyFrames) - before))
		if m.debug.Load() {
			debugCheckSurface(s)
		}
	})

	m.settle(slot, p, seq, is)
	p.metrics.pulled(len(out), time.Since(began).Seconds())
	return out
}

// Tick advances every keyframe of surface to the current clock time and
// returns the resulting mutations: an Update per keyframe still running,
// and the final mutations of those that finished.
func (m *Manager) Tick(surface SurfaceID) MutationList {
	p, _, slot := m.begin(surface, false, false)
	if slot == nil {
		return nil
	}
	var out MutationList
	var seq uint64
	var is bool
	slot.with(func(s *surfaceState) {
		s.passes++
		seq = s.passes
		before := len(s.keyFrames)
		out = s.tick(p)
		is = len(s.keyFrames) > 0
		m.inflight.Add(int64(len(s.keyFrames) - before))
		if m.debug.Load() {
			debugCheckSurface(s)
		}
	})
	m.settle(slot, p, seq, is)
	return out
}

// settle runs after the surface lock is released: it hands the collected
// callbacks to the executor and tells the delegate about status changes.
// Passes over one surface can reach settle out of order; a pass older than
// the last one reported is stale and reports nothing.
func (m *Manager) settle(slot *surfaceSlot, p *pass, seq uint64, is bool) {
	for _, fn := range p.callbacks {
		m.executor(fn)
	}
	m.delegateMu.Lock()
	defer m.delegateMu.Unlock()
	if seq < slot.reportedPass {
		return
	}
	slot.reportedPass = seq
	if slot.reported == is {
		return
	}
	slot.reported = is
	if m.delegate == nil {
		return
	}
	if is {
		m.delegate.AnimationsStarted(slot.state.id)
	} else {
		m.delegate.AnimationsComplete(slot.state.id)
	}
}

// InflightCount returns the number of keyframes in flight on surface.
func (m *Manager) InflightCount(surface SurfaceID) int {
	m.mu.Lock()
	slot := m.slots[surface]
	m.mu.Unlock()
	if slot == nil {
		return 0
	}
	var n int
	slot.with(func(s *surfaceState) { n = len(s.keyFrames) })
	return n
}

// KeyFrameState returns the state of the keyframe animating tag on surface.
// ok is false when no keyframe for tag is in flight.
func (m *Manager) KeyFrameState(surface SurfaceID, tag Tag) (state KeyFrameState, ok bool) {
	m.mu.Lock()
	slot, now := m.slots[surface], m.clock()
	m.mu.Unlock()
	if slot == nil {
		return 0, false
	}
	slot.with(func(s *surfaceState) {
		var kf *keyFrame
		if kf, ok = s.keyFrames[tag]; ok {
			state = kf.state(now)
		}
	})
	return state, ok
}
