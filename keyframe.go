package layoutanim

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// KeyFrameState is the lifecycle position of a keyframe. Completed and
// Interrupted are terminal: a keyframe in either state has already left the
// in-flight set.
type KeyFrameState uint8

const (
	KeyFramePending     KeyFrameState = iota // created by a pull, not yet ticked
	KeyFrameDelayed                          // ticked, configured delay not elapsed
	KeyFrameAnimating                        // between delay and delay+duration
	KeyFrameCompleted                        // reached progress 1 on a tick
	KeyFrameInterrupted                      // superseded by a pull or a stopped surface
)

var keyFrameStateNames = [...]string{
	KeyFramePending:     "pending",
	KeyFrameDelayed:     "delayed",
	KeyFrameAnimating:   "animating",
	KeyFrameCompleted:   "completed",
	KeyFrameInterrupted: "interrupted",
}

func (s KeyFrameState) String() string {
	if int(s) < len(keyFrameStateNames) {
		return keyFrameStateNames[s]
	}
	return fmt.Sprintf("KeyFrameState(%d)", s)
}

// runningAnimation is a LayoutAnimation after a pull consumed it.
type runningAnimation struct {
	startTime   int64
	onSuccess   Callback
	pending     int // keyframes not yet terminal
	interrupted bool
}

// keyFrame is the in-flight animation of one node.
type keyFrame struct {
	seq    uint64 // creation order within the surface
	gen    uint64 // pull that created it
	kind   ConfigKind
	tag    Tag
	parent ShadowView
	start  ShadowView
	end    ShadowView
	prev   ShadowView // last view handed to the executor
	config AnimationConfig
	props  PropsInterpolator
	anim   *runningAnimation
	ticked bool

	// Delete keyframes only. The node stays in its parent's child list until
	// the final Remove; removeIndex tracks where it currently sits there.
	removeIndex int
	deferred    MutationList // teardown of the node's subtree
}

func (kf *keyFrame) state(now int64) KeyFrameState {
	if !kf.ticked {
		return KeyFramePending
	}
	if float64(now-kf.anim.startTime) < kf.config.Delay {
		return KeyFrameDelayed
	}
	return KeyFrameAnimating
}

// finalMutations returns the mutations that leave the executor in the
// keyframe's final state.
func (kf *keyFrame) finalMutations() MutationList {
	if kf.kind != KindDelete {
		return MutationList{UpdateMutation(kf.parent, kf.prev, kf.end)}
	}
	out := make(MutationList, 0, len(kf.deferred)+2)
	out = append(out,
		RemoveMutation(kf.parent, kf.prev, kf.removeIndex),
		DeleteMutation(kf.prev),
	)
	out = append(out, kf.deferred...)
	SortMutations(out)
	return out
}

// pass carries what one pull or tick needs from the manager and collects
// the callbacks to dispatch once the surface lock is released.
type pass struct {
	now       int64
	registry  Registry
	logger    *slog.Logger
	metrics   *Metrics
	callbacks []func()
}

func (p *pass) interpolatorFor(view ShadowView) (PropsInterpolator, bool) {
	if p.registry == nil {
		return LinearProps, true
	}
	return p.registry.PropsInterpolator(view.ComponentName)
}

// surfaceState is the in-flight set of one surface. It is only reachable
// through surfaceSlot.with, so every change happens under the slot lock.
type surfaceState struct {
	id        SurfaceID
	keyFrames map[Tag]*keyFrame
	ghosts    map[Tag][]*keyFrame // delete keyframes by parent tag
	gen       uint64
	seq       uint64
	passes    uint64 // pulls and ticks so far; numbers status reports
}

type surfaceSlot struct {
	mu    sync.Mutex
	state surfaceState

	// Guarded by Manager.delegateMu: the last status told to the delegate
	// and the pass that produced it.
	reported     bool
	reportedPass uint64
}

func newSurfaceSlot(id SurfaceID) *surfaceSlot {
	return &surfaceSlot{state: surfaceState{
		id:        id,
		keyFrames: make(map[Tag]*keyFrame),
		ghosts:    make(map[Tag][]*keyFrame),
	}}
}

func (s *surfaceSlot) with(fn func(st *surfaceState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// ordered returns the in-flight keyframes in creation order.
func (s *surfaceState) ordered() []*keyFrame {
	out := make([]*keyFrame, 0, len(s.keyFrames))
	for _, kf := range s.keyFrames {
		out = append(out, kf)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// newKeyFrame registers a keyframe. It returns nil when the tag already has
// one, which keeps at most one keyframe per tag in flight.
func (s *surfaceState) newKeyFrame(kind ConfigKind, parent, start, end ShadowView, cfg AnimationConfig, pi PropsInterpolator, run *runningAnimation, p *pass) *keyFrame {
	if _, busy := s.keyFrames[start.Tag]; busy {
		return nil
	}
	s.seq++
	kf := &keyFrame{
		seq:    s.seq,
		gen:    s.gen,
		kind:   kind,
		tag:    start.Tag,
		parent: parent,
		start:  start,
		end:    end,
		prev:   start,
		config: cfg,
		props:  pi,
		anim:   run,
	}
	s.keyFrames[kf.tag] = kf
	run.pending++
	p.metrics.keyFrameStarted(kind)
	p.logger.Debug("layoutanim: keyframe created",
		"surface", s.id, "tag", kf.tag, "kind", kind.String(),
		"duration", cfg.Duration, "delay", cfg.Delay)
	return kf
}

// finish removes kf from the in-flight set and returns its final
// mutations. The animation's success callback is queued on p once its last
// keyframe is gone.
func (s *surfaceState) finish(kf *keyFrame, interrupted bool, p *pass) MutationList {
	delete(s.keyFrames, kf.tag)
	out := kf.finalMutations()
	if kf.kind == KindDelete {
		s.dropGhost(kf)
		s.adjustDelayedForMutation(RemoveMutation(kf.parent, kf.prev, kf.removeIndex))
	}

	p.metrics.keyFrameFinished(kf.kind, interrupted)
	p.logger.Debug("layoutanim: keyframe finished",
		"surface", s.id, "tag", kf.tag, "kind", kf.kind.String(), "interrupted", interrupted)

	run := kf.anim
	if interrupted {
		run.interrupted = true
	}
	run.pending--
	if run.pending == 0 {
		p.complete(run)
	}
	return out
}

func (p *pass) complete(run *runningAnimation) {
	if run.onSuccess == nil {
		return
	}
	cb, c := run.onSuccess, Completion{Interrupted: run.interrupted}
	p.callbacks = append(p.callbacks, func() { cb(c) })
}

// tick advances every keyframe to p.now. Keyframes that reached the end
// emit their final mutations and leave the in-flight set; the rest emit an
// Update carrying the interpolated view.
func (s *surfaceState) tick(p *pass) MutationList {
	var out MutationList
	for _, kf := range s.ordered() {
		linear, eased := Progress(p.now, kf.anim.startTime, kf.config)
		kf.ticked = true
		if linear >= 1 {
			out = append(out, s.finish(kf, false, p)...)
			continue
		}
		view := Interpolate(eased, kf.start, kf.end, kf.props)
		out = append(out, UpdateMutation(kf.parent, kf.prev, view))
		kf.prev = view
	}
	return out
}

// stopAll force-completes every keyframe of the surface, bypassing the
// remaining animation. Each counts as interrupted.
func (s *surfaceState) stopAll(p *pass) MutationList {
	var out MutationList
	for _, kf := range s.ordered() {
		out = append(out, s.finish(kf, true, p)...)
	}
	return out
}
