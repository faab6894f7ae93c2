package layoutanim

// StatusDelegate is told when a surface starts animating and when its last
// keyframe finishes. Calls are serialized by the manager and are never made
// while surface state is locked.
type StatusDelegate interface {
	AnimationsStarted(surface SurfaceID)
	AnimationsComplete(surface SurfaceID)
}

// AnimationDelegate is the side of the manager the UI layer talks to:
// configuring the next animation and tearing surfaces down.
type AnimationDelegate interface {
	ConfigureNextAnimation(anim LayoutAnimation)
	ConfigureNextAnimationRaw(raw any, onSuccess Callback, onFailure FailureCallback) error
	SetRegistry(r Registry)
	ShouldAnimateFrame() bool
	StopSurface(surface SurfaceID)
}

// MountingOverrideDelegate is the side of the manager the mounting layer
// talks to: it hands each diffed batch over and receives the mutations to
// execute now.
type MountingOverrideDelegate interface {
	ShouldOverridePullTransaction() bool
	PullTransaction(surface SurfaceID, mutations MutationList) MutationList
	Tick(surface SurfaceID) MutationList
}

var (
	_ AnimationDelegate        = (*Manager)(nil)
	_ MountingOverrideDelegate = (*Manager)(nil)
)
