// Package layoutanim animates layout and prop changes of a mounted view tree.
//
// A differ produces batches of mutations (Create, Insert, Remove, Update,
// Delete) for a surface. Before a batch reaches the executor that applies
// it, [Manager.PullTransaction] looks at the [LayoutAnimation] configured
// through [Manager.ConfigureNextAnimation] and holds back the mutations it
// covers as keyframes. Every frame, [Manager.Tick] interpolates each
// keyframe and emits Update mutations until the animation ends and its final
// mutations are released.
//
//	mgr := layoutanim.NewManager(nil, nil)
//	anim := layoutanim.PresetEaseInEaseOut()
//	anim.OnSuccess = onDone
//	mgr.ConfigureNextAnimation(anim)
//	exec.Apply(mgr.PullTransaction(surface, batch))
//	// once per frame:
//	exec.Apply(mgr.Tick(surface))
//
// # Animation kinds
//
// Updates interpolate the node's layout and numeric props from the old view
// to the new one. Created nodes are inserted at once with the animated
// property (opacity or scale) at zero and grow into place. Deleted subtrees
// stay attached while their root fades out; their Remove and Delete
// mutations are released together when the keyframe ends.
//
// While a fading node is still attached, the executor's child lists hold one
// more child than the differ knows about. The manager rewrites the index of
// every Insert and Remove it passes through so the executor can apply them
// unchanged.
//
// # Interruption
//
// A batch that touches a node with a keyframe in flight first completes that
// keyframe: its final mutations come before the batch in the returned list.
// [Manager.StopSurface] completes every keyframe of a surface on its next
// pull. Either way the animation's callback reports Interrupted.
//
// # Configuration
//
// Animations can be built in Go, taken from a preset, or decoded from the
// dynamic object form used by scripting layers with [DecodeLayoutAnimation]
// and [DecodeLayoutAnimationYAML].
//
// The ecs module (layoutanim/ecs) bridges animation status into a
// [Donburi] world.
//
// [Donburi]: https://github.com/yohamta/donburi
package layoutanim
