package ecs

import (
	"github.com/phanxgames/layoutanim"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// AnimationStatusEvent reports that a surface began animating (Started) or
// that its last keyframe finished.
type AnimationStatusEvent struct {
	Surface layoutanim.SurfaceID
	Started bool
}

// AnimationStatusEventType is the Donburi event type for animation status
// changes. Subscribe to it to pause idle rendering or gate input while a
// surface animates.
var AnimationStatusEventType = events.NewEventType[AnimationStatusEvent]()

type donburiDelegate struct {
	world donburi.World
}

// NewDonburiStatusDelegate creates a StatusDelegate backed by a Donburi
// world. Events are queued on AnimationStatusEventType and delivered by
// ProcessEvents, so the manager must pull and tick on the goroutine that
// processes the world's events.
func NewDonburiStatusDelegate(world donburi.World) layoutanim.StatusDelegate {
	return &donburiDelegate{world: world}
}

func (d *donburiDelegate) AnimationsStarted(surface layoutanim.SurfaceID) {
	AnimationStatusEventType.Publish(d.world, AnimationStatusEvent{Surface: surface, Started: true})
}

func (d *donburiDelegate) AnimationsComplete(surface layoutanim.SurfaceID) {
	AnimationStatusEventType.Publish(d.world, AnimationStatusEvent{Surface: surface})
}
