// Package ecs provides ECS adapters for layoutanim's status notifications.
//
// The primary adapter is [NewDonburiStatusDelegate], which bridges a
// manager's started and complete notifications into a [Donburi] world as
// typed events. Subscribe to [AnimationStatusEventType] in your ECS systems
// to receive them.
//
// Usage:
//
//	mgr := layoutanim.NewManager(nil, ecs.NewDonburiStatusDelegate(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
