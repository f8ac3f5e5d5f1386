// Package ecs provides ECS adapters for motion's lifecycle events.
//
// The primary adapter is [NewDonburiStore], which bridges node state
// transitions (idle, armed, running, settled) into a [Donburi] world as
// typed events. Subscribe to [LifecycleEventType] in your ECS systems to
// receive them, or [DonburiStore.Track] a node to mirror its state on an
// entity's [Node] component.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	orch.SetLifecycleStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
