package ecs

import (
	"github.com/phanxgames/motion"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// LifecycleEventType is the Donburi event type for node state transitions.
// Subscribe to this in your ECS systems to react to animations entering,
// settling, or reversing.
var LifecycleEventType = events.NewEventType[motion.LifecycleEvent]()

// NodeRef links an entity to an animation node. State mirrors the node's
// lifecycle state as of the last published transition.
type NodeRef struct {
	Node  *motion.AnimationNode
	State motion.NodeState
}

// Node is the component type holding a NodeRef.
var Node = donburi.NewComponentType[NodeRef]()

// DonburiStore bridges motion lifecycle events into a Donburi world.
type DonburiStore struct {
	world    donburi.World
	entities map[uint32]donburi.Entity
}

// NewDonburiStore creates a LifecycleStore backed by a Donburi world.
// Transitions are published to LifecycleEventType and can be consumed
// with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{world: world, entities: make(map[uint32]donburi.Entity)}
}

// Track creates an entity carrying a Node component for n. Its State is
// kept current by EmitLifecycle.
func (s *DonburiStore) Track(n *motion.AnimationNode) donburi.Entity {
	e := s.world.Create(Node)
	Node.SetValue(s.world.Entry(e), NodeRef{Node: n, State: n.State()})
	s.entities[n.ID] = e
	return e
}

// Untrack removes the entity created for n, if any.
func (s *DonburiStore) Untrack(n *motion.AnimationNode) {
	e, ok := s.entities[n.ID]
	if !ok {
		return
	}
	delete(s.entities, n.ID)
	if s.world.Valid(e) {
		s.world.Remove(e)
	}
}

// Entity returns the entity tracking the node with the given ID.
func (s *DonburiStore) Entity(nodeID uint32) (donburi.Entity, bool) {
	e, ok := s.entities[nodeID]
	return e, ok
}

func (s *DonburiStore) EmitLifecycle(event motion.LifecycleEvent) {
	if e, ok := s.entities[event.NodeID]; ok && s.world.Valid(e) {
		Node.Get(s.world.Entry(e)).State = event.To
	}
	LifecycleEventType.Publish(s.world, event)
}
