package motion

// ChildSpec describes one staggered child: the element and what animates on it.
type ChildSpec struct {
	Element *Element
	Spec    MotionSpec
}

// GroupSpec describes a stagger group. Children share the container's
// trigger; child i starts BaseDelay + i*StaggerDelay seconds after it fires.
type GroupSpec struct {
	Container *Element
	Trigger   Trigger
	// Self optionally animates the container itself, with no stagger offset.
	Self     *MotionSpec
	Children []ChildSpec

	StaggerDelay float64
	BaseDelay    float64
}

// StaggerGroup fans one trigger out to an ordered list of child nodes. It
// references its children but does not own their lifetime: a child element
// may unmount on its own and simply drops out of the group.
type StaggerGroup struct {
	ID uint32

	container *Element
	trigger   Trigger
	self      *AnimationNode
	children  []*AnimationNode
	scratch   []*AnimationNode

	staggerDelay float64
	baseDelay    float64

	source    TriggerSource
	orch      *Orchestrator
	destroyed bool
}

// Children returns the live children in stagger order. The returned slice
// MUST NOT be mutated by the caller.
func (g *StaggerGroup) Children() []*AnimationNode {
	return g.children
}

// Len returns the number of live children.
func (g *StaggerGroup) Len() int {
	return len(g.children)
}

// Self returns the container's own node, or nil if the group has none.
func (g *StaggerGroup) Self() *AnimationNode {
	return g.self
}

// Container returns the element whose trigger drives the group.
func (g *StaggerGroup) Container() *Element {
	return g.container
}

// ChildDelay returns the stagger offset for position i.
func (g *StaggerGroup) ChildDelay(i int) float64 {
	return g.baseDelay + float64(i)*g.staggerDelay
}

// Destroyed reports whether the group has been unmounted.
func (g *StaggerGroup) Destroyed() bool {
	return g.destroyed
}

// SetChildIndex moves child to a new position and reassigns every child's
// delay from its new position.
// Panics if child is not in the group or index is out of range.
func (g *StaggerGroup) SetChildIndex(child *AnimationNode, index int) {
	nc := len(g.children)
	if index < 0 || index >= nc {
		panic("motion: child index out of range")
	}
	oldIndex := -1
	for i, c := range g.children {
		if c == child {
			oldIndex = i
			break
		}
	}
	if oldIndex < 0 {
		panic("motion: node is not a child of this group")
	}
	if oldIndex == index {
		return
	}
	if oldIndex < index {
		copy(g.children[oldIndex:], g.children[oldIndex+1:index+1])
	} else {
		copy(g.children[index+1:], g.children[index:oldIndex])
	}
	g.children[index] = child
	g.assignDelays()
}

// assignDelays gives every child the delay for its current position. Eased
// and looping children carry it in their timing; spring children have no
// native delay and are gated by the node's start timer alone.
func (g *StaggerGroup) assignDelays() {
	for i, c := range g.children {
		c.delay = g.ChildDelay(i)
		if c.timing.Kind != TimingSpring {
			c.timing.Delay = c.delay
		}
	}
}

// dispatch delivers one trigger event to the container node and then to
// every child, in order, within the same call.
func (g *StaggerGroup) dispatch(ev TriggerEvent) {
	if g.destroyed {
		return
	}
	if g.container.IsDisposed() {
		g.orch.UnmountGroup(g)
		return
	}
	if g.self != nil {
		g.self.handle(ev)
	}
	// Children can unmount while handling (disposed element).
	g.scratch = append(g.scratch[:0], g.children...)
	for _, c := range g.scratch {
		c.handle(ev)
	}
	clear(g.scratch)
}

// detach drops a child that was unmounted on its own.
func (g *StaggerGroup) detach(n *AnimationNode) {
	if g.self == n {
		g.self = nil
		return
	}
	for i, c := range g.children {
		if c == n {
			copy(g.children[i:], g.children[i+1:])
			g.children[len(g.children)-1] = nil
			g.children = g.children[:len(g.children)-1]
			return
		}
	}
}

func (gs GroupSpec) validate() error {
	if !isFinite(gs.StaggerDelay) || gs.StaggerDelay < 0 {
		return specError("group.staggerDelay", "must be a non-negative finite number, got %v", gs.StaggerDelay)
	}
	if !isFinite(gs.BaseDelay) || gs.BaseDelay < 0 {
		return specError("group.baseDelay", "must be a non-negative finite number, got %v", gs.BaseDelay)
	}
	if err := gs.Trigger.validate(); err != nil {
		return err
	}
	if gs.Self != nil {
		if err := gs.Self.Validate(); err != nil {
			return err
		}
	}
	for _, c := range gs.Children {
		if err := c.Spec.Validate(); err != nil {
			return err
		}
	}
	return nil
}
