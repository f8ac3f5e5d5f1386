package motion

// elementIDCounter is a plain counter (no atomic, motion is single-threaded).
var elementIDCounter uint32

func nextElementID() uint32 {
	elementIDCounter++
	return elementIDCounter
}

// Element is a visual element whose layout box has already been resolved by
// the external layout layer. Elements form a tree; a child's X and Y are
// relative to its parent's box. Animation output never moves the box: it is
// read by the renderer and applied on top.
type Element struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Element
	children []*Element

	// Layout box relative to the parent.
	X, Y          float64
	Width, Height float64

	// Metadata
	UserData any

	// Computed
	pageBounds  Rect
	boundsDirty bool

	disposed bool
}

// NewElement creates a detached element with the given layout box.
func NewElement(name string, x, y, width, height float64) *Element {
	return &Element{
		ID:          nextElementID(),
		Name:        name,
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		boundsDirty: true,
	}
}

// SetBounds replaces the layout box and invalidates cached page bounds for
// this element and its descendants.
func (e *Element) SetBounds(x, y, width, height float64) {
	e.X, e.Y, e.Width, e.Height = x, y, width, height
	markSubtreeDirty(e)
}

// MarkDirty invalidates cached page bounds. Call it after writing X, Y,
// Width, or Height directly.
func (e *Element) MarkDirty() {
	markSubtreeDirty(e)
}

// Bounds returns the layout box in page coordinates.
func (e *Element) Bounds() Rect {
	if !e.boundsDirty {
		return e.pageBounds
	}
	r := Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
	if e.Parent != nil {
		pb := e.Parent.Bounds()
		r.X += pb.X
		r.Y += pb.Y
	}
	e.pageBounds = r
	e.boundsDirty = false
	return r
}

// --- Tree manipulation ---

// AddChild appends child to this element's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this element (cycle).
func (e *Element) AddChild(child *Element) {
	if child == nil {
		panic("motion: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(e, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, e) {
		panic("motion: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = e
	e.children = append(e.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(e)
	}
}

// RemoveChild detaches child from this element.
// Panics if child.Parent != e.
func (e *Element) RemoveChild(child *Element) {
	if globalDebug {
		debugCheckDisposed(e, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != e {
		panic("motion: child's parent is not this element")
	}
	e.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this element from its parent.
// No-op if it has no parent.
func (e *Element) RemoveFromParent() {
	if e.Parent == nil {
		return
	}
	e.Parent.RemoveChild(e)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (e *Element) Children() []*Element {
	return e.children
}

// NumChildren returns the number of children.
func (e *Element) NumChildren() int {
	return len(e.children)
}

// --- Disposal ---

// Dispose removes this element from its parent, marks it as disposed, and
// recursively disposes all descendants. Nodes animating a disposed element
// are torn down by their Orchestrator no later than its next Update.
func (e *Element) Dispose() {
	if e.disposed {
		return
	}
	e.RemoveFromParent()
	e.dispose()
}

func (e *Element) dispose() {
	e.disposed = true
	for _, child := range e.children {
		child.Parent = nil
		child.dispose()
	}
	e.children = nil
	e.Parent = nil
	e.UserData = nil
}

// IsDisposed reports whether the element has been disposed.
func (e *Element) IsDisposed() bool {
	return e.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of el.
func isAncestor(candidate, el *Element) bool {
	for p := el; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from e.children without clearing child.Parent.
func (e *Element) removeChildByPtr(child *Element) {
	for i, c := range e.children {
		if c == child {
			copy(e.children[i:], e.children[i+1:])
			e.children[len(e.children)-1] = nil
			e.children = e.children[:len(e.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets boundsDirty on el and all its descendants.
func markSubtreeDirty(el *Element) {
	el.boundsDirty = true
	for _, child := range el.children {
		markSubtreeDirty(child)
	}
}
