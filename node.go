package trackswipe

// HitShape is used for custom hit testing regions. Coordinates are local to
// the node's world bounds origin.
type HitShape interface {
	Contains(x, y float64) bool
}

// PointerContext carries pointer event data to node callbacks.
type PointerContext struct {
	Node      *Node // node whose callback is running
	Target    *Node // topmost node under the pointer when the press began (or hover target)
	UserData  any
	Type      EventType
	PointerID int
	X, Y      float64 // world coordinates
	StartX    float64 // press position, valid while the pointer is down
	StartY    float64
	DeltaX    float64 // movement since the previous event
	DeltaY    float64
}

// nodeIDCounter is a plain counter; input runs on one goroutine.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a rectangular element of the review surface. Bounds are expressed in
// the parent's frame; OffsetX/OffsetY translate the node and its whole subtree,
// which is how a dragged card carries its nested controls along with it.
type Node struct {
	ID   uint32
	Name string

	Parent   *Node
	children []*Node

	Bounds           Rect
	OffsetX, OffsetY float64

	Visible      bool
	Interactable bool

	// NoSwipe marks a no-swipe zone: a press on this node or any descendant
	// never starts a card swipe, so nested controls keep their own gestures.
	NoSwipe bool

	HitShape HitShape
	UserData any

	// Per-node callbacks (nil by default). Events bubble from the target node
	// up through its ancestors.
	OnPointerDown   func(PointerContext)
	OnPointerMove   func(PointerContext)
	OnPointerUp     func(PointerContext)
	OnPointerCancel func(PointerContext)
	OnPointerEnter  func(PointerContext)
	OnPointerLeave  func(PointerContext)
	OnClick         func(PointerContext)

	disposed bool
}

// NewNode creates an interactable, visible node with the given bounds.
func NewNode(name string, bounds Rect) *Node {
	return &Node{
		ID:           nextNodeID(),
		Name:         name,
		Bounds:       bounds,
		Visible:      true,
		Interactable: true,
	}
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("trackswipe: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("trackswipe: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("trackswipe: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.HitShape = nil
	n.UserData = nil
	n.OnPointerDown = nil
	n.OnPointerMove = nil
	n.OnPointerUp = nil
	n.OnPointerCancel = nil
	n.OnPointerEnter = nil
	n.OnPointerLeave = nil
	n.OnClick = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Geometry ---

// WorldBounds returns the node's bounds in screen space, accumulating the
// bounds origin and offset of every ancestor.
func (n *Node) WorldBounds() Rect {
	r := n.Bounds.Translate(n.OffsetX, n.OffsetY)
	for p := n.Parent; p != nil; p = p.Parent {
		r = r.Translate(p.Bounds.X+p.OffsetX, p.Bounds.Y+p.OffsetY)
	}
	return r
}

// Contains reports whether the world point (x, y) hits this node.
// Uses HitShape if set; otherwise the world bounds.
func (n *Node) Contains(x, y float64) bool {
	wb := n.WorldBounds()
	if n.HitShape != nil {
		return n.HitShape.Contains(x-wb.X, y-wb.Y)
	}
	if wb.Width <= 0 || wb.Height <= 0 {
		return false
	}
	return wb.Contains(x, y)
}

// TrackBounds implements BoundsProvider using the node's current world bounds.
func (n *Node) TrackBounds() TrackBounds {
	wb := n.WorldBounds()
	return TrackBounds{Left: wb.X, Width: wb.Width}
}

// Attached reports whether the node is live and every ancestor is visible.
func (n *Node) Attached() bool {
	if n == nil || n.disposed {
		return false
	}
	for p := n; p != nil; p = p.Parent {
		if !p.Visible {
			return false
		}
	}
	return true
}

// InNoSwipeZone reports whether n or any of its ancestors is flagged NoSwipe.
func (n *Node) InNoSwipeZone() bool {
	for p := n; p != nil; p = p.Parent {
		if p.NoSwipe {
			return true
		}
	}
	return false
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}
