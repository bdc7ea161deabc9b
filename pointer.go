package trackswipe

import (
	"math"
	"slices"
)

// --- Constants ---

const (
	maxPointers      = 10  // pointer 0 = mouse, 1-9 = touch
	defaultClickSlop = 4.0 // pixels a press may travel and still count as a click
)

// --- Per-pointer state ---

type pointerState struct {
	down    bool
	startX  float64
	startY  float64
	lastX   float64
	lastY   float64
	hitNode *Node   // press target; receives move/up/cancel until release
	moved   bool    // travelled beyond the click slop since the press
	hover   []*Node // hover chain, innermost node first
}

// PointerEvent is the scene-level view of one dispatched pointer transition.
type PointerEvent struct {
	Type      EventType
	PointerID int
	X, Y      float64
	Target    *Node
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerEvent)
}

// CallbackHandle allows removing a registered tracker-level callback.
type CallbackHandle struct {
	id      uint32
	tracker *PointerTracker
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.tracker == nil {
		return
	}
	s := h.tracker.handlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			h.tracker.handlers = s[:len(s)-1]
			return
		}
	}
}

// EntityStore is the interface for optional ECS integration.
// When set on a PointerTracker, dispatched events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	NodeID    uint32
	NodeName  string
	PointerID int
	X, Y      float64
	StartX    float64
	StartY    float64
}

// PointerTracker owns the per-pointer state machines for one surface tree.
// It hit-tests presses, keeps the pressed node as the implicit capture target
// until release, and bubbles events from the target up through its ancestors.
//
// All methods must be called from the UI goroutine.
type PointerTracker struct {
	root      *Node
	pointers  [maxPointers]pointerState
	handlers  []pointerHandler
	nextID    uint32
	hitBuf    []*Node
	chainBuf  []*Node
	clickSlop float64
	store     EntityStore
	debug     bool

	injectQueue []syntheticPointerEvent
	touch       touchSlots
}

// NewPointerTracker creates a tracker that hit-tests against root.
func NewPointerTracker(root *Node) *PointerTracker {
	return &PointerTracker{
		root:      root,
		clickSlop: defaultClickSlop,
	}
}

// Root returns the surface tree root.
func (t *PointerTracker) Root() *Node {
	return t.root
}

// OnPointerEvent registers a tracker-level callback that sees every dispatched
// event before per-node callbacks run.
func (t *PointerTracker) OnPointerEvent(fn func(PointerEvent)) CallbackHandle {
	t.nextID++
	id := t.nextID
	t.handlers = append(t.handlers, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, tracker: t}
}

// SetClickSlop sets the maximum travel in pixels for a press/release pair to
// still fire OnClick.
func (t *PointerTracker) SetClickSlop(pixels float64) {
	t.clickSlop = pixels
}

// SetEntityStore sets the optional ECS bridge.
func (t *PointerTracker) SetEntityStore(store EntityStore) {
	t.store = store
}

// IsDown reports whether the given pointer is currently pressed.
func (t *PointerTracker) IsDown(pointerID int) bool {
	if pointerID < 0 || pointerID >= maxPointers {
		return false
	}
	return t.pointers[pointerID].down
}

// --- Hit testing ---

// collectInteractable walks the tree in painter order (DFS, child order),
// appending visible interactable nodes to buf.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	buf = append(buf, n)
	for _, child := range n.children {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (x, y).
// Returns nil if nothing is hit.
func (t *PointerTracker) hitTest(x, y float64) *Node {
	if t.root == nil {
		return nil
	}
	t.hitBuf = collectInteractable(t.root, t.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost node first.
	for i := len(t.hitBuf) - 1; i >= 0; i-- {
		n := t.hitBuf[i]
		if n.Contains(x, y) {
			return n
		}
	}
	return nil
}

// --- State machine ---

// Update runs the pointer state machine for one pointer sample. pressed is the
// current button/touch state; transitions are derived from the stored state.
func (t *PointerTracker) Update(pointerID int, x, y float64, pressed bool) {
	if pointerID < 0 || pointerID >= maxPointers {
		return
	}
	if math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	ps := &t.pointers[pointerID]
	target := t.hitTest(x, y)

	t.updateHover(pointerID, ps, target, x, y)

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.hitNode = target
		ps.moved = false
		t.bubble(EventPointerDown, target, pointerID, x, y, 0, 0)

	case !pressed && ps.down:
		hit := ps.hitNode
		dx, dy := x-ps.lastX, y-ps.lastY
		t.bubble(EventPointerUp, hit, pointerID, x, y, dx, dy)
		if !ps.moved && hit != nil && hit == target {
			t.bubble(EventClick, hit, pointerID, x, y, dx, dy)
		}
		ps.down = false
		ps.hitNode = nil
		ps.moved = false
		ps.lastX, ps.lastY = x, y

	case pressed && ps.down:
		if x != ps.lastX || y != ps.lastY {
			if !ps.moved {
				sx := x - ps.startX
				sy := y - ps.startY
				if math.Sqrt(sx*sx+sy*sy) > t.clickSlop {
					ps.moved = true
				}
			}
			t.bubble(EventPointerMove, ps.hitNode, pointerID, x, y, x-ps.lastX, y-ps.lastY)
		}
		ps.lastX, ps.lastY = x, y

	default:
		// Hover move.
		if x != ps.lastX || y != ps.lastY {
			t.bubble(EventPointerMove, target, pointerID, x, y, x-ps.lastX, y-ps.lastY)
			ps.lastX, ps.lastY = x, y
		}
	}
}

// Cancel aborts a press without a release: OnPointerCancel fires on the press
// target chain and the pointer's hover chain is cleared.
func (t *PointerTracker) Cancel(pointerID int) {
	if pointerID < 0 || pointerID >= maxPointers {
		return
	}
	ps := &t.pointers[pointerID]
	if ps.down {
		hit := ps.hitNode
		ps.down = false
		ps.hitNode = nil
		ps.moved = false
		t.bubble(EventPointerCancel, hit, pointerID, ps.lastX, ps.lastY, 0, 0)
	}
	t.updateHover(pointerID, ps, nil, ps.lastX, ps.lastY)
}

// CancelAll cancels every pressed pointer. Used when the window loses focus.
func (t *PointerTracker) CancelAll() {
	for i := range t.pointers {
		if t.pointers[i].down {
			t.Cancel(i)
		}
	}
}

// updateHover fires leave on nodes that dropped out of the hover chain
// (innermost first) and enter on nodes that joined it (outermost first).
func (t *PointerTracker) updateHover(pointerID int, ps *pointerState, target *Node, x, y float64) {
	var cur *Node
	if len(ps.hover) > 0 {
		cur = ps.hover[0]
	}
	if target == cur {
		return
	}
	next := appendChain(make([]*Node, 0, len(ps.hover)+1), target)
	prev := ps.hover
	ps.hover = next

	for _, n := range prev {
		if !containsNode(next, n) {
			t.fire(EventPointerLeave, n, target, pointerID, x, y, 0, 0)
		}
	}
	for i := len(next) - 1; i >= 0; i-- {
		if !containsNode(prev, next[i]) {
			t.fire(EventPointerEnter, next[i], target, pointerID, x, y, 0, 0)
		}
	}
}

// --- Event dispatch ---

// bubble dispatches an event to target and then each ancestor. The chain is
// captured before any callback runs so callbacks may restructure the tree.
func (t *PointerTracker) bubble(typ EventType, target *Node, pointerID int, x, y, dx, dy float64) {
	t.notifyScene(typ, target, pointerID, x, y)
	if target == nil {
		return
	}
	chain := appendChain(t.chainBuf[:0], target)
	t.chainBuf = chain
	for _, n := range chain {
		if n.disposed {
			continue
		}
		if fn := callbackFor(n, typ); fn != nil {
			fn(t.context(typ, n, target, pointerID, x, y, dx, dy))
		}
	}
	for i := range chain {
		chain[i] = nil
	}
}

// fire dispatches a non-bubbling event (enter/leave) to a single node.
func (t *PointerTracker) fire(typ EventType, n, target *Node, pointerID int, x, y, dx, dy float64) {
	t.notifyScene(typ, n, pointerID, x, y)
	if n.disposed {
		return
	}
	if fn := callbackFor(n, typ); fn != nil {
		fn(t.context(typ, n, target, pointerID, x, y, dx, dy))
	}
}

func (t *PointerTracker) context(typ EventType, n, target *Node, pointerID int, x, y, dx, dy float64) PointerContext {
	ps := &t.pointers[pointerID]
	return PointerContext{
		Node: n, Target: target, UserData: n.UserData,
		Type: typ, PointerID: pointerID,
		X: x, Y: y, StartX: ps.startX, StartY: ps.startY,
		DeltaX: dx, DeltaY: dy,
	}
}

func (t *PointerTracker) notifyScene(typ EventType, target *Node, pointerID int, x, y float64) {
	ev := PointerEvent{Type: typ, PointerID: pointerID, X: x, Y: y, Target: target}
	for _, h := range slices.Clone(t.handlers) {
		h.fn(ev)
	}
	if t.debug {
		t.debugLogEvent(ev)
	}
	// ECS bridge.
	if t.store != nil && target != nil {
		ps := &t.pointers[pointerID]
		t.store.EmitEvent(InteractionEvent{
			Type:      typ,
			NodeID:    target.ID,
			NodeName:  target.Name,
			PointerID: pointerID,
			X:         x,
			Y:         y,
			StartX:    ps.startX,
			StartY:    ps.startY,
		})
	}
}

func callbackFor(n *Node, typ EventType) func(PointerContext) {
	switch typ {
	case EventPointerDown:
		return n.OnPointerDown
	case EventPointerMove:
		return n.OnPointerMove
	case EventPointerUp:
		return n.OnPointerUp
	case EventPointerCancel:
		return n.OnPointerCancel
	case EventPointerEnter:
		return n.OnPointerEnter
	case EventPointerLeave:
		return n.OnPointerLeave
	case EventClick:
		return n.OnClick
	}
	return nil
}

// appendChain appends n and all its ancestors, innermost first.
func appendChain(buf []*Node, n *Node) []*Node {
	for p := n; p != nil; p = p.Parent {
		buf = append(buf, p)
	}
	return buf
}

func containsNode(s []*Node, n *Node) bool {
	for _, c := range s {
		if c == n {
			return true
		}
	}
	return false
}
