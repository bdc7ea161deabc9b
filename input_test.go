package trackswipe

import (
	"math"
	"testing"
)

// newTestTree builds root > card > player > button, with a sibling "top"
// drawn above the card.
func newTestTree() (root, card, player, button, top *Node) {
	root = NewNode("root", Rect{Width: 400, Height: 400})
	card = NewNode("card", Rect{X: 50, Y: 50, Width: 300, Height: 300})
	player = NewNode("player", Rect{X: 20, Y: 150, Width: 260, Height: 100})
	button = NewNode("button", Rect{X: 10, Y: 10, Width: 40, Height: 40})
	top = NewNode("top", Rect{X: 0, Y: 0, Width: 60, Height: 60})
	root.AddChild(card)
	card.AddChild(player)
	player.AddChild(button)
	root.AddChild(top)
	return
}

// --- Hit testing ---

func TestHitTest_TopmostNode(t *testing.T) {
	root, card, _, button, top := newTestTree()
	tr := NewPointerTracker(root)

	if got := tr.hitTest(55, 55); got != top {
		t.Errorf("hitTest overlap = %v, want top", nameOf(got))
	}
	if got := tr.hitTest(85, 215); got != button {
		t.Errorf("hitTest button = %v, want button", nameOf(got))
	}
	if got := tr.hitTest(200, 100); got != card {
		t.Errorf("hitTest card = %v, want card", nameOf(got))
	}
}

func TestHitTest_SkipsInvisible(t *testing.T) {
	root, card, player, _, _ := newTestTree()
	tr := NewPointerTracker(root)
	player.Visible = false
	if got := tr.hitTest(85, 215); got != card {
		t.Errorf("hitTest = %v, want card", nameOf(got))
	}
}

func TestHitTest_SkipsNonInteractableSubtree(t *testing.T) {
	root, card, _, _, _ := newTestTree()
	tr := NewPointerTracker(root)
	card.Interactable = false
	if got := tr.hitTest(85, 215); got != root {
		t.Errorf("hitTest = %v, want root", nameOf(got))
	}
}

func TestHitTest_FollowsOffset(t *testing.T) {
	root, card, _, _, _ := newTestTree()
	tr := NewPointerTracker(root)
	card.OffsetX = 100
	if got := tr.hitTest(390, 100); got != card {
		t.Errorf("hitTest = %v, want card", nameOf(got))
	}
}

func TestHitTest_Miss(t *testing.T) {
	root, _, _, _, _ := newTestTree()
	tr := NewPointerTracker(root)
	if got := tr.hitTest(-10, -10); got != nil {
		t.Errorf("hitTest = %v, want nil", nameOf(got))
	}
}

// --- Dispatch ---

func TestPointerDownBubbles(t *testing.T) {
	root, card, player, button, _ := newTestTree()
	tr := NewPointerTracker(root)

	var order []string
	record := func(name string) func(PointerContext) {
		return func(ctx PointerContext) {
			if ctx.Target != button {
				t.Errorf("%s: Target = %v, want button", name, nameOf(ctx.Target))
			}
			order = append(order, name)
		}
	}
	button.OnPointerDown = record("button")
	player.OnPointerDown = record("player")
	card.OnPointerDown = record("card")

	tr.Update(0, 85, 215, true)
	want := []string{"button", "player", "card"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestTrackerCallbackSeesEvents(t *testing.T) {
	root, card, _, _, _ := newTestTree()
	tr := NewPointerTracker(root)

	var types []EventType
	h := tr.OnPointerEvent(func(ev PointerEvent) {
		if ev.Type == EventPointerDown || ev.Type == EventPointerUp || ev.Type == EventClick {
			types = append(types, ev.Type)
		}
	})
	card.OnClick = func(PointerContext) {}

	tr.Update(0, 200, 100, true)
	tr.Update(0, 200, 100, false)
	if len(types) != 3 {
		t.Fatalf("events = %v, want down/up/click", types)
	}

	h.Remove()
	types = nil
	tr.Update(0, 200, 100, true)
	if len(types) != 0 {
		t.Errorf("removed handler fired %d times", len(types))
	}
	h.Remove() // no-op
}

func TestTrackerCallbackRemovedDuringDispatch(t *testing.T) {
	root, _, _, _, _ := newTestTree()
	tr := NewPointerTracker(root)

	seen := map[string]int{}
	var first CallbackHandle
	first = tr.OnPointerEvent(func(ev PointerEvent) {
		if ev.Type == EventPointerDown {
			seen["first"]++
			first.Remove()
		}
	})
	for _, name := range []string{"second", "third"} {
		tr.OnPointerEvent(func(ev PointerEvent) {
			if ev.Type == EventPointerDown {
				seen[name]++
			}
		})
	}

	tr.Update(0, 200, 100, true)
	for _, name := range []string{"first", "second", "third"} {
		if seen[name] != 1 {
			t.Errorf("%s callback calls = %d, want 1", name, seen[name])
		}
	}
}

func TestPointerCapture(t *testing.T) {
	root, card, _, button, _ := newTestTree()
	tr := NewPointerTracker(root)

	var moves, ups int
	button.OnPointerMove = func(ctx PointerContext) {
		if ctx.Node == button {
			moves++
		}
	}
	button.OnPointerUp = func(PointerContext) { ups++ }
	var cardMoves int
	card.OnPointerMove = func(ctx PointerContext) {
		if ctx.Target != button {
			t.Errorf("captured move target = %v, want button", nameOf(ctx.Target))
		}
		cardMoves++
	}

	tr.Update(0, 85, 215, true)
	tr.Update(0, 390, 390, true) // outside everything but root
	tr.Update(0, 390, 390, false)

	if moves != 1 || ups != 1 {
		t.Errorf("moves/ups = %d/%d, want 1/1", moves, ups)
	}
	if cardMoves != 1 {
		t.Errorf("card moves = %d, want 1", cardMoves)
	}
}

func TestClickDetection(t *testing.T) {
	root, _, _, button, _ := newTestTree()
	tr := NewPointerTracker(root)
	clicks := 0
	button.OnClick = func(PointerContext) { clicks++ }

	tr.Update(0, 85, 215, true)
	tr.Update(0, 87, 216, true) // within slop
	tr.Update(0, 87, 216, false)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestClickNotFiredOnDrag(t *testing.T) {
	root, _, _, button, _ := newTestTree()
	tr := NewPointerTracker(root)
	clicks := 0
	button.OnClick = func(PointerContext) { clicks++ }

	tr.Update(0, 85, 215, true)
	tr.Update(0, 105, 235, true)
	tr.Update(0, 105, 235, false)
	if clicks != 0 {
		t.Errorf("clicks = %d, want 0", clicks)
	}
}

func TestClickNotFiredOnDifferentNode(t *testing.T) {
	root, card, _, button, _ := newTestTree()
	tr := NewPointerTracker(root)
	tr.SetClickSlop(1000)
	clicks := 0
	button.OnClick = func(PointerContext) { clicks++ }
	card.OnClick = func(PointerContext) { clicks++ }

	tr.Update(0, 85, 215, true)
	tr.Update(0, 200, 100, false)
	if clicks != 0 {
		t.Errorf("clicks = %d, want 0", clicks)
	}
}

func TestContextCoordinates(t *testing.T) {
	root, card, _, _, _ := newTestTree()
	tr := NewPointerTracker(root)
	var got PointerContext
	card.OnPointerMove = func(ctx PointerContext) { got = ctx }

	tr.Update(0, 200, 100, true)
	tr.Update(0, 230, 110, true)
	if got.StartX != 200 || got.StartY != 100 {
		t.Errorf("Start = (%v, %v), want (200, 100)", got.StartX, got.StartY)
	}
	if got.DeltaX != 30 || got.DeltaY != 10 {
		t.Errorf("Delta = (%v, %v), want (30, 10)", got.DeltaX, got.DeltaY)
	}
	if got.Type != EventPointerMove {
		t.Errorf("Type = %v, want move", got.Type)
	}
}

func TestUpdateIgnoresNaNAndBadIDs(t *testing.T) {
	root, card, _, _, _ := newTestTree()
	tr := NewPointerTracker(root)
	downs := 0
	card.OnPointerDown = func(PointerContext) { downs++ }

	tr.Update(0, math.NaN(), 100, true)
	tr.Update(-1, 200, 100, true)
	tr.Update(maxPointers, 200, 100, true)
	if downs != 0 {
		t.Errorf("downs = %d, want 0", downs)
	}
	if tr.IsDown(0) || tr.IsDown(-1) || tr.IsDown(maxPointers) {
		t.Error("no pointer should be down")
	}
}

func TestHoverEnterLeaveOrder(t *testing.T) {
	root, card, player, button, _ := newTestTree()
	tr := NewPointerTracker(root)
	var log []string
	for _, n := range []*Node{card, player, button} {
		n.OnPointerEnter = func(PointerContext) { log = append(log, "enter:"+n.Name) }
		n.OnPointerLeave = func(PointerContext) { log = append(log, "leave:"+n.Name) }
	}

	tr.Update(0, 85, 215, false) // over button
	tr.Update(0, 200, 100, false)
	want := []string{
		"enter:card", "enter:player", "enter:button",
		"leave:button", "leave:player",
	}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestCancelFiresOnPressTarget(t *testing.T) {
	root, card, _, _, _ := newTestTree()
	tr := NewPointerTracker(root)
	var cancels, leaves, ups int
	card.OnPointerCancel = func(PointerContext) { cancels++ }
	card.OnPointerLeave = func(PointerContext) { leaves++ }
	card.OnPointerUp = func(PointerContext) { ups++ }

	tr.Update(0, 200, 100, true)
	tr.Cancel(0)
	if cancels != 1 || leaves != 1 || ups != 0 {
		t.Errorf("cancel/leave/up = %d/%d/%d, want 1/1/0", cancels, leaves, ups)
	}
	if tr.IsDown(0) {
		t.Error("pointer should be released")
	}
	tr.Cancel(0)
	if cancels != 1 {
		t.Error("second cancel should not fire")
	}
}

func TestCancelAll(t *testing.T) {
	root, card, _, _, _ := newTestTree()
	tr := NewPointerTracker(root)
	cancels := 0
	card.OnPointerCancel = func(PointerContext) { cancels++ }
	tr.Update(0, 200, 100, true)
	tr.Update(3, 210, 100, true)
	tr.CancelAll()
	if cancels != 2 {
		t.Errorf("cancels = %d, want 2", cancels)
	}
}

func TestIndependentPointers(t *testing.T) {
	root, card, _, _, _ := newTestTree()
	tr := NewPointerTracker(root)
	var ups []int
	card.OnPointerUp = func(ctx PointerContext) { ups = append(ups, ctx.PointerID) }

	tr.Update(0, 200, 100, true)
	tr.Update(1, 250, 100, true)
	tr.Update(1, 250, 100, false)
	if len(ups) != 1 || ups[0] != 1 {
		t.Errorf("ups = %v, want [1]", ups)
	}
	if !tr.IsDown(0) {
		t.Error("pointer 0 should still be down")
	}
}

func TestDisposedNodeSkipped(t *testing.T) {
	root, card, _, button, _ := newTestTree()
	tr := NewPointerTracker(root)
	cardUps := 0
	card.OnPointerUp = func(PointerContext) { cardUps++ }
	button.OnPointerDown = func(PointerContext) { button.Dispose() }

	tr.Update(0, 85, 215, true)
	tr.Update(0, 85, 215, false)
	// The disposed button no longer has ancestors to bubble to.
	if cardUps != 0 {
		t.Errorf("card ups = %d, want 0", cardUps)
	}
}

// --- ECS bridge ---

type recordingStore struct {
	events []InteractionEvent
}

func (r *recordingStore) EmitEvent(ev InteractionEvent) { r.events = append(r.events, ev) }

func TestEntityStoreReceivesEvents(t *testing.T) {
	root, card, _, _, _ := newTestTree()
	tr := NewPointerTracker(root)
	store := &recordingStore{}
	tr.SetEntityStore(store)

	tr.Update(0, 200, 100, true)
	tr.Update(0, 240, 100, true)

	var move *InteractionEvent
	for i := range store.events {
		if store.events[i].Type == EventPointerMove {
			move = &store.events[i]
		}
	}
	if move == nil {
		t.Fatal("no move event forwarded")
	}
	if move.NodeID != card.ID || move.NodeName != "card" {
		t.Errorf("node = %d/%q, want %d/card", move.NodeID, move.NodeName, card.ID)
	}
	if move.StartX != 200 || move.X != 240 {
		t.Errorf("StartX/X = %v/%v, want 200/240", move.StartX, move.X)
	}
}

// --- Touch slots ---

func TestTouchSlotAllocation(t *testing.T) {
	var ts touchSlots
	a := ts.slot(100)
	b := ts.slot(200)
	if a != 1 || b != 2 {
		t.Errorf("slots = %d, %d, want 1, 2", a, b)
	}
	if again := ts.slot(100); again != a {
		t.Errorf("repeat slot = %d, want %d", again, a)
	}
	for i := 0; i < maxPointers; i++ {
		ts.slot(1000 + i)
	}
	if got := ts.slot(5000); got != -1 {
		t.Errorf("full slot = %d, want -1", got)
	}
}

func nameOf(n *Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.Name
}
