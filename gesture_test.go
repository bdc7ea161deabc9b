package trackswipe

import (
	"math"
	"testing"
)

type commitCounter struct {
	left, right int
}

func (c *commitCounter) config(threshold float64) SwipeConfig {
	return SwipeConfig{
		Threshold:     threshold,
		OnCommitLeft:  func() { c.left++ },
		OnCommitRight: func() { c.right++ },
		Policy:        PolicyWholeSurface,
	}
}

func TestSwipeCommitRight(t *testing.T) {
	var c commitCounter
	g := NewSwipeGesture(c.config(100))
	if !g.Start(0, 0, NewNode("card", Rect{})) {
		t.Fatal("Start should succeed")
	}
	g.Move(150)
	if got := g.End(); got != DirectionRight {
		t.Errorf("End = %v, want right", got)
	}
	if c.right != 1 || c.left != 0 {
		t.Errorf("commits left/right = %d/%d, want 0/1", c.left, c.right)
	}
	if g.Offset() != 0 || g.Active() {
		t.Errorf("after End offset=%v active=%v, want 0/false", g.Offset(), g.Active())
	}
}

func TestSwipeBelowThresholdSnapsBack(t *testing.T) {
	var c commitCounter
	g := NewSwipeGesture(c.config(100))
	g.Start(0, 0, nil)
	g.Move(40)
	if got := g.End(); got != DirectionNone {
		t.Errorf("End = %v, want none", got)
	}
	if c.left+c.right != 0 {
		t.Errorf("commits = %d, want 0", c.left+c.right)
	}
	if g.Offset() != 0 {
		t.Errorf("Offset = %v, want 0", g.Offset())
	}
}

func TestSwipeStartInExcludedZone(t *testing.T) {
	var c commitCounter
	g := NewSwipeGesture(c.config(100))
	card := NewNode("card", Rect{})
	player := NewNode("player", Rect{})
	player.NoSwipe = true
	card.AddChild(player)

	if g.Start(0, 0, player) {
		t.Error("Start inside no-swipe zone should be rejected")
	}
	g.Move(200)
	if g.Active() {
		t.Error("gesture should remain inactive")
	}
	g.End()
	if c.left+c.right != 0 {
		t.Errorf("commits = %d, want 0", c.left+c.right)
	}
}

func TestSwipeThresholdBoundary(t *testing.T) {
	tests := []struct {
		offset float64
		want   Direction
	}{
		{100, DirectionNone},
		{-100, DirectionNone},
		{100.01, DirectionRight},
		{-100.01, DirectionLeft},
		{0, DirectionNone},
		{-250, DirectionLeft},
	}
	for _, tt := range tests {
		var c commitCounter
		g := NewSwipeGesture(c.config(100))
		g.Start(10, 0, nil)
		g.Move(10 + tt.offset)
		got := g.End()
		if got != tt.want {
			t.Errorf("offset %v: End = %v, want %v", tt.offset, got, tt.want)
		}
		commits := c.left + c.right
		if (tt.want == DirectionNone) != (commits == 0) || commits > 1 {
			t.Errorf("offset %v: commits = %d", tt.offset, commits)
		}
	}
}

func TestSwipeLeaveAndCancelBehaveLikeEnd(t *testing.T) {
	for _, name := range []string{"leave", "cancel"} {
		var c commitCounter
		g := NewSwipeGesture(c.config(100))
		g.Start(200, 0, nil)
		g.Move(50)
		var got Direction
		if name == "leave" {
			got = g.Leave()
		} else {
			got = g.Cancel()
		}
		if got != DirectionLeft || c.left != 1 {
			t.Errorf("%s: got %v with %d left commits, want left/1", name, got, c.left)
		}
		if g.Active() || g.Offset() != 0 {
			t.Errorf("%s: session not reset", name)
		}
	}
}

func TestSwipeSecondStartIgnored(t *testing.T) {
	var c commitCounter
	g := NewSwipeGesture(c.config(100))
	g.Start(0, 0, nil)
	g.Move(30)
	if g.Start(500, 0, nil) {
		t.Error("second Start should be rejected")
	}
	if s := g.Session(); s.StartX != 0 || s.Offset != 30 {
		t.Errorf("session = %+v, want StartX 0 Offset 30", s)
	}
}

func TestSwipeIdleEndAndMoveAreNoOps(t *testing.T) {
	var c commitCounter
	g := NewSwipeGesture(c.config(100))
	g.Move(500)
	if g.Offset() != 0 {
		t.Errorf("Offset = %v, want 0", g.Offset())
	}
	if got := g.End(); got != DirectionNone || c.left+c.right != 0 {
		t.Error("idle End should not commit")
	}
}

func TestSwipeNaNInputIgnored(t *testing.T) {
	var c commitCounter
	g := NewSwipeGesture(c.config(100))
	if g.Start(math.NaN(), 0, nil) {
		t.Error("NaN start should be rejected")
	}
	g.Start(0, 0, nil)
	g.Move(50)
	g.Move(math.NaN())
	if g.Offset() != 50 {
		t.Errorf("Offset = %v, want 50", g.Offset())
	}
}

func TestSwipeDefaultThreshold(t *testing.T) {
	for _, th := range []float64{0, -5, math.NaN()} {
		g := NewSwipeGesture(SwipeConfig{Threshold: th})
		if g.Threshold() != DefaultSwipeThreshold {
			t.Errorf("Threshold(%v) = %v, want %v", th, g.Threshold(), DefaultSwipeThreshold)
		}
	}
}

func TestSwipeCommitCallbackSeesResetSession(t *testing.T) {
	var g *SwipeGesture
	var active bool
	g = NewSwipeGesture(SwipeConfig{
		Policy:        PolicyWholeSurface,
		OnCommitRight: func() { active = g.Active() },
	})
	g.Start(0, 0, nil)
	g.Move(300)
	g.End()
	if active {
		t.Error("session should be reset before the commit callback runs")
	}
}

// --- Zone policy ---

func TestPolicyAboveControl(t *testing.T) {
	surface := NewNode("card", Rect{X: 0, Y: 100, Width: 300, Height: 400})
	control := NewNode("player", Rect{X: 0, Y: 200, Width: 300, Height: 100})
	surface.AddChild(control)
	g := NewSwipeGesture(SwipeConfig{Surface: surface, Control: control})

	// Control world midpoint: 100 + 200 + 50 = 350.
	tests := []struct {
		y    float64
		want bool
	}{
		{120, true},
		{349, true},
		{350, false},
		{480, false},
	}
	for _, tt := range tests {
		ok := g.Start(10, tt.y, surface)
		if ok != tt.want {
			t.Errorf("Start(y=%v) = %v, want %v", tt.y, ok, tt.want)
		}
		g.End()
	}
}

func TestPolicyAboveControlFallback(t *testing.T) {
	surface := NewNode("card", Rect{X: 0, Y: 0, Width: 300, Height: 500})
	g := NewSwipeGesture(SwipeConfig{Surface: surface})

	if !g.Start(0, 299, surface) {
		t.Error("y=299 should be above the 60% cutoff")
	}
	g.End()
	if g.Start(0, 300, surface) {
		t.Error("y=300 should be at the 60% cutoff and rejected")
	}
}

func TestPolicyAboveControlDetachedControl(t *testing.T) {
	surface := NewNode("card", Rect{Width: 300, Height: 500})
	control := NewNode("player", Rect{Y: 100, Height: 50, Width: 300})
	surface.AddChild(control)
	control.Visible = false
	g := NewSwipeGesture(SwipeConfig{Surface: surface, Control: control})

	// Hidden control falls back to the surface cutoff at 300.
	if !g.Start(0, 200, surface) {
		t.Error("hidden control should fall back to the surface cutoff")
	}
}

func TestPolicyWholeSurface(t *testing.T) {
	surface := NewNode("card", Rect{Width: 300, Height: 500})
	control := NewNode("player", Rect{Y: 100, Height: 50, Width: 300})
	surface.AddChild(control)
	g := NewSwipeGesture(SwipeConfig{Surface: surface, Control: control, Policy: PolicyWholeSurface})
	if !g.Start(0, 490, surface) {
		t.Error("whole-surface policy should accept any height")
	}
	g.End()
	if !g.Start(0, 120, control) {
		t.Error("press on a child without NoSwipe should start")
	}
}

func TestParseZonePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    ZonePolicy
		wantErr bool
	}{
		{"", PolicyAboveControl, false},
		{"above-control", PolicyAboveControl, false},
		{"whole-surface", PolicyWholeSurface, false},
		{"everywhere", PolicyAboveControl, true},
	}
	for _, tt := range tests {
		got, err := ParseZonePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseZonePolicy(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseZonePolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if err == nil && got.String() != tt.in && tt.in != "" {
			t.Errorf("String() = %q, want %q", got.String(), tt.in)
		}
	}
}

// --- Classification ---

func TestClassifyDirection(t *testing.T) {
	tests := []struct {
		offset float64
		want   Direction
	}{
		{0, DirectionNone},
		{19.9, DirectionNone},
		{-19.9, DirectionNone},
		{20, DirectionRight},
		{-20, DirectionLeft},
		{300, DirectionRight},
		{math.NaN(), DirectionNone},
	}
	for _, tt := range tests {
		if got := ClassifyDirection(tt.offset); got != tt.want {
			t.Errorf("ClassifyDirection(%v) = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestSwipeIntensity(t *testing.T) {
	tests := []struct {
		offset, threshold, want float64
	}{
		{0, 100, 0},
		{50, 100, 0.5},
		{-50, 100, 0.5},
		{100, 100, 1},
		{400, 100, 1},
		{50, 0, 0.5},
		{math.NaN(), 100, 0},
	}
	for _, tt := range tests {
		if got := SwipeIntensity(tt.offset, tt.threshold); got != tt.want {
			t.Errorf("SwipeIntensity(%v, %v) = %v, want %v", tt.offset, tt.threshold, got, tt.want)
		}
	}
}

func TestSwipeIntensityMonotonic(t *testing.T) {
	prev := -1.0
	for o := 0.0; o <= 300; o += 7 {
		v := SwipeIntensity(o, 100)
		if v < prev || v < 0 || v > 1 {
			t.Fatalf("SwipeIntensity(%v) = %v after %v", o, v, prev)
		}
		prev = v
	}
}

// --- Pointer binding ---

func newSwipeScreen(c *commitCounter) (*PointerTracker, *SwipeGesture, *Node, *Node) {
	root := NewNode("root", Rect{Width: 600, Height: 800})
	card := NewNode("card", Rect{X: 100, Y: 100, Width: 400, Height: 560})
	player := NewNode("player", Rect{X: 24, Y: 200, Width: 352, Height: 200})
	player.NoSwipe = true
	root.AddChild(card)
	card.AddChild(player)

	cfg := c.config(100)
	cfg.Policy = PolicyAboveControl
	cfg.Control = player
	g := NewSwipeGesture(cfg)
	g.BindPointer(card)
	return NewPointerTracker(root), g, card, player
}

func TestBindPointerDrivesGesture(t *testing.T) {
	var c commitCounter
	tr, g, card, _ := newSwipeScreen(&c)

	tr.Update(0, 300, 150, true)
	if !g.Active() {
		t.Fatal("press on card header should start a swipe")
	}
	tr.Update(0, 420, 150, true)
	if g.Offset() != 120 {
		t.Errorf("Offset = %v, want 120", g.Offset())
	}
	card.OffsetX = g.Offset()
	tr.Update(0, 420, 150, false)
	if c.right != 1 {
		t.Errorf("right commits = %d, want 1", c.right)
	}
}

func TestBindPointerIgnoresPlayerPresses(t *testing.T) {
	var c commitCounter
	tr, g, _, player := newSwipeScreen(&c)

	downs := 0
	player.OnPointerDown = func(PointerContext) { downs++ }

	tr.Update(0, 300, 350, true)
	if g.Active() {
		t.Error("press inside the player must not start a swipe")
	}
	if downs != 1 {
		t.Errorf("player downs = %d, want 1", downs)
	}
	tr.Update(0, 100, 350, true)
	tr.Update(0, 100, 350, false)
	if c.left+c.right != 0 {
		t.Error("no commit expected")
	}
}

func TestBindPointerIgnoresOtherPointers(t *testing.T) {
	var c commitCounter
	tr, g, _, _ := newSwipeScreen(&c)

	tr.Update(0, 300, 150, true)
	tr.Update(1, 310, 150, true)
	tr.Update(1, 480, 150, true)
	tr.Update(1, 480, 150, false)
	if !g.Active() || g.Offset() != 0 {
		t.Errorf("second pointer changed the session: %+v", g.Session())
	}
	tr.Update(0, 150, 150, true)
	tr.Update(0, 150, 150, false)
	if c.left != 1 {
		t.Errorf("left commits = %d, want 1", c.left)
	}
}

func TestBindPointerCancelEndsSession(t *testing.T) {
	var c commitCounter
	tr, g, _, _ := newSwipeScreen(&c)
	tr.Update(0, 300, 150, true)
	tr.Update(0, 320, 150, true)
	tr.CancelAll()
	if g.Active() {
		t.Error("cancel should end the session")
	}
	if c.left+c.right != 0 {
		t.Error("short cancelled drag should not commit")
	}
}
