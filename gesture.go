package trackswipe

import (
	"fmt"
	"math"
)

const (
	// DefaultSwipeThreshold is the offset in pixels a release must exceed to
	// commit a swipe.
	DefaultSwipeThreshold = 100.0

	// DirectionDeadZone is the offset below which the direction reads as None,
	// so the overlay does not flicker while the card is at rest.
	DirectionDeadZone = 20.0

	// fallbackCutoff is the fraction of the surface height above which a drag
	// may start when no control is attached.
	fallbackCutoff = 0.6
)

// ZonePolicy selects where on the surface a swipe may begin.
type ZonePolicy uint8

const (
	// PolicyAboveControl only starts a swipe above the vertical midpoint of the
	// configured control node, or above 60% of the surface height when no
	// control is attached.
	PolicyAboveControl ZonePolicy = iota
	// PolicyWholeSurface starts a swipe anywhere on the surface.
	PolicyWholeSurface
)

// String returns the config name of the policy.
func (p ZonePolicy) String() string {
	switch p {
	case PolicyWholeSurface:
		return "whole-surface"
	default:
		return "above-control"
	}
}

// ParseZonePolicy parses a config name. The empty string yields the default.
func ParseZonePolicy(s string) (ZonePolicy, error) {
	switch s {
	case "", "above-control":
		return PolicyAboveControl, nil
	case "whole-surface":
		return PolicyWholeSurface, nil
	}
	return PolicyAboveControl, fmt.Errorf("unknown swipe policy %q (want above-control or whole-surface)", s)
}

// DragSession is the mutable state of one swipe.
type DragSession struct {
	Active bool
	StartX float64
	Offset float64
}

// SwipeConfig configures a SwipeGesture.
type SwipeConfig struct {
	// Threshold is the offset a release must exceed to commit. Values <= 0
	// select DefaultSwipeThreshold.
	Threshold float64

	OnCommitLeft  func()
	OnCommitRight func()

	// Surface is the card the swipe moves. Used for the fallback cutoff.
	Surface *Node
	// Control is the nested interactive element whose midpoint bounds the
	// start zone under PolicyAboveControl.
	Control *Node

	Policy ZonePolicy
}

// SwipeGesture recognizes a horizontal swipe on a card surface. It owns exactly
// one DragSession; a new session cannot start while one is active.
type SwipeGesture struct {
	cfg       SwipeConfig
	threshold float64
	session   DragSession
	pointerID int // pointer that owns the active session
}

// NewSwipeGesture creates an idle gesture.
func NewSwipeGesture(cfg SwipeConfig) *SwipeGesture {
	t := cfg.Threshold
	if !(t > 0) {
		t = DefaultSwipeThreshold
	}
	return &SwipeGesture{cfg: cfg, threshold: t, pointerID: -1}
}

// Threshold returns the commit threshold in use.
func (g *SwipeGesture) Threshold() float64 { return g.threshold }

// Policy returns the start zone policy.
func (g *SwipeGesture) Policy() ZonePolicy { return g.cfg.Policy }

// SetControl replaces the control node used by PolicyAboveControl.
func (g *SwipeGesture) SetControl(control *Node) { g.cfg.Control = control }

// Start begins a session at (x, y). It is a no-op returning false when a
// session is already active, when target lies in a no-swipe zone, or when y is
// outside the start zone.
func (g *SwipeGesture) Start(x, y float64, target *Node) bool {
	if g.session.Active {
		return false
	}
	if math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	if target != nil && target.InNoSwipeZone() {
		return false
	}
	if !g.allowsY(y) {
		return false
	}
	g.session = DragSession{Active: true, StartX: x}
	debugLogGesture("start", g.session)
	return true
}

// allowsY applies the zone policy to a press height.
func (g *SwipeGesture) allowsY(y float64) bool {
	if g.cfg.Policy == PolicyWholeSurface {
		return true
	}
	if c := g.cfg.Control; c.Attached() {
		return y < c.WorldBounds().MidY()
	}
	if s := g.cfg.Surface; s != nil && !s.disposed {
		wb := s.WorldBounds()
		return y < wb.Y+fallbackCutoff*wb.Height
	}
	return true
}

// Move updates the offset of the active session.
func (g *SwipeGesture) Move(x float64) {
	if !g.session.Active || math.IsNaN(x) {
		return
	}
	g.session.Offset = x - g.session.StartX
}

// End releases the active session. When the offset magnitude exceeds the
// threshold exactly one commit callback fires, matching the offset sign. The
// session is reset before the callback runs. Returns the committed direction,
// or DirectionNone when nothing fired.
func (g *SwipeGesture) End() Direction {
	if !g.session.Active {
		return DirectionNone
	}
	debugLogGesture("end", g.session)
	offset := g.session.Offset
	g.session = DragSession{}
	g.pointerID = -1

	if math.Abs(offset) <= g.threshold {
		return DirectionNone
	}
	if offset > 0 {
		if g.cfg.OnCommitRight != nil {
			g.cfg.OnCommitRight()
		}
		return DirectionRight
	}
	if g.cfg.OnCommitLeft != nil {
		g.cfg.OnCommitLeft()
	}
	return DirectionLeft
}

// Leave handles the pointer leaving the surface. It behaves exactly like End.
func (g *SwipeGesture) Leave() Direction { return g.End() }

// Cancel handles a platform-aborted press. It behaves exactly like End.
func (g *SwipeGesture) Cancel() Direction { return g.End() }

// Active reports whether a session is in progress.
func (g *SwipeGesture) Active() bool { return g.session.Active }

// Offset returns the current horizontal offset (0 when idle).
func (g *SwipeGesture) Offset() float64 { return g.session.Offset }

// Session returns a copy of the current session.
func (g *SwipeGesture) Session() DragSession { return g.session }

// Direction classifies the current offset.
func (g *SwipeGesture) Direction() Direction { return ClassifyDirection(g.session.Offset) }

// Intensity returns min(|offset|/threshold, 1).
func (g *SwipeGesture) Intensity() float64 { return SwipeIntensity(g.session.Offset, g.threshold) }

// ClassifyDirection returns None inside the dead zone, otherwise the sign of
// the offset.
func ClassifyDirection(offset float64) Direction {
	if !(math.Abs(offset) >= DirectionDeadZone) {
		return DirectionNone
	}
	if offset > 0 {
		return DirectionRight
	}
	return DirectionLeft
}

// SwipeIntensity returns min(|offset|/threshold, 1). A non-positive threshold
// selects DefaultSwipeThreshold.
func SwipeIntensity(offset, threshold float64) float64 {
	if !(threshold > 0) {
		threshold = DefaultSwipeThreshold
	}
	if math.IsNaN(offset) {
		return 0
	}
	return math.Min(math.Abs(offset)/threshold, 1)
}

// BindPointer installs pointer callbacks on the surface node that drive the
// gesture. Presses bubbling up from no-swipe descendants are ignored by Start.
// Only the pointer that started the session can move or release it.
func (g *SwipeGesture) BindPointer(surface *Node) {
	g.cfg.Surface = surface
	surface.OnPointerDown = func(ctx PointerContext) {
		if g.Start(ctx.X, ctx.Y, ctx.Target) {
			g.pointerID = ctx.PointerID
		}
	}
	surface.OnPointerMove = func(ctx PointerContext) {
		if ctx.PointerID == g.pointerID {
			g.Move(ctx.X)
		}
	}
	release := func(ctx PointerContext) {
		if ctx.PointerID == g.pointerID {
			g.End()
		}
	}
	surface.OnPointerUp = release
	surface.OnPointerCancel = release
	surface.OnPointerLeave = func(ctx PointerContext) {
		if ctx.PointerID == g.pointerID {
			g.Leave()
		}
	}
}
