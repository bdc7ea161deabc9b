package trackswipe

import "math"

// TrackBounds is the horizontal extent of a linear control in screen space.
type TrackBounds struct {
	Left, Width float64
}

// BoundsProvider reports the current bounds of a control. It is sampled on
// every press and move, so a control that moves mid-drag maps correctly.
type BoundsProvider interface {
	TrackBounds() TrackBounds
}

// BoundsFunc adapts a function to BoundsProvider.
type BoundsFunc func() TrackBounds

// TrackBounds calls f.
func (f BoundsFunc) TrackBounds() TrackBounds { return f() }

// ScrubState is the interaction state of one Scrubber.
type ScrubState struct {
	Active bool
	Bounds TrackBounds // bounds sampled by the last conversion
}

// Scrubber maps pointer X on a linear control to a normalized value in [0,1].
// The same engine drives the progress bar and the volume bar; mapping the
// fraction to seconds or volume is the caller's job.
type Scrubber struct {
	bounds    BoundsProvider
	onChange  func(float64)
	state     ScrubState
	fraction  float64
	hovered   bool
	pointerID int
}

// NewScrubber creates an idle scrubber reading bounds from bounds and reporting
// each committed fraction to onChange.
func NewScrubber(bounds BoundsProvider, onChange func(float64)) *Scrubber {
	return &Scrubber{bounds: bounds, onChange: onChange, pointerID: -1}
}

// PointerToFraction converts a pointer X to clamp((x-left)/width, 0, 1) using
// freshly sampled bounds. A non-positive width or a NaN input returns the
// previous fraction unchanged.
func (s *Scrubber) PointerToFraction(x float64) float64 {
	f, _ := s.convert(x)
	return f
}

func (s *Scrubber) convert(x float64) (float64, bool) {
	var b TrackBounds
	if s.bounds != nil {
		b = s.bounds.TrackBounds()
	}
	s.state.Bounds = b
	if !(b.Width > 0) || math.IsNaN(x) || math.IsNaN(b.Left) || math.IsInf(b.Width, 0) {
		return s.fraction, false
	}
	return clamp01((x - b.Left) / b.Width), true
}

// Press seeks to the fraction under x immediately; a single click seeks
// without a drag. Returns the resulting fraction. Invalid bounds leave the
// value untouched and do not invoke OnChange.
func (s *Scrubber) Press(x float64) float64 {
	f, ok := s.convert(x)
	if !ok {
		return f
	}
	s.fraction = f
	if s.onChange != nil {
		s.onChange(f)
	}
	return f
}

// DragStart activates the scrubber and presses at x. It is rejected, returning
// false, while a drag is already active.
func (s *Scrubber) DragStart(x float64) bool {
	if s.state.Active {
		return false
	}
	s.state.Active = true
	s.Press(x)
	return true
}

// DragMove presses at x while a drag is active.
func (s *Scrubber) DragMove(x float64) {
	if !s.state.Active {
		return
	}
	s.Press(x)
}

// DragEnd deactivates the scrubber. The value set by the last move stands.
func (s *Scrubber) DragEnd() {
	s.state.Active = false
	s.pointerID = -1
}

// Active reports whether a drag is in progress.
func (s *Scrubber) Active() bool { return s.state.Active }

// State returns a copy of the interaction state.
func (s *Scrubber) State() ScrubState { return s.state }

// Fraction returns the last committed fraction.
func (s *Scrubber) Fraction() float64 { return s.fraction }

// Sync sets the fraction from the domain value, e.g. a playback position
// update, without invoking OnChange. Ignored while a drag is active.
func (s *Scrubber) Sync(f float64) {
	if s.state.Active || math.IsNaN(f) {
		return
	}
	s.fraction = clamp01(f)
}

// Hovered reports the externally tracked hover flag.
func (s *Scrubber) Hovered() bool { return s.hovered }

// SetHovered records whether the pointer is over the control.
func (s *Scrubber) SetHovered(h bool) { s.hovered = h }

// Affordance returns the presentation for the current state.
func (s *Scrubber) Affordance() Affordance {
	return ScrubAffordance(s.state.Active, s.hovered)
}

// BindPointer installs pointer callbacks on the control node. A press starts a
// drag that follows the pressing pointer until release, even outside the node.
// Hover stays set while dragging past the node's edge.
func (s *Scrubber) BindPointer(control *Node) {
	control.OnPointerDown = func(ctx PointerContext) {
		if s.DragStart(ctx.X) {
			s.pointerID = ctx.PointerID
		}
	}
	control.OnPointerMove = func(ctx PointerContext) {
		if ctx.PointerID == s.pointerID {
			s.DragMove(ctx.X)
		}
	}
	release := func(ctx PointerContext) {
		if ctx.PointerID == s.pointerID {
			s.DragEnd()
			s.hovered = control.Contains(ctx.X, ctx.Y)
		}
	}
	control.OnPointerUp = release
	control.OnPointerCancel = release
	control.OnPointerEnter = func(PointerContext) { s.hovered = true }
	control.OnPointerLeave = func(PointerContext) {
		if !s.state.Active {
			s.hovered = false
		}
	}
}

// Affordance describes how a scrub control is drawn.
type Affordance struct {
	HandleVisible  bool
	HandleScale    float64
	TrackThickness float64
	Highlight      bool
}

const (
	trackThin  = 4.0
	trackThick = 8.0
)

// ScrubAffordance derives the handle and track presentation from the drag flag
// and the hover flag. The handle is revealed and the track thickens while
// either is set.
func ScrubAffordance(active, hovered bool) Affordance {
	if active || hovered {
		return Affordance{HandleVisible: true, HandleScale: 1, TrackThickness: trackThick, Highlight: true}
	}
	return Affordance{HandleScale: 0.75, TrackThickness: trackThin}
}
