package trackswipe

import "github.com/tanema/gween/ease"

const (
	snapBackDuration = 0.3  // seconds
	flyOutDuration   = 0.25 // seconds
	flyOutMargin     = 80.0 // pixels past the card width

	cardRotationFactor = 0.1 // degrees per pixel of offset
	cardDragScale      = 0.95
	overlayOpacity     = 0.8
	overlayFillFactor  = 0.3
	overlayLabelScale  = 1.1
)

// CardRotation returns the card tilt in degrees for a horizontal offset.
func CardRotation(offset float64) float64 {
	return offset * cardRotationFactor
}

// CardScale returns the card scale: slightly shrunk while dragged.
func CardScale(dragging bool) float64 {
	if dragging {
		return cardDragScale
	}
	return 1
}

// OverlayStyle describes the like/dislike tint drawn over a dragged card.
type OverlayStyle struct {
	Visible     bool
	Tint        Color
	BorderAlpha float64
	FillAlpha   float64
	LabelAlpha  float64
	LabelScale  float64
	Label       string
}

// SwipeOverlay derives the overlay from a gesture reading. Nothing is shown
// inside the dead zone.
func SwipeOverlay(d Direction, intensity float64) OverlayStyle {
	if d == DirectionNone {
		return OverlayStyle{LabelScale: 1}
	}
	intensity = clamp01(intensity)
	s := OverlayStyle{
		Visible:     true,
		BorderAlpha: intensity * overlayOpacity,
		LabelAlpha:  intensity,
		LabelScale:  1,
	}
	s.FillAlpha = s.BorderAlpha * overlayFillFactor
	if intensity > 0.5 {
		s.LabelScale = overlayLabelScale
	}
	if d == DirectionRight {
		s.Tint, s.Label = ColorLike, "LIKE"
	} else {
		s.Tint, s.Label = ColorReject, "DISLIKE"
	}
	return s
}

// CardView presents a swipe gesture on its surface node. While the gesture is
// active the surface follows the offset exactly; on release it eases back to
// rest, or flies off screen after a commit.
type CardView struct {
	Surface *Node

	gesture   *SwipeGesture
	tween     *TweenGroup
	wasActive bool
	flying    bool
}

// NewCardView creates a view for gesture on surface.
func NewCardView(surface *Node, gesture *SwipeGesture) *CardView {
	return &CardView{Surface: surface, gesture: gesture}
}

// Update advances the card animation by dt seconds.
func (c *CardView) Update(dt float64) {
	if c.gesture.Active() {
		c.tween = nil
		c.flying = false
		c.wasActive = true
		c.Surface.OffsetX = c.gesture.Offset()
		return
	}
	if c.wasActive {
		c.wasActive = false
		if !c.flying {
			c.tween = TweenOffset(c.Surface, 0, 0, snapBackDuration, ease.OutCubic)
		}
	}
	if c.tween != nil {
		c.tween.Update(float32(dt))
		if c.tween.Done {
			c.tween = nil
		}
	}
}

// FlyOut animates the card off screen in direction d.
func (c *CardView) FlyOut(d Direction) {
	if d == DirectionNone {
		return
	}
	dist := c.Surface.Bounds.Width + flyOutMargin
	if d == DirectionLeft {
		dist = -dist
	}
	c.flying = true
	c.tween = TweenOffset(c.Surface, dist, 0, flyOutDuration, ease.InCubic)
}

// Restore eases the card back to rest, e.g. after a failed review.
func (c *CardView) Restore() {
	c.flying = false
	c.tween = TweenOffset(c.Surface, 0, 0, snapBackDuration, ease.OutCubic)
}

// Present places the card at rest immediately, for a newly shown track.
func (c *CardView) Present() {
	c.flying = false
	c.tween = nil
	c.Surface.OffsetX = 0
	c.Surface.OffsetY = 0
}

// Offset returns the displayed horizontal offset.
func (c *CardView) Offset() float64 { return c.Surface.OffsetX }

// Rotation returns the displayed tilt in degrees.
func (c *CardView) Rotation() float64 { return CardRotation(c.Surface.OffsetX) }

// Scale returns the displayed scale.
func (c *CardView) Scale() float64 { return CardScale(c.gesture.Active()) }

// Overlay returns the overlay for the live gesture.
func (c *CardView) Overlay() OverlayStyle {
	return SwipeOverlay(c.gesture.Direction(), c.gesture.Intensity())
}

// Settled reports whether the card is at rest with no animation running.
func (c *CardView) Settled() bool {
	return !c.gesture.Active() && c.tween == nil
}

// Flying reports whether the card is leaving after a commit.
func (c *CardView) Flying() bool { return c.flying }
