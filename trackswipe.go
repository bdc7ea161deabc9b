package trackswipe

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// RGBA converts c to a premultiplied color.RGBA for drawing.
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

var (
	ColorWhite  = Color{1, 1, 1, 1}
	ColorLike   = Color{R: 0.133, G: 0.773, B: 0.369, A: 1} // green-500
	ColorReject = Color{R: 0.937, G: 0.267, B: 0.267, A: 1} // red-500
	ColorAccent = Color{R: 0.659, G: 0.333, B: 0.969, A: 1} // purple-500
	ColorPink   = Color{R: 0.957, G: 0.447, B: 0.714, A: 1} // pink-400
)

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// MidY returns the vertical midpoint.
func (r Rect) MidY() float64 {
	return r.Y + r.Height/2
}

// Translate returns r shifted by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Inset returns r shrunk by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
}

// Direction is the classified horizontal direction of a swipe.
type Direction uint8

const (
	DirectionNone  Direction = iota // inside the dead zone or idle
	DirectionLeft                   // reject
	DirectionRight                  // approve
)

// String returns the lower-case direction name.
func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventPointerDown   EventType = iota // fires when a pointer is pressed
	EventPointerUp                      // fires when a pointer is released
	EventPointerMove                    // fires when a pointer moves, pressed or hovering
	EventPointerCancel                  // fires when the platform aborts a press (focus loss, touch cancel)
	EventPointerEnter                   // fires when the pointer enters a node or one of its descendants
	EventPointerLeave                   // fires when the pointer leaves a node and all its descendants
	EventClick                          // fires on press then release over the same node without a drag
)

// String returns the event name used in debug output.
func (e EventType) String() string {
	switch e {
	case EventPointerDown:
		return "down"
	case EventPointerUp:
		return "up"
	case EventPointerMove:
		return "move"
	case EventPointerCancel:
		return "cancel"
	case EventPointerEnter:
		return "enter"
	case EventPointerLeave:
		return "leave"
	case EventClick:
		return "click"
	default:
		return "unknown"
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
