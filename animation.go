package trackswipe

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 2 float64 fields simultaneously. Call Update(dt)
// each frame; the group writes the tweened values into the fields. If the
// owning node is disposed, the group stops immediately.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	fields [2]*float64
	owner  *Node
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the fields.
// If the owner has been disposed, Done is set to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.owner != nil && g.owner.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenValue creates a TweenGroup that animates *field to the target value
// over the specified duration using the easing function. owner may be nil.
func TweenValue(owner *Node, field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, owner: owner}
	g.tweens[0] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[0] = field
	return g
}

// TweenOffset creates a TweenGroup that animates node.OffsetX and node.OffsetY
// to the given target over the specified duration using the easing function.
func TweenOffset(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, owner: node}
	g.tweens[0] = gween.New(float32(node.OffsetX), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.OffsetY), float32(toY), duration, fn)
	g.fields[0] = &node.OffsetX
	g.fields[1] = &node.OffsetY
	return g
}
