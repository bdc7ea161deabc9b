package trackswipe

import (
	"fmt"
	"os"
)

// globalDebug enables disposed-node checks in tree operations.
var globalDebug bool

// SetDebugMode enables or disables debug checks and event logging on stderr.
func (t *PointerTracker) SetDebugMode(enabled bool) {
	t.debug = enabled
	globalDebug = enabled
}

// debugLogEvent prints one dispatched pointer event to stderr. Hover moves are
// skipped; they arrive every frame the cursor moves.
func (t *PointerTracker) debugLogEvent(ev PointerEvent) {
	if ev.Type == EventPointerMove && !t.IsDown(ev.PointerID) {
		return
	}
	name := "<none>"
	if ev.Target != nil {
		name = ev.Target.Name
	}
	_, _ = fmt.Fprintf(os.Stderr, "[trackswipe] pointer %d %s at (%.1f, %.1f) target %q\n",
		ev.PointerID, ev.Type, ev.X, ev.Y, name)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("trackswipe debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugLogGesture prints a gesture transition to stderr.
func debugLogGesture(phase string, s DragSession) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[trackswipe] swipe %s | active: %v | start: %.1f | offset: %.1f\n",
		phase, s.Active, s.StartX, s.Offset)
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[trackswipe] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}
