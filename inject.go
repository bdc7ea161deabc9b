package trackswipe

// syntheticPointerEvent represents a single injected pointer event in screen
// coordinates, consumed in place of real mouse input.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	leave   bool
}

// InjectPress queues a pointer press at the given screen coordinates.
// The event is consumed on the next Poll.
func (t *PointerTracker) InjectPress(x, y float64) {
	t.injectQueue = append(t.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use this between
// InjectPress and InjectRelease to simulate a drag.
func (t *PointerTracker) InjectMove(x, y float64) {
	t.injectQueue = append(t.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (t *PointerTracker) InjectRelease(x, y float64) {
	t.injectQueue = append(t.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectLeave queues the pointer leaving the window, which cancels any press.
func (t *PointerTracker) InjectLeave() {
	t.injectQueue = append(t.injectQueue, syntheticPointerEvent{leave: true})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (t *PointerTracker) InjectClick(x, y float64) {
	t.InjectPress(x, y)
	t.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). Minimum frames is 2 (press + release).
func (t *PointerTracker) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	t.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		f := float64(i) / float64(steps+1)
		t.InjectMove(fromX+(toX-fromX)*f, fromY+(toY-fromY)*f)
	}
	t.InjectRelease(toX, toY)
}

// PendingInjections returns the number of queued synthetic events.
func (t *PointerTracker) PendingInjections() int {
	return len(t.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the mouse pointer. Returns true if an event was consumed.
func (t *PointerTracker) processInjectedInput() bool {
	if len(t.injectQueue) == 0 {
		return false
	}
	evt := t.injectQueue[0]
	copy(t.injectQueue, t.injectQueue[1:])
	t.injectQueue = t.injectQueue[:len(t.injectQueue)-1]

	if evt.leave {
		t.Cancel(0)
		return true
	}
	t.Update(0, evt.x, evt.y, evt.pressed)
	return true
}
