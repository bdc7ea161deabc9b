package trackswipe

import "github.com/hajimehoshi/ebiten/v2"

// touchSlots maps ebiten touch IDs to pointer slots 1-9.
type touchSlots struct {
	ids  [maxPointers]ebiten.TouchID
	used [maxPointers]bool
	buf  []ebiten.TouchID
}

// Poll reads ebiten mouse and touch state and feeds it through the pointer
// state machine. Call once per Update tick. Queued synthetic events take the
// place of real mouse input for the frame they are consumed on.
func (t *PointerTracker) Poll() {
	if !ebiten.IsFocused() {
		// Releases that happen while unfocused are never observed.
		t.CancelAll()
		return
	}
	if !t.processInjectedInput() {
		t.pollMouse()
	}
	t.pollTouches()
}

// pollMouse handles mouse input (pointer 0).
func (t *PointerTracker) pollMouse() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	t.Update(0, float64(mx), float64(my), pressed)
}

// pollTouches handles touch input (pointers 1-9).
func (t *PointerTracker) pollTouches() {
	ts := &t.touch
	touchIDs := ebiten.AppendTouchIDs(ts.buf[:0])
	ts.buf = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := ts.slot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		t.Update(slot, float64(tx), float64(ty), true)
	}

	// A touch that vanished is a touch end at its last known position.
	for i := 1; i < maxPointers; i++ {
		if ts.used[i] && !activeSlots[i] {
			ps := &t.pointers[i]
			if ps.down {
				t.Update(i, ps.lastX, ps.lastY, false)
			}
			// Touch pointers do not hover once lifted.
			t.updateHover(i, ps, nil, ps.lastX, ps.lastY)
			ts.used[i] = false
			ts.ids[i] = 0
		}
	}
}

// slot returns the pointer slot for tid, allocating one if needed.
// Returns -1 if all slots are taken.
func (ts *touchSlots) slot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if ts.used[i] && ts.ids[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !ts.used[i] {
			ts.used[i] = true
			ts.ids[i] = tid
			return i
		}
	}
	return -1
}
