package trackswipe

import "testing"

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "drag", "fromX": 240, "fromY": 150, "toX": 400, "toY": 150, "frames": 8},
			{"action": "screenshot", "label": "after-swipe"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "click" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[3].FromX != 240 || runner.steps[3].ToX != 400 || runner.steps[3].Frames != 8 {
		t.Error("step 3 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	if _, err := LoadTestScript([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	if _, err := LoadTestScript([]byte(`{"steps": []}`)); err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestLoadTestScript_UnknownAction(t *testing.T) {
	if _, err := LoadTestScript([]byte(`{"steps": [{"action": "fly"}]}`)); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestRunnerStep_Click(t *testing.T) {
	tr, card := newInjectTree()
	clicks := 0
	card.OnClick = func(PointerContext) { clicks++ }

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 50, "y": 50}]}`))
	if err != nil {
		t.Fatal(err)
	}

	// First step call: click queues press+release (2 events).
	runner.step(tr, nil)
	if tr.PendingInjections() != 2 {
		t.Fatalf("expected 2 queued events, got %d", tr.PendingInjections())
	}
	if runner.Done() {
		t.Error("runner should not be done while inject queue has events")
	}

	// Waits while injections drain.
	runner.step(tr, nil)
	if tr.PendingInjections() != 2 {
		t.Error("runner should not advance while injections are pending")
	}
	tr.processInjectedInput()
	tr.processInjectedInput()

	runner.step(tr, nil)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestRunnerStep_WaitAndScreenshot(t *testing.T) {
	tr, _ := newInjectTree()
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "done"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	var shots []string
	shot := func(label string) { shots = append(shots, label) }

	for range 3 {
		runner.step(tr, shot)
	}
	if len(shots) != 0 {
		t.Fatalf("screenshot taken during wait: %v", shots)
	}
	runner.step(tr, shot)
	if len(shots) != 1 || shots[0] != "done" {
		t.Errorf("shots = %v, want [done]", shots)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerStep_PressMoveRelease(t *testing.T) {
	tr, card := newInjectTree()
	var downs, moves, ups int
	card.OnPointerDown = func(PointerContext) { downs++ }
	card.OnPointerMove = func(PointerContext) { moves++ }
	card.OnPointerUp = func(PointerContext) { ups++ }

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "press", "x": 10, "y": 10},
		{"action": "move", "x": 60, "y": 10},
		{"action": "release", "x": 60, "y": 10}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	for !runner.Done() {
		runner.step(tr, nil)
		tr.processInjectedInput()
	}
	if downs != 1 || moves != 1 || ups != 1 {
		t.Errorf("down/move/up = %d/%d/%d, want 1/1/1", downs, moves, ups)
	}
}
