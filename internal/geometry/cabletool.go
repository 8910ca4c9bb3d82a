package geometry

import "quotebuilder/internal/plan"

// CableToolState is the two-phase cable drawing machine:
// Idle -> AwaitingSecondPoint -> Idle. Escape or leaving the tool are the
// only exits from AwaitingSecondPoint besides committing the run.
type CableToolState int

const (
	CableIdle CableToolState = iota
	CableAwaitingSecondPoint
)

// CableTool holds the pending start point between the two clicks.
type CableTool struct {
	state CableToolState
	start plan.Point
}

// State returns the current phase.
func (t *CableTool) State() CableToolState { return t.state }

// PendingStart returns the recorded first click, valid only in
// AwaitingSecondPoint.
func (t *CableTool) PendingStart() plan.Point { return t.start }

// Click feeds a canvas click in floor coordinates. The first click records
// the start point; the second returns both endpoints with done=true and
// resets to phase one.
func (t *CableTool) Click(p plan.Point) (start, end plan.Point, done bool) {
	switch t.state {
	case CableIdle:
		t.start = p
		t.state = CableAwaitingSecondPoint
		return plan.Point{}, plan.Point{}, false
	default:
		start = t.start
		t.state = CableIdle
		t.start = plan.Point{}
		return start, p, true
	}
}

// Cancel drops any pending start point without committing a run.
func (t *CableTool) Cancel() {
	t.state = CableIdle
	t.start = plan.Point{}
}
