package geometry

import "quotebuilder/internal/plan"

// DragKind says what a pointer drag is operating on.
type DragKind int

const (
	DragMove DragKind = iota
	DragResize
	DragPan
)

// Drag captures the state at pointer-down: the pointer's screen position
// and the entity's starting position/size. Each move recomputes from these
// absolutes rather than accumulating deltas, so a drag never drifts.
type Drag struct {
	Kind         DragKind
	Target       plan.Selection
	StartPointer plan.Point // screen space
	StartPos     plan.Point // floor space (move) or pan offset (pan)
	StartSize    plan.Size  // resize only
	Zoom         float64
}

// PositionAt returns the dragged entity's new floor position for the given
// pointer screen position: start + pointerDelta/zoom, snapped to the grid
// and clamped to the floor bounds.
func (d *Drag) PositionAt(pointer plan.Point) plan.Point {
	p := plan.Point{
		X: d.StartPos.X + (pointer.X-d.StartPointer.X)/d.Zoom,
		Y: d.StartPos.Y + (pointer.Y-d.StartPointer.Y)/d.Zoom,
	}
	return plan.ClampPoint(SnapPoint(p))
}

// SizeAt returns the resized entity's new size for the given pointer screen
// position. station applies the station minimum floor.
func (d *Drag) SizeAt(pointer plan.Point, station bool) plan.Size {
	s := plan.Size{
		W: Snap(d.StartSize.W + (pointer.X-d.StartPointer.X)/d.Zoom),
		H: Snap(d.StartSize.H + (pointer.Y-d.StartPointer.Y)/d.Zoom),
	}
	if station {
		if s.W < plan.MinStationWidth {
			s.W = plan.MinStationWidth
		}
		if s.H < plan.MinStationHeight {
			s.H = plan.MinStationHeight
		}
	} else {
		if s.W < SnapStep {
			s.W = SnapStep
		}
		if s.H < SnapStep {
			s.H = SnapStep
		}
	}
	return s
}

// PanAt returns the new canvas pan offset for the given pointer screen
// position. Pan works in screen space and never touches domain state.
func (d *Drag) PanAt(pointer plan.Point) (panX, panY float64) {
	return d.StartPos.X + (pointer.X - d.StartPointer.X),
		d.StartPos.Y + (pointer.Y - d.StartPointer.Y)
}
