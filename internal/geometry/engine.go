package geometry

import (
	"sync"

	"quotebuilder/internal/plan"
)

// Mode is the active canvas tool.
type Mode string

const (
	ModeSelect   Mode = "select"
	ModeAddCable Mode = "addCable"
)

// Button identifies the pointer button for a down event.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Canvas is what the engine drives. The editor controller implements it;
// every domain write goes through the controller's mutation contract, not
// through the engine.
type Canvas interface {
	SetSelection(sel plan.Selection)
	ClearSelection()
	DeleteSelection()
	MoveEntity(sel plan.Selection, pos plan.Point)
	ResizeStation(id string, size plan.Size)
	// CanDrawCable reports whether the active layer accepts cable runs.
	CanDrawCable() bool
	CommitCableRun(start, end plan.Point)
	Undo()
	Redo()
}

// Hit describes what a pointer-down landed on, as resolved by the caller.
type Hit struct {
	Kind         plan.SelectionKind
	ID           string
	Position     plan.Point
	Size         plan.Size
	ResizeHandle bool
}

// Engine runs the per-gesture state machines over pointer, wheel, and key
// events. It owns the viewport and tool mode; all entity mutation is
// delegated to the Canvas. An Engine is safe for concurrent use: every
// event arrives on its own goroutine, so mu guards the gesture state, and
// it is always released before a Canvas callback (the Canvas takes the
// controller lock, which is also held while reading the viewport).
type Engine struct {
	canvas Canvas
	limits ZoomLimits

	mu        sync.Mutex
	viewport  Viewport
	mode      Mode
	drag      *Drag
	cable     CableTool
	spaceHeld bool
}

// NewEngine returns an engine in select mode with an identity viewport.
func NewEngine(canvas Canvas, limits ZoomLimits) *Engine {
	if limits.Max <= limits.Min {
		limits = DefaultZoomLimits
	}
	return &Engine{
		canvas:   canvas,
		limits:   limits,
		viewport: NewViewport(),
		mode:     ModeSelect,
	}
}

// Viewport returns the current canvas transform.
func (e *Engine) Viewport() Viewport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewport
}

// SetViewport restores a persisted transform, clamped to the zoom limits.
func (e *Engine) SetViewport(v Viewport) {
	if v.Zoom < e.limits.Min {
		v.Zoom = e.limits.Min
	}
	if v.Zoom > e.limits.Max {
		v.Zoom = e.limits.Max
	}
	e.mu.Lock()
	e.viewport = v
	e.mu.Unlock()
}

// Mode returns the active tool.
func (e *Engine) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// SetMode switches tools. Entering or leaving the cable tool drops any
// pending start point without committing a run.
func (e *Engine) SetMode(m Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if m != e.mode {
		e.cable.Cancel()
	}
	e.mode = m
}

// CableState exposes the cable tool phase for UI affordances.
func (e *Engine) CableState() CableToolState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cable.State()
}

// SetSpaceHeld tracks the held space bar for space+left-drag panning.
func (e *Engine) SetSpaceHeld(held bool) {
	e.mu.Lock()
	e.spaceHeld = held
	e.mu.Unlock()
}

// PointerDown starts a gesture. hit is the entity under the pointer, or nil
// for empty canvas; screen is the pointer position in screen space.
func (e *Engine) PointerDown(btn Button, screen plan.Point, hit *Hit) {
	e.mu.Lock()

	// Middle-drag and space+left-drag pan regardless of tool mode.
	if btn == ButtonMiddle || (btn == ButtonLeft && e.spaceHeld) {
		e.drag = &Drag{
			Kind:         DragPan,
			StartPointer: screen,
			StartPos:     plan.Point{X: e.viewport.PanX, Y: e.viewport.PanY},
			Zoom:         e.viewport.Zoom,
		}
		e.mu.Unlock()
		return
	}
	if btn != ButtonLeft {
		e.mu.Unlock()
		return
	}

	if e.mode == ModeAddCable {
		floorPt := e.viewport.ToFloor(screen)
		e.mu.Unlock()
		if !e.canvas.CanDrawCable() {
			return
		}
		e.mu.Lock()
		if e.mode != ModeAddCable {
			// Tool switched while the layer check ran.
			e.mu.Unlock()
			return
		}
		start, end, done := e.cable.Click(floorPt)
		e.mu.Unlock()
		if done {
			e.canvas.CommitCableRun(start, end)
		}
		return
	}

	if hit == nil || hit.Kind == plan.SelectNone {
		e.mu.Unlock()
		e.canvas.ClearSelection()
		return
	}

	sel := plan.Selection{Kind: hit.Kind, ID: hit.ID}
	kind := DragMove
	if hit.ResizeHandle && hit.Kind == plan.SelectStation {
		kind = DragResize
	}
	e.drag = &Drag{
		Kind:         kind,
		Target:       sel,
		StartPointer: screen,
		StartPos:     hit.Position,
		StartSize:    hit.Size,
		Zoom:         e.viewport.Zoom,
	}
	e.mu.Unlock()
	e.canvas.SetSelection(sel)
}

// PointerMove advances the active gesture, if any. The drag state is
// copied out under the lock so a concurrent PointerUp cannot pull it away
// mid-dispatch.
func (e *Engine) PointerMove(screen plan.Point) {
	e.mu.Lock()
	if e.drag == nil {
		e.mu.Unlock()
		return
	}
	d := *e.drag
	if d.Kind == DragPan {
		e.viewport.PanX, e.viewport.PanY = d.PanAt(screen)
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()

	switch d.Kind {
	case DragResize:
		e.canvas.ResizeStation(d.Target.ID, d.SizeAt(screen, true))
	default:
		e.canvas.MoveEntity(d.Target, d.PositionAt(screen))
	}
}

// PointerUp ends the active gesture.
func (e *Engine) PointerUp() {
	e.mu.Lock()
	e.drag = nil
	e.mu.Unlock()
}

// Wheel handles scrolling: with the modifier held it zooms in ZoomStep
// increments, otherwise it pans vertically.
func (e *Engine) Wheel(deltaY float64, modifier bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if modifier {
		steps := -1
		if deltaY < 0 {
			steps = 1
		}
		e.viewport = e.viewport.ZoomBy(steps, e.limits)
		return
	}
	e.viewport.PanY -= deltaY
}

// CancelPending aborts the in-flight gesture and any pending cable point.
func (e *Engine) CancelPending() {
	e.mu.Lock()
	e.drag = nil
	e.cable.Cancel()
	e.mu.Unlock()
}
