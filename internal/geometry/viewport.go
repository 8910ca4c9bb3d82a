// Package geometry implements the pointer-driven interaction engine: drag,
// resize, pan, zoom, grid snapping, and the two-click cable tool.
package geometry

import (
	"math"

	"quotebuilder/internal/plan"
)

// SnapStep is the grid increment positions and sizes snap to.
const SnapStep = 2.0

// ZoomStep is the scroll-zoom increment.
const ZoomStep = 0.1

// ZoomLimits bounds the zoom scalar.
type ZoomLimits struct {
	Min float64
	Max float64
}

// DefaultZoomLimits is the engine range; CompactZoomLimits is the tighter
// range used by the embedded editor variant.
var (
	DefaultZoomLimits = ZoomLimits{Min: 0.25, Max: 3.0}
	CompactZoomLimits = ZoomLimits{Min: 0.4, Max: 2.5}
)

// Viewport is the canvas transform: floor coordinates map to screen as
// floor*Zoom + Pan.
type Viewport struct {
	Zoom float64 `json:"zoom"`
	PanX float64 `json:"panX"`
	PanY float64 `json:"panY"`
}

// NewViewport returns an identity viewport.
func NewViewport() Viewport {
	return Viewport{Zoom: 1}
}

// ToFloor converts a screen point into floor-pixel space.
func (v Viewport) ToFloor(screen plan.Point) plan.Point {
	return plan.Point{
		X: (screen.X - v.PanX) / v.Zoom,
		Y: (screen.Y - v.PanY) / v.Zoom,
	}
}

// ZoomBy adjusts the zoom by n steps of ZoomStep, clamped to the limits and
// rounded to the step grid so repeated scrolls do not accumulate drift.
func (v Viewport) ZoomBy(n int, limits ZoomLimits) Viewport {
	z := v.Zoom + float64(n)*ZoomStep
	z = math.Round(z*10) / 10
	if z < limits.Min {
		z = limits.Min
	}
	if z > limits.Max {
		z = limits.Max
	}
	v.Zoom = z
	return v
}

// Snap rounds a coordinate to the nearest SnapStep increment.
func Snap(x float64) float64 {
	return math.Round(x/SnapStep) * SnapStep
}

// SnapPoint snaps both coordinates.
func SnapPoint(p plan.Point) plan.Point {
	return plan.Point{X: Snap(p.X), Y: Snap(p.Y)}
}
