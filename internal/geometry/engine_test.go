package geometry

import (
	"math"
	"sync"
	"testing"

	"quotebuilder/internal/plan"
)

// fakeCanvas records engine calls for assertions.
type fakeCanvas struct {
	selection    plan.Selection
	cleared      int
	deleted      int
	undos        int
	redos        int
	moves        []plan.Point
	resizes      []plan.Size
	cables       [][2]plan.Point
	cableAllowed bool
}

func (c *fakeCanvas) SetSelection(sel plan.Selection) { c.selection = sel }
func (c *fakeCanvas) ClearSelection()                 { c.cleared++; c.selection = plan.Selection{} }
func (c *fakeCanvas) DeleteSelection()                { c.deleted++ }
func (c *fakeCanvas) MoveEntity(sel plan.Selection, pos plan.Point) {
	c.moves = append(c.moves, pos)
}
func (c *fakeCanvas) ResizeStation(id string, size plan.Size) {
	c.resizes = append(c.resizes, size)
}
func (c *fakeCanvas) CanDrawCable() bool { return c.cableAllowed }
func (c *fakeCanvas) CommitCableRun(start, end plan.Point) {
	c.cables = append(c.cables, [2]plan.Point{start, end})
}
func (c *fakeCanvas) Undo() { c.undos++ }
func (c *fakeCanvas) Redo() { c.redos++ }

func stationHit(pos plan.Point) *Hit {
	return &Hit{
		Kind:     plan.SelectStation,
		ID:       "st1",
		Position: pos,
		Size:     plan.Size{W: 200, H: 160},
	}
}

func TestDrag_FollowsPointerThroughZoom(t *testing.T) {
	c := &fakeCanvas{}
	e := NewEngine(c, DefaultZoomLimits)

	// Zoom to 2.0: ten zoom-in steps from 1.0.
	for i := 0; i < 10; i++ {
		e.Wheel(-1, true)
	}
	if z := e.Viewport().Zoom; z != 2.0 {
		t.Fatalf("zoom = %v, want 2.0", z)
	}

	e.PointerDown(ButtonLeft, plan.Point{X: 500, Y: 500}, stationHit(plan.Point{X: 100, Y: 100}))
	if c.selection.ID != "st1" {
		t.Fatal("drag start should select the entity")
	}

	e.PointerMove(plan.Point{X: 560, Y: 530})
	if len(c.moves) != 1 {
		t.Fatalf("expected 1 move, got %d", len(c.moves))
	}
	// delta (60,30) at zoom 2 is (30,15) in floor space; 115 snaps to 116.
	want := plan.Point{X: 130, Y: 116}
	if c.moves[0] != want {
		t.Errorf("moved to %+v, want %+v", c.moves[0], want)
	}

	e.PointerUp()
	e.PointerMove(plan.Point{X: 999, Y: 999})
	if len(c.moves) != 1 {
		t.Error("move after pointer-up should be ignored")
	}
}

func TestDrag_SnapAndClampLaw(t *testing.T) {
	cases := []struct {
		start   plan.Point
		dx, dy  float64
		zoom    float64
	}{
		{plan.Point{X: 100, Y: 100}, 37, -23, 1},
		{plan.Point{X: 0, Y: 0}, -500, -500, 1},
		{plan.Point{X: 3990, Y: 2990}, 800, 800, 1},
		{plan.Point{X: 50, Y: 60}, 13, 7, 0.5},
	}
	for _, tc := range cases {
		d := &Drag{
			Kind:         DragMove,
			StartPointer: plan.Point{X: 0, Y: 0},
			StartPos:     tc.start,
			Zoom:         tc.zoom,
		}
		got := d.PositionAt(plan.Point{X: tc.dx, Y: tc.dy})

		wantX := math.Round((tc.start.X+tc.dx/tc.zoom)/2) * 2
		wantY := math.Round((tc.start.Y+tc.dy/tc.zoom)/2) * 2
		want := plan.ClampPoint(plan.Point{X: wantX, Y: wantY})
		if got != want {
			t.Errorf("start %+v delta (%v,%v) zoom %v: got %+v, want %+v",
				tc.start, tc.dx, tc.dy, tc.zoom, got, want)
		}
	}
}

func TestResize_StationMinimum(t *testing.T) {
	c := &fakeCanvas{}
	e := NewEngine(c, DefaultZoomLimits)

	hit := stationHit(plan.Point{X: 100, Y: 100})
	hit.ResizeHandle = true
	e.PointerDown(ButtonLeft, plan.Point{X: 300, Y: 260}, hit)
	e.PointerMove(plan.Point{X: 0, Y: 0})

	if len(c.resizes) != 1 {
		t.Fatalf("expected 1 resize, got %d", len(c.resizes))
	}
	if c.resizes[0].W != plan.MinStationWidth || c.resizes[0].H != plan.MinStationHeight {
		t.Errorf("resize below minimum not floored: %+v", c.resizes[0])
	}
}

func TestPan_NeverTouchesDomain(t *testing.T) {
	c := &fakeCanvas{}
	e := NewEngine(c, DefaultZoomLimits)

	e.PointerDown(ButtonMiddle, plan.Point{X: 100, Y: 100}, stationHit(plan.Point{X: 0, Y: 0}))
	e.PointerMove(plan.Point{X: 160, Y: 80})
	e.PointerUp()

	v := e.Viewport()
	if v.PanX != 60 || v.PanY != -20 {
		t.Errorf("pan = (%v,%v), want (60,-20)", v.PanX, v.PanY)
	}
	if len(c.moves) != 0 || len(c.resizes) != 0 {
		t.Error("pan mutated domain state")
	}
	if c.selection.ID != "" {
		t.Error("pan should not select")
	}
}

func TestPan_SpaceLeftDrag(t *testing.T) {
	c := &fakeCanvas{}
	e := NewEngine(c, DefaultZoomLimits)

	e.Key(KeyEvent{Key: " "})
	e.PointerDown(ButtonLeft, plan.Point{X: 0, Y: 0}, stationHit(plan.Point{X: 10, Y: 10}))
	e.PointerMove(plan.Point{X: 40, Y: 0})
	if e.Viewport().PanX != 40 {
		t.Errorf("space+left-drag should pan, panX = %v", e.Viewport().PanX)
	}
	if len(c.moves) != 0 {
		t.Error("space+left-drag must not move entities")
	}
	e.PointerUp()
	e.KeyUp(" ")

	e.PointerDown(ButtonLeft, plan.Point{X: 0, Y: 0}, stationHit(plan.Point{X: 10, Y: 10}))
	e.PointerMove(plan.Point{X: 40, Y: 0})
	if len(c.moves) != 1 {
		t.Error("after space release, left-drag should move again")
	}
}

func TestZoom_Bounds(t *testing.T) {
	c := &fakeCanvas{}
	e := NewEngine(c, DefaultZoomLimits)

	for i := 0; i < 50; i++ {
		e.Wheel(-1, true)
	}
	if z := e.Viewport().Zoom; z != 3.0 {
		t.Errorf("zoom-in clamp = %v, want 3.0", z)
	}
	for i := 0; i < 50; i++ {
		e.Wheel(1, true)
	}
	if z := e.Viewport().Zoom; z != 0.25 {
		t.Errorf("zoom-out clamp = %v, want 0.25", z)
	}
}

func TestZoom_CompactVariantBounds(t *testing.T) {
	c := &fakeCanvas{}
	e := NewEngine(c, CompactZoomLimits)
	for i := 0; i < 50; i++ {
		e.Wheel(-1, true)
	}
	if z := e.Viewport().Zoom; z != 2.5 {
		t.Errorf("compact zoom-in clamp = %v, want 2.5", z)
	}
}

func TestWheel_PlainScrollPans(t *testing.T) {
	c := &fakeCanvas{}
	e := NewEngine(c, DefaultZoomLimits)
	e.Wheel(120, false)
	if e.Viewport().Zoom != 1 {
		t.Error("plain scroll must not zoom")
	}
	if e.Viewport().PanY != -120 {
		t.Errorf("plain scroll panY = %v, want -120", e.Viewport().PanY)
	}
}

func TestCableTool_TwoClicksCommit(t *testing.T) {
	c := &fakeCanvas{cableAllowed: true}
	e := NewEngine(c, DefaultZoomLimits)
	e.SetMode(ModeAddCable)

	e.PointerDown(ButtonLeft, plan.Point{X: 10, Y: 10}, nil)
	if e.CableState() != CableAwaitingSecondPoint {
		t.Fatal("first click should await second point")
	}
	if len(c.cables) != 0 {
		t.Fatal("first click must not commit")
	}

	e.PointerDown(ButtonLeft, plan.Point{X: 650, Y: 10}, nil)
	if len(c.cables) != 1 {
		t.Fatalf("expected 1 committed run, got %d", len(c.cables))
	}
	if e.CableState() != CableIdle {
		t.Error("commit should reset to phase one")
	}
	if c.cables[0][0] != (plan.Point{X: 10, Y: 10}) || c.cables[0][1] != (plan.Point{X: 650, Y: 10}) {
		t.Errorf("unexpected endpoints: %+v", c.cables[0])
	}
}

func TestCableTool_GatedOnNetworkLayer(t *testing.T) {
	c := &fakeCanvas{cableAllowed: false}
	e := NewEngine(c, DefaultZoomLimits)
	e.SetMode(ModeAddCable)

	e.PointerDown(ButtonLeft, plan.Point{X: 10, Y: 10}, nil)
	if e.CableState() != CableIdle {
		t.Error("non-network layer must not start a cable")
	}
}

func TestCableTool_EscapeAndToolToggleAbort(t *testing.T) {
	c := &fakeCanvas{cableAllowed: true}
	e := NewEngine(c, DefaultZoomLimits)

	e.SetMode(ModeAddCable)
	e.PointerDown(ButtonLeft, plan.Point{X: 10, Y: 10}, nil)
	e.Key(KeyEvent{Key: "Escape"})
	if e.CableState() != CableIdle {
		t.Error("escape should drop the pending start point")
	}
	if len(c.cables) != 0 {
		t.Error("escape must not commit")
	}

	e.PointerDown(ButtonLeft, plan.Point{X: 10, Y: 10}, nil)
	e.SetMode(ModeSelect)
	e.SetMode(ModeAddCable)
	e.PointerDown(ButtonLeft, plan.Point{X: 20, Y: 20}, nil)
	if e.CableState() != CableAwaitingSecondPoint {
		t.Error("tool toggle should have cleared the pending point")
	}
	if len(c.cables) != 0 {
		t.Error("tool toggle must not commit")
	}
}

func TestKey_Shortcuts(t *testing.T) {
	c := &fakeCanvas{}
	e := NewEngine(c, DefaultZoomLimits)

	e.Key(KeyEvent{Key: "z", Ctrl: true})
	e.Key(KeyEvent{Key: "z", Meta: true})
	if c.undos != 2 {
		t.Errorf("undos = %d, want 2", c.undos)
	}

	e.Key(KeyEvent{Key: "y", Ctrl: true})
	e.Key(KeyEvent{Key: "Z", Ctrl: true, Shift: true})
	if c.redos != 2 {
		t.Errorf("redos = %d, want 2", c.redos)
	}

	e.Key(KeyEvent{Key: "Delete"})
	if c.deleted != 1 {
		t.Errorf("deleted = %d, want 1", c.deleted)
	}

	e.Key(KeyEvent{Key: "Escape"})
	if c.cleared == 0 {
		t.Error("escape should clear selection")
	}
}

// sinkCanvas is a concurrency-safe Canvas that discards everything; the
// interleaving tests only care that the engine survives.
type sinkCanvas struct {
	mu    sync.Mutex
	moves int
}

func (c *sinkCanvas) SetSelection(plan.Selection) {}
func (c *sinkCanvas) ClearSelection()             {}
func (c *sinkCanvas) DeleteSelection()            {}
func (c *sinkCanvas) MoveEntity(sel plan.Selection, pos plan.Point) {
	c.mu.Lock()
	c.moves++
	c.mu.Unlock()
}
func (c *sinkCanvas) ResizeStation(string, plan.Size)      {}
func (c *sinkCanvas) CanDrawCable() bool                   { return true }
func (c *sinkCanvas) CommitCableRun(start, end plan.Point) {}
func (c *sinkCanvas) Undo()                                {}
func (c *sinkCanvas) Redo()                                {}

func TestPointer_ConcurrentEventStreams(t *testing.T) {
	// Each bound call arrives on its own goroutine, so a pointer-up can
	// land between a move's drag check and its dispatch, and viewport
	// reads overlap gesture writes. The engine must stay consistent.
	c := &sinkCanvas{}
	e := NewEngine(c, DefaultZoomLimits)

	const iterations = 2000
	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			e.PointerDown(ButtonLeft, plan.Point{X: 10, Y: 10}, stationHit(plan.Point{X: 100, Y: 100}))
			e.PointerMove(plan.Point{X: float64(i % 500), Y: 40})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			e.PointerUp()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			e.Wheel(1, i%2 == 0)
			_ = e.Viewport()
			_ = e.Mode()
			_ = e.CableState()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			e.Key(KeyEvent{Key: " "})
			e.KeyUp(" ")
			e.CancelPending()
		}
	}()
	wg.Wait()

	e.PointerUp()
	if z := e.Viewport().Zoom; z < DefaultZoomLimits.Min || z > DefaultZoomLimits.Max {
		t.Errorf("zoom drifted out of bounds: %v", z)
	}
}

func TestKey_IgnoredWhileEditingText(t *testing.T) {
	c := &fakeCanvas{}
	e := NewEngine(c, DefaultZoomLimits)

	events := []KeyEvent{
		{Key: "Delete", EditingText: true},
		{Key: "Escape", EditingText: true},
		{Key: "z", Ctrl: true, EditingText: true},
		{Key: "y", Ctrl: true, EditingText: true},
	}
	for _, ev := range events {
		if e.Key(ev) {
			t.Errorf("shortcut %q fired while a text input had focus", ev.Key)
		}
	}
	if c.deleted != 0 || c.cleared != 0 || c.undos != 0 || c.redos != 0 {
		t.Error("focus guard leaked a shortcut through")
	}
}
