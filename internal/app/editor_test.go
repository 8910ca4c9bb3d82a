package app

import (
	"context"
	"testing"
	"time"

	"quotebuilder/internal/estimate"
	"quotebuilder/internal/history"
	"quotebuilder/internal/importers"
	"quotebuilder/internal/plan"
	"quotebuilder/internal/workspace"
)

// stubCalc answers every pricing request with an empty summary.
type stubCalc struct{}

func (stubCalc) Calculate(ctx context.Context, req estimate.Request) (*estimate.Response, error) {
	return &estimate.Response{}, nil
}

// stubExtractor returns a fixed item list for every file.
type stubExtractor struct {
	items []importers.ExtractedItem
	err   error
}

func (s stubExtractor) Extract(ctx context.Context, in importers.FileInput) ([]importers.ExtractedItem, error) {
	return s.items, s.err
}

// testApp builds a controller with the network boundaries stubbed out.
func testApp(t *testing.T) *App {
	t.Helper()
	a := NewApp("test")
	a.orch = estimate.NewOrchestrator(stubCalc{}, time.Hour, nil)
	return a
}

func activeFloor(t *testing.T, a *App) *plan.Floor {
	t.Helper()
	st := a.State()
	for _, l := range st.Locations {
		if l.ID == st.Active.LocationID {
			if f := l.FloorByID(st.Active.FloorID); f != nil {
				return f
			}
		}
	}
	t.Fatal("no active floor")
	return nil
}

func TestImportHardwareFiles_OneStationPerRun(t *testing.T) {
	a := testApp(t)
	a.extractor = stubExtractor{items: []importers.ExtractedItem{
		{ProductName: "Epson KDS", Quantity: 2, MappedHardwareIDs: []string{"kds"}},
	}}

	results := a.ImportHardwareFiles([]importers.FileInput{{Filename: "quote.pdf", Text: "2x Epson KDS"}})
	if len(results) != 1 || results[0].Error != "" {
		t.Fatalf("results = %+v", results)
	}

	floor := activeFloor(t, a)
	if len(floor.Stations) != 2 {
		t.Fatalf("stations = %d, want networking + one imported", len(floor.Stations))
	}
	imported := floor.Stations[1]
	if imported.Type != "Imported" || imported.Position != plan.DefaultImportPos {
		t.Errorf("imported station = %+v", imported)
	}
	if len(imported.Hardware) != 2 {
		t.Fatalf("associations = %d, want 2", len(imported.Hardware))
	}
	for _, h := range imported.Hardware {
		if h.HardwareID != "kds" {
			t.Errorf("hardwareId = %q", h.HardwareID)
		}
	}
}

func TestImportHardwareFiles_AllFailuresAddNothing(t *testing.T) {
	a := testApp(t)
	a.extractor = stubExtractor{err: context.DeadlineExceeded}

	results := a.ImportHardwareFiles([]importers.FileInput{{Filename: "bad.pdf"}})
	if results[0].Error == "" {
		t.Fatal("expected per-file error")
	}
	if got := len(activeFloor(t, a).Stations); got != 1 {
		t.Errorf("stations = %d, want just the networking station", got)
	}
}

func TestDeleteSelection_NetworkingStationSurvives(t *testing.T) {
	a := testApp(t)
	floor := activeFloor(t, a)
	netStation := floor.Stations[0]
	if netStation.Type != plan.NetworkingStationType {
		t.Fatalf("seed station type = %q", netStation.Type)
	}

	a.SetSelection(plan.Selection{Kind: plan.SelectStation, ID: netStation.ID})
	a.DeleteSelection()

	floor = activeFloor(t, a)
	if len(floor.Stations) != 1 || floor.Stations[0].Type != plan.NetworkingStationType {
		t.Fatal("floor must keep a networking station")
	}
	if floor.Stations[0].Position != plan.DefaultNetworkingPos {
		t.Errorf("re-synthesized station at %+v, want default position", floor.Stations[0].Position)
	}
}

func TestSetAddress_ReclassifiesTravelZone(t *testing.T) {
	a := testApp(t)
	if err := a.SetAddress("410 Main Street, Hyannis, MA"); err != nil {
		t.Fatal(err)
	}
	st := a.State()
	if got := st.Locations[0].Travel.Zone; got != plan.ZoneCape {
		t.Errorf("zone = %q, want cape", got)
	}
}

func TestSetTravelSettings_PinsZone(t *testing.T) {
	a := testApp(t)
	if err := a.SetTravelSettings(plan.TravelSettings{Zone: plan.ZoneIsland, IslandVehicle: true}); err != nil {
		t.Fatal(err)
	}
	if err := a.SetAddress("Columbus, Ohio"); err != nil {
		t.Fatal(err)
	}
	if got := a.State().Locations[0].Travel.Zone; got != plan.ZoneIsland {
		t.Errorf("zone = %q, override must survive address edits", got)
	}

	if err := a.ClearTravelOverride(); err != nil {
		t.Fatal(err)
	}
	if got := a.State().Locations[0].Travel.Zone; got != plan.ZoneOutOfRegion {
		t.Errorf("zone = %q, clearing the override must reclassify", got)
	}
}

func TestUndoRedo_RestoresLayout(t *testing.T) {
	a := testApp(t)
	a.hist = history.NewStore(a.locations, 10*time.Millisecond)

	if _, err := a.AddStationFromTemplate("tmpl-pos", plan.Point{X: 400, Y: 400}); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for !a.CanUndo() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if !a.CanUndo() {
		t.Fatal("history snapshot never landed")
	}

	a.Undo()
	if got := len(activeFloor(t, a).Stations); got != 1 {
		t.Errorf("after undo: stations = %d, want 1", got)
	}
	a.Redo()
	if got := len(activeFloor(t, a).Stations); got != 2 {
		t.Errorf("after redo: stations = %d, want 2", got)
	}
}

func TestAddStationFromTemplate_PopulatesHardware(t *testing.T) {
	a := testApp(t)
	id, err := a.AddStationFromTemplate("tmpl-pos", plan.Point{X: 401, Y: 399})
	if err != nil {
		t.Fatal(err)
	}

	floor := activeFloor(t, a)
	st := floor.StationByID(id)
	if st == nil {
		t.Fatal("station not placed")
	}
	if len(st.Hardware) != 4 {
		t.Errorf("hardware = %d, want the template's 4 items", len(st.Hardware))
	}
	if sel := a.State().Selection; sel.ID != id || sel.Kind != plan.SelectStation {
		t.Errorf("selection = %+v, want the new station", sel)
	}
	if _, err := a.AddStationFromTemplate("no-such-template", plan.Point{}); err == nil {
		t.Error("unknown template must error")
	}
}

func TestCableDrawing_GatedOnNetworkLayer(t *testing.T) {
	a := testApp(t)
	if a.CanDrawCable() {
		t.Fatal("base layer must not accept cables")
	}

	st := a.State()
	loc := st.Locations[0]
	netLayer := loc.Floors[0].NetworkLayer()
	a.SetActive(workspace.ActiveIDs{
		LocationID: loc.ID,
		FloorID:    loc.Floors[0].ID,
		LayerID:    netLayer.ID,
	})
	if !a.CanDrawCable() {
		t.Fatal("network layer must accept cables")
	}

	a.CommitCableRun(plan.Point{X: 0, Y: 0}, plan.Point{X: 640, Y: 0})
	runs := activeFloor(t, a).NetworkLayer().CableRuns
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(runs))
	}
	if runs[0].LengthFt != 40 || runs[0].TTIMin != 36 {
		t.Errorf("run = %vft/%vmin, want 40ft/36min", runs[0].LengthFt, runs[0].TTIMin)
	}
}

func TestMoveEntity_SnappedPositionLands(t *testing.T) {
	a := testApp(t)
	id, err := a.AddStationFromTemplate("tmpl-pos", plan.Point{X: 400, Y: 400})
	if err != nil {
		t.Fatal(err)
	}

	a.MoveEntity(plan.Selection{Kind: plan.SelectStation, ID: id}, plan.Point{X: 600, Y: 500})
	st := activeFloor(t, a).StationByID(id)
	if st.Position != (plan.Point{X: 600, Y: 500}) {
		t.Errorf("position = %+v", st.Position)
	}

	// Out-of-bounds writes are clamped at the mutation boundary.
	a.MoveEntity(plan.Selection{Kind: plan.SelectStation, ID: id}, plan.Point{X: -50, Y: 9000})
	st = activeFloor(t, a).StationByID(id)
	if st.Position.X < 0 || st.Position.Y > plan.FloorHeight {
		t.Errorf("position = %+v, want clamped", st.Position)
	}
}

func TestSetFloorScale_RepricesCableRuns(t *testing.T) {
	a := testApp(t)
	st := a.State()
	loc := st.Locations[0]
	floor := loc.Floors[0]
	a.SetActive(workspace.ActiveIDs{
		LocationID: loc.ID,
		FloorID:    floor.ID,
		LayerID:    floor.NetworkLayer().ID,
	})
	a.CommitCableRun(plan.Point{X: 0, Y: 0}, plan.Point{X: 640, Y: 0})

	if err := a.SetFloorScale(floor.ID, 8); err != nil {
		t.Fatal(err)
	}
	runs := activeFloor(t, a).NetworkLayer().CableRuns
	if runs[0].LengthFt != 80 {
		t.Errorf("lengthFt = %v, want 80 after halving the scale", runs[0].LengthFt)
	}
}
