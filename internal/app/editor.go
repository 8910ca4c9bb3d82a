package app

import (
	"fmt"
	"log"

	"quotebuilder/internal/estimate"
	"quotebuilder/internal/geometry"
	"quotebuilder/internal/plan"
	"quotebuilder/internal/travel"
	"quotebuilder/internal/workspace"
)

// StateSnapshot is the full editor state the frontend binds to.
type StateSnapshot struct {
	Locations     []*plan.Location       `json:"locations"`
	Selection     plan.Selection         `json:"selection"`
	Active        workspace.ActiveIDs    `json:"active"`
	Viewport      geometry.Viewport      `json:"viewport"`
	Mode          geometry.Mode          `json:"mode"`
	CablePending  bool                   `json:"cablePending"`
	SupportTier   float64                `json:"supportTier"`
	SupportPeriod estimate.SupportPeriod `json:"supportPeriod"`
	Panels        map[string]bool        `json:"panels"`
	CanUndo       bool                   `json:"canUndo"`
	CanRedo       bool                   `json:"canRedo"`
}

// State returns the current editor state.
func (a *App) State() StateSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

func (a *App) snapshotLocked() StateSnapshot {
	panels := make(map[string]bool, len(a.panels))
	for k, v := range a.panels {
		panels[k] = v
	}
	return StateSnapshot{
		Locations:     append([]*plan.Location(nil), a.locations...),
		Selection:     a.selection,
		Active:        a.active,
		Viewport:      a.engine.Viewport(),
		Mode:          a.engine.Mode(),
		CablePending:  a.engine.CableState() == geometry.CableAwaitingSecondPoint,
		SupportTier:   a.supportTier,
		SupportPeriod: a.supportPeriod,
		Panels:        panels,
		CanUndo:       a.hist.CanUndo(),
		CanRedo:       a.hist.CanRedo(),
	}
}

// activeLocation returns the location the editor is working in, or nil.
// Caller must hold a.mu.
func (a *App) activeLocation() *plan.Location {
	for _, l := range a.locations {
		if l.ID == a.active.LocationID {
			return l
		}
	}
	return nil
}

// commit runs fn against a clone of the active location through the
// mutation contract, then records history and reprices, both debounced.
// Caller must hold a.mu.
func (a *App) commit(fn func(*plan.Location)) error {
	locs, err := plan.UpdateLocation(a.locations, a.active.LocationID, fn)
	if err != nil {
		return err
	}
	a.locations = locs
	a.afterMutation()
	return nil
}

// afterMutation schedules the debounced history snapshot and pricing
// request for the new state. Caller must hold a.mu.
func (a *App) afterMutation() {
	a.hist.Record(a.locations)
	a.scheduleEstimate()
	a.emit("plan:changed", nil)
}

// scheduleEstimate queues a pricing request for the active location.
// Caller must hold a.mu.
func (a *App) scheduleEstimate() {
	loc := a.activeLocation()
	if loc == nil {
		return
	}
	a.orch.Schedule(estimate.BuildRequest(loc, a.supportTier, a.supportPeriod))
}

// activeFloorOf returns the active floor within loc, falling back to the
// first floor.
func (a *App) activeFloorOf(loc *plan.Location) *plan.Floor {
	if f := loc.FloorByID(a.active.FloorID); f != nil {
		return f
	}
	if len(loc.Floors) > 0 {
		return &loc.Floors[0]
	}
	return nil
}

// ---------------------------------------------------------------------------
// Location commands
// ---------------------------------------------------------------------------

// AddLocation creates a location with one default floor and makes it
// active.
func (a *App) AddLocation(name string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	loc := plan.NewLocation(name)
	a.locations = append(a.locations, loc)
	a.active = workspace.ActiveIDs{
		LocationID: loc.ID,
		FloorID:    loc.Floors[0].ID,
		LayerID:    loc.Floors[0].Layers[0].ID,
	}
	a.afterMutation()
	return loc.ID
}

// RemoveLocation deletes a location outright. Not exercised by the canvas
// UI but structurally supported.
func (a *App) RemoveLocation(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	kept := a.locations[:0]
	for _, l := range a.locations {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(a.locations) {
		return fmt.Errorf("location %s not found", id)
	}
	a.locations = append([]*plan.Location(nil), kept...)
	if a.active.LocationID == id {
		a.active = workspace.ActiveIDs{}
		if len(a.locations) > 0 {
			first := a.locations[0]
			a.active.LocationID = first.ID
			if len(first.Floors) > 0 {
				a.active.FloorID = first.Floors[0].ID
			}
		}
	}
	a.afterMutation()
	return nil
}

// SetActive points the editor at a location/floor/layer triple.
func (a *App) SetActive(ids workspace.ActiveIDs) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.active = ids
	// Layout focus changed; the estimate follows the active floor set.
	a.scheduleEstimate()
}

// SetLocationName renames the active location.
func (a *App) SetLocationName(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.commit(func(l *plan.Location) { l.Name = name })
}

// SetAddress updates the free-text address and reclassifies the travel
// zone unless the location is remote or manually overridden.
func (a *App) SetAddress(address string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.commit(func(l *plan.Location) {
		l.Address = address
		travel.Apply(l)
	})
}

// SetTravelSettings applies a manual travel override; the classifier stops
// rewriting the zone afterwards.
func (a *App) SetTravelSettings(ts plan.TravelSettings) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	ts.ManualOverride = true
	return a.commit(func(l *plan.Location) { l.Travel = ts })
}

// ClearTravelOverride hands zone control back to the address classifier.
func (a *App) ClearTravelOverride() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.commit(func(l *plan.Location) {
		l.Travel.ManualOverride = false
		travel.Apply(l)
	})
}

// SetIntegrations replaces the selected integration ids. Order is not
// meaningful; the set is kept as given.
func (a *App) SetIntegrations(ids []string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.commit(func(l *plan.Location) {
		l.IntegrationIDs = append([]string(nil), ids...)
	})
}

// ---------------------------------------------------------------------------
// Floor commands
// ---------------------------------------------------------------------------

// AddFloor appends a floor with the default networking station and makes
// it active.
func (a *App) AddFloor(name string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	floor := plan.NewFloor(name)
	err := a.commit(func(l *plan.Location) {
		l.Floors = append(l.Floors, floor)
	})
	if err != nil {
		return "", err
	}
	a.active.FloorID = floor.ID
	a.active.LayerID = floor.Layers[0].ID
	return floor.ID, nil
}

// RemoveFloor deletes a floor. A location always keeps at least one floor.
func (a *App) RemoveFloor(floorID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.commit(func(l *plan.Location) {
		kept := l.Floors[:0]
		for _, f := range l.Floors {
			if f.ID != floorID {
				kept = append(kept, f)
			}
		}
		l.Floors = append([]plan.Floor(nil), kept...)
	})
}

// SetFloorScale sets the pixel-to-feet scale; cable measurements are
// recomputed by the mutation boundary.
func (a *App) SetFloorScale(floorID string, scale float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.commit(func(l *plan.Location) {
		if f := l.FloorByID(floorID); f != nil {
			f.ScalePxPerFt = scale
		}
	})
}

// AddLayer appends a layer to a floor.
func (a *App) AddLayer(floorID, name string, typ plan.LayerType) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.commit(func(l *plan.Location) {
		if f := l.FloorByID(floorID); f != nil {
			f.Layers = append(f.Layers, plan.Layer{
				ID: plan.NewID(), Name: name, Type: typ, Visible: true,
			})
		}
	})
}

// SetLayerVisible toggles a layer's visibility.
func (a *App) SetLayerVisible(floorID, layerID string, visible bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.commit(func(l *plan.Location) {
		if f := l.FloorByID(floorID); f != nil {
			if ly := f.LayerByID(layerID); ly != nil {
				ly.Visible = visible
			}
		}
	})
}

// ---------------------------------------------------------------------------
// Station / object / label commands
// ---------------------------------------------------------------------------

// AddStationFromTemplate places a new station pre-populated with the
// template's hardware on the active floor.
func (a *App) AddStationFromTemplate(templateID string, pos plan.Point) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tmpl := a.catalog.TemplateByID(templateID)
	if tmpl == nil {
		return "", fmt.Errorf("station template %s not found", templateID)
	}

	st := plan.Station{
		ID:         plan.NewID(),
		Name:       tmpl.Name,
		Type:       tmpl.Type,
		Color:      tmpl.Color,
		Department: tmpl.Department,
		Position:   pos,
		Size:       plan.Size{W: plan.MinStationWidth, H: plan.MinStationHeight},
	}
	for _, hwID := range tmpl.HardwareIDs {
		st.Hardware = append(st.Hardware, plan.HardwareAssociation{
			ID: plan.NewID(), HardwareID: hwID,
		})
	}

	floorID := a.active.FloorID
	err := a.commit(func(l *plan.Location) {
		if f := l.FloorByID(floorID); f != nil {
			f.Stations = append(f.Stations, st)
		}
	})
	if err != nil {
		return "", err
	}
	a.selection = plan.Selection{Kind: plan.SelectStation, ID: st.ID}
	return st.ID, nil
}

// SetStationFlags updates the existing/replace pair that excludes
// pre-existing equipment from labor cost.
func (a *App) SetStationFlags(stationID string, existing, replace bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	floorID := a.active.FloorID
	return a.commit(func(l *plan.Location) {
		if f := l.FloorByID(floorID); f != nil {
			if s := f.StationByID(stationID); s != nil {
				s.Existing = existing
				s.Replace = replace
			}
		}
	})
}

// AddHardware associates a catalog hardware id with a station.
func (a *App) AddHardware(stationID, hardwareID, nickname string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.catalog.HardwareByID(hardwareID) == nil {
		return fmt.Errorf("hardware %s not in catalog", hardwareID)
	}
	floorID := a.active.FloorID
	return a.commit(func(l *plan.Location) {
		if f := l.FloorByID(floorID); f != nil {
			if s := f.StationByID(stationID); s != nil {
				s.Hardware = append(s.Hardware, plan.HardwareAssociation{
					ID: plan.NewID(), HardwareID: hardwareID, Nickname: nickname,
				})
			}
		}
	})
}

// RemoveHardware drops a hardware association from a station.
func (a *App) RemoveHardware(stationID, assocID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	floorID := a.active.FloorID
	return a.commit(func(l *plan.Location) {
		if f := l.FloorByID(floorID); f != nil {
			if s := f.StationByID(stationID); s != nil {
				kept := s.Hardware[:0]
				for _, h := range s.Hardware {
					if h.ID != assocID {
						kept = append(kept, h)
					}
				}
				s.Hardware = append([]plan.HardwareAssociation(nil), kept...)
			}
		}
	})
}

// AddObject places a structural marker on the active floor.
func (a *App) AddObject(typ string, pos plan.Point, size plan.Size) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	obj := plan.FloorObject{ID: plan.NewID(), Type: typ, Position: pos, Size: size}
	floorID := a.active.FloorID
	err := a.commit(func(l *plan.Location) {
		if f := l.FloorByID(floorID); f != nil {
			f.Objects = append(f.Objects, obj)
		}
	})
	if err != nil {
		return "", err
	}
	return obj.ID, nil
}

// RotateObject turns a floor object by delta degrees; rotation wraps at
// 360.
func (a *App) RotateObject(objectID string, delta float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	floorID := a.active.FloorID
	return a.commit(func(l *plan.Location) {
		if f := l.FloorByID(floorID); f != nil {
			if o := f.ObjectByID(objectID); o != nil {
				o.Rotation += delta
			}
		}
	})
}

// AddLabel places free text on the active floor.
func (a *App) AddLabel(text string, pos plan.Point) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	lbl := plan.FloorLabel{ID: plan.NewID(), Text: text, Position: pos}
	floorID := a.active.FloorID
	err := a.commit(func(l *plan.Location) {
		if f := l.FloorByID(floorID); f != nil {
			f.Labels = append(f.Labels, lbl)
		}
	})
	if err != nil {
		return "", err
	}
	return lbl.ID, nil
}

// SetLabelText edits a label.
func (a *App) SetLabelText(labelID, text string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	floorID := a.active.FloorID
	return a.commit(func(l *plan.Location) {
		if f := l.FloorByID(floorID); f != nil {
			if lb := f.LabelByID(labelID); lb != nil {
				lb.Text = text
			}
		}
	})
}

// ---------------------------------------------------------------------------
// Support plan
// ---------------------------------------------------------------------------

// SetSupportPlan selects the support tier and billing period, then
// reprices.
func (a *App) SetSupportPlan(tier float64, period estimate.SupportPeriod) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.supportTier = tier
	if period == estimate.PeriodAnnual {
		a.supportPeriod = estimate.PeriodAnnual
	} else {
		a.supportPeriod = estimate.PeriodMonthly
	}
	a.scheduleEstimate()
}

// SetPanelOpen persists a side-panel open/closed flag.
func (a *App) SetPanelOpen(name string, open bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.panels[name] = open
}

// ---------------------------------------------------------------------------
// History
// ---------------------------------------------------------------------------

// Undo restores the previous snapshot of the location collection.
func (a *App) Undo() {
	a.mu.Lock()
	defer a.mu.Unlock()
	snap, ok := a.hist.Undo()
	if !ok {
		return
	}
	a.locations = snap
	a.scheduleEstimate()
	a.emit("plan:changed", nil)
}

// Redo re-applies the next snapshot of the location collection.
func (a *App) Redo() {
	a.mu.Lock()
	defer a.mu.Unlock()
	snap, ok := a.hist.Redo()
	if !ok {
		return
	}
	a.locations = snap
	a.scheduleEstimate()
	a.emit("plan:changed", nil)
}

// CanUndo reports whether an undo step exists.
func (a *App) CanUndo() bool { return a.hist.CanUndo() }

// CanRedo reports whether a redo step exists.
func (a *App) CanRedo() bool { return a.hist.CanRedo() }

// ---------------------------------------------------------------------------
// geometry.Canvas implementation
// ---------------------------------------------------------------------------

// SetSelection records the selected entity. Selection is transient UI
// state and is not part of history.
func (a *App) SetSelection(sel plan.Selection) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.selection = sel
}

// ClearSelection drops the selection.
func (a *App) ClearSelection() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.selection = plan.Selection{}
}

// DeleteSelection removes the selected entity. Station removal re-validates
// the networking-station invariant at the mutation boundary.
func (a *App) DeleteSelection() {
	a.mu.Lock()
	defer a.mu.Unlock()

	sel := a.selection
	if sel.Kind == plan.SelectNone {
		return
	}
	floorID := a.active.FloorID
	err := a.commit(func(l *plan.Location) {
		f := l.FloorByID(floorID)
		if f == nil {
			return
		}
		switch sel.Kind {
		case plan.SelectStation:
			f.RemoveStation(sel.ID)
		case plan.SelectObject:
			kept := f.Objects[:0]
			for _, o := range f.Objects {
				if o.ID != sel.ID {
					kept = append(kept, o)
				}
			}
			f.Objects = append([]plan.FloorObject(nil), kept...)
		case plan.SelectLabel:
			kept := f.Labels[:0]
			for _, lb := range f.Labels {
				if lb.ID != sel.ID {
					kept = append(kept, lb)
				}
			}
			f.Labels = append([]plan.FloorLabel(nil), kept...)
		}
	})
	if err != nil {
		log.Printf("editor: delete selection: %v", err)
		return
	}
	a.selection = plan.Selection{}
}

// MoveEntity writes a dragged entity's new position through the mutation
// contract.
func (a *App) MoveEntity(sel plan.Selection, pos plan.Point) {
	a.mu.Lock()
	defer a.mu.Unlock()

	floorID := a.active.FloorID
	err := a.commit(func(l *plan.Location) {
		f := l.FloorByID(floorID)
		if f == nil {
			return
		}
		switch sel.Kind {
		case plan.SelectStation:
			if s := f.StationByID(sel.ID); s != nil {
				s.Position = pos
			}
		case plan.SelectObject:
			if o := f.ObjectByID(sel.ID); o != nil {
				o.Position = pos
			}
		case plan.SelectLabel:
			if lb := f.LabelByID(sel.ID); lb != nil {
				lb.Position = pos
			}
		}
	})
	if err != nil {
		log.Printf("editor: move entity: %v", err)
	}
}

// ResizeStation writes a resized station's new size through the mutation
// contract.
func (a *App) ResizeStation(id string, size plan.Size) {
	a.mu.Lock()
	defer a.mu.Unlock()

	floorID := a.active.FloorID
	err := a.commit(func(l *plan.Location) {
		if f := l.FloorByID(floorID); f != nil {
			if s := f.StationByID(id); s != nil {
				s.Size = size
			}
		}
	})
	if err != nil {
		log.Printf("editor: resize station: %v", err)
	}
}

// CanDrawCable reports whether the active layer is a network layer.
func (a *App) CanDrawCable() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	loc := a.activeLocation()
	if loc == nil {
		return false
	}
	f := a.activeFloorOf(loc)
	if f == nil {
		return false
	}
	ly := f.LayerByID(a.active.LayerID)
	return ly != nil && ly.Type == plan.LayerNetwork
}

// CommitCableRun measures and appends a cable run to the active layer.
func (a *App) CommitCableRun(start, end plan.Point) {
	a.mu.Lock()
	defer a.mu.Unlock()

	floorID := a.active.FloorID
	layerID := a.active.LayerID
	err := a.commit(func(l *plan.Location) {
		f := l.FloorByID(floorID)
		if f == nil {
			return
		}
		ly := f.LayerByID(layerID)
		if ly == nil || ly.Type != plan.LayerNetwork {
			return
		}
		ly.CableRuns = append(ly.CableRuns, plan.NewCableRun(start, end, f.ScalePxPerFt))
	})
	if err != nil {
		log.Printf("editor: commit cable run: %v", err)
	}
}
