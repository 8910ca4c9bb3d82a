package plan

import (
	"fmt"
	"reflect"
)

// Clone returns a deep copy of the location. Every nested slice is copied so
// the result shares nothing with the receiver; history snapshots rely on old
// location graphs never being written after a clone-and-swap.
func (l *Location) Clone() *Location {
	out := *l
	out.IntegrationIDs = append([]string(nil), l.IntegrationIDs...)
	out.Floors = make([]Floor, len(l.Floors))
	for i := range l.Floors {
		out.Floors[i] = l.Floors[i].Clone()
	}
	return &out
}

// Clone returns a deep copy of the floor.
func (f Floor) Clone() Floor {
	out := f
	out.Stations = make([]Station, len(f.Stations))
	for i := range f.Stations {
		out.Stations[i] = f.Stations[i].Clone()
	}
	out.Objects = append([]FloorObject(nil), f.Objects...)
	out.Labels = append([]FloorLabel(nil), f.Labels...)
	out.Layers = make([]Layer, len(f.Layers))
	for i := range f.Layers {
		out.Layers[i] = f.Layers[i].Clone()
	}
	return out
}

// Clone returns a deep copy of the layer.
func (ly Layer) Clone() Layer {
	out := ly
	out.CableRuns = append([]CableRun(nil), ly.CableRuns...)
	return out
}

// Clone returns a deep copy of the station.
func (s Station) Clone() Station {
	out := s
	out.Hardware = append([]HardwareAssociation(nil), s.Hardware...)
	return out
}

// UpdateLocation applies fn to a deep clone of the location with the given
// id and returns a new collection with the clone swapped in. All other
// locations are referentially unchanged, so location-level identity checks
// stay valid across edits. Boundary constraints are re-applied after fn.
// A transform that leaves the location content-identical returns the input
// collection unchanged, so identity comparisons downstream (history
// deduplication in particular) see no new state.
func UpdateLocation(locs []*Location, id string, fn func(*Location)) ([]*Location, error) {
	idx := -1
	for i, l := range locs {
		if l.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return locs, fmt.Errorf("location %s not found", id)
	}

	clone := locs[idx].Clone()
	fn(clone)
	clone.normalize()

	if reflect.DeepEqual(locs[idx], clone) {
		return locs, nil
	}

	out := make([]*Location, len(locs))
	copy(out, locs)
	out[idx] = clone
	return out, nil
}

// normalize enforces the invariants the UI is not trusted with: position and
// size clamps, the scale floor, the networking-station rule, and recomputed
// cable measurements (the scale may have changed).
func (l *Location) normalize() {
	for i := range l.Floors {
		l.Floors[i].normalize()
	}
	if len(l.Floors) == 0 {
		l.Floors = []Floor{NewFloor("Floor 1")}
	}
}

func (f *Floor) normalize() {
	if f.ScalePxPerFt < MinScalePxPerFt {
		f.ScalePxPerFt = MinScalePxPerFt
	}

	hasNetworking := false
	for i := range f.Stations {
		s := &f.Stations[i]
		if s.Size.W < MinStationWidth {
			s.Size.W = MinStationWidth
		}
		if s.Size.H < MinStationHeight {
			s.Size.H = MinStationHeight
		}
		s.Position = ClampPoint(s.Position)
		if s.Type == NetworkingStationType {
			hasNetworking = true
		}
	}
	if !hasNetworking {
		f.Stations = append(f.Stations, DefaultNetworkingStation())
	}

	for i := range f.Objects {
		f.Objects[i].Position = ClampPoint(f.Objects[i].Position)
		f.Objects[i].Rotation = wrapDegrees(f.Objects[i].Rotation)
	}
	for i := range f.Labels {
		f.Labels[i].Position = ClampPoint(f.Labels[i].Position)
		f.Labels[i].Rotation = wrapDegrees(f.Labels[i].Rotation)
	}

	for i := range f.Layers {
		for j := range f.Layers[i].CableRuns {
			run := &f.Layers[i].CableRuns[j]
			run.LengthFt, run.TTIMin = Measure(run.Start, run.End, f.ScalePxPerFt)
		}
	}
}

// RemoveStation deletes the station with the given id. If that removes the
// floor's last networking station, a default one is synthesized so the
// invariant holds.
func (f *Floor) RemoveStation(id string) {
	kept := f.Stations[:0]
	for _, s := range f.Stations {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	f.Stations = kept
	// normalize re-inserts the networking station if needed; callers going
	// through UpdateLocation get that for free, but keep direct callers safe.
	hasNetworking := false
	for _, s := range f.Stations {
		if s.Type == NetworkingStationType {
			hasNetworking = true
			break
		}
	}
	if !hasNetworking {
		f.Stations = append(f.Stations, DefaultNetworkingStation())
	}
}

// ClampPoint clamps a position to the floor bounds.
func ClampPoint(p Point) Point {
	if p.X < 0 {
		p.X = 0
	}
	if p.X > FloorWidth {
		p.X = FloorWidth
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.Y > FloorHeight {
		p.Y = FloorHeight
	}
	return p
}

func wrapDegrees(deg float64) float64 {
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}
	return deg
}
