// Package plan holds the spatial data model for the floor-plan quote editor:
// locations, floors, layers, stations, cable runs, and the copy-on-write
// mutation contract every edit goes through.
package plan

import "github.com/google/uuid"

// Floor-pixel space bounds. Positions are clamped here at the mutation
// boundary, not in the UI.
const (
	FloorWidth  = 4000.0
	FloorHeight = 3000.0
)

// Station minimums and the pixel-to-feet scale floor.
const (
	MinStationWidth  = 160.0
	MinStationHeight = 120.0
	MinScalePxPerFt  = 4.0
	DefaultScale     = 16.0
)

// NetworkingStationType is the station type every floor must keep at least
// one of. Removing the last one re-inserts a default at DefaultNetworkingPos.
const NetworkingStationType = "Networking Area"

// DefaultNetworkingPos is where a synthesized networking station lands.
var DefaultNetworkingPos = Point{X: 80, Y: 80}

// DefaultImportPos is where an imported hardware station lands.
var DefaultImportPos = Point{X: 200, Y: 200}

// Point is a position in floor-pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair in floor-pixel space.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Zone is a travel zone classification.
type Zone string

const (
	ZoneIsland      Zone = "island"
	ZoneCape        Zone = "cape"
	ZoneSouthShore  Zone = "southShore"
	ZoneNewEngland  Zone = "newEngland"
	ZoneOutOfRegion Zone = "outOfRegion"
)

// TravelSettings drives the flat travel fee for a location.
type TravelSettings struct {
	Zone          Zone `json:"zone"`
	IslandVehicle bool `json:"islandVehicle"`
	Lodging       bool `json:"lodging"`
	Remote        bool `json:"remote"`
	// ManualOverride stops the address classifier from rewriting Zone.
	ManualOverride bool `json:"manualOverride"`
}

// Location is a physical site: an address, travel settings, selected
// integrations, and one or more floors.
type Location struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Address        string         `json:"address"`
	Travel         TravelSettings `json:"travel"`
	IntegrationIDs []string       `json:"integrationIds"`
	Floors         []Floor        `json:"floors"`
}

// Floor is one level of a location. ScalePxPerFt converts on-screen pixel
// distance to feet for cable runs.
type Floor struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	ScalePxPerFt float64       `json:"scalePxPerFt"`
	Stations     []Station     `json:"stations"`
	Objects      []FloorObject `json:"objects"`
	Labels       []FloorLabel  `json:"labels"`
	Layers       []Layer       `json:"layers"`
}

// LayerType tags what a layer may contain.
type LayerType string

const (
	LayerBase    LayerType = "base"
	LayerNetwork LayerType = "network"
	LayerGeneric LayerType = "generic"
)

// Layer is a named, toggleable collection of cable runs. Only network
// layers accept cable runs.
type Layer struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Type      LayerType  `json:"type"`
	Visible   bool       `json:"visible"`
	CableRuns []CableRun `json:"cableRuns"`
}

// Station is a placed equipment group.
type Station struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	Type       string                `json:"type"`
	Color      string                `json:"color"`
	Position   Point                 `json:"position"`
	Size       Size                  `json:"size"`
	Department string                `json:"department,omitempty"`
	Existing   bool                  `json:"existing"`
	Replace    bool                  `json:"replace"`
	Hardware   []HardwareAssociation `json:"hardware"`
}

// HardwareAssociation links a station to a catalog hardware id.
// Station-level Existing implies association-level Existing for cost.
type HardwareAssociation struct {
	ID         string `json:"id"`
	HardwareID string `json:"hardwareId"`
	Nickname   string `json:"nickname,omitempty"`
	Notes      string `json:"notes,omitempty"`
	Existing   bool   `json:"existing"`
	Replace    bool   `json:"replace"`
}

// FloorObject is a furniture or structural marker. Carries no cost.
type FloorObject struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Position Point   `json:"position"`
	Size     Size    `json:"size"`
	Color    string  `json:"color,omitempty"`
	Rotation float64 `json:"rotation"`
}

// FloorLabel is free text on the floor. Cosmetic only.
type FloorLabel struct {
	ID       string  `json:"id"`
	Text     string  `json:"text"`
	Position Point   `json:"position"`
	Rotation float64 `json:"rotation"`
}

// CableRun is a two-point line on a network layer. LengthFt and TTIMin are
// derived from the endpoints and the floor scale; see Measure.
type CableRun struct {
	ID       string  `json:"id"`
	Start    Point   `json:"start"`
	End      Point   `json:"end"`
	LengthFt float64 `json:"lengthFt"`
	TTIMin   int     `json:"ttiMin"`
}

// SelectionKind discriminates what a Selection points at.
type SelectionKind string

const (
	SelectNone    SelectionKind = ""
	SelectStation SelectionKind = "station"
	SelectObject  SelectionKind = "object"
	SelectLabel   SelectionKind = "label"
)

// Selection is transient UI state; it is not part of history snapshots.
type Selection struct {
	Kind SelectionKind `json:"kind"`
	ID   string        `json:"id"`
}

// NewID returns a fresh entity id.
func NewID() string { return uuid.New().String() }

// NewLocation returns a location with one floor holding the default
// networking station and a base plus network layer.
func NewLocation(name string) *Location {
	return &Location{
		ID:     NewID(),
		Name:   name,
		Travel: TravelSettings{Zone: ZoneOutOfRegion},
		Floors: []Floor{NewFloor("Floor 1")},
	}
}

// NewFloor returns a floor with the default scale, a base and a network
// layer, and the mandatory networking station.
func NewFloor(name string) Floor {
	return Floor{
		ID:           NewID(),
		Name:         name,
		ScalePxPerFt: DefaultScale,
		Stations:     []Station{DefaultNetworkingStation()},
		Layers: []Layer{
			{ID: NewID(), Name: "Base", Type: LayerBase, Visible: true},
			{ID: NewID(), Name: "Network", Type: LayerNetwork, Visible: true},
		},
	}
}

// DefaultNetworkingStation returns the networking station a floor is seeded
// with: router plus PoE switch at the default position.
func DefaultNetworkingStation() Station {
	return Station{
		ID:       NewID(),
		Name:     "Networking Area",
		Type:     NetworkingStationType,
		Color:    "#4f6d8f",
		Position: DefaultNetworkingPos,
		Size:     Size{W: MinStationWidth, H: MinStationHeight},
		Hardware: []HardwareAssociation{
			{ID: NewID(), HardwareID: "router"},
			{ID: NewID(), HardwareID: "poe-switch"},
		},
	}
}

// FloorByID returns the floor with the given id, or nil.
func (l *Location) FloorByID(id string) *Floor {
	for i := range l.Floors {
		if l.Floors[i].ID == id {
			return &l.Floors[i]
		}
	}
	return nil
}

// LayerByID returns the layer with the given id, or nil.
func (f *Floor) LayerByID(id string) *Layer {
	for i := range f.Layers {
		if f.Layers[i].ID == id {
			return &f.Layers[i]
		}
	}
	return nil
}

// StationByID returns the station with the given id, or nil.
func (f *Floor) StationByID(id string) *Station {
	for i := range f.Stations {
		if f.Stations[i].ID == id {
			return &f.Stations[i]
		}
	}
	return nil
}

// ObjectByID returns the floor object with the given id, or nil.
func (f *Floor) ObjectByID(id string) *FloorObject {
	for i := range f.Objects {
		if f.Objects[i].ID == id {
			return &f.Objects[i]
		}
	}
	return nil
}

// LabelByID returns the floor label with the given id, or nil.
func (f *Floor) LabelByID(id string) *FloorLabel {
	for i := range f.Labels {
		if f.Labels[i].ID == id {
			return &f.Labels[i]
		}
	}
	return nil
}

// NetworkLayer returns the first network-type layer, or nil.
func (f *Floor) NetworkLayer() *Layer {
	for i := range f.Layers {
		if f.Layers[i].Type == LayerNetwork {
			return &f.Layers[i]
		}
	}
	return nil
}
