// Package workspace persists editor sessions to per-quote SQLite files.
// Every piece of session state is keyed by a stable namespace string and is
// overwritten wholesale on save; there is no eviction policy.
package workspace

import (
	"quotebuilder/internal/estimate"
	"quotebuilder/internal/geometry"
	"quotebuilder/internal/plan"
)

// Namespace keys for session state blobs.
const (
	KeyLocations = "quotebuilder.locations"
	KeySelection = "quotebuilder.selection"
	KeyViewport  = "quotebuilder.viewport"
	KeyPanels    = "quotebuilder.panels"
	KeySupport   = "quotebuilder.support"
	KeyActive    = "quotebuilder.active"
)

// QuoteSettings holds quote-level metadata as key-value pairs.
type QuoteSettings struct {
	Name       string `json:"name"`
	ClientName string `json:"clientName,omitempty"`
	PreparedBy string `json:"preparedBy,omitempty"`
}

// SupportSelection is the persisted support plan choice.
type SupportSelection struct {
	Tier   float64                `json:"tier"`
	Period estimate.SupportPeriod `json:"period"`
}

// ActiveIDs records which location, floor, and layer the editor had open.
type ActiveIDs struct {
	LocationID string `json:"locationId"`
	FloorID    string `json:"floorId"`
	LayerID    string `json:"layerId"`
}

// Session is everything restored on reopen.
type Session struct {
	Locations []*plan.Location  `json:"locations"`
	Selection plan.Selection    `json:"selection"`
	Viewport  geometry.Viewport `json:"viewport"`
	Panels    map[string]bool   `json:"panels"`
	Support   SupportSelection  `json:"support"`
	Active    ActiveIDs         `json:"active"`
}
