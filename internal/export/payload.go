// Package export renders the in-memory model into its terminal, one-way
// output formats: a full JSON payload, flattened CSV rows for POS import,
// and a printable HTML document. None of these round-trip into the editor.
package export

import (
	"encoding/json"
	"time"

	"quotebuilder/internal/catalog"
	"quotebuilder/internal/estimate"
	"quotebuilder/internal/plan"
)

// Payload is the complete JSON export: model, catalog, rates, and the last
// known authoritative estimate.
type Payload struct {
	Version       int                    `json:"version"`
	ExportedAt    time.Time              `json:"exportedAt"`
	Locations     []*plan.Location       `json:"locations"`
	Catalog       *catalog.Catalog       `json:"catalog"`
	SupportTier   float64                `json:"supportTier"`
	SupportPeriod estimate.SupportPeriod `json:"supportPeriod"`
	Estimate      *estimate.Summary      `json:"estimate,omitempty"`
}

// PayloadVersion is bumped when the export shape changes.
const PayloadVersion = 1

// BuildPayload assembles the export payload from the current editor state.
func BuildPayload(locs []*plan.Location, cat *catalog.Catalog, tier float64, period estimate.SupportPeriod, est *estimate.Summary) Payload {
	return Payload{
		Version:       PayloadVersion,
		ExportedAt:    time.Now().UTC(),
		Locations:     locs,
		Catalog:       cat,
		SupportTier:   tier,
		SupportPeriod: period,
		Estimate:      est,
	}
}

// JSON returns the payload as indented JSON.
func JSON(p Payload) (string, error) {
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
