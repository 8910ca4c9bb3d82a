// Package catalog holds the read-only configuration data the editor draws
// from: hardware items, integrations, station templates, and rates. These
// are not mutable core state; the pricing service owns the dollar figures.
package catalog

// HardwareItem is a catalog entry for a piece of installable equipment.
type HardwareItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	// TTIMin is the install minutes the pricing service converts to labor.
	TTIMin int `json:"ttiMin"`
}

// IntegrationItem is a selectable software integration.
type IntegrationItem struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Category string `json:"category"`
}

// StationTemplate pre-populates a new station with hardware.
type StationTemplate struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Color       string   `json:"color"`
	Department  string   `json:"department,omitempty"`
	HardwareIDs []string `json:"hardwareIds"`
}

// Rates are the labor-side constants mirrored from the pricing service's
// price list for display only.
type Rates struct {
	HourlyRate float64     `json:"hourlyRate"`
	Travel     TravelRates `json:"travel"`
}

// TravelRates are the flat per-zone travel fees plus island add-ons.
type TravelRates struct {
	Cape          float64 `json:"cape"`
	SouthShore    float64 `json:"southShore"`
	NewEngland    float64 `json:"newEngland"`
	OutOfRegion   float64 `json:"outOfRegion"`
	IslandBase    float64 `json:"islandBase"`
	IslandVehicle float64 `json:"islandVehicle"`
	IslandLodging float64 `json:"islandLodging"`
}

// SupportTiers are the selectable percentage-of-install recurring support
// fees. Tier 0 means no support plan.
var SupportTiers = []float64{0, 0.10, 0.15}

// Catalog bundles all read-only configuration.
type Catalog struct {
	Hardware     []HardwareItem    `json:"hardware"`
	Integrations []IntegrationItem `json:"integrations"`
	Templates    []StationTemplate `json:"templates"`
	Rates        Rates             `json:"rates"`
}

// HardwareByID returns the hardware item with the given id, or nil.
func (c *Catalog) HardwareByID(id string) *HardwareItem {
	for i := range c.Hardware {
		if c.Hardware[i].ID == id {
			return &c.Hardware[i]
		}
	}
	return nil
}

// TemplateByID returns the station template with the given id, or nil.
func (c *Catalog) TemplateByID(id string) *StationTemplate {
	for i := range c.Templates {
		if c.Templates[i].ID == id {
			return &c.Templates[i]
		}
	}
	return nil
}
