// Package estimate assembles pricing requests from the spatial model and
// adapts the pricing service's authoritative response for display. Dollar
// figures are never derived client-side.
package estimate

import "quotebuilder/internal/plan"

// SupportPeriod is the billing cadence for the support plan.
type SupportPeriod string

const (
	PeriodMonthly SupportPeriod = "monthly"
	PeriodAnnual  SupportPeriod = "annual"
)

// Request is the payload sent to the quote-calculation endpoint.
type Request struct {
	Floors         []plan.Floor        `json:"floors"`
	Travel         plan.TravelSettings `json:"travel"`
	IntegrationIDs []string            `json:"integrationIds"`
	SupportTier    float64             `json:"supportTier"`
	SupportPeriod  SupportPeriod       `json:"supportPeriod"`
}

// Item is one priced line in the response.
type Item struct {
	Type  string  `json:"type"`
	Label string  `json:"label"`
	Cost  float64 `json:"cost"`
}

// ResponseSummary carries the authoritative category subtotals.
type ResponseSummary struct {
	HardwareCost     float64 `json:"hardwareCost"`
	OverheadCost     float64 `json:"overheadCost"`
	IntegrationsCost float64 `json:"integrationsCost"`
	CablingCost      float64 `json:"cablingCost"`
	InstallCost      float64 `json:"installCost"`
	TravelCost       float64 `json:"travelCost"`
	SupportMonthly   float64 `json:"supportMonthly"`
	SupportAnnual    float64 `json:"supportAnnual"`
	TotalFirst       float64 `json:"totalFirst"`
}

// TimeEstimate is the install-hours range.
type TimeEstimate struct {
	MinHours float64 `json:"minHours"`
	MaxHours float64 `json:"maxHours"`
}

// Response is the pricing service's answer, the sole source of dollar
// figures.
type Response struct {
	Items        []Item          `json:"items"`
	Summary      ResponseSummary `json:"summary"`
	TimeEstimate TimeEstimate    `json:"timeEstimate"`
}

// Summary is the flat display model the panel renders.
type Summary struct {
	Items            []Item  `json:"items"`
	HardwareCost     float64 `json:"hardwareCost"`
	OverheadCost     float64 `json:"overheadCost"`
	IntegrationsCost float64 `json:"integrationsCost"`
	CablingCost      float64 `json:"cablingCost"`
	InstallCost      float64 `json:"installCost"`
	TravelCost       float64 `json:"travelCost"`
	// SupportCost is for the selected billing period.
	SupportCost   float64       `json:"supportCost"`
	SupportPeriod SupportPeriod `json:"supportPeriod"`
	TotalFirst    float64       `json:"totalFirst"`
	MinHours      float64       `json:"minHours"`
	MaxHours      float64       `json:"maxHours"`
}

// View is what the UI binds to: the last good summary plus transient
// request state.
type View struct {
	Loading bool     `json:"loading"`
	Error   string   `json:"error,omitempty"`
	Summary *Summary `json:"summary,omitempty"`
}

// BuildRequest serializes a location and support selection into a pricing
// request. All floors of the location are included.
func BuildRequest(loc *plan.Location, tier float64, period SupportPeriod) Request {
	return Request{
		Floors:         loc.Floors,
		Travel:         loc.Travel,
		IntegrationIDs: append([]string(nil), loc.IntegrationIDs...),
		SupportTier:    tier,
		SupportPeriod:  period,
	}
}

// adapt flattens the authoritative response for the selected period.
func adapt(resp *Response, period SupportPeriod) *Summary {
	support := resp.Summary.SupportMonthly
	if period == PeriodAnnual {
		support = resp.Summary.SupportAnnual
	}
	return &Summary{
		Items:            resp.Items,
		HardwareCost:     resp.Summary.HardwareCost,
		OverheadCost:     resp.Summary.OverheadCost,
		IntegrationsCost: resp.Summary.IntegrationsCost,
		CablingCost:      resp.Summary.CablingCost,
		InstallCost:      resp.Summary.InstallCost,
		TravelCost:       resp.Summary.TravelCost,
		SupportCost:      support,
		SupportPeriod:    period,
		TotalFirst:       resp.Summary.TotalFirst,
		MinHours:         resp.TimeEstimate.MinHours,
		MaxHours:         resp.TimeEstimate.MaxHours,
	}
}
