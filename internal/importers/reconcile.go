package importers

import (
	"fmt"

	"github.com/samber/lo"

	"quotebuilder/internal/plan"
)

// Reconcile expands extracted line items (quantity x mapped hardware ids)
// into hardware associations grouped under a single new station at the
// default import position. It never merges into existing stations or
// dedupes against hardware already on the canvas.
func Reconcile(items []ExtractedItem, stationName string) plan.Station {
	if stationName == "" {
		stationName = "Imported Hardware"
	}

	hardware := lo.FlatMap(items, func(item ExtractedItem, _ int) []plan.HardwareAssociation {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		var out []plan.HardwareAssociation
		for i := 0; i < qty; i++ {
			for _, hwID := range item.MappedHardwareIDs {
				assoc := plan.HardwareAssociation{
					ID:         plan.NewID(),
					HardwareID: hwID,
				}
				if qty > 1 {
					assoc.Nickname = fmt.Sprintf("%s %d", item.ProductName, i+1)
				} else {
					assoc.Nickname = item.ProductName
				}
				out = append(out, assoc)
			}
		}
		return out
	})

	return plan.Station{
		ID:       plan.NewID(),
		Name:     stationName,
		Type:     "Imported",
		Color:    "#5d4037",
		Position: plan.DefaultImportPos,
		Size:     plan.Size{W: plan.MinStationWidth, H: plan.MinStationHeight},
		Hardware: hardware,
	}
}

// CollectItems flattens successful file results into one item list, in file
// order.
func CollectItems(results []FileResult) []ExtractedItem {
	return lo.FlatMap(results, func(r FileResult, _ int) []ExtractedItem {
		return r.Items
	})
}
