package catalog

// Default returns the built-in restaurant-technology catalog. Deployments
// can replace it wholesale from configuration; the editor never mutates it.
func Default() *Catalog {
	return &Catalog{
		Hardware: []HardwareItem{
			{ID: "pos-terminal", Name: "POS Terminal", Category: "pos", TTIMin: 45},
			{ID: "kds", Name: "KDS Screen", Category: "kitchen", TTIMin: 40},
			{ID: "receipt-printer", Name: "Receipt Printer", Category: "pos", TTIMin: 15},
			{ID: "kitchen-printer", Name: "Kitchen Printer", Category: "kitchen", TTIMin: 20},
			{ID: "cash-drawer", Name: "Cash Drawer", Category: "pos", TTIMin: 10},
			{ID: "card-reader", Name: "Card Reader", Category: "pos", TTIMin: 15},
			{ID: "router", Name: "Router", Category: "network", TTIMin: 30},
			{ID: "poe-switch", Name: "PoE Switch", Category: "network", TTIMin: 25},
			{ID: "access-point", Name: "Access Point", Category: "network", TTIMin: 30},
			{ID: "handheld", Name: "Handheld Terminal", Category: "pos", TTIMin: 20},
			{ID: "guest-display", Name: "Guest-Facing Display", Category: "pos", TTIMin: 20},
			{ID: "label-printer", Name: "Label Printer", Category: "kitchen", TTIMin: 15},
		},
		Integrations: []IntegrationItem{
			{ID: "online-ordering", Label: "Online Ordering", Category: "ordering"},
			{ID: "delivery", Label: "Delivery Marketplace", Category: "ordering"},
			{ID: "loyalty", Label: "Loyalty Program", Category: "marketing"},
			{ID: "reservations", Label: "Reservations", Category: "front-of-house"},
			{ID: "accounting", Label: "Accounting Sync", Category: "back-office"},
			{ID: "payroll", Label: "Payroll Sync", Category: "back-office"},
			{ID: "inventory", Label: "Inventory Management", Category: "back-office"},
		},
		Templates: []StationTemplate{
			{
				ID: "tmpl-networking", Name: "Networking Area", Type: "Networking Area",
				Color: "#4f6d8f", Department: "infrastructure",
				HardwareIDs: []string{"router", "poe-switch"},
			},
			{
				ID: "tmpl-pos", Name: "POS Station", Type: "POS Station",
				Color: "#2e7d32", Department: "front-of-house",
				HardwareIDs: []string{"pos-terminal", "receipt-printer", "cash-drawer", "card-reader"},
			},
			{
				ID: "tmpl-kds", Name: "Kitchen Display", Type: "Kitchen Display",
				Color: "#c62828", Department: "kitchen",
				HardwareIDs: []string{"kds", "kitchen-printer"},
			},
			{
				ID: "tmpl-expo", Name: "Expo Station", Type: "Expo Station",
				Color: "#ef6c00", Department: "kitchen",
				HardwareIDs: []string{"kds", "label-printer"},
			},
			{
				ID: "tmpl-bar", Name: "Bar Station", Type: "Bar Station",
				Color: "#6a1b9a", Department: "front-of-house",
				HardwareIDs: []string{"pos-terminal", "receipt-printer", "card-reader"},
			},
			{
				ID: "tmpl-host", Name: "Host Stand", Type: "Host Stand",
				Color: "#00695c", Department: "front-of-house",
				HardwareIDs: []string{"handheld"},
			},
		},
		Rates: Rates{
			HourlyRate: 125,
			Travel: TravelRates{
				Cape:          150,
				SouthShore:    250,
				NewEngland:    450,
				OutOfRegion:   900,
				IslandBase:    500,
				IslandVehicle: 350,
				IslandLodging: 400,
			},
		},
	}
}
