// Package travel classifies free-text site addresses into travel zones.
package travel

import (
	"strings"

	"quotebuilder/internal/plan"
)

// Term lists are matched case-insensitively as substrings, in priority
// order: island first, then Cape Cod, then South Shore, then the broader
// New England states. Anything else is out of region.
var islandTerms = []string{
	"nantucket",
	"martha's vineyard",
	"marthas vineyard",
	"oak bluffs",
	"edgartown",
	"vineyard haven",
	"tisbury",
	"chilmark",
	"aquinnah",
	"west tisbury",
}

var capeTerms = []string{
	"cape cod",
	"barnstable",
	"hyannis",
	"falmouth",
	"mashpee",
	"sandwich",
	"bourne",
	"yarmouth",
	"dennis",
	"brewster",
	"harwich",
	"chatham",
	"orleans",
	"eastham",
	"wellfleet",
	"truro",
	"provincetown",
	"osterville",
	"centerville",
}

var southShoreTerms = []string{
	"plymouth",
	"kingston",
	"duxbury",
	"marshfield",
	"pembroke",
	"hanover",
	"norwell",
	"scituate",
	"cohasset",
	"hingham",
	"hull",
	"weymouth",
	"braintree",
	"quincy",
	"rockland",
	"abington",
	"whitman",
	"hanson",
	"halifax",
	"carver",
	"wareham",
}

// State abbreviations carry a trailing space so they only match as whole
// tokens; a bare ", ma" would hit ", madison" and ", me" would hit
// ", mexico city". The padding Classify appends makes these work at the
// end of the string too.
var newEnglandTerms = []string{
	"massachusetts",
	", ma ",
	" ma ",
	"rhode island",
	", ri ",
	"connecticut",
	", ct ",
	"new hampshire",
	", nh ",
	"vermont",
	", vt ",
	"maine",
	", me ",
}

// Classify maps an address to a travel zone. It is deterministic and
// case-insensitive; an empty address is out of region.
func Classify(address string) plan.Zone {
	addr := strings.ToLower(strings.TrimSpace(address))
	if addr == "" {
		return plan.ZoneOutOfRegion
	}
	// Pad so the abbreviation terms can match at the end of the string.
	padded := addr + " "

	for _, term := range islandTerms {
		if strings.Contains(padded, term) {
			return plan.ZoneIsland
		}
	}
	for _, term := range capeTerms {
		if strings.Contains(padded, term) {
			return plan.ZoneCape
		}
	}
	for _, term := range southShoreTerms {
		if strings.Contains(padded, term) {
			return plan.ZoneSouthShore
		}
	}
	for _, term := range newEnglandTerms {
		if strings.Contains(padded, term) {
			return plan.ZoneNewEngland
		}
	}
	return plan.ZoneOutOfRegion
}

// Apply reclassifies the location's zone from its address. It is a no-op
// when the location is remote or the user has overridden travel settings.
func Apply(loc *plan.Location) {
	if loc.Travel.Remote || loc.Travel.ManualOverride {
		return
	}
	loc.Travel.Zone = Classify(loc.Address)
}
