package workspace

import (
	"encoding/json"
	"fmt"
	"os"

	"quotebuilder/internal/plan"
)

// MigrationResult reports the outcome of a legacy-dump migration.
type MigrationResult struct {
	LocationsImported int      `json:"locationsImported"`
	KeysImported      int      `json:"keysImported"`
	Warnings          []string `json:"warnings"`
	Errors            []string `json:"errors"`
}

// legacyKeyMap translates the browser-storage dump keys the hosted editor
// used into the namespace keys of the quote file.
var legacyKeyMap = map[string]string{
	"qb:locations": KeyLocations,
	"qb:selection": KeySelection,
	"qb:viewport":  KeyViewport,
	"qb:panels":    KeyPanels,
	"qb:support":   KeySupport,
	"qb:active":    KeyActive,
}

// MigrateFromDump reads a legacy browser-storage dump (a JSON object of
// storage key to raw JSON string, as exported from the hosted editor) and
// writes it into a new .quote file at newFilePath. Locations are decoded
// and re-encoded so malformed entries surface as errors instead of
// poisoning the session store.
func MigrateFromDump(dumpPath, newFilePath string) (MigrationResult, error) {
	result := MigrationResult{}

	data, err := os.ReadFile(dumpPath)
	if err != nil {
		return result, fmt.Errorf("read dump: %w", err)
	}
	var dump map[string]string
	if err := json.Unmarshal(data, &dump); err != nil {
		return result, fmt.Errorf("parse dump: %w", err)
	}

	db, err := OpenDB(newFilePath)
	if err != nil {
		return result, fmt.Errorf("create quote db: %w", err)
	}
	if err := InitSchema(db); err != nil {
		db.Close()
		return result, fmt.Errorf("init schema: %w", err)
	}
	repo := NewRepo(db, newFilePath)
	defer repo.Close()

	for oldKey, raw := range dump {
		newKey, known := legacyKeyMap[oldKey]
		if !known {
			result.Warnings = append(result.Warnings, fmt.Sprintf("unknown key %q skipped", oldKey))
			continue
		}

		if newKey == KeyLocations {
			var locs []*plan.Location
			if err := json.Unmarshal([]byte(raw), &locs); err != nil {
				result.Errors = append(result.Errors, "locations parse error: "+err.Error())
				continue
			}
			// Re-encode so only well-formed location graphs land in the file.
			clean, err := json.Marshal(locs)
			if err != nil {
				result.Errors = append(result.Errors, "locations encode error: "+err.Error())
				continue
			}
			raw = string(clean)
			result.LocationsImported = len(locs)
		}

		if err := repo.SetState(newKey, raw); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("save %s: %s", newKey, err.Error()))
			continue
		}
		result.KeysImported++
	}

	return result, nil
}
