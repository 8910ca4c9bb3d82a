package export

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"quotebuilder/internal/catalog"
	"quotebuilder/internal/plan"
)

// csvHeader is the flattened row shape POS import tooling expects.
var csvHeader = []string{
	"location", "floor", "station", "department",
	"hardware_id", "hardware_name", "quantity", "existing", "replace",
}

// Row is one flattened hardware line.
type Row struct {
	Location     string
	Floor        string
	Station      string
	Department   string
	HardwareID   string
	HardwareName string
	Quantity     int
	Existing     bool
	Replace      bool
}

// Rows flattens every hardware association into per-station, per-hardware
// quantity rows. Station-level existing implies association-level existing.
func Rows(locs []*plan.Location, cat *catalog.Catalog) []Row {
	var rows []Row
	for _, loc := range locs {
		for _, floor := range loc.Floors {
			for _, st := range floor.Stations {
				grouped := lo.GroupBy(st.Hardware, func(h plan.HardwareAssociation) string {
					return h.HardwareID
				})
				// Stable order: first appearance within the station.
				seen := make(map[string]bool)
				for _, h := range st.Hardware {
					if seen[h.HardwareID] {
						continue
					}
					seen[h.HardwareID] = true
					assocs := grouped[h.HardwareID]

					name := h.HardwareID
					if item := cat.HardwareByID(h.HardwareID); item != nil {
						name = item.Name
					}
					rows = append(rows, Row{
						Location:     loc.Name,
						Floor:        floor.Name,
						Station:      st.Name,
						Department:   st.Department,
						HardwareID:   h.HardwareID,
						HardwareName: name,
						Quantity:     len(assocs),
						Existing:     st.Existing || h.Existing,
						Replace:      st.Replace || h.Replace,
					})
				}
			}
		}
	}
	return rows
}

// CSV renders the flattened rows as a CSV document with a header line.
func CSV(locs []*plan.Location, cat *catalog.Catalog) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, r := range Rows(locs, cat) {
		record := []string{
			r.Location, r.Floor, r.Station, r.Department,
			r.HardwareID, r.HardwareName,
			strconv.Itoa(r.Quantity),
			strconv.FormatBool(r.Existing),
			strconv.FormatBool(r.Replace),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
