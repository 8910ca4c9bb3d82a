package export

import (
	"fmt"
	"html/template"
	"strings"
)

// printableTmpl is the self-contained printable quote document.
var printableTmpl = template.Must(template.New("printable").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	"feet":  func(v float64) string { return fmt.Sprintf("%.1f ft", v) },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Installation Quote</title>
<style>
body { font-family: Georgia, serif; margin: 2rem; color: #222; }
h1 { border-bottom: 2px solid #222; padding-bottom: .25rem; }
h2 { margin-top: 1.5rem; }
table { border-collapse: collapse; width: 100%; margin: .5rem 0 1rem; }
th, td { border: 1px solid #999; padding: .3rem .6rem; text-align: left; }
th { background: #eee; }
.total { font-weight: bold; }
</style>
</head>
<body>
<h1>Installation Quote</h1>
<p>Exported {{.ExportedAt.Format "January 2, 2006"}}</p>

{{range .Locations}}
<h2>{{.Name}}</h2>
{{if .Address}}<p>{{.Address}}</p>{{end}}
{{range .Floors}}
<h3>{{.Name}}</h3>
<table>
<tr><th>Station</th><th>Department</th><th>Hardware</th></tr>
{{range .Stations}}
<tr>
<td>{{.Name}}</td>
<td>{{.Department}}</td>
<td>{{range $i, $h := .Hardware}}{{if $i}}, {{end}}{{if $h.Nickname}}{{$h.Nickname}}{{else}}{{$h.HardwareID}}{{end}}{{end}}</td>
</tr>
{{end}}
</table>
{{range .Layers}}{{if .CableRuns}}
<table>
<tr><th>Cable run ({{.Name}})</th><th>Length</th><th>Install minutes</th></tr>
{{range .CableRuns}}
<tr><td>{{.ID}}</td><td>{{feet .LengthFt}}</td><td>{{.TTIMin}}</td></tr>
{{end}}
</table>
{{end}}{{end}}
{{end}}
{{end}}

{{if .Estimate}}
<h2>Estimate</h2>
<table>
<tr><td>Hardware</td><td>{{money .Estimate.HardwareCost}}</td></tr>
<tr><td>Overhead</td><td>{{money .Estimate.OverheadCost}}</td></tr>
<tr><td>Integrations</td><td>{{money .Estimate.IntegrationsCost}}</td></tr>
<tr><td>Cabling</td><td>{{money .Estimate.CablingCost}}</td></tr>
<tr><td>Installation</td><td>{{money .Estimate.InstallCost}}</td></tr>
<tr><td>Travel</td><td>{{money .Estimate.TravelCost}}</td></tr>
<tr><td>Support ({{.Estimate.SupportPeriod}})</td><td>{{money .Estimate.SupportCost}}</td></tr>
<tr class="total"><td>First period total</td><td>{{money .Estimate.TotalFirst}}</td></tr>
<tr><td>Estimated install time</td><td>{{.Estimate.MinHours}}&ndash;{{.Estimate.MaxHours}} hours</td></tr>
</table>
{{end}}
</body>
</html>
`))

// HTML renders the printable quote document from the export payload.
func HTML(p Payload) (string, error) {
	var sb strings.Builder
	if err := printableTmpl.Execute(&sb, p); err != nil {
		return "", err
	}
	return sb.String(), nil
}
