package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/amishk599/jobdigest/internal/model"
)

// NoJobs is sent instead of a table when a run finds nothing.
const NoJobs = "<p>No remote Data Analyst jobs found today.</p>"

// DefaultAttribution names the sources a digest is assembled from.
const DefaultAttribution = "Source: Remotive API + TopStartups + Wellfound (best-effort scraping)"

// Field values go through html/template, so titles and links scraped from
// third-party pages cannot inject markup into the mail.
var digestTmpl = template.Must(template.New("digest").Parse(
	`<h2>Daily Remote Data Analyst Jobs — Consolidated</h2>` +
		`<p>{{.Attribution}}</p>` +
		`<table border="1" cellpadding="6" style="border-collapse:collapse;">` +
		`<thead><tr><th>Company</th><th>Title</th><th>Location</th><th>Link</th><th>Keywords</th><th>Skills</th></tr></thead>` +
		`<tbody>` +
		`{{range .Jobs}}<tr>` +
		`<td>{{.Company}}</td>` +
		`<td>{{.Title}}</td>` +
		`<td>{{.Location}}</td>` +
		`<td><a href="{{.URL}}">Apply</a></td>` +
		`<td>{{.Keywords}}</td>` +
		`<td>{{.Skills}}</td>` +
		`</tr>{{end}}` +
		`</tbody></table>`,
))

// Table renders the digest table for jobs. attribution defaults to
// DefaultAttribution when empty.
func Table(jobs []model.Job, attribution string) (string, error) {
	if attribution == "" {
		attribution = DefaultAttribution
	}
	var b strings.Builder
	err := digestTmpl.Execute(&b, struct {
		Attribution string
		Jobs        []model.Job
	}{
		Attribution: attribution,
		Jobs:        jobs,
	})
	if err != nil {
		return "", fmt.Errorf("render digest: %w", err)
	}
	return b.String(), nil
}

// Body returns NoJobs for an empty list and the full table otherwise.
func Body(jobs []model.Job, attribution string) (string, error) {
	if len(jobs) == 0 {
		return NoJobs, nil
	}
	return Table(jobs, attribution)
}
