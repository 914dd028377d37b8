package dedupe

import (
	"strings"

	"github.com/amishk599/jobdigest/internal/model"
)

// Key returns the identity of a job within one run: the trimmed link, or
// "company|title" when the link is empty.
func Key(job model.Job) string {
	if link := strings.TrimSpace(job.URL); link != "" {
		return link
	}
	return job.Company + "|" + job.Title
}

// Jobs drops every job whose key was already seen earlier in the slice.
// The first occurrence wins and first-seen order is kept.
func Jobs(jobs []model.Job) []model.Job {
	seen := make(map[string]struct{}, len(jobs))
	out := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		k := Key(j)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, j)
	}
	return out
}
