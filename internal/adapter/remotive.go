package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/amishk599/jobdigest/internal/filter"
	"github.com/amishk599/jobdigest/internal/model"
)

// RemotiveURL is the public Remotive remote-jobs endpoint.
const RemotiveURL = "https://remotive.com/api/remote-jobs"

// Remotive does not report tags for the search endpoint; these are fixed
// placeholders shown in the digest.
const (
	remotiveKeywords = "analysis; reporting; dashboards; metrics; data"
	remotiveSkills   = "Python; SQL; Excel; BI tools; statistics"
)

type remotiveJob struct {
	Title                     string `json:"title"`
	CompanyName               string `json:"company_name"`
	CandidateRequiredLocation string `json:"candidate_required_location"`
	URL                       string `json:"url"`
}

type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

// RemotiveAdapter fetches jobs from the Remotive API and keeps those whose
// title matches the search term.
type RemotiveAdapter struct {
	endpoint   string
	searchTerm string
	userAgent  string
	filter     *filter.TitleFilter
	client     *http.Client
}

// NewRemotiveAdapter creates an adapter querying endpoint for searchTerm.
func NewRemotiveAdapter(endpoint, searchTerm, userAgent string, client *http.Client) *RemotiveAdapter {
	if endpoint == "" {
		endpoint = RemotiveURL
	}
	return &RemotiveAdapter{
		endpoint:   endpoint,
		searchTerm: searchTerm,
		userAgent:  userAgent,
		filter:     filter.NewTitleFilter(searchTerm, 0),
		client:     client,
	}
}

// FetchJobs queries the API and normalizes matching listings.
func (a *RemotiveAdapter) FetchJobs(ctx context.Context) ([]model.Job, error) {
	u, err := url.Parse(a.endpoint)
	if err != nil {
		return nil, fmt.Errorf("remotive fetch: %w", err)
	}
	q := u.Query()
	q.Set("search", a.searchTerm)
	u.RawQuery = q.Encode()

	resp, err := get(ctx, a.client, u.String(), a.userAgent)
	if err != nil {
		return nil, fmt.Errorf("remotive fetch: %w", err)
	}
	defer resp.Body.Close()

	var rr remotiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return nil, fmt.Errorf("remotive fetch: decode: %w", err)
	}

	jobs := make([]model.Job, 0, len(rr.Jobs))
	for _, rj := range rr.Jobs {
		title := rj.Title
		if !a.filter.MatchText(title) {
			continue
		}

		company := rj.CompanyName
		if company == "" {
			company = "-"
		}
		location := rj.CandidateRequiredLocation
		if location == "" {
			location = "Remote"
		}

		jobs = append(jobs, model.Job{
			Company:  company,
			Title:    title,
			Location: location,
			URL:      rj.URL,
			Keywords: remotiveKeywords,
			Skills:   remotiveSkills,
			Source:   "remotive",
		})
	}

	return jobs, nil
}
