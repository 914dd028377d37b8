package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/amishk599/jobdigest/internal/filter"
	"github.com/amishk599/jobdigest/internal/model"
)

// Listing pages scraped on a best-effort basis.
const (
	TopStartupsURL     = "https://topstartups.io/jobs/?role=Data+Analyst"
	TopStartupsBaseURL = "https://topstartups.io"
	WellfoundURL       = "https://wellfound.com/role/r/data-analyst"
	WellfoundBaseURL   = "https://wellfound.com"
)

// ScrapeSource describes one listing page and the fixed tags attached to every
// job found on it.
type ScrapeSource struct {
	Name     string
	URL      string
	BaseURL  string
	MaxLen   int // reject anchor text of this many runes or more; 0 disables
	Keywords string
	Skills   string
}

// TopStartupsSource returns the TopStartups listing. Navigation and card
// blurbs are long, so anchor text is capped at 200 runes.
func TopStartupsSource(listingURL, baseURL string) ScrapeSource {
	return ScrapeSource{
		Name:     "topstartups",
		URL:      orDefault(listingURL, TopStartupsURL),
		BaseURL:  orDefault(baseURL, TopStartupsBaseURL),
		MaxLen:   200,
		Keywords: "data; metrics; dashboards; insights; reporting",
		Skills:   "SQL; Python; visualization; data pipelines; statistics",
	}
}

// WellfoundSource returns the Wellfound role page. The page is largely
// rendered client-side, so it often yields nothing.
func WellfoundSource(listingURL, baseURL string) ScrapeSource {
	return ScrapeSource{
		Name:     "wellfound",
		URL:      orDefault(listingURL, WellfoundURL),
		BaseURL:  orDefault(baseURL, WellfoundBaseURL),
		Keywords: "data; metrics; reporting; dashboards; insights",
		Skills:   "SQL; Python; Looker/Tableau; Excel; stats",
	}
}

// ScrapeAdapter treats every anchor on a listing page whose text matches the
// search term as a job link. The page structure is not modeled.
type ScrapeAdapter struct {
	source    ScrapeSource
	userAgent string
	filter    *filter.TitleFilter
	client    *http.Client
}

// NewScrapeAdapter creates an adapter for source matching searchTerm.
func NewScrapeAdapter(source ScrapeSource, searchTerm, userAgent string, client *http.Client) *ScrapeAdapter {
	return &ScrapeAdapter{
		source:    source,
		userAgent: userAgent,
		filter:    filter.NewTitleFilter(searchTerm, source.MaxLen),
		client:    client,
	}
}

// FetchJobs downloads the listing page and extracts matching anchors.
func (a *ScrapeAdapter) FetchJobs(ctx context.Context) ([]model.Job, error) {
	resp, err := get(ctx, a.client, a.source.URL, a.userAgent)
	if err != nil {
		return nil, fmt.Errorf("%s fetch: %w", a.source.Name, err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s fetch: parse html: %w", a.source.Name, err)
	}

	base, err := url.Parse(a.source.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s fetch: base url: %w", a.source.Name, err)
	}

	var jobs []model.Job
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		text := anchorText(s)
		if href == "" || text == "" {
			return
		}
		if !a.filter.MatchText(text) {
			return
		}

		jobs = append(jobs, model.Job{
			Company:  "-",
			Title:    text,
			Location: "Remote",
			URL:      resolveLink(base, href),
			Keywords: a.source.Keywords,
			Skills:   a.source.Skills,
			Source:   a.source.Name,
		})
	})

	return jobs, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
