package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const listingPage = `<!doctype html>
<html><body>
<nav>
  <a href="/">Home</a>
  <a href="/jobs">All jobs</a>
  <a href="">Data Analyst (empty href)</a>
</nav>
<div class="cards">
  <a href="/jobs/123-senior-data-analyst"><span>Senior</span> <b>Data Analyst</b></a>
  <a href="https://boards.example.com/acme/456">Analyst, Product Data</a>
  <a href="/jobs/789">Data Scientist</a>
  <a href="/jobs/empty"></a>
  <a name="no-href">Data Analyst anchor without href</a>
  <a href="/jobs/long">Data Analyst LONGTEXT</a>
</div>
</body></html>`

func newListingServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "test-agent/1.0" {
			t.Errorf("user agent = %q, want test-agent/1.0", ua)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(body))
	}))
}

func TestScrape_Wellfound_ExtractsMatchingAnchors(t *testing.T) {
	body := strings.Replace(listingPage, "LONGTEXT", strings.Repeat("x", 250), 1)
	srv := newListingServer(t, body)
	defer srv.Close()

	src := WellfoundSource(srv.URL+"/role/r/data-analyst", "https://wellfound.com")
	a := NewScrapeAdapter(src, "data analyst", "test-agent/1.0", srv.Client())

	jobs, err := a.FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// No length cap for wellfound: the long anchor is kept.
	if len(jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d: %+v", len(jobs), jobs)
	}

	j := jobs[0]
	if j.Title != "Senior Data Analyst" {
		t.Errorf("title = %q, want %q", j.Title, "Senior Data Analyst")
	}
	if j.URL != "https://wellfound.com/jobs/123-senior-data-analyst" {
		t.Errorf("relative href not resolved: %q", j.URL)
	}
	if j.Company != "-" || j.Location != "Remote" {
		t.Errorf("unexpected company/location: %q / %q", j.Company, j.Location)
	}
	if j.Keywords != src.Keywords || j.Skills != src.Skills {
		t.Errorf("unexpected tags: %q / %q", j.Keywords, j.Skills)
	}
	if j.Source != "wellfound" {
		t.Errorf("source = %q, want wellfound", j.Source)
	}

	if jobs[1].URL != "https://boards.example.com/acme/456" {
		t.Errorf("absolute href changed: %q", jobs[1].URL)
	}
}

func TestScrape_TopStartups_RejectsLongAnchorText(t *testing.T) {
	body := strings.Replace(listingPage, "LONGTEXT", strings.Repeat("x", 250), 1)
	srv := newListingServer(t, body)
	defer srv.Close()

	src := TopStartupsSource(srv.URL+"/jobs/?role=Data+Analyst", "https://topstartups.io")
	a := NewScrapeAdapter(src, "data analyst", "test-agent/1.0", srv.Client())

	jobs, err := a.FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d: %+v", len(jobs), jobs)
	}
	for _, j := range jobs {
		if len(j.Title) >= 200 {
			t.Errorf("long anchor text should be rejected: %q", j.Title)
		}
		if !strings.HasPrefix(j.URL, "http") {
			t.Errorf("expected absolute URL, got %q", j.URL)
		}
	}
	if jobs[0].URL != "https://topstartups.io/jobs/123-senior-data-analyst" {
		t.Errorf("unexpected URL: %q", jobs[0].URL)
	}
}

func TestScrape_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	a := NewScrapeAdapter(WellfoundSource(srv.URL, ""), "data analyst", "", srv.Client())
	if _, err := a.FetchJobs(context.Background()); err == nil {
		t.Fatal("expected error for HTTP 403, got nil")
	}
}

func TestScrape_NoAnchors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div id="root"></div><script>render()</script></body></html>`))
	}))
	defer srv.Close()

	a := NewScrapeAdapter(WellfoundSource(srv.URL, ""), "data analyst", "", srv.Client())
	jobs, err := a.FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected 0 jobs, got %d", len(jobs))
	}
}

func TestSourceDefaults(t *testing.T) {
	ts := TopStartupsSource("", "")
	if ts.URL != TopStartupsURL || ts.BaseURL != TopStartupsBaseURL || ts.MaxLen != 200 {
		t.Errorf("unexpected topstartups defaults: %+v", ts)
	}
	wf := WellfoundSource("", "")
	if wf.URL != WellfoundURL || wf.BaseURL != WellfoundBaseURL || wf.MaxLen != 0 {
		t.Errorf("unexpected wellfound defaults: %+v", wf)
	}
}
