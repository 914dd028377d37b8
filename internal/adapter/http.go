package adapter

import (
	"context"
	"fmt"
	"net/http"

	"github.com/amishk599/jobdigest/internal/model"
)

// DefaultUserAgent identifies the fetcher to job boards that block blank agents.
const DefaultUserAgent = "Mozilla/5.0 (compatible; JobFetcher/1.0; +https://github.com/)"

// get issues a GET with the user agent set and returns the response only for
// 2xx statuses. Any other status is reported as *model.HTTPError.
func get(ctx context.Context, client *http.Client, url, userAgent string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, statusError(resp.StatusCode)
	}
	return resp, nil
}

func statusError(code int) error {
	return &model.HTTPError{
		StatusCode: code,
		Err:        fmt.Errorf("unexpected status %d", code),
	}
}
