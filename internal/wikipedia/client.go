package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ImageSearcher resolves a lead image for an article title or search term.
type ImageSearcher interface {
	LeadImage(ctx context.Context, title string) (string, error)
}

// Client queries the MediaWiki API for page lead images (pageimages prop).
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://en.wikipedia.org/w/api.php"
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type queryResponse struct {
	Query struct {
		Pages map[string]struct {
			Thumbnail struct {
				Source string `json:"source"`
			} `json:"thumbnail"`
		} `json:"pages"`
	} `json:"query"`
}

// LeadImage returns the thumbnail URL of a page's lead image, or "" when the
// page has none. A missing image is a valid non-error outcome.
func (c *Client) LeadImage(ctx context.Context, title string) (string, error) {
	q := url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"prop":        {"pageimages"},
		"piprop":      {"thumbnail"},
		"pithumbsize": {"800"},
		"redirects":   {"1"},
		"titles":      {title},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("wikipedia: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("wikipedia: status %d", resp.StatusCode)
	}
	var qr queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return "", err
	}
	for _, p := range qr.Query.Pages {
		if p.Thumbnail.Source != "" {
			return p.Thumbnail.Source, nil
		}
	}
	return "", nil
}
