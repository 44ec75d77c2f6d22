package giphy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GIF is one search result.
type GIF struct {
	URL    string
	Title  string
	Width  int
	Height int
}

// Searcher is the GIF provider contract used by enrichment. Implementations
// must respect the caller's context deadline.
type Searcher interface {
	Search(ctx context.Context, term string) (*GIF, error)
}

// Client is a minimal Giphy search API client. The API key is required; its
// absence is a configuration error surfaced at startup, not per call.
type Client struct {
	baseURL string
	apiKey  string
	rating  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("giphy: api key is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://api.giphy.com/v1"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		rating:  "pg-13",
		client:  &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// searchResponse mirrors the subset of Giphy response fields we use.
type searchResponse struct {
	Data []struct {
		Title  string `json:"title"`
		Images struct {
			Original struct {
				URL    string `json:"url"`
				Width  string `json:"width"`
				Height string `json:"height"`
			} `json:"original"`
		} `json:"images"`
	} `json:"data"`
}

// Search returns the top result for a term, or nil when the provider has no
// match for it.
func (c *Client) Search(ctx context.Context, term string) (*GIF, error) {
	q := url.Values{
		"api_key": {c.apiKey},
		"q":       {term},
		"limit":   {"1"},
		"rating":  {c.rating},
	}
	endpoint := fmt.Sprintf("%s/gifs/search?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("giphy: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("giphy: status %d", resp.StatusCode)
	}
	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, err
	}
	if len(sr.Data) == 0 {
		return nil, nil
	}
	d := sr.Data[0]
	return &GIF{
		URL:    d.Images.Original.URL,
		Title:  d.Title,
		Width:  atoiOrZero(d.Images.Original.Width),
		Height: atoiOrZero(d.Images.Original.Height),
	}, nil
}

func atoiOrZero(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
