package reddit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"threadjuice/internal/model"

	"github.com/tidwall/gjson"
)

// Client is a minimal Reddit listing API client. It reads the public JSON
// listing endpoints (no OAuth), which is enough for thread discovery.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewClient creates a Reddit client. baseURL defaults to the public API host
// when empty.
func NewClient(baseURL, userAgent string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://www.reddit.com"
	}
	if strings.TrimSpace(userAgent) == "" {
		userAgent = "threadjuice-ingest/1.0"
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ListingOptions control a subreddit listing query.
type ListingOptions struct {
	Sort  string // hot, top, new; defaults to hot
	Limit int    // max threads to return; provider caps at 100
}

// HotThreads fetches a subreddit listing and converts qualifying threads to
// RawContent. Removed, deleted, and NSFW threads are dropped. A 429 from the
// provider is retried once after the advised delay; a second 429 or any
// server error reports the provider as unavailable.
func (c *Client) HotThreads(ctx context.Context, subreddit string, opts ListingOptions) ([]model.RawContent, error) {
	sort := strings.ToLower(strings.TrimSpace(opts.Sort))
	if sort == "" {
		sort = "hot"
	}
	limit := opts.Limit
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	endpoint := fmt.Sprintf("%s/r/%s/%s.json", c.baseURL, url.PathEscape(subreddit), sort)
	q := url.Values{"limit": {fmt.Sprintf("%d", limit)}, "raw_json": {"1"}}

	body, err := c.getWithRetry(ctx, endpoint+"?"+q.Encode())
	if err != nil {
		return nil, err
	}

	children := gjson.GetBytes(body, "data.children")
	items := make([]model.RawContent, 0, limit)
	children.ForEach(func(_, child gjson.Result) bool {
		d := child.Get("data")
		if skipThread(d) {
			return true
		}
		items = append(items, convertThread(d, subreddit))
		return len(items) < limit
	})
	slog.Info("reddit: fetched listing", "subreddit", subreddit, "sort", sort, "qualifying", len(items))
	return items, nil
}

// getWithRetry performs one GET with a single retry on HTTP 429.
func (c *Client) getWithRetry(ctx context.Context, endpoint string) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		body, retryAfter, err := c.get(ctx, endpoint)
		if err == nil {
			return body, nil
		}
		if retryAfter <= 0 || attempt >= 1 {
			return nil, err
		}
		slog.Warn("reddit: rate limited, backing off", "endpoint", endpoint, "retry_after", retryAfter)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryAfter):
		}
	}
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("reddit: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := 2 * time.Second
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if d, perr := time.ParseDuration(ra + "s"); perr == nil {
				retryAfter = d
			}
		}
		return nil, retryAfter, fmt.Errorf("reddit: status %d", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, 0, fmt.Errorf("reddit: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, 0, nil
}

// skipThread drops removed/deleted/NSFW threads from a listing.
func skipThread(d gjson.Result) bool {
	if d.Get("over_18").Bool() {
		return true
	}
	if d.Get("removed_by_category").String() != "" {
		return true
	}
	body := d.Get("selftext").String()
	if body == "[removed]" || body == "[deleted]" {
		return true
	}
	if d.Get("author").String() == "[deleted]" {
		return true
	}
	return false
}

func convertThread(d gjson.Result, subreddit string) model.RawContent {
	permalink := d.Get("permalink").String()
	u := d.Get("url").String()
	if permalink != "" {
		u = "https://www.reddit.com" + permalink
	}
	return model.RawContent{
		SourceType: model.SourceReddit,
		SourceID:   d.Get("id").String(),
		Title:      d.Get("title").String(),
		Body:       d.Get("selftext").String(),
		Author:     d.Get("author").String(),
		URL:        u,
		Subreddit:  subreddit,
		Metrics: model.SourceMetrics{
			Score:    int(d.Get("score").Int()),
			Comments: int(d.Get("num_comments").Int()),
		},
		CreatedAt: time.Unix(int64(d.Get("created_utc").Float()), 0).UTC(),
		FetchedAt: time.Now().UTC(),
	}
}
