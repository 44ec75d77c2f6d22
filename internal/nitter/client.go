package nitter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"threadjuice/internal/model"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// Client reads tweet threads through a Nitter instance's RSS feeds. Nitter
// has no JSON API, but every timeline and search page has an RSS mirror.
type Client struct {
	baseURL string
	client  *http.Client
	parser  *gofeed.Parser
}

// NewClient creates a Nitter client for the given instance base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		parser:  gofeed.NewParser(),
	}
}

// SearchFeed fetches the RSS mirror of a Nitter search and converts items to
// RawContent, capped at limit. Retweet/like counts are not exposed over RSS,
// so metrics stay zero for twitter-sourced content.
func (c *Client) SearchFeed(ctx context.Context, query string, limit int) ([]model.RawContent, error) {
	if limit <= 0 {
		limit = 20
	}
	endpoint := fmt.Sprintf("%s/search/rss?%s", c.baseURL, url.Values{"q": {query}}.Encode())
	return c.fetchFeed(ctx, endpoint, limit)
}

// UserFeed fetches the RSS mirror of one account's timeline.
func (c *Client) UserFeed(ctx context.Context, handle string, limit int) ([]model.RawContent, error) {
	if limit <= 0 {
		limit = 20
	}
	endpoint := fmt.Sprintf("%s/%s/rss", c.baseURL, url.PathEscape(strings.TrimPrefix(handle, "@")))
	return c.fetchFeed(ctx, endpoint, limit)
}

func (c *Client) fetchFeed(ctx context.Context, endpoint string, limit int) ([]model.RawContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nitter: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("nitter: status %d", resp.StatusCode)
	}
	feed, err := c.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("nitter: parse feed: %w", err)
	}

	items := make([]model.RawContent, 0, limit)
	for _, it := range feed.Items {
		if len(items) >= limit {
			break
		}
		rc := convertItem(it)
		if rc.SourceID == "" || strings.TrimSpace(rc.Body) == "" {
			continue
		}
		items = append(items, rc)
	}
	slog.Info("nitter: fetched feed", "endpoint", endpoint, "items", len(items))
	return items, nil
}

func convertItem(it *gofeed.Item) model.RawContent {
	author := ""
	if it.DublinCoreExt != nil && len(it.DublinCoreExt.Creator) > 0 {
		author = strings.TrimPrefix(it.DublinCoreExt.Creator[0], "@")
	}
	body := htmlToText(it.Description)
	created := time.Now().UTC()
	if it.PublishedParsed != nil {
		created = it.PublishedParsed.UTC()
	}
	return model.RawContent{
		SourceType: model.SourceTwitter,
		SourceID:   tweetID(it),
		Title:      strings.TrimSpace(it.Title),
		Body:       body,
		Author:     author,
		URL:        it.Link,
		Metrics:    model.SourceMetrics{},
		CreatedAt:  created,
		FetchedAt:  time.Now().UTC(),
	}
}

// tweetID pulls the numeric status id out of the item GUID or link,
// e.g. https://nitter.net/user/status/1234567890#m -> 1234567890.
func tweetID(it *gofeed.Item) string {
	ref := it.GUID
	if ref == "" {
		ref = it.Link
	}
	ref = strings.TrimSuffix(ref, "#m")
	if i := strings.LastIndex(ref, "/status/"); i >= 0 {
		return ref[i+len("/status/"):]
	}
	return ""
}

// htmlToText strips markup from an RSS description, keeping visible text.
func htmlToText(h string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(h))
	if err != nil {
		return strings.TrimSpace(h)
	}
	return strings.TrimSpace(doc.Text())
}
