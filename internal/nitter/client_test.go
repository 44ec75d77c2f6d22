package nitter

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"threadjuice/internal/model"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
<channel>
<title>Search / nitter</title>
<link>https://nitter.net/search</link>
<description>drama search</description>
<item>
<title>the audacity of this guy</title>
<dc:creator>@dramaqueen</dc:creator>
<description>&lt;p&gt;the audacity of this guy, receipts in the replies&lt;/p&gt;</description>
<pubDate>Mon, 01 Sep 2025 10:00:00 GMT</pubDate>
<guid>https://nitter.net/dramaqueen/status/1234567890#m</guid>
<link>https://nitter.net/dramaqueen/status/1234567890#m</link>
</item>
<item>
<title>no id here</title>
<description>&lt;p&gt;body&lt;/p&gt;</description>
<guid>https://nitter.net/about</guid>
<link>https://nitter.net/about</link>
</item>
<item>
<title>second tweet</title>
<dc:creator>@other</dc:creator>
<description>&lt;p&gt;i can't believe this thread&lt;/p&gt;</description>
<pubDate>Mon, 01 Sep 2025 09:00:00 GMT</pubDate>
<guid>https://nitter.net/other/status/999#m</guid>
<link>https://nitter.net/other/status/999#m</link>
</item>
</channel>
</rss>`

func TestSearchFeed(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, searchFeed)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	items, err := c.SearchFeed(context.Background(), "the audacity", 10)
	require.NoError(t, err)

	assert.Equal(t, "/search/rss", gotPath)
	assert.Equal(t, "the audacity", gotQuery)

	require.Len(t, items, 2, "items without a status id are dropped")
	first := items[0]
	assert.Equal(t, model.SourceTwitter, first.SourceType)
	assert.Equal(t, "1234567890", first.SourceID)
	assert.Equal(t, "the audacity of this guy", first.Title)
	assert.Equal(t, "the audacity of this guy, receipts in the replies", first.Body)
	assert.Equal(t, "dramaqueen", first.Author)
	assert.Equal(t, 2025, first.CreatedAt.Year())
	assert.Equal(t, "999", items[1].SourceID)
}

func TestSearchFeedLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, searchFeed)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	items, err := c.SearchFeed(context.Background(), "anything", 1)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestUserFeedPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, searchFeed)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.UserFeed(context.Background(), "@dramaqueen", 5)
	require.NoError(t, err)
	assert.Equal(t, "/dramaqueen/rss", gotPath)
}

func TestFeedServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.SearchFeed(context.Background(), "anything", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestTweetIDExtraction(t *testing.T) {
	assert.Equal(t, "", tweetID(&gofeed.Item{GUID: "https://nitter.net/about"}))
	assert.Equal(t, "42", tweetID(&gofeed.Item{GUID: "https://nitter.net/u/status/42#m"}))
	assert.Equal(t, "42", tweetID(&gofeed.Item{Link: "https://nitter.net/u/status/42"}))
}
