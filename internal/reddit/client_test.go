package reddit

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"threadjuice/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingBody = `{
  "data": {
    "children": [
      {"data": {"id": "aa1", "title": "TIFU by shipping on Friday", "selftext": "It was fine until it wasn't.", "author": "dev1", "permalink": "/r/tifu/comments/aa1/", "score": 1200, "num_comments": 340, "created_utc": 1756650000, "over_18": false}},
      {"data": {"id": "aa2", "title": "NSFW thread", "selftext": "body", "author": "dev2", "score": 9000, "num_comments": 10, "created_utc": 1756650000, "over_18": true}},
      {"data": {"id": "aa3", "title": "Removed thread", "selftext": "[removed]", "author": "dev3", "score": 50, "num_comments": 2, "created_utc": 1756650000}},
      {"data": {"id": "aa4", "title": "Mod removed", "selftext": "body", "author": "dev4", "removed_by_category": "moderator", "score": 70, "num_comments": 3, "created_utc": 1756650000}},
      {"data": {"id": "aa5", "title": "Deleted author", "selftext": "body", "author": "[deleted]", "score": 10, "num_comments": 1, "created_utc": 1756650000}},
      {"data": {"id": "aa6", "title": "Second good thread", "selftext": "Something happened.", "author": "dev6", "permalink": "/r/tifu/comments/aa6/", "score": 300, "num_comments": 40, "created_utc": 1756650000}}
    ]
  }
}`

func TestHotThreadsFiltersAndConverts(t *testing.T) {
	var gotPath, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, listingBody)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-agent/1.0")
	items, err := c.HotThreads(context.Background(), "tifu", ListingOptions{Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, "/r/tifu/hot.json", gotPath)
	assert.Equal(t, "test-agent/1.0", gotUA)

	require.Len(t, items, 2, "nsfw, removed, and deleted threads are dropped")
	first := items[0]
	assert.Equal(t, model.SourceReddit, first.SourceType)
	assert.Equal(t, "aa1", first.SourceID)
	assert.Equal(t, "TIFU by shipping on Friday", first.Title)
	assert.Equal(t, "dev1", first.Author)
	assert.Equal(t, "tifu", first.Subreddit)
	assert.Equal(t, "https://www.reddit.com/r/tifu/comments/aa1/", first.URL)
	assert.Equal(t, 1200, first.Metrics.Score)
	assert.Equal(t, 340, first.Metrics.Comments)
	assert.Equal(t, time.Unix(1756650000, 0).UTC(), first.CreatedAt)
	assert.Equal(t, "aa6", items[1].SourceID)
}

func TestHotThreadsRespectsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listingBody)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	items, err := c.HotThreads(context.Background(), "tifu", ListingOptions{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestHotThreadsSortSelection(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"data":{"children":[]}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.HotThreads(context.Background(), "tifu", ListingOptions{Sort: "Top"})
	require.NoError(t, err)
	assert.Equal(t, "/r/tifu/top.json", gotPath)
}

func TestHotThreadsRetriesOnceOn429(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, listingBody)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	items, err := c.HotThreads(context.Background(), "tifu", ListingOptions{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
	assert.NotEmpty(t, items)
}

func TestHotThreadsGivesUpOnRepeated429(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.HotThreads(context.Background(), "tifu", ListingOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestHotThreadsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.HotThreads(context.Background(), "tifu", ListingOptions{})
	require.Error(t, err)
}
