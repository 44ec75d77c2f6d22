package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"threadjuice/internal/analysis"
	"threadjuice/internal/ingest"
	"threadjuice/internal/model"
	"threadjuice/internal/output"
	"threadjuice/internal/pipeline"
	"threadjuice/internal/source"
	"threadjuice/internal/transform"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubSource struct{ items []model.RawContent }

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(context.Context, source.Config) ([]model.RawContent, error) {
	return s.items, nil
}

type discardSink struct{}

func (discardSink) Name() string { return "discard" }

func (discardSink) Write(_ context.Context, story *model.Story) (output.Result, error) {
	return output.Result{ID: story.ID, Location: "discard://" + story.Slug}, nil
}

func newTestServer(items ...model.RawContent) *Server {
	orch := pipeline.NewOrchestrator()
	ingest.RegisterPresets(orch, ingest.PipelineDeps{
		Analyzer:    analysis.New(),
		Transformer: transform.New(nil),
		Sink:        discardSink{},
	})
	svc := ingest.NewService(&stubSource{items: items}, orch, ingest.NewMemoryStore())
	svc.ItemDelay = 0
	return &Server{Ingest: svc, Orchestrator: orch}
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	}
	return w, decoded
}

func TestStartJobAccepted(t *testing.T) {
	srv := newTestServer()
	router := srv.Router()

	w, body := doJSON(t, router, http.MethodPost, "/api/ingest",
		`{"subreddits":["tifu"],"limit_per_subreddit":3,"min_viral_score":2,"max_age_hours":24}`)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.NotEmpty(t, body["job_id"])
	assert.Equal(t, string(model.JobPending), body["status"])
}

func TestStartJobValidationError(t *testing.T) {
	srv := newTestServer()
	router := srv.Router()

	w, body := doJSON(t, router, http.MethodPost, "/api/ingest",
		`{"subreddits":[],"limit_per_subreddit":3,"min_viral_score":2,"max_age_hours":24}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"], "subreddits")
}

func TestStartJobMalformedBody(t *testing.T) {
	srv := newTestServer()
	w, body := doJSON(t, srv.Router(), http.MethodPost, "/api/ingest", `{"subreddits": not-json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid request body", body["error"])
}

func TestJobStatusNotFound(t *testing.T) {
	srv := newTestServer()
	w, body := doJSON(t, srv.Router(), http.MethodGet, "/api/ingest/jobs/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "job not found", body["error"])
}

func TestJobLifecycleOverHTTP(t *testing.T) {
	item := model.RawContent{
		SourceType: model.SourceReddit,
		SourceID:   "h1",
		Title:      "The thread everyone is arguing about",
		Body:       "Then it escalated into absolute chaos!",
		Subreddit:  "tifu",
		Metrics:    model.SourceMetrics{Score: 5000, Comments: 900},
		CreatedAt:  time.Now().UTC(),
	}
	srv := newTestServer(item)
	router := srv.Router()

	w, body := doJSON(t, router, http.MethodPost, "/api/ingest",
		`{"subreddits":["tifu"],"limit_per_subreddit":3,"min_viral_score":1,"max_age_hours":24}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	id, ok := body["job_id"].(string)
	require.True(t, ok)

	require.Eventually(t, func() bool {
		w, body := doJSON(t, router, http.MethodGet, "/api/ingest/jobs/"+id, "")
		return w.Code == http.StatusOK && body["status"] == string(model.JobCompleted)
	}, 2*time.Second, 10*time.Millisecond)

	w, body = doJSON(t, router, http.MethodGet, "/api/ingest/jobs/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["posts_processed"])
	assert.Equal(t, float64(1), body["posts_created"])

	w, body = doJSON(t, router, http.MethodGet, "/api/ingest/jobs", "")
	require.Equal(t, http.StatusOK, w.Code)
	jobs, ok := body["jobs"].([]any)
	require.True(t, ok)
	assert.Len(t, jobs, 1)

	w, stats := doJSON(t, router, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), stats["runs"])
	assert.Equal(t, float64(1), stats["successes"])
}
