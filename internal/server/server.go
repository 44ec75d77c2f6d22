// Package server exposes the ingestion service over HTTP: job start/status
// endpoints, orchestrator stats, and a read surface over persisted stories.
package server

import (
	"errors"
	"net/http"
	"strconv"

	"threadjuice/internal/ingest"
	"threadjuice/internal/pipeline"
	"threadjuice/internal/storage"

	"github.com/gin-gonic/gin"
)

// Server wires the HTTP handlers to their collaborators.
type Server struct {
	Ingest       *ingest.Service
	Orchestrator *pipeline.Orchestrator
	Stories      *storage.RedisStore
}

// Router builds the gin engine with all routes mounted under /api.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.POST("/ingest", s.startJob)
	api.GET("/ingest/jobs", s.listJobs)
	api.GET("/ingest/jobs/:id", s.jobStatus)
	api.GET("/stats", s.stats)
	api.GET("/stories", s.listStories)
	api.GET("/stories/:slug", s.storyBySlug)
	return r
}

type startJobRequest struct {
	Subreddits        []string `json:"subreddits"`
	LimitPerSubreddit int      `json:"limit_per_subreddit"`
	MinViralScore     float64  `json:"min_viral_score"`
	MaxAgeHours       int      `json:"max_age_hours"`
	AutoPublish       bool     `json:"auto_publish"`
}

func (s *Server) startJob(c *gin.Context) {
	var req startJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	job, err := s.Ingest.StartIngestionJob(c.Request.Context(), ingest.JobConfig{
		Subreddits:        req.Subreddits,
		LimitPerSubreddit: req.LimitPerSubreddit,
		MinViralScore:     req.MinViralScore,
		MaxAgeHours:       req.MaxAgeHours,
		AutoPublish:       req.AutoPublish,
	})
	if err != nil {
		var ve *ingest.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"job_id": job.ID, "status": job.Status})
}

func (s *Server) jobStatus(c *gin.Context) {
	job, err := s.Ingest.GetJobStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":          job.Status,
		"posts_processed": job.PostsProcessed,
		"posts_created":   job.PostsCreated,
		"logs":            job.Logs,
		"error_message":   job.ErrorMessage,
	})
}

func (s *Server) listJobs(c *gin.Context) {
	jobs, err := s.Ingest.GetAllJobs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (s *Server) stats(c *gin.Context) {
	c.JSON(http.StatusOK, s.Orchestrator.GetStats())
}

func (s *Server) listStories(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	stories, err := s.Stories.RecentStories(c.Request.Context(), c.Query("category"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stories": stories})
}

func (s *Server) storyBySlug(c *gin.Context) {
	story, err := s.Stories.GetStoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if story == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
		return
	}
	c.JSON(http.StatusOK, story)
}
