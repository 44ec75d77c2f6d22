package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"threadjuice/internal/model"
)

// FileSink serializes each story as a self-describing JSON document named
// after its slug. Writes go through a temp file and rename so a reader never
// observes a partial document.
type FileSink struct {
	Dir string
}

func (s *FileSink) Name() string { return "file" }

func (s *FileSink) Write(_ context.Context, story *model.Story) (Result, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("file sink: %w", err)
	}
	b, err := json.MarshalIndent(story, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("file sink: %w", err)
	}
	path := filepath.Join(s.Dir, story.Slug+".json")
	tmp, err := os.CreateTemp(s.Dir, story.Slug+".*.tmp")
	if err != nil {
		return Result{}, fmt.Errorf("file sink: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return Result{}, fmt.Errorf("file sink: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return Result{}, fmt.Errorf("file sink: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return Result{}, fmt.Errorf("file sink: %w", err)
	}
	return Result{ID: story.ID, Location: path}, nil
}
