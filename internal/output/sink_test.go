package output

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"threadjuice/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStory() *model.Story {
	return &model.Story{
		ID:       "story-1",
		Slug:     "tifu-by-testing",
		Title:    "TIFU by testing",
		Category: "fails",
		Persona:  "The Snarky Sage",
		Status:   model.StatusDraft,
		Content: model.StoryContent{Sections: []model.Section{
			{Type: model.SectionParagraph, Content: "It all went wrong quickly."},
		}},
		SourceType: model.SourceReddit,
		SourceID:   "abc",
		ViralScore: 4.2,
	}
}

type failSink struct{ err error }

func (s *failSink) Name() string { return "fail" }

func (s *failSink) Write(context.Context, *model.Story) (Result, error) {
	return Result{}, s.err
}

func TestFileSinkWritesDocument(t *testing.T) {
	dir := t.TempDir()
	sink := &FileSink{Dir: dir}

	res, err := sink.Write(context.Background(), testStory())
	require.NoError(t, err)
	assert.Equal(t, "story-1", res.ID)
	assert.Equal(t, filepath.Join(dir, "tifu-by-testing.json"), res.Location)

	b, err := os.ReadFile(res.Location)
	require.NoError(t, err)
	var got model.Story
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "TIFU by testing", got.Title)
	assert.Equal(t, model.SectionParagraph, got.Content.Sections[0].Type)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileSinkCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	sink := &FileSink{Dir: dir}
	_, err := sink.Write(context.Background(), testStory())
	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestFileSinkOverwritesSameSlug(t *testing.T) {
	dir := t.TempDir()
	sink := &FileSink{Dir: dir}
	story := testStory()
	_, err := sink.Write(context.Background(), story)
	require.NoError(t, err)

	story.Title = "TIFU by testing, updated"
	res, err := sink.Write(context.Background(), story)
	require.NoError(t, err)

	b, err := os.ReadFile(res.Location)
	require.NoError(t, err)
	assert.Contains(t, string(b), "updated")
}

func TestDualSinkAllSucceed(t *testing.T) {
	dir := t.TempDir()
	dual := &DualSink{Sinks: []Sink{
		&FileSink{Dir: filepath.Join(dir, "a")},
		&FileSink{Dir: filepath.Join(dir, "b")},
	}}
	res, err := dual.Write(context.Background(), testStory())
	require.NoError(t, err)
	assert.Equal(t, "story-1", res.ID)
	assert.Contains(t, res.Location, ",", "location lists every destination")
}

func TestDualSinkPartialFailure(t *testing.T) {
	boom := errors.New("connection refused")
	dual := &DualSink{Sinks: []Sink{
		&failSink{err: boom},
		&FileSink{Dir: t.TempDir()},
	}}
	res, err := dual.Write(context.Background(), testStory())
	require.Error(t, err)

	var pw *PartialWriteError
	require.ErrorAs(t, err, &pw)
	assert.Equal(t, []string{"file"}, pw.Succeeded)
	require.Contains(t, pw.Failed, "fail")
	assert.ErrorIs(t, pw.Failed["fail"], boom)

	// The successful write still happened and is reported.
	assert.NotEmpty(t, res.Location)
}

func TestDualSinkAllFail(t *testing.T) {
	dual := &DualSink{Sinks: []Sink{
		&failSink{err: errors.New("one")},
		&failSink{err: errors.New("two")},
	}}
	_, err := dual.Write(context.Background(), testStory())
	var pw *PartialWriteError
	require.ErrorAs(t, err, &pw)
	assert.Empty(t, pw.Succeeded)
	assert.Len(t, pw.Failed, 2)
}
