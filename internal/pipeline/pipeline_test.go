package pipeline

import (
	"context"
	"errors"
	"testing"

	"threadjuice/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedStage(name string, order *[]string, err error) Stage {
	return StageFunc{StageName: name, Fn: func(_ context.Context, _ *Context) error {
		*order = append(*order, name)
		return err
	}}
}

func TestPipelineRunsStagesInOrder(t *testing.T) {
	var order []string
	p := New("test", Options{}).
		Pipe(namedStage("a", &order, nil)).
		Pipe(namedStage("b", &order, nil)).
		Pipe(namedStage("c", &order, nil))

	_, err := p.Execute(context.Background(), NewContext(model.RawContent{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestPipelineAbortsOnError(t *testing.T) {
	var order []string
	boom := errors.New("boom")
	p := New("test", Options{}).
		Pipe(namedStage("a", &order, nil)).
		Pipe(namedStage("b", &order, boom)).
		Pipe(namedStage("c", &order, nil))

	_, err := p.Execute(context.Background(), NewContext(model.RawContent{}))
	require.Error(t, err)
	assert.Equal(t, []string{"a", "b"}, order, "stages after the failure must not run")

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "b", se.Stage)
	assert.ErrorIs(t, err, boom)
}

func TestPipelineContinueOnError(t *testing.T) {
	var order []string
	boom := errors.New("boom")
	p := New("test", Options{ContinueOnError: true}).
		Pipe(namedStage("a", &order, boom)).
		Pipe(namedStage("b", &order, nil))

	pc, err := p.Execute(context.Background(), NewContext(model.RawContent{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, order)
	require.Len(t, pc.Errors, 1)
	assert.Equal(t, "a", pc.Errors[0].Stage)
}

func TestPipelineSkipHaltsRemainingStages(t *testing.T) {
	var order []string
	p := New("test", Options{}).
		Pipe(namedStage("a", &order, nil)).
		Pipe(StageFunc{StageName: "filter", Fn: func(_ context.Context, pc *Context) error {
			pc.Skip("below threshold")
			return nil
		}}).
		Pipe(namedStage("c", &order, nil))

	pc, err := p.Execute(context.Background(), NewContext(model.RawContent{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, order)
	assert.True(t, pc.Skipped)
	assert.Equal(t, "below threshold", pc.SkipReason)
}

func TestOrchestratorUnknownPreset(t *testing.T) {
	o := NewOrchestrator()
	_, err := o.Execute(context.Background(), "nope", NewContext(model.RawContent{}))
	assert.ErrorIs(t, err, ErrUnknownPipeline)
}

func TestOrchestratorStats(t *testing.T) {
	o := NewOrchestrator()
	o.Register("good", func() *Pipeline {
		return New("good", Options{}).Pipe(StageFunc{StageName: "ok", Fn: func(_ context.Context, _ *Context) error {
			return nil
		}})
	})
	o.Register("bad", func() *Pipeline {
		return New("bad", Options{}).Pipe(StageFunc{StageName: "fail", Fn: func(_ context.Context, _ *Context) error {
			return errors.New("boom")
		}})
	})

	_, err := o.Execute(context.Background(), "good", NewContext(model.RawContent{}))
	require.NoError(t, err)
	_, err = o.Execute(context.Background(), "good", NewContext(model.RawContent{}))
	require.NoError(t, err)
	_, err = o.Execute(context.Background(), "bad", NewContext(model.RawContent{}))
	require.Error(t, err)

	stats := o.GetStats()
	assert.Equal(t, 3, stats.Runs)
	assert.Equal(t, 2, stats.Successes)
	assert.Equal(t, 1, stats.Failures)
	assert.Equal(t, PresetStats{Runs: 2, Successes: 2}, stats.Presets["good"])
	assert.Equal(t, PresetStats{Runs: 1, Failures: 1}, stats.Presets["bad"])
}

func TestOrchestratorCountsRecordedStageErrorsAsFailures(t *testing.T) {
	o := NewOrchestrator()
	o.Register("besteffort", func() *Pipeline {
		return New("besteffort", Options{ContinueOnError: true}).
			Pipe(StageFunc{StageName: "fail", Fn: func(_ context.Context, _ *Context) error {
				return errors.New("boom")
			}})
	})
	_, err := o.Execute(context.Background(), "besteffort", NewContext(model.RawContent{}))
	require.NoError(t, err, "continue-on-error pipelines do not abort")
	assert.Equal(t, 1, o.GetStats().Failures, "recorded stage errors still count as a failed run")
}

func TestOrchestratorPresets(t *testing.T) {
	o := NewOrchestrator()
	o.Register("one", func() *Pipeline { return New("one", Options{}) })
	o.Register("two", func() *Pipeline { return New("two", Options{}) })
	assert.ElementsMatch(t, []string{"one", "two"}, o.Presets())
}
