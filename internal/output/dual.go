package output

import (
	"context"
	"strings"

	"threadjuice/internal/model"
)

// DualSink writes to every wrapped sink. It succeeds only when all writes
// succeed; otherwise it returns a PartialWriteError naming the sinks that
// failed, so a database failure is never swallowed because a file write
// worked.
type DualSink struct {
	Sinks []Sink
}

func (s *DualSink) Name() string { return "dual" }

func (s *DualSink) Write(ctx context.Context, story *model.Story) (Result, error) {
	var ok []string
	var locations []string
	failed := map[string]error{}
	id := ""
	for _, sink := range s.Sinks {
		res, err := sink.Write(ctx, story)
		if err != nil {
			failed[sink.Name()] = err
			continue
		}
		ok = append(ok, sink.Name())
		locations = append(locations, res.Location)
		if id == "" {
			id = res.ID
		}
	}
	if len(failed) > 0 {
		return Result{ID: id, Location: strings.Join(locations, ",")},
			&PartialWriteError{Succeeded: ok, Failed: failed}
	}
	return Result{ID: id, Location: strings.Join(locations, ",")}, nil
}
