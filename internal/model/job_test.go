package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobStatusCanTransition(t *testing.T) {
	cases := []struct {
		from, to JobStatus
		want     bool
	}{
		{JobPending, JobProcessing, true},
		{JobProcessing, JobCompleted, true},
		{JobProcessing, JobFailed, true},

		// No skipping ahead.
		{JobPending, JobCompleted, false},
		{JobPending, JobFailed, false},

		// No moving backward or out of a terminal state.
		{JobProcessing, JobPending, false},
		{JobCompleted, JobProcessing, false},
		{JobCompleted, JobFailed, false},
		{JobFailed, JobCompleted, false},
		{JobFailed, JobPending, false},

		// No self-loops.
		{JobPending, JobPending, false},
		{JobProcessing, JobProcessing, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestJobStatusTerminal(t *testing.T) {
	assert.False(t, JobPending.Terminal())
	assert.False(t, JobProcessing.Terminal())
	assert.True(t, JobCompleted.Terminal())
	assert.True(t, JobFailed.Terminal())
}
