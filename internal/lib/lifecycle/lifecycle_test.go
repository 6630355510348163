package lifecycle

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition_Whitelist(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		want    string
		wantErr bool
	}{
		{name: "pending to processing", from: Pending, to: Processing, want: Processing},
		{name: "pending to failed", from: Pending, to: Failed, want: Failed},
		{name: "processing to completed", from: Processing, to: Completed, want: Completed},
		{name: "processing to failed", from: Processing, to: Failed, want: Failed},
		{name: "pending to completed is skipped a step", from: Pending, to: Completed, want: Pending, wantErr: true},
		{name: "completed back to pending", from: Completed, to: Pending, want: Completed, wantErr: true},
		{name: "failed to processing", from: Failed, to: Processing, want: Failed, wantErr: true},
		{name: "self transition", from: Pending, to: Pending, want: Pending, wantErr: true},
		{name: "unknown target", from: Pending, to: "Archived", want: Pending, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.from, tt.to)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTransition)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValid(t *testing.T) {
	for _, s := range []string{Pending, Processing, Completed, Failed} {
		assert.True(t, Valid(s), s)
	}
	assert.False(t, Valid("pending"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("Done"))
}

func TestLifecycleProperties(t *testing.T) {
	statuses := []string{Pending, Processing, Completed, Failed}
	genStatus := gen.OneConstOf(Pending, Processing, Completed, Failed)

	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("terminal states admit no transition", prop.ForAll(
		func(to string) bool {
			return !CanTransition(Completed, to) && !CanTransition(Failed, to)
		},
		genStatus,
	))

	properties.Property("every allowed transition moves forward and never leaves a terminal state", prop.ForAll(
		func(from, to string) bool {
			got, err := Transition(from, to)
			if err != nil {
				return got == from
			}
			return got == to && !IsTerminal(from)
		},
		genStatus, genStatus,
	))

	properties.Property("no status chain is longer than two transitions", prop.ForAll(
		func(first, second, third string) bool {
			s := Pending
			hops := 0
			for _, to := range []string{first, second, third} {
				next, err := Transition(s, to)
				if err == nil {
					hops++
				}
				s = next
			}
			return hops <= 2
		},
		genStatus, genStatus, genStatus,
	))

	properties.TestingRun(t)

	// полнота enum: в Valid входят ровно известные статусы
	for _, s := range statuses {
		require.True(t, Valid(s))
	}
}
