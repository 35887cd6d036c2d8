package intent

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsAllowedTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{Running, AwaitingResolution, true},
		{Running, Done, true},
		{Running, Recovering, true},
		{Running, Failed, false},
		{AwaitingResolution, Running, true},
		{AwaitingResolution, Recovering, true},
		{AwaitingResolution, Done, false},
		{Recovering, Done, true},
		{Recovering, Failed, true},
		{Recovering, Running, false},
		{Done, Running, false},
		{Failed, Recovering, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			require.Equal(t, tt.want, isAllowedTransition(tt.from, tt.to))
		})
	}
}

func TestMachine_PanicsOnDisallowedTransition(t *testing.T) {
	m := &machine{}
	m.to(Done)
	require.True(t, m.state.IsTerminal())
	require.Panics(t, func() { m.to(Running) })
}

func TestState_String(t *testing.T) {
	require.Equal(t, "awaiting-resolution", AwaitingResolution.String())
	require.Equal(t, "unknown", State(42).String())
}
