package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderStartsLoading(t *testing.T) {
	p := NewProvider()
	assert.Equal(t, State{Status: StatusLoading}, p.Current())
}

func TestProviderSubscribeDeliversCurrentState(t *testing.T) {
	p := NewProvider()
	p.Set(State{Status: StatusAuthenticated, UserID: "user-1"})

	var got []State
	p.Subscribe(func(s State) { got = append(got, s) })

	require.Len(t, got, 1)
	assert.Equal(t, StatusAuthenticated, got[0].Status)
	assert.Equal(t, "user-1", got[0].UserID)
}

func TestProviderNotifiesTransitions(t *testing.T) {
	p := NewProvider()

	var got []State
	p.Subscribe(func(s State) { got = append(got, s) })

	p.Set(State{Status: StatusAuthenticated, UserID: "user-1"})
	p.Set(State{Status: StatusAnonymous})

	require.Len(t, got, 3)
	assert.Equal(t, StatusLoading, got[0].Status)
	assert.Equal(t, StatusAuthenticated, got[1].Status)
	assert.Equal(t, StatusAnonymous, got[2].Status)
}

func TestProviderSkipsNoOpTransitions(t *testing.T) {
	p := NewProvider()

	var calls int
	p.Subscribe(func(State) { calls++ })

	state := State{Status: StatusAuthenticated, UserID: "user-1"}
	p.Set(state)
	p.Set(state)

	assert.Equal(t, 2, calls, "initial delivery plus one transition")
}

func TestProviderUnsubscribe(t *testing.T) {
	p := NewProvider()

	var calls int
	id := p.Subscribe(func(State) { calls++ })
	p.Unsubscribe(id)

	p.Set(State{Status: StatusAnonymous})
	assert.Equal(t, 1, calls)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "authenticated", StatusAuthenticated.String())
	assert.Equal(t, "anonymous", StatusAnonymous.String())
}
