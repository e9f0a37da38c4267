package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pairline/pairline/internal/domain"
)

func TestSessionRouter_Create_And_Counterpart(t *testing.T) {
	req := require.New(t)
	r := NewSessionRouter()

	req.NoError(r.Create("a", "b"))

	other, err := r.Counterpart("a")
	req.NoError(err)
	req.Equal(domain.ConnID("b"), other)

	other, err = r.Counterpart("b")
	req.NoError(err)
	req.Equal(domain.ConnID("a"), other)
}

func TestSessionRouter_Create_Rejects_Busy_Party(t *testing.T) {
	req := require.New(t)
	r := NewSessionRouter()
	req.NoError(r.Create("a", "b"))

	req.ErrorIs(r.Create("a", "c"), domain.ErrAlreadyInSession)
	req.ErrorIs(r.Create("c", "b"), domain.ErrAlreadyInSession)
}

func TestSessionRouter_Counterpart_Without_Session(t *testing.T) {
	req := require.New(t)
	r := NewSessionRouter()

	_, err := r.Counterpart("a")

	req.ErrorIs(err, domain.ErrNoActiveSession)
}

func TestSessionRouter_Call_State_Machine(t *testing.T) {
	req := require.New(t)
	r := NewSessionRouter()
	req.NoError(r.Create("a", "b"))

	// Accept before any offer is stale and ignored
	_, deliver, err := r.Signal("b", CallAccept)
	req.NoError(err)
	req.False(deliver)

	// Offer rings the counterpart
	other, deliver, err := r.Signal("a", CallOffer)
	req.NoError(err)
	req.True(deliver)
	req.Equal(domain.ConnID("b"), other)
	state, ok := r.State("a")
	req.True(ok)
	req.Equal(CallRinging, state)

	// Accept answers the ring
	other, deliver, err = r.Signal("b", CallAccept)
	req.NoError(err)
	req.True(deliver)
	req.Equal(domain.ConnID("a"), other)
	state, _ = r.State("b")
	req.Equal(CallActive, state)

	// End is always valid and resets to idle
	_, deliver, err = r.Signal("a", CallEnd)
	req.NoError(err)
	req.True(deliver)
	state, _ = r.State("a")
	req.Equal(CallIdle, state)
}

func TestSessionRouter_Decline_Resets_Ring(t *testing.T) {
	req := require.New(t)
	r := NewSessionRouter()
	req.NoError(r.Create("a", "b"))

	_, _, err := r.Signal("a", CallOffer)
	req.NoError(err)

	_, deliver, err := r.Signal("b", CallDecline)
	req.NoError(err)
	req.True(deliver)
	state, _ := r.State("a")
	req.Equal(CallIdle, state)

	// A second decline is stale
	_, deliver, err = r.Signal("b", CallDecline)
	req.NoError(err)
	req.False(deliver)
}

func TestSessionRouter_Signal_Without_Session(t *testing.T) {
	req := require.New(t)
	r := NewSessionRouter()

	_, _, err := r.Signal("a", CallOffer)

	req.ErrorIs(err, domain.ErrNoActiveSession)
}

func TestSessionRouter_End_Is_Idempotent_For_Both(t *testing.T) {
	req := require.New(t)
	r := NewSessionRouter()
	req.NoError(r.Create("a", "b"))

	other, ended := r.End("a")
	req.True(ended)
	req.Equal(domain.ConnID("b"), other)

	// Both mappings are gone after a single End
	_, ended = r.End("a")
	req.False(ended)
	_, ended = r.End("b")
	req.False(ended)
	_, err := r.Counterpart("b")
	req.ErrorIs(err, domain.ErrNoActiveSession)
}
