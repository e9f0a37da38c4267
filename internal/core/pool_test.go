package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pairline/pairline/internal/domain"
)

func TestWaitingPool_Enqueue_Duplicate_Is_Noop(t *testing.T) {
	req := require.New(t)
	pool := NewWaitingPool()

	// When the same connection joins twice
	pool.Enqueue("a", domain.RoleSeeker, "Ann")
	pool.Enqueue("a", domain.RoleSeeker, "Ann")

	// Then the pool holds a single entry
	req.Equal(1, pool.Len())
	req.True(pool.Contains("a"))
}

func TestWaitingPool_DequeueMatch_Prefers_Longest_Waiting(t *testing.T) {
	req := require.New(t)
	pool := NewWaitingPool()

	// Given two listeners queued in order
	pool.Enqueue("a", domain.RoleListener, "Ann")
	pool.Enqueue("b", domain.RoleListener, "Bob")
	pool.Enqueue("c", domain.RoleSeeker, "Cid")

	// When a seeker asks for a match
	entry, ok := pool.DequeueMatch("c", domain.RoleSeeker)

	// Then the earliest-joined listener wins
	req.True(ok)
	req.Equal(domain.ConnID("a"), entry.ID)
	req.Equal("Ann", entry.Name)

	// And both parties left the pool together
	req.False(pool.Contains("a"))
	req.False(pool.Contains("c"))
	req.Equal(1, pool.Len())
	req.True(pool.Contains("b"))
}

func TestWaitingPool_DequeueMatch_Skips_Same_Role_And_Self(t *testing.T) {
	req := require.New(t)
	pool := NewWaitingPool()

	pool.Enqueue("a", domain.RoleSeeker, "Ann")
	pool.Enqueue("b", domain.RoleSeeker, "Bob")

	// When a queued seeker asks for a match among seekers only
	_, ok := pool.DequeueMatch("a", domain.RoleSeeker)

	// Then no match is found and the requester stays queued
	req.False(ok)
	req.True(pool.Contains("a"))
	req.Equal(2, pool.Len())
}

func TestWaitingPool_DequeueMatch_Requester_Not_Queued(t *testing.T) {
	req := require.New(t)
	pool := NewWaitingPool()

	// Given only the counterpart is queued
	pool.Enqueue("a", domain.RoleListener, "Ann")

	// When an unqueued seeker asks for a match
	entry, ok := pool.DequeueMatch("z", domain.RoleSeeker)

	// Then the pair forms and the pool empties
	req.True(ok)
	req.Equal(domain.ConnID("a"), entry.ID)
	req.Equal(0, pool.Len())
}

func TestWaitingPool_PushFront_Restores_Seniority(t *testing.T) {
	req := require.New(t)
	pool := NewWaitingPool()

	// Given an older listener is already waiting
	pool.Enqueue("b", domain.RoleListener, "Bob")

	// When a previously dequeued entry is given back
	pool.PushFront(PoolEntry{ID: "a", Role: domain.RoleListener, Name: "Ann"})

	// Then it is served ahead of the rest of the queue
	entry, ok := pool.DequeueMatch("z", domain.RoleSeeker)
	req.True(ok)
	req.Equal(domain.ConnID("a"), entry.ID)

	// And restoring an already-pooled connection is a no-op
	pool.PushFront(PoolEntry{ID: "b", Role: domain.RoleListener, Name: "Bob"})
	req.Equal(1, pool.Len())
}

func TestWaitingPool_Remove_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	pool := NewWaitingPool()

	pool.Enqueue("a", domain.RoleSeeker, "Ann")
	pool.Remove("a")
	pool.Remove("a")

	req.Equal(0, pool.Len())
	req.False(pool.Contains("a"))
}
