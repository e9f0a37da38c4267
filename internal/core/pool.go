package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/pairline/pairline/internal/domain"
)

// PoolEntry is the identity tuple copied into the pool at join time.
type PoolEntry struct {
	ID   domain.ConnID
	Role domain.Role
	Name string
}

// WaitingPool is the ordered set of participants waiting for a match.
// Insertion order is the fairness order: the longest-waiting compatible
// participant always wins.
type WaitingPool struct {
	mu      sync.Mutex
	entries []PoolEntry
}

func NewWaitingPool() *WaitingPool {
	return &WaitingPool{}
}

// Enqueue inserts at the tail. A duplicate join intent is a no-op, never
// a second entry.
func (p *WaitingPool) Enqueue(id domain.ConnID, role domain.Role, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.entries {
		if e.ID == id {
			return
		}
	}
	p.entries = append(p.entries, PoolEntry{ID: id, Role: role, Name: name})
	log.Info().Str("module", "core.pool").Str("conn", string(id)).
		Str("role", string(role)).Int("waiting", len(p.entries)).Msg("enqueued")
}

// DequeueMatch scans in insertion order for the first entry whose role
// differs from requestingRole and whose ConnID differs from id. On a hit
// it removes both the match and the requester (if queued) in one step,
// so no caller ever observes a half-removed pair. A miss is not an
// error: the requester simply stays queued.
func (p *WaitingPool) DequeueMatch(id domain.ConnID, requestingRole domain.Role) (PoolEntry, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.entries {
		if e.Role != requestingRole && e.ID != id {
			p.drop(e.ID)
			p.drop(id)
			log.Info().Str("module", "core.pool").Str("conn", string(id)).
				Str("match", string(e.ID)).Int("waiting", len(p.entries)).Msg("pair dequeued")
			return e, true
		}
	}
	return PoolEntry{}, false
}

// PushFront restores an entry at the head of the queue, ahead of every
// waiter. Used when a dequeued entry has to be given back without
// costing it its place. No-op if the connection is already pooled.
func (p *WaitingPool) PushFront(e PoolEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, existing := range p.entries {
		if existing.ID == e.ID {
			return
		}
	}
	p.entries = append([]PoolEntry{e}, p.entries...)
	log.Info().Str("module", "core.pool").Str("conn", string(e.ID)).
		Int("waiting", len(p.entries)).Msg("restored at head")
}

// Remove drops the entry if present; idempotent.
func (p *WaitingPool) Remove(id domain.ConnID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.drop(id)
}

func (p *WaitingPool) drop(id domain.ConnID) {
	for i, e := range p.entries {
		if e.ID == id {
			p.entries = append(p.entries[:i], p.entries[i+1:]...)
			return
		}
	}
}

func (p *WaitingPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// Contains reports pool membership; used by tests and defensive checks.
func (p *WaitingPool) Contains(id domain.ConnID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.entries {
		if e.ID == id {
			return true
		}
	}
	return false
}
