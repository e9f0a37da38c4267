package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/pairline/pairline/internal/domain"
)

type regEntry struct {
	participant domain.Participant
	conn        SignalConnection
}

// Registry tracks every currently connected participant and exclusively
// owns their records. Other components refer to participants by ConnID.
type Registry struct {
	mu      sync.RWMutex
	entries map[domain.ConnID]*regEntry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[domain.ConnID]*regEntry)}
}

// Register adds a record with empty identity; called on connect.
func (r *Registry) Register(id domain.ConnID, conn SignalConnection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = &regEntry{
		participant: domain.Participant{ID: id},
		conn:        conn,
	}
	log.Info().Str("module", "core.registry").Str("conn", string(id)).Msg("registered")
}

// SetIdentity applies the join-time display name and role.
func (r *Registry) SetIdentity(id domain.ConnID, name string, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return domain.ErrNotRegistered
	}
	if err := e.participant.SetIdentity(name, role); err != nil {
		return err
	}
	log.Info().Str("module", "core.registry").Str("conn", string(id)).
		Str("name", name).Str("role", string(role)).Msg("identity set")
	return nil
}

// Unregister removes the record. Idempotent: disconnect races must not
// crash the system.
func (r *Registry) Unregister(id domain.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
	log.Info().Str("module", "core.registry").Str("conn", string(id)).Msg("unregistered")
}

func (r *Registry) Get(id domain.ConnID) (domain.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.entries[id]; ok {
		return e.participant, true
	}
	return domain.Participant{}, false
}

func (r *Registry) Conn(id domain.ConnID) (SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.entries[id]; ok {
		return e.conn, true
	}
	return nil, false
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Conns snapshots every live connection, for the userCount broadcast.
func (r *Registry) Conns() []SignalConnection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]SignalConnection, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.conn)
	}
	return out
}
