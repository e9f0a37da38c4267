package app

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pairline/pairline/internal/core"
	"github.com/pairline/pairline/internal/domain"
	"github.com/pairline/pairline/internal/protocol"
)

// Orchestrator is the single coordinating unit that owns all mutable
// matchmaking state. Every inbound event runs to completion under one
// lock, which is what makes the dequeue-and-pair step atomic: two
// concurrent findMatch attempts can never both claim the same pool
// entry.
type Orchestrator struct {
	mu       sync.Mutex
	Registry *core.Registry
	Pool     *core.WaitingPool
	Sessions *core.SessionRouter
}

func NewOrchestrator() *Orchestrator {
	return &Orchestrator{
		Registry: core.NewRegistry(),
		Pool:     core.NewWaitingPool(),
		Sessions: core.NewSessionRouter(),
	}
}

// Connect registers a fresh connection with empty identity.
func (o *Orchestrator) Connect(id domain.ConnID, conn core.SignalConnection) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Registry.Register(id, conn)
	o.broadcastUserCount()
}

// Join applies the declared identity and enqueues the participant into
// the waiting pool. A repeated join is harmless: the pool ignores
// duplicates.
func (o *Orchestrator) Join(id domain.ConnID, name string, role domain.Role) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.Registry.SetIdentity(id, name, role); err != nil {
		return err
	}
	// The pool only ever holds unmatched participants. A re-join from a
	// matched connection may still refresh its identity, but must not
	// plant a stale entry a third party could dequeue.
	if _, err := o.Sessions.Counterpart(id); err == nil {
		log.Warn().Str("module", "app").Str("conn", string(id)).Msg("join while in session, not enqueued")
		return nil
	}
	o.Pool.Enqueue(id, role, name)
	o.broadcastUserCount()
	return nil
}

// FindMatch pairs the requester with the longest-waiting opposite-role
// participant. Returns false when nobody compatible is waiting; the
// requester simply stays queued.
func (o *Orchestrator) FindMatch(id domain.ConnID, role domain.Role) (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, err := o.Sessions.Counterpart(id); err == nil {
		return false, domain.ErrAlreadyInSession
	}

	wasQueued := o.Pool.Contains(id)
	entry, ok := o.Pool.DequeueMatch(id, role)
	if !ok {
		return false, nil
	}
	if err := o.Sessions.Create(id, entry.ID); err != nil {
		// Unreachable given the guards above and the atomic dequeue;
		// restore everything the dequeue claimed, the match with its
		// seniority.
		o.Pool.PushFront(entry)
		if wasQueued {
			requester, _ := o.Registry.Get(id)
			o.Pool.Enqueue(id, requester.Role, requester.Name)
		}
		return false, err
	}
	o.broadcastUserCount()

	requester, _ := o.Registry.Get(id)
	o.send(id, protocol.NewMatched(domain.Participant{ID: entry.ID, Name: entry.Name, Role: entry.Role}))
	o.send(entry.ID, protocol.NewMatched(requester))
	log.Info().Str("module", "app").Str("conn", string(id)).
		Str("match", string(entry.ID)).Msg("matched")
	return true, nil
}

// RelayMessage delivers a chat message to the session counterpart only.
func (o *Orchestrator) RelayMessage(id domain.ConnID, content string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	other, err := o.Sessions.Counterpart(id)
	if err != nil {
		return err
	}
	sender, _ := o.Registry.Get(id)
	o.send(other, protocol.NewChatMessage(uuid.NewString(), content, sender.Name))
	return nil
}

var callOutbound = map[core.CallSignal]protocol.EventType{
	core.CallOffer:   protocol.TypeIncomingCall,
	core.CallAccept:  protocol.TypeCallAccepted,
	core.CallDecline: protocol.TypeCallDeclined,
	core.CallEnd:     protocol.TypeCallEnded,
}

// RelayCall drives the session call machine and, when the signal is
// current, forwards it to the counterpart. Stale signals are swallowed.
func (o *Orchestrator) RelayCall(id domain.ConnID, sig core.CallSignal) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	other, deliver, err := o.Sessions.Signal(id, sig)
	if err != nil {
		return err
	}
	if !deliver {
		return nil
	}
	o.send(other, protocol.NewCallEvent(callOutbound[sig]))
	return nil
}

// Disconnect unwinds everything the connection touched: its session
// (notifying the abandoned counterpart), its pool entry, its registry
// record. Safe to call twice.
func (o *Orchestrator) Disconnect(id domain.ConnID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if other, ok := o.Sessions.End(id); ok {
		o.send(other, protocol.NewCallEvent(protocol.TypeCallEnded))
	}
	o.Pool.Remove(id)
	o.Registry.Unregister(id)
	o.broadcastUserCount()
}

// send encodes and delivers one event to one connection. A full send
// buffer drops the frame for that connection only.
func (o *Orchestrator) send(id domain.ConnID, v any) {
	conn, ok := o.Registry.Conn(id)
	if !ok {
		log.Warn().Str("module", "app").Str("conn", string(id)).Msg("send to unknown connection")
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app").Msg("marshal outbound event")
		return
	}
	if err := conn.TrySend(b); err != nil {
		log.Warn().Err(err).Str("module", "app").Str("conn", string(id)).Msg("frame dropped")
	}
}

func (o *Orchestrator) broadcastUserCount() {
	b, err := json.Marshal(protocol.NewUserCount(o.Registry.Count()))
	if err != nil {
		log.Error().Err(err).Str("module", "app").Msg("marshal userCount")
		return
	}
	for _, conn := range o.Registry.Conns() {
		if err := conn.TrySend(b); err != nil {
			log.Warn().Err(err).Str("module", "app").Msg("userCount frame dropped")
		}
	}
}
