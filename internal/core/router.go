package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/pairline/pairline/internal/domain"
)

// CallState is the per-session call machine:
// Idle -> Ringing (offer) -> Active (accept) -> Idle (end/decline).
type CallState int

const (
	CallIdle CallState = iota
	CallRinging
	CallActive
)

// CallSignal is one of the four call-signaling intents a party can send.
type CallSignal int

const (
	CallOffer CallSignal = iota
	CallAccept
	CallDecline
	CallEnd
)

type session struct {
	a, b  domain.ConnID
	state CallState
}

func (s *session) other(id domain.ConnID) domain.ConnID {
	if id == s.a {
		return s.b
	}
	return s.a
}

// SessionRouter exclusively owns the ConnID -> session mapping and
// resolves the counterpart every relayed event is delivered to. It never
// touches transport resources.
type SessionRouter struct {
	mu     sync.RWMutex
	byConn map[domain.ConnID]*session
}

func NewSessionRouter() *SessionRouter {
	return &SessionRouter{byConn: make(map[domain.ConnID]*session)}
}

// Create pairs two connections. The matchmaker's atomic dequeue should
// make the duplicate case impossible, but it is still checked.
func (r *SessionRouter) Create(a, b domain.ConnID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byConn[a]; ok {
		return domain.ErrAlreadyInSession
	}
	if _, ok := r.byConn[b]; ok {
		return domain.ErrAlreadyInSession
	}
	s := &session{a: a, b: b, state: CallIdle}
	r.byConn[a] = s
	r.byConn[b] = s
	log.Info().Str("module", "core.router").Str("a", string(a)).Str("b", string(b)).Msg("session created")
	return nil
}

// Counterpart resolves the other party of id's session.
func (r *SessionRouter) Counterpart(id domain.ConnID) (domain.ConnID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byConn[id]
	if !ok {
		return "", domain.ErrNoActiveSession
	}
	return s.other(id), nil
}

// Signal drives the call state machine and reports whether the signal
// should be delivered to the (returned) counterpart. Stale signals, e.g.
// an accept while Idle, are ignored rather than erroring.
func (r *SessionRouter) Signal(id domain.ConnID, sig CallSignal) (domain.ConnID, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byConn[id]
	if !ok {
		return "", false, domain.ErrNoActiveSession
	}

	deliver := false
	switch sig {
	case CallOffer:
		if s.state == CallIdle {
			s.state = CallRinging
			deliver = true
		}
	case CallAccept:
		if s.state == CallRinging {
			s.state = CallActive
			deliver = true
		}
	case CallDecline:
		if s.state == CallRinging {
			s.state = CallIdle
			deliver = true
		}
	case CallEnd:
		// Always valid.
		s.state = CallIdle
		deliver = true
	}
	if !deliver {
		log.Debug().Str("module", "core.router").Str("conn", string(id)).
			Int("signal", int(sig)).Int("state", int(s.state)).Msg("stale call signal ignored")
	}
	return s.other(id), deliver, nil
}

// End removes the mapping for both parties and returns the former
// counterpart. Idempotent: a second End for either party is a no-op.
func (r *SessionRouter) End(id domain.ConnID) (domain.ConnID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byConn[id]
	if !ok {
		return "", false
	}
	delete(r.byConn, s.a)
	delete(r.byConn, s.b)
	log.Info().Str("module", "core.router").Str("a", string(s.a)).Str("b", string(s.b)).Msg("session ended")
	return s.other(id), true
}

// State exposes the call state of id's session for tests and debugging.
func (r *SessionRouter) State(id domain.ConnID) (CallState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.byConn[id]; ok {
		return s.state, true
	}
	return CallIdle, false
}
