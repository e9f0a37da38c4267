// Package protocol defines the JSON wire events exchanged over the
// websocket, both directions. Frames are text frames holding a single
// object with a "type" discriminator.
package protocol

import "github.com/pairline/pairline/internal/domain"

type EventType string

// Client -> server.
const (
	TypeJoin         EventType = "join"
	TypeFindMatch    EventType = "findMatch"
	TypeMessage      EventType = "message"
	TypeInitiateCall EventType = "initiateCall"
	TypeAcceptCall   EventType = "acceptCall"
	TypeDeclineCall  EventType = "declineCall"
	TypeEndCall      EventType = "endCall"
	TypePing         EventType = "ping"
)

// Server -> client.
const (
	TypeUserCount    EventType = "userCount"
	TypeJoined       EventType = "joined"
	TypeMatched      EventType = "matched"
	TypeIncomingCall EventType = "incomingCall"
	TypeCallAccepted EventType = "callAccepted"
	TypeCallDeclined EventType = "callDeclined"
	TypeCallEnded    EventType = "callEnded"
	TypePong         EventType = "pong"
	TypeError        EventType = "error"
)

// Envelope is the minimal shape every inbound frame must carry; the
// adapter unmarshals it first to dispatch on Type.
type Envelope struct {
	Type EventType `json:"type"`
}

type JoinPayload struct {
	Type EventType `json:"type"`
	Name string    `json:"name"`
	Role string    `json:"role"`
}

type FindMatchPayload struct {
	Type EventType `json:"type"`
	Role string    `json:"role"`
}

type MessagePayload struct {
	Type    EventType `json:"type"`
	Content string    `json:"content"`
}

type UserCount struct {
	Type  EventType `json:"type"`
	Count int       `json:"count"`
}

type Joined struct {
	Type EventType   `json:"type"`
	Name string      `json:"name"`
	Role domain.Role `json:"role"`
}

// Matched carries the counterpart's identity, i.e. each side receives
// the other party's name and role.
type Matched struct {
	Type EventType   `json:"type"`
	Name string      `json:"name"`
	Role domain.Role `json:"role"`
}

// ChatMessage is the relayed form of an inbound message. ID is minted
// fresh at relay time.
type ChatMessage struct {
	Type    EventType `json:"type"`
	ID      string    `json:"id"`
	Content string    `json:"content"`
	Sender  string    `json:"sender"`
}

// CallEvent covers the four payload-less call signals.
type CallEvent struct {
	Type EventType `json:"type"`
}

type ErrorReply struct {
	Type  EventType `json:"type"`
	Error string    `json:"error"`
}

func NewUserCount(n int) UserCount {
	return UserCount{Type: TypeUserCount, Count: n}
}

func NewJoined(p domain.Participant) Joined {
	return Joined{Type: TypeJoined, Name: p.Name, Role: p.Role}
}

func NewMatched(counterpart domain.Participant) Matched {
	return Matched{Type: TypeMatched, Name: counterpart.Name, Role: counterpart.Role}
}

func NewChatMessage(id, content, sender string) ChatMessage {
	return ChatMessage{Type: TypeMessage, ID: id, Content: content, Sender: sender}
}

func NewCallEvent(t EventType) CallEvent {
	return CallEvent{Type: t}
}

func NewError(msg string) ErrorReply {
	return ErrorReply{Type: TypeError, Error: msg}
}
