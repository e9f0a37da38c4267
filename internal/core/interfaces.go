package core

// Frame is one encoded wire event ready to be written to a connection.
type Frame []byte

// SignalConnection abstracts the messaging transport for one participant.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
