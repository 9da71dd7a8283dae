package i

import "time"

// GameServer runs one authoritative hunt and streams its encoded state.
type GameServer interface {
	// Start runs the hunt until it resolves or the duration passes; it blocks.
	Start(time.Duration)

	// Stop ends the hunt and emits the final state on EndChan.
	Stop()

	// StateChan delivers encoded snapshots while the hunt runs.
	StateChan() <-chan []byte

	// EndChan delivers the final encoded snapshot, then closes.
	EndChan() <-chan []byte

	// ActionChan accepts action records, the action type byte followed by
	// the encoded payload.
	ActionChan() chan<- []byte
}
