package i

import "github.com/google/uuid"

// ServerSocketManager manages server-side socket communication and client interactions.
type ServerSocketManager interface {
	// Serve starts accepting client records; it blocks.
	Serve()

	// Stop shuts the socket down.
	Stop()

	// BroadcastToClients sends a record of the given type to every
	// listed authenticated client.
	BroadcastToClients([]uuid.UUID, byte, []byte)
}
