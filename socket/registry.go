package socket

import (
	"sync"

	socketio "github.com/googollee/go-socket.io"
)

// ConnectionRegistry is the process-wide map from userId to live socket
// connections. A user may hold several sockets (one per open client).
// All access goes through the lock; Connections returns a snapshot so
// callers never iterate shared state during I/O.
type ConnectionRegistry struct {
	mu    sync.RWMutex
	conns map[string]map[string]socketio.Conn
}

// NewConnectionRegistry initializes an empty registry
func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{conns: map[string]map[string]socketio.Conn{}}
}

// Register records a connection for a user
func (r *ConnectionRegistry) Register(userID string, conn socketio.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conns[userID] == nil {
		r.conns[userID] = map[string]socketio.Conn{}
	}
	r.conns[userID][conn.ID()] = conn
}

// Unregister drops one of a user's connections; the user entry goes
// away with its last connection
func (r *ConnectionRegistry) Unregister(userID, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if userConns, ok := r.conns[userID]; ok {
		delete(userConns, connID)
		if len(userConns) == 0 {
			delete(r.conns, userID)
		}
	}
}

// Connections returns a snapshot of the user's live connections
func (r *ConnectionRegistry) Connections(userID string) []socketio.Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conns := make([]socketio.Conn, 0, len(r.conns[userID]))
	for _, conn := range r.conns[userID] {
		conns = append(conns, conn)
	}
	return conns
}

// IsOnline reports whether the user has at least one live connection
func (r *ConnectionRegistry) IsOnline(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns[userID]) > 0
}

// OnlineCount returns the number of distinct connected users
func (r *ConnectionRegistry) OnlineCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
