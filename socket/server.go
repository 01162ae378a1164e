package socket

import (
	"log"

	"rhood_server/models"

	socketio "github.com/googollee/go-socket.io"
)

// Server wraps the socket.io server and pushes match events to
// per-user rooms. Clients join their room with a "join" event carrying
// their user id.
type Server struct {
	io *socketio.Server
}

// NewServer creates the socket.io server and wires up connection handling
func NewServer() *Server {
	io := socketio.NewServer(nil)

	io.OnConnect("/", func(conn socketio.Conn) error {
		log.Printf("🔌 Socket connected: %s", conn.ID())
		return nil
	})

	io.OnEvent("/", "join", func(conn socketio.Conn, userID string) {
		if userID == "" {
			return
		}
		conn.Join(roomForUser(userID))
		log.Printf("🔌 Socket %s joined room for user %s", conn.ID(), userID)
	})

	io.OnEvent("/", "leave", func(conn socketio.Conn, userID string) {
		if userID == "" {
			return
		}
		conn.Leave(roomForUser(userID))
	})

	io.OnError("/", func(conn socketio.Conn, err error) {
		log.Printf("❌ Socket error: %v", err)
	})

	io.OnDisconnect("/", func(conn socketio.Conn, reason string) {
		log.Printf("🔌 Socket disconnected: %s (%s)", conn.ID(), reason)
	})

	return &Server{io: io}
}

// IO exposes the underlying socket.io server for HTTP mounting
func (s *Server) IO() *socketio.Server {
	return s.io
}

// Serve runs the socket.io event loop. Blocks; run in a goroutine.
func (s *Server) Serve() error {
	return s.io.Serve()
}

// Close shuts down the socket.io server
func (s *Server) Close() error {
	return s.io.Close()
}

// MatchesGenerated pushes freshly generated matches to the user's room
func (s *Server) MatchesGenerated(userID string, matches []models.Match) {
	s.io.BroadcastToRoom("/", roomForUser(userID), "matches:generated", map[string]interface{}{
		"userId":  userID,
		"matches": matches,
		"count":   len(matches),
	})
}

// MatchStatusChanged pushes a match status transition to the user's room
func (s *Server) MatchStatusChanged(userID string, match models.Match) {
	s.io.BroadcastToRoom("/", roomForUser(userID), "match:status", map[string]interface{}{
		"userId": userID,
		"match":  match,
	})
}

func roomForUser(userID string) string {
	return "user:" + userID
}
