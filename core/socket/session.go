package socket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Session is one live WebSocket connection. The attached state is fixed at
// upgrade time and immutable afterwards, so reading it from any hook needs no
// synchronization. Sends are safe for concurrent use.
type Session struct {
	id     string
	conn   *websocket.Conn
	state  any
	logger *slog.Logger

	writeMu   sync.Mutex
	closeOnce sync.Once
}

func newSession(conn *websocket.Conn, state any, logger *slog.Logger) *Session {
	return &Session{
		id:     uuid.NewString(),
		conn:   conn,
		state:  state,
		logger: logger,
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the value attached by the upgrade-decision hook, or nil.
func (s *Session) State() any {
	return s.state
}

// RemoteAddr returns the peer's network address.
func (s *Session) RemoteAddr() string {
	return s.conn.RemoteAddr().String()
}

// Send writes one outbound frame, typed by payload: []byte goes out as a
// binary frame (copied, the caller keeps ownership), string as a text frame,
// and anything else is JSON-serialized into a text frame.
func (s *Session) Send(payload any) error {
	var frameType int
	var data []byte

	switch p := payload.(type) {
	case []byte:
		frameType = websocket.BinaryMessage
		data = make([]byte, len(p))
		copy(data, p)
	case string:
		frameType = websocket.TextMessage
		data = []byte(p)
	default:
		encoded, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode websocket payload: %w", err)
		}
		frameType = websocket.TextMessage
		data = encoded
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteMessage(frameType, data)
}

// Close tears down the connection. Safe to call multiple times; only the
// first call closes.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.conn.Close()
	})
	return err
}
