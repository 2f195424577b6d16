package socket

import (
	"encoding/json"

	"github.com/gorilla/websocket"
)

// Message is one inbound frame. Text frames are opportunistically decoded as
// JSON; when that succeeds Value holds the structured result, otherwise the
// raw bytes remain the only representation.
type Message struct {
	// Type is the wire frame type, websocket.TextMessage or
	// websocket.BinaryMessage.
	Type int

	// Data is the raw frame payload.
	Data []byte

	// Value is the decoded JSON document for text frames that parse, nil
	// otherwise.
	Value any
}

func newMessage(frameType int, data []byte) Message {
	m := Message{Type: frameType, Data: data}
	if frameType == websocket.TextMessage && len(data) > 0 {
		var v any
		if err := json.Unmarshal(data, &v); err == nil {
			m.Value = v
		}
	}
	return m
}

// IsBinary reports whether the frame arrived as binary.
func (m Message) IsBinary() bool {
	return m.Type == websocket.BinaryMessage
}

// Text returns the payload as a string.
func (m Message) Text() string {
	return string(m.Data)
}
