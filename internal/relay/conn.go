// internal/relay/conn.go
package relay

import (
	"log"
)

// Conn is a single client's live presence on the relay. The ID is assigned by
// the transport layer on accept and is what clients see as their socketId.
type Conn struct {
	ID       string
	Username string
	Cancel   func()
	OutChan  chan map[string]interface{}
}

// NewConn builds a connection with a buffered outbound channel.
func NewConn(id string) *Conn {
	return &Conn{
		ID:      id,
		OutChan: make(chan map[string]interface{}, 16),
	}
}

// Write pushes a message onto the connection's OutChan non-blockingly.
// Delivery is best-effort; a full or closed channel drops the message.
func (c *Conn) Write(msg map[string]interface{}) {
	select {
	case c.OutChan <- msg:
	default:
		msgType, _ := msg["type"].(string)
		log.Printf("relay: OutChan for conn %s closed or full, dropped message type '%s'", c.ID, msgType)
	}
}

// WriteError is a convenience to send an error object to this connection.
func (c *Conn) WriteError(msg string) {
	c.Write(map[string]interface{}{
		"type":    "error",
		"message": msg,
	})
}
