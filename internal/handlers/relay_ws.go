// internal/handlers/relay_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/promptparty/promptparty/internal/middleware"
	"github.com/promptparty/promptparty/internal/relay"
	"github.com/sirupsen/logrus"
)

// RelayWSHandler upgrades the request to a websocket, registers the
// connection with the relay store and pumps events in both directions until
// the client goes away. Every event is fire-and-forget: delivered if the
// target is still connected, dropped otherwise.
func RelayWSHandler(logger *logrus.Logger, store *relay.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		remoteAddr := r.RemoteAddr

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"relay"},
			OriginPatterns: []string{"*"}, // Adjust in production
		})
		if err != nil {
			logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		if c.Subprotocol() != "relay" {
			c.Close(BadSubprotocolError, "client must speak the relay subprotocol")
			return
		}

		conn := relay.NewConn(uuid.NewString())
		ctx, cancel := context.WithCancel(r.Context())
		conn.Cancel = cancel
		store.Register(conn)

		middleware.LogWebSocketConnect(logger, remoteAddr, conn.ID)

		go writePump(ctx, c, conn, logger)

		readErr := readPump(ctx, c, store, conn, logger)

		// readPump exited: drop the connection from every room it joined and
		// let remaining members see the shrunk roster.
		store.Disconnect(conn.ID)
		cancel()
		middleware.LogWebSocketDisconnect(logger, remoteAddr, conn.ID, readErr)
	}
}

// readPump consumes inbound events until the connection closes, dispatching
// each one to the relay store. Malformed JSON gets an error message back on
// the connection; unknown event types are logged and ignored.
func readPump(ctx context.Context, c *websocket.Conn, store *relay.Store, conn *relay.Conn, logger *logrus.Logger) error {
	for {
		_, msg, err := c.Read(ctx)
		if err != nil {
			closeStatus := websocket.CloseStatus(err)
			if closeStatus == websocket.StatusNormalClosure || closeStatus == websocket.StatusGoingAway {
				return nil
			}
			if strings.Contains(err.Error(), "context canceled") {
				return nil
			}
			return err
		}

		var envelope struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(msg, &envelope); err != nil {
			logger.Warnf("conn %s: invalid json: %v", conn.ID, err)
			conn.WriteError("Invalid JSON format")
			continue
		}

		dispatch(store, conn, envelope.Type, msg, logger)
	}
}

// dispatch routes one decoded event to the matching relay operation. Payload
// fields are free-form strings; the relay performs no validation beyond the
// routing rules themselves.
func dispatch(store *relay.Store, conn *relay.Conn, eventType string, msg []byte, logger *logrus.Logger) {
	switch eventType {
	case relay.EventJoinRoom:
		var p relay.JoinRoomPayload
		if err := json.Unmarshal(msg, &p); err != nil {
			conn.WriteError("Invalid joinRoom payload")
			return
		}
		store.Join(p.RoomID, p.Username, conn)

	case relay.EventChatMessage:
		var p relay.ChatMessagePayload
		if err := json.Unmarshal(msg, &p); err != nil {
			conn.WriteError("Invalid chatMessage payload")
			return
		}
		store.Chat(p.RoomID, p.Username, p.Message)

	case relay.EventImageQuestion, relay.EventAudioQuestion:
		var p relay.QuestionPayload
		if err := json.Unmarshal(msg, &p); err != nil {
			conn.WriteError("Invalid question payload")
			return
		}
		store.PoseQuestion(eventType, p.RoomID, conn.ID, p)

	case relay.EventSubmitGuess, relay.EventSubmitAudioGuess:
		var p relay.GuessPayload
		if err := json.Unmarshal(msg, &p); err != nil {
			conn.WriteError("Invalid guess payload")
			return
		}
		store.ForwardGuess(eventType, p.RoomID, p.Guess, p.SocketID)

	case relay.EventEvaluationResult, relay.EventEvaluationAudioResult:
		var p relay.ResultPayload
		if err := json.Unmarshal(msg, &p); err != nil {
			conn.WriteError("Invalid result payload")
			return
		}
		store.DeliverResult(eventType, p.TargetSocketID, p.Grade)

	default:
		logger.Warnf("conn %s: unknown event type '%s'", conn.ID, eventType)
	}
}

// writePump drains the connection's outbound channel onto the wire and keeps
// the connection alive with periodic pings.
func writePump(ctx context.Context, c *websocket.Conn, conn *relay.Conn, logger *logrus.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-conn.OutChan:
			if !ok {
				return
			}
			data, err := json.Marshal(msg)
			if err != nil {
				logger.Warnf("conn %s: failed to marshal outgoing msg: %v", conn.ID, err)
				continue
			}

			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = c.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				logger.Warnf("conn %s: websocket write failed: %v", conn.ID, err)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := c.Ping(pingCtx)
			cancel()
			if err != nil {
				logger.Warnf("conn %s: ping failed, assuming disconnect: %v", conn.ID, err)
				return
			}
		}
	}
}
