// internal/relay/store.go
package relay

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// Store owns every room and live connection in the process. A single mutex
// serializes all operations, so each handler runs to completion relative to
// the others and per-sender delivery order is preserved by the per-connection
// outbound channels. State is memory-only and lost on restart.
type Store struct {
	mu    sync.Mutex
	rooms map[string]*Room
	conns map[string]*Conn

	log *logrus.Logger
}

// NewStore initializes an empty relay store.
func NewStore(logger *logrus.Logger) *Store {
	if logger == nil {
		logger = logrus.New()
	}
	return &Store{
		rooms: make(map[string]*Room),
		conns: make(map[string]*Conn),
		log:   logger,
	}
}

// Register adds a live connection to the registry. Must be called once per
// accepted websocket, before any event from it is dispatched.
func (s *Store) Register(c *Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[c.ID] = c
}

// Join adds the connection to roomID, creating the room if absent. The first
// player in an empty room becomes super, everyone after that basic. The
// assigned role is sent to the joiner alone, then the full roster snapshot is
// broadcast to the whole room, joiner included. Join never fails.
func (s *Store) Join(roomID, username string, c *Conn) Role {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		room = newRoom(roomID)
		s.rooms[roomID] = room
	}

	role := RoleBasic
	if len(room.Players) == 0 {
		role = RoleSuper
	}
	c.Username = username
	room.Players = append(room.Players, &Player{
		SocketID: c.ID,
		Username: username,
		Role:     role,
		conn:     c,
	})

	s.log.WithFields(logrus.Fields{
		"room":     roomID,
		"username": username,
		"role":     role,
	}).Infof("%s joined room %s", username, roomID)

	c.Write(map[string]interface{}{
		"type": EventRolesAssigned,
		"role": role,
	})
	room.broadcast(rosterMessage(room))
	return role
}

// Chat re-emits a chat message to every member of the room, the sender
// included; the sender's client renders from its own local echo.
func (s *Store) Chat(roomID, username, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return
	}
	room.broadcast(map[string]interface{}{
		"type":     EventNewChatMessage,
		"message":  message,
		"username": username,
	})
}

// PoseQuestion broadcasts a generated asset plus question from the sender to
// every other member of the room. event is EventImageQuestion or
// EventAudioQuestion and is re-emitted under the same name.
func (s *Store) PoseQuestion(event, roomID, senderID string, q QuestionPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return
	}
	msg := map[string]interface{}{
		"type":     event,
		"question": q.Question,
	}
	switch event {
	case EventImageQuestion:
		msg["imageUrl"] = q.ImageURL
	case EventAudioQuestion:
		msg["audioSrc"] = q.AudioSrc
	}
	room.broadcastExcept(senderID, msg)
}

// ForwardGuess routes a basic player's guess to the room's super connection.
// If the room has no super player (for instance after the original one
// disconnected) the guess is silently discarded; nothing is sent back to the
// guesser. event is EventSubmitGuess or EventSubmitAudioGuess.
func (s *Store) ForwardGuess(event, roomID, guess, senderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return
	}
	super := room.superPlayer()
	if super == nil {
		s.log.WithField("room", roomID).Debug("dropping guess, room has no super player")
		return
	}
	super.conn.Write(map[string]interface{}{
		"type":     event,
		"guess":    guess,
		"socketId": senderID,
	})
}

// DeliverResult forwards a grade from the super player to one target
// connection, resolved against the live connection registry rather than any
// room roster. A disconnected target is a silent no-op. event is
// EventEvaluationResult or EventEvaluationAudioResult.
func (s *Store) DeliverResult(event, targetID string, grade json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.conns[targetID]
	if !ok {
		return
	}
	target.Write(map[string]interface{}{
		"type":  event,
		"grade": grade,
	})
}

// Disconnect removes the connection from the registry and from every room it
// joined, broadcasting the updated roster to each affected room's remaining
// members and deleting rooms left empty. The full scan is O(rooms x players),
// fine at party scale.
func (s *Store) Disconnect(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.conns, connID)

	for id, room := range s.rooms {
		kept := room.Players[:0]
		removed := false
		for _, p := range room.Players {
			if p.SocketID == connID {
				removed = true
				continue
			}
			kept = append(kept, p)
		}
		if !removed {
			continue
		}
		room.Players = kept
		if len(room.Players) == 0 {
			delete(s.rooms, id)
			s.log.WithField("room", id).Info("room empty, deleting")
			continue
		}
		room.broadcast(rosterMessage(room))
	}
}

// RoomCount reports the number of live rooms.
func (s *Store) RoomCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

// Snapshot returns a copy of every room's roster, keyed by room ID. Used by
// the debug listing endpoint; the copy keeps callers from racing the store.
func (s *Store) Snapshot() map[string][]Player {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string][]Player, len(s.rooms))
	for id, room := range s.rooms {
		players := make([]Player, 0, len(room.Players))
		for _, p := range room.Players {
			players = append(players, *p)
		}
		out[id] = players
	}
	return out
}

// rosterMessage builds the full updatePlayers snapshot for a room.
func rosterMessage(room *Room) map[string]interface{} {
	players := make([]Player, 0, len(room.Players))
	for _, p := range room.Players {
		players = append(players, *p)
	}
	return map[string]interface{}{
		"type":    EventUpdatePlayers,
		"players": players,
	}
}
