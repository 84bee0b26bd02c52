// internal/relay/events.go
package relay

import "encoding/json"

// Wire event names. Every message on the relay websocket is a flat JSON
// object carrying one of these in its "type" field.
const (
	EventJoinRoom              = "joinRoom"
	EventRolesAssigned         = "rolesAssigned"
	EventUpdatePlayers         = "updatePlayers"
	EventChatMessage           = "chatMessage"
	EventNewChatMessage        = "newChatMessage"
	EventImageQuestion         = "imageQuestion"
	EventAudioQuestion         = "audioQuestion"
	EventSubmitGuess           = "submitGuess"
	EventSubmitAudioGuess      = "submitAudioGuess"
	EventEvaluationResult      = "evaluationResult"
	EventEvaluationAudioResult = "evaluationAudioResult"
)

// JoinRoomPayload joins the sender to a room. Neither field is validated for
// emptiness or uniqueness; a repeat join adds a duplicate player.
type JoinRoomPayload struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

// ChatMessagePayload is relayed to every member of the room, sender included.
type ChatMessagePayload struct {
	RoomID   string `json:"roomId"`
	Message  string `json:"message"`
	Username string `json:"username"`
}

// QuestionPayload carries a generated asset plus the super player's question.
// Exactly one of ImageURL or AudioSrc is set depending on the event type.
type QuestionPayload struct {
	RoomID   string `json:"roomId"`
	ImageURL string `json:"imageUrl,omitempty"`
	AudioSrc string `json:"audioSrc,omitempty"`
	Question string `json:"question"`
}

// GuessPayload is forwarded to the room's super connection only.
type GuessPayload struct {
	RoomID   string `json:"roomId"`
	Guess    string `json:"guess"`
	SocketID string `json:"socketId"`
}

// ResultPayload carries a grade from the super player back to the guesser.
// Grade is passed through opaquely; the relay never interprets it.
type ResultPayload struct {
	Grade          json.RawMessage `json:"grade"`
	TargetSocketID string          `json:"targetSocketId"`
}
