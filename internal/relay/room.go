// internal/relay/room.go
package relay

// Role is a player's routing role within a room.
type Role string

const (
	// RoleSuper is the room's sole asset-generator and guess-scorer,
	// assigned to the first joiner of an empty room.
	RoleSuper Role = "super"
	// RoleBasic is a guesser; every non-first joiner.
	RoleBasic Role = "basic"
)

// Player is one connection's membership in a room.
type Player struct {
	SocketID string `json:"socketId"`
	Username string `json:"username"`
	Role     Role   `json:"role"`

	conn *Conn
}

// Room groups the connections playing one game. Players keeps join order.
// Rooms are created on first join and deleted when the last player leaves.
type Room struct {
	ID      string
	Players []*Player

	// GameState is an opaque bag reserved for future round bookkeeping.
	// Nothing reads it yet.
	GameState map[string]interface{}
}

func newRoom(id string) *Room {
	return &Room{
		ID:        id,
		GameState: make(map[string]interface{}),
	}
}

// superPlayer returns the first player holding the super role, or nil.
// There is no re-election: if the original super disconnected, a room can
// legitimately have none.
func (r *Room) superPlayer() *Player {
	for _, p := range r.Players {
		if p.Role == RoleSuper {
			return p
		}
	}
	return nil
}

// broadcast sends msg to every player in the room.
func (r *Room) broadcast(msg map[string]interface{}) {
	for _, p := range r.Players {
		p.conn.Write(msg)
	}
}

// broadcastExcept sends msg to every player except the one on connID.
func (r *Room) broadcastExcept(connID string, msg map[string]interface{}) {
	for _, p := range r.Players {
		if p.SocketID == connID {
			continue
		}
		p.conn.Write(msg)
	}
}
