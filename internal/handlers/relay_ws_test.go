// internal/handlers/relay_ws_test.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/promptparty/promptparty/internal/relay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialRelay(t *testing.T, ctx context.Context, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	c, _, err := websocket.Dial(ctx, wsURL, &websocket.DialOptions{
		Subprotocols: []string{"relay"},
	})
	require.NoError(t, err)
	return c
}

func sendEvent(t *testing.T, ctx context.Context, c *websocket.Conn, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, c.Write(ctx, websocket.MessageText, data))
}

func readEvent(t *testing.T, ctx context.Context, c *websocket.Conn) map[string]interface{} {
	t.Helper()
	_, data, err := c.Read(ctx)
	require.NoError(t, err)
	var msg map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

// TestJoinOverWebSocket drives a real websocket through the join flow: the
// joiner gets its role first, then the roster snapshot.
func TestJoinOverWebSocket(t *testing.T) {
	store := relay.NewStore(quietLogger())
	srv := httptest.NewServer(RelayWSHandler(quietLogger(), store))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := dialRelay(t, ctx, srv)
	defer c.Close(websocket.StatusNormalClosure, "done")

	sendEvent(t, ctx, c, map[string]string{
		"type":     relay.EventJoinRoom,
		"roomId":   "party-1",
		"username": "alice",
	})

	roleMsg := readEvent(t, ctx, c)
	assert.Equal(t, relay.EventRolesAssigned, roleMsg["type"])
	assert.Equal(t, "super", roleMsg["role"])

	rosterMsg := readEvent(t, ctx, c)
	assert.Equal(t, relay.EventUpdatePlayers, rosterMsg["type"])
	players, ok := rosterMsg["players"].([]interface{})
	require.True(t, ok)
	require.Len(t, players, 1)
}

// TestImageQuestionReachesOnlyPeers is the end-to-end non-self broadcast
// check: B receives the super player's question, A does not. A's outbound
// channel is FIFO, so a chat echo arriving as A's next message proves the
// question was never queued for A.
func TestImageQuestionReachesOnlyPeers(t *testing.T) {
	store := relay.NewStore(quietLogger())
	srv := httptest.NewServer(RelayWSHandler(quietLogger(), store))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a := dialRelay(t, ctx, srv)
	defer a.Close(websocket.StatusNormalClosure, "done")
	b := dialRelay(t, ctx, srv)
	defer b.Close(websocket.StatusNormalClosure, "done")

	sendEvent(t, ctx, a, map[string]string{"type": relay.EventJoinRoom, "roomId": "party-2", "username": "alice"})
	// A: rolesAssigned + roster(1)
	assert.Equal(t, relay.EventRolesAssigned, readEvent(t, ctx, a)["type"])
	readEvent(t, ctx, a)

	sendEvent(t, ctx, b, map[string]string{"type": relay.EventJoinRoom, "roomId": "party-2", "username": "bob"})
	// B: rolesAssigned(basic) + roster(2); A: roster(2)
	roleMsg := readEvent(t, ctx, b)
	assert.Equal(t, "basic", roleMsg["role"])
	readEvent(t, ctx, b)
	readEvent(t, ctx, a)

	sendEvent(t, ctx, a, map[string]string{
		"type":     relay.EventImageQuestion,
		"roomId":   "party-2",
		"imageUrl": "https://img.example/q.png",
		"question": "what is this?",
	})

	question := readEvent(t, ctx, b)
	assert.Equal(t, relay.EventImageQuestion, question["type"])
	assert.Equal(t, "https://img.example/q.png", question["imageUrl"])
	assert.Equal(t, "what is this?", question["question"])

	sendEvent(t, ctx, a, map[string]string{
		"type":     relay.EventChatMessage,
		"roomId":   "party-2",
		"message":  "ping",
		"username": "alice",
	})

	next := readEvent(t, ctx, a)
	assert.Equal(t, relay.EventNewChatMessage, next["type"], "sender must not receive its own question")
}
