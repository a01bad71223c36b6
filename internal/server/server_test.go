package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scopone-game/internal/game"
	"scopone-game/internal/logging"
	"scopone-game/internal/protocol"
	"scopone-game/internal/results"
	"scopone-game/internal/shared"
)

type fixture struct {
	hub    *Hub
	store  *results.Store
	server *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(logging.Discard())
	go hub.Run(ctx)

	store := results.New()
	server := httptest.NewServer(NewMux(hub, store, logging.Discard()))
	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return &fixture{hub: hub, store: store, server: server}
}

func (f *fixture) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) protocol.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg protocol.Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestSpectatorReceivesWelcomeAndEvents(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t)

	welcome := read(t, conn)
	assert.Equal(t, protocol.TypeWelcome, welcome.Type)
	require.Eventually(t, func() bool { return f.hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	f.hub.Emit(game.Event{
		Kind:  game.EventPlay,
		Actor: "Anna",
		Card:  shared.Card{Suit: shared.Coppe, Rank: 3},
		Table: []shared.Card{{Suit: shared.Coppe, Rank: 3}},
	})

	msg := read(t, conn)
	assert.Equal(t, "play", msg.Type)
	var payload protocol.PlayPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, "Anna", payload.Player)
	require.NotNil(t, payload.Card)
	assert.Equal(t, 3, payload.Card.Rank)
}

func TestSpectatorPingPong(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t)
	read(t, conn) // welcome

	ping, err := protocol.NewMessage(protocol.TypePing, nil)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, ping))
	assert.Equal(t, protocol.TypePong, read(t, conn).Type)

	other, err := protocol.NewMessage("play_card", nil)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, other))
	assert.Equal(t, protocol.TypeError, read(t, conn).Type)
}

func TestSpectatorDisconnectUnregisters(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t)
	read(t, conn)
	require.Eventually(t, func() bool { return f.hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool { return f.hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestEmitWithoutSpectatorsDoesNotBlock(t *testing.T) {
	hub := NewHub(logging.Discard())
	done := make(chan struct{})
	go func() {
		for range broadcastBuffer + 10 {
			hub.Emit(game.Event{Kind: game.EventHandEnd})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Emit blocked with no hub running")
	}
}

func TestResultsAPI(t *testing.T) {
	f := newFixture(t)
	r := &game.TournamentResult{ID: "t1"}
	r.Teams[0].Players = [2]string{"A", "B"}
	r.Teams[1].Players = [2]string{"C", "D"}
	require.NoError(t, f.store.Insert(r))

	get := func(path string) *http.Response {
		resp, err := http.Get(f.server.URL + path)
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	resp := get("/api/results")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var all []game.TournamentResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	require.Len(t, all, 1)
	assert.Equal(t, "t1", all[0].ID)

	resp = get("/api/results/t1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, http.StatusNotFound, get("/api/results/nope").StatusCode)

	resp = get("/api/results/player/C")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var byPlayer []game.TournamentResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&byPlayer))
	assert.Len(t, byPlayer, 1)

	assert.Equal(t, http.StatusNotFound, get("/api/results/player/Z").StatusCode)
}

func TestResultsAPIEmptyStore(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Get(f.server.URL + "/api/results")
	require.NoError(t, err)
	defer resp.Body.Close()

	var all []game.TournamentResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	assert.NotNil(t, all)
	assert.Empty(t, all)
}
