package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scopone-game/internal/game"
	"scopone-game/internal/scoring"
	"scopone-game/internal/shared"
)

func decode(t *testing.T, raw []byte) (Message, map[string]interface{}) {
	t.Helper()
	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	payload := map[string]interface{}{}
	if len(msg.Payload) > 0 {
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	}
	return msg, payload
}

func TestNewMessageWithoutPayload(t *testing.T) {
	raw, err := NewMessage(TypePong, nil)

	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"pong"}`, string(raw))
}

func TestEventMessageSweep(t *testing.T) {
	ev := game.Event{
		Kind:  game.EventSweep,
		Scope: game.Scope{Tournament: "t1", Match: 2, Hand: 3},
		Round: 4,
		Actor: "Dario",
		Card:  shared.Card{Suit: shared.Denari, Rank: 7},
		Taken: []shared.Card{{Suit: shared.Spade, Rank: 7}},
		Table: []shared.Card{},
		Sweep: true,
	}

	raw, err := EventMessage(ev)
	require.NoError(t, err)
	msg, payload := decode(t, raw)

	assert.Equal(t, "sweep", msg.Type)
	assert.Equal(t, "t1", payload["tournament"])
	assert.EqualValues(t, 2, payload["match"])
	assert.EqualValues(t, 3, payload["hand"])
	assert.Equal(t, "Dario", payload["player"])
	assert.Equal(t, true, payload["sweep"])
	assert.Equal(t, map[string]interface{}{"suit": "Denari", "rank": float64(7)}, payload["card"])
	assert.Empty(t, payload["table"])
}

func TestEventMessageClearTableHasNoCard(t *testing.T) {
	raw, err := EventMessage(game.Event{
		Kind:  game.EventClearTable,
		Actor: "Anna",
		Taken: []shared.Card{{Suit: shared.Coppe, Rank: 1}},
		Table: []shared.Card{},
	})
	require.NoError(t, err)
	_, payload := decode(t, raw)

	assert.NotContains(t, payload, "card")
	assert.NotContains(t, payload, "tournament")
	assert.Equal(t, false, payload["sweep"])
}

func TestEventMessageScoreBreakdown(t *testing.T) {
	b := scoring.Breakdown{Sweeps: 2, Coins: 1, Settebello: 1}
	raw, err := EventMessage(game.Event{Kind: game.EventScoreBreakdown, Actor: "Team(A, B)", Breakdown: &b})
	require.NoError(t, err)
	msg, payload := decode(t, raw)

	assert.Equal(t, "score_breakdown", msg.Type)
	assert.Equal(t, "Team(A, B)", payload["team"])
	assert.EqualValues(t, 4, payload["points"])
}

func TestEventMessageRejectsBadEvents(t *testing.T) {
	_, err := EventMessage(game.Event{Kind: game.EventScoreBreakdown})
	assert.Error(t, err)

	_, err = EventMessage(game.Event{Kind: "bogus"})
	assert.Error(t, err)
}

func TestEventMessageMatchEnd(t *testing.T) {
	result := &game.MatchResult{Number: 1, Hands: 4, Winner: "Team(A, B)", MVP: "A"}
	raw, err := EventMessage(game.Event{Kind: game.EventMatchEnd, Scope: game.Scope{Match: 1}, Match: result})
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	var payload MatchEndPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, 1, payload.Match)
	assert.Equal(t, "A", payload.Result.MVP)
	assert.Equal(t, 4, payload.Result.Hands)
}
