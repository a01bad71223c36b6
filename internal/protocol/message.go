package protocol

import (
	"encoding/json"
	"fmt"

	"scopone-game/internal/game"
	"scopone-game/internal/scoring"
	"scopone-game/internal/shared"
)

// Message represents a generic envelope, used on the websocket and in JSON-lines output.
type Message struct {
	Type    string          `json:"type"`              // Event kind, or ping/pong/welcome
	Payload json.RawMessage `json:"payload,omitempty"` // Raw JSON payload, allows flexible structures
}

// Control message types exchanged with spectators
const (
	TypePing    = "ping"
	TypePong    = "pong"
	TypeWelcome = "welcome"
	TypeError   = "error"
)

// --- Server -> Spectator Payload Structs ---

type WelcomePayload struct {
	ClientID string `json:"client_id"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// PlayPayload covers play, capture, sweep and clear_table.
type PlayPayload struct {
	game.Scope
	Round  int           `json:"round,omitempty"`
	Player string        `json:"player"`
	Card   *shared.Card  `json:"card,omitempty"`
	Taken  []shared.Card `json:"taken,omitempty"`
	Table  []shared.Card `json:"table"`
	Sweep  bool          `json:"sweep"`
}

type ScoreBreakdownPayload struct {
	game.Scope
	Team      string            `json:"team"`
	Breakdown scoring.Breakdown `json:"breakdown"`
	Points    int               `json:"points"`
}

type HandEndPayload struct {
	game.Scope
	Deltas      [2]int                   `json:"deltas"`
	Scores      [2]int                   `json:"scores"`
	Attribution [shared.NumSeats]float64 `json:"attribution"`
}

type MatchEndPayload struct {
	game.Scope
	Result *game.MatchResult `json:"result"`
}

type TournamentEndPayload struct {
	game.Scope
	Result *game.TournamentResult `json:"result"`
}

// Helper function to create a JSON message
func NewMessage(msgType string, payload interface{}) ([]byte, error) {
	if payload == nil {
		return json.Marshal(Message{Type: msgType})
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	msg := Message{
		Type:    msgType,
		Payload: payloadBytes,
	}
	return json.Marshal(msg)
}

// EventPayload maps an engine event to its wire payload.
func EventPayload(ev game.Event) (interface{}, error) {
	switch ev.Kind {
	case game.EventPlay, game.EventCapture, game.EventSweep, game.EventClearTable:
		p := PlayPayload{
			Scope:  ev.Scope,
			Round:  ev.Round,
			Player: ev.Actor,
			Taken:  ev.Taken,
			Table:  ev.Table,
			Sweep:  ev.Sweep,
		}
		if ev.Kind != game.EventClearTable {
			card := ev.Card
			p.Card = &card
		}
		return p, nil
	case game.EventScoreBreakdown:
		if ev.Breakdown == nil {
			return nil, fmt.Errorf("%s event without breakdown", ev.Kind)
		}
		return ScoreBreakdownPayload{
			Scope:     ev.Scope,
			Team:      ev.Actor,
			Breakdown: *ev.Breakdown,
			Points:    ev.Breakdown.Points(),
		}, nil
	case game.EventHandEnd:
		return HandEndPayload{
			Scope:       ev.Scope,
			Deltas:      ev.Deltas,
			Scores:      ev.Scores,
			Attribution: ev.Attribution,
		}, nil
	case game.EventMatchEnd:
		return MatchEndPayload{Scope: ev.Scope, Result: ev.Match}, nil
	case game.EventTournamentEnd:
		return TournamentEndPayload{Scope: ev.Scope, Result: ev.Tournament}, nil
	default:
		return nil, fmt.Errorf("unknown event kind %q", ev.Kind)
	}
}

// EventMessage encodes an engine event as an envelope whose type is the event kind.
func EventMessage(ev game.Event) ([]byte, error) {
	payload, err := EventPayload(ev)
	if err != nil {
		return nil, err
	}
	return NewMessage(string(ev.Kind), payload)
}
