package game

import (
	"scopone-game/internal/scoring"
	"scopone-game/internal/shared"
)

// EventKind names a state transition reported to presenters.
type EventKind string

const (
	EventPlay           EventKind = "play"            // card laid on the table
	EventCapture        EventKind = "capture"         // card captured table cards
	EventSweep          EventKind = "sweep"           // capture emptied the table mid-hand
	EventClearTable     EventKind = "clear_table"     // last looter takes the leftovers
	EventScoreBreakdown EventKind = "score_breakdown" // one team's scoring for the hand
	EventHandEnd        EventKind = "hand_end"
	EventMatchEnd       EventKind = "match_end"
	EventTournamentEnd  EventKind = "tournament_end"
)

// Scope locates an event inside a tournament. Zero values mean "not inside one".
type Scope struct {
	Tournament string `json:"tournament,omitempty"`
	Match      int    `json:"match,omitempty"`
	Hand       int    `json:"hand,omitempty"`
}

// Event is one structured record of what the engine did.
type Event struct {
	Kind  EventKind
	Scope Scope
	Round int    // 1-based round inside the hand, play events only
	Actor string // player name for plays, team name for score breakdowns

	Card  shared.Card   // played card
	Taken []shared.Card // captured or cleared cards
	Table []shared.Card // table after the action
	Sweep bool

	Breakdown   *scoring.Breakdown
	Deltas      [2]int // hand points per team
	Scores      [2]int // running match score per team
	Attribution [4]float64

	Match      *MatchResult
	Tournament *TournamentResult
}

// Sink receives events. Emit must not block for long: the engine is synchronous.
type Sink interface {
	Emit(ev Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ev Event)

// Emit calls f(ev).
func (f SinkFunc) Emit(ev Event) {
	f(ev)
}

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// Multi fans an event out to several sinks in order.
type Multi []Sink

// Emit forwards ev to every sink.
func (m Multi) Emit(ev Event) {
	for _, s := range m {
		s.Emit(ev)
	}
}

// Recorder keeps every event in memory; handy for tests and replay.
type Recorder struct {
	Events []Event
}

// Emit appends ev.
func (r *Recorder) Emit(ev Event) {
	r.Events = append(r.Events, ev)
}

// Kinds returns the recorded event kinds in order.
func (r *Recorder) Kinds() []EventKind {
	kinds := make([]EventKind, len(r.Events))
	for i, ev := range r.Events {
		kinds[i] = ev.Kind
	}
	return kinds
}

// Filter returns the recorded events of the given kind.
func (r *Recorder) Filter(kind EventKind) []Event {
	var out []Event
	for _, ev := range r.Events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}
