package presenter

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"scopone-game/internal/game"
	"scopone-game/internal/scoring"
	"scopone-game/internal/shared"
)

// Text renders the event stream as plain English lines.
type Text struct {
	mu    sync.Mutex
	w     io.Writer
	quiet bool // only match and tournament summaries
	round int
	err   error
}

// NewText writes every event to w.
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

// NewSummary writes only match and tournament results to w.
func NewSummary(w io.Writer) *Text {
	return &Text{w: w, quiet: true}
}

// Err returns the first write error, if any.
func (t *Text) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Emit implements game.Sink.
func (t *Text) Emit(ev game.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return
	}
	if t.quiet && ev.Kind != game.EventMatchEnd && ev.Kind != game.EventTournamentEnd {
		return
	}
	for _, line := range t.lines(ev) {
		if _, err := fmt.Fprintln(t.w, line); err != nil {
			t.err = err
			return
		}
	}
}

func (t *Text) lines(ev game.Event) []string {
	var out []string
	switch ev.Kind {
	case game.EventPlay, game.EventCapture, game.EventSweep:
		if ev.Round != t.round {
			t.round = ev.Round
			out = append(out, fmt.Sprintf("-- Hand %d, round %d --", ev.Scope.Hand, ev.Round))
		}
		out = append(out, PlayLine(ev))
	case game.EventClearTable:
		t.round = 0
		out = append(out, PlayLine(ev))
	case game.EventScoreBreakdown:
		if ev.Breakdown != nil {
			out = append(out, fmt.Sprintf("%s: %s", ev.Actor, BreakdownLine(*ev.Breakdown)))
		}
	case game.EventHandEnd:
		t.round = 0
		out = append(out, fmt.Sprintf("Hand %d: +%d/+%d, score %d-%d",
			ev.Scope.Hand, ev.Deltas[0], ev.Deltas[1], ev.Scores[0], ev.Scores[1]), "")
	case game.EventMatchEnd:
		if m := ev.Match; m != nil {
			out = append(out, fmt.Sprintf("Match %d: %s wins %d-%d after %d hands. MVP: %s (%.2f)",
				m.Number, m.Winner, ev.Scores[0], ev.Scores[1], m.Hands, m.MVP, m.MVPScore))
		}
	case game.EventTournamentEnd:
		if r := ev.Tournament; r != nil {
			out = append(out, Scoreboard(r)...)
		}
	}
	return out
}

// PlayLine describes a single play, capture, sweep or table clearing.
func PlayLine(ev game.Event) string {
	switch ev.Kind {
	case game.EventPlay:
		return fmt.Sprintf("%s plays %s. Table: %s", ev.Actor, ev.Card, shared.FormatCards(ev.Table))
	case game.EventClearTable:
		return fmt.Sprintf("%s clears the table %s.", ev.Actor, shared.FormatCards(ev.Taken))
	default:
		line := fmt.Sprintf("%s takes %s playing %s. Table: %s",
			ev.Actor, shared.FormatCards(ev.Taken), ev.Card, shared.FormatCards(ev.Table))
		if ev.Sweep {
			line += " SCOPA!"
		}
		return line
	}
}

// BreakdownLine lists the points of a team's hand the way a scorer calls them out.
func BreakdownLine(b scoring.Breakdown) string {
	var parts []string
	if b.Sweeps > 0 {
		parts = append(parts, fmt.Sprintf("+%d sweeps", b.Sweeps))
	}
	switch {
	case b.CoinCount == 10:
		parts = append(parts, fmt.Sprintf("+1 coins [%d -> CAPPOTTO!]", b.CoinCount))
	case b.Coins > 0:
		parts = append(parts, fmt.Sprintf("+1 coins [%d]", b.CoinCount))
	case b.CoinCount == 5:
		parts = append(parts, "coins tied [5]")
	}
	if b.Settebello > 0 {
		parts = append(parts, "+1 settebello")
	}
	switch {
	case b.Cards > 0:
		parts = append(parts, fmt.Sprintf("+1 cards [%d]", b.CardCount))
	case b.CardCount == shared.DeckSize/2:
		parts = append(parts, fmt.Sprintf("cards tied [%d]", b.CardCount))
	}
	if b.PrimieraPoint > 0 {
		parts = append(parts, fmt.Sprintf("+1 primiera [%d]", b.Primiera))
	}
	parts = append(parts, fmt.Sprintf("points %d", b.Points()))
	return strings.Join(parts, ", ")
}

// Scoreboard renders the tournament summary table.
func Scoreboard(r *game.TournamentResult) []string {
	out := []string{
		fmt.Sprintf("Tournament %s: %s vs %s", r.ID, r.Teams[0].Name, r.Teams[1].Name),
		fmt.Sprintf("Seats: %s", strings.Join(r.Seats[:], ", ")),
		fmt.Sprintf("%-5s %-5s %-24s %-9s %-6s %s", "Match", "Hands", "Winner", "Peak", "Sweeps", "MVP"),
	}
	for _, m := range r.Matches {
		out = append(out, fmt.Sprintf("%-5d %-5d %-24s %-9s %-6d %s (%.2f)",
			m.Number, m.Hands, m.Winner, fmt.Sprintf("%d-%d", m.Peak[0], m.Peak[1]), m.Sweeps, m.MVP, m.MVPScore))
	}
	return out
}
