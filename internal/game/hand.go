package game

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"scopone-game/internal/scoring"
	"scopone-game/internal/shared"
)

// HandState represents where a hand is in its lifecycle.
type HandState string

const (
	Fresh        HandState = "Fresh"        // Created, nothing dealt yet
	Dealt        HandState = "Dealt"        // Cards are in the players' hands
	InPlay       HandState = "InPlay"       // Rounds are being played
	TableCleared HandState = "TableCleared" // Leftovers went to the last looter
	Scored       HandState = "Scored"       // Terminal
)

// HandResult is what a scored hand hands back to the match.
type HandResult struct {
	Number         int                      `json:"number"`
	Deltas         [2]int                   `json:"deltas"`
	Breakdowns     [2]scoring.Breakdown     `json:"breakdowns"`
	PrimieraWinner int                      `json:"primiera_winner"` // team index, -1 on a tie
	Attribution    [shared.NumSeats]float64 `json:"attribution"`     // by roster index
}

// Hand is one deal played out to the last card. It borrows the players of its teams
// for its lifetime and refers to them by roster index.
type Hand struct {
	Number     int
	Teams      [2]*shared.Team
	Roster     [shared.NumSeats]*shared.Player
	Rotation   [shared.NumSeats]int // roster indices in turn order
	Table      []shared.Card
	State      HandState
	LastLooter int // roster index of the last player to capture, -1 if none

	deck  []shared.Card // every card dealt this hand
	dealt int
	env   Env
	scope Scope
	log   logrus.FieldLogger
}

// NewHand prepares a hand for the given teams and turn rotation.
func NewHand(number int, teams [2]*shared.Team, rotation [shared.NumSeats]int, env Env, scope Scope) *Hand {
	env = env.withDefaults()
	scope.Hand = number
	return &Hand{
		Number:     number,
		Teams:      teams,
		Roster:     Roster(teams),
		Rotation:   rotation,
		Table:      []shared.Card{},
		State:      Fresh,
		LastLooter: -1,
		env:        env,
		scope:      scope,
		log:        env.Logger.WithFields(logrus.Fields{"match": scope.Match, "hand": number}),
	}
}

// Run deals, plays every round, clears the table and scores the hand.
func (h *Hand) Run() (*HandResult, error) {
	h.Deal()
	rounds := len(h.Roster[0].Hand)
	for round := 1; round <= rounds; round++ {
		if err := h.PlayRound(round); err != nil {
			return nil, err
		}
	}
	h.Finalize()
	return h.Score(), nil
}

// Deal resets the teams and gives each seat an equal share of a freshly shuffled deck.
func (h *Hand) Deal() {
	deck := shared.NewDeck()
	deck.Shuffle(h.env.Rng)
	h.dealHands(deck.Deal(shared.NumSeats))
}

// dealHands installs the given hands, one per roster index.
func (h *Hand) dealHands(hands [][]shared.Card) {
	if h.State != Fresh {
		h.log.Panicf("Hand %d: cannot deal in state %s", h.Number, h.State)
	}
	if len(hands) != shared.NumSeats {
		h.log.Panicf("Hand %d: got %d hands for %d seats", h.Number, len(hands), shared.NumSeats)
	}
	for _, team := range h.Teams {
		team.Reset()
	}

	h.deck = nil
	for i, p := range h.Roster {
		p.Hand = append([]shared.Card(nil), hands[i]...)
		h.deck = append(h.deck, hands[i]...)
		if len(p.Hand) != len(hands[0]) {
			h.log.Panicf("Hand %d: unequal hands dealt", h.Number)
		}
		for _, c := range p.Hand {
			if !c.Valid() {
				h.log.Panicf("Hand %d: dealt %v which is not a deck card", h.Number, c)
			}
		}
	}
	h.dealt = len(h.deck)
	h.Table = []shared.Card{}
	h.LastLooter = -1
	h.State = Dealt
	h.log.Debugf("Hand %d: dealt %d cards", h.Number, h.dealt)
}

// PlayRound lets every seat play one card, in rotation order.
func (h *Hand) PlayRound(round int) error {
	if h.State != Dealt && h.State != InPlay {
		h.log.Panicf("Hand %d: cannot play round %d in state %s", h.Number, round, h.State)
	}
	h.State = InPlay
	for _, seat := range h.Rotation {
		if err := h.playTurn(round, seat); err != nil {
			return err
		}
	}
	return nil
}

// playTurn asks the seat for a card, resolves it and updates table and loot.
func (h *Hand) playTurn(round, seat int) error {
	player := h.Roster[seat]
	if len(player.Hand) == 0 {
		h.log.Panicf("Hand %d: %s has no card left in round %d", h.Number, player.Name, round)
	}

	card, err := h.env.Decider.ChooseCard(player, append([]shared.Card(nil), h.Table...))
	if err != nil {
		return fmt.Errorf("hand %d: %s choosing a card: %w", h.Number, player.Name, err)
	}
	if !player.HasCard(card) {
		h.log.Panicf("Hand %d: %s chose %s which is not in hand %s", h.Number, player.Name, card, shared.FormatCards(player.Hand))
	}
	player.RemoveCard(card)

	choose := func(options [][]shared.Card) ([]shared.Card, error) {
		return h.env.Decider.ChooseCapture(player, card, options)
	}
	capture, err := shared.ResolveCapture(h.Table, card, choose)
	if err != nil {
		return fmt.Errorf("hand %d: %s choosing a capture: %w", h.Number, player.Name, err)
	}

	// Emptying the table with the very last card of the hand is not a scopa
	sweep := capture.Sweep && h.cardsInHands() > 0

	kind := EventPlay
	if capture.Captured() {
		player.AddLoot(capture.Taken...)
		player.AddLoot(card)
		h.LastLooter = seat
		kind = EventCapture
		if sweep {
			player.Sweeps++
			kind = EventSweep
		}
	}
	h.Table = capture.Table
	h.checkConservation()

	h.log.WithField("player", player.Name).Debugf("Hand %d round %d: %s played %s, took %s, table %s",
		h.Number, round, player.Name, card, shared.FormatCards(capture.Taken), shared.FormatCards(h.Table))

	h.env.Sink.Emit(Event{
		Kind:  kind,
		Scope: h.scope,
		Round: round,
		Actor: player.Name,
		Card:  card,
		Taken: capture.Taken,
		Table: append([]shared.Card(nil), h.Table...),
		Sweep: sweep,
	})
	return nil
}

// Finalize hands whatever is left on the table to the last looter. This never counts as a sweep.
func (h *Hand) Finalize() {
	if h.State != InPlay || h.cardsInHands() != 0 {
		h.log.Panicf("Hand %d: cannot clear the table in state %s with %d cards in hand", h.Number, h.State, h.cardsInHands())
	}

	if len(h.Table) > 0 {
		if h.LastLooter < 0 {
			h.log.Panicf("Hand %d: table %s left with no looter", h.Number, shared.FormatCards(h.Table))
		}
		looter := h.Roster[h.LastLooter]
		leftovers := h.Table
		looter.AddLoot(leftovers...)
		h.Table = []shared.Card{}
		h.log.Debugf("Hand %d: %s clears the table %s", h.Number, looter.Name, shared.FormatCards(leftovers))

		h.env.Sink.Emit(Event{
			Kind:  EventClearTable,
			Scope: h.scope,
			Actor: looter.Name,
			Taken: leftovers,
			Table: []shared.Card{},
		})
	}

	h.checkPartition()
	h.State = TableCleared
}

// Score computes both teams' breakdowns, awards the primiera point and attributes
// each player's contribution. Team match scores are left to the match.
func (h *Hand) Score() *HandResult {
	if h.State != TableCleared {
		h.log.Panicf("Hand %d: cannot score in state %s", h.Number, h.State)
	}

	result := &HandResult{Number: h.Number}
	for i, team := range h.Teams {
		result.Breakdowns[i] = scoring.ScoreTeam(team)
	}
	result.PrimieraWinner = scoring.AwardPrimiera(&result.Breakdowns[0], &result.Breakdowns[1])

	for i, team := range h.Teams {
		b := result.Breakdowns[i]
		result.Deltas[i] = b.Points()
		h.env.Sink.Emit(Event{
			Kind:      EventScoreBreakdown,
			Scope:     h.scope,
			Actor:     team.Name(),
			Breakdown: &b,
		})
	}
	for i, p := range h.Roster {
		result.Attribution[i] = scoring.Attribute(p)
	}

	h.State = Scored
	h.log.Debugf("Hand %d: scored %d-%d", h.Number, result.Deltas[0], result.Deltas[1])
	return result
}

// CardCount returns hands + loots + table. It equals the dealt count at every turn boundary.
func (h *Hand) CardCount() int {
	total := len(h.Table)
	for _, p := range h.Roster {
		total += len(p.Hand) + len(p.Loot)
	}
	return total
}

func (h *Hand) cardsInHands() int {
	n := 0
	for _, p := range h.Roster {
		n += len(p.Hand)
	}
	return n
}

// checkConservation panics when a card has appeared or vanished.
func (h *Hand) checkConservation() {
	if n := h.CardCount(); n != h.dealt {
		h.log.Panicf("Hand %d: %d cards in play, %d were dealt", h.Number, n, h.dealt)
	}
}

// checkPartition panics unless the players' loot is exactly the dealt cards, once each.
func (h *Hand) checkPartition() {
	seen := make(map[shared.Card]bool, h.dealt)
	for _, p := range h.Roster {
		for _, c := range p.Loot {
			if seen[c] {
				h.log.Panicf("Hand %d: %s captured twice", h.Number, c)
			}
			seen[c] = true
		}
	}
	if len(seen) != h.dealt {
		h.log.Panicf("Hand %d: loot holds %d cards, %d were dealt", h.Number, len(seen), h.dealt)
	}
	for _, c := range h.deck {
		if !seen[c] {
			h.log.Panicf("Hand %d: %s missing from loot", h.Number, c)
		}
	}
}
