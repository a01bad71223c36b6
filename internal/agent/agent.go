// Package agent holds the decision sources that drive players: an automated random
// policy and a human reading selections from a terminal. Controllers only see Decider.
package agent

import (
	"math/rand/v2"

	"scopone-game/internal/shared"
)

// Decider picks the card a player lays and, when a played card has several legal
// captures, which one to take. Deciders never mutate the player; the hand controller
// removes the chosen card.
type Decider interface {
	// ChooseCard returns a card from p.Hand.
	ChooseCard(p *shared.Player, table []shared.Card) (shared.Card, error)

	// ChooseCapture returns one of options, which are in canonical order.
	ChooseCapture(p *shared.Player, played shared.Card, options [][]shared.Card) ([]shared.Card, error)
}

// Random plays a uniformly random card and always takes the first capture option.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates the automated policy on top of rng.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// ChooseCard picks a card uniformly at random.
func (r *Random) ChooseCard(p *shared.Player, _ []shared.Card) (shared.Card, error) {
	return p.Hand[r.rng.IntN(len(p.Hand))], nil
}

// ChooseCapture takes the canonical first option.
func (r *Random) ChooseCapture(_ *shared.Player, _ shared.Card, options [][]shared.Card) ([]shared.Card, error) {
	return options[0], nil
}

// Seats dispatches to a per-player Decider, falling back to a default one.
type Seats struct {
	byID     map[string]Decider
	fallback Decider
}

// NewSeats creates a dispatcher where every player uses fallback until assigned.
func NewSeats(fallback Decider) *Seats {
	return &Seats{
		byID:     make(map[string]Decider),
		fallback: fallback,
	}
}

// Assign makes d decide for p.
func (s *Seats) Assign(p *shared.Player, d Decider) {
	s.byID[p.ID] = d
}

// For returns the Decider in charge of p.
func (s *Seats) For(p *shared.Player) Decider {
	if d, ok := s.byID[p.ID]; ok {
		return d
	}
	return s.fallback
}

func (s *Seats) ChooseCard(p *shared.Player, table []shared.Card) (shared.Card, error) {
	return s.For(p).ChooseCard(p, table)
}

func (s *Seats) ChooseCapture(p *shared.Player, played shared.Card, options [][]shared.Card) ([]shared.Card, error) {
	return s.For(p).ChooseCapture(p, played, options)
}
