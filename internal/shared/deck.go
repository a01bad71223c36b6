package shared

import (
	"log"
	"math/rand/v2"
)

// Deck represents a collection of cards.
type Deck struct {
	Cards []Card
}

// NewDeck creates the 40-card Italian deck, suit-major and rank-minor.
func NewDeck() *Deck {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for rank := MinRank; rank <= MaxRank; rank++ {
			cards = append(cards, Card{Suit: suit, Rank: rank})
		}
	}
	return &Deck{Cards: cards}
}

// Shuffle randomizes the order of cards in the deck using rng.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.Cards), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

// Deal splits the whole deck into numPlayers equal hands, each sorted, and empties the deck.
// The deck size must be a multiple of numPlayers; anything else is a setup bug.
func (d *Deck) Deal(numPlayers int) [][]Card {
	if numPlayers <= 0 || len(d.Cards)%numPlayers != 0 {
		log.Panicf("cannot deal %d cards evenly to %d players", len(d.Cards), numPlayers)
	}
	cardsPerPlayer := len(d.Cards) / numPlayers

	dealt := make([][]Card, numPlayers)
	start := 0
	for i := 0; i < numPlayers; i++ {
		end := start + cardsPerPlayer
		// Copy so hands do not alias the deck's backing array
		hand := make([]Card, cardsPerPlayer)
		copy(hand, d.Cards[start:end])
		SortCards(hand)
		dealt[i] = hand
		start = end
	}

	d.Cards = []Card{}
	return dealt
}
