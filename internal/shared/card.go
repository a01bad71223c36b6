package shared

import (
	"fmt"
	"sort"
	"strings"
)

// Suit represents the suit of a card (Spade, Bastoni, Denari, Coppe).
type Suit string

const (
	Spade   Suit = "Spade"   // spades
	Bastoni Suit = "Bastoni" // clubs
	Denari  Suit = "Denari"  // coins
	Coppe   Suit = "Coppe"   // cups
)

// Suits lists the suits in their fixed ordering. Deck order and card ordering follow it.
var Suits = []Suit{Spade, Bastoni, Denari, Coppe}

var suitSymbols = map[Suit]string{
	Spade:   "♠",
	Bastoni: "♣",
	Denari:  "♦",
	Coppe:   "♥",
}

// Face labels, indexed by rank (index 0 unused)
var rankLabels = [...]string{"", "A", "2", "3", "4", "5", "6", "7", "J", "Q", "K"}

const (
	MinRank   = 1
	MaxRank   = 10
	DeckSize  = 40
	NumSeats  = 4
	HandSize  = DeckSize / NumSeats
	TeamCount = 2
)

// Index returns the position of the suit in Suits, or -1 for an unknown suit.
func (s Suit) Index() int {
	for i, suit := range Suits {
		if suit == s {
			return i
		}
	}
	return -1
}

// Card is an immutable (rank, suit) pair. It is comparable and can be used as a map key.
type Card struct {
	Suit Suit `json:"suit"`
	Rank int  `json:"rank"` // 1..10, A=1, J=8, Q=9, K=10
}

// Settebello is the seven of coins.
var Settebello = Card{Suit: Denari, Rank: 7}

// String renders the card as face label plus suit symbol, e.g. "7♦".
func (c Card) String() string {
	label := "?"
	if c.Rank >= MinRank && c.Rank <= MaxRank {
		label = rankLabels[c.Rank]
	}
	return label + suitSymbols[c.Suit]
}

// Less orders cards by rank, then by suit index.
func (c Card) Less(other Card) bool {
	if c.Rank != other.Rank {
		return c.Rank < other.Rank
	}
	return c.Suit.Index() < other.Suit.Index()
}

// Valid reports whether the card belongs to the 40-card deck.
func (c Card) Valid() bool {
	return c.Rank >= MinRank && c.Rank <= MaxRank && c.Suit.Index() >= 0
}

// SortCards sorts cards in place by (rank, suit).
func SortCards(cards []Card) {
	sort.Slice(cards, func(i, j int) bool { return cards[i].Less(cards[j]) })
}

// Sorted returns a sorted copy of cards.
func Sorted(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	SortCards(out)
	return out
}

// RankSum sums the ranks of the given cards.
func RankSum(cards []Card) int {
	sum := 0
	for _, c := range cards {
		sum += c.Rank
	}
	return sum
}

// FormatCards renders a card slice as "[A♠ 7♦]".
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, " "))
}
