package shared

import "github.com/google/uuid"

// Player represents one of the four seats at the table.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Hand   []Card `json:"-"` // Cards still held in the current hand
	Loot   []Card `json:"-"` // Cards captured in the current hand
	Sweeps int    `json:"-"` // Scope made in the current hand
}

// NewPlayer creates a player with a fresh UUID.
func NewPlayer(name string) *Player {
	return &Player{
		ID:   uuid.NewString(),
		Name: name,
		Hand: []Card{},
		Loot: []Card{},
	}
}

// Reset clears per-hand state: hand, loot and sweep counter.
func (p *Player) Reset() {
	p.Hand = []Card{}
	p.Loot = []Card{}
	p.Sweeps = 0
}

// String returns the player's name.
func (p *Player) String() string {
	return p.Name
}

// HasCard reports whether the card is in the player's hand.
func (p *Player) HasCard(card Card) bool {
	for _, c := range p.Hand {
		if c == card {
			return true
		}
	}
	return false
}

// RemoveCard removes a card from the player's hand.
func (p *Player) RemoveCard(card Card) bool {
	for i, c := range p.Hand {
		if c == card {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// AddLoot appends captured cards to the player's loot.
func (p *Player) AddLoot(cards ...Card) {
	p.Loot = append(p.Loot, cards...)
}

// CoinCount returns how many Denari the player has captured.
func (p *Player) CoinCount() int {
	return CountSuit(p.Loot, Denari)
}

// CountSuit counts the cards of a suit.
func CountSuit(cards []Card, suit Suit) int {
	n := 0
	for _, c := range cards {
		if c.Suit == suit {
			n++
		}
	}
	return n
}
