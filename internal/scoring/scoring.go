// Package scoring computes the end-of-hand bonuses of Scopone Scientifico and the
// per-player contribution heuristic used to elect a match MVP.
package scoring

import (
	"scopone-game/internal/shared"
)

const (
	MatchGoal     = 21 // points needed to win a match
	CardGoal      = 21 // cards needed for the card-majority point (more than half of 40)
	CoinGoal      = 6  // coins needed for the coin-majority point (more than half of 10)
	CappottoBonus = 21 // extra points for capturing all ten coins
)

// PrimieraValues maps a rank to its primiera value.
var PrimieraValues = map[int]int{
	7:  21,
	6:  18,
	1:  16,
	5:  15,
	4:  14,
	3:  13,
	2:  12,
	8:  10,
	9:  10,
	10: 10,
}

// Breakdown is one team's scoring for a single hand.
type Breakdown struct {
	Sweeps        int `json:"sweeps"`
	CardCount     int `json:"card_count"`
	Cards         int `json:"cards"`
	CoinCount     int `json:"coin_count"`
	Coins         int `json:"coins"`
	Settebello    int `json:"settebello"`
	Primiera      int `json:"primiera"`       // primiera value, not points
	PrimieraPoint int `json:"primiera_point"` // set by AwardPrimiera
}

// Points returns the hand points earned by the team.
func (b Breakdown) Points() int {
	return b.Sweeps + b.Cards + b.Coins + b.Settebello + b.PrimieraPoint
}

// CardMajority returns 1 for more than 20 captured cards. Exactly 20 is a tie.
func CardMajority(count int) int {
	if count >= CardGoal {
		return 1
	}
	return 0
}

// CoinMajority returns the coin-suit points for n captured coins: 5 is a tie,
// 6 to 9 earn a point, all ten earn the point plus the cappotto bonus.
func CoinMajority(n int) int {
	switch {
	case n == 10:
		return 1 + CappottoBonus
	case n >= CoinGoal:
		return 1
	default:
		return 0
	}
}

// SettebelloPoint returns 1 when the seven of coins is among cards.
func SettebelloPoint(cards []shared.Card) int {
	for _, c := range cards {
		if c == shared.Settebello {
			return 1
		}
	}
	return 0
}

// suitMaxima returns the best primiera value per suit, 0 for absent suits.
func suitMaxima(cards []shared.Card) map[shared.Suit]int {
	best := make(map[shared.Suit]int, len(shared.Suits))
	for _, c := range cards {
		if v := PrimieraValues[c.Rank]; v > best[c.Suit] {
			best[c.Suit] = v
		}
	}
	return best
}

// Primiera sums the best card of each suit. A team missing any suit scores 0.
func Primiera(cards []shared.Card) int {
	best := suitMaxima(cards)
	total := 0
	for _, suit := range shared.Suits {
		v, ok := best[suit]
		if !ok {
			return 0
		}
		total += v
	}
	return total
}

// PartialPrimiera sums the best card of each suit that is present, ignoring missing suits.
func PartialPrimiera(cards []shared.Card) int {
	total := 0
	for _, v := range suitMaxima(cards) {
		total += v
	}
	return total
}

// ScoreTeam computes the team's breakdown from its players' loot and stores the
// primiera value on the team. The primiera point is left for AwardPrimiera.
func ScoreTeam(team *shared.Team) Breakdown {
	loot := team.Loot()
	coins := shared.CountSuit(loot, shared.Denari)
	b := Breakdown{
		Sweeps:     team.Sweeps(),
		CardCount:  len(loot),
		Cards:      CardMajority(len(loot)),
		CoinCount:  coins,
		Coins:      CoinMajority(coins),
		Settebello: SettebelloPoint(loot),
		Primiera:   Primiera(loot),
	}
	team.Primiera = b.Primiera
	return b
}

// AwardPrimiera gives the primiera point to the team with the strictly higher value.
// It returns the index (0 or 1) of the awarded team, or -1 on a tie.
func AwardPrimiera(a, b *Breakdown) int {
	switch {
	case a.Primiera > b.Primiera:
		a.PrimieraPoint = 1
		return 0
	case b.Primiera > a.Primiera:
		b.PrimieraPoint = 1
		return 1
	default:
		return -1
	}
}

// Attribute estimates how much a player carried the team in the hand just played.
// It is a heuristic, not an official rule: sweeps, card share, coin share, settebello
// and a primiera ratio against every card the player did not take are each normalized
// to at most 1 (sweeps excepted) and the sum is scaled by the match goal.
func Attribute(p *shared.Player) float64 {
	sweeps := float64(p.Sweeps)
	cards := min(float64(len(p.Loot))/CardGoal, 1)
	coins := min(float64(p.CoinCount())/CoinGoal, 1)
	settebello := float64(SettebelloPoint(p.Loot))
	primiera := min(primieraShare(p.Loot), 1)
	return (sweeps + cards + coins + settebello + primiera) / MatchGoal
}

// primieraShare compares own primiera to that of the complement, split across the four seats.
func primieraShare(loot []shared.Card) float64 {
	own := make(map[shared.Card]bool, len(loot))
	for _, c := range loot {
		own[c] = true
	}
	var rest []shared.Card
	for _, c := range shared.NewDeck().Cards {
		if !own[c] {
			rest = append(rest, c)
		}
	}
	others := PartialPrimiera(rest)
	if others == 0 {
		return 1
	}
	return float64(PartialPrimiera(loot)) / float64(others) / shared.NumSeats
}
