package shared

import (
	"fmt"

	"github.com/google/uuid"
)

// Team represents a pair of partners sitting opposite each other.
type Team struct {
	ID       string     `json:"id"`
	Number   int        `json:"number"` // 1 or 2, order of creation
	Players  [2]*Player `json:"players"`
	Score    int        `json:"score"`    // running match score
	Primiera int        `json:"primiera"` // primiera value of the last scored hand

	name string // fixed at creation, seating shuffles do not change it
}

// NewTeam creates a new team with the given logical number and players.
// It generates a unique UUID for the team ID.
func NewTeam(number int, player1, player2 *Player) *Team {
	return &Team{
		ID:      uuid.NewString(),
		Number:  number,
		Players: [2]*Player{player1, player2},
		name:    fmt.Sprintf("Team(%s, %s)", player1.Name, player2.Name),
	}
}

// Name renders the team as "Team(A, B)" with the players in roster order, however
// they are seated.
func (t *Team) Name() string {
	return t.name
}

// Loot returns the union of both partners' captured cards.
func (t *Team) Loot() []Card {
	loot := make([]Card, 0, len(t.Players[0].Loot)+len(t.Players[1].Loot))
	loot = append(loot, t.Players[0].Loot...)
	return append(loot, t.Players[1].Loot...)
}

// Sweeps returns the partners' combined sweep count.
func (t *Team) Sweeps() int {
	return t.Players[0].Sweeps + t.Players[1].Sweeps
}

// Has reports whether the player belongs to the team.
func (t *Team) Has(p *Player) bool {
	return t.Players[0] == p || t.Players[1] == p
}

// Reset clears the players' per-hand state. The match score is left alone.
func (t *Team) Reset() {
	for _, p := range t.Players {
		p.Reset()
	}
	t.Primiera = 0
}

// AddScore adds points to the team's running score.
func (t *Team) AddScore(points int) {
	t.Score += points
}

// ResetScore resets the score to 0.
func (t *Team) ResetScore() {
	t.Score = 0
}
