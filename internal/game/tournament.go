package game

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"scopone-game/internal/shared"
	"scopone-game/internal/types"
)

// TeamInfo describes a roster for result consumers.
type TeamInfo struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Players [2]string `json:"players"`
}

// MatchSummary is one row of the tournament scoreboard.
type MatchSummary struct {
	Number   int     `json:"number"`
	Hands    int     `json:"hands"`
	Winner   string  `json:"winner"`
	Peak     [2]int  `json:"peak"` // per team, in TournamentResult.Teams order
	MVP      string  `json:"mvp"`
	MVPScore float64 `json:"mvp_score"`
	Sweeps   int     `json:"sweeps"`
}

// TournamentResult is the consumable outcome of a tournament.
type TournamentResult struct {
	ID        string                  `json:"id"`
	CreatedAt time.Time               `json:"created_at"`
	Teams     [2]TeamInfo             `json:"teams"`
	Seats     [shared.NumSeats]string `json:"seats"`
	Matches   []MatchSummary          `json:"matches"`
	Details   []*MatchResult          `json:"-"`
}

// Players lists every player name in the tournament.
func (r *TournamentResult) Players() []string {
	return []string{
		r.Teams[0].Players[0], r.Teams[0].Players[1],
		r.Teams[1].Players[0], r.Teams[1].Players[1],
	}
}

// Tournament runs a fixed number of matches between the same two rosters.
type Tournament struct {
	ID        string
	CreatedAt time.Time
	Teams     [2]*shared.Team
	Seats     [shared.NumSeats]int // roster indices, alternating teams
	Matches   int
	Results   []*MatchResult

	env Env
	log logrus.FieldLogger
}

// NewTournament validates the rosters and seats the players once for every match.
func NewTournament(team1, team2 [2]string, matches int, env Env) (*Tournament, error) {
	if err := validateRosters(team1, team2); err != nil {
		return nil, err
	}
	if matches < 1 {
		return nil, types.Errorf(types.ErrInvalidConfig, "a tournament needs at least one match, got %d", matches)
	}

	env = env.withDefaults()
	id := uuid.NewString()
	t := &Tournament{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		Teams: [2]*shared.Team{
			shared.NewTeam(1, shared.NewPlayer(team1[0]), shared.NewPlayer(team1[1])),
			shared.NewTeam(2, shared.NewPlayer(team2[0]), shared.NewPlayer(team2[1])),
		},
		Matches: matches,
		env:     env,
		log:     env.Logger.WithField("tournament", id),
	}
	t.assignSeats()
	return t, nil
}

func validateRosters(team1, team2 [2]string) error {
	seen := map[string]bool{}
	for _, name := range []string{team1[0], team1[1], team2[0], team2[1]} {
		if name == "" {
			return types.NewGameError(types.ErrInvalidConfig, "player names must not be empty")
		}
		if seen[name] {
			return types.Errorf(types.ErrInvalidConfig, "duplicate player name %q", name)
		}
		seen[name] = true
	}
	return nil
}

// assignSeats shuffles the team order and the partners inside each team, then seats
// players alternating teams so partners sit opposite each other.
func (t *Tournament) assignSeats() {
	rng := t.env.Rng
	if rng.IntN(2) == 1 {
		t.Teams[0], t.Teams[1] = t.Teams[1], t.Teams[0]
	}
	for _, team := range t.Teams {
		if rng.IntN(2) == 1 {
			team.Players[0], team.Players[1] = team.Players[1], team.Players[0]
		}
	}
	// Roster order is t0p0, t0p1, t1p0, t1p1
	t.Seats = [shared.NumSeats]int{0, 2, 1, 3}
}

// Players returns the players in seating order.
func (t *Tournament) Players() [shared.NumSeats]*shared.Player {
	roster := Roster(t.Teams)
	var seated [shared.NumSeats]*shared.Player
	for i, idx := range t.Seats {
		seated[i] = roster[idx]
	}
	return seated
}

// Run plays every match in order. Cancellation is checked between matches.
func (t *Tournament) Run(ctx context.Context) (*TournamentResult, error) {
	scope := Scope{Tournament: t.ID}
	for n := len(t.Results) + 1; n <= t.Matches; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		match := NewMatch(n, t.Teams, t.Seats, t.env, scope)
		result, err := match.Run()
		if err != nil {
			return nil, fmt.Errorf("tournament %s match %d: %w", t.ID, n, err)
		}
		t.Results = append(t.Results, result)
	}

	result := t.result()
	t.log.Infof("Tournament %s: %d matches played", t.ID, len(result.Matches))
	t.env.Sink.Emit(Event{
		Kind:       EventTournamentEnd,
		Scope:      scope,
		Tournament: result,
	})
	return result, nil
}

func (t *Tournament) result() *TournamentResult {
	result := &TournamentResult{
		ID:        t.ID,
		CreatedAt: t.CreatedAt,
		Details:   t.Results,
	}
	for i, team := range t.Teams {
		result.Teams[i] = TeamInfo{
			ID:      team.ID,
			Name:    team.Name(),
			Players: [2]string{team.Players[0].Name, team.Players[1].Name},
		}
	}
	for i, p := range t.Players() {
		result.Seats[i] = p.Name
	}
	for _, m := range t.Results {
		result.Matches = append(result.Matches, MatchSummary{
			Number:   m.Number,
			Hands:    m.Hands,
			Winner:   m.Winner,
			Peak:     m.Peak,
			MVP:      m.MVP,
			MVPScore: m.MVPScore,
			Sweeps:   m.Sweeps,
		})
	}
	return result
}
