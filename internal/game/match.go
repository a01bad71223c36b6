package game

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"scopone-game/internal/scoring"
	"scopone-game/internal/shared"
)

// ScoreRow is one line of the match scoreboard: running team scores after the hand
// and the per-player attribution earned in that hand.
type ScoreRow struct {
	Hand        int                      `json:"hand"`
	Scores      [2]int                   `json:"scores"`
	Attribution [shared.NumSeats]float64 `json:"attribution"`
}

// MatchResult is the consumable outcome of a finished match.
type MatchResult struct {
	ID          string     `json:"id"`
	Number      int        `json:"number"`
	Hands       int        `json:"hands"`
	Winner      string     `json:"winner"` // team name
	WinnerIndex int        `json:"winner_index"`
	Peak        [2]int     `json:"peak"` // highest score reached per team
	MVP         string     `json:"mvp"`
	MVPScore    float64    `json:"mvp_score"`
	Sweeps      int        `json:"sweeps"`
	Scoreboard  []ScoreRow `json:"scoreboard"`
}

// Match plays hands between two teams until one of them leads at or above the goal.
type Match struct {
	ID         string
	Number     int
	Teams      [2]*shared.Team
	Goal       int
	Rotation   [shared.NumSeats]int // turn order of the next hand, roster indices
	Scores     [2]int
	Scoreboard []ScoreRow
	Hands      []*HandResult

	env     Env
	scope   Scope
	log     logrus.FieldLogger
	runHand func(h *Hand) (*HandResult, error)
}

// NewMatch creates a match for the seating order given as roster indices.
// The first player is picked at random and the seating is rotated to start there.
func NewMatch(number int, teams [2]*shared.Team, seats [shared.NumSeats]int, env Env, scope Scope) *Match {
	env = env.withDefaults()
	scope.Match = number
	id := uuid.NewString()

	m := &Match{
		ID:      id,
		Number:  number,
		Teams:   teams,
		Goal:    scoring.MatchGoal,
		env:     env,
		scope:   scope,
		log:     env.Logger.WithFields(logrus.Fields{"match": number, "match_id": id}),
		runHand: (*Hand).Run,
	}

	first := env.Rng.IntN(shared.NumSeats)
	for i := range m.Rotation {
		m.Rotation[i] = seats[(first+i)%shared.NumSeats]
	}
	return m
}

// Over reports whether a match with these scores is finished: the leader has reached
// the goal and the scores are not tied.
func Over(scores [2]int, goal int) bool {
	return max(scores[0], scores[1]) >= goal && scores[0] != scores[1]
}

// Run plays hands until the match is over and returns its result.
func (m *Match) Run() (*MatchResult, error) {
	for _, team := range m.Teams {
		team.ResetScore()
	}
	m.Scores = [2]int{}

	for !Over(m.Scores, m.Goal) {
		number := len(m.Scoreboard) + 1
		hand := NewHand(number, m.Teams, m.Rotation, m.env, m.scope)
		result, err := m.runHand(hand)
		if err != nil {
			return nil, err
		}
		m.record(result)
		m.rotate()
	}

	result := m.result()
	m.log.Infof("Match %d: %s wins %d-%d after %d hands, MVP %s",
		m.Number, result.Winner, m.Scores[0], m.Scores[1], result.Hands, result.MVP)
	m.env.Sink.Emit(Event{
		Kind:   EventMatchEnd,
		Scope:  m.scope,
		Actor:  result.Winner,
		Scores: m.Scores,
		Match:  result,
	})
	return result, nil
}

// record folds a hand result into the running scores and the scoreboard.
func (m *Match) record(result *HandResult) {
	for i, team := range m.Teams {
		m.Scores[i] += result.Deltas[i]
		team.Score = m.Scores[i]
	}
	m.Hands = append(m.Hands, result)
	m.Scoreboard = append(m.Scoreboard, ScoreRow{
		Hand:        result.Number,
		Scores:      m.Scores,
		Attribution: result.Attribution,
	})

	scope := m.scope
	scope.Hand = result.Number
	m.env.Sink.Emit(Event{
		Kind:        EventHandEnd,
		Scope:       scope,
		Deltas:      result.Deltas,
		Scores:      m.Scores,
		Attribution: result.Attribution,
	})
}

// rotate moves the first seat to the end of the turn order.
func (m *Match) rotate() {
	first := m.Rotation[0]
	copy(m.Rotation[:], m.Rotation[1:])
	m.Rotation[shared.NumSeats-1] = first
}

func (m *Match) result() *MatchResult {
	roster := Roster(m.Teams)
	result := &MatchResult{
		ID:         m.ID,
		Number:     m.Number,
		Hands:      len(m.Scoreboard),
		Scoreboard: m.Scoreboard,
	}

	for _, row := range m.Scoreboard {
		for i, s := range row.Scores {
			result.Peak[i] = max(result.Peak[i], s)
		}
	}
	for _, h := range m.Hands {
		result.Sweeps += h.Breakdowns[0].Sweeps + h.Breakdowns[1].Sweeps
	}

	// Scores are never tied once the match is over; on a tie the first team wins.
	if m.Scores[1] > m.Scores[0] {
		result.WinnerIndex = 1
	}
	result.Winner = m.Teams[result.WinnerIndex].Name()

	totals := m.Attribution()
	mvp := 0
	for i := range totals {
		if totals[i] > totals[mvp] {
			mvp = i
		}
	}
	result.MVP = roster[mvp].Name
	result.MVPScore = totals[mvp]
	return result
}

// Attribution sums each roster player's attribution over the hands played so far.
func (m *Match) Attribution() [shared.NumSeats]float64 {
	var totals [shared.NumSeats]float64
	for _, row := range m.Scoreboard {
		for i, v := range row.Attribution {
			totals[i] += v
		}
	}
	return totals
}
