package stats

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"sort"

	"scopone-game/internal/game"
)

// Summary folds many tournaments between the same players into totals.
type Summary struct {
	Tournaments int            `json:"tournaments"`
	Matches     int            `json:"matches"`
	Hands       int            `json:"hands"`
	Sweeps      int            `json:"sweeps"`
	Wins        map[string]int `json:"wins"` // by team name
	MVPs        map[string]int `json:"mvps"` // by player name
}

// Aggregate builds a Summary from tournament results. Nil results are skipped.
func Aggregate(results []*game.TournamentResult) Summary {
	s := Summary{
		Wins: make(map[string]int),
		MVPs: make(map[string]int),
	}
	for _, r := range results {
		if r == nil {
			continue
		}
		s.Tournaments++
		for _, m := range r.Matches {
			s.Matches++
			s.Hands += m.Hands
			s.Sweeps += m.Sweeps
			s.Wins[m.Winner]++
			s.MVPs[m.MVP]++
		}
	}
	return s
}

// AverageHands returns the mean number of hands per match.
func (s Summary) AverageHands() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.Hands) / float64(s.Matches)
}

// SweepsPerHand returns the mean number of sweeps per hand, both teams together.
func (s Summary) SweepsPerHand() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Sweeps) / float64(s.Hands)
}

// Ranked returns the keys of counts, highest count first, ties by name.
func Ranked(counts map[string]int) []string {
	keys := slices.Collect(maps.Keys(counts))
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Write prints the summary as a short report.
func (s Summary) Write(w io.Writer) error {
	lines := []string{
		fmt.Sprintf("%d tournaments, %d matches, %d hands (%.2f per match), %d sweeps (%.2f per hand)",
			s.Tournaments, s.Matches, s.Hands, s.AverageHands(), s.Sweeps, s.SweepsPerHand()),
	}
	for _, team := range Ranked(s.Wins) {
		lines = append(lines, fmt.Sprintf("  %-24s %d wins", team, s.Wins[team]))
	}
	for _, player := range Ranked(s.MVPs) {
		lines = append(lines, fmt.Sprintf("  %-24s %d MVP", player, s.MVPs[player]))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
