package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"scopone-game/internal/agent"
	"scopone-game/internal/shared"
	"scopone-game/internal/types"
)

func c(rank int, suit shared.Suit) shared.Card {
	return shared.Card{Suit: suit, Rank: rank}
}

// leftmost always plays the first card in hand and takes the canonical capture.
type leftmost struct{}

func (leftmost) ChooseCard(p *shared.Player, _ []shared.Card) (shared.Card, error) {
	return p.Hand[0], nil
}

func (leftmost) ChooseCapture(_ *shared.Player, _ shared.Card, options [][]shared.Card) ([]shared.Card, error) {
	return options[0], nil
}

func newTeams() [2]*shared.Team {
	return [2]*shared.Team{
		shared.NewTeam(1, shared.NewPlayer("Anna"), shared.NewPlayer("Bruno")),
		shared.NewTeam(2, shared.NewPlayer("Carla"), shared.NewPlayer("Dario")),
	}
}

func scriptedHand(t *testing.T, rec *Recorder, hands [][]shared.Card) *Hand {
	t.Helper()
	h := NewHand(1, newTeams(), [shared.NumSeats]int{0, 1, 2, 3}, Env{
		Rng:     NewRand(1),
		Decider: leftmost{},
		Sink:    rec,
	}, Scope{Match: 1})
	h.dealHands(hands)
	return h
}

func playOut(t *testing.T, h *Hand) *HandResult {
	t.Helper()
	rounds := len(h.Roster[0].Hand)
	for round := 1; round <= rounds; round++ {
		require.NoError(t, h.PlayRound(round))
	}
	h.Finalize()
	return h.Score()
}

func TestHandSweepMidHandAndLastCapture(t *testing.T) {
	rec := &Recorder{}
	h := scriptedHand(t, rec, [][]shared.Card{
		{c(1, shared.Spade), c(3, shared.Spade)},
		{c(2, shared.Bastoni), c(5, shared.Bastoni)},
		{c(4, shared.Coppe), c(6, shared.Coppe)},
		{c(7, shared.Denari), c(8, shared.Denari)},
	})

	result := playOut(t, h)

	assert.Equal(t, []EventKind{
		EventPlay, EventPlay, EventPlay, EventSweep,
		EventPlay, EventPlay, EventPlay, EventCapture,
		EventClearTable, EventScoreBreakdown, EventScoreBreakdown,
	}, rec.Kinds())

	dario := h.Roster[3]
	assert.Equal(t, 1, dario.Sweeps)
	assert.Len(t, dario.Loot, 8, "last looter takes the leftover six")
	assert.Empty(t, h.Table)
	assert.Equal(t, Scored, h.State)

	sweep := rec.Filter(EventSweep)[0]
	assert.Equal(t, "Dario", sweep.Actor)
	assert.Equal(t, []shared.Card{c(1, shared.Spade), c(2, shared.Bastoni), c(4, shared.Coppe)}, sweep.Taken)
	assert.True(t, sweep.Sweep)

	cleared := rec.Filter(EventClearTable)[0]
	assert.False(t, cleared.Sweep)
	assert.Equal(t, []shared.Card{c(6, shared.Coppe)}, cleared.Taken)

	// Sweep, settebello and primiera (16+15+18+21) against an empty loot
	assert.Equal(t, [2]int{0, 3}, result.Deltas)
	assert.Equal(t, 70, result.Breakdowns[1].Primiera)
	assert.Equal(t, 1, result.PrimieraWinner)
	assert.Zero(t, result.Attribution[0])
	assert.Greater(t, result.Attribution[3], result.Attribution[2])
}

func TestHandLastPlayEmptyingTableIsNotSweep(t *testing.T) {
	rec := &Recorder{}
	h := scriptedHand(t, rec, [][]shared.Card{
		{c(1, shared.Spade)},
		{c(2, shared.Bastoni)},
		{c(4, shared.Coppe)},
		{c(7, shared.Denari)},
	})

	result := playOut(t, h)

	assert.Equal(t, []EventKind{
		EventPlay, EventPlay, EventPlay, EventCapture,
		EventScoreBreakdown, EventScoreBreakdown,
	}, rec.Kinds())
	last := rec.Filter(EventCapture)[0]
	assert.False(t, last.Sweep)
	assert.Empty(t, last.Table)
	assert.Zero(t, h.Roster[3].Sweeps)
	assert.Zero(t, result.Breakdowns[1].Sweeps)
}

func TestHandConservesCardsEveryTurn(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		var h *Hand
		turns := 0
		sink := SinkFunc(func(ev Event) {
			switch ev.Kind {
			case EventPlay, EventCapture, EventSweep:
				turns++
				assert.Equal(t, shared.DeckSize, h.CardCount(), "seed %d", seed)
			}
		})
		h = NewHand(1, newTeams(), [shared.NumSeats]int{2, 3, 0, 1}, Env{Rng: NewRand(seed), Sink: sink}, Scope{})

		result, err := h.Run()

		require.NoError(t, err)
		assert.Equal(t, shared.DeckSize, turns)
		loot := 0
		for _, p := range h.Roster {
			assert.Empty(t, p.Hand)
			loot += len(p.Loot)
		}
		assert.Equal(t, shared.DeckSize, loot)
		assert.Equal(t, shared.DeckSize, result.Breakdowns[0].CardCount+result.Breakdowns[1].CardCount)
		assert.Equal(t, 10, result.Breakdowns[0].CoinCount+result.Breakdowns[1].CoinCount)
		assert.LessOrEqual(t, result.Breakdowns[0].Settebello+result.Breakdowns[1].Settebello, 1)
		assert.LessOrEqual(t, result.Breakdowns[0].PrimieraPoint+result.Breakdowns[1].PrimieraPoint, 1)
	}
}

func TestHandDeciderErrorStopsHand(t *testing.T) {
	decider := new(agent.MockDecider)
	closed := types.NewGameError(types.ErrInputClosed, "stdin closed")
	decider.On("ChooseCard", mock.Anything, mock.Anything).Return(shared.Card{}, closed)

	h := NewHand(1, newTeams(), [shared.NumSeats]int{0, 1, 2, 3}, Env{Rng: NewRand(3), Decider: decider}, Scope{})
	result, err := h.Run()

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, types.NewGameError(types.ErrInputClosed, "")))
	decider.AssertNumberOfCalls(t, "ChooseCard", 1)
}

func TestHandCardNotInHandPanics(t *testing.T) {
	decider := new(agent.MockDecider)
	decider.On("ChooseCard", mock.Anything, mock.Anything).Return(c(10, shared.Coppe), nil)

	h := NewHand(1, newTeams(), [shared.NumSeats]int{0, 1, 2, 3}, Env{Rng: NewRand(3), Decider: decider}, Scope{})
	h.dealHands([][]shared.Card{
		{c(1, shared.Spade)}, {c(2, shared.Spade)}, {c(3, shared.Spade)}, {c(4, shared.Spade)},
	})

	assert.Panics(t, func() { _ = h.PlayRound(1) })
}

func TestHandDealRejectsForeignCards(t *testing.T) {
	h := NewHand(1, newTeams(), [shared.NumSeats]int{0, 1, 2, 3}, Env{Rng: NewRand(3)}, Scope{})

	assert.Panics(t, func() {
		h.dealHands([][]shared.Card{
			{c(1, shared.Spade)}, {c(2, shared.Spade)}, {c(11, shared.Spade)}, {c(4, shared.Spade)},
		})
	})
}

func TestHandScoreBeforeFinalizePanics(t *testing.T) {
	h := NewHand(1, newTeams(), [shared.NumSeats]int{0, 1, 2, 3}, Env{Rng: NewRand(3)}, Scope{})
	h.Deal()

	assert.Panics(t, func() { h.Score() })
	assert.Panics(t, func() { h.Deal() }, "a hand is dealt once")
}

func TestHandDealGivesTenCardsEach(t *testing.T) {
	h := NewHand(1, newTeams(), [shared.NumSeats]int{0, 1, 2, 3}, Env{Rng: NewRand(9)}, Scope{})
	h.Deal()

	for _, p := range h.Roster {
		assert.Len(t, p.Hand, shared.HandSize)
		assert.Empty(t, p.Loot)
	}
	assert.Equal(t, Dealt, h.State)
	assert.Equal(t, shared.DeckSize, h.CardCount())
}
