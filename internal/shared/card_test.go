package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardString(t *testing.T) {
	testCases := []struct {
		name     string
		card     Card
		expected string
	}{
		{name: "ace of spades", card: Card{Suit: Spade, Rank: 1}, expected: "A♠"},
		{name: "settebello", card: Settebello, expected: "7♦"},
		{name: "jack of clubs", card: Card{Suit: Bastoni, Rank: 8}, expected: "J♣"},
		{name: "king of cups", card: Card{Suit: Coppe, Rank: 10}, expected: "K♥"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.card.String())
		})
	}
}

func TestCardLess(t *testing.T) {
	two := Card{Suit: Coppe, Rank: 2}
	threeSpade := Card{Suit: Spade, Rank: 3}
	threeCoins := Card{Suit: Denari, Rank: 3}

	assert.True(t, two.Less(threeSpade), "lower rank sorts first")
	assert.True(t, threeSpade.Less(threeCoins), "same rank sorts by suit index")
	assert.False(t, threeCoins.Less(threeSpade))
	assert.False(t, two.Less(two))
}

func TestSortedDoesNotMutate(t *testing.T) {
	cards := []Card{{Suit: Denari, Rank: 9}, {Suit: Spade, Rank: 1}, {Suit: Bastoni, Rank: 1}}
	sorted := Sorted(cards)

	assert.Equal(t, []Card{{Suit: Spade, Rank: 1}, {Suit: Bastoni, Rank: 1}, {Suit: Denari, Rank: 9}}, sorted)
	assert.Equal(t, Card{Suit: Denari, Rank: 9}, cards[0])
}

func TestCardUsableAsMapKey(t *testing.T) {
	set := map[Card]bool{Settebello: true}
	assert.True(t, set[Card{Suit: Denari, Rank: 7}])
	assert.False(t, set[Card{Suit: Coppe, Rank: 7}])
}

func TestFormatCardsAndRankSum(t *testing.T) {
	cards := []Card{{Suit: Spade, Rank: 2}, {Suit: Coppe, Rank: 10}}
	assert.Equal(t, "[2♠ K♥]", FormatCards(cards))
	assert.Equal(t, 12, RankSum(cards))
	assert.Equal(t, "[]", FormatCards(nil))
}

func TestTeamLootAndSweeps(t *testing.T) {
	a, b := NewPlayer("Anna"), NewPlayer("Bruno")
	team := NewTeam(1, a, b)
	a.AddLoot(Card{Suit: Spade, Rank: 1})
	b.AddLoot(Settebello, Card{Suit: Denari, Rank: 2})
	a.Sweeps, b.Sweeps = 1, 2

	assert.Equal(t, "Team(Anna, Bruno)", team.Name())
	assert.Len(t, team.Loot(), 3)
	assert.Equal(t, 3, team.Sweeps())
	assert.Equal(t, 2, b.CoinCount())
	assert.True(t, team.Has(b))

	team.AddScore(5)
	team.Reset()
	assert.Empty(t, team.Loot())
	assert.Zero(t, team.Sweeps())
	assert.Equal(t, 5, team.Score, "Reset keeps the match score")
	team.ResetScore()
	assert.Zero(t, team.Score)
}

func TestTeamNameIgnoresSeatingOrder(t *testing.T) {
	team := NewTeam(2, NewPlayer("Carla"), NewPlayer("Dario"))

	team.Players[0], team.Players[1] = team.Players[1], team.Players[0]

	assert.Equal(t, "Team(Carla, Dario)", team.Name())
	assert.Equal(t, "Dario", team.Players[0].Name)
}

func TestPlayerRemoveCard(t *testing.T) {
	p := NewPlayer("Carla")
	p.Hand = []Card{{Suit: Spade, Rank: 1}, Settebello}

	assert.True(t, p.HasCard(Settebello))
	assert.True(t, p.RemoveCard(Settebello))
	assert.False(t, p.HasCard(Settebello))
	assert.False(t, p.RemoveCard(Settebello))
	assert.Len(t, p.Hand, 1)
	assert.NotEmpty(t, p.ID)
}
