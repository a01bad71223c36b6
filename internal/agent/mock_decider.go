package agent

import (
	"github.com/stretchr/testify/mock"

	"scopone-game/internal/shared"
)

// MockDecider implements Decider for testing
type MockDecider struct {
	mock.Mock
}

func (m *MockDecider) ChooseCard(p *shared.Player, table []shared.Card) (shared.Card, error) {
	args := m.Called(p, table)
	return args.Get(0).(shared.Card), args.Error(1)
}

func (m *MockDecider) ChooseCapture(p *shared.Player, played shared.Card, options [][]shared.Card) ([]shared.Card, error) {
	args := m.Called(p, played, options)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shared.Card), args.Error(1)
}
