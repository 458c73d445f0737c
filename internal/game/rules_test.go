package game

import (
	"testing"

	"github.com/kuhnlab/kuhnbot/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every terminal line of a hand, with the exact history tokens, pot, and
// per-seat returns it must produce.
func TestTerminalLines(t *testing.T) {
	tests := []struct {
		name    string
		p0, p1  contract.Card
		actions []contract.ActionID
		history []contract.PublicAction
		pot     int
		returns [2]int
	}{
		{
			name: "check check showdown",
			p0:   contract.CardKing, p1: contract.CardJack,
			actions: []contract.ActionID{contract.ActionCheckCall, contract.ActionCheckCall},
			history: []contract.PublicAction{contract.Check, contract.Check},
			pot:     2,
			returns: [2]int{1, -1},
		},
		{
			name: "bet fold",
			p0:   contract.CardJack, p1: contract.CardKing,
			actions: []contract.ActionID{contract.ActionBet, contract.ActionFold},
			history: []contract.PublicAction{contract.Bet, contract.Fold},
			pot:     3,
			returns: [2]int{1, -1},
		},
		{
			name: "bet call showdown",
			p0:   contract.CardJack, p1: contract.CardKing,
			actions: []contract.ActionID{contract.ActionBet, contract.ActionCheckCall},
			history: []contract.PublicAction{contract.Bet, contract.Call},
			pot:     4,
			returns: [2]int{-2, 2},
		},
		{
			name: "check bet call showdown",
			p0:   contract.CardKing, p1: contract.CardJack,
			actions: []contract.ActionID{contract.ActionCheckCall, contract.ActionBet, contract.ActionCheckCall},
			history: []contract.PublicAction{contract.Check, contract.Bet, contract.Call},
			pot:     4,
			returns: [2]int{2, -2},
		},
		{
			name: "check bet fold",
			p0:   contract.CardKing, p1: contract.CardJack,
			actions: []contract.ActionID{contract.ActionCheckCall, contract.ActionBet, contract.ActionFold},
			history: []contract.PublicAction{contract.Check, contract.Bet, contract.Fold},
			pot:     3,
			returns: [2]int{-1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustPlay(t, tt.p0, tt.p1, tt.actions...)

			require.True(t, s.Terminal())
			assert.Equal(t, tt.history, s.History())
			assert.Equal(t, tt.pot, s.Pot())

			returns, ok := s.Returns()
			require.True(t, ok)
			assert.Equal(t, tt.returns, returns)
		})
	}
}

// The higher card wins every showdown, for all six ordered deals.
func TestShowdownByRank(t *testing.T) {
	deals := []struct {
		p0, p1 contract.Card
		winner contract.Player
	}{
		{contract.CardJack, contract.CardQueen, contract.Player1},
		{contract.CardJack, contract.CardKing, contract.Player1},
		{contract.CardQueen, contract.CardJack, contract.Player0},
		{contract.CardQueen, contract.CardKing, contract.Player1},
		{contract.CardKing, contract.CardJack, contract.Player0},
		{contract.CardKing, contract.CardQueen, contract.Player0},
	}

	for _, deal := range deals {
		s := mustPlay(t, deal.p0, deal.p1, contract.ActionCheckCall, contract.ActionCheckCall)
		returns, ok := s.Returns()
		require.True(t, ok)
		assert.Positive(t, returns[deal.winner], "%sv%s", deal.p0, deal.p1)
		assert.Negative(t, returns[deal.winner.Opponent()], "%sv%s", deal.p0, deal.p1)
	}
}

// A fold awards the pot to whoever bet, regardless of card rank.
func TestFoldIgnoresRank(t *testing.T) {
	// Jack bets, King folds: the bettor still wins.
	s := mustPlay(t, contract.CardJack, contract.CardKing,
		contract.ActionBet, contract.ActionFold)
	returns, ok := s.Returns()
	require.True(t, ok)
	assert.Equal(t, [2]int{1, -1}, returns)
}
