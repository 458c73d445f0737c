package game

import (
	"reflect"
	"testing"

	"github.com/kuhnlab/kuhnbot/internal/contract"
	"github.com/kuhnlab/kuhnbot/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHand(t *testing.T) {
	s, err := NewHand(contract.CardKing, contract.CardJack)
	require.NoError(t, err)

	assert.Equal(t, contract.PhaseP0Act, s.Phase())
	actor, ok := s.Actor()
	require.True(t, ok)
	assert.Equal(t, contract.Player0, actor)

	assert.Equal(t, contract.CardKing, s.PrivateCard(contract.Player0))
	assert.Equal(t, contract.CardJack, s.PrivateCard(contract.Player1))
	assert.Empty(t, s.History())
	assert.Equal(t, 1, s.Contribution(contract.Player0))
	assert.Equal(t, 1, s.Contribution(contract.Player1))
	assert.Equal(t, 2, s.Pot())

	_, hasBettor := s.LastBettor()
	assert.False(t, hasBettor)
	_, resolved := s.Returns()
	assert.False(t, resolved)
}

func TestNewHandRejectsBadDeals(t *testing.T) {
	_, err := NewHand(contract.CardQueen, contract.CardQueen)
	assert.ErrorIs(t, err, ErrDuplicateCard)

	_, err = NewHand(contract.Card(5), contract.CardJack)
	assert.ErrorIs(t, err, ErrInvalidCard)

	_, err = NewHand(contract.CardJack, contract.Card(-1))
	assert.ErrorIs(t, err, ErrInvalidCard)
}

func TestDealProducesDistinctCards(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		s := Deal(randutil.New(seed))
		assert.NotEqual(t, s.PrivateCard(contract.Player0), s.PrivateCard(contract.Player1), "seed %d", seed)
		assert.Equal(t, contract.PhaseP0Act, s.Phase())
	}
}

func TestApplyRejectsTerminalState(t *testing.T) {
	s := mustPlay(t, contract.CardKing, contract.CardJack,
		contract.ActionCheckCall, contract.ActionCheckCall)
	require.True(t, s.Terminal())

	_, err := s.Apply(contract.ActionCheckCall)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApplyRejectsIllegalActions(t *testing.T) {
	s, err := NewHand(contract.CardKing, contract.CardJack)
	require.NoError(t, err)

	// Fold is only legal when facing a bet.
	_, err = s.Apply(contract.ActionFold)
	assert.ErrorIs(t, err, ErrIllegalAction)

	// Betting into a bet would be a raise, which does not exist.
	s, err = s.Apply(contract.ActionBet)
	require.NoError(t, err)
	_, err = s.Apply(contract.ActionBet)
	assert.ErrorIs(t, err, ErrIllegalAction)

	_, err = s.Apply(contract.ActionID(7))
	assert.ErrorIs(t, err, ErrIllegalAction)
}

// Applying the same action to the same state twice must give two
// structurally identical values and leave the original untouched.
func TestApplyIsPure(t *testing.T) {
	s, err := NewHand(contract.CardQueen, contract.CardKing)
	require.NoError(t, err)
	before := s

	first, err := s.Apply(contract.ActionBet)
	require.NoError(t, err)
	second, err := s.Apply(contract.ActionBet)
	require.NoError(t, err)

	assert.True(t, reflect.DeepEqual(first, second))
	assert.True(t, reflect.DeepEqual(before, s))
	assert.Empty(t, s.History())
	assert.Equal(t, 1, s.Contribution(contract.Player0))
}

// Histories of successor states must not share backing storage with their
// ancestors.
func TestHistoryDoesNotAlias(t *testing.T) {
	s, err := NewHand(contract.CardQueen, contract.CardKing)
	require.NoError(t, err)

	checked, err := s.Apply(contract.ActionCheckCall)
	require.NoError(t, err)
	bet, err := checked.Apply(contract.ActionBet)
	require.NoError(t, err)

	// Mutating a copy returned by History must not leak anywhere.
	h := checked.History()
	h[0] = contract.Fold
	assert.Equal(t, []contract.PublicAction{contract.Check}, checked.History())
	assert.Equal(t, []contract.PublicAction{contract.Check, contract.Bet}, bet.History())
}

func TestContributionsAndBettor(t *testing.T) {
	s, err := NewHand(contract.CardJack, contract.CardKing)
	require.NoError(t, err)

	s, err = s.Apply(contract.ActionBet)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Contribution(contract.Player0))
	assert.Equal(t, 1, s.Contribution(contract.Player1))
	bettor, ok := s.LastBettor()
	require.True(t, ok)
	assert.Equal(t, contract.Player0, bettor)

	s, err = s.Apply(contract.ActionCheckCall)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Contribution(contract.Player1))
	assert.Equal(t, 4, s.Pot())

	// lastBettor is never cleared, even at terminal.
	bettor, ok = s.LastBettor()
	require.True(t, ok)
	assert.Equal(t, contract.Player0, bettor)
}

func TestActorNilIffTerminal(t *testing.T) {
	forEachReachableState(t, func(s HandState) {
		_, ok := s.Actor()
		assert.Equal(t, !s.Terminal(), ok)
	})
}

func TestReturnsZeroSum(t *testing.T) {
	forEachReachableState(t, func(s HandState) {
		returns, ok := s.Returns()
		if !s.Terminal() {
			assert.False(t, ok)
			return
		}
		require.True(t, ok)
		assert.Zero(t, returns[contract.Player0]+returns[contract.Player1])
	})
}

func TestContributionsNeverBelowAnte(t *testing.T) {
	forEachReachableState(t, func(s HandState) {
		assert.GreaterOrEqual(t, s.Contribution(contract.Player0), 1)
		assert.GreaterOrEqual(t, s.Contribution(contract.Player1), 1)
	})
}

func TestAtMostOneBetPerHand(t *testing.T) {
	forEachReachableState(t, func(s HandState) {
		bets := 0
		for _, token := range s.History() {
			if token == contract.Bet {
				bets++
			}
		}
		assert.LessOrEqual(t, bets, 1)
	})
}

// mustPlay runs a scripted hand from a fixed deal.
func mustPlay(t *testing.T, p0, p1 contract.Card, actions ...contract.ActionID) HandState {
	t.Helper()
	s, err := NewHand(p0, p1)
	require.NoError(t, err)
	for _, action := range actions {
		s, err = s.Apply(action)
		require.NoError(t, err)
	}
	return s
}

// forEachReachableState visits every state reachable from every possible
// deal, including terminals.
func forEachReachableState(t *testing.T, visit func(HandState)) {
	t.Helper()
	deals := [][2]contract.Card{
		{contract.CardJack, contract.CardQueen},
		{contract.CardJack, contract.CardKing},
		{contract.CardQueen, contract.CardJack},
		{contract.CardQueen, contract.CardKing},
		{contract.CardKing, contract.CardJack},
		{contract.CardKing, contract.CardQueen},
	}
	for _, deal := range deals {
		s, err := NewHand(deal[0], deal[1])
		require.NoError(t, err)
		walkStates(t, s, visit)
	}
}

func walkStates(t *testing.T, s HandState, visit func(HandState)) {
	t.Helper()
	visit(s)
	if s.Terminal() {
		return
	}
	actor, ok := s.Actor()
	require.True(t, ok)
	mask := LegalActionMask(s, actor)
	for i := 0; i < contract.ActionDim; i++ {
		action := contract.ActionID(i)
		if !mask.Legal(action) {
			continue
		}
		next, err := s.Apply(action)
		require.NoError(t, err)
		walkStates(t, next, visit)
	}
}
