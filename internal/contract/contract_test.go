package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskForPhase(t *testing.T) {
	tests := []struct {
		phase Phase
		want  Mask
	}{
		{PhaseDeal, MaskNone},
		{PhaseP0Act, MaskOpen},
		{PhaseP1Act, MaskOpen},
		{PhaseP0Response, MaskResponse},
		{PhaseP1Response, MaskResponse},
		{PhaseTerminal, MaskNone},
	}
	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, MaskForPhase(tt.phase))
		})
	}
}

func TestMaskLegal(t *testing.T) {
	assert.True(t, MaskOpen.Legal(ActionCheckCall))
	assert.True(t, MaskOpen.Legal(ActionBet))
	assert.False(t, MaskOpen.Legal(ActionFold))

	assert.True(t, MaskResponse.Legal(ActionCheckCall))
	assert.False(t, MaskResponse.Legal(ActionBet))
	assert.True(t, MaskResponse.Legal(ActionFold))

	assert.False(t, MaskNone.AnyLegal())
	assert.True(t, MaskOpen.AnyLegal())

	// Out-of-range action ids are never legal.
	assert.False(t, MaskOpen.Legal(ActionID(-1)))
	assert.False(t, MaskOpen.Legal(ActionID(3)))
}

func TestMaskFloat32(t *testing.T) {
	assert.Equal(t, []float32{1, 0, 1}, MaskResponse.Float32())
	assert.Equal(t, []float32{0, 0, 0}, MaskNone.Float32())
}

func TestHistoryBucket(t *testing.T) {
	tests := []struct {
		name    string
		history []PublicAction
		want    int
	}{
		{"empty", nil, 0},
		{"check", []PublicAction{Check}, 1},
		{"bet", []PublicAction{Bet}, 2},
		{"check_bet", []PublicAction{Check, Bet}, 3},
		// Terminal histories of every shape collapse into the final bucket.
		{"check_check", []PublicAction{Check, Check}, 4},
		{"bet_call", []PublicAction{Bet, Call}, 4},
		{"bet_fold", []PublicAction{Bet, Fold}, 4},
		{"check_bet_call", []PublicAction{Check, Bet, Call}, 4},
		{"check_bet_fold", []PublicAction{Check, Bet, Fold}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HistoryBucket(tt.history))
		})
	}
}

// Bucket matching is by exact ordered sequence, never by prefix or length.
func TestHistoryBucketExactMatch(t *testing.T) {
	assert.Equal(t, 4, HistoryBucket([]PublicAction{Bet, Check}))
	assert.Equal(t, 4, HistoryBucket([]PublicAction{Call}))
	assert.Equal(t, 4, HistoryBucket([]PublicAction{Fold}))
	assert.Equal(t, 4, HistoryBucket([]PublicAction{Check, Call}))
}

func TestCardOrdering(t *testing.T) {
	require.True(t, CardJack < CardQueen)
	require.True(t, CardQueen < CardKing)
	assert.Equal(t, "J", CardJack.String())
	assert.Equal(t, "Q", CardQueen.String())
	assert.Equal(t, "K", CardKing.String())
}

func TestObservationLayout(t *testing.T) {
	// The three one-hot groups tile the vector exactly.
	assert.Equal(t, 0, PrivateCardOffset)
	assert.Equal(t, 3, HistoryOffset)
	assert.Equal(t, 8, ActorOffset)
	assert.Equal(t, 10, ObservationSize)
	assert.Equal(t, PrivateCardDim+HistoryDim+ActorDim, ObservationSize)
}

func TestPlayerOpponent(t *testing.T) {
	assert.Equal(t, Player1, Player0.Opponent())
	assert.Equal(t, Player0, Player1.Opponent())
}
