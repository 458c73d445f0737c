package game

import (
	"testing"

	"github.com/kuhnlab/kuhnbot/internal/contract"
	"github.com/kuhnlab/kuhnbot/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservationSegments(t *testing.T) {
	s, err := NewHand(contract.CardQueen, contract.CardKing)
	require.NoError(t, err)

	obs := BuildObservation(s, contract.Player0)
	// Queen, empty history, player 0 to act.
	assert.Equal(t, [contract.ObservationSize]float32{
		0, 1, 0,
		1, 0, 0, 0, 0,
		1, 0,
	}, obs)

	// The same state from the other seat: different card, same public bits.
	obs = BuildObservation(s, contract.Player1)
	assert.Equal(t, [contract.ObservationSize]float32{
		0, 0, 1,
		1, 0, 0, 0, 0,
		1, 0,
	}, obs)

	s, err = s.Apply(contract.ActionCheckCall)
	require.NoError(t, err)
	obs = BuildObservation(s, contract.Player1)
	assert.Equal(t, [contract.ObservationSize]float32{
		0, 0, 1,
		0, 1, 0, 0, 0,
		0, 1,
	}, obs)

	s, err = s.Apply(contract.ActionBet)
	require.NoError(t, err)
	obs = BuildObservation(s, contract.Player0)
	assert.Equal(t, [contract.ObservationSize]float32{
		0, 1, 0,
		0, 0, 0, 1, 0,
		1, 0,
	}, obs)
}

// Terminal observations keep the card bit, collapse the history into the
// catch-all bucket, and zero both actor bits.
func TestObservationAtTerminal(t *testing.T) {
	s := mustPlay(t, contract.CardKing, contract.CardJack,
		contract.ActionCheckCall, contract.ActionCheckCall)

	obs := BuildObservation(s, contract.Player0)
	assert.Equal(t, [contract.ObservationSize]float32{
		0, 0, 1,
		0, 0, 0, 0, 1,
		0, 0,
	}, obs)
}

// Every reachable observation holds exactly one card bit, exactly one
// history bit, and exactly one actor bit except at terminal where there is
// none.
func TestObservationOneHotInvariant(t *testing.T) {
	forEachReachableState(t, func(s HandState) {
		for _, viewer := range []contract.Player{contract.Player0, contract.Player1} {
			obs := BuildObservation(s, viewer)

			assert.Equal(t, float32(1), segmentSum(obs, contract.PrivateCardOffset, contract.PrivateCardDim))
			assert.Equal(t, float32(1), segmentSum(obs, contract.HistoryOffset, contract.HistoryDim))

			actorSum := segmentSum(obs, contract.ActorOffset, contract.ActorDim)
			if s.Terminal() {
				assert.Equal(t, float32(0), actorSum)
			} else {
				assert.Equal(t, float32(1), actorSum)
			}

			for _, v := range obs {
				assert.Contains(t, []float32{0, 1}, v)
			}
		}
	})
}

func TestObservationSliceMatchesArray(t *testing.T) {
	s := Deal(randutil.New(11))
	arr := BuildObservation(s, contract.Player1)

	slice := ObservationSlice(s, contract.Player1)
	require.Len(t, slice, contract.ObservationSize)
	assert.Equal(t, arr[:], slice)
}

func segmentSum(obs [contract.ObservationSize]float32, offset, dim int) float32 {
	var sum float32
	for _, v := range obs[offset : offset+dim] {
		sum += v
	}
	return sum
}
