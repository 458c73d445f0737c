package simulator

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/kuhnlab/kuhnbot/internal/bot"
	"github.com/kuhnlab/kuhnbot/internal/contract"
	"github.com/kuhnlab/kuhnbot/internal/game"
	"github.com/kuhnlab/kuhnbot/internal/randutil"
	"github.com/kuhnlab/kuhnbot/internal/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(hands int, seed int64) Config {
	return Config{
		Hands:   hands,
		Seed:    seed,
		Timeout: 5 * time.Second,
		Logger:  log.New(io.Discard),
	}
}

func TestRunCompletesAndBalances(t *testing.T) {
	sim := New(testConfig(200, 7),
		bot.NewRandom(randutil.New(1)),
		bot.NewRandom(randutil.New(2)))

	stats, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 200, stats.Hands)
	assert.Equal(t, 200, stats.Showdowns+stats.Folds)
	assert.Zero(t, stats.NetTotal)
	assert.GreaterOrEqual(t, stats.MaxPot, 2)
	assert.LessOrEqual(t, stats.MaxPot, 4)
	require.NoError(t, stats.Validate())
}

// Heuristic agents are fully deterministic, so the same run seed must give
// identical aggregates.
func TestRunIsDeterministic(t *testing.T) {
	run := func() *statistics.Statistics {
		sim := New(testConfig(100, 13),
			bot.NewHeuristic(randutil.New(0)),
			bot.NewHeuristic(randutil.New(0)))
		stats, err := sim.Run(context.Background())
		require.NoError(t, err)
		return stats
	}

	first := run()
	second := run()
	assert.Equal(t, first, second)
}

// Hand seeds actually vary the deal: heuristic play from twenty different
// seeds cannot produce twenty identical results.
func TestHandSeedsVaryDeals(t *testing.T) {
	sim := New(testConfig(1, 0),
		bot.NewHeuristic(randutil.New(0)),
		bot.NewHeuristic(randutil.New(0)))

	results := make(map[statistics.HandResult]struct{})
	for seed := int64(0); seed < 20; seed++ {
		result, err := sim.playHand(context.Background(), seed)
		require.NoError(t, err)
		result.Seed = 0
		results[result] = struct{}{}
	}
	assert.Greater(t, len(results), 1)
}

func TestZeroHands(t *testing.T) {
	sim := New(testConfig(0, 1),
		bot.NewRandom(randutil.New(1)),
		bot.NewRandom(randutil.New(2)))

	stats, err := sim.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Hands)
}

// failingAgent always errors.
type failingAgent struct{}

func (failingAgent) Act(context.Context, game.HandState, contract.Mask) (contract.ActionID, error) {
	return 0, errors.New("broken agent")
}

func TestAgentErrorAbortsRun(t *testing.T) {
	sim := New(testConfig(10, 1),
		failingAgent{},
		bot.NewRandom(randutil.New(2)))

	_, err := sim.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken agent")
}

// hangingAgent blocks until its context is cancelled.
type hangingAgent struct{}

func (hangingAgent) Act(ctx context.Context, _ game.HandState, _ contract.Mask) (contract.ActionID, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

func TestHandTimeout(t *testing.T) {
	config := testConfig(1, 1)
	config.Timeout = 20 * time.Millisecond
	sim := New(config, hangingAgent{}, bot.NewRandom(randutil.New(2)))

	_, err := sim.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// illegalAgent answers with a fixed action whether or not it is legal.
type illegalAgent struct{ action contract.ActionID }

func (a illegalAgent) Act(context.Context, game.HandState, contract.Mask) (contract.ActionID, error) {
	return a.action, nil
}

func TestIllegalActionAbortsRun(t *testing.T) {
	sim := New(testConfig(5, 1),
		illegalAgent{action: contract.ActionFold},
		bot.NewRandom(randutil.New(2)))

	_, err := sim.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, game.ErrIllegalAction)
}
