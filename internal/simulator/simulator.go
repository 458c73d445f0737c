// Package simulator runs batch hand evaluations between two agents.
package simulator

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/kuhnlab/kuhnbot/internal/contract"
	"github.com/kuhnlab/kuhnbot/internal/game"
	"github.com/kuhnlab/kuhnbot/internal/randutil"
	"github.com/kuhnlab/kuhnbot/internal/statistics"
)

// A hand is at most three decisions; anything past that means a loop bug.
const maxDecisionsPerHand = 4

// Config holds configuration for an evaluation run.
type Config struct {
	Hands   int
	Seed    int64
	Timeout time.Duration
	Logger  *log.Logger
}

// Simulator plays hands between a fixed pair of agents, seat 0 and seat 1.
type Simulator struct {
	config Config
	agents [contract.NumPlayers]game.Agent
}

// New creates a simulator for two agents.
func New(config Config, p0, p1 game.Agent) *Simulator {
	return &Simulator{
		config: config,
		agents: [contract.NumPlayers]game.Agent{p0, p1},
	}
}

// Run executes the configured number of hands and returns aggregate
// statistics. Each hand gets an independent seed derived from the run seed,
// so any hand can be replayed in isolation.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	stats := &statistics.Statistics{}

	for hand := 0; hand < s.config.Hands; hand++ {
		handSeed := randutil.HandSeed(s.config.Seed, hand)

		result, err := s.playHandWithTimeout(ctx, handSeed)
		if err != nil {
			return nil, fmt.Errorf("hand %d (seed %d): %w", hand+1, handSeed, err)
		}

		// Every hand must be exactly zero-sum; a violation here is a state
		// machine defect, not a bad run.
		if result.Returns[contract.Player0]+result.Returns[contract.Player1] != 0 {
			return nil, fmt.Errorf("hand %d (seed %d): non zero-sum returns %v", hand+1, handSeed, result.Returns)
		}

		stats.Add(result)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// playHandWithTimeout bounds a single hand so a hung agent surfaces as an
// error instead of stalling the whole run.
func (s *Simulator) playHandWithTimeout(ctx context.Context, handSeed int64) (statistics.HandResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	resultCh := make(chan statistics.HandResult, 1)
	errCh := make(chan error, 1)

	go func() {
		result, err := s.playHand(ctx, handSeed)
		if err != nil {
			errCh <- err
			return
		}
		resultCh <- result
	}()

	select {
	case result := <-resultCh:
		return result, nil
	case err := <-errCh:
		return statistics.HandResult{}, err
	case <-ctx.Done():
		return statistics.HandResult{}, fmt.Errorf("hand timed out after %v: %w", s.config.Timeout, ctx.Err())
	}
}

// playHand deals from the hand seed and alternates agent decisions until the
// state machine reaches terminal.
func (s *Simulator) playHand(ctx context.Context, handSeed int64) (statistics.HandResult, error) {
	rng := randutil.New(handSeed)
	state := game.Deal(rng)

	for decisions := 0; !state.Terminal(); decisions++ {
		if decisions >= maxDecisionsPerHand {
			return statistics.HandResult{}, fmt.Errorf("hand exceeded %d decisions without terminating", maxDecisionsPerHand)
		}

		actor, _ := state.Actor()
		mask := game.LegalActionMask(state, actor)
		if !mask.AnyLegal() {
			return statistics.HandResult{}, fmt.Errorf("no legal action for live actor %s in phase %s", actor, state.Phase())
		}

		action, err := s.agents[actor].Act(ctx, state, mask)
		if err != nil {
			return statistics.HandResult{}, fmt.Errorf("agent %s: %w", actor, err)
		}

		next, err := state.Apply(action)
		if err != nil {
			return statistics.HandResult{}, fmt.Errorf("apply %s for %s: %w", action, actor, err)
		}

		s.config.Logger.Debug("applied action",
			"seed", handSeed,
			"actor", actor.String(),
			"action", action.String(),
			"phase", next.Phase().String())
		state = next
	}

	returns, ok := state.Returns()
	if !ok {
		return statistics.HandResult{}, fmt.Errorf("terminal hand without returns")
	}

	history := state.History()
	wentToShowdown := len(history) > 0 && history[len(history)-1] != contract.Fold

	return statistics.HandResult{
		Returns:        returns,
		Seed:           handSeed,
		WentToShowdown: wentToShowdown,
		FinalPot:       state.Pot(),
		HistoryLength:  len(history),
	}, nil
}
