package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/kuhnlab/kuhnbot/internal/contract"
	"github.com/kuhnlab/kuhnbot/internal/game"
	"github.com/kuhnlab/kuhnbot/internal/policy"
)

// Heuristic is the tiny baseline strategy used for quick sanity checks:
// facing a bet it folds the Jack and calls everything else; opening it bets
// the King and otherwise checks.
type Heuristic struct {
	rng *rand.Rand
}

// NewHeuristic creates a heuristic agent. The RNG is only used as a fallback
// when the preferred action is somehow unavailable.
func NewHeuristic(rng *rand.Rand) *Heuristic {
	return &Heuristic{rng: rng}
}

// Act implements game.Agent.
func (h *Heuristic) Act(_ context.Context, state game.HandState, mask contract.Mask) (contract.ActionID, error) {
	actor, ok := state.Actor()
	if !ok {
		return 0, policy.ErrNoLegalAction
	}
	card := state.PrivateCard(actor)

	if state.Phase().Response() {
		if card == contract.CardJack && mask.Legal(contract.ActionFold) {
			return contract.ActionFold, nil
		}
		if mask.Legal(contract.ActionCheckCall) {
			return contract.ActionCheckCall, nil
		}
		return policy.SampleLegal(mask, h.rng)
	}

	if card == contract.CardKing && mask.Legal(contract.ActionBet) {
		return contract.ActionBet, nil
	}
	if mask.Legal(contract.ActionCheckCall) {
		return contract.ActionCheckCall, nil
	}
	return policy.SampleLegal(mask, h.rng)
}
