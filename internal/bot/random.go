package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/kuhnlab/kuhnbot/internal/contract"
	"github.com/kuhnlab/kuhnbot/internal/game"
	"github.com/kuhnlab/kuhnbot/internal/policy"
)

// Random picks uniformly among the legal actions.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random agent using the provided RNG.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// Act implements game.Agent.
func (r *Random) Act(_ context.Context, _ game.HandState, mask contract.Mask) (contract.ActionID, error) {
	return policy.SampleLegal(mask, r.rng)
}
