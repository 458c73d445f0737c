// Package bot provides the built-in agents: uniform-random and heuristic
// baselines for sanity checks, and the model-backed policy agent.
package bot

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/kuhnlab/kuhnbot/internal/game"
	"github.com/kuhnlab/kuhnbot/internal/randutil"
)

// New constructs a built-in agent by name: "random", "heuristic". The policy
// agent is constructed separately because it needs a model.
func New(kind string, rng *rand.Rand) (game.Agent, error) {
	if rng == nil {
		rng = randutil.New(randutil.TimeSeed())
	}
	switch kind {
	case "random":
		return NewRandom(rng), nil
	case "heuristic":
		return NewHeuristic(rng), nil
	default:
		return nil, fmt.Errorf("unknown bot type %q", kind)
	}
}
