package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/kuhnlab/kuhnbot/internal/contract"
	"github.com/kuhnlab/kuhnbot/internal/game"
	"github.com/kuhnlab/kuhnbot/internal/policy"
)

// PolicyAgent plays with an external inference model. It encodes the
// observation, calls Predict, and re-enforces the legal mask through the
// selector rather than trusting the model's sentinel masking. When
// inference fails or the context is cancelled it substitutes a uniform
// random legal action, which keeps the hand advancing through the same
// validated apply path.
type PolicyAgent struct {
	model  policy.Model
	mode   policy.Mode
	rng    *rand.Rand
	logger *log.Logger
}

// NewPolicyAgent creates a model-backed agent.
func NewPolicyAgent(model policy.Model, mode policy.Mode, rng *rand.Rand, logger *log.Logger) *PolicyAgent {
	return &PolicyAgent{
		model:  model,
		mode:   mode,
		rng:    rng,
		logger: logger.WithPrefix("policy-agent"),
	}
}

// Act implements game.Agent.
func (a *PolicyAgent) Act(ctx context.Context, state game.HandState, mask contract.Mask) (contract.ActionID, error) {
	actor, ok := state.Actor()
	if !ok {
		return 0, policy.ErrNoLegalAction
	}

	observations := [][]float32{game.ObservationSlice(state, actor)}
	masks := [][]float32{mask.Float32()}
	if err := policy.ValidateRequest(observations, masks); err != nil {
		return 0, err
	}

	outputs, err := a.model.Predict(ctx, observations, masks)
	if err == nil {
		err = outputs.Validate(1)
	}
	if err != nil {
		// Recoverable: fall back to a random legal action.
		a.logger.Warn("inference failed, falling back to random legal action", "error", err)
		return policy.SampleLegal(mask, a.rng)
	}

	return policy.Select(a.mode, outputs.MaskedLogits[0], mask, a.rng)
}
