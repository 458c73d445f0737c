package game

import (
	"context"

	"github.com/kuhnlab/kuhnbot/internal/contract"
)

// Agent represents any entity (human, baseline, or model-backed policy)
// that can choose an action for the current actor. Agents receive the
// immutable state and its legal mask and return an action id; they never
// mutate game state. The context bounds the only suspension point in the
// flow, the external decision itself -- cancelling it has no effect on the
// authoritative state, which only advances when a validated action is
// applied.
type Agent interface {
	Act(ctx context.Context, state HandState, mask contract.Mask) (contract.ActionID, error)
}

// AgentFunc adapts a function to the Agent interface.
type AgentFunc func(ctx context.Context, state HandState, mask contract.Mask) (contract.ActionID, error)

// Act implements Agent.
func (f AgentFunc) Act(ctx context.Context, state HandState, mask contract.Mask) (contract.ActionID, error) {
	return f(ctx, state, mask)
}
