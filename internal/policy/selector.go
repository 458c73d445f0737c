package policy

import (
	"fmt"
	"math"
	rand "math/rand/v2"

	"github.com/kuhnlab/kuhnbot/internal/contract"
)

// Mode selects between the two ways of turning masked logits into an action.
type Mode int

const (
	// Deterministic picks the highest-logit legal action.
	Deterministic Mode = iota
	// Stochastic samples a legal action from the softmax over legal logits.
	Stochastic
)

func (m Mode) String() string {
	if m == Stochastic {
		return "stochastic"
	}
	return "deterministic"
}

// Select dispatches on mode. The rng is only consulted in stochastic mode.
func Select(mode Mode, logits []float32, mask contract.Mask, rng *rand.Rand) (contract.ActionID, error) {
	if mode == Stochastic {
		return SelectStochastic(logits, mask, rng)
	}
	return SelectDeterministic(logits, mask)
}

// SelectDeterministic picks the legal action with the largest logit, ties
// broken by the smallest action id. Filtering is by the mask alone: illegal
// entries are never assumed to carry a distinguishing sentinel value.
func SelectDeterministic(logits []float32, mask contract.Mask) (contract.ActionID, error) {
	if err := checkLogits(logits); err != nil {
		return 0, err
	}
	best := contract.ActionID(-1)
	var bestLogit float32
	for i := 0; i < contract.ActionDim; i++ {
		a := contract.ActionID(i)
		if !mask.Legal(a) {
			continue
		}
		if best < 0 || logits[i] > bestLogit {
			best, bestLogit = a, logits[i]
		}
	}
	if best < 0 {
		return 0, ErrNoLegalAction
	}
	return best, nil
}

// SelectStochastic samples one legal action from the softmax over the legal
// logits using a single uniform draw from rng.
func SelectStochastic(logits []float32, mask contract.Mask, rng *rand.Rand) (contract.ActionID, error) {
	return selectWithDraw(logits, mask, rng.Float64())
}

// selectWithDraw is the deterministic core of stochastic selection: a stable
// softmax over just the legal logits (max legal logit subtracted before
// exponentiating), then a cumulative walk over the legal indices in
// ascending action-id order, returning the first index whose cumulative
// probability mass reaches the draw. If floating-point rounding leaves the
// draw above the total mass, the last legal index is returned.
func selectWithDraw(logits []float32, mask contract.Mask, draw float64) (contract.ActionID, error) {
	if err := checkLogits(logits); err != nil {
		return 0, err
	}
	legal := make([]contract.ActionID, 0, contract.ActionDim)
	for i := 0; i < contract.ActionDim; i++ {
		if a := contract.ActionID(i); mask.Legal(a) {
			legal = append(legal, a)
		}
	}
	if len(legal) == 0 {
		return 0, ErrNoLegalAction
	}

	maxLogit := logits[legal[0]]
	for _, a := range legal[1:] {
		if logits[a] > maxLogit {
			maxLogit = logits[a]
		}
	}
	weights := make([]float64, len(legal))
	total := 0.0
	for i, a := range legal {
		weights[i] = math.Exp(float64(logits[a] - maxLogit))
		total += weights[i]
	}

	cumulative := 0.0
	for i, a := range legal {
		cumulative += weights[i] / total
		if cumulative >= draw {
			return a, nil
		}
	}
	return legal[len(legal)-1], nil
}

func checkLogits(logits []float32) error {
	if len(logits) != contract.ActionDim {
		return fmt.Errorf("%w: logits length %d, want %d", ErrMalformedInput, len(logits), contract.ActionDim)
	}
	return nil
}

// SampleLegal draws uniformly among the legal actions. It is the recovery
// path when inference fails or times out, and the core of the random
// baseline.
func SampleLegal(mask contract.Mask, rng *rand.Rand) (contract.ActionID, error) {
	legal := make([]contract.ActionID, 0, contract.ActionDim)
	for i := 0; i < contract.ActionDim; i++ {
		if a := contract.ActionID(i); mask.Legal(a) {
			legal = append(legal, a)
		}
	}
	if len(legal) == 0 {
		return 0, ErrNoLegalAction
	}
	return legal[rng.IntN(len(legal))], nil
}
