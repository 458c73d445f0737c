// Package policy covers the numeric-inference boundary: the Model interface
// an external runtime implements, validation of its fixed-shape tensors, and
// the masked-logit action selectors.
package policy

import (
	"context"
	"fmt"

	"github.com/kuhnlab/kuhnbot/internal/contract"
)

// Outputs holds the named tensors a policy model produces per batch:
// masked logits shaped [batch, 3] with illegal entries pre-masked to a very
// negative sentinel, and a state value shaped [batch, 1]. Consumers must
// re-enforce the legal mask through the selectors rather than trust the
// sentinel magnitude, since a buggy or adversarial model must not be able to
// pick an illegal action.
type Outputs struct {
	MaskedLogits [][]float32
	Values       [][]float32
}

// Model is the injected inference capability. Loading runtimes and weights
// is the caller's problem; the core only exchanges fixed-shape vectors with
// it. A failed Predict is recoverable by substituting a fallback action
// through the ordinary apply path.
type Model interface {
	Predict(ctx context.Context, observations, masks [][]float32) (Outputs, error)
}

// ValidateRequest checks the input tensors before they cross the inference
// boundary: matching batch sizes, observation rows of the contract's fixed
// width, and mask rows of the action dimension.
func ValidateRequest(observations, masks [][]float32) error {
	if len(observations) != len(masks) {
		return fmt.Errorf("%w: observation batch %d != mask batch %d", ErrMalformedInput, len(observations), len(masks))
	}
	for i, obs := range observations {
		if len(obs) != contract.ObservationSize {
			return fmt.Errorf("%w: observation row %d has length %d, want %d", ErrMalformedInput, i, len(obs), contract.ObservationSize)
		}
	}
	for i, mask := range masks {
		if len(mask) != contract.ActionDim {
			return fmt.Errorf("%w: mask row %d has length %d, want %d", ErrMalformedInput, i, len(mask), contract.ActionDim)
		}
	}
	return nil
}

// Validate checks the result of a Predict call against the expected batch
// size. Absent tensors are reported as missing named outputs; present
// tensors of the wrong shape as malformed.
func (o Outputs) Validate(batch int) error {
	if o.MaskedLogits == nil {
		return fmt.Errorf("%w: %s", ErrMissingModelOutput, contract.OutputMaskedLogitsName)
	}
	if o.Values == nil {
		return fmt.Errorf("%w: %s", ErrMissingModelOutput, contract.OutputValueName)
	}
	if len(o.MaskedLogits) != batch {
		return fmt.Errorf("%w: %s batch %d, want %d", ErrMalformedInput, contract.OutputMaskedLogitsName, len(o.MaskedLogits), batch)
	}
	if len(o.Values) != batch {
		return fmt.Errorf("%w: %s batch %d, want %d", ErrMalformedInput, contract.OutputValueName, len(o.Values), batch)
	}
	for i, row := range o.MaskedLogits {
		if len(row) != contract.ActionDim {
			return fmt.Errorf("%w: %s row %d has length %d, want %d", ErrMalformedInput, contract.OutputMaskedLogitsName, i, len(row), contract.ActionDim)
		}
	}
	for i, row := range o.Values {
		if len(row) != 1 {
			return fmt.Errorf("%w: %s row %d has length %d, want 1", ErrMalformedInput, contract.OutputValueName, i, len(row))
		}
	}
	return nil
}
