package policy

import "errors"

var (
	// ErrNoLegalAction means the mask permitted nothing. The mask contract
	// guarantees every live actor at least one legal action, so hitting this
	// is a fatal internal-consistency fault upstream, not a recoverable
	// condition.
	ErrNoLegalAction = errors.New("no legal action in mask")

	// ErrMalformedInput is returned for observation, mask, or logits vectors
	// of the wrong length.
	ErrMalformedInput = errors.New("malformed input")

	// ErrMissingModelOutput is returned when an inference result lacks a
	// required named output tensor.
	ErrMissingModelOutput = errors.New("missing model output")
)
