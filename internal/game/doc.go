// Package game implements the Kuhn poker hand state machine.
//
// The main type is HandState, an immutable value: every transition returns a
// brand-new state and never touches the prior one, which makes replay, undo,
// and concurrent inspection of historical states safe without locking. The
// same package derives the legal-action mask and the fixed-width observation
// vector from a state, since both are pure functions of it.
//
// # Basic Usage
//
// Deal and play a hand to terminal:
//
//	rng := randutil.New(42)
//	s := game.Deal(rng)
//	s, err := s.Apply(contract.ActionBet)
//	s, err = s.Apply(contract.ActionCheckCall)
//	returns, _ := s.Returns() // zero-sum net chips per seat
//
// Decision-making is injected through the Agent interface; the state machine
// itself never calls a policy, a model, or any I/O.
package game
