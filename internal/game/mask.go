package game

import "github.com/kuhnlab/kuhnbot/internal/contract"

// LegalActionMask returns the legality vector over the three action ids for
// the given viewer. It is derived purely from phase identity and viewer
// identity, nothing else: both independent implementations of the contract
// must compute identical masks from identical inputs without sharing state.
// Out of turn or after the hand ends the mask is all-illegal.
func LegalActionMask(s HandState, viewer contract.Player) contract.Mask {
	actor, ok := s.Actor()
	if s.resolved || !ok || viewer != actor {
		return contract.MaskNone
	}
	return contract.MaskForPhase(s.phase)
}
