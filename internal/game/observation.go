package game

import "github.com/kuhnlab/kuhnbot/internal/contract"

// BuildObservation encodes the state as seen by viewer into the fixed
// 10-entry vector: the viewer's private card one-hot (offsets 0-2), the
// public history bucket one-hot (offsets 3-7), and the current actor one-hot
// (offsets 8-9). The actor bits are both zero once the hand is terminal.
func BuildObservation(s HandState, viewer contract.Player) [contract.ObservationSize]float32 {
	var obs [contract.ObservationSize]float32
	obs[contract.PrivateCardOffset+int(s.privateCards[viewer])] = 1
	obs[contract.HistoryOffset+contract.HistoryBucket(s.history)] = 1
	if actor, ok := s.Actor(); ok {
		obs[contract.ActorOffset+int(actor)] = 1
	}
	return obs
}

// ObservationSlice is BuildObservation flattened to a []float32 for the
// model boundary, which exchanges slices.
func ObservationSlice(s HandState, viewer contract.Player) []float32 {
	obs := BuildObservation(s, viewer)
	return obs[:]
}
