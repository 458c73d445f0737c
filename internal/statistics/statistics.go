// Package statistics aggregates per-hand results across an evaluation run.
package statistics

import (
	"fmt"
	"math"

	"github.com/kuhnlab/kuhnbot/internal/contract"
)

// HandResult is the outcome of a single hand.
type HandResult struct {
	Returns        [contract.NumPlayers]int // net chips per seat, zero-sum
	Seed           int64                    // RNG seed for this hand (for replay)
	WentToShowdown bool                     // false when the hand ended on a fold
	FinalPot       int                      // chips in the pot at terminal
	HistoryLength  int                      // number of public tokens
}

// SeatStats tracks per-seat aggregates.
type SeatStats struct {
	SumChips  float64
	SumChips2 float64
}

// Statistics tracks an evaluation run.
type Statistics struct {
	Hands     int
	Seats     [contract.NumPlayers]SeatStats
	Showdowns int
	Folds     int
	MaxPot    int
	NetTotal  int // running sum over all seats, must stay 0
}

// Add incorporates a new hand result.
func (s *Statistics) Add(result HandResult) {
	s.Hands++
	for seat := 0; seat < contract.NumPlayers; seat++ {
		net := float64(result.Returns[seat])
		s.Seats[seat].SumChips += net
		s.Seats[seat].SumChips2 += net * net
		s.NetTotal += result.Returns[seat]
	}
	if result.WentToShowdown {
		s.Showdowns++
	} else {
		s.Folds++
	}
	if result.FinalPot > s.MaxPot {
		s.MaxPot = result.FinalPot
	}
}

// Mean returns the mean net chips per hand for the given seat.
func (s *Statistics) Mean(seat contract.Player) float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.Seats[seat].SumChips / float64(s.Hands)
}

// StdDev returns the sample standard deviation of the seat's results.
func (s *Statistics) StdDev(seat contract.Player) float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean(seat)
	variance := (s.Seats[seat].SumChips2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// ShowdownRate returns the fraction of hands that reached showdown.
func (s *Statistics) ShowdownRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Showdowns) / float64(s.Hands)
}

// Validate checks internal consistency of the aggregates. Every hand is
// zero-sum, so the running total must be exactly zero.
func (s *Statistics) Validate() error {
	if s.NetTotal != 0 {
		return fmt.Errorf("results are not zero-sum: net total %d over %d hands", s.NetTotal, s.Hands)
	}
	if s.Showdowns+s.Folds != s.Hands {
		return fmt.Errorf("showdowns %d + folds %d != hands %d", s.Showdowns, s.Folds, s.Hands)
	}
	return nil
}
