package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/kuhnlab/kuhnbot/internal/contract"
)

// HandState is the full state of one Kuhn poker hand. The zero value is not
// usable; construct with NewHand or Deal. All fields are unexported so a
// state can only change by producing a successor through Apply.
type HandState struct {
	phase         contract.Phase
	actor         contract.Player
	privateCards  [contract.NumPlayers]contract.Card
	history       []contract.PublicAction
	contributions [contract.NumPlayers]int
	lastBettor    int8 // seat of the single bettor, -1 until a bet is recorded
	returns       [contract.NumPlayers]int
	resolved      bool
}

// NewHand creates the initial state for a hand from two distinct dealt
// cards. Player0 opens, both players have posted the 1-chip ante.
func NewHand(p0, p1 contract.Card) (HandState, error) {
	if !p0.Valid() || !p1.Valid() {
		return HandState{}, fmt.Errorf("%w: %d/%d", ErrInvalidCard, p0, p1)
	}
	if p0 == p1 {
		return HandState{}, fmt.Errorf("%w: both players dealt %s", ErrDuplicateCard, p0)
	}
	return HandState{
		phase:         contract.PhaseP0Act,
		actor:         contract.Player0,
		privateCards:  [contract.NumPlayers]contract.Card{p0, p1},
		contributions: [contract.NumPlayers]int{1, 1},
		lastBettor:    -1,
	}, nil
}

// Deal draws two distinct cards from the three-card deck with the provided
// RNG and returns the initial state. The third card stays unseen.
func Deal(rng *rand.Rand) HandState {
	perm := rng.Perm(contract.NumCards)
	s, err := NewHand(contract.Card(perm[0]), contract.Card(perm[1]))
	if err != nil {
		// Unreachable: a permutation cannot repeat a card.
		panic(fmt.Sprintf("game: deal produced invalid hand: %v", err))
	}
	return s
}

// Phase returns the current phase.
func (s HandState) Phase() contract.Phase { return s.phase }

// Terminal reports whether the hand has ended and returns are fixed.
func (s HandState) Terminal() bool { return s.phase == contract.PhaseTerminal }

// Actor returns the player whose turn it is. ok is false exactly when the
// hand is terminal.
func (s HandState) Actor() (contract.Player, bool) {
	if s.Terminal() {
		return 0, false
	}
	return s.actor, true
}

// PrivateCard returns the card dealt to the given seat. Fixed for the whole
// hand.
func (s HandState) PrivateCard(p contract.Player) contract.Card {
	return s.privateCards[p]
}

// History returns a copy of the ordered public action tokens.
func (s HandState) History() []contract.PublicAction {
	return append([]contract.PublicAction(nil), s.history...)
}

// Contribution returns the chips the given seat has put in the pot,
// including the ante.
func (s HandState) Contribution(p contract.Player) int {
	return s.contributions[p]
}

// Pot returns the total chips contributed by both seats.
func (s HandState) Pot() int {
	return s.contributions[contract.Player0] + s.contributions[contract.Player1]
}

// LastBettor returns the seat that bet this hand. ok is false until a bet
// token has been recorded; once set it is never cleared.
func (s HandState) LastBettor() (contract.Player, bool) {
	if s.lastBettor < 0 {
		return 0, false
	}
	return contract.Player(s.lastBettor), true
}

// Returns reports the net chip change per seat. ok is false until the hand
// is terminal. The two entries always sum to zero.
func (s HandState) Returns() ([contract.NumPlayers]int, bool) {
	if !s.resolved {
		return [contract.NumPlayers]int{}, false
	}
	return s.returns, true
}

// Apply validates the action against the current legal mask and produces the
// successor state. The receiver is never modified.
func (s HandState) Apply(action contract.ActionID) (HandState, error) {
	actor, ok := s.Actor()
	if !ok {
		return HandState{}, fmt.Errorf("%w: hand is terminal", ErrInvalidTransition)
	}
	if !LegalActionMask(s, actor).Legal(action) {
		return HandState{}, fmt.Errorf("%w: action %d in phase %s", ErrIllegalAction, action, s.phase)
	}

	token := resolveToken(s.phase, action)

	next := s
	next.history = appendHistory(s.history, token)
	if token == contract.Bet || token == contract.Call {
		next.contributions[actor]++
	}
	if token == contract.Bet {
		next.lastBettor = int8(actor)
	}

	switch {
	case s.phase == contract.PhaseP0Act && token == contract.Check:
		next.phase, next.actor = contract.PhaseP1Act, contract.Player1
	case s.phase == contract.PhaseP0Act && token == contract.Bet:
		next.phase, next.actor = contract.PhaseP1Response, contract.Player1
	case s.phase == contract.PhaseP1Act && token == contract.Check:
		next.resolve(next.showdownWinner())
	case s.phase == contract.PhaseP1Act && token == contract.Bet:
		next.phase, next.actor = contract.PhaseP0Response, contract.Player0
	case s.phase.Response() && token == contract.Call:
		next.resolve(next.showdownWinner())
	case s.phase.Response() && token == contract.Fold:
		bettor, ok := next.LastBettor()
		if !ok {
			// A response phase is only reachable through a bet.
			panic("game: fold resolution with no recorded bettor")
		}
		next.resolve(bettor)
	default:
		panic(fmt.Sprintf("game: unhandled transition phase=%s token=%s", s.phase, token))
	}

	return next, nil
}

// resolveToken maps an action id to the public token it means in the given
// phase: id 0 is a check when opening and a call when facing a bet.
func resolveToken(phase contract.Phase, action contract.ActionID) contract.PublicAction {
	switch action {
	case contract.ActionCheckCall:
		if phase.Response() {
			return contract.Call
		}
		return contract.Check
	case contract.ActionBet:
		return contract.Bet
	default:
		return contract.Fold
	}
}

// appendHistory copies on append so successor states never alias the
// receiver's backing array.
func appendHistory(history []contract.PublicAction, token contract.PublicAction) []contract.PublicAction {
	out := make([]contract.PublicAction, len(history), len(history)+1)
	copy(out, history)
	return append(out, token)
}

// showdownWinner compares private cards by rank. Two distinct cards from a
// three-card deck can never tie.
func (s HandState) showdownWinner() contract.Player {
	if s.privateCards[contract.Player0] > s.privateCards[contract.Player1] {
		return contract.Player0
	}
	return contract.Player1
}

// resolve fixes terminal returns exactly once: the winner takes the pot
// minus their own contribution, the loser is down their contribution. The
// two always cancel out.
func (s *HandState) resolve(winner contract.Player) {
	loser := winner.Opponent()
	s.returns[winner] = s.Pot() - s.contributions[winner]
	s.returns[loser] = -s.contributions[loser]
	s.resolved = true
	s.phase = contract.PhaseTerminal
}
