// Package contract is the single canonical enumeration shared by every
// implementation of the Kuhn poker contract: cards, players, action ids,
// phases, the mask-by-phase table, and the observation layout. The training
// harness, the browser client, and this repo must agree on these constants
// bit-for-bit, so everything else derives from this package and nothing in
// it carries behavior beyond lookups.
package contract

// Name and Version identify the contract artifact both implementations are
// generated from or hand-verified against.
const (
	Name    = "kuhn"
	Version = "v1"
)

// Card is one of the three ranked cards. Rank order is Jack < Queen < King.
type Card int8

const (
	CardJack Card = iota
	CardQueen
	CardKing
)

// NumCards is the deck size. Two of three cards are dealt per hand, the
// third stays unseen by both players.
const NumCards = 3

func (c Card) String() string {
	switch c {
	case CardJack:
		return "J"
	case CardQueen:
		return "Q"
	case CardKing:
		return "K"
	default:
		return "?"
	}
}

// Valid reports whether c is one of the three deck cards.
func (c Card) Valid() bool {
	return c >= CardJack && c <= CardKing
}

// Player identifies one of the two fixed seats. Player0 always acts first.
type Player int8

const (
	Player0 Player = iota
	Player1
)

// NumPlayers is fixed at two seats.
const NumPlayers = 2

func (p Player) String() string {
	switch p {
	case Player0:
		return "player_0"
	case Player1:
		return "player_1"
	default:
		return "unknown"
	}
}

// Opponent returns the other seat.
func (p Player) Opponent() Player {
	if p == Player0 {
		return Player1
	}
	return Player0
}

// ActionID is the numeric action identifier used for model I/O. A single id
// resolves to different public tokens depending on phase: id 0 is a check in
// an opening phase and a call in a response phase. Trained policies depend
// on this mapping, so it must never change.
type ActionID int8

const (
	ActionCheckCall ActionID = iota
	ActionBet
	ActionFold
)

// ActionDim is the width of the action space and of every mask and logits
// vector.
const ActionDim = 3

func (a ActionID) String() string {
	switch a {
	case ActionCheckCall:
		return "check_call"
	case ActionBet:
		return "bet"
	case ActionFold:
		return "fold"
	default:
		return "unknown"
	}
}

// Valid reports whether a is within the action space.
func (a ActionID) Valid() bool {
	return a >= 0 && a < ActionDim
}

// PublicAction is the token recorded in public history, distinct from the
// numeric ActionID.
type PublicAction int8

const (
	Check PublicAction = iota
	Bet
	Call
	Fold
)

func (t PublicAction) String() string {
	switch t {
	case Check:
		return "check"
	case Bet:
		return "bet"
	case Call:
		return "call"
	case Fold:
		return "fold"
	default:
		return "unknown"
	}
}

// Phase is the closed set of hand phases. PhaseDeal is a transient pre-state
// never exposed to a viewer.
type Phase int8

const (
	PhaseDeal Phase = iota
	PhaseP0Act
	PhaseP1Act
	PhaseP0Response
	PhaseP1Response
	PhaseTerminal
)

func (p Phase) String() string {
	switch p {
	case PhaseDeal:
		return "deal"
	case PhaseP0Act:
		return "p0_act"
	case PhaseP1Act:
		return "p1_act"
	case PhaseP0Response:
		return "p0_response"
	case PhaseP1Response:
		return "p1_response"
	case PhaseTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Opening reports whether p is a phase where the actor may check or bet.
func (p Phase) Opening() bool {
	return p == PhaseP0Act || p == PhaseP1Act
}

// Response reports whether p is a phase reached after a bet, where the actor
// may only call or fold.
func (p Phase) Response() bool {
	return p == PhaseP0Response || p == PhaseP1Response
}

// Mask is a legality vector over the three action ids.
type Mask [ActionDim]int8

var (
	// MaskOpen permits check or bet.
	MaskOpen = Mask{1, 1, 0}
	// MaskResponse permits call or fold.
	MaskResponse = Mask{1, 0, 1}
	// MaskNone permits nothing: out of turn, deal, or terminal.
	MaskNone = Mask{0, 0, 0}
)

// MaskForPhase returns the legality vector for the acting player in the
// given phase. Non-actors always get MaskNone regardless of phase; that
// check belongs to the caller because it needs viewer identity.
func MaskForPhase(p Phase) Mask {
	switch {
	case p.Opening():
		return MaskOpen
	case p.Response():
		return MaskResponse
	default:
		return MaskNone
	}
}

// AnyLegal reports whether at least one action is permitted.
func (m Mask) AnyLegal() bool {
	for _, bit := range m {
		if bit == 1 {
			return true
		}
	}
	return false
}

// Legal reports whether the given action id is permitted.
func (m Mask) Legal(a ActionID) bool {
	return a.Valid() && m[a] == 1
}

// Float32 converts the mask to the float32 layout the model boundary uses.
func (m Mask) Float32() []float32 {
	out := make([]float32, ActionDim)
	for i, bit := range m {
		out[i] = float32(bit)
	}
	return out
}

// Observation layout. A single fixed-width vector of ObservationSize entries
// holding three one-hot groups: the viewer's private card, a public history
// bucket, and the current actor.
const (
	PrivateCardOffset = 0
	PrivateCardDim    = NumCards

	HistoryOffset = PrivateCardOffset + PrivateCardDim
	HistoryDim    = 5

	ActorOffset = HistoryOffset + HistoryDim
	ActorDim    = NumPlayers

	ObservationSize = PrivateCardDim + HistoryDim + ActorDim
)

// TerminalHistoryBucket aliases every history that is not exactly one of the
// four explicit prefixes below, including all terminal histories. This
// coarse aliasing is an intentional state abstraction the trained policy was
// fitted against, not an incomplete bucket list.
const TerminalHistoryBucket = 4

// HistoryBucket maps a public history to its observation bucket by exact
// ordered-sequence match, never by prefix or length alone.
func HistoryBucket(history []PublicAction) int {
	switch {
	case len(history) == 0:
		return 0
	case len(history) == 1 && history[0] == Check:
		return 1
	case len(history) == 1 && history[0] == Bet:
		return 2
	case len(history) == 2 && history[0] == Check && history[1] == Bet:
		return 3
	default:
		return TerminalHistoryBucket
	}
}

// Model I/O boundary. Tensor names are fixed by the exported model; shapes
// are [batch, ObservationSize] and [batch, ActionDim] for inputs, and
// [batch, ActionDim] and [batch, 1] for outputs.
const (
	InputObservationName   = "observation"
	InputActionMaskName    = "action_mask"
	OutputMaskedLogitsName = "masked_logits"
	OutputValueName        = "value"
)

// IllegalLogit is the sentinel the exported model writes over illegal
// entries. Consumers must still re-enforce the mask themselves rather than
// trust this magnitude.
const IllegalLogit = float32(-1e9)
