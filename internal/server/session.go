package server

import (
	"context"
	"encoding/json"
	"fmt"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/kuhnlab/kuhnbot/internal/contract"
	"github.com/kuhnlab/kuhnbot/internal/game"
	"github.com/kuhnlab/kuhnbot/internal/policy"
)

// session drives hands for one connected client: the client holds one seat,
// the configured bot holds the other. The session owns the authoritative
// HandState; the client only ever sees observations, masks, and results.
type session struct {
	conn   *websocket.Conn
	logger *log.Logger
	clock  quartz.Clock
	cfg    GameSettings
	bot    game.Agent
	rng    *rand.Rand

	// writeMu serializes writes: the read pump sends protocol errors on the
	// same connection the hand loop writes to.
	writeMu sync.Mutex

	joinCh   chan JoinData
	actionCh chan ActionData
	readErr  chan error
}

func newSession(conn *websocket.Conn, bot game.Agent, rng *rand.Rand, cfg GameSettings, clock quartz.Clock, logger *log.Logger) *session {
	return &session{
		conn:     conn,
		logger:   logger.WithPrefix("session"),
		clock:    clock,
		cfg:      cfg,
		bot:      bot,
		rng:      rng,
		joinCh:   make(chan JoinData, 1),
		actionCh: make(chan ActionData, 1),
		readErr:  make(chan error, 1),
	}
}

// run plays hands until the client disconnects, the requested hand count is
// reached, or the context is cancelled.
func (s *session) run(ctx context.Context) error {
	go s.readPump()

	join, err := s.waitForJoin(ctx)
	if err != nil {
		return err
	}
	if join.Seat < 0 || join.Seat >= contract.NumPlayers {
		s.sendError("bad_seat", fmt.Sprintf("seat must be 0 or 1, got %d", join.Seat))
		return fmt.Errorf("client requested invalid seat %d", join.Seat)
	}
	remoteSeat := contract.Player(join.Seat)

	s.logger.Info("client joined", "seat", remoteSeat.String(), "hands", join.Hands)

	for handIndex := 0; join.Hands == 0 || handIndex < join.Hands; handIndex++ {
		if err := s.playHand(ctx, handIndex, remoteSeat); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) playHand(ctx context.Context, handIndex int, remoteSeat contract.Player) error {
	state := game.Deal(s.rng)

	start := HandStartData{
		HandIndex: handIndex,
		Seat:      int(remoteSeat),
		Card:      state.PrivateCard(remoteSeat).String(),
	}
	if err := s.send(MessageTypeHandStart, start); err != nil {
		return err
	}

	for !state.Terminal() {
		actor, _ := state.Actor()
		mask := game.LegalActionMask(state, actor)

		var action contract.ActionID
		var err error
		if actor == remoteSeat {
			action, err = s.remoteAction(ctx, state, mask)
		} else {
			action, err = s.botAction(ctx, state, mask)
		}
		if err != nil {
			return err
		}

		next, err := state.Apply(action)
		if err != nil {
			// The action was validated against the mask before apply, so
			// this is a server defect, not client input.
			return fmt.Errorf("apply validated action %s: %w", action, err)
		}

		if actor != remoteSeat {
			history := next.History()
			token := history[len(history)-1]
			if err := s.send(MessageTypePlayerAction, PlayerActionData{
				Seat:  int(actor),
				Token: token.String(),
				Phase: next.Phase().String(),
			}); err != nil {
				return err
			}
		}

		state = next
	}

	return s.sendResult(state, remoteSeat)
}

// remoteAction asks the client for a decision. An illegal or late answer is
// replaced with a uniform random legal action through the same apply path,
// so a stalled client never blocks or corrupts the authoritative state.
func (s *session) remoteAction(ctx context.Context, state game.HandState, mask contract.Mask) (contract.ActionID, error) {
	req := ActionRequestData{
		Observation:    game.ObservationSlice(state, mustActor(state)),
		ActionMask:     maskInt8(mask),
		History:        historyStrings(state),
		Phase:          state.Phase().String(),
		TimeoutSeconds: s.cfg.TimeoutSeconds,
	}

	// The timer starts before the request goes out, so a client that sees
	// the request knows the clock is already running.
	timeout := time.Duration(s.cfg.TimeoutSeconds) * time.Second
	timer := s.clock.NewTimer(timeout)
	defer timer.Stop()

	if err := s.send(MessageTypeActionRequest, req); err != nil {
		return 0, err
	}

	select {
	case data := <-s.actionCh:
		action := contract.ActionID(data.ActionID)
		if !mask.Legal(action) {
			s.sendError("illegal_action", fmt.Sprintf("action %d is not legal in phase %s", data.ActionID, state.Phase()))
			s.logger.Warn("client sent illegal action, substituting random legal action", "action", data.ActionID)
			return policy.SampleLegal(mask, s.rng)
		}
		return action, nil
	case <-timer.C:
		s.logger.Warn("client decision timed out, substituting random legal action", "timeout", timeout)
		return policy.SampleLegal(mask, s.rng)
	case err := <-s.readErr:
		return 0, err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (s *session) botAction(ctx context.Context, state game.HandState, mask contract.Mask) (contract.ActionID, error) {
	action, err := s.bot.Act(ctx, state, mask)
	if err != nil {
		s.logger.Warn("bot decision failed, substituting random legal action", "error", err)
		return policy.SampleLegal(mask, s.rng)
	}
	return action, nil
}

func (s *session) sendResult(state game.HandState, remoteSeat contract.Player) error {
	returns, ok := state.Returns()
	if !ok {
		return fmt.Errorf("hand result requested before terminal")
	}
	history := state.History()
	showdown := len(history) > 0 && history[len(history)-1] != contract.Fold

	result := HandResultData{
		History: historyStrings(state),
		Reveal: map[string]string{
			contract.Player0.String(): state.PrivateCard(contract.Player0).String(),
			contract.Player1.String(): state.PrivateCard(contract.Player1).String(),
		},
		Returns: map[string]int{
			contract.Player0.String(): returns[contract.Player0],
			contract.Player1.String(): returns[contract.Player1],
		},
		Showdown: showdown,
	}
	s.logger.Info("hand complete",
		"history", result.History,
		"clientReturn", returns[remoteSeat],
		"showdown", showdown)
	return s.send(MessageTypeHandResult, result)
}

func (s *session) waitForJoin(ctx context.Context) (JoinData, error) {
	timeout := time.Duration(s.cfg.TimeoutSeconds) * time.Second
	timer := s.clock.NewTimer(timeout)
	defer timer.Stop()

	select {
	case join := <-s.joinCh:
		return join, nil
	case <-timer.C:
		return JoinData{}, fmt.Errorf("client did not join within %v", timeout)
	case err := <-s.readErr:
		return JoinData{}, err
	case <-ctx.Done():
		return JoinData{}, ctx.Err()
	}
}

// readPump decodes inbound messages onto the join/action channels. It exits
// on the first read error, which also unblocks any pending decision wait.
func (s *session) readPump() {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.readErr <- fmt.Errorf("read: %w", err)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendError("bad_message", "message is not valid JSON")
			continue
		}

		switch msg.Type {
		case MessageTypeJoin:
			var join JoinData
			if err := json.Unmarshal(msg.Data, &join); err != nil {
				s.sendError("bad_message", "join payload is malformed")
				continue
			}
			s.joinCh <- join
		case MessageTypeAction:
			var action ActionData
			if err := json.Unmarshal(msg.Data, &action); err != nil {
				s.sendError("bad_message", "action payload is malformed")
				continue
			}
			select {
			case s.actionCh <- action:
			default:
				// No decision pending; drop the stray action.
				s.logger.Warn("dropping unsolicited action", "action", action.ActionID)
			}
		default:
			s.sendError("bad_message", fmt.Sprintf("unknown message type %q", msg.Type))
		}
	}
}

func (s *session) send(messageType MessageType, data interface{}) error {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		return fmt.Errorf("encode %s: %w", messageType, err)
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(msg)
}

func (s *session) sendError(code, message string) {
	if err := s.send(MessageTypeError, ErrorData{Code: code, Message: message}); err != nil {
		s.logger.Error("failed to send error message", "error", err)
	}
}

func mustActor(state game.HandState) contract.Player {
	actor, ok := state.Actor()
	if !ok {
		panic("server: actor requested on terminal state")
	}
	return actor
}

func maskInt8(mask contract.Mask) []int8 {
	out := make([]int8, contract.ActionDim)
	copy(out, mask[:])
	return out
}

func historyStrings(state game.HandState) []string {
	history := state.History()
	out := make([]string, len(history))
	for i, token := range history {
		out[i] = token.String()
	}
	return out
}
