package server

import (
	"encoding/json"
	"time"
)

// MessageType discriminates the wire messages.
type MessageType string

const (
	// Client -> server
	MessageTypeJoin   MessageType = "join"
	MessageTypeAction MessageType = "action"

	// Server -> client
	MessageTypeHandStart     MessageType = "hand_start"
	MessageTypeActionRequest MessageType = "action_request"
	MessageTypePlayerAction  MessageType = "player_action"
	MessageTypeHandResult    MessageType = "hand_result"
	MessageTypeError         MessageType = "error"
)

// Message is the base WebSocket message envelope.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp.
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client -> Server payloads

// JoinData lets the client pick its seat before the first hand. Seat 0 acts
// first. Hands of 0 means play until disconnect.
type JoinData struct {
	Seat  int `json:"seat"`
	Hands int `json:"hands,omitempty"`
}

// ActionData carries the client's chosen action id for the pending request.
type ActionData struct {
	ActionID int `json:"actionId"`
}

// Server -> Client payloads

// HandStartData announces a fresh hand and the client's private card.
type HandStartData struct {
	HandIndex int    `json:"handIndex"`
	Seat      int    `json:"seat"`
	Card      string `json:"card"`
}

// ActionRequestData gives the client everything a policy consumes: the
// fixed-width observation, the legal mask, and the public context. The
// client must answer with an action id that is legal under the mask before
// the timeout, or the server substitutes a random legal action.
type ActionRequestData struct {
	Observation    []float32 `json:"observation"`
	ActionMask     []int8    `json:"actionMask"`
	History        []string  `json:"history"`
	Phase          string    `json:"phase"`
	TimeoutSeconds int       `json:"timeoutSeconds"`
}

// PlayerActionData reports the opponent's resolved public token.
type PlayerActionData struct {
	Seat  int    `json:"seat"`
	Token string `json:"token"`
	Phase string `json:"phase"`
}

// HandResultData closes out a hand: full history, both revealed cards, and
// the zero-sum net chip returns keyed by seat name.
type HandResultData struct {
	History  []string          `json:"history"`
	Reveal   map[string]string `json:"reveal"`
	Returns  map[string]int    `json:"returns"`
	Showdown bool              `json:"showdown"`
}

// ErrorData reports a protocol or game error to the client.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
