package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const (
	ActionState   = "game:state"
	ActionTurn    = "game:turn"
	ActionRename  = "player:rename"
	ActionRestart = "game:restart"
	ActionError   = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type TurnPayload struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type RenamePayload struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

type ErrorPayload struct {
	Action string `json:"action,omitempty"`
	Error  string `json:"error"`
}

func newMessage(action string, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to marshal %s payload: %w", action, err)
	}

	return Message{Action: action, Payload: raw}, nil
}

func stateMessage(game *entity.Game) (Message, error) {
	return newMessage(ActionState, game)
}

func errorMessage(action string, err error) Message {
	msg, marshalErr := newMessage(ActionError, ErrorPayload{Action: action, Error: err.Error()})
	if marshalErr != nil {
		return Message{Action: ActionError}
	}

	return msg
}
