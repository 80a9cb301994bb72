package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

var ErrInvalidPayload = errors.New("invalid payload")

func (that *Server) handleState(ctx context.Context, _ *Message) (*Message, error) {
	game, err := that.game.GetGame(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	msg, err := stateMessage(game)
	if err != nil {
		return nil, err
	}

	return &msg, nil
}

func (that *Server) handleTurn(ctx context.Context, msg *Message) (*Message, error) {
	var payload TurnPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	if payload.Row == nil || payload.Col == nil {
		return nil, fmt.Errorf("%w: row and col are required", ErrInvalidPayload)
	}

	if _, err := that.game.SelectSquare(ctx, entity.Position{Row: *payload.Row, Col: *payload.Col}); err != nil {
		return nil, err
	}

	return nil, nil
}

func (that *Server) handleRename(ctx context.Context, msg *Message) (*Message, error) {
	var payload RenamePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	if _, err := that.game.RenameSymbol(ctx, entity.ParseSymbol(payload.Symbol), payload.Name); err != nil {
		return nil, err
	}

	return nil, nil
}

func (that *Server) handleRestart(ctx context.Context, _ *Message) (*Message, error) {
	if _, err := that.game.Restart(ctx); err != nil {
		return nil, err
	}

	return nil, nil
}
