package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const (
	writeTimeout  = 10 * time.Second
	outboxSize    = 8
	maxMessageLen = 4096
)

var ErrUnknownAction = errors.New("unknown action")

type gameUseCase interface {
	GetGame(ctx context.Context) (*entity.Game, error)
	SelectSquare(ctx context.Context, pos entity.Position) (*entity.Game, error)
	RenameSymbol(ctx context.Context, symbol entity.Symbol, name string) (*entity.Game, error)
	Restart(ctx context.Context) (*entity.Game, error)
	Subscribe(ctx context.Context) (<-chan *entity.Game, error)
}

// handlerFunc returns the reply for the sender; nil when the change reaches it through
// the subscription instead.
type handlerFunc func(ctx context.Context, msg *Message) (*Message, error)

type Server struct {
	logger   *slog.Logger
	game     gameUseCase
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, game gameUseCase) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		game:   game,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[ActionState] = server.handleState
	server.handlers[ActionTurn] = server.handleTurn
	server.handlers[ActionRename] = server.handleRename
	server.handlers[ActionRestart] = server.handleRestart

	return server
}

// ServeHTTP - upgrades the connection and mirrors the game to the client until it leaves.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP", "remote", req.RemoteAddr)

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageLen)

	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()

	updates, err := that.game.Subscribe(ctx)
	if err != nil {
		log.Error("failed to subscribe to game", "error", err)
		_ = that.write(conn, errorMessage(ActionState, err))
		return
	}

	game, err := that.game.GetGame(ctx)
	if err != nil {
		log.Error("failed to get game", "error", err)
		_ = that.write(conn, errorMessage(ActionState, err))
		return
	}

	initial, err := stateMessage(game)
	if err != nil {
		log.Error("failed to build state message", "error", err)
		return
	}

	if err = that.write(conn, initial); err != nil {
		log.Error("failed to send initial state", "error", err)
		return
	}

	log.Info("WebSocket connection established")

	outbox := make(chan Message, outboxSize)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()

		if err := that.writeLoop(ctx, conn, updates, outbox); err != nil {
			log.Error("error writing messages", "error", err)
		}

		// unblocks the read loop
		_ = conn.Close()
	}()

	that.readLoop(ctx, conn, outbox)
	cancel()
	wg.Wait()

	log.Info("WebSocket connection closed")
}

// writeLoop - the only writer of conn.
func (that *Server) writeLoop(ctx context.Context, conn *websocket.Conn, updates <-chan *entity.Game, outbox <-chan Message) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case game, ok := <-updates:
			if !ok {
				return nil
			}

			msg, err := stateMessage(game)
			if err != nil {
				return err
			}

			if err = that.write(conn, msg); err != nil {
				return err
			}
		case msg := <-outbox:
			if err := that.write(conn, msg); err != nil {
				return err
			}
		}
	}
}

// readLoop - processes messages from the client.
func (that *Server) readLoop(ctx context.Context, conn *websocket.Conn, outbox chan<- Message) {
	log := that.logger.With("method", "readLoop")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("error reading message", "error", err)
			}

			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			that.enqueue(ctx, outbox, errorMessage("", fmt.Errorf("malformed message: %w", err)))

			continue
		}

		reply, err := that.dispatch(ctx, &message)
		if err != nil {
			log.Warn("error processing message", "action", message.Action, "error", err)
			that.enqueue(ctx, outbox, errorMessage(message.Action, err))

			continue
		}

		if reply != nil {
			that.enqueue(ctx, outbox, *reply)
		}
	}
}

func (that *Server) dispatch(ctx context.Context, msg *Message) (*Message, error) {
	handler, ok := that.handlers[msg.Action]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, msg.Action)
	}

	return handler(ctx, msg)
}

func (that *Server) enqueue(ctx context.Context, outbox chan<- Message, msg Message) {
	select {
	case outbox <- msg:
	case <-ctx.Done():
	}
}

func (that *Server) write(conn *websocket.Conn, msg Message) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
