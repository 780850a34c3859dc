package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

// session is the display of one browser tab. Every method runs on the
// goroutine that reads the connection, so the connection has a single writer.
type session struct {
	logger *slog.Logger
	conn   *websocket.Conn

	onStart tictactoe.Action
	onReset tictactoe.Action
	onCell  func(index int)

	handlers map[string]func(ctx context.Context, msg *Message) error
}

func newSession(logger *slog.Logger, conn *websocket.Conn) *session {
	that := &session{
		logger: logger,
		conn:   conn,
	}

	that.handlers = map[string]func(context.Context, *Message) error{
		actionCellActivate: that.handleCellActivate,
		actionControlPress: that.handleControlPress,
		actionNameAnswer:   that.handleStrayNameAnswer,
	}

	return that
}

func (that *session) RenderBoard(cells [entity.BoardSize]entity.Mark) {
	that.send(actionBoardRender, BoardPayload{Cells: cells})
}

func (that *session) SetStatusText(text string) {
	that.send(actionStatusSet, StatusPayload{Text: text})
}

func (that *session) ShowStartControl(onStart tictactoe.Action) {
	that.onStart = onStart
	that.send(actionControlShow, ControlPayload{Control: controlStart})
}

func (that *session) ShowResetControl(onReset tictactoe.Action) {
	that.onReset = onReset
	that.send(actionControlShow, ControlPayload{Control: controlReset})
}

func (that *session) OnCellActivated(handler func(index int)) {
	that.onCell = handler
}

// AskName asks the browser for a name and waits for the answer. Anything else
// the browser sends in the meantime is dropped.
func (that *session) AskName(ctx context.Context, ordinal int) (string, error) {
	log := that.logger.With("method", "AskName")

	that.send(actionNameAsk, NameAskPayload{Ordinal: ordinal})

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		msg, err := that.next()
		if err != nil {
			return "", err
		}

		if msg.Action != actionNameAnswer {
			log.Debug("dropping message while waiting for a name", "action", msg.Action)
			continue
		}

		var payload NameAnswerPayload
		if err = json.Unmarshal(msg.Payload, &payload); err != nil {
			return "", fmt.Errorf("failed to unmarshal payload: %w", err)
		}

		return payload.Name, nil
	}
}

// run dispatches browser events until the connection is closed.
func (that *session) run(ctx context.Context) error {
	log := that.logger.With("method", "run")

	for {
		msg, err := that.next()
		if err != nil {
			return err
		}

		handler, ok := that.handlers[msg.Action]
		if !ok {
			log.Warn("error processing message", "error", fmt.Errorf("%w: %s", apperror.ErrUnknownAction, msg.Action))
			continue
		}

		if err = handler(ctx, msg); err != nil {
			log.Warn("error processing message", "action", msg.Action, "error", err)
		}
	}
}

// next reads the next well-formed message. Malformed frames are logged and skipped.
func (that *session) next() (*Message, error) {
	for {
		_, data, err := that.conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("failed to read message: %w", err)
		}

		var msg Message
		if err = json.Unmarshal(data, &msg); err != nil {
			that.logger.Warn("failed to unmarshal message", "error", err)
			continue
		}

		return &msg, nil
	}
}

func (that *session) handleCellActivate(_ context.Context, msg *Message) error {
	var payload CellPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.Index == nil {
		return apperror.ErrInvalidCell
	}

	if that.onCell != nil {
		that.onCell(*payload.Index)
	}

	return nil
}

func (that *session) handleControlPress(ctx context.Context, msg *Message) error {
	var payload ControlPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	var action tictactoe.Action

	switch payload.Control {
	case controlStart:
		action, that.onStart = that.onStart, nil
	case controlReset:
		action, that.onReset = that.onReset, nil
	default:
		return fmt.Errorf("%w: %q", apperror.ErrInvalidControl, payload.Control)
	}

	// a control that isn't on screen can't be pressed
	if action == nil {
		that.logger.Debug("control is not shown", "control", payload.Control)
		return nil
	}

	action(ctx)

	return nil
}

func (that *session) handleStrayNameAnswer(_ context.Context, _ *Message) error {
	that.logger.Debug("name answer without a question")
	return nil
}

func (that *session) send(action string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		that.logger.Error("failed to marshal payload", "action", action, "error", err)
		return
	}

	if err = that.conn.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		that.logger.Warn("failed to send message", "action", action, "error", err)
	}
}
