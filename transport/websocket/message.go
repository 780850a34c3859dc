package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// server -> client
const (
	actionBoardRender = "board:render"
	actionStatusSet   = "status:set"
	actionControlShow = "control:show"
	actionNameAsk     = "name:ask"
)

// client -> server
const (
	actionCellActivate = "cell:activate"
	actionControlPress = "control:press"
	actionNameAnswer   = "name:answer"
)

const (
	controlStart = "start"
	controlReset = "reset"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type BoardPayload struct {
	Cells [entity.BoardSize]entity.Mark `json:"cells"`
}

type StatusPayload struct {
	Text string `json:"text"`
}

type ControlPayload struct {
	Control string `json:"control"`
}

type NameAskPayload struct {
	Ordinal int `json:"ordinal"`
}

type NameAnswerPayload struct {
	Name string `json:"name"`
}

type CellPayload struct {
	Index *int `json:"index"`
}
