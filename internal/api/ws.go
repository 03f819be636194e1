package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/kapu/chesslink/internal/validate"
	"github.com/kapu/chesslink/pkg/gamedto"
)

// socketFrame is a client-to-server websocket message. Register frames
// carry credentials in Message; anything else is echoed back.
type socketFrame struct {
	Action  string          `json:"action"`
	Message json.RawMessage `json:"message"`
}

// WebSocket upgrades the connection and serves the register/echo loop.
// The connection is tracked in the hub for the whole lifetime of the
// socket so a registered opponent can be reached by connection id.
func (h *Handlers) WebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.logger.Warn("websocket accept failed", zap.Error(err))
		return
	}
	connID := h.hub.Add(conn)
	defer h.hub.Remove(connID)
	defer conn.Close(websocket.StatusNormalClosure, "")

	h.logger.Info("websocket connected", zap.String("conn_id", connID))

	ctx := r.Context()
	for {
		var frame socketFrame
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			h.logger.Info("websocket closed", zap.String("conn_id", connID))
			return
		}
		if strings.EqualFold(strings.TrimSpace(frame.Action), "register") {
			h.register(ctx, conn, connID, frame.Message)
			continue
		}
		h.echo(ctx, conn, frame.Message)
	}
}

// register authenticates the frame and binds the connection id to the
// caller's seat. The immediate reply is "move" when it is already the
// caller's turn, "registered" otherwise.
func (h *Handlers) register(ctx context.Context, conn *websocket.Conn, connID string, raw json.RawMessage) {
	var payload any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			payload = nil
		}
	}
	checked, ok := validate.Apply(payload, registerSchema)
	if !ok {
		h.writeSocketError(ctx, conn, connID, "")
		return
	}
	accepted := checked.(map[string]any)
	gameID := accepted["game_id"].(string)

	event, err := h.svc.RegisterConnection(ctx, gameID, accepted["password"].(string), connID)
	if err != nil {
		h.logger.Info("websocket register rejected",
			zap.String("conn_id", connID), zap.String("game_id", gameID), zap.Error(err))
		h.writeSocketError(ctx, conn, connID, gameID)
		return
	}

	if err := h.hub.Push(ctx, connID, event); err != nil {
		h.logger.Info("register ack not delivered", zap.String("conn_id", connID), zap.Error(err))
		return
	}
	h.logger.Info("websocket registered",
		zap.String("conn_id", connID), zap.String("game_id", gameID), zap.String("event", event))
}

// echo answers any unrecognized frame with its own message text.
func (h *Handlers) echo(ctx context.Context, conn *websocket.Conn, raw json.RawMessage) {
	text := ""
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &text); err != nil {
			text = string(raw)
		}
	}
	if err := wsjson.Write(ctx, conn, gamedto.SocketEcho{Echo: text}); err != nil {
		h.logger.Info("echo not delivered", zap.Error(err))
	}
}

func (h *Handlers) writeSocketError(ctx context.Context, conn *websocket.Conn, connID, gameID string) {
	msg := h.msgs.MustRender("ws.register_failed", map[string]string{
		"ConnectionID": connID,
		"GameID":       gameID,
	})
	if err := wsjson.Write(ctx, conn, gamedto.ErrorResponse{Message: msg}); err != nil {
		h.logger.Info("socket error not delivered", zap.Error(err))
	}
}
