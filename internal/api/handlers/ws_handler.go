package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dverhoeven/folioagent/internal/agents"
	"github.com/dverhoeven/folioagent/internal/apperr"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WSHandler streams chat replies to portfolio visitors. The visitor sends
// {"type":"message","content":...}; the server answers with a sequence of
// chunk frames followed by a done frame.
type WSHandler struct {
	chat     *agents.ChatAgent
	upgrader websocket.Upgrader
}

func NewWSHandler(chat *agents.ChatAgent) *WSHandler {
	return &WSHandler{
		chat: chat,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsClientMsg struct {
	Type    string `json:"type"` // message | end_session
	Content string `json:"content,omitempty"`
}

type wsServerMsg struct {
	Type    string      `json:"type"` // chunk | done | error
	Content string      `json:"content,omitempty"`
	Code    apperr.Code `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return w.c.WriteMessage(websocket.TextMessage, b)
}

func (h *WSHandler) ChatWS(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		writeError(c, apperr.E(apperr.CodeInvalidArgument, "WSHandler.ChatWS", "missing session_id", nil))
		return
	}

	// reject unknown sessions before upgrading
	if _, err := h.chat.History(c.Request.Context(), sessionID, 1); err != nil {
		writeError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx := c.Request.Context()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
		return nil
	})

	for {
		_, data, rerr := conn.ReadMessage()
		if rerr != nil {
			return
		}

		var msg wsClientMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = wc.writeJSON(wsServerMsg{Type: "error", Code: apperr.CodeInvalidArgument, Message: "invalid json"})
			continue
		}

		switch msg.Type {
		case "message":
			chunks, errs, err := h.chat.StreamReply(ctx, sessionID, msg.Content)
			if err != nil {
				_ = wc.writeJSON(wsErr(err))
				continue
			}

			for chunk := range chunks {
				if werr := wc.writeJSON(wsServerMsg{Type: "chunk", Content: chunk}); werr != nil {
					return
				}
			}
			if serr := <-errs; serr != nil {
				_ = wc.writeJSON(wsErr(serr))
				continue
			}
			if werr := wc.writeJSON(wsServerMsg{Type: "done"}); werr != nil {
				return
			}

		case "end_session":
			_ = h.chat.EndSession(ctx, sessionID)
			_ = wc.writeJSON(wsServerMsg{Type: "done", Message: "session ended"})
			return

		default:
			_ = wc.writeJSON(wsServerMsg{Type: "error", Code: apperr.CodeInvalidArgument, Message: "unknown message type"})
		}
	}
}

func wsErr(err error) wsServerMsg {
	msg := wsServerMsg{Type: "error", Code: apperr.CodeInternal, Message: "internal error"}
	var ae *apperr.AppError
	if errors.As(err, &ae) {
		msg.Code = ae.Code
		msg.Message = ae.Message
	}
	return msg
}
