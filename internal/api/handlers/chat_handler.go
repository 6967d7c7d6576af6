package handlers

import (
	"net/http"

	"github.com/dverhoeven/folioagent/internal/agents"
	"github.com/dverhoeven/folioagent/internal/apperr"
	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chat *agents.ChatAgent
}

func NewChatHandler(chat *agents.ChatAgent) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type startSessionRequest struct {
	VisitorName string `json:"visitor_name"`
}

func (h *ChatHandler) StartSession(c *gin.Context) {
	var req startSessionRequest
	// body is optional; an anonymous visitor sends none
	_ = c.ShouldBindJSON(&req)

	s, err := h.chat.StartSession(c.Request.Context(), req.VisitorName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *ChatHandler) ListMessages(c *gin.Context) {
	sessionID := c.Param("session_id")

	rows, err := h.chat.History(c.Request.Context(), sessionID, int64(queryLimit(c, 200, 500)))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"messages":   rows,
	})
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperr.E(apperr.CodeInvalidArgument, "ChatHandler.SendMessage", "invalid request body", err))
		return
	}

	reply, err := h.chat.Reply(c.Request.Context(), c.Param("session_id"), req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (h *ChatHandler) EndSession(c *gin.Context) {
	if err := h.chat.EndSession(c.Request.Context(), c.Param("session_id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ended": true})
}
