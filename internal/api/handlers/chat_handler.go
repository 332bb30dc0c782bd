package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barman-ayush/imitate.ai/internal/services"
	"github.com/barman-ayush/imitate.ai/internal/utils"
)

type ChatHandler struct {
	svc services.ChatService
}

func NewChatHandler(svc services.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type ChatRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// Send runs the pipeline and streams the reply back as one chunk.
func (h *ChatHandler) Send(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ChatHandler.Send", "invalid request body", err))
		return
	}

	reply, err := h.svc.Respond(c.Request.Context(), userID, c.Param("companion_id"), req.Prompt)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(reply))
}
