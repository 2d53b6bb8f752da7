package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nikalabs/walletchat/internal/model"
	"github.com/nikalabs/walletchat/internal/pkg/response"
	"github.com/nikalabs/walletchat/internal/service"
)

type ChatHandler struct {
	chat *service.ChatService
}

func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type chatRequest struct {
	Messages []model.Message `json:"messages"`
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_request", "messages array is required")
		return
	}
	if len(req.Messages) == 0 {
		response.Error(c, http.StatusBadRequest, "invalid_request", "messages array is required")
		return
	}
	reply, err := h.chat.Chat(c.Request.Context(), req.Messages)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"message": reply})
}
