package chat

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/clio/backend/internal/model/chat"
	chatService "github.com/zhouzirui/clio/backend/internal/service/chat"
	"github.com/zhouzirui/clio/backend/pkg/utils"
)

const (
	msgQueryRequired = "Query is required"
	msgProcessFailed = "Failed to process your request. Please try again."
)

// Handler 聊天代理的HTTP处理器
type Handler struct {
	chatSvc *chatService.Service
}

// New 创建聊天处理器
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

// handleChat 校验问题、转发上游并返回清洗后的回答
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chat.Query

	// 请求体无法解析或 query 不是字符串时，与空问题同样处理
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, msgQueryRequired)
		return
	}

	answer, err := h.chatSvc.Ask(r.Context(), payload.Query)
	switch {
	case errors.Is(err, chatService.ErrQueryRequired):
		utils.RespondError(w, http.StatusBadRequest, msgQueryRequired)
		return
	case err != nil:
		utils.RespondError(w, http.StatusInternalServerError, msgProcessFailed)
		return
	}

	utils.RespondJSON(w, http.StatusOK, answer)
}
