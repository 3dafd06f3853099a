package persona

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/clio/backend/internal/model/persona"
	"github.com/zhouzirui/clio/backend/pkg/utils"
)

// Handler 助手资料的HTTP处理器
type Handler struct {
	personas  persona.Store
	assistant string
}

// New 创建处理器，assistant 为对外展示的助手 ID
func New(personas persona.Store, assistant string) *Handler {
	return &Handler{
		personas:  personas,
		assistant: assistant,
	}
}

// RegisterRoutes 注册助手资料路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/assistant", h.handleGetAssistant)
}

func (h *Handler) handleGetAssistant(w http.ResponseWriter, r *http.Request) {
	p, ok := h.resolve()
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "assistant not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, p)
}

// resolve 未配置助手 ID 时取第一个内置 persona
func (h *Handler) resolve() (persona.Persona, bool) {
	if strings.TrimSpace(h.assistant) != "" {
		return h.personas.FindByID(h.assistant)
	}
	items := h.personas.List()
	if len(items) == 0 {
		return persona.Persona{}, false
	}
	return items[0], true
}
