package contact

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/clio/backend/internal/model/contact"
	contactService "github.com/zhouzirui/clio/backend/internal/service/contact"
	"github.com/zhouzirui/clio/backend/pkg/utils"
)

const (
	msgInvalidForm = "Invalid contact form"
	msgSendFailed  = "Sorry, there was an error sending your message. Please try again."
	msgSent        = "Message sent successfully! I'll get back to you soon."
	msgUnavailable = "contact form unavailable"
)

// Handler 联系表单的HTTP处理器
type Handler struct {
	contactSvc *contactService.Service
}

// New 创建联系表单处理器，contactSvc 为 nil 时接口返回 503
func New(contactSvc *contactService.Service) *Handler {
	return &Handler{contactSvc: contactSvc}
}

// RegisterRoutes 注册联系表单路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/contact", h.handleContact)
}

func (h *Handler) handleContact(w http.ResponseWriter, r *http.Request) {
	if h.contactSvc == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, msgUnavailable)
		return
	}

	var form contact.Form
	if err := utils.DecodeJSON(r, &form); err != nil {
		utils.RespondError(w, http.StatusBadRequest, msgInvalidForm)
		return
	}

	err := h.contactSvc.Submit(r.Context(), form)
	var verr *contactService.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.RespondFieldErrors(w, http.StatusBadRequest, msgInvalidForm, verr.Fields)
	case errors.Is(err, contactService.ErrInvalidForm):
		utils.RespondError(w, http.StatusBadRequest, msgInvalidForm)
	case err != nil:
		utils.RespondError(w, http.StatusInternalServerError, msgSendFailed)
	default:
		utils.RespondJSON(w, http.StatusOK, map[string]string{"message": msgSent})
	}
}
