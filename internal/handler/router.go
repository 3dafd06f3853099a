package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/clio/backend/internal/handler/chat"
	"github.com/zhouzirui/clio/backend/internal/handler/contact"
	"github.com/zhouzirui/clio/backend/internal/handler/persona"
	middlewarePkg "github.com/zhouzirui/clio/backend/internal/middleware"
	personaModel "github.com/zhouzirui/clio/backend/internal/model/persona"
	chatService "github.com/zhouzirui/clio/backend/internal/service/chat"
	contactService "github.com/zhouzirui/clio/backend/internal/service/contact"
	"github.com/zhouzirui/clio/backend/pkg/utils"
)

// Options 路由层的可选配置
type Options struct {
	AllowedOrigins  []string
	MaxRequestBytes int64
	Assistant       string
	// RateLimiter 为 nil 时不限流
	RateLimiter *middlewarePkg.RateLimiter
}

// NewRouter wires HTTP routes to core services.
func NewRouter(personas personaModel.Store, chatSvc *chatService.Service, contactSvc *contactService.Service, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(opts.AllowedOrigins))
	r.Use(middlewarePkg.SecurityHeaders)
	r.Use(middlewarePkg.MaxBodyBytes(opts.MaxRequestBytes))

	personaHandler := persona.New(personas, opts.Assistant)
	chatHandler := chat.New(chatSvc)
	contactHandler := contact.New(contactSvc)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		personaHandler.RegisterRoutes(api)

		// 只有会触发上游调用的接口才限流
		api.Group(func(limited chi.Router) {
			if opts.RateLimiter != nil {
				limited.Use(opts.RateLimiter.Handler)
			}
			chatHandler.RegisterRoutes(limited)
			contactHandler.RegisterRoutes(limited)
		})
	})

	return r
}
