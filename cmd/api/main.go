package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/clio/backend/internal/analysis/format"
	"github.com/zhouzirui/clio/backend/internal/config"
	"github.com/zhouzirui/clio/backend/internal/handler"
	"github.com/zhouzirui/clio/backend/internal/middleware"
	"github.com/zhouzirui/clio/backend/internal/model/persona"
	"github.com/zhouzirui/clio/backend/internal/sanitize"
	"github.com/zhouzirui/clio/backend/internal/service/ai"
	"github.com/zhouzirui/clio/backend/internal/service/chat"
	"github.com/zhouzirui/clio/backend/internal/service/contact"
	"github.com/zhouzirui/clio/backend/internal/service/upstream"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	personaStore := persona.NewMemoryStore(persona.Seed())

	pipelineOpts := sanitize.Options{LinkStyle: cfg.Chat.LinkStyle}
	if cfg.Chat.FormatRules {
		pipelineOpts.Rules = format.DefaultRules()
	}
	pipeline := sanitize.NewPipeline(pipelineOpts)

	answerer := newAnswerer(ctx, cfg, personaStore)
	chatService := chat.NewService(answerer, pipeline)

	var contactService *contact.Service
	if cfg.Contact.Enabled() {
		mailer := contact.NewEmailJSMailer(contact.EmailJSConfig{
			BaseURL:    cfg.Contact.BaseURL,
			ServiceID:  cfg.Contact.ServiceID,
			TemplateID: cfg.Contact.TemplateID,
			PublicKey:  cfg.Contact.PublicKey,
			PrivateKey: cfg.Contact.PrivateKey,
			Timeout:    cfg.Contact.Timeout,
		})
		contactService = contact.NewService(mailer, cfg.Contact.ToEmail)
		log.Println("Contact form delivery enabled")
	} else {
		log.Println("EmailJS 未配置，联系表单接口将返回 503")
	}

	var limiter *middleware.RateLimiter
	if cfg.Server.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst)
		log.Printf("Rate limit enabled: %.2f req/s, burst %d", cfg.Server.RateLimit, cfg.Server.RateBurst)
	}

	router := handler.NewRouter(personaStore, chatService, contactService, handler.Options{
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		MaxRequestBytes: cfg.Server.MaxRequestBytes,
		Assistant:       cfg.Chat.Persona,
		RateLimiter:     limiter,
	})

	startServer(ctx, cfg.Server, router)
}

// newAnswerer 选择问答来源：默认转发到 HTTP 上游，配置 ark 时直接调用模型
func newAnswerer(ctx context.Context, cfg *config.Config, personas persona.Store) chat.Answerer {
	httpUpstream := func() chat.Answerer {
		log.Printf("Forwarding chat queries to %s", cfg.Upstream.BaseURL)
		return upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	}

	if cfg.Upstream.Mode != config.UpstreamArk {
		return httpUpstream()
	}
	if !cfg.AI.Enabled() {
		log.Println("Ark 凭证未配置，回退到 HTTP 上游")
		return httpUpstream()
	}

	p, ok := personas.FindByID(cfg.Chat.Persona)
	if !ok {
		log.Printf("warning: persona %q not found, falling back to HTTP upstream", cfg.Chat.Persona)
		return httpUpstream()
	}

	chatModel, err := cfg.AI.NewChatModel(ctx)
	if err != nil {
		log.Printf("warning: failed to create chat model: %v", err)
		return httpUpstream()
	}

	aiService, err := ai.NewService(ctx, chatModel, p)
	if err != nil {
		log.Printf("warning: failed to initialize AI service: %v", err)
		return httpUpstream()
	}

	log.Println("AI service initialized successfully")
	return aiService
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Clio backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
