package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Upstream 默认地址：开发环境走本地后端，其余环境走线上后端。
const (
	DevelopmentUpstreamURL = "http://localhost:8000"
	ProductionUpstreamURL  = "https://caroline-sarkki-portfolio-be-production.up.railway.app"
)

// Upstream 模式。
const (
	UpstreamHTTP = "http"
	UpstreamArk  = "ark"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Env      string `env:"APP_ENV" envDefault:"production"`
	Server   ServerConfig
	Upstream UpstreamConfig
	Chat     ChatConfig
	AI       AIConfig
	Contact  ContactConfig
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Port            string   `env:"PORT" envDefault:"8080"`
	AllowedOrigins  []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	MaxRequestBytes int64    `env:"MAX_REQUEST_BYTES" envDefault:"65536"`
	RateLimit       float64  `env:"CHAT_RATE_LIMIT" envDefault:"0"`
	RateBurst       int      `env:"CHAT_RATE_BURST" envDefault:"5"`

	// Addr 由 Port 推导而来。
	Addr string
}

// UpstreamConfig 描述问答后端配置。
type UpstreamConfig struct {
	URL     string        `env:"CHAT_API_URL"`
	Mode    string        `env:"CHAT_UPSTREAM" envDefault:"http"`
	Timeout time.Duration `env:"CHAT_UPSTREAM_TIMEOUT" envDefault:"10s"`

	// BaseURL 是加载时解析出的最终地址，进程生命周期内不变。
	BaseURL string
}

// ChatConfig 描述回复清洗与助手人设配置。
type ChatConfig struct {
	LinkStyle   string `env:"CHAT_LINK_STYLE"`
	FormatRules bool   `env:"CHAT_FORMAT_RULES" envDefault:"true"`
	Persona     string `env:"ASSISTANT_PERSONA" envDefault:"clio"`
}

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	APIKey      string   `env:"ARK_API_KEY"`
	AccessKey   string   `env:"ARK_ACCESS_KEY"`
	SecretKey   string   `env:"ARK_SECRET_KEY"`
	Model       string   `env:"ARK_MODEL"`
	BaseURL     string   `env:"ARK_BASE_URL" envDefault:"https://ark.cn-beijing.volces.com/api/v3"`
	Region      string   `env:"ARK_REGION" envDefault:"cn-beijing"`
	Temperature *float64 `env:"ARK_TEMPERATURE"`
	TopP        *float64 `env:"ARK_TOP_P"`
	MaxTokens   *int     `env:"ARK_MAX_TOKENS"`
}

// ContactConfig 描述联系表单邮件投递（EmailJS）配置。
type ContactConfig struct {
	ServiceID  string        `env:"EMAILJS_SERVICE_ID"`
	TemplateID string        `env:"EMAILJS_TEMPLATE_ID"`
	PublicKey  string        `env:"EMAILJS_PUBLIC_KEY"`
	PrivateKey string        `env:"EMAILJS_PRIVATE_KEY"`
	BaseURL    string        `env:"EMAILJS_BASE_URL" envDefault:"https://api.emailjs.com"`
	ToEmail    string        `env:"CONTACT_TO_EMAIL"`
	Timeout    time.Duration `env:"EMAILJS_TIMEOUT" envDefault:"10s"`
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	addr, err := resolveAddr(cfg.Server.Port)
	if err != nil {
		return nil, err
	}
	cfg.Server.Addr = addr

	if cfg.Server.RateLimit < 0 {
		return nil, fmt.Errorf("invalid CHAT_RATE_LIMIT value %v", cfg.Server.RateLimit)
	}
	if cfg.Server.RateBurst < 1 {
		cfg.Server.RateBurst = 1
	}

	cfg.Upstream.Mode = strings.ToLower(strings.TrimSpace(cfg.Upstream.Mode))
	switch cfg.Upstream.Mode {
	case UpstreamHTTP, UpstreamArk:
	default:
		return nil, fmt.Errorf("invalid CHAT_UPSTREAM value %q", cfg.Upstream.Mode)
	}
	if cfg.Upstream.Timeout <= 0 {
		return nil, fmt.Errorf("invalid CHAT_UPSTREAM_TIMEOUT value %v", cfg.Upstream.Timeout)
	}
	cfg.Upstream.BaseURL = ResolveUpstreamURL(cfg.Env, cfg.Upstream.URL)

	return &cfg, nil
}

// Development 表示是否运行在开发环境。
func (c *Config) Development() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development")
}

// ResolveUpstreamURL 选择问答后端地址：显式配置优先，否则按环境取默认值。
func ResolveUpstreamURL(appEnv, explicit string) string {
	if url := strings.TrimSpace(explicit); url != "" {
		return strings.TrimRight(url, "/")
	}
	if strings.EqualFold(strings.TrimSpace(appEnv), "development") {
		return DevelopmentUpstreamURL
	}
	return ProductionUpstreamURL
}

// resolveAddr 解析服务器监听地址。
func resolveAddr(port string) (string, error) {
	port = strings.TrimSpace(port)
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return port, nil
	}

	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}

	return ":" + port, nil
}

// Enabled 表示是否提供了必需的密钥。
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel 使用配置创建一个模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials or model missing: set ARK_MODEL with ARK_API_KEY or ARK_ACCESS_KEY/ARK_SECRET_KEY")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

// Enabled 表示联系表单投递所需的 EmailJS 配置是否齐全。
func (c ContactConfig) Enabled() bool {
	return c.ServiceID != "" && c.TemplateID != "" && c.PublicKey != "" && c.ToEmail != ""
}
