package widget

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/zhouzirui/clio/backend/internal/model/chat"
	"github.com/zhouzirui/clio/backend/internal/sanitize"
)

// EmptyReplyFallback is shown when the proxy answers without a usable text field.
const EmptyReplyFallback = "I'm sorry, I couldn't process that request right now. Please try again!"

const chatPath = "/api/chat"

// Client talks to the chat proxy.
type Client struct {
	http *resty.Client
}

// NewClient creates a proxy client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient}
}

// Ask posts the query to the proxy and returns the reply ready for display.
func (c *Client) Ask(ctx context.Context, query string) (sanitize.HTML, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chat.Query{Query: query}).
		Post(chatPath)
	if err != nil {
		return sanitize.HTML{}, fmt.Errorf("chat proxy request: %w", err)
	}
	if !resp.IsSuccess() {
		return sanitize.HTML{}, fmt.Errorf("chat proxy responded with status %d", resp.StatusCode())
	}

	payload, err := chat.DecodePayload(resp.Body())
	if err != nil {
		return sanitize.HTML{}, err
	}

	return sanitize.Finalize(replyText(payload)), nil
}

func replyText(p chat.Payload) string {
	for _, field := range []string{chat.FieldResponse, chat.FieldMessage} {
		if text, ok := p.Text(field); ok && text != "" {
			return text
		}
	}
	return EmptyReplyFallback
}
