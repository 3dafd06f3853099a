package upstream

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/zhouzirui/clio/backend/internal/model/chat"
)

const maxErrorBody = 512

// StatusError reports a non-2xx answer from the upstream. Body is kept for logs only.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream responded with status %d: %s", e.Code, e.Body)
}

// Client forwards queries to the question-answering backend over HTTP.
type Client struct {
	http    *resty.Client
	baseURL string
}

// NewClient creates a client bound to baseURL. Requests are never retried.
func NewClient(baseURL string, timeout time.Duration) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient, baseURL: baseURL}
}

// Ask posts the query to {baseURL}/query and returns the decoded answer.
func (c *Client) Ask(ctx context.Context, query string) (chat.Payload, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chat.Query{Query: query}).
		Post("/query")
	if err != nil {
		return nil, fmt.Errorf("post %s/query: %w", c.baseURL, err)
	}

	if !resp.IsSuccess() {
		return nil, &StatusError{Code: resp.StatusCode(), Body: truncate(resp.String(), maxErrorBody)}
	}

	payload, err := chat.DecodePayload(resp.Body())
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
