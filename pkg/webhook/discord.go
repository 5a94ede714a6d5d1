package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	appErrors "github.com/noah-isme/greatday-recap-api/pkg/errors"
)

// Client posts rendered recap messages to a Discord webhook.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient builds a webhook client. A zero timeout falls back to 15s.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type message struct {
	Content string `json:"content"`
}

// Post publishes one message. Any non-2xx response is a publish failure.
func (c *Client) Post(ctx context.Context, content string) error {
	body, err := json.Marshal(message{Content: content})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrPublishFailed.Code, appErrors.ErrPublishFailed.Status, "encode webhook payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrPublishFailed.Code, appErrors.ErrPublishFailed.Status, "build webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrPublishFailed.Code, appErrors.ErrPublishFailed.Status, "post webhook message")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return appErrors.Clone(appErrors.ErrPublishFailed, fmt.Sprintf("webhook responded %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	return nil
}
