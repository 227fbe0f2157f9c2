// Package gateway is the outbound half of the chat transport: it pushes one
// reply per processed message back to the gateway that delivered it.
package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

var ErrSendFailed = errors.New("failed to send reply")

// Reply is one outbound message, addressed to the chat the command came from.
type Reply struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// Sender delivers replies. Delivery is best-effort: callers log failures and
// move on, a lost reply never blocks or aborts the pipeline.
type Sender interface {
	Send(ctx context.Context, reply Reply) error
}

// HTTPClient implements Sender against a real chat gateway.
type HTTPClient struct {
	url        string
	token      string
	httpClient *http.Client
}

func NewHTTPClient(url, token string) *HTTPClient {
	return &HTTPClient{
		url:   url,
		token: token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPClient) Send(ctx context.Context, reply Reply) error {
	body, err := json.Marshal(reply)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: gateway returned %d", ErrSendFailed, resp.StatusCode)
	}
	return nil
}
