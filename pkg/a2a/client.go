package a2a

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/senseihq/sensei/pkg/httpclient"
)

const defaultTaskTimeout = 30 * time.Second

// Client sends TaskMessage envelopes to agents over HTTP+JSON.
// Used when agents run as separate processes; in-process dispatch goes
// through the agent registry instead.
type Client struct {
	baseURL    string
	httpClient *httpclient.Client
}

type ClientOption func(*Client)

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient = httpclient.New(
			httpclient.WithHTTPClient(&http.Client{Timeout: timeout}),
		)
	}
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: httpclient.New(
			httpclient.WithHTTPClient(&http.Client{Timeout: defaultTaskTimeout}),
		),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SendTask posts the envelope to the given endpoint (e.g.
// "/quiz/generate-quiz") and decodes the response envelope.
func (c *Client) SendTask(ctx context.Context, endpoint string, msg TaskMessage) (*TaskResult, error) {
	if err := Validate(msg, nil); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, NewError(KindInternal, msg.TaskID, "failed to encode envelope", err)
	}

	url := c.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, NewError(KindInternal, msg.TaskID, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	LogSend(msg)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("A2A task send failed",
			"task_id", msg.TaskID,
			"sender", msg.Sender,
			"receiver", msg.Receiver,
			"endpoint", endpoint,
			"error", err,
		)
		return nil, NewError(KindInternal, msg.TaskID,
			fmt.Sprintf("agent communication with %q failed", msg.Receiver), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewError(KindInternal, msg.TaskID, "failed to read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		slog.Error("A2A task rejected",
			"task_id", msg.TaskID,
			"receiver", msg.Receiver,
			"endpoint", endpoint,
			"status_code", resp.StatusCode,
		)
		return nil, NewError(KindInternal, msg.TaskID,
			fmt.Sprintf("agent %q returned HTTP %d", msg.Receiver, resp.StatusCode), nil)
	}

	var result TaskResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, NewError(KindInternal, msg.TaskID, "failed to decode response envelope", err)
	}

	slog.Info("A2A task completed",
		"task_id", msg.TaskID,
		"sender", msg.Sender,
		"receiver", msg.Receiver,
	)

	return &result, nil
}
