package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/client"
	mcpgo "github.com/mark3labs/mcp-go/mcp"

	"github.com/senseihq/sensei/pkg/a2a"
)

const mcpProtocolVersion = "2024-11-05"

// RemoteClient calls tools on an external MCP server over streamable
// HTTP. The connection is established lazily on first call.
type RemoteClient struct {
	url     string
	timeout time.Duration

	mu        sync.Mutex
	mcpClient *client.Client
	connected bool
}

type RemoteOption func(*RemoteClient)

func WithRemoteTimeout(timeout time.Duration) RemoteOption {
	return func(c *RemoteClient) {
		c.timeout = timeout
	}
}

func NewRemoteClient(url string, opts ...RemoteOption) (*RemoteClient, error) {
	if url == "" {
		return nil, fmt.Errorf("MCP server url is required")
	}

	c := &RemoteClient{
		url:     url,
		timeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// connect establishes and initializes the MCP session.
func (c *RemoteClient) connect(ctx context.Context) error {
	mcpClient, err := client.NewStreamableHttpClient(c.url)
	if err != nil {
		return fmt.Errorf("failed to create MCP client: %w", err)
	}

	if err := mcpClient.Start(ctx); err != nil {
		return fmt.Errorf("failed to start MCP client: %w", err)
	}

	initReq := mcpgo.InitializeRequest{}
	initReq.Params.ClientInfo = mcpgo.Implementation{
		Name:    "sensei",
		Version: "0.1.0",
	}
	initReq.Params.ProtocolVersion = mcpProtocolVersion

	if _, err := mcpClient.Initialize(ctx, initReq); err != nil {
		mcpClient.Close()
		return fmt.Errorf("failed to initialize MCP session: %w", err)
	}

	c.mcpClient = mcpClient
	c.connected = true

	slog.Info("Connected to MCP server", "url", c.url)
	return nil
}

func (c *RemoteClient) Call(ctx context.Context, toolName string, params map[string]interface{}) (Result, error) {
	if !isKnownTool(toolName) {
		return Result{}, a2a.NewError(a2a.KindUnknownTool, "",
			fmt.Sprintf("unknown tool %q", toolName), nil)
	}

	slog.Info("MCP tool call", "tool", toolName, "backend", "remote", "url", c.url)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.mu.Lock()
	if !c.connected {
		if err := c.connect(ctx); err != nil {
			c.mu.Unlock()
			return Result{Error: err.Error()}, a2a.NewError(a2a.KindToolError, "",
				fmt.Sprintf("tool %q failed", toolName), err)
		}
	}
	mcpClient := c.mcpClient
	c.mu.Unlock()

	req := mcpgo.CallToolRequest{}
	req.Params.Name = toolName
	req.Params.Arguments = params

	resp, err := mcpClient.CallTool(ctx, req)
	if err != nil {
		slog.Error("MCP tool failed", "tool", toolName, "error", err)
		return Result{Error: err.Error()}, a2a.NewError(a2a.KindToolError, "",
			fmt.Sprintf("tool %q failed", toolName), err)
	}

	return parseToolResult(toolName, resp)
}

// parseToolResult converts the MCP content list into a Result. Text
// content that parses as JSON becomes the data map directly.
func parseToolResult(toolName string, resp *mcpgo.CallToolResult) (Result, error) {
	var texts []string
	for _, content := range resp.Content {
		if textContent, ok := content.(mcpgo.TextContent); ok {
			texts = append(texts, textContent.Text)
		}
	}

	if resp.IsError {
		msg := "unknown error"
		if len(texts) > 0 {
			msg = texts[0]
		}
		return Result{Error: msg}, a2a.NewError(a2a.KindToolError, "",
			fmt.Sprintf("tool %q failed", toolName), fmt.Errorf("%s", msg))
	}

	data := make(map[string]interface{})
	if len(texts) == 1 {
		if err := json.Unmarshal([]byte(texts[0]), &data); err != nil {
			data["result"] = texts[0]
		}
	} else if len(texts) > 1 {
		data["results"] = texts
	}

	return Result{OK: true, Data: data}, nil
}

// Close shuts down the MCP session.
func (c *RemoteClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mcpClient != nil {
		err := c.mcpClient.Close()
		c.mcpClient = nil
		c.connected = false
		return err
	}
	return nil
}
