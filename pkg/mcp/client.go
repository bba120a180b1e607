package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/goliatone/go-cardgen/pkg/render"
)

// Client issues typed MCP calls over a Transport.
type Client struct {
	transport Transport
	nextID    atomic.Int64
	name      string
}

// NewClient returns a client over transport. The transport must already be
// started.
func NewClient(transport Transport) *Client {
	return &Client{transport: transport, name: "cardgen-client"}
}

type clientRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type clientResponse struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  *rpcError       `json:"error,omitempty"`
}

func (c *Client) call(ctx context.Context, method string, params, result any) error {
	payload, err := json.Marshal(clientRequest{JSONRPC: "2.0", ID: c.nextID.Add(1), Method: method, Params: params})
	if err != nil {
		return fmt.Errorf("mcp: marshal request: %w", err)
	}
	raw, err := c.transport.Call(ctx, payload)
	if err != nil {
		return err
	}

	var resp clientResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return fmt.Errorf("mcp: unmarshal response: %w", err)
	}
	if resp.Error != nil {
		return &Error{Code: resp.Error.Code, Message: resp.Error.Message}
	}
	if result != nil && len(resp.Result) > 0 {
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return fmt.Errorf("mcp: unmarshal result: %w", err)
		}
	}
	return nil
}

// Initialize performs the handshake.
func (c *Client) Initialize(ctx context.Context) (InitResult, error) {
	params := map[string]any{
		"protocolVersion": ProtocolVersion,
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]string{"name": c.name, "version": "1.0.0"},
	}
	var result InitResult
	err := c.call(ctx, MethodInitialize, params, &result)
	return result, err
}

// Ping checks liveness.
func (c *Client) Ping(ctx context.Context) error {
	return c.call(ctx, MethodPing, nil, nil)
}

// ListTools returns the server's tools.
func (c *Client) ListTools(ctx context.Context) ([]ToolDef, error) {
	var wrapped struct {
		Tools []ToolDef `json:"tools"`
	}
	if err := c.call(ctx, MethodToolsList, nil, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Tools, nil
}

// CallTool invokes a tool.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (ToolResult, error) {
	var result ToolResult
	err := c.call(ctx, MethodToolsCall, map[string]any{"name": name, "arguments": args}, &result)
	return result, err
}

// Close closes the transport.
func (c *Client) Close() error {
	return c.transport.Close()
}

// ErrNoContent reports a tool result without text.
var ErrNoContent = errors.New("mcp: no content returned from generator")

// CardClient generates cards through a remote generate_adaptive_card tool.
type CardClient struct {
	client *Client
}

// NewCardClient wraps client.
func NewCardClient(client *Client) *CardClient {
	return &CardClient{client: client}
}

// Generate returns the document produced by the remote engine. Transport,
// protocol and tool failures are returned as errors.
func (c *CardClient) Generate(ctx context.Context, template, data string) ([]byte, error) {
	result, err := c.client.CallTool(ctx, ToolGenerateCard, map[string]any{
		"template": template,
		"data":     data,
	})
	if err != nil {
		return nil, err
	}
	text := result.Text()
	if result.IsError {
		return nil, fmt.Errorf("mcp: tool %s failed: %s", ToolGenerateCard, text)
	}
	if text == "" {
		return nil, ErrNoContent
	}
	return []byte(text), nil
}

// GenerateOrFallback is Generate with failures turned into the fallback
// error document, so callers always receive a card.
func (c *CardClient) GenerateOrFallback(ctx context.Context, template, data string) []byte {
	out, err := c.Generate(ctx, template, data)
	if err == nil {
		return out
	}
	message := "Error: " + err.Error()
	if errors.Is(err, ErrNoContent) {
		message = "No content returned from generator."
	}
	return render.FallbackDocument(template, data, message).JSON()
}
