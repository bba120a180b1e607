package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-cardgen/internal/logger"
	"github.com/goliatone/go-cardgen/pkg/orchestrator"
	"github.com/goliatone/go-cardgen/pkg/toolschema"
)

const maxLineSize = 1024 * 1024

// ToolHandler runs a tool with validated arguments and returns its text
// output. A returned error becomes an isError result, not a protocol error.
type ToolHandler func(ctx context.Context, args map[string]any) (string, error)

// Tool is a registered tool.
type Tool struct {
	Name        string
	Description string
	Handler     ToolHandler
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the server logger. Logs must not go to the stdout used by
// the protocol.
func WithLogger(l *logger.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithServerInfo overrides the name and version reported by initialize.
func WithServerInfo(name, version string) ServerOption {
	return func(s *Server) {
		if name != "" {
			s.info.Name = name
		}
		if version != "" {
			s.info.Version = version
		}
	}
}

// Server dispatches JSON-RPC requests to tools.
type Server struct {
	mu      sync.RWMutex
	tools   map[string]Tool
	schemas *toolschema.Set
	logger  *logger.Logger
	info    ServerInfo
}

// NewServer returns a server with no tools. Schemas are loaded from the
// embedded tool document.
func NewServer(ctx context.Context, options ...ServerOption) (*Server, error) {
	schemas, err := toolschema.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("mcp: %w", err)
	}
	s := &Server{
		tools:   make(map[string]Tool),
		schemas: schemas,
		logger:  logger.Nop(),
		info:    ServerInfo{Name: "Adaptive Card Generator", Version: "1.0.0"},
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// NewCardServer returns a server exposing the card, sample and arithmetic
// tools backed by orch.
func NewCardServer(ctx context.Context, orch *orchestrator.Orchestrator, options ...ServerOption) (*Server, error) {
	s, err := NewServer(ctx, options...)
	if err != nil {
		return nil, err
	}
	if err := registerCardTools(s, orch); err != nil {
		return nil, err
	}
	if err := registerSampleTools(s); err != nil {
		return nil, err
	}
	if err := registerArithmeticTools(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Register adds a tool. schema may be nil when the embedded document already
// describes the tool.
func (s *Server) Register(tool Tool, schema *openapi3.Schema) error {
	if tool.Name == "" || tool.Handler == nil {
		return errors.New("mcp: tool name and handler are required")
	}
	if schema != nil {
		if err := s.schemas.Add(tool.Name, schema); err != nil {
			return fmt.Errorf("mcp: %w", err)
		}
	}
	if !s.schemas.Has(tool.Name) {
		return fmt.Errorf("mcp: tool %q has no input schema", tool.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tools[tool.Name]; exists {
		return fmt.Errorf("mcp: tool %q already registered", tool.Name)
	}
	s.tools[tool.Name] = tool
	return nil
}

// Tools lists the registered tools sorted by name.
func (s *Server) Tools() []ToolDef {
	s.mu.RLock()
	defer s.mu.RUnlock()

	defs := make([]ToolDef, 0, len(s.tools))
	for name, tool := range s.tools {
		schema, err := s.schemas.JSON(name)
		if err != nil {
			s.logger.Warn("tool schema unavailable", "tool", name, "error", err)
			schema = map[string]any{"type": "object"}
		}
		defs = append(defs, ToolDef{Name: name, Description: tool.Description, InputSchema: schema})
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Serve reads one request per line from r and writes responses to w until r
// is exhausted or ctx is cancelled.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	lines := make(chan []byte)
	errc := make(chan error, 1)

	go func() {
		reader := bufio.NewReaderSize(r, maxLineSize)
		for {
			line, err := reader.ReadBytes('\n')
			if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
				select {
				case lines <- trimmed:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				errc <- err
				return
			}
		}
	}()

	s.logger.Info("mcp server started", "tools", len(s.Tools()))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errc:
			if errors.Is(err, io.EOF) {
				s.logger.Info("mcp input closed")
				return nil
			}
			return fmt.Errorf("mcp: read request: %w", err)
		case line := <-lines:
			reply := s.Handle(ctx, line)
			if reply == nil {
				continue
			}
			if _, err := w.Write(append(reply, '\n')); err != nil {
				return fmt.Errorf("mcp: write response: %w", err)
			}
		}
	}
}

// Handle processes one encoded request and returns the encoded response, or
// nil for notifications.
func (s *Server) Handle(ctx context.Context, payload []byte) []byte {
	var req request
	if err := json.Unmarshal(payload, &req); err != nil {
		s.logger.Warn("unparseable request", "error", err)
		return s.encode(response{Error: &rpcError{Code: CodeParseError, Message: "parse error"}})
	}
	if req.Method == "" {
		if req.notification() {
			return nil
		}
		return s.encode(response{ID: req.ID, Error: &rpcError{Code: CodeInvalidRequest, Message: "method is required"}})
	}

	result, rpcErr := s.dispatch(ctx, req)
	if req.notification() {
		return nil
	}
	if rpcErr != nil {
		return s.encode(response{ID: req.ID, Error: rpcErr})
	}
	return s.encode(response{ID: req.ID, Result: result})
}

func (s *Server) dispatch(ctx context.Context, req request) (any, *rpcError) {
	switch req.Method {
	case MethodInitialize:
		return InitResult{
			ProtocolVersion: ProtocolVersion,
			Capabilities:    map[string]any{"tools": map[string]any{}},
			ServerInfo:      s.info,
		}, nil
	case MethodInitialized:
		return nil, nil
	case MethodPing:
		return map[string]any{}, nil
	case MethodToolsList:
		return map[string]any{"tools": s.Tools()}, nil
	case MethodToolsCall:
		return s.callTool(ctx, req.Params)
	default:
		return nil, &rpcError{Code: CodeMethodNotFound, Message: "method not found: " + req.Method}
	}
}

func (s *Server) callTool(ctx context.Context, raw json.RawMessage) (any, *rpcError) {
	var params struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if len(raw) == 0 {
		return nil, &rpcError{Code: CodeInvalidParams, Message: "params are required"}
	}
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, &rpcError{Code: CodeInvalidParams, Message: "invalid params: " + err.Error()}
	}

	s.mu.RLock()
	tool, ok := s.tools[params.Name]
	s.mu.RUnlock()
	if !ok {
		return nil, &rpcError{Code: CodeInvalidParams, Message: "unknown tool: " + params.Name}
	}
	if err := s.schemas.Validate(tool.Name, params.Arguments); err != nil {
		return nil, &rpcError{Code: CodeInvalidParams, Message: err.Error()}
	}

	text, err := tool.Handler(ctx, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", tool.Name, "error", err)
		return textResult(err.Error(), true), nil
	}
	s.logger.Debug("tool called", "tool", tool.Name, "bytes", len(text))
	return textResult(text, false), nil
}

func (s *Server) encode(resp response) []byte {
	resp.JSONRPC = "2.0"
	out, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("encode response", "error", err)
		fallback, _ := json.Marshal(response{
			JSONRPC: "2.0",
			ID:      resp.ID,
			Error:   &rpcError{Code: CodeInternalError, Message: "internal error"},
		})
		return fallback
	}
	return out
}
